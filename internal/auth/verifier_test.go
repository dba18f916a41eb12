package auth

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func testRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestVerifyEmptyTokenIsGuest(t *testing.T) {
	v := NewVerifier("http://localhost", "", "guest", time.Minute, nil, slog.Default())

	ident := v.Verify(context.Background(), "")
	require.True(t, ident.IsGuest())
	require.Equal(t, "guest", ident.TenantID())
}

func TestVerifyValidToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		require.Equal(t, "/auth/v1/user", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"tenant-42"}`))
	}))
	defer srv.Close()

	v := NewVerifier(srv.URL, "", "guest", time.Minute, nil, slog.Default())

	ident := v.Verify(context.Background(), "tok-1")
	require.False(t, ident.IsGuest())
	require.Equal(t, "tenant-42", ident.TenantID())
}

func TestVerifyInvalidTokenDowngradesToGuest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	v := NewVerifier(srv.URL, "", "guest", time.Minute, nil, slog.Default())

	ident := v.Verify(context.Background(), "expired")
	require.True(t, ident.IsGuest())
}

func TestVerifyProviderErrorDowngradesToGuest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	v := NewVerifier(srv.URL, "", "guest", time.Minute, nil, slog.Default())

	ident := v.Verify(context.Background(), "tok")
	require.True(t, ident.IsGuest())
}

func TestVerifyCacheHitSkipsProvider(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"tenant-42"}`))
	}))
	defer srv.Close()

	v := NewVerifier(srv.URL, "", "guest", time.Minute, testRedis(t), slog.Default())

	first := v.Verify(context.Background(), "tok-1")
	second := v.Verify(context.Background(), "tok-1")

	require.Equal(t, "tenant-42", first.TenantID())
	require.Equal(t, "tenant-42", second.TenantID())
	require.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestVerifyGuestNotCached(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	v := NewVerifier(srv.URL, "", "guest", time.Minute, testRedis(t), slog.Default())

	require.True(t, v.Verify(context.Background(), "bad").IsGuest())
	require.True(t, v.Verify(context.Background(), "bad").IsGuest())
	require.Equal(t, int32(2), atomic.LoadInt32(&calls))
}
