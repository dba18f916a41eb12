package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "auth:token:"

// Verifier validates bearer tokens against the identity provider's user
// endpoint. Verified tenant IDs are cached in redis under a hash of the
// token so hot tokens do not hit the provider on every request.
type Verifier struct {
	baseURL     string
	apiKey      string
	guestTenant string
	cacheTTL    time.Duration
	httpClient  *http.Client
	redis       *redis.Client
	logger      *slog.Logger
}

// NewVerifier constructs a Verifier. The redis client may be nil, in which
// case every request goes to the provider.
func NewVerifier(baseURL, apiKey, guestTenant string, cacheTTL time.Duration, redisClient *redis.Client, logger *slog.Logger) *Verifier {
	return &Verifier{
		baseURL:     baseURL,
		apiKey:      apiKey,
		guestTenant: guestTenant,
		cacheTTL:    cacheTTL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		redis:       redisClient,
		logger:      logger,
	}
}

// Verify resolves a bearer token to an identity. Missing, malformed, or
// expired tokens downgrade to the guest identity instead of failing the
// request; callers that must not serve guests reject the identity themselves.
func (v *Verifier) Verify(ctx context.Context, token string) Identity {
	if token == "" {
		return GuestIdentity(v.guestTenant)
	}

	key := cacheKey(token)
	if v.redis != nil {
		if tenantID, err := v.redis.Get(ctx, key).Result(); err == nil && tenantID != "" {
			return Authenticated(tenantID)
		}
	}

	tenantID, err := v.lookup(ctx, token)
	if err != nil {
		v.logger.Warn("token verification failed, downgrading to guest", slog.Any("error", err))
		return GuestIdentity(v.guestTenant)
	}
	if tenantID == "" {
		return GuestIdentity(v.guestTenant)
	}

	if v.redis != nil {
		if err := v.redis.Set(ctx, key, tenantID, v.cacheTTL).Err(); err != nil {
			v.logger.Warn("token cache write failed", slog.Any("error", err))
		}
	}
	return Authenticated(tenantID)
}

type providerUser struct {
	ID string `json:"id"`
}

func (v *Verifier) lookup(ctx context.Context, token string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if v.apiKey != "" {
		req.Header.Set("apikey", v.apiKey)
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		// Invalid or expired token: guest, not an error.
		return "", nil
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("auth: provider returned status %d", resp.StatusCode)
	}

	var user providerUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return "", fmt.Errorf("auth: decode provider response: %w", err)
	}
	return user.ID, nil
}

func cacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}
