package auth

import (
	"net/http"
	"strings"
)

// Middleware resolves the Authorization header into an Identity for every
// request. It never rejects: unauthenticated requests proceed as guest.
func Middleware(verifier *Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident := verifier.Verify(r.Context(), bearerToken(r))
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), ident)))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
