package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/arkka/go-shop-api/internal/store"
)

type ctxKey struct{}

// Guard resolves request identity against the users collection and checks
// roles. Compose Protect first, then RequireRole.
type Guard struct {
	Tokens *Tokens
	Users  *store.Store[store.User, *store.User]
}

// CurrentUser returns the identity Protect attached to the request context.
func CurrentUser(ctx context.Context) (store.PublicUser, bool) {
	u, ok := ctx.Value(ctxKey{}).(store.PublicUser)
	return u, ok
}

// Protect rejects the request with 401 unless a valid bearer token resolves
// to an existing user. The resolved user (password stripped) is attached to
// the request context.
func (g *Guard) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			reject(w, http.StatusUnauthorized, "Not authorized, no token provided")
			return
		}
		claims, err := g.Tokens.Verify(token)
		if err != nil {
			reject(w, http.StatusUnauthorized, "Not authorized, token failed")
			return
		}
		user, err := g.Users.FindByID(claims.ID)
		if err != nil {
			reject(w, http.StatusUnauthorized, "User not found")
			return
		}
		ctx := context.WithValue(r.Context(), ctxKey{}, user.Public())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole rejects with 403 unless the resolved identity's role is one of
// roles. Must run after Protect.
func (g *Guard) RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := CurrentUser(r.Context())
			if !ok {
				reject(w, http.StatusUnauthorized, "Not authorized")
				return
			}
			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			reject(w, http.StatusForbidden, "User role "+user.Role+" is not authorized")
		})
	}
}

// bearerToken pulls the credential from the Authorization header or, failing
// that, the token cookie.
func bearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if c, err := r.Cookie("token"); err == nil {
		return c.Value
	}
	return ""
}

func reject(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": msg})
}
