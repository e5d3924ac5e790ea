package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/arkka/go-shop-api/internal/auth"
	"github.com/arkka/go-shop-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuard(t *testing.T) (*auth.Guard, *store.Store[store.User, *store.User]) {
	t.Helper()
	users := store.New[store.User](t.TempDir(), "users.json")
	tokens := &auth.Tokens{Secret: []byte("test-secret"), Expiry: time.Hour}
	return &auth.Guard{Tokens: tokens, Users: users}, users
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := auth.HashPassword("customer123")
	require.NoError(t, err)
	assert.NotEqual(t, "customer123", hash)
	assert.True(t, auth.CheckPassword(hash, "customer123"))
	assert.False(t, auth.CheckPassword(hash, "wrong"))
}

func TestTokenRoundTrip(t *testing.T) {
	tokens := &auth.Tokens{Secret: []byte("test-secret"), Expiry: time.Hour}
	signed, err := tokens.Sign("u1", "a@b.com", store.RoleCustomer)
	require.NoError(t, err)

	claims, err := tokens.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.ID)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, store.RoleCustomer, claims.Role)
}

func TestExpiredTokenRejected(t *testing.T) {
	tokens := &auth.Tokens{Secret: []byte("test-secret"), Expiry: -time.Minute}
	signed, err := tokens.Sign("u1", "a@b.com", store.RoleCustomer)
	require.NoError(t, err)

	_, err = tokens.Verify(signed)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestWrongSecretRejected(t *testing.T) {
	tokens := &auth.Tokens{Secret: []byte("test-secret"), Expiry: time.Hour}
	signed, err := tokens.Sign("u1", "a@b.com", store.RoleCustomer)
	require.NoError(t, err)

	other := &auth.Tokens{Secret: []byte("different"), Expiry: time.Hour}
	_, err = other.Verify(signed)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func okHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.CurrentUser(r.Context()); !ok {
			t.Error("no identity in context")
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestProtectRejectsMissingToken(t *testing.T) {
	guard, _ := newGuard(t)
	rec := httptest.NewRecorder()
	guard.Protect(okHandler(t)).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Not authorized, no token provided"}`, rec.Body.String())
}

func TestProtectRejectsGarbageToken(t *testing.T) {
	guard, _ := newGuard(t)
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	guard.Protect(okHandler(t)).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectRejectsExpiredToken(t *testing.T) {
	guard, users := newGuard(t)
	user, err := users.Create(store.User{Email: "a@b.com", Role: store.RoleCustomer})
	require.NoError(t, err)

	expired := &auth.Tokens{Secret: guard.Tokens.Secret, Expiry: -time.Minute}
	signed, err := expired.Sign(user.ID, user.Email, user.Role)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	guard.Protect(okHandler(t)).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectRejectsDeletedUser(t *testing.T) {
	guard, _ := newGuard(t)
	signed, err := guard.Tokens.Sign("ghost", "ghost@b.com", store.RoleCustomer)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	guard.Protect(okHandler(t)).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectAcceptsHeaderToken(t *testing.T) {
	guard, users := newGuard(t)
	user, err := users.Create(store.User{Email: "a@b.com", Password: "hashed", Role: store.RoleCustomer})
	require.NoError(t, err)
	signed, err := guard.Tokens.Sign(user.ID, user.Email, user.Role)
	require.NoError(t, err)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		me, ok := auth.CurrentUser(r.Context())
		require.True(t, ok)
		assert.Equal(t, user.ID, me.ID)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	guard.Protect(handler).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProtectAcceptsCookieToken(t *testing.T) {
	guard, users := newGuard(t)
	user, err := users.Create(store.User{Email: "a@b.com", Role: store.RoleCustomer})
	require.NoError(t, err)
	signed, err := guard.Tokens.Sign(user.ID, user.Email, user.Role)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: signed})
	rec := httptest.NewRecorder()
	guard.Protect(okHandler(t)).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole(t *testing.T) {
	guard, users := newGuard(t)
	customer, err := users.Create(store.User{Email: "c@b.com", Role: store.RoleCustomer})
	require.NoError(t, err)
	admin, err := users.Create(store.User{Email: "a@b.com", Role: store.RoleAdmin})
	require.NoError(t, err)

	protected := guard.Protect(guard.RequireRole(store.RoleAdmin)(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) },
	)))

	// customer hitting an admin-only route is forbidden, not unauthenticated
	signed, err := guard.Tokens.Sign(customer.ID, customer.Email, customer.Role)
	require.NoError(t, err)
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	signed, err = guard.Tokens.Sign(admin.ID, admin.Email, admin.Role)
	require.NoError(t, err)
	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
