package httpx

import (
	"net/http"
	"net/mail"
	"strings"

	"github.com/arkka/go-shop-api/internal/auth"
	"github.com/arkka/go-shop-api/internal/store"
	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	Users  *store.Store[store.User, *store.User]
	Tokens *auth.Tokens
	Guard  *auth.Guard
}

func (h *AuthHandler) Register(r *chi.Mux) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", h.register)
		r.Post("/login", h.login)
		r.Group(func(r chi.Router) {
			r.Use(h.Guard.Protect)
			r.Get("/profile", h.getProfile)
			r.Put("/profile", h.updateProfile)
		})
	})
}

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := decodeJSON(r, &req); err != nil {
		fail(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	if len(req.Name) < 2 || len(req.Name) > 50 {
		fail(w, http.StatusBadRequest, "Name must be 2-50 characters")
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		fail(w, http.StatusBadRequest, "Invalid email address")
		return
	}
	if len(req.Password) < 6 {
		fail(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	exists, err := h.Users.Exists(func(u store.User) bool { return u.Email == req.Email })
	if err != nil {
		failErr(w, err)
		return
	}
	if exists {
		fail(w, http.StatusBadRequest, "User already exists")
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		failErr(w, err)
		return
	}
	user, err := h.Users.Create(store.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashed,
		Role:     store.RoleCustomer,
		Wishlist: []string{},
		Orders:   []string{},
	})
	if err != nil {
		failErr(w, err)
		return
	}

	token, err := h.Tokens.Sign(user.ID, user.Email, user.Role)
	if err != nil {
		failErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"token":   token,
		"user":    user.Public(),
	})
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := decodeJSON(r, &req); err != nil {
		fail(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	email := normalizeEmail(req.Email)

	user, ok, err := h.Users.FindOne(func(u store.User) bool { return u.Email == email })
	if err != nil {
		failErr(w, err)
		return
	}
	if !ok || !auth.CheckPassword(user.Password, req.Password) {
		fail(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.Tokens.Sign(user.ID, user.Email, user.Role)
	if err != nil {
		failErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"token":   token,
		"user":    user.Public(),
	})
}

func (h *AuthHandler) getProfile(w http.ResponseWriter, r *http.Request) {
	me, _ := auth.CurrentUser(r.Context())
	user, err := h.Users.FindByID(me.ID)
	if err != nil {
		failErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "user": user.Public()})
}

// profileUpdate deliberately has no role or password field; those are not
// updatable through the profile.
type profileUpdate struct {
	Name    *string        `json:"name"`
	Phone   *string        `json:"phone"`
	Address *store.Address `json:"address"`
}

func (h *AuthHandler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileUpdate
	if err := decodeJSON(r, &req); err != nil {
		fail(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	me, _ := auth.CurrentUser(r.Context())
	user, err := h.Users.Update(me.ID, func(u *store.User) {
		if req.Name != nil {
			u.Name = *req.Name
		}
		if req.Phone != nil {
			u.Phone = *req.Phone
		}
		if req.Address != nil {
			u.Address = *req.Address
		}
	})
	if err != nil {
		failErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "user": user.Public()})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
