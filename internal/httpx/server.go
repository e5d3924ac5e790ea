package httpx

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func NewRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger)
	r.Use(middleware.Timeout(15 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	}))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/api", describeAPI)
	return r
}

// describeAPI is the self-documenting index the storefront clients probe.
func describeAPI(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    "Personal Shop API",
		"version": "1.0.0",
		"endpoints": map[string]any{
			"auth": map[string]string{
				"register": "POST /api/auth/register",
				"login":    "POST /api/auth/login",
				"profile":  "GET /api/auth/profile",
			},
			"products": map[string]string{
				"list":   "GET /api/products",
				"get":    "GET /api/products/{id}",
				"create": "POST /api/products",
				"update": "PUT /api/products/{id}",
				"delete": "DELETE /api/products/{id}",
			},
			"orders": map[string]string{
				"create": "POST /api/orders",
				"list":   "GET /api/orders/my-orders",
				"get":    "GET /api/orders/{id}",
			},
		},
	})
}
