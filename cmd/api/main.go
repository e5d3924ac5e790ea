package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arkka/go-shop-api/internal/admin"
	"github.com/arkka/go-shop-api/internal/auth"
	"github.com/arkka/go-shop-api/internal/cart"
	"github.com/arkka/go-shop-api/internal/catalog"
	"github.com/arkka/go-shop-api/internal/config"
	"github.com/arkka/go-shop-api/internal/httpx"
	"github.com/arkka/go-shop-api/internal/orders"
	"github.com/arkka/go-shop-api/internal/store"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	db := store.Open(cfg.DataDir)

	tokens := &auth.Tokens{Secret: []byte(cfg.JWTSecret), Expiry: cfg.JWTExpiry}
	guard := &auth.Guard{Tokens: tokens, Users: db.Users}

	catalogSvc := &catalog.Service{Products: db.Products, Categories: db.Categories}
	cartSvc := &cart.Service{Carts: db.Carts, Products: db.Products}
	orderSvc := &orders.Service{Orders: db.Orders, Products: db.Products, Users: db.Users}
	adminSvc := &admin.Service{
		Users:      db.Users,
		Products:   db.Products,
		Orders:     db.Orders,
		Categories: db.Categories,
	}

	router := httpx.NewRouter()
	(&httpx.AuthHandler{Users: db.Users, Tokens: tokens, Guard: guard}).Register(router)
	(&httpx.ProductsHandler{Catalog: catalogSvc, Products: db.Products, Reviews: db.Reviews, Guard: guard}).Register(router)
	(&httpx.CategoriesHandler{Catalog: catalogSvc, Guard: guard}).Register(router)
	(&httpx.CartHandler{Cart: cartSvc, Guard: guard}).Register(router)
	(&httpx.OrdersHandler{Orders: orderSvc, Store: db.Orders, Guard: guard}).Register(router)
	(&httpx.AdminHandler{Admin: adminSvc, Users: db.Users, Orders: db.Orders, Guard: guard}).Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Printf("%s listening at %s (data dir %s)", cfg.ServiceName, cfg.HTTPAddr, cfg.DataDir)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}
