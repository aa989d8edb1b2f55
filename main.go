package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"gameZoid/handlers"
	"gameZoid/repository"
	"gameZoid/services"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"

	"github.com/redis/go-redis/v9"
)

func main() {
	backend, err := initBackend()
	if err != nil {
		panic(err)
	}
	log.Printf("storage backend ready")

	rs, err := repository.NewRecordStore(backend)
	if err != nil {
		panic(err)
	}
	uR, err := repository.NewUserRepository(rs)
	sR, err2 := repository.NewSessionRepository(backend)
	cartR, _ := repository.NewCartRepository(backend)
	if err != nil {
		panic(err)
	}
	if err2 != nil {
		panic(err2)
	}

	catService := services.NewCatalogService(rs)
	cartService := services.NewCartService(rs, cartR)
	hp := handlers.HandlerParams{
		UsrService:  services.NewUserService(uR, sR),
		CatService:  catService,
		WshService:  services.NewWishlistService(rs, cartR),
		CrtService:  cartService,
		ChkService:  services.NewCheckoutService(cartService),
		BootService: services.NewBootstrapService(catService, nil, os.Getenv("BOOTSTRAP_DEDUPE") != "false"),
	}
	ha := handlers.NewHandler(hp)
	router := mux.NewRouter()
	router.Use(ha.ErrorHandleMiddleware)
	subAuth := router.NewRoute().Subrouter()
	subAuth.Use(ha.AuthMiddleware)
	subAdmin := router.NewRoute().Subrouter()
	subAdmin.Use(ha.AdminAuthMiddleware)

	router.HandleFunc("/api/welcome", ha.Welcome)
	router.HandleFunc("/users/signup", ha.Signup).Methods("POST")
	router.HandleFunc("/users/signin", ha.Signin).Methods("POST")
	subAuth.HandleFunc("/users/logout", ha.Logout)
	subAuth.HandleFunc("/users/account", ha.Account)

	router.HandleFunc("/games", ha.GetGames).Methods("GET")
	router.HandleFunc("/games/{id:[0-9]+}", ha.GetGame).Methods("GET")
	subAdmin.HandleFunc("/games/create", ha.CreateGame).Methods("POST")
	subAdmin.HandleFunc("/games/{id:[0-9]+}/update", ha.UpdateGame).Methods("POST")
	subAdmin.HandleFunc("/games/{id:[0-9]+}/delete", ha.DeleteGame).Methods("DELETE")

	router.HandleFunc("/products", ha.GetProducts).Methods("GET")
	router.HandleFunc("/products/{id:[0-9]+}", ha.GetProduct).Methods("GET")
	subAdmin.HandleFunc("/products/create", ha.CreateProduct).Methods("POST")
	subAdmin.HandleFunc("/products/{id:[0-9]+}/update", ha.UpdateProduct).Methods("POST")
	subAdmin.HandleFunc("/products/{id:[0-9]+}/delete", ha.DeleteProduct).Methods("DELETE")

	subAdmin.HandleFunc("/admin/stats", ha.GetStats).Methods("GET")
	subAdmin.HandleFunc("/admin/export", ha.ExportData).Methods("GET")
	subAdmin.HandleFunc("/admin/clear", ha.ClearDatabase).Methods("POST")
	subAdmin.HandleFunc("/admin/populate", ha.PopulateDefaultData).Methods("POST")

	subAuth.HandleFunc("/wishlist", ha.GetWishlist).Methods("GET")
	subAuth.HandleFunc("/wishlist", ha.AddToWishlist).Methods("POST")
	subAuth.HandleFunc("/wishlist/{id:[0-9]+}", ha.RemoveWishlistEntry).Methods("DELETE")
	subAuth.HandleFunc("/wishlist/item", ha.RemoveWishlistItem).Methods("DELETE")
	subAuth.HandleFunc("/wishlist/move", ha.MoveWishlistItemToCart).Methods("POST")

	router.HandleFunc("/cart", ha.GetCart).Methods("GET")
	subAuth.HandleFunc("/cart", ha.AddToCart).Methods("POST")
	router.HandleFunc("/cart", ha.DeleteFromCart).Methods("DELETE")
	router.HandleFunc("/cart/quantity", ha.UpdateCartQuantity).Methods("POST")
	router.HandleFunc("/cart/clear", ha.ClearCart).Methods("POST")

	subAuth.HandleFunc("/checkout", ha.SubmitCheckout).Methods("POST")
	subAuth.HandleFunc("/payment/complete", ha.CompletePayment).Methods("POST")

	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		staticDir = "./assets"
	}
	router.PathPrefix("/").Handler(http.FileServer(http.Dir(staticDir)))

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	log.Printf("starting server on %s...", addr)
	http.ListenAndServe(addr, router)
}

// initBackend picks the blob backing from the environment. The contract is
// identical across backings; file is the default.
func initBackend() (repository.Backend, error) {
	switch os.Getenv("STORE_BACKEND") {
	case "", "file":
		dir := os.Getenv("STORE_PATH")
		if dir == "" {
			dir = "./data"
		}
		return repository.NewFileBackend(dir)
	case "memory":
		return repository.NewMemoryBackend(), nil
	case "sqlite":
		path := os.Getenv("STORE_PATH")
		if path == "" {
			path = "./data/gamezoid.db"
		}
		return repository.NewSQLiteBackend(path)
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     os.Getenv("REDIS_HOST") + ":" + os.Getenv("REDIS_PORT"),
			Password: "",
			DB:       0,
		})
		ctx, cncl := context.WithTimeout(context.Background(), 5*time.Second)
		defer cncl()
		if status := rdb.Ping(ctx); status.Err() != nil {
			return nil, fmt.Errorf("redis is not working: %w", status.Err())
		}
		return repository.NewRedisBackend(rdb, context.Background())
	case "postgres":
		host := os.Getenv("DATABASE_HOST")
		port := os.Getenv("DATABASE_PORT")
		user := os.Getenv("DATABASE_USER")
		pass := os.Getenv("DATABASE_PASSWORD")
		dbname := os.Getenv("DATABASE_NAME")
		connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, pass, host, port, dbname)
		db, err := sql.Open("postgres", connStr)
		if err != nil {
			return nil, err
		}
		return repository.NewPostgresBackend(db)
	}
	return nil, fmt.Errorf("unknown STORE_BACKEND %q", os.Getenv("STORE_BACKEND"))
}
