package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"ecfrontend/backend"
	"ecfrontend/handlers"
	"ecfrontend/utils"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, continuing..")
		}
	}
	log.Println("environment: ", os.Getenv("APP_ENV"))

	api := backend.New(os.Getenv("BACKEND_API_URL"))
	log.Println("backend API: ", api.BaseURL)

	secret := []byte(os.Getenv("FRONTEND_SECRET_KEY"))
	if len(secret) == 0 {
		log.Println("FRONTEND_SECRET_KEY not set, using insecure default")
		secret = []byte("1234secret")
	}

	// Pick the session backend: Redis when configured, Postgres as the
	// fallback, in-memory for local development.
	var store utils.SessionStore
	switch {
	case os.Getenv("REDIS_URL") != "":
		redisClient := utils.OpenRedisPool(os.Getenv("REDIS_URL"))
		defer redisClient.Close()
		store = utils.NewRedisStore(redisClient)
		log.Println("sessions: redis")
	case os.Getenv("DATABASE_URL") != "":
		dbPool, pgErr := utils.OpenDB(os.Getenv("DATABASE_URL"))
		if pgErr != nil {
			log.Fatalf("Failed to connect to database: %v", pgErr)
		}
		defer dbPool.Close()
		pgStore := utils.NewPostgresStore(dbPool)
		if err := pgStore.EnsureSchema(context.Background()); err != nil {
			log.Fatalf("Failed to create sessions table: %v", err)
		}
		store = pgStore
		log.Println("sessions: postgres")
	default:
		store = utils.NewMemoryStore()
		log.Println("sessions: in-memory (no REDIS_URL or DATABASE_URL set)")
	}

	// Set up the HTTP server and handlers
	mux := http.NewServeMux()

	// File server for static files
	fileServer := http.FileServer(http.Dir("./ui/static/"))
	mux.Handle("/static/", http.StripPrefix("/static", fileServer))

	// HTTP handlers
	mux.HandleFunc("/", handlers.Home)
	mux.HandleFunc("/signup", func(w http.ResponseWriter, r *http.Request) {
		handlers.Signup(w, r, api)
	})
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		handlers.Login(w, r, store, api, secret)
	})
	mux.HandleFunc("/dashboard", utils.RequireToken(store, secret, func(w http.ResponseWriter, r *http.Request) {
		handlers.Dashboard(w, r, store, api, secret)
	}))
	mux.HandleFunc("/logout", utils.RequireToken(store, secret, func(w http.ResponseWriter, r *http.Request) {
		handlers.LogOut(w, r, store, secret)
	}))
	mux.HandleFunc("/create_employee", utils.RequireToken(store, secret, func(w http.ResponseWriter, r *http.Request) {
		handlers.CreateEmployee(w, r, store, api, secret)
	}))
	mux.HandleFunc("/create_contract", utils.RequireToken(store, secret, func(w http.ResponseWriter, r *http.Request) {
		handlers.CreateContract(w, r, store, api, secret)
	}))
	mux.HandleFunc("/update_user/", utils.RequireToken(store, secret, func(w http.ResponseWriter, r *http.Request) {
		handlers.UpdateUser(w, r, store, api, secret)
	}))

	port := os.Getenv("PORT")
	if port == "" {
		port = "5001"
	}

	// Start the server
	log.Println("Starting server on :" + port)
	log.Fatal(http.ListenAndServe(":"+port, mux))
}
