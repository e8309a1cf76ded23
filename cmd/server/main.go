package main

import (
	"log"
	"net/http"
	"time"

	"orumgs-api/internal/config"
	"orumgs-api/internal/database"
	"orumgs-api/internal/handlers"
	"orumgs-api/internal/market"
	"orumgs-api/internal/models"
	"orumgs-api/internal/services"
	"orumgs-api/internal/store"
	"orumgs-api/internal/utils"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"golang.org/x/time/rate"
)

func main() {
	// Load configuration
	cfg := config.LoadConfig()

	// Initialize database
	db, err := database.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	users := store.NewPostgresUserStore(db.DB)

	// Initialize JWT utility
	jwtUtil := utils.NewJWTUtil(cfg.JWTSecret, cfg.JWTExpiration)

	// Initialize email service
	emailService := services.NewEmailService(cfg)

	// Market data: adapters, aggregator, micro-cache
	coingecko := market.NewCoinGeckoClient(cfg.CoinGeckoURL)
	aggregator := market.NewAggregator(
		market.Catalog(),
		coingecko,
		market.NewBinanceClient(cfg.BinanceURL),
		market.NewExchangeRateClient(cfg.ExchangeRateURL),
		market.NewStooqClient(cfg.StooqURL),
	)
	marketService := market.NewService(aggregator, market.NewPriceCache(cfg.MarketCacheTTL))

	// Create router
	router := mux.NewRouter()

	resetLimiter := rate.NewLimiter(rate.Every(time.Hour), 3) // 3 requests per hour

	// Health check endpoint
	router.HandleFunc("/api/health", handlers.Health()).Methods("GET")

	// Auth routes
	authRouter := router.PathPrefix("/api/auth").Subrouter()
	{
		authRouter.HandleFunc("/register", handlers.Register(users)).Methods("POST")
		authRouter.HandleFunc("/login", handlers.Login(users, jwtUtil)).Methods("POST")
		authRouter.HandleFunc("/validate-token", handlers.ValidateToken(jwtUtil)).Methods("POST")
		authRouter.HandleFunc("/request-password-reset",
			handlers.RateLimitMiddleware(resetLimiter)(handlers.RequestPasswordReset(users, emailService, cfg.ClientURL))).Methods("POST")
		authRouter.HandleFunc("/reset-password",
			handlers.RateLimitMiddleware(resetLimiter)(handlers.ResetPassword(users))).Methods("POST")
	}

	// Public market routes
	publicRouter := router.PathPrefix("/api/public").Subrouter()
	{
		publicRouter.HandleFunc("/top30-list", handlers.Top30List(marketService)).Methods("GET")
		publicRouter.HandleFunc("/market-prices", handlers.MarketPrices(marketService)).Methods("GET")
		publicRouter.HandleFunc("/crypto-prices", handlers.CryptoPrices(coingecko)).Methods("GET")
	}

	// Admin routes
	adminRouter := router.PathPrefix("/api").Subrouter()
	adminRouter.Use(handlers.JWTMiddleware(jwtUtil))
	{
		staffOnly := handlers.RequireRoles(models.RoleOwner, models.RoleManager, models.RoleWorker)
		ownerOnly := handlers.RequireRoles(models.RoleOwner)

		adminRouter.HandleFunc("/users", staffOnly(handlers.ListUsers(users))).Methods("GET")
		adminRouter.HandleFunc("/users/{id:[0-9]+}/role", ownerOnly(handlers.ChangeUserRole(users))).Methods("PUT")
		adminRouter.HandleFunc("/users/{id:[0-9]+}", ownerOnly(handlers.DeleteUser(users))).Methods("DELETE")
	}

	// CORS configuration
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	// Start server
	log.Printf("Server running on port %s", cfg.AppPort)
	log.Fatal(http.ListenAndServe(":"+cfg.AppPort, corsHandler.Handler(router)))
}
