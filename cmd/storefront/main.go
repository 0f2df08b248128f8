package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	cartDelivery "github.com/freshcart/storefront/internal/cart/delivery/http"
	cartDomain "github.com/freshcart/storefront/internal/cart/domain"
	cartRepository "github.com/freshcart/storefront/internal/cart/repository"
	catalogClient "github.com/freshcart/storefront/internal/catalog/client"
	catalogDelivery "github.com/freshcart/storefront/internal/catalog/delivery/http"
	catalogDomain "github.com/freshcart/storefront/internal/catalog/domain"
	catalogRepository "github.com/freshcart/storefront/internal/catalog/repository"
	catalogCommand "github.com/freshcart/storefront/internal/catalog/usecase/command"
	catalogQuery "github.com/freshcart/storefront/internal/catalog/usecase/query"
	orderDelivery "github.com/freshcart/storefront/internal/order/delivery/http"
	orderDomain "github.com/freshcart/storefront/internal/order/domain"
	orderRepository "github.com/freshcart/storefront/internal/order/repository"
	wishlistDelivery "github.com/freshcart/storefront/internal/wishlist/delivery/http"
	wishlistDomain "github.com/freshcart/storefront/internal/wishlist/domain"
	wishlistRepository "github.com/freshcart/storefront/internal/wishlist/repository"
	"github.com/freshcart/storefront/kafka"
	"github.com/freshcart/storefront/pkg/database"
	"github.com/freshcart/storefront/pkg/logger"
	"github.com/freshcart/storefront/pkg/session"
	"github.com/freshcart/storefront/pkg/tracing"
)

func main() {
	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "storefront-service")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Str("log_level", logLevel).
		Msg("Starting storefront service")

	// Initialize tracer
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Load database configuration
	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "storefrontdb"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Connect to database
	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Run migrations
	if err := db.AutoMigrate(
		&catalogDomain.Product{},
		&wishlistDomain.Item{},
		&orderDomain.Order{},
		&orderDomain.OrderLine{},
	); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	logger.Logger.Info().Msg("Database initialized successfully")

	// Connect to Redis for the upstream catalog cache
	redisAddr := getEnv("REDIS_ADDR", "localhost:6379")
	redisPassword := getEnv("REDIS_PASSWORD", "")

	redisClient := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       0,
	})

	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Logger.Warn().
			Err(err).
			Str("redis_addr", redisAddr).
			Msg("Failed to connect to Redis - catalog caching will be disabled")
		redisClient = nil
	} else {
		logger.Logger.Info().
			Str("redis_addr", redisAddr).
			Msg("Connected to Redis for catalog caching")
	}

	// Initialize Kafka publisher for order fulfillment (optional)
	var publisher orderDomain.EventPublisher
	kafkaBrokers := getEnv("KAFKA_BROKERS", "localhost:9092")
	kafkaPublisher, err := kafka.NewPublisher([]string{kafkaBrokers})
	if err != nil {
		logger.Logger.Warn().
			Err(err).
			Str("kafka_brokers", kafkaBrokers).
			Msg("Failed to connect to Kafka - order events will not be published")
	} else {
		publisher = kafkaPublisher
		defer kafkaPublisher.Close()
	}

	// Build the catalog context
	upstreamURL := getEnv("CATALOG_API_URL", "https://uxdlyqjm9i.execute-api.eu-west-1.amazonaws.com/s")
	upstream := catalogClient.NewClient(upstreamURL, redisClient)
	productRepo := catalogRepository.NewGormProductRepositoryWithTracing(db)

	productHandler := catalogDelivery.NewProductHandlerWithDI(
		catalogCommand.NewSyncCatalogHandler(upstream, productRepo),
		catalogQuery.NewListProductsHandler(productRepo),
		catalogQuery.NewSearchProductsHandler(productRepo),
		catalogQuery.NewGetProductHandler(productRepo),
		sqlDB,
	)

	// Build the session-scoped contexts
	engine := cartDomain.NewEngine(cartDomain.DefaultPromotions())
	carts := cartRepository.NewMemoryCartRepository(engine)

	cartHandler := cartDelivery.NewCartHandler(carts, productRepo)
	wishlistHandler := wishlistDelivery.NewWishlistHandler(wishlistRepository.NewGormWishlistRepository(db), productRepo)
	orderHandler := orderDelivery.NewOrderHandler(carts, orderRepository.NewGormOrderRepository(db), publisher)

	logger.Logger.Info().
		Str("upstream_catalog", upstreamURL).
		Msg("Storefront handlers initialized")

	// Start HTTP server
	httpPort := getEnv("HTTP_PORT", "8080")
	go startHTTPServer(productHandler, cartHandler, wishlistHandler, orderHandler, httpPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
}

func startHTTPServer(
	productHandler *catalogDelivery.ProductHandler,
	cartHandler *cartDelivery.CartHandler,
	wishlistHandler *wishlistDelivery.WishlistHandler,
	orderHandler *orderDelivery.OrderHandler,
	port string,
) {
	// Setup router
	router := mux.NewRouter()

	// Catalog routes are session-free
	productHandler.RegisterRoutes(router)

	// Cart, wishlist and order routes require a session
	sessionRouter := router.NewRoute().Subrouter()
	sessionRouter.Use(session.Middleware)
	cartHandler.RegisterRoutes(sessionRouter)
	wishlistHandler.RegisterRoutes(sessionRouter)
	orderHandler.RegisterRoutes(sessionRouter)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	logger.Logger.Info().
		Str("port", port).
		Str("metrics_endpoint", "/metrics").
		Msg("HTTP server started")

	if err := http.ListenAndServe(":"+port, c.Handler(router)); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
