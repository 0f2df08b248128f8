package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/freshcart/storefront/internal/catalog/domain"
	"github.com/freshcart/storefront/internal/catalog/repository"
	"github.com/freshcart/storefront/kafka"
	"github.com/freshcart/storefront/pkg/database"
	"github.com/freshcart/storefront/pkg/logger"
)

// The fulfillment worker consumes placed orders and reserves stock for the
// regular lines. Complimentary lines are promotional giveaways and do not
// draw down inventory.
func main() {
	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "fulfillment-worker")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Msg("Starting fulfillment worker")

	// Load database configuration
	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "storefrontdb"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	products := repository.NewGormProductRepository(db)

	// Initialize Kafka consumer
	brokers := strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")
	groupID := getEnv("KAFKA_GROUP_ID", "fulfillment-worker")

	consumer, err := kafka.NewConsumer(brokers, groupID, []string{kafka.TopicOrderPlaced})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka consumer")
	}
	defer consumer.Close()

	consumer.RegisterHandler(kafka.EventTypeOrderPlaced, reserveStockHandler(products))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := consumer.Start(ctx); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start Kafka consumer")
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down fulfillment worker...")
}

func reserveStockHandler(products domain.ProductRepository) kafka.EventHandler {
	return func(ctx context.Context, event kafka.OrderPlacedEvent) error {
		for _, item := range event.Items {
			if item.Complimentary {
				continue
			}

			if err := products.DecrementStock(item.ProductCode, item.Quantity); err != nil {
				logger.Error(ctx).
					Err(err).
					Str("order_id", event.OrderID).
					Str("product_code", item.ProductCode).
					Msg("Failed to reserve stock")
				return err
			}

			logger.Info(ctx).
				Str("order_id", event.OrderID).
				Str("product_code", item.ProductCode).
				Int("quantity", item.Quantity).
				Msg("Stock reserved")
		}
		return nil
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
