package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/lamar-health/care-plan-service/internal/config"
	"github.com/lamar-health/care-plan-service/internal/db"
	apphttp "github.com/lamar-health/care-plan-service/internal/http"
	"github.com/lamar-health/care-plan-service/internal/llm"
	"github.com/lamar-health/care-plan-service/internal/messaging"
	"github.com/lamar-health/care-plan-service/internal/telemetry"
	"github.com/lamar-health/care-plan-service/internal/web"
)

func main() {
	if err := godotenv.Load(); err == nil {
		log.Println("✓ Loaded environment from .env")
	}

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	ctx := context.Background()

	telemetryProvider, err := telemetry.InitProvider(ctx, telemetry.LoadConfig())
	if err != nil {
		log.Printf("Warning: telemetry initialization failed: %v", err)
	}
	defer telemetryProvider.Shutdown(ctx)

	metrics, err := telemetry.InitMetrics()
	if err != nil {
		log.Printf("Warning: failed to initialize metrics: %v", err)
		metrics = nil
	}

	database, err := db.Connect()
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	publisher, err := messaging.NewPublisher()
	if err != nil {
		log.Printf("Warning: RabbitMQ unavailable, continuing without events: %v", err)
		publisher = nil
	}
	defer publisher.Close()

	generator, err := llm.NewClient(cfg.LLM.Model, cfg.LLM.MaxTokens, cfg.LLM.Temperature)
	if err != nil {
		log.Fatalf("failed to initialize generation client: %v", err)
	}

	renderer, err := web.NewRenderer()
	if err != nil {
		log.Fatalf("failed to load templates: %v", err)
	}

	router := apphttp.SetupRouter(database, cfg, generator, publisher, metrics, renderer)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	go func() {
		log.Printf("care-plan-service starting on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("✓ Server stopped")
}
