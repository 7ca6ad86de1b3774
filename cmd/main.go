/**
 * @description
 * This is the main entry point for the outreach-service. It is responsible for
 * initializing all components of the service, including configuration, database connection,
 * external API clients, message brokers, repositories, the core application service,
 * and the HTTP server. It wires everything together and starts the service.
 *
 * @dependencies
 * - log, net/http: Standard Go libraries for logging and HTTP server functionality.
 * - github.com/jackc/pgx/v5: PostgreSQL driver.
 * - github.com/redis/go-redis/v9: Redis client for rate limiting and cache tags.
 * - internal/api, internal/app, internal/config, internal/store: Internal packages for the service.
 * - pkg/unipileclient, pkg/voiceclient, pkg/storageclient, pkg/rabbitmq: External service clients.
 */

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/scoutline/outreach-service/internal/api"
	"github.com/scoutline/outreach-service/internal/app"
	"github.com/scoutline/outreach-service/internal/config"
	"github.com/scoutline/outreach-service/internal/store"
	rmrabbit "github.com/scoutline/outreach-service/pkg/rabbitmq"
	"github.com/scoutline/outreach-service/pkg/storageclient"
	"github.com/scoutline/outreach-service/pkg/unipileclient"
	"github.com/scoutline/outreach-service/pkg/voiceclient"
)

func main() {
	// Load application configuration from environment variables.
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("level=fatal component=bootstrap msg=\"config load failed\" err=%v", err)
	}
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		log.Fatalf("level=fatal component=bootstrap msg=\"jwt secret must be configured\" env=JWT_SECRET")
	}

	log.Printf("level=info component=bootstrap msg=\"starting outreach-service\" port=%s", cfg.ServerPort)

	// Establish a connection pool to the PostgreSQL database.
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("level=fatal component=bootstrap msg=\"database url parse failed\" err=%v", err)
	}

	poolConfig.MaxConns = 50
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute

	// Disable prepared statement caching to prevent conflicts behind pgbouncer
	poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	dbpool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		log.Fatalf("level=fatal component=bootstrap msg=\"database connection failed\" err=%v", err)
	}
	defer dbpool.Close()
	log.Println("level=info component=bootstrap msg=\"database connected\"")

	// Initialize the RabbitMQ producer to publish events. Missing broker
	// config should not prevent the service from booting; events degrade to
	// a no-op publisher.
	var eventProducer rmrabbit.Publisher
	producer, err := rmrabbit.NewEventProducer(cfg.RabbitMQURL)
	if err != nil {
		log.Printf("level=warn component=bootstrap msg=\"rabbitmq producer unavailable; using fallback\" err=%v", err)
		eventProducer = &rmrabbit.EventProducerFallback{}
	} else {
		defer producer.Close()
		eventProducer = producer
		log.Println("level=info component=bootstrap msg=\"rabbitmq producer connected\"")
	}

	// Initialize the external API clients.
	unipileClient := unipileclient.NewClient(cfg.UnipileAPIURL, cfg.UnipileAPIKey)
	voiceClient := voiceclient.NewClient(cfg.VoiceAPIBaseURL, cfg.VoiceAPIKey)
	storageClient := storageclient.NewClient(cfg.StorageAPIURL, cfg.StorageAPIKey)

	// Connect to Redis for dispatch rate limiting and credit cache tags.
	var redisClient *redis.Client
	if strings.TrimSpace(cfg.RedisURL) == "" {
		log.Println("level=warn component=bootstrap msg=\"redis url missing; rate limiting and cache tags disabled\" env=REDIS_URL")
	} else {
		redisOptions, parseErr := redis.ParseURL(cfg.RedisURL)
		if parseErr != nil {
			log.Printf("level=warn component=bootstrap msg=\"redis url parse failed; rate limiting disabled\" err=%v", parseErr)
		} else {
			redisClient = redis.NewClient(redisOptions)
			pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancelPing()
			if pingErr := redisClient.Ping(pingCtx).Err(); pingErr != nil {
				log.Printf("level=warn component=bootstrap msg=\"redis ping failed; rate limiting disabled\" err=%v", pingErr)
				redisClient.Close()
				redisClient = nil
			} else {
				defer redisClient.Close()
				log.Println("level=info component=bootstrap msg=\"redis connected\"")
			}
		}
	}

	// Initialize the data access layer (repository).
	repository := store.NewPostgresRepository(dbpool)

	// Initialize the core application service with its dependencies.
	outreachService := app.NewService(
		repository,
		unipileClient,
		storageClient,
		eventProducer,
		cfg.EventExchange,
		app.HostedAuthConfig{
			APIURL:     cfg.UnipileAPIURL,
			BaseURL:    cfg.ProductionBaseURL,
			LinkTTL:    time.Duration(cfg.HostedAuthLinkTTLMinutes) * time.Minute,
			ProviderID: "LINKEDIN",
		},
	)
	outreachService.SetStorageBucket(cfg.StorageBucket)
	if redisClient != nil {
		outreachService.SetDispatchRateLimiter(
			app.NewRedisRateLimiter(redisClient, cfg.RedisRateLimitPrefix),
			cfg.DispatchRateLimitPerMinute,
		)
		outreachService.SetCreditCache(app.NewRedisCreditCache(redisClient, cfg.RedisRateLimitPrefix))
	}

	// The assistant backend is optional; routes depending on it fail at call
	// time when no API key is configured.
	if strings.TrimSpace(cfg.GeminiAPIKey) != "" {
		generator, genErr := app.NewGeminiGenerator(context.Background(), cfg.GeminiAPIKey)
		if genErr != nil {
			log.Printf("level=warn component=bootstrap msg=\"gemini client init failed; assistant disabled\" err=%v", genErr)
		} else {
			defer generator.Close()
			outreachService.SetTextGenerator(generator)
		}
	}

	// Structured logger for the job layer.
	jobLogger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Start the in-process reconnect sweep scheduler when configured.
	jobs := app.NewJobs(outreachService, jobLogger)
	scheduler := app.NewScheduler(jobs, jobLogger, cfg.ReconnectSweepSchedule)
	scheduler.Start()
	defer scheduler.Stop()

	// Initialize the API handlers and router.
	handlers := api.NewHandlers(outreachService, voiceClient, jobLogger, cfg.ScheduleSecret)
	router := api.Routes(handlers, cfg.JWTSecret, cfg.AllowedOrigins())

	serverAddr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("level=info component=http msg=\"server listening\" addr=%s", serverAddr)

	server := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("level=fatal component=http msg=\"server stopped unexpectedly\" err=%v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Println("level=info component=http msg=\"shutdown started\"")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("level=error component=http msg=\"shutdown failed\" err=%v", err)
	}

	log.Println("level=info component=http msg=\"shutdown complete\"")
}
