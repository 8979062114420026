package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/mindvale/clinic/internal/cache"
	"github.com/mindvale/clinic/internal/config"
	"github.com/mindvale/clinic/internal/repositories/directory"
	sessionRepo "github.com/mindvale/clinic/internal/repositories/session"
	"github.com/mindvale/clinic/internal/schedule"
	sessionService "github.com/mindvale/clinic/internal/services/session"
	storage "github.com/mindvale/clinic/internal/storage/sqlite"
)

func main() {
	// Load .env in development; missing file is fine
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Open the durable store and apply migrations
	db, err := storage.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	// Initialize the cache client
	cacheClient, err := cache.NewRedis(&cache.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create cache client: %v", err)
	}

	// Initialize repositories
	sessions, err := sessionRepo.NewSQLite(&sessionRepo.Config{
		DB:       db,
		Cache:    cacheClient,
		CacheTTL: cfg.CacheTTL,
	})
	if err != nil {
		log.Fatalf("Failed to create session repository: %v", err)
	}

	people, err := directory.NewSQLite(&directory.Config{
		DB: db,
	})
	if err != nil {
		log.Fatalf("Failed to create directory repository: %v", err)
	}

	// Initialize the scheduling service
	svc, err := sessionService.New(&sessionService.Config{
		SessionRepo: sessions,
		Directory:   people,
	})
	if err != nil {
		log.Fatalf("Failed to create session service: %v", err)
	}

	// Startup self-check: exercise the full read path once
	upcoming, err := svc.SearchSessions(ctx, &sessionService.SearchSessionsInput{
		Filters: &schedule.SearchFilters{
			StartTimeAfter: time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		log.Fatalf("Failed startup search: %v", err)
	}

	log.Printf("clinicd ready (db=%s redis=%s upcoming_sessions=%d)",
		cfg.DatabasePath, cfg.RedisAddr, len(upcoming.Sessions))

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("clinicd has been shut down")
}
