package app

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"finpulse/api"
	"finpulse/cache"
	"finpulse/config"
	"finpulse/database"
	"finpulse/database/analytics"
	"finpulse/llm"
	"finpulse/realtime"
	"finpulse/websocket"
)

// App represents the main application
type App struct {
	config     *config.Config
	db         *database.Database
	sqlDB      *database.SQLDB
	redis      *cache.RedisClient
	broker     *realtime.Broker
	hub        *websocket.Hub
	ingestSvc  *IngestService
	insightSvc *InsightService
}

// New creates a new application instance
func New(cfg *config.Config) *App {
	return &App{
		config: cfg,
		broker: realtime.NewBroker(),
		hub:    websocket.NewHub(),
	}
}

// fanout forwards one event to both realtime channels.
type fanout struct {
	broker *realtime.Broker
	hub    *websocket.Hub
}

func (f fanout) Broadcast(event string, payload interface{}) {
	f.broker.Broadcast(event, payload)
	f.hub.Broadcast(event, payload)
}

// Start starts the application
func (a *App) Start() error {
	// 1. Database connection (GORM, repositories)
	fmt.Println("🗄️  Connecting to database...")

	dbPort, err := strconv.Atoi(a.config.DatabasePort)
	if err != nil {
		return fmt.Errorf("invalid database port: %w", err)
	}

	db, err := database.Connect(
		a.config.DatabaseHost,
		dbPort,
		a.config.DatabaseName,
		a.config.DatabaseUser,
		a.config.DatabasePassword,
	)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	a.db = db

	if err := a.db.InitSchema(); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}

	// 2. Raw connection for the analytics queries
	sqlDB, err := database.NewSQLConnection(database.SQLConfig{
		Host:     a.config.DatabaseHost,
		Port:     a.config.DatabasePort,
		User:     a.config.DatabaseUser,
		Password: a.config.DatabasePassword,
		DBName:   a.config.DatabaseName,
	})
	if err != nil {
		return fmt.Errorf("analytics connection failed: %w", err)
	}
	a.sqlDB = sqlDB

	// 3. Redis (optional - caching degrades gracefully without it)
	fmt.Println("🧠 Connecting to Redis...")
	redisClient := cache.NewRedisClient(
		a.config.RedisHost,
		a.config.RedisPort,
		a.config.RedisPassword,
	)
	if redisClient == nil {
		fmt.Println("⚠️  Redis connection failed. LLM insight caching disabled.")
	} else {
		a.redis = redisClient
	}

	// 4. LLM client if enabled
	var llmClient *llm.Client
	if a.config.LLM.Enabled {
		llmClient = llm.NewClient(
			a.config.LLM.Endpoint,
			a.config.LLM.APIKey,
			a.config.LLM.Model,
			time.Duration(a.config.LLM.TimeoutSeconds)*time.Second,
		)
		log.Printf("✅ LLM insight enrichment ENABLED (Model: %s)", a.config.LLM.Model)
	} else {
		log.Println("ℹ️  LLM insight enrichment DISABLED, rule-based insights only")
	}

	insCache := cache.NewInsightCache(a.redis, time.Duration(a.config.Engine.InsightCacheTTLMinutes)*time.Minute)
	a.insightSvc = NewInsightService(a.db, llmClient, insCache)
	a.ingestSvc = NewIngestService(a.db, a.insightSvc, fanout{broker: a.broker, hub: a.hub}, a.config.Engine.DemoSeed)

	// 5. Realtime broker
	go a.broker.Run()

	// 6. HTTP API
	server := api.NewServer(
		a.db.DB(),
		analytics.NewRepository(a.sqlDB.Conn()),
		a.ingestSvc,
		a.insightSvc,
		a.broker,
		a.hub,
	)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start(a.config.ServerPort)
	}()

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return fmt.Errorf("API server stopped: %w", err)
	case sig := <-sigChan:
		log.Printf("🛑 Received %v, shutting down...", sig)
	}

	return a.Stop()
}

// Stop releases all connections
func (a *App) Stop() error {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			log.Printf("⚠️  Redis close failed: %v", err)
		}
	}
	if a.sqlDB != nil {
		if err := a.sqlDB.Close(); err != nil {
			log.Printf("⚠️  Analytics connection close failed: %v", err)
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			return fmt.Errorf("database close failed: %w", err)
		}
	}
	log.Println("👋 Shutdown complete")
	return nil
}
