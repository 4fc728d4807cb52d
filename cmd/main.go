package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/sbilibin2017/gw-chat-assistant/docs"
	"github.com/sbilibin2017/gw-chat-assistant/internal/config"
	"github.com/sbilibin2017/gw-chat-assistant/internal/facades"
	"github.com/sbilibin2017/gw-chat-assistant/internal/handlers"
	"github.com/sbilibin2017/gw-chat-assistant/internal/jwt"
	"github.com/sbilibin2017/gw-chat-assistant/internal/logger"
	"github.com/sbilibin2017/gw-chat-assistant/internal/middlewares"
	"github.com/sbilibin2017/gw-chat-assistant/internal/repositories"
	"github.com/sbilibin2017/gw-chat-assistant/internal/services"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title gw-chat-assistant API
// @version 1.0.0
// @description Authenticated chat service that keeps conversation history and answers through an LLM
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	ctx := context.Background()
	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Version: %s\nCommit: %s\nBuild: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// dependencies are the external systems the router is built on.
type dependencies struct {
	db          *sqlx.DB
	rdb         *redis.Client        // nil disables the conversation cache
	kafkaWriter services.KafkaWriter // nil disables chat turn events
	jwks        *keyfunc.JWKS        // nil disables Google sign-in
}

// run initializes the logger, database, Redis, Kafka, Google keys and HTTP server.
// It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context, cfg *config.Config) error {
	if err := logger.Initialize(cfg.App.LogLevel, cfg.App.LogEncoding); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Log.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.App.LogLevel)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	// Connect to PostgreSQL
	logger.Log.Infof("Connecting to PostgreSQL at %s:%d/%s", cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DB)
	db, err := sqlx.ConnectContext(ctx, "pgx", cfg.PostgresDSN())
	if err != nil {
		return fmt.Errorf("PostgreSQL connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)

	if err := repositories.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}

	deps := dependencies{db: db}

	// Connect to Redis
	if cfg.RedisEnabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:         fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("Redis connection error: %w", err)
		}
		defer rdb.Close()
		deps.rdb = rdb
	} else {
		logger.Log.Info("REDIS_HOST not set, conversation cache disabled")
	}

	// Kafka producer
	if brokers := cfg.KafkaBrokers(); len(brokers) > 0 {
		writer := &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        cfg.Kafka.Topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		}
		defer func() {
			if err := writer.Close(); err != nil {
				logger.Log.Errorw("kafka writer close error", "error", err)
			}
		}()
		deps.kafkaWriter = writer
	} else {
		logger.Log.Info("KAFKA_BROKERS not set, chat turn events disabled")
	}

	// Google signing keys
	if cfg.Google.ClientID != "" {
		jwks, err := facades.NewGoogleJWKS(ctx, cfg.Google.JWKSURL)
		if err != nil {
			return fmt.Errorf("failed to load Google keys: %w", err)
		}
		defer jwks.EndBackground()
		deps.jwks = jwks
	} else {
		logger.Log.Info("GOOGLE_CLIENT_ID not set, Google sign-in disabled")
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.App.Host, cfg.App.Port),
		Handler:           newRouter(cfg, deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)

	go func() {
		logger.Log.Infof("HTTP server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}

// newRouter wires repositories, services and handlers into the HTTP API.
func newRouter(cfg *config.Config, deps dependencies) http.Handler {
	// Initialize JWT service
	tokens := jwt.New(jwt.WithSecretKey(cfg.JWT.SecretKey), jwt.WithExpiration(cfg.JWTExpiration()))

	// Initialize repositories
	tx := repositories.NewTransactor(deps.db)
	userReadRepo := repositories.NewUserReadRepository(deps.db)
	userWriteRepo := repositories.NewUserWriteRepository(deps.db)
	convRepo := repositories.NewConversationRepository(deps.db)
	msgRepo := repositories.NewMessageRepository(deps.db)

	var cache services.ConversationCache
	if deps.rdb != nil {
		cache = repositories.NewConversationCacheRepository(deps.rdb, cfg.RedisCacheTTL())
	}

	// Initialize facades
	google := facades.NewGoogleFacade(deps.jwks, cfg.Google.ClientID)
	llm := facades.NewLLMFacade(
		facades.NewLLMClient(cfg.LLM.BaseURL, cfg.LLM.APIKey, cfg.LLMTimeout()),
		cfg.LLM.Model, cfg.LLM.Temperature, cfg.LLM.SystemPrompt,
	)

	// Initialize services
	authService := services.NewAuthService(userReadRepo, userWriteRepo, tokens, google)
	convService := services.NewConversationService(convRepo, msgRepo, cache)
	chatService := services.NewChatService(
		tx, convRepo, msgRepo,
		services.NewContextWindow(msgRepo),
		llm, cache, deps.kafkaWriter,
		cfg.Chat.HistoryWindow,
	)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware)

	// Public routes
	r.Post("/signup", handlers.NewSignupHandler(authService))
	r.Post("/login", handlers.NewLoginHandler(authService))
	r.Post("/auth/google", handlers.NewGoogleAuthHandler(authService))
	r.Get("/health", handlers.NewHealthHandler(deps.db))
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middlewares.AuthMiddleware(tokens, authService))

		r.Get("/me", handlers.NewMeHandler())
		r.Post("/chat", handlers.NewChatHandler(chatService))
		r.Delete("/messages", handlers.NewPurgeHistoryHandler(convService))

		r.Route("/conversations", func(r chi.Router) {
			r.Get("/", handlers.NewListConversationsHandler(convService))
			r.Post("/", handlers.NewCreateConversationHandler(convService))
			r.Delete("/{conversationID}", handlers.NewDeleteConversationHandler(convService))
			r.Get("/{conversationID}/messages", handlers.NewConversationMessagesHandler(convService))
			r.Patch("/{conversationID}/title", handlers.NewRenameConversationHandler(convService))
		})
	})

	return r
}
