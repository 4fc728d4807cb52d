package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// DefaultSystemPrompt is sent ahead of every conversation when LLM_SYSTEM_PROMPT is unset.
const DefaultSystemPrompt = "You are a helpful AI assistant. Provide clear, accurate, and helpful responses."

// Config is the complete service configuration, read from the environment.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	JWT      JWTConfig
	Google   GoogleConfig
	LLM      LLMConfig
	Chat     ChatConfig
}

type AppConfig struct {
	Host        string `env:"APP_HOST, default=localhost"`
	Port        string `env:"APP_PORT, default=8080"`
	LogLevel    string `env:"APP_LOG_LEVEL, default=info"`
	LogEncoding string `env:"APP_LOG_ENCODING, default=json"`
}

type PostgresConfig struct {
	Host         string `env:"POSTGRES_HOST, default=localhost"`
	Port         int    `env:"POSTGRES_PORT, default=5432"`
	User         string `env:"POSTGRES_USER, default=user"`
	Password     string `env:"POSTGRES_PASSWORD, default=password"`
	DB           string `env:"POSTGRES_DB, default=chatbot_db"`
	SSLMode      string `env:"POSTGRES_SSLMODE, default=disable"`
	MaxOpenConns int    `env:"POSTGRES_MAX_OPEN_CONNS, default=16"`
	MaxIdleConns int    `env:"POSTGRES_MAX_IDLE_CONNS, default=8"`
}

// RedisConfig configures the conversation list cache. An empty host disables it.
type RedisConfig struct {
	Host            string `env:"REDIS_HOST"`
	Port            int    `env:"REDIS_PORT, default=6379"`
	DB              int    `env:"REDIS_DB, default=0"`
	Password        string `env:"REDIS_PASSWORD"`
	PoolSize        int    `env:"REDIS_POOL_SIZE, default=10"`
	MinIdleConns    int    `env:"REDIS_MIN_IDLE_CONNS, default=2"`
	CacheTTLSeconds int    `env:"REDIS_CACHE_TTL_SECONDS, default=300"`
}

// KafkaConfig configures chat turn events. Empty brokers disable publishing.
type KafkaConfig struct {
	Brokers string `env:"KAFKA_BROKERS"`
	Topic   string `env:"KAFKA_TOPIC, default=chat-turns"`
}

type JWTConfig struct {
	SecretKey     string `env:"JWT_SECRET_KEY, default=my_super_secret_key"`
	ExpireMinutes int    `env:"JWT_EXPIRE_MINUTES, default=30"`
}

// GoogleConfig configures Google sign-in. An empty client ID disables it.
type GoogleConfig struct {
	ClientID string `env:"GOOGLE_CLIENT_ID"`
	JWKSURL  string `env:"GOOGLE_JWKS_URL, default=https://www.googleapis.com/oauth2/v3/certs"`
}

type LLMConfig struct {
	BaseURL        string  `env:"LLM_BASE_URL, default=https://generativelanguage.googleapis.com/v1beta/openai"`
	APIKey         string  `env:"LLM_API_KEY"`
	Model          string  `env:"LLM_MODEL, default=gemini-2.5-flash-lite"`
	Temperature    float32 `env:"LLM_TEMPERATURE, default=0.7"`
	TimeoutSeconds int     `env:"LLM_TIMEOUT_SECONDS, default=60"`
	SystemPrompt   string  `env:"LLM_SYSTEM_PROMPT"`
}

type ChatConfig struct {
	HistoryWindow int `env:"CHAT_HISTORY_WINDOW, default=10"`
}

// Load reads the optional env file at path and then the process environment.
// Variables already set in the environment win over the file.
func Load(ctx context.Context, path string) (*Config, error) {
	_ = godotenv.Load(path)

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if strings.TrimSpace(cfg.LLM.SystemPrompt) == "" {
		cfg.LLM.SystemPrompt = DefaultSystemPrompt
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the service cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Chat.HistoryWindow <= 0 {
		errs = append(errs, errors.New("CHAT_HISTORY_WINDOW must be positive"))
	}
	if strings.TrimSpace(c.JWT.SecretKey) == "" {
		errs = append(errs, errors.New("JWT_SECRET_KEY must not be empty"))
	}
	if c.JWT.ExpireMinutes <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRE_MINUTES must be positive"))
	}
	if c.LLM.TimeoutSeconds <= 0 {
		errs = append(errs, errors.New("LLM_TIMEOUT_SECONDS must be positive"))
	}
	return errors.Join(errs...)
}

// PostgresDSN returns the pgx connection string.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Postgres.User, c.Postgres.Password, c.Postgres.Host, c.Postgres.Port, c.Postgres.DB, c.Postgres.SSLMode)
}

// RedisEnabled reports whether the conversation cache is configured.
func (c *Config) RedisEnabled() bool {
	return c.Redis.Host != ""
}

// KafkaBrokers returns the configured broker list.
func (c *Config) KafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.Kafka.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func (c *Config) JWTExpiration() time.Duration {
	return time.Duration(c.JWT.ExpireMinutes) * time.Minute
}

func (c *Config) LLMTimeout() time.Duration {
	return time.Duration(c.LLM.TimeoutSeconds) * time.Second
}

func (c *Config) RedisCacheTTL() time.Duration {
	return time.Duration(c.Redis.CacheTTLSeconds) * time.Second
}
