package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

const (
	DefaultLocalAPIBaseURL = "http://localhost:8080/api"
	DefaultAIServiceURL    = "http://localhost:5000"
)

// Endpoint selects which backend origin a client talks to. The backends are
// configured independently; a client never silently switches between them.
type Endpoint int

const (
	// EndpointPrimary is API_BASE_URL with no default.
	EndpointPrimary Endpoint = iota
	// EndpointLocalFallback is API_BASE_URL, or LOCAL_API_BASE_URL when unset.
	EndpointLocalFallback
	// EndpointAI is the separate suggestion service origin.
	EndpointAI
)

type Config struct {
	Env      string
	LogLevel string

	APIBaseURL      string
	LocalAPIBaseURL string
	AIServiceURL    string
	HTTPTimeout     time.Duration

	SessionStore string
	SessionKey   string
	SessionTTL   time.Duration
	RedisHost    string
	RedisPort    string
	RedisDB      int

	KafkaBroker        string
	SessionEventsTopic string

	GatewayAddr           string
	GatewayAllowedOrigins []string
}

// Load reads the environment, picking up a .env file in the working
// directory when one exists.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		APIBaseURL:      strings.TrimRight(getEnv("API_BASE_URL", ""), "/"),
		LocalAPIBaseURL: strings.TrimRight(getEnv("LOCAL_API_BASE_URL", DefaultLocalAPIBaseURL), "/"),
		AIServiceURL:    strings.TrimRight(getEnv("AI_SERVICE_URL", DefaultAIServiceURL), "/"),
		HTTPTimeout:     getDuration("HTTP_TIMEOUT", 15*time.Second),

		SessionStore: getEnv("SESSION_STORE", "memory"),
		SessionKey:   getEnv("SESSION_KEY", "cloudkitchen:session"),
		SessionTTL:   getDuration("SESSION_TTL", 0),
		RedisHost:    getEnv("REDIS_HOST", "localhost"),
		RedisPort:    getEnv("REDIS_PORT", "6379"),
		RedisDB:      getInt("REDIS_DB", 0),

		KafkaBroker:        getEnv("KAFKA_BROKER", ""),
		SessionEventsTopic: getEnv("SESSION_EVENTS_TOPIC", "session-events"),

		GatewayAddr:           getEnv("GATEWAY_ADDR", ":8090"),
		GatewayAllowedOrigins: getList("GATEWAY_ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://127.0.0.1:5173"}),
	}
}

// BaseURLFor returns the origin + prefix a client of the given kind targets.
// EndpointPrimary may be empty when API_BASE_URL is not configured.
func (c Config) BaseURLFor(e Endpoint) string {
	switch e {
	case EndpointLocalFallback:
		if c.APIBaseURL != "" {
			return c.APIBaseURL
		}
		return c.LocalAPIBaseURL
	case EndpointAI:
		return c.AIServiceURL
	default:
		return c.APIBaseURL
	}
}

func (c Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

func MustInitRedis(cfg Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr(),
		DB:   cfg.RedisDB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		panic(fmt.Sprintf("failed to connect to Redis at %s: %v", cfg.RedisAddr(), err))
	}

	return client
}

func NewKafkaWriter(cfg Config) *kafka.Writer {
	if cfg.KafkaBroker == "" {
		return nil
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.KafkaBroker),
		Topic:                  cfg.SessionEventsTopic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
}

// NewKafkaReader tails the session events topic. groupID may be empty to
// read without committing offsets.
func NewKafkaReader(cfg Config, groupID string) *kafka.Reader {
	if cfg.KafkaBroker == "" {
		return nil
	}
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  []string{cfg.KafkaBroker},
		Topic:    cfg.SessionEventsTopic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}
