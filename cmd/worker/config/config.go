package config

import (
	"time"

	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/clients/openai"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/clients/pinecone"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/scraper"
)

// Config holds pipeline worker configuration.
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	RedisURL    string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	BatchSize   int    `env:"EMBED_BATCH_SIZE" envDefault:"50"`

	RetryAttempts int           `env:"PIPELINE_RETRY_ATTEMPTS" envDefault:"3"`
	RetryBackoff  time.Duration `env:"PIPELINE_RETRY_BACKOFF" envDefault:"60s"`

	RabbitMQ RabbitMQ
	Cleanup  Cleanup
	Scraper  scraper.Config
	OpenAI   openai.Config
	Pinecone pinecone.Config
}

// RabbitMQ holds RabbitMQ configuration.
type RabbitMQ struct {
	URL        string `env:"RABBITMQ_URL"`
	Exchange   string `env:"RABBITMQ_EXCHANGE" envDefault:"shopwise-ex"`
	Queue      string `env:"RABBITMQ_QUEUE" envDefault:"shopwise.scrape-commands"`
	RoutingKey string `env:"RABBITMQ_ROUTING_KEY" envDefault:"scrape-commands"`
}

// Cleanup holds stale product cleanup configuration.
type Cleanup struct {
	MaxAge   time.Duration `env:"CLEANUP_MAX_AGE" envDefault:"720h"`
	Interval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"24h"`
}
