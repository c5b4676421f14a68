package config

import (
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/clients/openai"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/clients/pinecone"
)

// Config holds API server configuration.
type Config struct {
	ListenAddr  string `env:"LISTEN_ADDR" envDefault:":8000"`
	DatabaseURL string `env:"DATABASE_URL"`
	RedisURL    string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	BatchSize   int    `env:"EMBED_BATCH_SIZE" envDefault:"50"`

	RabbitMQ RabbitMQ
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
