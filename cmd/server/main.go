package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Saroj-jagadish-mandal/ShopWise-AI/cmd/server/config"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/clients/openai"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/clients/pinecone"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/embedder"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/platform/rabbitmq"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/platform/storage"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/qa"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/server"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/tasks"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/pkg/v1/commander"
	"github.com/caarlos0/env/v6"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	var cfg config.Config
	if err := env.Parse(&cfg); err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't parse env variables")
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open Postgres connection")
	}

	store := storage.NewStore(db)
	if err = store.Migrate(); err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't migrate database schema")
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't parse Redis URL")
	}
	redisClient := redis.NewClient(redisOpts)

	amqpConnection, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open RabbitMQ connection")
	}

	conn, err := rabbitmq.NewRabbitMQ(amqpConnection, cfg.RabbitMQ.Exchange)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open RabbitMQ connection")
	}

	if err = conn.DeclareQueue(cfg.RabbitMQ.Queue, cfg.RabbitMQ.RoutingKey); err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't declare RabbitMQ queue")
	}

	openaiClient, err := openai.NewClient(cfg.OpenAI)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't create OpenAI client")
	}

	pineconeClient, err := pinecone.NewClient(cfg.Pinecone)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't create Pinecone client")
	}

	emb := embedder.NewService(openaiClient, pineconeClient, cfg.BatchSize, &logger)

	responder := qa.NewResponder(
		emb,
		openaiClient,
		qa.NewRedisCache(redisClient),
		&logger,
	)

	submitter := commander.NewScrapeCommander(
		commander.NewRabbitMQSender(conn, cfg.RabbitMQ.RoutingKey),
	)

	srv := server.NewServer(
		store,
		submitter,
		responder,
		tasks.NewTracker(redisClient),
		emb,
		&logger,
	)

	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: srv.Router(),
	}

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().
				Err(err).
				Msg("can't serve HTTP")
		}
	}()

	logger.Info().Str("addr", cfg.ListenAddr).Msg("api server up and running")

	// handle graceful shutdown
	termChan := make(chan os.Signal, 1)
	signal.Notify(termChan, syscall.SIGINT, syscall.SIGTERM)
	<-termChan

	logger.Info().Msg("graceful shutdown start")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error().
			Err(err).
			Msg("can't shut down HTTP server")
	}

	if err := amqpConnection.Close(); err != nil {
		logger.Error().
			Err(err).
			Msg("can't close RabbitMQ connection")
	}

	if err := redisClient.Close(); err != nil {
		logger.Error().
			Err(err).
			Msg("can't close Redis connection")
	}

	logger.Info().Msg("graceful shutdown successful")
}
