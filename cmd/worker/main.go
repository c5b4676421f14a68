package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/Saroj-jagadish-mandal/ShopWise-AI/cmd/worker/config"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/clients/openai"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/clients/pinecone"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/embedder"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/handler"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/pipeline"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/platform/rabbitmq"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/platform/storage"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/scraper"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/tasks"
	"github.com/caarlos0/env/v6"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())

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

	runner := pipeline.NewRunner(
		scraper.NewScraper(cfg.Scraper, &logger),
		emb,
		store,
		&logger,
	)

	han := handler.NewHandler(
		conn,
		runner,
		tasks.NewTracker(redisClient),
		&logger,
		handler.WithRetry(cfg.RetryAttempts, cfg.RetryBackoff),
	)

	// start consuming and handling scrape commands
	if err = han.Start(ctx, cfg.RabbitMQ.Queue); err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't start consuming")
	}

	// periodically purge products older than the retention window
	sweeper := pipeline.NewSweeper(store, emb, cfg.Cleanup.MaxAge, &logger)
	go sweeper.Start(ctx, cfg.Cleanup.Interval)

	logger.Info().Msg("pipeline worker up and running")

	// handle graceful shutdown and context cancellation
	termChan := make(chan os.Signal, 1)
	signal.Notify(termChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-termChan:
		cancel()
	case <-ctx.Done():
	}

	logger.Info().Msg("graceful shutdown start")

	// wait for consumer to finish
	<-conn.Done()

	// close connections
	wg := sync.WaitGroup{}
	wg.Add(2)

	go func() {
		defer wg.Done()
		if err := amqpConnection.Close(); err != nil {
			logger.Error().
				Err(err).
				Msg("can't close RabbitMQ connection")
		}
	}()

	go func() {
		defer wg.Done()
		if err := redisClient.Close(); err != nil {
			logger.Error().
				Err(err).
				Msg("can't close Redis connection")
		}
	}()

	wg.Wait()

	logger.Info().Msg("graceful shutdown successful")
}
