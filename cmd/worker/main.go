// The worker consumes email jobs from the queue and delivers them
// through the mail transport. It runs as its own process so delivery
// never competes with request handling.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Olumuyiwaray/blog-api/internal/config"
	"github.com/Olumuyiwaray/blog-api/internal/logger"
	"github.com/Olumuyiwaray/blog-api/internal/mailer"
	"github.com/Olumuyiwaray/blog-api/internal/queue"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment")
	}

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	sugar, err := logger.New(cfg.App.Env)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = sugar.Sync() }()
	sugar.Infof("starting email worker, %d consumers on topic %s", cfg.Kafka.Workers, cfg.Kafka.EmailTopic)

	m := mailer.NewBrevoClient(cfg.Mail.APIKey, cfg.Mail.SenderEmail, cfg.Mail.SenderName, cfg.Mail.BaseURL)
	pool := queue.NewPool(
		cfg.Kafka.Brokers,
		cfg.Kafka.EmailTopic,
		cfg.Kafka.ConsumerGroup,
		cfg.Kafka.Workers,
		m,
		cfg.Queue.Attempts,
		cfg.Backoff,
		sugar,
	)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		sugar.Info("shutting down worker")
		cancel()
	}()

	pool.Run(ctx)
	pool.Close()
	sugar.Info("worker stopped")
}
