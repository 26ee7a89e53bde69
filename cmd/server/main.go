package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Olumuyiwaray/blog-api/internal/cache"
	"github.com/Olumuyiwaray/blog-api/internal/config"
	"github.com/Olumuyiwaray/blog-api/internal/database"
	"github.com/Olumuyiwaray/blog-api/internal/guard"
	"github.com/Olumuyiwaray/blog-api/internal/handlers"
	"github.com/Olumuyiwaray/blog-api/internal/logger"
	"github.com/Olumuyiwaray/blog-api/internal/middleware"
	"github.com/Olumuyiwaray/blog-api/internal/queue"
	"github.com/Olumuyiwaray/blog-api/internal/repository"
	"github.com/Olumuyiwaray/blog-api/internal/routes"
	"github.com/Olumuyiwaray/blog-api/internal/service"
	"github.com/Olumuyiwaray/blog-api/internal/watcher"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
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
	sugar.Infof("starting blog-api in %s environment on port %d", cfg.App.Env, cfg.App.Port)

	db, mongoClient, err := database.ConnectMongo(cfg.Mongo.URI, cfg.Mongo.Database, sugar)
	if err != nil {
		sugar.Fatal(err)
	}
	rdb, err := database.ConnectRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, sugar)
	if err != nil {
		sugar.Fatal(err)
	}

	store := cache.New(rdb, sugar)
	producer := queue.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.EmailTopic)

	userRepo := repository.NewMongoUserRepo(db)
	blogRepo := repository.NewMongoBlogRepo(db)
	commentRepo := repository.NewMongoCommentRepo(db)
	tokenRepo := repository.NewMongoTokenRepo(db)

	blogSvc := service.NewBlogService(blogRepo, commentRepo, userRepo, store, cfg.CacheTTL, sugar)
	userSvc := service.NewUserService(userRepo, tokenRepo, producer, cfg.JWT.Secret, cfg.JWTTTL, cfg.App.PublicURL, sugar)
	ownerGuard := guard.New(blogRepo)

	dev := cfg.App.Env == "development"
	userHandler := handlers.NewUserHandler(userSvc, dev)
	blogHandler := handlers.NewBlogHandler(blogSvc, dev)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	})
	app.Use(cors.New())
	app.Use(middleware.RequestLogger(sugar))
	routes.Register(app, userHandler, blogHandler, ownerGuard, cfg.JWT.Secret)

	// Background cache invalidation: lives for the whole process, stops
	// with the watcher context at shutdown.
	watchCtx, stopWatcher := context.WithCancel(context.Background())
	w := watcher.New(db.Collection("blogs"), store, sugar)
	go w.Run(watchCtx)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.App.Port)
		sugar.Infof("listening on %s", addr)
		if err := app.Listen(addr); err != nil {
			sugar.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	sugar.Info("shutting down")

	stopWatcher()

	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutCtx); err != nil {
		sugar.Errorf("fiber shutdown: %v", err)
	}
	if err := producer.Close(); err != nil {
		sugar.Errorf("kafka producer close: %v", err)
	}
	if err := mongoClient.Disconnect(shutCtx); err != nil {
		sugar.Errorf("mongo disconnect: %v", err)
	}
	if err := rdb.Close(); err != nil {
		sugar.Errorf("redis close: %v", err)
	}
	sugar.Info("shutdown complete")
}
