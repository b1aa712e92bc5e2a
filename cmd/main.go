package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"todo-service/internal/api"
	"todo-service/internal/config"
	"todo-service/internal/notify"
	"todo-service/internal/repository"
	"todo-service/internal/service"
	"todo-service/internal/session"
	"todo-service/migrations"
)

func connectDB(dsn, dbname string) (*sql.DB, error) {
	var db *sql.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = sql.Open("mysql", dsn)
		if err == nil {
			err = db.Ping()
			if err == nil {
				log.Printf("Connected to DB %s", dbname)
				return db, nil
			}
		}
		log.Printf("Retry %d: Failed to connect to DB %s: %v", i+1, dbname, err)
		time.Sleep(3 * time.Second)
	}
	return nil, fmt.Errorf("failed to connect to DB %s after retries: %v", dbname, err)
}

func main() {
	cfg := config.Load()

	db, err := connectDB(cfg.DSN(), cfg.DBName)
	if err != nil {
		panic(err)
	}

	if err := migrations.AutoMigrateUsers(3, db); err != nil {
		log.Fatalf("Failed to migrate users table: %v", err)
	}
	if err := migrations.AutoMigrateItems(3, db); err != nil {
		log.Fatalf("Failed to migrate items table: %v", err)
	}

	var sessions session.Store
	if cfg.SessionBackend == "memory" {
		sessions = session.NewMemoryStore(cfg.SessionTTL)
	} else {
		rdb := redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
		})
		sessions = session.NewRedisStore(rdb, cfg.SessionTTL)
	}

	var sender notify.Sender
	if cfg.TelegramToken != "" {
		sender = notify.NewTelegramSender(cfg.TelegramToken)
	}

	kafkaWriter := config.NewKafkaWriter("todo-events")

	userRepo := repository.NewUserRepository(db)
	itemRepo := repository.NewItemRepository(db)
	userService := service.NewUserService(userRepo, sender)
	itemService := service.NewItemService(itemRepo, kafkaWriter)
	handler := api.NewHandler(userService, itemService, sessions, cfg.SessionTTL)

	// Notifications only flow when a bot token is configured.
	if sender != nil {
		reader := config.NewKafkaReader("todo-events", "todo-notifier-group")
		consumer := notify.NewConsumer(reader, userRepo, sender)
		go consumer.Run(context.Background())
	}

	e := echo.New()

	renderer, err := api.NewRenderer(cfg.WebDir)
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}
	e.Renderer = renderer

	limiterConfig := middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(20),
				Burst:     40,
				ExpiresIn: 3 * time.Minute,
			}),
		IdentifierExtractor: func(context echo.Context) (string, error) {
			return context.Request().RemoteAddr, nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
	}

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RateLimiterWithConfig(limiterConfig))

	// Routes
	handler.RegisterRoutes(e)
	e.Static("/static", cfg.WebDir+"/static")

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]interface{}{
			"status":  "ok",
			"service": "todo-service",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	// Start server
	e.Logger.Fatal(e.Start(cfg.HTTPAddr))
}
