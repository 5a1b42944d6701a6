package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv" // Load .env files into the environment
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/MuhsinADA/ese-backend/internal/config"
	"github.com/MuhsinADA/ese-backend/internal/database"
	"github.com/MuhsinADA/ese-backend/internal/handler"
	"github.com/MuhsinADA/ese-backend/internal/middleware"
	"github.com/MuhsinADA/ese-backend/internal/queue"
	"github.com/MuhsinADA/ese-backend/internal/repository"
	"github.com/MuhsinADA/ese-backend/internal/router"
	"github.com/MuhsinADA/ese-backend/internal/service"
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs the response cache, rate limiting and password-reset
	// tokens. The server still runs without it; each consumer degrades
	// on a nil client.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable: caching, rate limiting and password reset disabled")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	categories := repository.NewCategoryRepo(db)
	tasks := repository.NewTaskRepo(db)
	var resets *repository.ResetRepo
	if rdb != nil {
		resets = repository.NewResetRepo(rdb)
	}

	uploader := service.NewImageUploader(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	mailer := service.NewMailer(cfg.SendGridAPIKey, cfg.EmailFrom)
	// Drain the outbound email queue for as long as the process lives.
	go queue.StartEmailConsumer(mailer.Send)

	auth := handler.NewAuthHandler(cfg, users, tokens, resets, uploader)
	cat := handler.NewCategoryHandler(categories)
	task := handler.NewTaskHandler(tasks, categories)

	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	router.RegisterRoutes(e)
	router.RegisterAuth(e, auth, cfg.JWTSecret)
	router.RegisterResources(e, cat, task, cfg.JWTSecret,
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
	)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err)
	}
}
