package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipe-service/internal/config"
	"recipe-service/internal/service"
	"recipe-service/internal/store"
	"recipe-service/internal/transport/http"
	"recipe-service/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

var startTime time.Time

func main() {
	startTime = time.Now()
	cfg := config.Load()

	db, err := store.New(cfg)
	if err != nil {
		log.Fatalf("❌ [DB] Failed to connect: %v", err)
	}
	log.Println("✅ [DB] Connected and migrated")

	storageClient, err := utils.NewRecipeStorageClient(utils.RecipeStorageConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		AccessKeySecret: cfg.R2AccessKeySecret,
		BucketName:      cfg.R2BucketName,
		PublicURL:       cfg.R2PublicURL,
	})
	if err != nil {
		log.Fatalf("❌ [R2] Failed to initialize client: %v", err)
	}
	log.Println("✅ [R2] Recipe storage client initialized")

	notifications := service.NewNotificationService(db)
	handler := http.NewHandler(
		service.NewRecipeService(db),
		service.NewProfileService(db),
		service.NewFollowService(db, notifications),
		service.NewRatingService(db, notifications),
		service.NewFavoriteService(db, notifications),
		notifications,
		storageClient,
	)
	log.Println("✅ [SERVICE] Services & Handler initialized")

	app := fiber.New(fiber.Config{
		AppName:      "recipe-service",
		ErrorHandler: http.ErrorHandler,
	})

	app.Use(recover.New())

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
		MaxAge:       86400,
	}))

	app.Use(logger.New(logger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))

	handler.Register(app)
	log.Println("✅ [ROUTES] Registered /api routes")

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "recipe-service",
			"status":  "running",
		})
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		uptime := time.Since(startTime).Round(time.Second)
		return c.JSON(fiber.Map{
			"status":    "ok",
			"service":   "recipe-service",
			"uptime":    uptime.String(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("🛑 [SHUTDOWN] Graceful shutdown initiated...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ [SHUTDOWN] Error: %v", err)
		}
	}()

	log.Printf("🚀 recipe-service starting...")
	log.Printf("   🔗 Listening on port: %s", cfg.ServerPort)
	log.Printf("   🌐 CORS allowed origins: %s", cfg.AllowedOrigins)
	log.Printf("   📦 R2 bucket: %s", cfg.R2BucketName)

	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		log.Fatalf("❌ [STARTUP] Server failed to start: %v", err)
	}
}
