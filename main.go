package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/ashish4bollam/Anveshak/controllers"
	"github.com/ashish4bollam/Anveshak/database"
	"github.com/ashish4bollam/Anveshak/logger"
	"github.com/ashish4bollam/Anveshak/repository"
	"github.com/ashish4bollam/Anveshak/routes"
	"github.com/ashish4bollam/Anveshak/services"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		panic("config load failed: " + err.Error())
	}

	log, err := logger.Init(cfg.Env)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	// --- Database ---
	if err := database.Connect(cfg.MongoURL, cfg.MongoDB); err != nil {
		log.Fatal("MongoDB connection failed", zap.Error(err))
	}
	log.Info("Connected to MongoDB", zap.String("database", cfg.MongoDB))

	// Redis is optional: without it the dashboard cache is skipped.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Warn("Redis unavailable, dashboard cache disabled", zap.Error(err))
			redisClient = nil
		}
	}

	// --- HTTP router ---
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	// Structured HTTP request logging
	r.Use(func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("body_size", c.Writer.Size()),
		}
		switch {
		case status >= 500:
			log.Error("http_request", fields...)
		case status >= 400:
			log.Warn("http_request", fields...)
		default:
			log.Info("http_request", fields...)
		}
	})

	// Request timeout middleware
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 60*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	// --- Dependency injection ---
	cameraRepo := repository.NewCameraRepository(database.DB)
	userRepo := repository.NewUserRepository(database.DB)

	validator := services.NewRecordValidator(cameraRepo, log)
	importService := services.NewBulkImportService(cameraRepo, validator, log)
	cameraService := services.NewCameraService(cameraRepo, redisClient, log)
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, log)

	controllers.RegisterValidations()

	authController := controllers.NewAuthController(authService)
	cameraController := controllers.NewCameraController(cameraService)
	importController := controllers.NewBulkImportController(importService)

	routes.Register(r, cfg.JWTSecret, authController, cameraController, importController)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "service": "camera-service"})
	})

	// --- HTTP server ---
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		log.Info("Camera service started", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Initiating graceful shutdown...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}
	if err := database.Close(); err != nil {
		log.Error("Database close error", zap.Error(err))
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Redis close error", zap.Error(err))
		}
	}

	log.Info("Camera service stopped")
}
