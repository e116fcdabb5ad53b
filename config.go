package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all environment variables for the camera service.
type Config struct {
	Port      string
	Env       string
	MongoURL  string
	MongoDB   string
	RedisURL  string
	JWTSecret string
}

// LoadConfig loads environment variables into a Config struct and validates
// them. A .env file is optional and never overrides the real environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:      os.Getenv("PORT"),
		Env:       os.Getenv("APP_ENV"),
		MongoURL:  os.Getenv("MONGO_URL"),
		MongoDB:   os.Getenv("MONGO_DB"),
		RedisURL:  os.Getenv("REDIS_URL"),
		JWTSecret: os.Getenv("JWT_SECRET"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.MongoURL == "" {
		cfg.MongoURL = "mongodb://localhost:27017"
	}
	if cfg.MongoDB == "" {
		cfg.MongoDB = "anveshak"
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}
