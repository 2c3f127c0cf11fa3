package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"

	"github.com/afoninsb/api-yamdb/internal/api"
	"github.com/afoninsb/api-yamdb/internal/infrastructure/config"
	mongodb "github.com/afoninsb/api-yamdb/internal/infrastructure/db/mongo"
	redisdb "github.com/afoninsb/api-yamdb/internal/infrastructure/db/redis"
	"github.com/afoninsb/api-yamdb/internal/infrastructure/email"
	"github.com/afoninsb/api-yamdb/pkg/logger"
)

// @title           YaMDb API
// @version         1.0
// @description     Reviews and ratings for films, books and music.
// @BasePath        /api/v1
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	// Local development convenience; absent .env is not an error.
	_ = godotenv.Load()

	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  5 * time.Second,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		Timeout:  5 * time.Second,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}

	mail := email.NewMailer(cfg.SMTP)

	e := api.NewRouter(db, rdb, mail, api.RouterConfig{
		JWTSecret:  cfg.JWTSecret,
		CodeSecret: cfg.CodeSecret,
		TokenTTL:   cfg.TokenTTL,
	})

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting api server")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
