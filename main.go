package main

import (
	"context"
	"log"
	"time"

	"marketplace/cmd"
	"marketplace/internal/data/repository"
	"marketplace/internal/wire"
	"marketplace/pkg/database"
	"marketplace/pkg/token"
	"marketplace/pkg/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.EnsureSchema(ctx, db); err != nil {
		logger.Fatal("Failed to apply schema", zap.Error(err))
	}

	logger.Info("Database connected successfully")

	repos := repository.NewRepository(db, logger)

	// the blacklist lives in redis when configured, otherwise in postgres
	var store token.RevocationStore = repos.Token
	if config.Redis.URL != "" {
		rdb, err := token.NewRedisClient(ctx, config.Redis.URL)
		if err != nil {
			logger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer rdb.Close()
		store = token.NewRedisStore(rdb)
		logger.Info("Token blacklist backed by redis")
	} else {
		go cmd.TokenJanitor(ctx, repos.Token, time.Hour, logger)
	}

	tokens := token.NewIssuer(token.Config{
		Secret:     config.JWT.Secret,
		Issuer:     config.JWT.Issuer,
		AccessTTL:  config.JWT.AccessTTL,
		RefreshTTL: config.JWT.RefreshTTL,
	}, store)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	app := wire.Wiring(repos, tokens, config, registry, db.Ping, logger)

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
	logger.Info("Server stopped")
}
