package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"fims/docs"
	"fims/internal/cache"
	"fims/internal/config"
	"fims/internal/credential"
	"fims/internal/db"
	"fims/internal/handler"
	"fims/internal/logging"
	"fims/internal/report"
	"fims/internal/repository"
	"fims/internal/router"
	"fims/internal/service"
)

// @title Fabric Inventory Management API
// @version 1.0
// @description Accounts with roles, an item catalog, supplier restocking and monthly reports with stock alerts.
// @host localhost:8080
// @BasePath /api
// @schemes http
func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Init("info", "json")
		log.Fatal().Err(err).Msg("load config")
	}
	logging.Init(cfg.LogLevel, cfg.LogFormat)

	gormDB, err := db.Open(cfg.Database())
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}
	if cfg.ResetDB {
		log.Warn().Msg("RESET_DB=true detected, dropping all tables")
	}
	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	cacheClient := cache.New(cfg.Cache())
	defer cacheClient.Close()
	if err := cacheClient.Ping(context.Background()); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, item lookups fall through to the database until it answers")
	}

	codec, err := credential.NewCodec(cfg.Credential())
	if err != nil {
		log.Fatal().Err(err).Msg("password hashing")
	}

	// Initialize repositories
	accountRepo := repository.NewAccountRepository(gormDB)
	itemRepo := repository.NewItemRepository(gormDB)
	reportRepo := repository.NewReportRepository(gormDB)

	// Initialize services
	engine := report.NewEngine(itemRepo, reportRepo, cfg.Thresholds())
	accountService := service.NewAccountService(accountRepo, itemRepo, engine, codec, cacheClient)
	catalogService := service.NewCatalogService(itemRepo, cacheClient)

	e := echo.New()
	e.HideBanner = true

	router.Register(
		e,
		cfg,
		handler.NewAuthHandler(accountService),
		handler.NewItemHandler(catalogService),
		handler.NewManagerHandler(accountService),
		handler.NewSupplierHandler(accountService),
		handler.NewAdminHandler(accountService),
	)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "https://"), "http://")
	}
	log.Info().Msgf("Swagger documentation available at: http://%s/swagger/index.html", docs.SwaggerInfo.Host)

	go func() {
		addr := ":" + cfg.ServerPort
		log.Info().Str("addr", addr).Str("db_driver", cfg.DBDriver).Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("server stopped")
}
