package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gookit/color"
	"github.com/oarkflow/squealx"
	"github.com/oarkflow/squealx/connection"

	"github.com/wattwise/wattwise/pkg/config"
	"github.com/wattwise/wattwise/pkg/http/handlers"
	"github.com/wattwise/wattwise/pkg/http/middlewares"
	"github.com/wattwise/wattwise/pkg/libs"
	"github.com/wattwise/wattwise/pkg/reports"
	"github.com/wattwise/wattwise/pkg/storage"
)

func main() {
	conf := config.New(".env", true, nil)
	cfg := config.Load(conf)

	vault, err := openVault(cfg)
	if err != nil {
		log.Fatalf("failed to open vault: %v", err)
	}

	limiter := libs.NewRateLimiter(cfg.RatePolicies)
	sessions := libs.NewSessionStore(cfg.SessionTimeout)
	auth := libs.NewManager(vault, limiter, sessions, cfg.Issuer)
	engine := reports.New(vault.DB())

	go func() {
		for range time.Tick(time.Hour) {
			sessions.CleanupExpired()
		}
	}()

	app := fiber.New()
	app.Use(middlewares.AuditLogging())
	app.Static("/", "./public")

	h := handlers.New(auth, vault, engine, cfg)
	handlers.Setup(app.Group("/energymanagement"), h)

	color.Green.Printf("wattwise listening on %s (%s, %s)\n", cfg.Addr, cfg.Environment, cfg.DBDriver)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}

func openVault(cfg *config.App) (*storage.DatabaseStorage, error) {
	if cfg.DBDriver == "sqlite" {
		return storage.OpenSQLite(cfg.DBPath)
	}
	db, _, err := connection.FromConfig(squealx.Config{
		Driver:   cfg.DBDriver,
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		Username: cfg.DBUser,
		Password: cfg.DBPassword,
		Database: cfg.DBName,
	})
	if err != nil {
		return nil, err
	}
	return storage.NewDatabaseStorage(db)
}
