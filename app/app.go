// File: /app/app.go

// Package app wires configuration, logging, the database and the tricycle
// service together. Every Lambda binary and the local gateway start here.
package app

import (
	"context"
	"fmt"
	"tricycle-api/config"
	"tricycle-api/controllers"
	"tricycle-api/database"
	"tricycle-api/logger"
	"tricycle-api/repositories"
	"tricycle-api/services"

	"github.com/rs/zerolog"
)

type App struct {
	Config  *config.Config
	Log     zerolog.Logger
	DB      *database.Database
	Service *services.TricycleService
}

// New loads configuration and prepares the database handle. It does not
// connect; see database.Initialize.
func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.New(cfg)

	db, err := database.Initialize(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	return &App{
		Config:  cfg,
		Log:     log,
		DB:      db,
		Service: services.NewTricycleService(repositories.NewTricycleRepository(db)),
	}, nil
}

// Controller returns the handlers. recorder may be nil.
func (a *App) Controller(recorder controllers.InvocationRecorder) *controllers.TricycleController {
	return controllers.NewTricycleController(a.Service, a.Log, recorder)
}

func (a *App) Close() error {
	return a.DB.Close()
}
