package app

import (
	"globeswap/config"
	"globeswap/internal/controllers"
	"globeswap/internal/database"
	"globeswap/internal/events"
	"globeswap/internal/handlers/middleware"
	"globeswap/internal/metrics"
	"globeswap/internal/repositories"
	"globeswap/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

type App struct {
	Database    database.DB
	Middleware  middleware.Middleware
	EventBus    *events.EventBus
	Config      config.Config
	Services    services.Service
	Repos       repositories.Repository
	Controllers controllers.Controllers
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.New()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	return NewWithDB(config, db)
}

// NewWithDB wires the application around an already opened database.
func NewWithDB(config config.Config, db database.DB) (*App, error) {
	log := logger.New("app").Function("NewWithDB")

	eventBus := events.New(db.Cache.Events)

	metrics.Register()
	if err := metrics.Subscribe(eventBus); err != nil {
		return &App{}, log.Err("failed to subscribe metrics to event bus", err)
	}

	repos := repositories.New(db)
	svc := services.New(db, config)
	ctrls := controllers.New(svc, repos, eventBus, config, db)
	middleware := middleware.New(db, eventBus, config, ctrls.Auth)

	app := &App{
		Database:    db,
		Middleware:  middleware,
		EventBus:    eventBus,
		Config:      config,
		Services:    svc,
		Repos:       repos,
		Controllers: ctrls,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.EventBus,
		a.Services.Transaction,
		a.Services.Auth,
		a.Repos.User,
		a.Repos.Trip,
		a.Repos.SkillSwap,
		a.Repos.Interaction,
		a.Controllers.Auth,
		a.Controllers.User,
		a.Controllers.Listing,
		a.Controllers.Interaction,
		a.Controllers.Marketplace,
		a.Controllers.Dashboard,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.EventBus != nil {
		if closeErr := a.EventBus.Close(); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
