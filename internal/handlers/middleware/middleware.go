package middleware

import (
	"globeswap/config"
	"globeswap/internal/database"
	"globeswap/internal/events"

	authController "globeswap/internal/controllers/auth"

	logger "github.com/Bparsons0904/goLogger"
)

type Middleware struct {
	DB             database.DB
	authController authController.AuthControllerInterface
	Config         config.Config
	log            logger.Logger
	eventBus       *events.EventBus
}

func New(
	db database.DB,
	eventBus *events.EventBus,
	config config.Config,
	authController authController.AuthControllerInterface,
) Middleware {
	log := logger.New("middleware")

	return Middleware{
		DB:             db,
		authController: authController,
		Config:         config,
		log:            log,
		eventBus:       eventBus,
	}
}
