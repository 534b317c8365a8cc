package handlers

import (
	"globeswap/internal/app"
	"globeswap/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	middleware middleware.Middleware
	log        logger.Logger
	router     fiber.Router
}

func Router(router fiber.Router, app *app.App) (err error) {
	router.Use(app.Middleware.TraceID(), app.Middleware.LoadSession())

	api := router.Group("/api")
	HealthHandler(api, app.Config)
	MetricsHandler(router)

	NewMarketplaceHandler(*app, router).Register()
	NewAuthHandler(*app, router).Register()
	NewUserHandler(*app, router).Register()
	NewListingHandler(*app, router).Register()
	NewInteractionHandler(*app, router).Register()
	NewDashboardHandler(*app, router).Register()

	return nil
}
