package controllers

import (
	"globeswap/config"
	"globeswap/internal/database"
	"globeswap/internal/events"
	"globeswap/internal/repositories"
	"globeswap/internal/services"

	authController "globeswap/internal/controllers/auth"
	dashboardController "globeswap/internal/controllers/dashboard"
	interactionController "globeswap/internal/controllers/interactions"
	listingController "globeswap/internal/controllers/listings"
	marketplaceController "globeswap/internal/controllers/marketplace"
	userController "globeswap/internal/controllers/users"
)

type Controllers struct {
	Auth        authController.AuthControllerInterface
	User        userController.UserControllerInterface
	Listing     listingController.ListingControllerInterface
	Interaction interactionController.InteractionControllerInterface
	Marketplace marketplaceController.MarketplaceControllerInterface
	Dashboard   dashboardController.DashboardControllerInterface
}

func New(
	services services.Service,
	repos repositories.Repository,
	eventBus *events.EventBus,
	config config.Config,
	db database.DB,
) Controllers {
	return Controllers{
		Auth:        authController.New(services, repos, db),
		User:        userController.New(repos, services, config, db),
		Listing:     listingController.New(repos, services, eventBus, config, db),
		Interaction: interactionController.New(repos, services, eventBus, config, db),
		Marketplace: marketplaceController.New(repos, config, db),
		Dashboard:   dashboardController.New(repos, config, db),
	}
}
