package marketplaceController

import (
	"context"

	"globeswap/config"
	"globeswap/internal/database"
	"globeswap/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
)

type MarketplaceController struct {
	tripRepo repositories.TripRepository
	db       database.DB
	Config   config.Config
	log      logger.Logger
}

type MarketplaceControllerInterface interface {
	GetMarketplace(ctx context.Context) (*repositories.Marketplace, error)
}

func New(
	repos repositories.Repository,
	config config.Config,
	db database.DB,
) MarketplaceControllerInterface {
	repos.Trip.SetMarketplaceCacheTTL(config.MarketplaceCacheTTL())

	return &MarketplaceController{
		tripRepo: repos.Trip,
		db:       db,
		Config:   config,
		log:      logger.New("marketplaceController"),
	}
}

// GetMarketplace returns every listing split into traveler requests and host
// offers, newest first.
func (mc *MarketplaceController) GetMarketplace(ctx context.Context) (*repositories.Marketplace, error) {
	log := mc.log.Function("GetMarketplace")

	marketplace, err := mc.tripRepo.GetMarketplace(ctx, mc.db.SQL)
	if err != nil {
		return nil, log.Err("failed to load marketplace", err)
	}

	return marketplace, nil
}
