package dashboardController

import (
	"context"

	"globeswap/config"
	"globeswap/internal/database"
	. "globeswap/internal/models"
	"globeswap/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
)

type Dashboard struct {
	User     UserProfile    `json:"user"`
	Trips    []*Trip        `json:"trips"`
	Sent     []*Interaction `json:"sent"`
	Received []*Interaction `json:"received"`
}

type DashboardController struct {
	tripRepo        repositories.TripRepository
	interactionRepo repositories.InteractionRepository
	db              database.DB
	Config          config.Config
	log             logger.Logger
}

type DashboardControllerInterface interface {
	GetDashboard(ctx context.Context, user *User) (*Dashboard, error)
}

func New(
	repos repositories.Repository,
	config config.Config,
	db database.DB,
) DashboardControllerInterface {
	return &DashboardController{
		tripRepo:        repos.Trip,
		interactionRepo: repos.Interaction,
		db:              db,
		Config:          config,
		log:             logger.New("dashboardController"),
	}
}

func (dc *DashboardController) GetDashboard(ctx context.Context, user *User) (*Dashboard, error) {
	log := dc.log.Function("GetDashboard")

	trips, err := dc.tripRepo.ListByUser(ctx, dc.db.SQL, user.ID)
	if err != nil {
		return nil, log.Err("failed to load user trips", err, "userID", user.ID)
	}

	sent, err := dc.interactionRepo.ListSent(ctx, dc.db.SQL, user.ID)
	if err != nil {
		return nil, log.Err("failed to load sent interactions", err, "userID", user.ID)
	}

	received, err := dc.interactionRepo.ListReceived(ctx, dc.db.SQL, user.ID)
	if err != nil {
		return nil, log.Err("failed to load received interactions", err, "userID", user.ID)
	}

	return &Dashboard{
		User:     user.ToProfile(),
		Trips:    trips,
		Sent:     sent,
		Received: received,
	}, nil
}
