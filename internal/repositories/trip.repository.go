package repositories

import (
	"context"
	"time"

	"globeswap/internal/constants"
	"globeswap/internal/database"
	. "globeswap/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Marketplace is the public listing split by listing type.
type Marketplace struct {
	Requests []*Trip `json:"requests"`
	Offers   []*Trip `json:"offers"`
}

type TripRepository interface {
	Create(ctx context.Context, tx *gorm.DB, trip *Trip) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*Trip, error)
	Update(ctx context.Context, tx *gorm.DB, trip *Trip) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	ListByOffer(ctx context.Context, tx *gorm.DB, isAccommodationOffer bool) ([]*Trip, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uint) ([]*Trip, error)
	GetMarketplace(ctx context.Context, tx *gorm.DB) (*Marketplace, error)
	ClearMarketplaceCache(ctx context.Context)
	SetMarketplaceCacheTTL(ttl time.Duration)
}

type tripRepository struct {
	cache    database.CacheClient
	cacheTTL time.Duration
	log      logger.Logger
}

func NewTripRepository(cache database.CacheClient) TripRepository {
	return &tripRepository{
		cache:    cache,
		cacheTTL: constants.MarketplaceCacheExpiry,
		log:      logger.New("tripRepository"),
	}
}

// SetMarketplaceCacheTTL overrides the marketplace cache lifetime; zero
// disables caching.
func (r *tripRepository) SetMarketplaceCacheTTL(ttl time.Duration) {
	r.cacheTTL = ttl
}

func (r *tripRepository) Create(ctx context.Context, tx *gorm.DB, trip *Trip) error {
	log := r.log.Function("Create")

	if err := tx.WithContext(ctx).Omit(clause.Associations).Create(trip).Error; err != nil {
		return log.Err("failed to create trip", translateError(err, "trip"), "userID", trip.UserID)
	}

	return nil
}

func (r *tripRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*Trip, error) {
	log := r.log.Function("GetByID")

	var trip Trip
	if err := tx.WithContext(ctx).
		Preload("SkillSwap").
		Preload("User", selectPublicUser).
		First(&trip, "id = ?", id).Error; err != nil {
		return nil, log.Err("failed to get trip", translateError(err, "trip"), "id", id)
	}

	return &trip, nil
}

func (r *tripRepository) Update(ctx context.Context, tx *gorm.DB, trip *Trip) error {
	log := r.log.Function("Update")

	if err := tx.WithContext(ctx).Omit(clause.Associations).Save(trip).Error; err != nil {
		return log.Err("failed to update trip", translateError(err, "trip"), "id", trip.ID)
	}

	return nil
}

// Delete removes the trip together with its skill swap and interactions.
func (r *tripRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	log := r.log.Function("Delete")

	db := tx.WithContext(ctx)

	if err := db.Where("trip_id = ?", id).Delete(&Interaction{}).Error; err != nil {
		return log.Err("failed to delete trip interactions", err, "id", id)
	}

	if err := db.Where("trip_id = ?", id).Delete(&SkillSwap{}).Error; err != nil {
		return log.Err("failed to delete trip skill swap", err, "id", id)
	}

	result := db.Where("id = ?", id).Delete(&Trip{})
	if result.Error != nil {
		return log.Err("failed to delete trip", result.Error, "id", id)
	}

	if result.RowsAffected == 0 {
		return log.Err("failed to delete trip", translateError(gorm.ErrRecordNotFound, "trip"), "id", id)
	}

	return nil
}

func (r *tripRepository) ListByOffer(
	ctx context.Context,
	tx *gorm.DB,
	isAccommodationOffer bool,
) ([]*Trip, error) {
	log := r.log.Function("ListByOffer")

	var trips []*Trip
	if err := tx.WithContext(ctx).
		Preload("SkillSwap").
		Preload("User", selectPublicUser).
		Where("is_accommodation_offer = ?", isAccommodationOffer).
		Order("created_at DESC").
		Order("id DESC").
		Find(&trips).Error; err != nil {
		return nil, log.Err(
			"failed to list trips",
			err,
			"isAccommodationOffer",
			isAccommodationOffer,
		)
	}

	return trips, nil
}

func (r *tripRepository) ListByUser(ctx context.Context, tx *gorm.DB, userID uint) ([]*Trip, error) {
	log := r.log.Function("ListByUser")

	var trips []*Trip
	if err := tx.WithContext(ctx).
		Preload("SkillSwap").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&trips).Error; err != nil {
		return nil, log.Err("failed to list user trips", err, "userID", userID)
	}

	return trips, nil
}

func (r *tripRepository) GetMarketplace(ctx context.Context, tx *gorm.DB) (*Marketplace, error) {
	log := r.log.Function("GetMarketplace")

	var cached Marketplace
	found, err := r.marketplaceCache(ctx).Get(&cached)
	if err != nil {
		log.Warn("failed to get marketplace from cache", "error", err)
	}

	if found {
		return &cached, nil
	}

	requests, err := r.ListByOffer(ctx, tx, false)
	if err != nil {
		return nil, err
	}

	offers, err := r.ListByOffer(ctx, tx, true)
	if err != nil {
		return nil, err
	}

	marketplace := &Marketplace{Requests: requests, Offers: offers}

	if r.cacheTTL > 0 {
		if err := r.marketplaceCache(ctx).
			WithStruct(marketplace).
			WithTTL(r.cacheTTL).
			Set(); err != nil {
			log.Warn("failed to cache marketplace", "error", err)
		}
	}

	return marketplace, nil
}

// ClearMarketplaceCache drops the cached marketplace. Call it after any
// listing write has committed.
func (r *tripRepository) ClearMarketplaceCache(ctx context.Context) {
	if err := r.marketplaceCache(ctx).Delete(); err != nil {
		r.log.Warn("failed to clear marketplace cache", "error", err)
	}
}

func (r *tripRepository) marketplaceCache(ctx context.Context) *database.CacheBuilder {
	return database.NewCacheBuilder(r.cache, constants.MarketplaceCacheKey).
		WithContext(ctx).
		WithHash(constants.MarketplaceCachePrefix)
}

func selectPublicUser(db *gorm.DB) *gorm.DB {
	return db.Select("id", "username", "created_at")
}
