package repositories

import (
	"context"

	. "globeswap/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SkillSwapRepository interface {
	Create(ctx context.Context, tx *gorm.DB, skillSwap *SkillSwap) error
	GetByTripID(ctx context.Context, tx *gorm.DB, tripID uint) (*SkillSwap, error)
	Update(ctx context.Context, tx *gorm.DB, skillSwap *SkillSwap) error
}

type skillSwapRepository struct {
	log logger.Logger
}

func NewSkillSwapRepository() SkillSwapRepository {
	return &skillSwapRepository{
		log: logger.New("skillSwapRepository"),
	}
}

func (r *skillSwapRepository) Create(ctx context.Context, tx *gorm.DB, skillSwap *SkillSwap) error {
	log := r.log.Function("Create")

	if err := tx.WithContext(ctx).Omit(clause.Associations).Create(skillSwap).Error; err != nil {
		return log.Err(
			"failed to create skill swap",
			translateError(err, "skill swap for trip"),
			"tripID",
			skillSwap.TripID,
		)
	}

	return nil
}

func (r *skillSwapRepository) GetByTripID(
	ctx context.Context,
	tx *gorm.DB,
	tripID uint,
) (*SkillSwap, error) {
	log := r.log.Function("GetByTripID")

	var skillSwap SkillSwap
	if err := tx.WithContext(ctx).First(&skillSwap, "trip_id = ?", tripID).Error; err != nil {
		return nil, log.Err(
			"failed to get skill swap",
			translateError(err, "skill swap"),
			"tripID",
			tripID,
		)
	}

	return &skillSwap, nil
}

func (r *skillSwapRepository) Update(ctx context.Context, tx *gorm.DB, skillSwap *SkillSwap) error {
	log := r.log.Function("Update")

	if err := tx.WithContext(ctx).Omit(clause.Associations).Save(skillSwap).Error; err != nil {
		return log.Err(
			"failed to update skill swap",
			translateError(err, "skill swap"),
			"id",
			skillSwap.ID,
		)
	}

	return nil
}
