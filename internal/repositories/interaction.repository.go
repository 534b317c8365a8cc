package repositories

import (
	"context"
	"fmt"

	. "globeswap/internal/models"
	"globeswap/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InteractionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, interaction *Interaction) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*Interaction, error)
	UpdateStatus(
		ctx context.Context,
		tx *gorm.DB,
		id uint,
		from InteractionStatus,
		to InteractionStatus,
	) error
	ListSent(ctx context.Context, tx *gorm.DB, senderID uint) ([]*Interaction, error)
	ListReceived(ctx context.Context, tx *gorm.DB, recipientID uint) ([]*Interaction, error)
}

type interactionRepository struct {
	log logger.Logger
}

func NewInteractionRepository() InteractionRepository {
	return &interactionRepository{
		log: logger.New("interactionRepository"),
	}
}

func (r *interactionRepository) Create(
	ctx context.Context,
	tx *gorm.DB,
	interaction *Interaction,
) error {
	log := r.log.Function("Create")

	if err := tx.WithContext(ctx).Omit(clause.Associations).Create(interaction).Error; err != nil {
		return log.Err(
			"failed to create interaction",
			translateError(err, "interaction"),
			"tripID",
			interaction.TripID,
			"senderID",
			interaction.SenderID,
		)
	}

	return nil
}

func (r *interactionRepository) GetByID(
	ctx context.Context,
	tx *gorm.DB,
	id uint,
) (*Interaction, error) {
	log := r.log.Function("GetByID")

	var interaction Interaction
	if err := tx.WithContext(ctx).
		Preload("Trip").
		Preload("Trip.SkillSwap").
		Preload("Sender", selectPublicUser).
		Preload("Recipient", selectPublicUser).
		First(&interaction, "id = ?", id).Error; err != nil {
		return nil, log.Err("failed to get interaction", translateError(err, "interaction"), "id", id)
	}

	return &interaction, nil
}

// UpdateStatus only succeeds while the row still holds the expected status,
// so two racing decisions cannot both be applied.
func (r *interactionRepository) UpdateStatus(
	ctx context.Context,
	tx *gorm.DB,
	id uint,
	from InteractionStatus,
	to InteractionStatus,
) error {
	log := r.log.Function("UpdateStatus")

	result := tx.WithContext(ctx).
		Model(&Interaction{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return log.Err("failed to update interaction status", result.Error, "id", id)
	}

	if result.RowsAffected == 0 {
		return log.Err(
			"interaction status changed concurrently",
			fmt.Errorf("%w: interaction is no longer %s", types.ErrInvalidTransition, from),
			"id",
			id,
		)
	}

	return nil
}

func (r *interactionRepository) ListSent(
	ctx context.Context,
	tx *gorm.DB,
	senderID uint,
) ([]*Interaction, error) {
	log := r.log.Function("ListSent")

	var interactions []*Interaction
	if err := tx.WithContext(ctx).
		Preload("Trip").
		Preload("Trip.SkillSwap").
		Preload("Recipient", selectPublicUser).
		Where("sender_id = ?", senderID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&interactions).Error; err != nil {
		return nil, log.Err("failed to list sent interactions", err, "senderID", senderID)
	}

	return interactions, nil
}

func (r *interactionRepository) ListReceived(
	ctx context.Context,
	tx *gorm.DB,
	recipientID uint,
) ([]*Interaction, error) {
	log := r.log.Function("ListReceived")

	var interactions []*Interaction
	if err := tx.WithContext(ctx).
		Preload("Trip").
		Preload("Trip.SkillSwap").
		Preload("Sender", selectPublicUser).
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&interactions).Error; err != nil {
		return nil, log.Err(
			"failed to list received interactions",
			err,
			"recipientID",
			recipientID,
		)
	}

	return interactions, nil
}
