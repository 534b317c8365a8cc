package interactionController

import (
	"context"
	"fmt"

	"globeswap/config"
	"globeswap/internal/database"
	"globeswap/internal/events"
	. "globeswap/internal/models"
	"globeswap/internal/repositories"
	"globeswap/internal/services"
	"globeswap/internal/types"
	"globeswap/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

const MaxMessageLength = 2000

type InteractionController struct {
	tripRepo        repositories.TripRepository
	interactionRepo repositories.InteractionRepository
	transaction     *services.TransactionService
	eventBus        *events.EventBus
	db              database.DB
	Config          config.Config
	log             logger.Logger
}

type InteractionControllerInterface interface {
	GetTarget(ctx context.Context, user *User, tripID uint) (*Trip, error)
	Create(ctx context.Context, user *User, tripID uint, message string) (*Interaction, error)
	UpdateStatus(
		ctx context.Context,
		user *User,
		interactionID uint,
		status string,
	) (*Interaction, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	eventBus *events.EventBus,
	config config.Config,
	db database.DB,
) InteractionControllerInterface {
	return &InteractionController{
		tripRepo:        repos.Trip,
		interactionRepo: repos.Interaction,
		transaction:     services.Transaction,
		eventBus:        eventBus,
		db:              db,
		Config:          config,
		log:             logger.New("interactionController"),
	}
}

// GetTarget loads the listing a user is about to contact.
func (ic *InteractionController) GetTarget(ctx context.Context, user *User, tripID uint) (*Trip, error) {
	log := ic.log.Function("GetTarget")

	trip, err := ic.tripRepo.GetByID(ctx, ic.db.SQL, tripID)
	if err != nil {
		return nil, log.Err("failed to load interaction target", err, "tripID", tripID)
	}

	if err := checkNotOwner(trip, user); err != nil {
		return nil, err
	}

	return trip, nil
}

func (ic *InteractionController) Create(
	ctx context.Context,
	user *User,
	tripID uint,
	message string,
) (*Interaction, error) {
	log := ic.log.Function("Create")

	message = utils.CleanInput(message)
	if utils.TooLong(message, MaxMessageLength) {
		return nil, log.ErrorWithType(
			types.ErrValidation,
			fmt.Sprintf("message must be at most %d characters", MaxMessageLength),
			"senderID", user.ID,
		)
	}

	var interaction *Interaction
	err := ic.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		trip, err := ic.tripRepo.GetByID(ctx, tx, tripID)
		if err != nil {
			return err
		}

		if err := checkNotOwner(trip, user); err != nil {
			return err
		}

		interaction = &Interaction{
			TripID:      trip.ID,
			SenderID:    user.ID,
			RecipientID: trip.UserID,
			Message:     message,
			Status:      InteractionStatusPending,
		}
		return ic.interactionRepo.Create(ctx, tx, interaction)
	})
	if err != nil {
		return nil, log.Err("failed to create interaction", err, "tripID", tripID, "senderID", user.ID)
	}

	ic.publish(events.INTERACTION_CREATED, user.ID, interaction)

	log.Info(
		"Interaction sent",
		"interactionID", interaction.ID,
		"tripID", tripID,
		"senderID", user.ID,
		"recipientID", interaction.RecipientID,
	)
	return interaction, nil
}

// UpdateStatus lets the recipient accept or reject a pending interaction.
func (ic *InteractionController) UpdateStatus(
	ctx context.Context,
	user *User,
	interactionID uint,
	status string,
) (*Interaction, error) {
	log := ic.log.Function("UpdateStatus")

	var interaction *Interaction
	err := ic.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		interaction, err = ic.interactionRepo.GetByID(ctx, tx, interactionID)
		if err != nil {
			return err
		}

		if interaction.RecipientID != user.ID {
			return log.ErrorWithType(
				types.ErrAuthorization,
				"only the recipient can respond to this request",
				"interactionID", interaction.ID,
				"userID", user.ID,
			)
		}

		next, ok := ParseInteractionStatus(status)
		if !ok || !next.IsTerminal() {
			return log.ErrorWithType(types.ErrInvalidTransition, "status must be Accepted or Rejected", "status", status)
		}

		if !interaction.Status.CanTransitionTo(next) {
			return log.ErrorWithType(
				types.ErrInvalidTransition,
				fmt.Sprintf("request has already been %s", interaction.Status),
				"interactionID", interaction.ID,
			)
		}

		if err := ic.interactionRepo.UpdateStatus(ctx, tx, interaction.ID, interaction.Status, next); err != nil {
			return err
		}

		interaction.Status = next
		return nil
	})
	if err != nil {
		return nil, log.Err(
			"failed to update interaction status",
			err,
			"interactionID", interactionID,
			"userID", user.ID,
			"status", status,
		)
	}

	ic.publish(events.INTERACTION_STATUS_CHANGED, user.ID, interaction)

	return interaction, nil
}

func checkNotOwner(trip *Trip, user *User) error {
	if trip.IsOwnedBy(user.ID) {
		return logger.New("interactionController").
			Function("checkNotOwner").
			ErrorWithType(types.ErrSelfInteraction, "you cannot send a request for your own listing", "tripID", trip.ID)
	}
	return nil
}

func (ic *InteractionController) publish(
	eventType events.MessageType,
	userID uint,
	interaction *Interaction,
) {
	if ic.eventBus == nil {
		return
	}
	if err := ic.eventBus.PublishInteraction(
		eventType,
		userID,
		interaction.ID,
		interaction.TripID,
		string(interaction.Status),
	); err != nil {
		ic.log.Warn("failed to publish interaction event", "interactionID", interaction.ID, "error", err)
	}
}
