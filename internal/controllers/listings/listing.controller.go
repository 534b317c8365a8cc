package listingController

import (
	"context"
	"fmt"
	"time"

	"globeswap/config"
	"globeswap/internal/database"
	"globeswap/internal/events"
	. "globeswap/internal/models"
	"globeswap/internal/repositories"
	"globeswap/internal/services"
	"globeswap/internal/types"
	"globeswap/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	MaxDestinationLength = 120
	MaxSkillLength       = 120
)

// ListingForm is the raw listing form as submitted. OfferedSkill and
// DesiredSkill carry the form's labels, not the owner-oriented pair.
type ListingForm struct {
	Destination  string `json:"destination"   form:"destination"`
	StartDate    string `json:"start_date"    form:"start_date"`
	EndDate      string `json:"end_date"      form:"end_date"`
	Description  string `json:"description"   form:"description"`
	ListingType  string `json:"listing_type"  form:"listing_type"`
	OfferedSkill string `json:"offered_skill" form:"offered_skill"`
	DesiredSkill string `json:"desired_skill" form:"desired_skill"`
}

// ListingInput is a validated ListingForm.
type ListingInput struct {
	Destination  string
	StartDate    time.Time
	EndDate      time.Time
	Description  *string
	ListingType  ListingType
	OfferedSkill string
	DesiredSkill string
}

type ListingController struct {
	tripRepo      repositories.TripRepository
	skillSwapRepo repositories.SkillSwapRepository
	transaction   *services.TransactionService
	eventBus      *events.EventBus
	db            database.DB
	Config        config.Config
	log           logger.Logger
}

type ListingControllerInterface interface {
	Create(ctx context.Context, user *User, form ListingForm) (*Trip, error)
	Update(ctx context.Context, user *User, tripID uint, form ListingForm) (*Trip, error)
	Delete(ctx context.Context, user *User, tripID uint) error
	GetEditForm(ctx context.Context, user *User, tripID uint) (*ListingForm, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	eventBus *events.EventBus,
	config config.Config,
	db database.DB,
) ListingControllerInterface {
	return &ListingController{
		tripRepo:      repos.Trip,
		skillSwapRepo: repos.SkillSwap,
		transaction:   services.Transaction,
		eventBus:      eventBus,
		db:            db,
		Config:        config,
		log:           logger.New("listingController"),
	}
}

// ParseListingForm validates a submitted form. Every failure wraps
// types.ErrValidation.
func ParseListingForm(form ListingForm) (ListingInput, error) {
	log := logger.New("listingController").Function("ParseListingForm")

	input := ListingInput{
		Destination:  utils.CleanInput(form.Destination),
		OfferedSkill: utils.CleanInput(form.OfferedSkill),
		DesiredSkill: utils.CleanInput(form.DesiredSkill),
	}

	required := []struct {
		field string
		value string
	}{
		{"destination", input.Destination},
		{"start_date", form.StartDate},
		{"end_date", form.EndDate},
		{"listing_type", form.ListingType},
		{"offered_skill", input.OfferedSkill},
		{"desired_skill", input.DesiredSkill},
	}
	for _, r := range required {
		if utils.CleanInput(r.value) == "" {
			return ListingInput{}, log.ErrorWithType(types.ErrValidation, r.field+" is required")
		}
	}

	if utils.TooLong(input.Destination, MaxDestinationLength) {
		return ListingInput{}, log.ErrorWithType(
			types.ErrValidation,
			fmt.Sprintf("destination must be at most %d characters", MaxDestinationLength),
		)
	}
	if utils.TooLong(input.OfferedSkill, MaxSkillLength) ||
		utils.TooLong(input.DesiredSkill, MaxSkillLength) {
		return ListingInput{}, log.ErrorWithType(
			types.ErrValidation,
			fmt.Sprintf("skills must be at most %d characters", MaxSkillLength),
		)
	}

	listingType, ok := ParseListingType(form.ListingType)
	if !ok {
		return ListingInput{}, log.ErrorWithType(types.ErrValidation, "listing_type must be seek or offer", "listingType", form.ListingType)
	}
	input.ListingType = listingType

	var err error
	if input.StartDate, err = utils.ParseDate("start_date", form.StartDate); err != nil {
		return ListingInput{}, err
	}
	if input.EndDate, err = utils.ParseDate("end_date", form.EndDate); err != nil {
		return ListingInput{}, err
	}
	if !DateRangeValid(input.StartDate, input.EndDate) {
		return ListingInput{}, log.ErrorWithType(
			types.ErrValidation,
			"end date must be after start date",
			"startDate", form.StartDate,
			"endDate", form.EndDate,
		)
	}

	if description := utils.CleanInput(form.Description); description != "" {
		input.Description = &description
	}

	return input, nil
}

// apply writes the input onto trip and swap, orienting the skills for the
// listing type.
func (input ListingInput) apply(trip *Trip, swap *SkillSwap) {
	trip.Destination = input.Destination
	trip.StartDate = datatypes.Date(input.StartDate)
	trip.EndDate = datatypes.Date(input.EndDate)
	trip.Description = input.Description
	trip.IsAccommodationOffer = input.ListingType.IsOffer()

	swap.SkillOffered, swap.SkillWanted = OrientSkills(
		input.ListingType,
		input.OfferedSkill,
		input.DesiredSkill,
	)
	swap.UserID = trip.UserID
	swap.TripID = trip.ID
}

func (lc *ListingController) Create(ctx context.Context, user *User, form ListingForm) (*Trip, error) {
	log := lc.log.Function("Create")

	input, err := ParseListingForm(form)
	if err != nil {
		log.Warn("rejected listing form", "userID", user.ID, "error", err)
		return nil, err
	}

	trip := &Trip{UserID: user.ID}
	swap := &SkillSwap{}

	err = lc.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		input.apply(trip, swap)
		if err := lc.tripRepo.Create(ctx, tx, trip); err != nil {
			return err
		}

		swap.TripID = trip.ID
		return lc.skillSwapRepo.Create(ctx, tx, swap)
	})
	if err != nil {
		return nil, log.Err("failed to create listing", err, "userID", user.ID)
	}

	trip.SkillSwap = swap
	lc.tripRepo.ClearMarketplaceCache(ctx)
	lc.publish(events.LISTING_CREATED, trip)

	log.Info("Listing created", "tripID", trip.ID, "userID", user.ID, "type", trip.ListingType())
	return trip, nil
}

func (lc *ListingController) Update(
	ctx context.Context,
	user *User,
	tripID uint,
	form ListingForm,
) (*Trip, error) {
	log := lc.log.Function("Update")

	var trip *Trip
	err := lc.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		trip, err = lc.loadOwnedTrip(ctx, tx, user, tripID)
		if err != nil {
			return err
		}

		input, err := ParseListingForm(form)
		if err != nil {
			return err
		}

		swap := trip.SkillSwap
		if swap == nil {
			swap = &SkillSwap{}
		}
		input.apply(trip, swap)

		if err := lc.tripRepo.Update(ctx, tx, trip); err != nil {
			return err
		}

		if swap.ID == 0 {
			if err := lc.skillSwapRepo.Create(ctx, tx, swap); err != nil {
				return err
			}
		} else if err := lc.skillSwapRepo.Update(ctx, tx, swap); err != nil {
			return err
		}

		trip.SkillSwap = swap
		return nil
	})
	if err != nil {
		return nil, log.Err("failed to update listing", err, "tripID", tripID, "userID", user.ID)
	}

	lc.tripRepo.ClearMarketplaceCache(ctx)
	lc.publish(events.LISTING_UPDATED, trip)

	return trip, nil
}

func (lc *ListingController) Delete(ctx context.Context, user *User, tripID uint) error {
	log := lc.log.Function("Delete")

	var trip *Trip
	err := lc.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		trip, err = lc.loadOwnedTrip(ctx, tx, user, tripID)
		if err != nil {
			return err
		}

		return lc.tripRepo.Delete(ctx, tx, trip.ID)
	})
	if err != nil {
		return log.Err("failed to delete listing", err, "tripID", tripID, "userID", user.ID)
	}

	lc.tripRepo.ClearMarketplaceCache(ctx)
	lc.publish(events.LISTING_DELETED, trip)

	log.Info("Listing deleted", "tripID", tripID, "userID", user.ID)
	return nil
}

// GetEditForm rebuilds the form the owner originally submitted.
func (lc *ListingController) GetEditForm(
	ctx context.Context,
	user *User,
	tripID uint,
) (*ListingForm, error) {
	log := lc.log.Function("GetEditForm")

	trip, err := lc.loadOwnedTrip(ctx, lc.db.SQL, user, tripID)
	if err != nil {
		return nil, log.Err("failed to load listing for edit", err, "tripID", tripID)
	}

	listingType := trip.ListingType()
	form := &ListingForm{
		Destination: trip.Destination,
		StartDate:   utils.FormatDate(time.Time(trip.StartDate)),
		EndDate:     utils.FormatDate(time.Time(trip.EndDate)),
		ListingType: string(listingType),
	}
	if trip.Description != nil {
		form.Description = *trip.Description
	}
	if trip.SkillSwap != nil {
		form.OfferedSkill, form.DesiredSkill = FormSkills(
			listingType,
			trip.SkillSwap.SkillOffered,
			trip.SkillSwap.SkillWanted,
		)
	}

	return form, nil
}

func (lc *ListingController) loadOwnedTrip(
	ctx context.Context,
	tx *gorm.DB,
	user *User,
	tripID uint,
) (*Trip, error) {
	trip, err := lc.tripRepo.GetByID(ctx, tx, tripID)
	if err != nil {
		return nil, err
	}

	if !trip.IsOwnedBy(user.ID) {
		return nil, lc.log.Function("loadOwnedTrip").ErrorWithType(
			types.ErrAuthorization,
			"you can only change your own listings",
			"tripID", tripID,
			"userID", user.ID,
		)
	}

	return trip, nil
}

func (lc *ListingController) publish(eventType events.MessageType, trip *Trip) {
	if lc.eventBus == nil {
		return
	}
	if err := lc.eventBus.PublishListing(eventType, trip.UserID, trip.ID, trip.IsAccommodationOffer); err != nil {
		lc.log.Warn("failed to publish listing event", "tripID", trip.ID, "error", err)
	}
}
