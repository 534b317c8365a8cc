package repositories

import (
	"errors"
	"fmt"

	"globeswap/internal/database"
	"globeswap/internal/types"

	"gorm.io/gorm"
)

type Repository struct {
	User        UserRepository
	Trip        TripRepository
	SkillSwap   SkillSwapRepository
	Interaction InteractionRepository
}

func New(db database.DB) Repository {
	return Repository{
		User:        NewUserRepository(),
		Trip:        NewTripRepository(db.Cache.General),
		SkillSwap:   NewSkillSwapRepository(),
		Interaction: NewInteractionRepository(),
	}
}

// translateError maps gorm sentinel errors onto domain error kinds. Other
// errors pass through untouched.
func translateError(err error, subject string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %s not found", types.ErrNotFound, subject)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %s already exists", types.ErrUniquenessConflict, subject)
	}
	return err
}
