package repositories

import (
	"context"

	. "globeswap/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, tx *gorm.DB, user *User) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*User, error)
	GetByUsername(ctx context.Context, tx *gorm.DB, username string) (*User, error)
	FindConflicts(
		ctx context.Context,
		tx *gorm.DB,
		username string,
		email string,
	) (usernameTaken bool, emailTaken bool, err error)
	UpdatePassword(ctx context.Context, tx *gorm.DB, id uint, passwordHash string) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	List(ctx context.Context, tx *gorm.DB) ([]*User, error)
}

type userRepository struct {
	log logger.Logger
}

func NewUserRepository() UserRepository {
	return &userRepository{
		log: logger.New("userRepository"),
	}
}

func (r *userRepository) Create(ctx context.Context, tx *gorm.DB, user *User) error {
	log := r.log.Function("Create")

	if err := tx.WithContext(ctx).Create(user).Error; err != nil {
		return log.Err(
			"failed to create user",
			translateError(err, "username or email"),
			"username",
			user.Username,
		)
	}

	return nil
}

func (r *userRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*User, error) {
	log := r.log.Function("GetByID")

	var user User
	if err := tx.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, log.Err("failed to get user by id", translateError(err, "user"), "id", id)
	}

	return &user, nil
}

func (r *userRepository) GetByUsername(
	ctx context.Context,
	tx *gorm.DB,
	username string,
) (*User, error) {
	log := r.log.Function("GetByUsername")

	var user User
	if err := tx.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		return nil, log.Err(
			"failed to get user by username",
			translateError(err, "user"),
			"username",
			username,
		)
	}

	return &user, nil
}

func (r *userRepository) FindConflicts(
	ctx context.Context,
	tx *gorm.DB,
	username string,
	email string,
) (bool, bool, error) {
	log := r.log.Function("FindConflicts")

	var existing []User
	if err := tx.WithContext(ctx).
		Select("id", "username", "email").
		Where("username = ? OR email = ?", username, email).
		Find(&existing).Error; err != nil {
		return false, false, log.Err("failed to check user conflicts", err, "username", username)
	}

	var usernameTaken, emailTaken bool
	for _, user := range existing {
		if user.Username == username {
			usernameTaken = true
		}
		if user.Email == email {
			emailTaken = true
		}
	}

	return usernameTaken, emailTaken, nil
}

func (r *userRepository) UpdatePassword(
	ctx context.Context,
	tx *gorm.DB,
	id uint,
	passwordHash string,
) error {
	log := r.log.Function("UpdatePassword")

	result := tx.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"password_hash":   passwordHash,
			"session_version": gorm.Expr("session_version + 1"),
		})
	if result.Error != nil {
		return log.Err("failed to update password", result.Error, "id", id)
	}

	if result.RowsAffected == 0 {
		return log.Err("failed to update password", translateError(gorm.ErrRecordNotFound, "user"), "id", id)
	}

	return nil
}

// Delete removes the user and everything hanging off it: interactions sent,
// received or attached to the user's trips, skill swaps and trips. The
// foreign keys cascade as well; the explicit deletes keep the rule visible
// and independent of the store's FK enforcement.
func (r *userRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	log := r.log.Function("Delete")

	db := tx.WithContext(ctx)
	ownedTrips := func() *gorm.DB {
		return db.Model(&Trip{}).Select("id").Where("user_id = ?", id)
	}

	if err := db.
		Where("sender_id = ? OR recipient_id = ? OR trip_id IN (?)", id, id, ownedTrips()).
		Delete(&Interaction{}).Error; err != nil {
		return log.Err("failed to delete user interactions", err, "id", id)
	}

	if err := db.
		Where("user_id = ? OR trip_id IN (?)", id, ownedTrips()).
		Delete(&SkillSwap{}).Error; err != nil {
		return log.Err("failed to delete user skill swaps", err, "id", id)
	}

	if err := db.Where("user_id = ?", id).Delete(&Trip{}).Error; err != nil {
		return log.Err("failed to delete user trips", err, "id", id)
	}

	result := db.Where("id = ?", id).Delete(&User{})
	if result.Error != nil {
		return log.Err("failed to delete user", result.Error, "id", id)
	}

	if result.RowsAffected == 0 {
		return log.Err("failed to delete user", translateError(gorm.ErrRecordNotFound, "user"), "id", id)
	}

	return nil
}

func (r *userRepository) List(ctx context.Context, tx *gorm.DB) ([]*User, error) {
	log := r.log.Function("List")

	var users []*User
	if err := tx.WithContext(ctx).Order("username ASC").Find(&users).Error; err != nil {
		return nil, log.Err("failed to list users", err)
	}

	return users, nil
}
