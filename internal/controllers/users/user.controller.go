package userController

import (
	"context"

	"globeswap/config"
	"globeswap/internal/database"
	. "globeswap/internal/models"
	"globeswap/internal/repositories"
	"globeswap/internal/services"
	"globeswap/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" form:"current_password"`
	NewPassword     string `json:"newPassword"     form:"new_password"`
	ConfirmPassword string `json:"confirmPassword" form:"confirm_password"`
}

type DeleteAccountRequest struct {
	Password string `json:"password" form:"password"`
}

type UserController struct {
	userRepo    repositories.UserRepository
	tripRepo    repositories.TripRepository
	authService *services.AuthService
	transaction *services.TransactionService
	db          database.DB
	Config      config.Config
	log         logger.Logger
}

type UserControllerInterface interface {
	GetProfile(ctx context.Context, user *User) UserProfile
	ChangePassword(ctx context.Context, user *User, req ChangePasswordRequest) (*services.Session, error)
	DeleteAccount(ctx context.Context, user *User, req DeleteAccountRequest) error
	ListUsers(ctx context.Context) ([]UserProfile, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	config config.Config,
	db database.DB,
) UserControllerInterface {
	return &UserController{
		userRepo:    repos.User,
		tripRepo:    repos.Trip,
		authService: services.Auth,
		transaction: services.Transaction,
		db:          db,
		Config:      config,
		log:         logger.New("userController"),
	}
}

func (uc *UserController) GetProfile(ctx context.Context, user *User) UserProfile {
	return user.ToProfile()
}

// ChangePassword replaces the password and bumps the session version, which
// ends every existing session. The returned session replaces the caller's.
func (uc *UserController) ChangePassword(
	ctx context.Context,
	user *User,
	req ChangePasswordRequest,
) (*services.Session, error) {
	log := uc.log.Function("ChangePassword")

	if err := uc.checkPassword(user, req.CurrentPassword); err != nil {
		return nil, err
	}

	if err := ValidatePassword(req.NewPassword, req.ConfirmPassword); err != nil {
		return nil, err
	}

	hash, err := uc.authService.HashPassword(req.NewPassword)
	if err != nil {
		return nil, err
	}

	var updated *User
	err = uc.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if err := uc.userRepo.UpdatePassword(ctx, tx, user.ID, hash); err != nil {
			return err
		}

		var err error
		updated, err = uc.userRepo.GetByID(ctx, tx, user.ID)
		return err
	})
	if err != nil {
		return nil, log.Err("failed to change password", err, "userID", user.ID)
	}

	user.PasswordHash = updated.PasswordHash
	user.SessionVersion = updated.SessionVersion

	session, err := uc.authService.IssueSession(ctx, user.ID, user.SessionVersion)
	if err != nil {
		return nil, log.Err("failed to issue session after password change", err, "userID", user.ID)
	}

	log.Info("Password changed", "userID", user.ID, "sessionVersion", user.SessionVersion)
	return session, nil
}

// DeleteAccount removes the user with every trip, skill swap and
// interaction that references them.
func (uc *UserController) DeleteAccount(
	ctx context.Context,
	user *User,
	req DeleteAccountRequest,
) error {
	log := uc.log.Function("DeleteAccount")

	if err := uc.checkPassword(user, req.Password); err != nil {
		return err
	}

	err := uc.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return uc.userRepo.Delete(ctx, tx, user.ID)
	})
	if err != nil {
		return log.Err("failed to delete account", err, "userID", user.ID)
	}

	uc.tripRepo.ClearMarketplaceCache(ctx)

	log.Info("Account deleted", "userID", user.ID)
	return nil
}

func (uc *UserController) ListUsers(ctx context.Context) ([]UserProfile, error) {
	log := uc.log.Function("ListUsers")

	users, err := uc.userRepo.List(ctx, uc.db.SQL)
	if err != nil {
		return nil, log.Err("failed to list users", err)
	}

	profiles := make([]UserProfile, 0, len(users))
	for _, user := range users {
		profiles = append(profiles, user.ToPublicProfile())
	}

	return profiles, nil
}

func (uc *UserController) checkPassword(user *User, password string) error {
	if password == "" || !uc.authService.CheckPassword(user.PasswordHash, password) {
		return uc.log.Function("checkPassword").ErrorWithType(
			types.ErrAuthentication,
			"current password is incorrect",
			"userID", user.ID,
		)
	}
	return nil
}
