package authController

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"globeswap/internal/database"
	. "globeswap/internal/models"
	"globeswap/internal/repositories"
	"globeswap/internal/services"
	"globeswap/internal/types"
	"globeswap/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Username        string `json:"username"        form:"username"`
	Email           string `json:"email"           form:"email"`
	Password        string `json:"password"        form:"password"`
	ConfirmPassword string `json:"confirmPassword" form:"password2"`
}

type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type AuthController struct {
	userRepo    repositories.UserRepository
	authService *services.AuthService
	transaction *services.TransactionService
	db          database.DB
	log         logger.Logger
}

type AuthControllerInterface interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	Login(ctx context.Context, req LoginRequest) (*User, *services.Session, error)
	Logout(ctx context.Context, sessionID string) error
	GetSessionUser(ctx context.Context, token string) (*User, *services.Session, error)
}

func New(
	services services.Service,
	repos repositories.Repository,
	db database.DB,
) AuthControllerInterface {
	return &AuthController{
		userRepo:    repos.User,
		authService: services.Auth,
		transaction: services.Transaction,
		db:          db,
		log:         logger.New("authController"),
	}
}

func validateRegistration(req RegisterRequest) (RegisterRequest, error) {
	log := logger.New("authController").Function("validateRegistration")

	req.Username = utils.CleanInput(req.Username)
	req.Email = NormalizeEmail(req.Email)

	if req.Username == "" {
		return req, log.ErrorWithType(types.ErrValidation, "username is required")
	}
	if utils.TooLong(req.Username, MaxUsernameLength) {
		return req, log.ErrorWithType(
			types.ErrValidation,
			fmt.Sprintf("username must be at most %d characters", MaxUsernameLength),
		)
	}
	if strings.ContainsAny(req.Username, " \t\n") {
		return req, log.ErrorWithType(types.ErrValidation, "username must not contain spaces")
	}
	if err := ValidateEmail(req.Email); err != nil {
		return req, err
	}
	if err := ValidatePassword(req.Password, req.ConfirmPassword); err != nil {
		return req, err
	}

	return req, nil
}

func (ac *AuthController) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	log := ac.log.Function("Register")

	req, err := validateRegistration(req)
	if err != nil {
		log.Warn("rejected registration", "username", req.Username, "error", err)
		return nil, err
	}

	hash, err := ac.authService.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}

	err = ac.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		usernameTaken, emailTaken, err := ac.userRepo.FindConflicts(ctx, tx, req.Username, req.Email)
		if err != nil {
			return err
		}

		switch {
		case usernameTaken:
			return log.ErrorWithType(
				types.ErrUniquenessConflict,
				"please use a different username",
				"username", req.Username,
			)
		case emailTaken:
			return log.ErrorWithType(
				types.ErrUniquenessConflict,
				"please use a different email address",
				"username", req.Username,
			)
		}

		return ac.userRepo.Create(ctx, tx, user)
	})
	if err != nil {
		if errors.Is(err, types.ErrUniquenessConflict) {
			return nil, err
		}
		return nil, log.Err("failed to register user", err, "username", req.Username)
	}

	log.Info("User registered", "userID", user.ID, "username", user.Username)
	return user, nil
}

func (ac *AuthController) Login(
	ctx context.Context,
	req LoginRequest,
) (*User, *services.Session, error) {
	log := ac.log.Function("Login")

	invalid := fmt.Errorf("%w: invalid username or password", types.ErrAuthentication)

	username := utils.CleanInput(req.Username)
	if username == "" || req.Password == "" {
		return nil, nil, invalid
	}

	user, err := ac.userRepo.GetByUsername(ctx, ac.db.SQL, username)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, nil, invalid
		}
		return nil, nil, log.Err("failed to look up user", err, "username", username)
	}

	if !ac.authService.CheckPassword(user.PasswordHash, req.Password) {
		log.Warn("failed login attempt", "username", username)
		return nil, nil, invalid
	}

	session, err := ac.authService.IssueSession(ctx, user.ID, user.SessionVersion)
	if err != nil {
		return nil, nil, log.Err("failed to issue session", err, "userID", user.ID)
	}

	log.Info("User logged in", "userID", user.ID)
	return user, session, nil
}

func (ac *AuthController) Logout(ctx context.Context, sessionID string) error {
	log := ac.log.Function("Logout")

	if sessionID == "" {
		return nil
	}

	if err := ac.authService.RevokeSession(ctx, sessionID); err != nil {
		return log.Err("failed to revoke session", err, "sessionID", sessionID)
	}

	return nil
}

// GetSessionUser resolves a session token to its user. A token whose user
// no longer exists, or that predates the user's last password change, is
// treated as an authentication failure.
func (ac *AuthController) GetSessionUser(
	ctx context.Context,
	token string,
) (*User, *services.Session, error) {
	log := ac.log.Function("GetSessionUser")

	session, err := ac.authService.ParseSession(ctx, token)
	if err != nil {
		return nil, nil, err
	}

	user, err := ac.userRepo.GetByID(ctx, ac.db.SQL, session.UserID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, nil, log.ErrorWithType(
				types.ErrAuthentication,
				"account no longer exists",
				"userID", session.UserID,
			)
		}
		return nil, nil, err
	}

	if session.Version != user.SessionVersion {
		return nil, nil, log.ErrorWithType(
			types.ErrAuthentication,
			"session ended by a password change",
			"userID", user.ID,
			"sessionID", session.ID,
		)
	}

	return user, session, nil
}
