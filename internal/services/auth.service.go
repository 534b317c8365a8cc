package services

import (
	"context"
	"strconv"
	"time"

	"globeswap/config"
	"globeswap/internal/constants"
	"globeswap/internal/database"
	"globeswap/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const SESSION_ISSUER = "globeswap"

// SessionClaims carries the user's session version so a password change
// ends every session issued before it.
type SessionClaims struct {
	Version uint `json:"ver"`
	jwt.RegisteredClaims
}

// Session is an issued login session. Token is what the client stores.
type Session struct {
	ID        string
	UserID    uint
	Version   uint
	Token     string
	ExpiresAt time.Time
}

// AuthService hashes credentials and issues signed session tokens. When a
// session cache is configured, tokens are also registered there so logout
// can revoke them before they expire.
type AuthService struct {
	secret     []byte
	ttl        time.Duration
	bcryptCost int
	cache      database.CacheClient
	log        logger.Logger
}

func NewAuthService(config config.Config, cache database.CacheClient) *AuthService {
	return &AuthService{
		secret:     []byte(config.SessionSecret),
		ttl:        config.SessionTTL(),
		bcryptCost: bcrypt.DefaultCost,
		cache:      cache,
		log:        logger.New("AuthService"),
	}
}

// WithBcryptCost lowers the hashing cost; tests use bcrypt.MinCost.
func (s *AuthService) WithBcryptCost(cost int) *AuthService {
	s.bcryptCost = cost
	return s
}

func (s *AuthService) HashPassword(password string) (string, error) {
	log := s.log.Function("HashPassword")

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", log.Err("failed to hash password", err)
	}

	return string(hash), nil
}

func (s *AuthService) CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (s *AuthService) IssueSession(
	ctx context.Context,
	userID uint,
	version uint,
) (*Session, error) {
	log := s.log.Function("IssueSession")

	now := time.Now()
	session := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Version:   version,
		ExpiresAt: now.Add(s.ttl),
	}

	claims := SessionClaims{
		Version: version,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			Subject:   strconv.FormatUint(uint64(userID), 10),
			Issuer:    SESSION_ISSUER,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, log.Err("failed to sign session token", err, "userID", userID)
	}
	session.Token = token

	if err := database.NewCacheBuilder(s.cache, session.ID).
		WithContext(ctx).
		WithHash(constants.SessionCachePrefix).
		WithStruct(claims.Subject).
		WithTTL(s.ttl).
		Set(); err != nil {
		return nil, log.Err("failed to register session", err, "userID", userID)
	}

	return session, nil
}

// ParseSession verifies the token signature and expiry and, when sessions
// are cached, that the session has not been revoked.
func (s *AuthService) ParseSession(ctx context.Context, token string) (*Session, error) {
	log := s.log.Function("ParseSession")

	if token == "" {
		return nil, log.ErrorWithType(types.ErrAuthentication, "login required")
	}

	var claims SessionClaims
	parsed, err := jwt.ParseWithClaims(
		token,
		&claims,
		func(token *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(SESSION_ISSUER),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return nil, log.ErrorWithType(types.ErrAuthentication, "invalid or expired session", "error", err)
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || userID == 0 {
		return nil, log.ErrorWithType(types.ErrAuthentication, "invalid session subject")
	}

	if s.cache != nil {
		var cachedSubject string
		found, err := database.NewCacheBuilder(s.cache, claims.ID).
			WithContext(ctx).
			WithHash(constants.SessionCachePrefix).
			Get(&cachedSubject)
		if err != nil {
			return nil, log.Err("failed to look up session", err, "sessionID", claims.ID)
		}
		if !found || cachedSubject != claims.Subject {
			return nil, log.ErrorWithType(types.ErrAuthentication, "session has been revoked")
		}
	}

	session := &Session{
		ID:      claims.ID,
		UserID:  uint(userID),
		Version: claims.Version,
		Token:   token,
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}

	return session, nil
}

func (s *AuthService) RevokeSession(ctx context.Context, sessionID string) error {
	log := s.log.Function("RevokeSession")

	if err := database.NewCacheBuilder(s.cache, sessionID).
		WithContext(ctx).
		WithHash(constants.SessionCachePrefix).
		Delete(); err != nil {
		return log.Err("failed to revoke session", err, "sessionID", sessionID)
	}

	return nil
}
