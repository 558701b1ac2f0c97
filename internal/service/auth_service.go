package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/orchid-haven/orchid-backend/internal/events"
	"github.com/orchid-haven/orchid-backend/internal/models"
	"github.com/orchid-haven/orchid-backend/internal/repository"
	"github.com/orchid-haven/orchid-backend/internal/utils"
	"github.com/orchid-haven/orchid-backend/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// TokenLifetime is fixed; tokens cannot be revoked, only outlived.
const TokenLifetime = 24 * time.Hour

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingToken       = errors.New("access token required")
)

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// dummyPasswordHash is compared against when the username is unknown so
// that both failure paths cost one bcrypt comparison.
func dummyPasswordHash() []byte {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("orchid-dummy-password"), utils.MinAcceptedCost)
	})
	return dummyHash
}

type AuthService struct {
	userRepo    *repository.UserRepository
	jwtSecret   string
	environment string
	events      events.Sink
	now         func() time.Time
}

func NewAuthService(userRepo *repository.UserRepository, jwtSecret, environment string, sink events.Sink) *AuthService {
	if sink == nil {
		sink = events.Discard
	}
	return &AuthService{
		userRepo:    userRepo,
		jwtSecret:   jwtSecret,
		environment: environment,
		events:      sink,
		now:         time.Now,
	}
}

// IsProduction returns true if running in production environment
func (s *AuthService) IsProduction() bool {
	return s.environment == "production"
}

// Authenticate checks a username/password pair. Unknown users and wrong
// passwords both yield ErrInvalidCredentials.
func (s *AuthService) Authenticate(username, password string) (*models.User, error) {
	user, err := s.userRepo.GetUserByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		bcrypt.CompareHashAndPassword(dummyPasswordHash(), []byte(password))
		return nil, ErrInvalidCredentials
	}

	valid, err := utils.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		logger.Log.Error("Failed to verify password",
			zap.Int64("user_id", user.ID),
			zap.Error(err),
		)
		return nil, err
	}
	if !valid {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Login authenticates and issues a token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	start := time.Now()

	user, err := s.Authenticate(username, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			e := events.New(ctx, events.TypeLoginFailed, events.EntitySession, "", username)
			s.events.Record(ctx, e)
		}
		return nil, "", err
	}

	token, err := s.IssueToken(user)
	if err != nil {
		logger.Log.Error("Failed to generate JWT token",
			zap.Int64("user_id", user.ID),
			zap.Error(err),
		)
		return nil, "", err
	}

	e := events.New(events.WithActor(ctx, user.Username), events.TypeLoginSucceeded, events.EntitySession, strconv.FormatInt(user.ID, 10), user.Username)
	s.events.Record(ctx, e)

	logger.Log.Debug("Login completed",
		zap.String("username", user.Username),
		zap.Duration("total_duration", time.Since(start)),
	)

	return user, token, nil
}

func (s *AuthService) IssueToken(user *models.User) (string, error) {
	return utils.GenerateTokenAt(user, s.jwtSecret, TokenLifetime, s.now())
}

// VerifyToken returns ErrMissingToken for an empty token and an error
// matching utils.ErrInvalidToken for anything that fails verification.
func (s *AuthService) VerifyToken(token string) (*utils.Claims, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	return utils.ValidateToken(token, s.jwtSecret)
}

// CurrentUser looks up the account a token was issued for.
func (s *AuthService) CurrentUser(id int64) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}
