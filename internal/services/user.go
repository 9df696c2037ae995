package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/ideal-decor-store/internal/api/middleware"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/config"
	appErrors "github.com/aaravmahajanofficial/ideal-decor-store/internal/errors"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/models"
	repository "github.com/aaravmahajanofficial/ideal-decor-store/internal/repositories"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	VerifyEmail(ctx context.Context, req *models.VerifyEmailRequest) error
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type userService struct {
	repo          repository.UserRepository
	rateLimiter   repository.RateLimitRepository
	notifications NotificationService
	security      *config.Security
	policy        *bluemonday.Policy
	now           func() time.Time
}

func NewUserService(repo repository.UserRepository, rateLimiter repository.RateLimitRepository, notifications NotificationService, security *config.Security) UserService {
	return &userService{
		repo:          repo,
		rateLimiter:   rateLimiter,
		notifications: notifications,
		security:      security,
		policy:        bluemonday.StrictPolicy(),
		now:           time.Now,
	}
}

// Register creates an unverified shopper and e-mails the verification code.
func (s *userService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {

	logger := middleware.LoggerFromContext(ctx)

	username := strings.TrimSpace(s.policy.Sanitize(req.Username))
	if username == "" {
		return nil, appErrors.ValidationError("Username is required")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if existing, err := s.repo.GetUserByEmail(ctx, email); err == nil && existing != nil {
		return nil, appErrors.DuplicateEntryError("Email already registered")
	}

	if existing, err := s.repo.GetUserByUsername(ctx, username); err == nil && existing != nil {
		return nil, appErrors.DuplicateEntryError("Username already taken")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.InternalError("Failed to secure password").WithError(err)
	}

	code, err := generateVerificationCode()
	if err != nil {
		return nil, appErrors.InternalError("Failed to generate verification code").WithError(err)
	}

	user := &models.User{
		Username:         username,
		Email:            email,
		Password:         string(hashedPassword),
		Role:             models.RoleShopper,
		VerificationCode: code,
	}

	if req.ShippingAddress != nil {
		address := s.policy.Sanitize(*req.ShippingAddress)
		user.ShippingAddress = &address
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, appErrors.DuplicateEntryError("Username or email already registered")
		}

		return nil, appErrors.DatabaseError("Failed to create user").WithError(err)
	}

	if err := s.notifications.SendVerificationCode(ctx, user); err != nil {
		logger.Warn("Verification e-mail not delivered", slog.String("userId", user.ID.String()), slog.Any("error", err))
	}

	logger.Info("User registered", slog.String("userId", user.ID.String()))

	return user, nil
}

func (s *userService) VerifyEmail(ctx context.Context, req *models.VerifyEmailRequest) error {

	logger := middleware.LoggerFromContext(ctx)

	email := strings.ToLower(strings.TrimSpace(req.Email))

	allowed, _, retryAfter, err := s.rateLimiter.CheckVerificationRateLimit(ctx, email)
	if err != nil {
		return appErrors.ThirdPartyError("Rate limit check failed").WithError(err)
	}

	if !allowed {
		return appErrors.TooManyRequestsError("Too many verification attempts. Please try again later.").
			WithDetail(fmt.Sprintf("retry after %d seconds", retryAfter))
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return appErrors.NotFoundError("User not found")
		}

		return appErrors.DatabaseError("Failed to fetch user").WithError(err)
	}

	if user.IsVerified {
		return nil
	}

	// The stored code is cleared on verification; an empty one never matches.
	if user.VerificationCode == "" || subtle.ConstantTimeCompare([]byte(user.VerificationCode), []byte(req.Code)) != 1 {
		logger.Warn("Failed verification attempt", slog.String("userId", user.ID.String()))
		return appErrors.ValidationError("Invalid verification code")
	}

	if err := s.repo.MarkVerified(ctx, user.ID); err != nil {
		return appErrors.DatabaseError("Failed to verify user").WithError(err)
	}

	if err := s.rateLimiter.ResetVerificationAttempts(ctx, email); err != nil {
		logger.Warn("Failed to reset verification attempts", slog.Any("error", err))
	}

	return nil
}

func (s *userService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {

	logger := middleware.LoggerFromContext(ctx)

	allowed, remaining, retryAfter, err := s.rateLimiter.CheckLoginRateLimit(ctx, req.Username)
	if err != nil {
		return nil, appErrors.ThirdPartyError("Rate limit check failed").WithError(err)
	}

	if !allowed {
		return nil, appErrors.TooManyRequestsError("Too many login attempts. Please try again later.").
			WithDetail(fmt.Sprintf("retry after %d seconds", retryAfter))
	}

	user, err := s.repo.GetUserByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, appErrors.DatabaseError("Failed to fetch user").WithError(err)
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		logger.Warn("Failed login attempt", slog.String("username", req.Username), slog.Int("remaining", remaining))
		return nil, appErrors.UnauthorizedError("Invalid username or password").
			WithDetail(fmt.Sprintf("%d attempts remaining", remaining))
	}

	if !user.IsVerified {
		return nil, appErrors.ForbiddenError("Email address has not been verified")
	}

	if err := s.rateLimiter.ResetLoginAttempts(ctx, req.Username); err != nil {
		logger.Warn("Failed to reset login attempts", slog.Any("error", err))
	}

	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.security.TokenLifetime)

	claims := &models.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.security.JWTKey))
	if err != nil {
		return nil, appErrors.InternalError("Failed to generate authentication token").WithError(err)
	}

	return &models.LoginResponse{
		Token:     tokenString,
		ExpiresIn: int(s.security.TokenLifetime.Seconds()),
		Role:      user.Role,
	}, nil
}

func (s *userService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.NotFoundError("User not found")
		}

		return nil, appErrors.DatabaseError("Failed to fetch user").WithError(err)
	}

	return user, nil
}

func generateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%06d", n.Int64()), nil
}
