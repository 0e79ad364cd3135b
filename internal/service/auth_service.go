package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"timetrack/internal/auth"
	apperrors "timetrack/internal/errors"
	"timetrack/internal/model"
	"timetrack/internal/repository"
)

const bcryptCost = 10

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("Invalid email or password.")
	// ErrEmailInUse is returned when trying to register an existing email.
	ErrEmailInUse = apperrors.NewConflictError("That email address is already in use.")
)

// RegisterInput carries the fields required to create an account.
type RegisterInput struct {
	Email       string
	DisplayName string
	Password    string
	TimeZone    string
}

// Validate checks required fields in a fixed order: email, display name, password, time zone.
func (in RegisterInput) Validate() error {
	switch {
	case strings.TrimSpace(in.Email) == "":
		return apperrors.NewValidationError("You must enter an email address.")
	case in.DisplayName == "":
		return apperrors.NewValidationError("You must enter a display name.")
	case in.Password == "":
		return apperrors.NewValidationError("You must enter a password.")
	case in.TimeZone == "":
		return apperrors.NewValidationError("You must enter a time zone.")
	}
	return nil
}

// AuthService handles authentication operations.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (token string, info model.UserInfo, err error)
	Authenticate(ctx context.Context, email, password string) (*model.User, error)
	Login(ctx context.Context, info model.UserInfo) (token string, err error)
	Logout(ctx context.Context, claims *auth.Claims) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// Register creates a new user with a hashed password and returns a session token for it.
// Datastore failures are returned unwrapped for the caller's generic error path.
func (s *authService) Register(ctx context.Context, in RegisterInput) (string, model.UserInfo, error) {
	if err := in.Validate(); err != nil {
		return "", model.UserInfo{}, err
	}
	email := normalizeEmail(in.Email)

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return "", model.UserInfo{}, ErrEmailInUse
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", model.UserInfo{}, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return "", model.UserInfo{}, fmt.Errorf("hash password: %w", err)
	}
	code, err := verificationCode()
	if err != nil {
		return "", model.UserInfo{}, fmt.Errorf("generate verification code: %w", err)
	}

	user := &model.User{
		DisplayName:  in.DisplayName,
		TimeZone:     in.TimeZone,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Verified:     false,
		Code:         code,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// A concurrent registration can claim the address after the lookup.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", model.UserInfo{}, ErrEmailInUse
		}
		return "", model.UserInfo{}, fmt.Errorf("create user: %w", err)
	}

	info := user.Info()
	token, err := s.jwtService.GenerateToken(info)
	if err != nil {
		return "", model.UserInfo{}, fmt.Errorf("generate token: %w", err)
	}
	return token, info, nil
}

// Authenticate verifies an email and password pair.
func (s *authService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Login issues a session token for an identity that was already authenticated.
func (s *authService) Login(ctx context.Context, info model.UserInfo) (string, error) {
	token, err := s.jwtService.GenerateToken(info)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return token, nil
}

// Logout revokes the token described by claims until it would have expired.
func (s *authService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" {
		return nil
	}
	var ttl time.Duration
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	return s.tokenStore.Revoke(ctx, claims.ID, ttl)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// verificationCode returns a uniformly random 6-digit number.
func verificationCode() (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return 0, err
	}
	return int(n.Int64()) + 100000, nil
}
