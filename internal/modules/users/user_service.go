package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"roadside-dispatch/internal/models"
	"roadside-dispatch/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ServiceInterface defines methods for identity business logic.
type ServiceInterface interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	GetUserByID(ctx context.Context, userID int) (*models.User, error)
	GetDispatcherByUserID(ctx context.Context, userID int) (*models.Dispatcher, error)
}

// Service implements the identity service logic.
type Service struct {
	repo      RepositoryInterface
	jwtSecret string
}

// NewService creates a new user service.
func NewService(repo RepositoryInterface, jwtSecret string) *Service {
	return &Service{repo: repo, jwtSecret: jwtSecret}
}

// Register creates a new account. Dispatcher accounts also get a dispatcher
// row binding them to their service area.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	_, err := s.repo.FindUserByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("service.Register.FindUserByUsername: %w", err)
	}
	if err == nil {
		return nil, models.ErrConflict
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("service.Register.HashPassword: %w", err)
	}

	user, err := s.repo.CreateUser(ctx, req.Username, string(hashedPassword), req.Role)
	if err != nil {
		return nil, fmt.Errorf("service.Register.CreateUser: %w", err)
	}

	if req.Role == models.RoleDispatcher {
		if req.AreaID == nil {
			return nil, models.ErrBadRequest
		}
		if err := s.repo.CreateDispatcher(ctx, user.ID, *req.AreaID); err != nil {
			return nil, fmt.Errorf("service.Register.CreateDispatcher: %w", err)
		}
	}

	return s.generateAuthResponse(user)
}

// Login verifies credentials and issues a signed token.
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.repo.FindUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("service.Login.FindUserByUsername: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}

	return s.generateAuthResponse(user)
}

func (s *Service) GetUserByID(ctx context.Context, userID int) (*models.User, error) {
	return s.repo.FindUserByID(ctx, userID)
}

func (s *Service) GetDispatcherByUserID(ctx context.Context, userID int) (*models.Dispatcher, error) {
	return s.repo.FindDispatcherByUserID(ctx, userID)
}

func (s *Service) generateAuthResponse(user *models.User) (*models.AuthResponse, error) {
	// A unique jti lets individual tokens be identified in logs.
	tokenID, err := utils.GenerateSecureToken(16)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token id: %w", err)
	}

	claims := &models.JwtCustomClaims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := accessToken.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	user.PasswordHash = ""

	return &models.AuthResponse{
		AccessToken: signed,
		User:        user,
	}, nil
}
