package service

import (
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/medidir/doctor-directory-api/internal/config"
	"github.com/medidir/doctor-directory-api/internal/database/models"
	"github.com/medidir/doctor-directory-api/internal/database/repository"
)

// accessTokenName labels every issued token row.
const accessTokenName = "API Token"

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Register(name, email, password string) (*models.User, *IssuedToken, error)
	Login(email, password string) (*models.User, *IssuedToken, error)
	Logout(tokenID string) error
	ValidateAccessToken(tokenString string) (*models.User, string, error)
}

// IssuedToken is a freshly signed bearer credential and its expiry.
type IssuedToken struct {
	AccessToken string
	ExpiresAt   time.Time
}

type authService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.AccessTokenRepository
	jwtSecret string
	cfg       *config.Config
	logger    *slog.Logger
}

// NewAuthService creates a new authentication service instance
func NewAuthService(
	userRepo repository.UserRepository,
	tokenRepo repository.AccessTokenRepository,
	cfg *config.Config,
	logger *slog.Logger,
) AuthService {
	return &authService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		jwtSecret: cfg.JWTSecret,
		cfg:       cfg,
		logger:    logger,
	}
}

func (s *authService) Register(name, email, password string) (*models.User, *IssuedToken, error) {
	s.logger.Info("📝 [AuthService] Registration attempt", "email", email)

	// Check if email already exists
	existingUser, err := s.userRepo.FindByEmail(email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		s.logger.Error("❌ [AuthService] Database error", "error", err)
		return nil, nil, err
	}

	if existingUser != nil {
		s.logger.Warn("⚠️ [AuthService] Email already registered", "email", email)
		return nil, nil, ErrEmailAlreadyExists
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to hash password", "error", err)
		return nil, nil, err
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
	}

	if err := s.userRepo.Create(user); err != nil {
		s.logger.Error("❌ [AuthService] Failed to create user", "error", err)
		return nil, nil, err
	}

	token, err := s.issueAccessToken(user.ID)
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to issue token", "error", err)
		return nil, nil, err
	}

	s.logger.Info("✅ [AuthService] User registered successfully", "user_id", user.ID)
	return user, token, nil
}

func (s *authService) Login(email, password string) (*models.User, *IssuedToken, error) {
	s.logger.Info("🔐 [AuthService] Login attempt", "email", email)

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.logger.Warn("⚠️ [AuthService] User not found", "email", email)
			return nil, nil, ErrInvalidCredentials
		}
		s.logger.Error("❌ [AuthService] Database error", "error", err)
		return nil, nil, err
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.logger.Warn("⚠️ [AuthService] Invalid password", "email", email)
		return nil, nil, ErrInvalidCredentials
	}

	token, err := s.issueAccessToken(user.ID)
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to issue token", "error", err)
		return nil, nil, err
	}

	s.logger.Info("✅ [AuthService] User logged in successfully", "user_id", user.ID)
	return user, token, nil
}

func (s *authService) Logout(tokenID string) error {
	s.logger.Info("👋 [AuthService] Logout attempt")

	if err := s.tokenRepo.RevokeByID(tokenID); err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			s.logger.Warn("⚠️ [AuthService] Token not found for logout")
			return repository.ErrTokenNotFound
		}
		return err
	}

	s.logger.Info("✅ [AuthService] User logged out successfully")
	return nil
}

// ValidateAccessToken resolves a bearer token string to its owning user and
// the token record ID. Both the signature and the stored row must check out,
// so a revoked token fails even before its expiry.
func (s *authService) ValidateAccessToken(tokenString string) (*models.User, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil || !token.Valid {
		return nil, "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, "", ErrInvalidToken
	}

	tokenID, ok := claims["jti"].(string)
	if !ok {
		return nil, "", ErrInvalidToken
	}

	stored, err := s.tokenRepo.FindByID(tokenID)
	if err != nil {
		return nil, "", ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(stored.UserID)
	if err != nil {
		return nil, "", ErrInvalidToken
	}

	return user, tokenID, nil
}

// issueAccessToken signs a new JWT and persists its backing row.
func (s *authService) issueAccessToken(userID uint) (*IssuedToken, error) {
	tokenID := uuid.NewString()
	expiresAt := time.Now().Add(time.Duration(s.cfg.AccessTokenExpiration) * time.Second)

	claims := jwt.MapClaims{
		"jti":     tokenID,
		"user_id": userID,
		"exp":     expiresAt.Unix(),
		"iat":     time.Now().Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	record := &models.AccessToken{
		ID:        tokenID,
		UserID:    userID,
		Name:      accessTokenName,
		ExpiresAt: expiresAt,
		IsRevoked: false,
	}

	if err := s.tokenRepo.Create(record); err != nil {
		return nil, err
	}

	return &IssuedToken{
		AccessToken: signed,
		ExpiresAt:   expiresAt,
	}, nil
}

// Service errors
var (
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)
