package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/medidir/doctor-directory-api/internal/database/models"
)

// AccessTokenRepository defines the interface for access token operations
type AccessTokenRepository interface {
	Create(token *models.AccessToken) error
	FindByID(id string) (*models.AccessToken, error)
	RevokeByID(id string) error
	DeleteExpiredTokens() error
}

type accessTokenRepository struct {
	db *gorm.DB
}

// NewAccessTokenRepository creates a new access token repository instance
func NewAccessTokenRepository(db *gorm.DB) AccessTokenRepository {
	return &accessTokenRepository{db: db}
}

func (r *accessTokenRepository) Create(token *models.AccessToken) error {
	return r.db.Create(token).Error
}

func (r *accessTokenRepository) FindByID(id string) (*models.AccessToken, error) {
	var token models.AccessToken
	err := r.db.Where("id = ? AND is_revoked = false", id).
		First(&token).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}

	// Check if expired
	if time.Now().After(token.ExpiresAt) {
		return nil, ErrTokenExpired
	}

	return &token, nil
}

func (r *accessTokenRepository) RevokeByID(id string) error {
	result := r.db.Model(&models.AccessToken{}).
		Where("id = ?", id).
		Update("is_revoked", true)

	if result.RowsAffected == 0 {
		return ErrTokenNotFound
	}

	return result.Error
}

func (r *accessTokenRepository) DeleteExpiredTokens() error {
	return r.db.Where("expires_at < ?", time.Now()).
		Delete(&models.AccessToken{}).Error
}

// Repository errors
var (
	ErrTokenNotFound = errors.New("token not found")
	ErrTokenExpired  = errors.New("token expired")
)
