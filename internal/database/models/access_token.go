package models

import (
	"time"
)

// AccessToken stores one issued bearer credential per row. The row ID is
// carried as the jti claim inside the signed token, so revoking the row
// invalidates the token even before its expiry.
type AccessToken struct {
	ID        string    `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Name      string    `gorm:"not null" json:"name"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	IsRevoked bool      `gorm:"default:false" json:"is_revoked"`
	CreatedAt time.Time `json:"created_at"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
}

// TableName overrides the table name
func (AccessToken) TableName() string {
	return "access_tokens"
}
