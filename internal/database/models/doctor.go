package models

import (
	"time"
)

// Doctor represents a directory profile. Image holds the storage-relative
// blob path; it is never serialized directly, handlers render it as a
// public URL instead.
type Doctor struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Designation string    `gorm:"not null" json:"designation"`
	Phone       string    `json:"phone"`
	Biography   string    `json:"biography"`
	Image       *string   `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (Doctor) TableName() string {
	return "doctors"
}

// HasImage reports whether an image blob path is recorded for the doctor.
func (d *Doctor) HasImage() bool {
	return d.Image != nil && *d.Image != ""
}
