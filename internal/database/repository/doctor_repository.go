package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/medidir/doctor-directory-api/internal/database/models"
)

// DoctorRepository defines the interface for doctor data operations
type DoctorRepository interface {
	Create(doctor *models.Doctor) error
	FindAll() ([]models.Doctor, error)
	FindByID(id uint) (*models.Doctor, error)
	Update(doctor *models.Doctor) error
	Delete(id uint) error
}

type doctorRepository struct {
	db *gorm.DB
}

// NewDoctorRepository creates a new doctor repository instance
func NewDoctorRepository(db *gorm.DB) DoctorRepository {
	return &doctorRepository{db: db}
}

func (r *doctorRepository) Create(doctor *models.Doctor) error {
	return r.db.Create(doctor).Error
}

// FindAll returns every doctor, newest first.
func (r *doctorRepository) FindAll() ([]models.Doctor, error) {
	var doctors []models.Doctor
	err := r.db.Order("created_at DESC").Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) FindByID(id uint) (*models.Doctor, error) {
	var doctor models.Doctor
	err := r.db.First(&doctor, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) Update(doctor *models.Doctor) error {
	return r.db.Save(doctor).Error
}

func (r *doctorRepository) Delete(id uint) error {
	return r.db.Delete(&models.Doctor{}, id).Error
}

// Repository errors
var (
	ErrDoctorNotFound = errors.New("doctor not found")
)
