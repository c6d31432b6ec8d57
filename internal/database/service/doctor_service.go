package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/medidir/doctor-directory-api/internal/database/models"
	"github.com/medidir/doctor-directory-api/internal/database/repository"
	"github.com/medidir/doctor-directory-api/internal/storage"
)

// imageFolder is the fixed logical folder for doctor images in the
// public blob area.
const imageFolder = "doctors"

// allowedImageTypes lists every sniffed content type an upload may have.
var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
}

// DoctorService defines the interface for doctor directory business logic
type DoctorService interface {
	List() ([]models.Doctor, error)
	Get(id uint) (*models.Doctor, error)
	Create(ctx context.Context, input CreateDoctorInput) (*models.Doctor, error)
	Update(ctx context.Context, id uint, input UpdateDoctorInput) (*models.Doctor, error)
	Delete(ctx context.Context, id uint) (*models.Doctor, error)
	ImageURL(doctor *models.Doctor) *string
}

// ImageUpload carries an incoming image file into the service.
type ImageUpload struct {
	Filename string
	Size     int64
	Reader   io.Reader
}

// CreateDoctorInput holds the fields for a new doctor profile.
type CreateDoctorInput struct {
	Name        string
	Designation string
	Phone       string
	Biography   string
	Image       *ImageUpload
}

// UpdateDoctorInput holds a partial doctor update. Name and Designation keep
// the stored value when nil; Phone and Biography always overwrite, matching
// the API contract clients already depend on.
type UpdateDoctorInput struct {
	Name        *string
	Designation *string
	Phone       string
	Biography   string
	Image       *ImageUpload
}

type doctorService struct {
	doctorRepo repository.DoctorRepository
	blobs      storage.BlobStore
	logger     *slog.Logger
}

// NewDoctorService creates a new doctor service instance
func NewDoctorService(
	doctorRepo repository.DoctorRepository,
	blobs storage.BlobStore,
	logger *slog.Logger,
) DoctorService {
	return &doctorService{
		doctorRepo: doctorRepo,
		blobs:      blobs,
		logger:     logger,
	}
}

func (s *doctorService) List() ([]models.Doctor, error) {
	return s.doctorRepo.FindAll()
}

func (s *doctorService) Get(id uint) (*models.Doctor, error) {
	return s.doctorRepo.FindByID(id)
}

func (s *doctorService) Create(ctx context.Context, input CreateDoctorInput) (*models.Doctor, error) {
	s.logger.Info("📝 [DoctorService] Creating doctor", "name", input.Name)

	doctor := &models.Doctor{
		Name:        input.Name,
		Designation: input.Designation,
		Phone:       input.Phone,
		Biography:   input.Biography,
	}

	// Store the blob before the row so no doctor ever references a
	// blob that was never written.
	if input.Image != nil {
		contentType, body, err := s.sniffImage(input.Image)
		if err != nil {
			return nil, err
		}

		path, err := s.storeImage(ctx, input.Image.Filename, contentType, body)
		if err != nil {
			return nil, err
		}
		doctor.Image = &path
	}

	if err := s.doctorRepo.Create(doctor); err != nil {
		s.logger.Error("❌ [DoctorService] Failed to create doctor", "error", err)
		return nil, err
	}

	s.logger.Info("✅ [DoctorService] Doctor created", "doctor_id", doctor.ID)
	return doctor, nil
}

func (s *doctorService) Update(ctx context.Context, id uint, input UpdateDoctorInput) (*models.Doctor, error) {
	doctor, err := s.doctorRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		doctor.Name = *input.Name
	}
	if input.Designation != nil {
		doctor.Designation = *input.Designation
	}
	doctor.Phone = input.Phone
	doctor.Biography = input.Biography

	if input.Image != nil {
		// Sniff before touching the old blob so a rejected upload
		// leaves the existing image intact.
		contentType, body, err := s.sniffImage(input.Image)
		if err != nil {
			return nil, err
		}

		// Replacing the image drops the previous blob first so
		// nothing is left orphaned.
		if err := s.deleteImageIfPresent(ctx, doctor); err != nil {
			return nil, err
		}

		path, err := s.storeImage(ctx, input.Image.Filename, contentType, body)
		if err != nil {
			return nil, err
		}
		doctor.Image = &path
	}

	if err := s.doctorRepo.Update(doctor); err != nil {
		s.logger.Error("❌ [DoctorService] Failed to update doctor", "doctor_id", id, "error", err)
		return nil, err
	}

	s.logger.Info("✅ [DoctorService] Doctor updated", "doctor_id", doctor.ID)
	return doctor, nil
}

// Delete removes the blob and then the row, returning the pre-deletion
// snapshot for the caller to confirm against.
func (s *doctorService) Delete(ctx context.Context, id uint) (*models.Doctor, error) {
	doctor, err := s.doctorRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.deleteImageIfPresent(ctx, doctor); err != nil {
		return nil, err
	}

	if err := s.doctorRepo.Delete(id); err != nil {
		s.logger.Error("❌ [DoctorService] Failed to delete doctor", "doctor_id", id, "error", err)
		return nil, err
	}

	s.logger.Info("✅ [DoctorService] Doctor deleted", "doctor_id", id)
	return doctor, nil
}

// ImageURL renders the stored blob path as a public URL, or nil when the
// doctor has no image recorded.
func (s *doctorService) ImageURL(doctor *models.Doctor) *string {
	if !doctor.HasImage() {
		return nil
	}
	url := s.blobs.URL(*doctor.Image)
	return &url
}

// sniffImage inspects the file content and rejects anything that is not a
// PNG/JPG/WEBP image. It returns the detected content type and a reader
// over the full file.
func (s *doctorService) sniffImage(upload *ImageUpload) (string, io.Reader, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(upload.Reader, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", nil, err
	}
	head = head[:n]

	contentType := http.DetectContentType(head)
	if !allowedImageTypes[contentType] {
		s.logger.Warn("⚠️ [DoctorService] Rejected non-image upload",
			"filename", upload.Filename,
			"content_type", contentType,
		)
		return "", nil, ErrUnsupportedImage
	}

	return contentType, io.MultiReader(bytes.NewReader(head), upload.Reader), nil
}

// storeImage writes a validated blob to the public image folder.
func (s *doctorService) storeImage(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	path, err := s.blobs.Store(ctx, imageFolder, filename, contentType, body)
	if err != nil {
		s.logger.Error("❌ [DoctorService] Failed to store image", "error", err)
		return "", err
	}

	return path, nil
}

// deleteImageIfPresent drops the doctor's blob when one is recorded and
// still exists in storage.
func (s *doctorService) deleteImageIfPresent(ctx context.Context, doctor *models.Doctor) error {
	if !doctor.HasImage() {
		return nil
	}

	exists, err := s.blobs.Exists(ctx, *doctor.Image)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	if err := s.blobs.Delete(ctx, *doctor.Image); err != nil {
		s.logger.Error("❌ [DoctorService] Failed to delete image blob", "path", *doctor.Image, "error", err)
		return err
	}

	return nil
}

// Service errors
var (
	ErrUnsupportedImage = errors.New("image must be a PNG, JPG or WEBP file")
)
