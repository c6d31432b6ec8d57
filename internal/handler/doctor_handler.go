package handler

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/medidir/doctor-directory-api/internal/config"
	"github.com/medidir/doctor-directory-api/internal/database/models"
	"github.com/medidir/doctor-directory-api/internal/database/repository"
	"github.com/medidir/doctor-directory-api/internal/database/service"
)

// DoctorHandler handles HTTP requests for the doctor directory
type DoctorHandler struct {
	service service.DoctorService
	cfg     *config.Config
	logger  *slog.Logger
}

// NewDoctorHandler creates a new doctor handler
func NewDoctorHandler(service service.DoctorService, cfg *config.Config, logger *slog.Logger) *DoctorHandler {
	return &DoctorHandler{
		service: service,
		cfg:     cfg,
		logger:  logger,
	}
}

// CreateDoctorRequest binds the multipart text fields; the image part is
// read separately from the form.
type CreateDoctorRequest struct {
	Name        string `form:"name" binding:"required"`
	Designation string `form:"designation" binding:"required"`
	Phone       string `form:"phone" binding:"required"`
	Biography   string `form:"biography" binding:"required"`
}

// DoctorResponse is the serialized doctor with the image rewritten to a
// public URL (or null when no image is recorded).
type DoctorResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Designation string    `json:"designation"`
	Phone       string    `json:"phone"`
	Biography   string    `json:"biography"`
	Image       *string   `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (h *DoctorHandler) doctorResponse(doctor *models.Doctor) DoctorResponse {
	return DoctorResponse{
		ID:          doctor.ID,
		Name:        doctor.Name,
		Designation: doctor.Designation,
		Phone:       doctor.Phone,
		Biography:   doctor.Biography,
		Image:       h.service.ImageURL(doctor),
		CreatedAt:   doctor.CreatedAt,
		UpdatedAt:   doctor.UpdatedAt,
	}
}

// List handles GET /doctors
func (h *DoctorHandler) List(c *gin.Context) {
	doctors, err := h.service.List()
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	responses := make([]DoctorResponse, 0, len(doctors))
	for i := range doctors {
		responses = append(responses, h.doctorResponse(&doctors[i]))
	}

	respond(c, http.StatusOK, "All doctors", gin.H{
		"doctors": responses,
	})
}

// Create handles POST /doctors
func (h *DoctorHandler) Create(c *gin.Context) {
	var req CreateDoctorRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Error("❌ [Handler] Invalid doctor create request", "error", err)
		respondError(c, http.StatusBadRequest, "Invalid request. Name, designation, phone and biography required.")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request. Image file required.")
		return
	}

	upload, file, ok := h.openUpload(c, fileHeader)
	if !ok {
		return
	}
	defer file.Close()

	doctor, err := h.service.Create(c.Request.Context(), service.CreateDoctorInput{
		Name:        req.Name,
		Designation: req.Designation,
		Phone:       req.Phone,
		Biography:   req.Biography,
		Image:       upload,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	respond(c, http.StatusCreated, "Doctor created successfully.", gin.H{
		"doctor": h.doctorResponse(doctor),
	})
}

// Show handles GET /doctors/:id
func (h *DoctorHandler) Show(c *gin.Context) {
	id, ok := h.doctorID(c)
	if !ok {
		return
	}

	doctor, err := h.service.Get(id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, "Doctor details.", gin.H{
		"doctor": h.doctorResponse(doctor),
	})
}

// Update handles PUT and PATCH /doctors/:id. Name and designation keep the
// stored value when absent; phone and biography are overwritten with
// whatever was submitted.
func (h *DoctorHandler) Update(c *gin.Context) {
	id, ok := h.doctorID(c)
	if !ok {
		return
	}

	input := service.UpdateDoctorInput{
		Phone:     c.PostForm("phone"),
		Biography: c.PostForm("biography"),
	}

	if name, present := c.GetPostForm("name"); present {
		input.Name = &name
	}
	if designation, present := c.GetPostForm("designation"); present {
		input.Designation = &designation
	}

	fileHeader, err := c.FormFile("image")
	if err == nil {
		upload, file, ok := h.openUpload(c, fileHeader)
		if !ok {
			return
		}
		defer file.Close()
		input.Image = upload
	} else if !errors.Is(err, http.ErrMissingFile) {
		respondError(c, http.StatusBadRequest, "Invalid image upload.")
		return
	}

	doctor, err := h.service.Update(c.Request.Context(), id, input)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, "Doctor updated successfully.", gin.H{
		"doctor": h.doctorResponse(doctor),
	})
}

// Destroy handles DELETE /doctors/:id and returns the pre-deletion snapshot.
func (h *DoctorHandler) Destroy(c *gin.Context) {
	id, ok := h.doctorID(c)
	if !ok {
		return
	}

	doctor, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, "Doctor deleted successfully.", gin.H{
		"doctor": h.doctorResponse(doctor),
	})
}

// doctorID parses the :id route parameter.
func (h *DoctorHandler) doctorID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid doctor id.")
		return 0, false
	}
	return uint(id), true
}

// openUpload opens the multipart file and enforces the size cap.
func (h *DoctorHandler) openUpload(c *gin.Context, fileHeader *multipart.FileHeader) (*service.ImageUpload, multipart.File, bool) {
	if fileHeader.Size > h.cfg.MaxUploadSize {
		respondError(c, http.StatusRequestEntityTooLarge, "Image exceeds the maximum upload size.")
		return nil, nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("❌ [Handler] Failed to open uploaded file", "error", err)
		respondError(c, http.StatusBadRequest, "Invalid image upload.")
		return nil, nil, false
	}

	return &service.ImageUpload{
		Filename: fileHeader.Filename,
		Size:     fileHeader.Size,
		Reader:   file,
	}, file, true
}

// handleServiceError maps service errors to HTTP responses
func (h *DoctorHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrDoctorNotFound):
		respondError(c, http.StatusNotFound, "Doctor not found.")
	case errors.Is(err, service.ErrUnsupportedImage):
		respondError(c, http.StatusBadRequest, "Image must be a PNG, JPG or WEBP file.")
	default:
		h.logger.Error("❌ [Handler] Internal server error", "error", err)
		respondError(c, http.StatusInternalServerError, "Internal server error.")
	}
}
