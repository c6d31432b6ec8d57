package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/medidir/doctor-directory-api/internal/api"
	"github.com/medidir/doctor-directory-api/internal/database/models"
	"github.com/medidir/doctor-directory-api/internal/database/repository"
	"github.com/medidir/doctor-directory-api/internal/database/service"
	"github.com/medidir/doctor-directory-api/internal/handler"
	"github.com/medidir/doctor-directory-api/internal/middleware"
	"github.com/medidir/doctor-directory-api/internal/testutil"
)

// testServer bundles the router with the backing stores so tests can
// assert directly against rows and blobs.
type testServer struct {
	router *gin.Engine
	db     *gorm.DB
	blobs  *testutil.MemoryBlobStore
}

func newTestServer(t *testing.T) *testServer {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.AccessToken{}, &models.Doctor{}))

	cfg := testutil.NewTestConfig()
	logger := testutil.NewTestLogger()
	blobs := testutil.NewMemoryBlobStore()

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewAccessTokenRepository(db)
	doctorRepo := repository.NewDoctorRepository(db)

	authService := service.NewAuthService(userRepo, tokenRepo, cfg, logger)
	doctorService := service.NewDoctorService(doctorRepo, blobs, logger)

	authHandler := handler.NewAuthHandler(authService, logger)
	doctorHandler := handler.NewDoctorHandler(doctorService, cfg, logger)
	authMiddleware := middleware.NewAuthMiddleware(authService, logger)

	return &testServer{
		router: api.SetupRouter(authHandler, doctorHandler, authMiddleware),
		db:     db,
		blobs:  blobs,
	}
}

// envelope mirrors the uniform response body.
type envelope struct {
	Error   bool                   `json:"error"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

func (s *testServer) do(t *testing.T, method, path string, body io.Reader, contentType, token string) (*httptest.ResponseRecorder, envelope) {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if len(w.Body.Bytes()) > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	}
	return w, env
}

func (s *testServer) doJSON(t *testing.T, method, path string, payload interface{}, token string) (*httptest.ResponseRecorder, envelope) {
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return s.do(t, method, path, bytes.NewReader(data), "application/json", token)
}

// register creates an account and returns its bearer token.
func (s *testServer) register(t *testing.T, name, email, password string) string {
	w, env := s.doJSON(t, http.MethodPost, "/api/v1/register", gin.H{
		"name":     name,
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

	token, ok := env.Data["accessToken"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)
	return token
}

// createDoctor inserts a doctor through the API and returns its id.
func (s *testServer) createDoctor(t *testing.T, token, name string, image []byte) uint {
	body, contentType, err := testutil.BuildMultipartForm(map[string]string{
		"name":        name,
		"designation": "Cardiologist",
		"phone":       "+1-555-0100",
		"biography":   "Bio.",
	}, "portrait.png", image)
	require.NoError(t, err)

	w, env := s.do(t, http.MethodPost, "/api/v1/doctors", body, contentType, token)
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

	doctor, ok := env.Data["doctor"].(map[string]interface{})
	require.True(t, ok)
	return uint(doctor["id"].(float64))
}

func doctorPath(id uint) string {
	return fmt.Sprintf("/api/v1/doctors/%d", id)
}
