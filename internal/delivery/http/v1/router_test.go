package v1_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-autofiller-backend/config"
	v1 "go-autofiller-backend/internal/delivery/http/v1"
	"go-autofiller-backend/internal/domain"
	"go-autofiller-backend/internal/usecase"
	"go-autofiller-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubProfileUsecase struct {
	result *domain.SaveResult
	err    error
	got    *domain.ProfileSubmission
}

func (s *stubProfileUsecase) SaveProfile(ctx context.Context, sub *domain.ProfileSubmission) (*domain.SaveResult, error) {
	s.got = sub
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Port:                   "8000",
		Version:                "1.0.0",
		AllowedOrigins:         []string{"*"},
		RateLimitWindowSeconds: 60,
		RateLimitSaveThreshold: 1000,
	}
}

func newTestRouter(uc domain.ProfileUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return v1.NewRouter(v1.RouterDeps{
		ProfileUC: uc,
		HealthUC:  usecase.NewHealthUsecase(v1.ServiceName),
		Config:    testConfig(),
	})
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(&stubProfileUsecase{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, v1.ServiceName, body["service"])
}

func TestRootEndpoint(t *testing.T) {
	router := newTestRouter(&stubProfileUsecase{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, v1.ServiceName+" is running!", body["message"])
	assert.Equal(t, "1.0.0", body["version"])
}

func TestSaveProfileSuccessShape(t *testing.T) {
	uc := &stubProfileUsecase{
		result: &domain.SaveResult{
			ProfileID: 12,
			Action:    domain.ActionCreated,
			DataReceived: domain.DataReceived{
				ExperienceCount: 2,
				ReferencesCount: 0,
			},
		},
	}
	router := newTestRouter(uc)

	payload := `{
		"personal": {"firstName": "Ada", "email": "ada@example.com"},
		"professional": {"skills": ["Go"]},
		"education": {},
		"experience": [{"title": "Engineer"}, {"title": "Intern"}],
		"references": [],
		"documents": {},
		"additional": {}
	}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/save-profile", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Profile created successfully", body["message"])
	assert.Equal(t, "created", body["action"])
	assert.Equal(t, float64(12), body["profile_id"])
	assert.NotEmpty(t, body["timestamp"])

	dataReceived, ok := body["data_received"].(map[string]interface{})
	if assert.True(t, ok) {
		assert.Equal(t, float64(2), dataReceived["experience_count"])
		assert.Equal(t, float64(0), dataReceived["references_count"])
	}

	// The handler forwards the decoded submission untouched
	if assert.NotNil(t, uc.got) {
		assert.Equal(t, "ada@example.com", *uc.got.Personal.Email)
		assert.Len(t, uc.got.Experience, 2)
	}
}

func TestSaveProfileMalformedBody(t *testing.T) {
	router := newTestRouter(&stubProfileUsecase{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/save-profile", strings.NewReader(`{"personal": "nope"`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
}

func TestSaveProfileConflictStatus(t *testing.T) {
	router := newTestRouter(&stubProfileUsecase{
		err: apperror.Conflict("A profile with this email already exists"),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/save-profile", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["message"], "already exists")
}

func TestSaveProfileInternalFailureExposesDetail(t *testing.T) {
	router := newTestRouter(&stubProfileUsecase{
		err: apperror.New(http.StatusInternalServerError, "Error saving profile: connection reset", nil),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/save-profile", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["message"], "connection reset")
}

func TestResponsesCarryRequestID(t *testing.T) {
	router := newTestRouter(&stubProfileUsecase{
		result: &domain.SaveResult{ProfileID: 1, Action: domain.ActionCreated},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/save-profile", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", "req-123")
	router.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "req-123", body["request_id"])
}
