package public

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/swifttrack/internal/config"
	"github.com/swifttrack/internal/http/response"
	"github.com/swifttrack/internal/models"
	"github.com/swifttrack/internal/provider"
	"github.com/swifttrack/internal/repository"
	"github.com/swifttrack/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupPublicHandlerTest(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Package{}, &models.StatusUpdate{}, &models.ContactSubmission{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	cfg := &config.Config{}
	packageRepo := repository.NewPackageRepository(db)
	statusRepo := repository.NewStatusUpdateRepository(db)
	contactRepo := repository.NewContactRepository(db)
	captchaService := service.NewCaptchaService(cfg.Captcha)

	container := &provider.Container{
		Config:           cfg,
		PackageRepo:      packageRepo,
		StatusUpdateRepo: statusRepo,
		ContactRepo:      contactRepo,
		CaptchaService:   captchaService,
		TrackingService:  service.NewTrackingService(packageRepo, statusRepo),
		ContactService:   service.NewContactService(contactRepo, captchaService, nil),
	}
	return New(container), db
}

type envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Error   string              `json:"error"`
	Package *models.Package     `json:"package"`
	History json.RawMessage     `json:"status_history"`
	Errors  map[string][]string `json:"errors"`
}

func decodeEnvelope(t *testing.T, body []byte) envelope {
	t.Helper()
	var resp envelope
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("unmarshal envelope failed: %v (%s)", err, body)
	}
	return resp
}

func TestTrackPackageFound(t *testing.T) {
	handler, db := setupPublicHandlerTest(t)

	pkg := models.Package{
		TrackingNumber:  "SW30000001",
		Status:          models.StatusInTransit,
		CurrentLocation: "Hong Kong Hub",
		Destination:     "Seattle, WA",
		LastUpdated:     time.Now(),
	}
	if err := db.Create(&pkg).Error; err != nil {
		t.Fatalf("create package failed: %v", err)
	}
	update := models.StatusUpdate{
		PackageID: pkg.ID,
		Status:    models.StatusInTransit,
		Location:  "Hong Kong Hub",
		Timestamp: time.Now(),
	}
	if err := db.Create(&update).Error; err != nil {
		t.Fatalf("create status update failed: %v", err)
	}

	r := gin.New()
	r.GET("/api/v1/track", handler.TrackPackage)
	r.POST("/api/v1/track", handler.TrackPackage)

	// GET 从 query 读取
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/track?tracking_number=sw30000001", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("GET status want 200 got %d: %s", w.Code, w.Body.String())
	}
	resp := decodeEnvelope(t, w.Body.Bytes())
	if !resp.Success || resp.Package == nil || resp.Package.TrackingNumber != "SW30000001" {
		t.Fatalf("unexpected GET payload: %s", w.Body.String())
	}

	// POST 从 JSON 体读取，行为一致
	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodPost, "/api/v1/track", strings.NewReader(`{"tracking_number":"SW30000001"}`))
	req2.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w2, req2)

	if w2.Code != http.StatusOK {
		t.Fatalf("POST status want 200 got %d: %s", w2.Code, w2.Body.String())
	}
	resp2 := decodeEnvelope(t, w2.Body.Bytes())
	if !resp2.Success || resp2.Package == nil {
		t.Fatalf("unexpected POST payload: %s", w2.Body.String())
	}
}

func TestTrackPackagePostFallsBackToQuery(t *testing.T) {
	handler, db := setupPublicHandlerTest(t)

	pkg := models.Package{
		TrackingNumber:  "SW30000002",
		Status:          models.StatusCreated,
		CurrentLocation: "Dallas Warehouse",
		Destination:     "Austin, TX",
		LastUpdated:     time.Now(),
	}
	if err := db.Create(&pkg).Error; err != nil {
		t.Fatalf("create package failed: %v", err)
	}

	r := gin.New()
	r.POST("/api/v1/track", handler.TrackPackage)

	// 空请求体时回退到 query 参数
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/track?tracking_number=SW30000002", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("POST with query status want 200 got %d: %s", w.Code, w.Body.String())
	}
	resp := decodeEnvelope(t, w.Body.Bytes())
	if !resp.Success || resp.Package == nil || resp.Package.TrackingNumber != "SW30000002" {
		t.Fatalf("unexpected payload: %s", w.Body.String())
	}

	// 格式错误的请求体仍然拒绝
	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodPost, "/api/v1/track?tracking_number=SW30000002", strings.NewReader("{not json"))
	req2.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w2, req2)

	if w2.Code != http.StatusBadRequest {
		t.Fatalf("malformed body status want 400 got %d", w2.Code)
	}
	resp2 := decodeEnvelope(t, w2.Body.Bytes())
	if resp2.Error != response.CodeBadRequest {
		t.Fatalf("error code want %s got %s", response.CodeBadRequest, resp2.Error)
	}
}

func TestTrackPackageNotFound(t *testing.T) {
	handler, _ := setupPublicHandlerTest(t)

	r := gin.New()
	r.GET("/api/v1/track", handler.TrackPackage)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/track?tracking_number=SW00000404", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status want 404 got %d", w.Code)
	}
	resp := decodeEnvelope(t, w.Body.Bytes())
	if resp.Success {
		t.Fatalf("success want false")
	}
	if resp.Error != response.CodeNotFound {
		t.Fatalf("error code want %s got %s", response.CodeNotFound, resp.Error)
	}
	if resp.Message != "Package not found" {
		t.Fatalf("message want 'Package not found' got %q", resp.Message)
	}
}

func TestTrackPackageValidation(t *testing.T) {
	handler, _ := setupPublicHandlerTest(t)

	r := gin.New()
	r.GET("/api/v1/track", handler.TrackPackage)

	cases := []struct {
		name  string
		query string
	}{
		{name: "missing", query: ""},
		{name: "too short", query: "?tracking_number=AB1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/track"+tc.query, nil)
			r.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status want 400 got %d", w.Code)
			}
			resp := decodeEnvelope(t, w.Body.Bytes())
			if resp.Success {
				t.Fatalf("success want false")
			}
			if resp.Error != response.CodeValidationFailed {
				t.Fatalf("error code want %s got %s", response.CodeValidationFailed, resp.Error)
			}
			if len(resp.Errors["tracking_number"]) == 0 {
				t.Fatalf("field errors missing: %s", w.Body.String())
			}
		})
	}
}
