package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"crimewatch/api/internal/admin"
	"crimewatch/api/internal/config"
	"crimewatch/api/internal/models"
	"crimewatch/api/internal/repository"
	"crimewatch/api/internal/service"
)

// memCrimeStore is a minimal in-memory service.CrimeStore for handler tests.
type memCrimeStore struct {
	crimes []models.Crime
}

func (m *memCrimeStore) Create(_ context.Context, crime models.Crime) error {
	m.crimes = append(m.crimes, crime)
	return nil
}

func (m *memCrimeStore) List(_ context.Context) ([]models.Crime, error) {
	return append([]models.Crime(nil), m.crimes...), nil
}

func (m *memCrimeStore) GetByID(_ context.Context, id string) (models.Crime, error) {
	for _, crime := range m.crimes {
		if crime.ID == id {
			return crime, nil
		}
	}
	return models.Crime{}, repository.ErrCrimeNotFound
}

func (m *memCrimeStore) ExistsByID(_ context.Context, id string) (bool, error) {
	for _, crime := range m.crimes {
		if crime.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (m *memCrimeStore) UpdateStatus(_ context.Context, id string, status string) error {
	for i := range m.crimes {
		if m.crimes[i].ID == id {
			m.crimes[i].Status = status
			return nil
		}
	}
	return repository.ErrCrimeNotFound
}

func (m *memCrimeStore) DeleteByID(_ context.Context, id string) error {
	for i := range m.crimes {
		if m.crimes[i].ID == id {
			m.crimes = append(m.crimes[:i], m.crimes[i+1:]...)
			return nil
		}
	}
	return repository.ErrCrimeNotFound
}

func (m *memCrimeStore) ListByReporter(_ context.Context, userID string) ([]models.Crime, error) {
	var out []models.Crime
	for _, crime := range m.crimes {
		if crime.ReportedBy == userID {
			out = append(out, crime)
		}
	}
	return out, nil
}

func newTestRouter(store *memCrimeStore) (*gin.Engine, *admin.SessionStore) {
	gin.SetMode(gin.TestMode)

	cfg := &config.AppConfig{
		Environment: "test",
		Security:    config.SecurityConfig{JWTSecret: "test-secret", JWTTTL: time.Hour},
		Admin:       config.AdminConfig{Username: "admin", Password: "admin@1787"},
	}
	logger := zerolog.Nop()

	sessions := admin.NewSessionStore(admin.Credentials{
		Username: cfg.Admin.Username,
		Password: cfg.Admin.Password,
	}, cfg.Admin.SessionTTL)

	h := HandlerSet{
		log:           logger,
		cfg:           cfg,
		crimeService:  service.NewCrimeService(store, logger),
		adminSessions: sessions,
	}

	router := gin.New()
	h.Register(router.Group("/api"))
	return router, sessions
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func adminLogin(t *testing.T, router *gin.Engine) string {
	t.Helper()

	rr := doJSON(t, router, http.MethodPost, "/api/admin/login",
		`{"username":"admin","password":"admin@1787"}`, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("admin login status = %d, body %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Token   string `json:"token"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected token in login response")
	}
	return resp.Token
}

func TestAdminLoginRejectsBadCredentials(t *testing.T) {
	router, _ := newTestRouter(&memCrimeStore{})

	tests := []struct {
		name string
		body string
	}{
		{"wrong password", `{"username":"admin","password":"wrong"}`},
		{"wrong username", `{"username":"root","password":"admin@1787"}`},
		{"empty body fields", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doJSON(t, router, http.MethodPost, "/api/admin/login", tt.body, nil)
			if rr.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rr.Code)
			}
			if strings.Contains(rr.Body.String(), "token") {
				t.Error("failed login must not return a token")
			}
		})
	}
}

func TestAdminCrimeFlow(t *testing.T) {
	store := &memCrimeStore{crimes: []models.Crime{
		{ID: "c1", CrimeType: "theft", Status: models.StatusPending},
		{ID: "c2", CrimeType: "vandalism", Status: models.StatusPending},
	}}
	router, _ := newTestRouter(store)

	token := adminLogin(t, router)
	auth := map[string]string{"X-Admin-Token": token}

	// List requires a valid token.
	rr := doJSON(t, router, http.MethodGet, "/api/admin/crimes", "", auth)
	if rr.Code != http.StatusOK {
		t.Fatalf("list status = %d", rr.Code)
	}
	var crimes []crimeResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &crimes); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(crimes) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(crimes))
	}

	rr = doJSON(t, router, http.MethodGet, "/api/admin/crimes", "", map[string]string{"X-Admin-Token": "bogus"})
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("list with bad token status = %d, want 401", rr.Code)
	}

	// Status update.
	rr = doJSON(t, router, http.MethodPatch, "/api/admin/crimes/status?crimeId=c1&status=RESOLVED", "", auth)
	if rr.Code != http.StatusOK {
		t.Fatalf("patch status = %d, body %s", rr.Code, rr.Body.String())
	}
	var updated crimeResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode patch response: %v", err)
	}
	if updated.Status != "RESOLVED" {
		t.Errorf("status = %q, want RESOLVED", updated.Status)
	}

	rr = doJSON(t, router, http.MethodPatch, "/api/admin/crimes/status?crimeId=&status=RESOLVED", "", auth)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("patch without crimeId status = %d, want 400", rr.Code)
	}

	rr = doJSON(t, router, http.MethodPatch, "/api/admin/crimes/status?crimeId=missing&status=RESOLVED", "", auth)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("patch unknown crimeId status = %d, want 400", rr.Code)
	}

	// Delete.
	rr = doJSON(t, router, http.MethodDelete, "/api/admin/crimes/c2", "", auth)
	if rr.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rr.Code)
	}
	rr = doJSON(t, router, http.MethodDelete, "/api/admin/crimes/c2", "", auth)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("delete missing crime status = %d, want 400", rr.Code)
	}
}

func TestAdminLogout(t *testing.T) {
	router, _ := newTestRouter(&memCrimeStore{})

	token := adminLogin(t, router)

	// Logout succeeds regardless of token validity.
	rr := doJSON(t, router, http.MethodPost, "/api/admin/logout", "", map[string]string{"X-Admin-Token": token})
	if rr.Code != http.StatusOK {
		t.Fatalf("logout status = %d", rr.Code)
	}

	rr = doJSON(t, router, http.MethodGet, "/api/admin/crimes", "", map[string]string{"X-Admin-Token": token})
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("list after logout status = %d, want 401", rr.Code)
	}

	rr = doJSON(t, router, http.MethodPost, "/api/admin/logout", "", map[string]string{"X-Admin-Token": token})
	if rr.Code != http.StatusOK {
		t.Errorf("repeat logout status = %d, want 200", rr.Code)
	}

	rr = doJSON(t, router, http.MethodPost, "/api/admin/logout", "", nil)
	if rr.Code != http.StatusOK {
		t.Errorf("logout without token status = %d, want 200", rr.Code)
	}
}
