package handler

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"cleanic/internal/middleware"
	"cleanic/internal/models"
	"cleanic/internal/repository"
	"cleanic/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type fakePatientRepo struct {
	patients []*models.Patient
	patient  *models.Patient
	err      error

	createdWith *models.Patient
	calls       int
}

func (f *fakePatientRepo) GetAll() ([]*models.Patient, error) {
	f.calls++
	return f.patients, f.err
}

func (f *fakePatientRepo) GetByID(id int64) (*models.Patient, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.patient, nil
}

func (f *fakePatientRepo) Create(p *models.Patient) error {
	f.calls++
	f.createdWith = p
	if f.err != nil {
		return f.err
	}
	p.ID = 9
	return nil
}

func newPatientRouter(repo repository.PatientRepository, tokens *service.TokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewPatientHandler(repo, zap.NewNop())

	protected := r.Group("/", middleware.AuthMiddleware(tokens, zap.NewNop()))
	protected.GET("/patients", h.GetAllPatients)
	protected.POST("/patients", h.CreatePatient)
	protected.GET("/patients/:id", h.GetPatientByID)
	return r
}

func TestPatientRoleEnforcement(t *testing.T) {
	tokens := service.NewTokenService(apptTestSecret, time.Hour)
	body := `{"firstname":"Jean","lastname":"Dupont"}`

	tests := []struct {
		name   string
		role   models.Role
		method string
		path   string
		body   string
		want   int
	}{
		{"nurse creates patient", models.RoleNurse, http.MethodPost, "/patients", body, http.StatusCreated},
		{"it cannot create patient", models.RoleIT, http.MethodPost, "/patients", body, http.StatusForbidden},
		{"it lists patients", models.RoleIT, http.MethodGet, "/patients", "", http.StatusOK},
		{"pending denied", models.RolePending, http.MethodGet, "/patients", "", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakePatientRepo{}
			r := newPatientRouter(repo, tokens)
			w := doJSON(r, tt.method, tt.path, tokenFor(t, tokens, tt.role), tt.body)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d, body %s", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestCreatePatientMissingLastName(t *testing.T) {
	tokens := service.NewTokenService(apptTestSecret, time.Hour)
	repo := &fakePatientRepo{}
	r := newPatientRouter(repo, tokens)

	w := doJSON(r, http.MethodPost, "/patients", tokenFor(t, tokens, models.RoleClinician), `{"firstname":"Jean"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if repo.calls != 0 {
		t.Error("repository must not be touched on a rejected body")
	}
}

func TestGetPatientNotFound(t *testing.T) {
	tokens := service.NewTokenService(apptTestSecret, time.Hour)
	r := newPatientRouter(&fakePatientRepo{err: repository.ErrNotFound}, tokens)

	w := doJSON(r, http.MethodGet, "/patients/123", tokenFor(t, tokens, models.RoleClinician), "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestGetAllPatientsEmptyList(t *testing.T) {
	tokens := service.NewTokenService(apptTestSecret, time.Hour)
	r := newPatientRouter(&fakePatientRepo{}, tokens)

	w := doJSON(r, http.MethodGet, "/patients", tokenFor(t, tokens, models.RoleNurse), "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("body = %s, want empty JSON array", w.Body.String())
	}
}
