package handler

import (
	"errors"
	"net/http"
	"strconv"

	"cleanic/internal/models"
	"cleanic/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PatientHandler interface {
	GetAllPatients(c *gin.Context)
	GetPatientByID(c *gin.Context)
	CreatePatient(c *gin.Context)
}

type patientHandler struct {
	patientRepo repository.PatientRepository
	logger      *zap.Logger
}

func NewPatientHandler(patientRepo repository.PatientRepository, logger *zap.Logger) PatientHandler {
	return &patientHandler{patientRepo: patientRepo, logger: logger}
}

type CreatePatientRequest struct {
	FirstName string `json:"firstname" binding:"required"`
	LastName  string `json:"lastname" binding:"required"`
	Mail      string `json:"mail"`
}

// GetAllPatients handles GET /patients
func (h *patientHandler) GetAllPatients(c *gin.Context) {
	if _, ok := requireRole(c, models.OpPatientsList); !ok {
		return
	}

	patients, err := h.patientRepo.GetAll()
	if err != nil {
		h.logger.Error("Failed to list patients", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}
	if patients == nil {
		patients = []*models.Patient{}
	}

	c.JSON(http.StatusOK, patients)
}

// GetPatientByID handles GET /patients/:id
func (h *patientHandler) GetPatientByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid patient id"})
		return
	}
	if _, ok := requireRole(c, models.OpPatientsGet); !ok {
		return
	}

	patient, err := h.patientRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "patient not found"})
			return
		}
		h.logger.Error("Failed to get patient", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}

	c.JSON(http.StatusOK, patient)
}

// CreatePatient handles POST /patients
func (h *patientHandler) CreatePatient(c *gin.Context) {
	var req CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "missing fields"})
		return
	}
	if _, ok := requireRole(c, models.OpPatientsCreate); !ok {
		return
	}

	patient := &models.Patient{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Mail:      req.Mail,
	}

	if err := h.patientRepo.Create(patient); err != nil {
		h.logger.Error("Failed to create patient", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "patient created", "patient": patient})
}
