package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"cleanic/internal/middleware"
	"cleanic/internal/models"
	"cleanic/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AppointmentHandler interface {
	GetAllAppointments(c *gin.Context)
	GetAppointmentByID(c *gin.Context)
	CreateAppointment(c *gin.Context)
	UpdateAppointment(c *gin.Context)
	DeleteAppointment(c *gin.Context)
}

type appointmentHandler struct {
	appointmentRepo repository.AppointmentRepository
	logger          *zap.Logger
}

func NewAppointmentHandler(appointmentRepo repository.AppointmentRepository, logger *zap.Logger) AppointmentHandler {
	return &appointmentHandler{appointmentRepo: appointmentRepo, logger: logger}
}

// requireRole answers 403 and aborts when the authenticated role is not
// in the operation's allowed set. Authentication failures were already
// handled by the middleware; this is purely authorization.
func requireRole(c *gin.Context, op models.Operation) (middleware.Identity, bool) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing token"})
		return middleware.Identity{}, false
	}
	if !models.Allowed(ident.Role, op) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "access denied"})
		return middleware.Identity{}, false
	}
	return ident, true
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid appointment id"})
		return 0, false
	}
	return id, true
}

type CreateAppointmentRequest struct {
	PatientID   int64     `json:"patient_id" binding:"required"`
	PersonnelID int64     `json:"personnel_id" binding:"required"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required"`
	Status      string    `json:"status"`
}

type UpdateAppointmentRequest struct {
	PatientID   int64     `json:"patient_id"`
	PersonnelID int64     `json:"personnel_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      string    `json:"status"`
}

// GetAllAppointments handles GET /appointments
func (h *appointmentHandler) GetAllAppointments(c *gin.Context) {
	if _, ok := requireRole(c, models.OpAppointmentsList); !ok {
		return
	}

	rows, err := h.appointmentRepo.GetAll()
	if err != nil {
		h.logger.Error("Failed to list appointments", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}
	if rows == nil {
		rows = []*models.AppointmentDetail{}
	}

	c.JSON(http.StatusOK, rows)
}

// GetAppointmentByID handles GET /appointments/:id
func (h *appointmentHandler) GetAppointmentByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if _, ok := requireRole(c, models.OpAppointmentsGet); !ok {
		return
	}

	appt, err := h.appointmentRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "appointment not found"})
			return
		}
		h.logger.Error("Failed to get appointment", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}

	c.JSON(http.StatusOK, appt)
}

// CreateAppointment handles POST /appointments
func (h *appointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "missing fields"})
		return
	}
	if _, ok := requireRole(c, models.OpAppointmentsCreate); !ok {
		return
	}

	status := req.Status
	if status == "" {
		status = "planned"
	}
	appt := &models.Appointment{
		PatientID:   req.PatientID,
		PersonnelID: req.PersonnelID,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Status:      status,
	}

	if err := h.appointmentRepo.Create(appt); err != nil {
		h.logger.Error("Failed to create appointment", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "appointment created", "appointment": appt})
}

// UpdateAppointment handles PUT /appointments/:id. The body replaces
// all mutable fields.
func (h *appointmentHandler) UpdateAppointment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if _, ok := requireRole(c, models.OpAppointmentsUpdate); !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	appt := &models.Appointment{
		ID:          id,
		PatientID:   req.PatientID,
		PersonnelID: req.PersonnelID,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Status:      req.Status,
	}

	if err := h.appointmentRepo.Update(appt); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "appointment not found"})
			return
		}
		h.logger.Error("Failed to update appointment", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "appointment updated", "appointment": appt})
}

// DeleteAppointment handles DELETE /appointments/:id
func (h *appointmentHandler) DeleteAppointment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if _, ok := requireRole(c, models.OpAppointmentsDelete); !ok {
		return
	}

	if err := h.appointmentRepo.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "appointment not found"})
			return
		}
		h.logger.Error("Failed to delete appointment", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "appointment deleted", "appointmentId": id})
}
