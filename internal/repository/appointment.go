package repository

import (
	"database/sql"
	"errors"

	"cleanic/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type AppointmentRepository interface {
	GetAll() ([]*models.AppointmentDetail, error)
	GetByID(id int64) (*models.Appointment, error)
	Create(appt *models.Appointment) error
	Update(appt *models.Appointment) error
	Delete(id int64) error
}

type appointmentRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewAppointmentRepository(db *sqlx.DB, logger *zap.Logger) AppointmentRepository {
	return &appointmentRepository{db: db, logger: logger}
}

// GetAll returns every appointment joined with patient and personnel
// display names, ordered by start time ascending.
func (r *appointmentRepository) GetAll() ([]*models.AppointmentDetail, error) {
	var rows []*models.AppointmentDetail
	query := `
		SELECT
			a.id AS appointment_id,
			p.firstname || ' ' || p.lastname AS patient_name,
			d.firstname || ' ' || d.lastname AS personnel_name,
			a.start_time,
			a.end_time,
			a.status
		FROM appointments a
		JOIN patients p ON a.patient_id = p.id
		JOIN personnels d ON a.personnel_id = d.id
		ORDER BY a.start_time ASC
	`
	if err := r.db.Select(&rows, query); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *appointmentRepository) GetByID(id int64) (*models.Appointment, error) {
	var appt models.Appointment
	query := `SELECT id, patient_id, personnel_id, start_time, end_time, status FROM appointments WHERE id = $1`
	err := r.db.Get(&appt, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &appt, nil
}

func (r *appointmentRepository) Create(appt *models.Appointment) error {
	query := `INSERT INTO appointments (patient_id, personnel_id, start_time, end_time, status)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id, patient_id, personnel_id, start_time, end_time, status`
	return r.db.QueryRowx(query, appt.PatientID, appt.PersonnelID, appt.StartTime, appt.EndTime, appt.Status).StructScan(appt)
}

// Update replaces all mutable fields in a single statement.
func (r *appointmentRepository) Update(appt *models.Appointment) error {
	query := `UPDATE appointments SET patient_id = $1, personnel_id = $2, start_time = $3, end_time = $4, status = $5
	          WHERE id = $6 RETURNING id, patient_id, personnel_id, start_time, end_time, status`
	err := r.db.QueryRowx(query, appt.PatientID, appt.PersonnelID, appt.StartTime, appt.EndTime, appt.Status, appt.ID).StructScan(appt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (r *appointmentRepository) Delete(id int64) error {
	var deleted int64
	query := `DELETE FROM appointments WHERE id = $1 RETURNING id`
	err := r.db.QueryRowx(query, id).Scan(&deleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
