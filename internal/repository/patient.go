package repository

import (
	"database/sql"
	"errors"

	"cleanic/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type PatientRepository interface {
	GetAll() ([]*models.Patient, error)
	GetByID(id int64) (*models.Patient, error)
	Create(patient *models.Patient) error
}

type patientRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewPatientRepository(db *sqlx.DB, logger *zap.Logger) PatientRepository {
	return &patientRepository{db: db, logger: logger}
}

func (r *patientRepository) GetAll() ([]*models.Patient, error) {
	var patients []*models.Patient
	query := `SELECT id, firstname, lastname, mail FROM patients ORDER BY lastname ASC, firstname ASC`
	if err := r.db.Select(&patients, query); err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *patientRepository) GetByID(id int64) (*models.Patient, error) {
	var patient models.Patient
	query := `SELECT id, firstname, lastname, mail FROM patients WHERE id = $1`
	err := r.db.Get(&patient, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) Create(patient *models.Patient) error {
	query := `INSERT INTO patients (firstname, lastname, mail) VALUES ($1, $2, $3) RETURNING id, firstname, lastname, mail`
	return r.db.QueryRowx(query, patient.FirstName, patient.LastName, patient.Mail).StructScan(patient)
}
