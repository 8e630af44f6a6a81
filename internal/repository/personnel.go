package repository

import (
	"database/sql"
	"errors"

	"cleanic/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type PersonnelRepository interface {
	GetByLogin(login string) (*models.Personnel, error)
}

type personnelRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewPersonnelRepository(db *sqlx.DB, logger *zap.Logger) PersonnelRepository {
	return &personnelRepository{db: db, logger: logger}
}

// GetByLogin looks up a staff record by its normalized directory login.
func (r *personnelRepository) GetByLogin(login string) (*models.Personnel, error) {
	var p models.Personnel
	query := `SELECT id, login_ad, role, mail, firstname, lastname FROM personnels WHERE lower(login_ad) = $1 LIMIT 1`
	err := r.db.Get(&p, query, login)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}
