package repository

import (
	"errors"
	"testing"

	"cleanic/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"go.uber.org/zap"
)

func TestPatientGetAllOrdered(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPatientRepository(db, zap.NewNop())

	rows := sqlmock.NewRows([]string{"id", "firstname", "lastname", "mail"}).
		AddRow(2, "Marie", "Curie", "marie@example.org").
		AddRow(1, "Jean", "Dupont", "jean@example.org")

	mock.ExpectQuery("SELECT(.+)FROM patients ORDER BY lastname ASC, firstname ASC").
		WillReturnRows(rows)

	patients, err := repo.GetAll()
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if len(patients) != 2 {
		t.Fatalf("len = %d, want 2", len(patients))
	}
	if patients[0].LastName != "Curie" {
		t.Errorf("first patient = %+v, want row order preserved", patients[0])
	}
}

func TestPatientGetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPatientRepository(db, zap.NewNop())

	mock.ExpectQuery("SELECT(.+)FROM patients WHERE id").
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "firstname", "lastname", "mail"}))

	if _, err := repo.GetByID(404); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestPatientCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPatientRepository(db, zap.NewNop())

	rows := sqlmock.NewRows([]string{"id", "firstname", "lastname", "mail"}).
		AddRow(9, "Jean", "Dupont", "jean@example.org")

	mock.ExpectQuery("INSERT INTO patients(.+)RETURNING").
		WithArgs("Jean", "Dupont", "jean@example.org").
		WillReturnRows(rows)

	p := &models.Patient{FirstName: "Jean", LastName: "Dupont", Mail: "jean@example.org"}
	if err := repo.Create(p); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if p.ID != 9 {
		t.Errorf("ID = %d, want the database-assigned 9", p.ID)
	}
}
