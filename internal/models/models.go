package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Personnel is a staff record provisioned in the credential store.
// Directory authentication alone is not enough to log in: a matching
// row with a non-pending role must exist.
type Personnel struct {
	ID        int64  `db:"id" json:"id"`
	LoginAD   string `db:"login_ad" json:"login"`
	Role      Role   `db:"role" json:"role"`
	Mail      string `db:"mail" json:"mail"`
	FirstName string `db:"firstname" json:"firstname"`
	LastName  string `db:"lastname" json:"lastname"`
}

type Patient struct {
	ID        int64  `db:"id" json:"id"`
	FirstName string `db:"firstname" json:"firstname"`
	LastName  string `db:"lastname" json:"lastname"`
	Mail      string `db:"mail" json:"mail"`
}

// Appointment references exactly one patient and one personnel record.
type Appointment struct {
	ID          int64     `db:"id" json:"id"`
	PatientID   int64     `db:"patient_id" json:"patient_id"`
	PersonnelID int64     `db:"personnel_id" json:"personnel_id"`
	StartTime   time.Time `db:"start_time" json:"start_time"`
	EndTime     time.Time `db:"end_time" json:"end_time"`
	Status      string    `db:"status" json:"status"`
}

// AppointmentDetail is the list row joined with display names.
type AppointmentDetail struct {
	AppointmentID int64     `db:"appointment_id" json:"appointment_id"`
	PatientName   string    `db:"patient_name" json:"patient_name"`
	PersonnelName string    `db:"personnel_name" json:"personnel_name"`
	StartTime     time.Time `db:"start_time" json:"start_time"`
	EndTime       time.Time `db:"end_time" json:"end_time"`
	Status        string    `db:"status" json:"status"`
}

// Claims defines the structure of the session token claims. Subject
// carries the personnel id in decimal form.
type Claims struct {
	Login string `json:"login"`
	Role  Role   `json:"role"`
	jwt.RegisteredClaims
}
