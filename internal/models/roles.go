package models

import "strings"

// Role is the closed set of staff roles. Pending accounts exist in the
// credential store but are barred from every operation, login included.
type Role string

const (
	RoleClinician  Role = "clinician"
	RoleNurse      Role = "nurse"
	RoleIT         Role = "it"
	RoleManagement Role = "management"
	RolePending    Role = "pending"
)

// Operation identifies a protected API operation.
type Operation string

const (
	OpAppointmentsList   Operation = "appointments.list"
	OpAppointmentsGet    Operation = "appointments.get"
	OpAppointmentsCreate Operation = "appointments.create"
	OpAppointmentsUpdate Operation = "appointments.update"
	OpAppointmentsDelete Operation = "appointments.delete"
	OpPatientsList       Operation = "patients.list"
	OpPatientsGet        Operation = "patients.get"
	OpPatientsCreate     Operation = "patients.create"
)

// permissions maps each operation to the roles allowed to perform it.
// Adding a role is a data change here, not a code change per handler.
var permissions = map[Operation]map[Role]bool{
	OpAppointmentsList:   {RoleClinician: true, RoleNurse: true, RoleIT: true, RoleManagement: true},
	OpAppointmentsGet:    {RoleClinician: true, RoleNurse: true, RoleIT: true, RoleManagement: true},
	OpAppointmentsCreate: {RoleClinician: true, RoleNurse: true},
	OpAppointmentsUpdate: {RoleClinician: true, RoleNurse: true},
	OpAppointmentsDelete: {RoleClinician: true, RoleIT: true, RoleManagement: true},
	OpPatientsList:       {RoleClinician: true, RoleNurse: true, RoleIT: true, RoleManagement: true},
	OpPatientsGet:        {RoleClinician: true, RoleNurse: true, RoleIT: true, RoleManagement: true},
	OpPatientsCreate:     {RoleClinician: true, RoleNurse: true},
}

// Allowed reports whether role may perform op. Unknown roles and
// unknown operations are always refused.
func Allowed(role Role, op Operation) bool {
	return permissions[op][NormalizeRole(role)]
}

// NormalizeRole lower-cases and trims a role string from the store or a
// token so comparisons against the closed set are case-insensitive.
func NormalizeRole(role Role) Role {
	return Role(strings.ToLower(strings.TrimSpace(string(role))))
}
