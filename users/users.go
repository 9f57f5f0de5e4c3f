package users

import (
	"net/url"
	"strings"

	hrerrors "github.com/jrsteele09/go-hr-console/internal/errors"
)

type EmployeeType string

const (
	TypeRegular     EmployeeType = "Regular"
	TypeOutsourced  EmployeeType = "Outsourced"
	TypeContractual EmployeeType = "Contractual"
	TypeIntern      EmployeeType = "Intern"
)

func (t EmployeeType) Valid() bool {
	switch t {
	case TypeRegular, TypeOutsourced, TypeContractual, TypeIntern:
		return true
	}
	return false
}

type EmployeeStatus string

const (
	StatusProbation EmployeeStatus = "Probation"
	StatusConfirmed EmployeeStatus = "Confirmed"
	StatusExited    EmployeeStatus = "Exited"
)

func (s EmployeeStatus) Valid() bool {
	switch s {
	case StatusProbation, StatusConfirmed, StatusExited:
		return true
	}
	return false
}

// Ref is the embedded {id, name} summary of a related record
type Ref struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Title string `json:"title,omitempty"`
}

// User is an employee record. Department, designation and role are weak references:
// lookups only, deleting them never touches the employee on this side.
type User struct {
	ID            string         `json:"id"`
	Username      string         `json:"username"`
	Email         string         `json:"email"`
	EmpCode       string         `json:"emp_code"`
	FirstName     string         `json:"first_name"`
	LastName      string         `json:"last_name"`
	TypeCode      EmployeeType   `json:"type_code"`
	Status        EmployeeStatus `json:"status"`
	Phone         *string        `json:"phone"`
	DOB           *string        `json:"dob"` // dates are ISO strings, as sent by the server
	DOJ           string         `json:"doj"`
	ProbationEnd  *string        `json:"probation_end"`
	DepartmentID  *string        `json:"department_id"`
	DesignationID *string        `json:"designation_id"`
	Department    *Ref           `json:"department"`
	Designation   *Ref           `json:"designation"`
	Role          *Ref           `json:"role"`
	IsActive      bool           `json:"is_active"`
	CreatedAt     string         `json:"created_at,omitempty"`
	UpdatedAt     string         `json:"updated_at,omitempty"`
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// CreateRequest is the POST /users body. Optional fields are omitted when nil.
type CreateRequest struct {
	Username      string         `json:"username"`
	Email         string         `json:"email"`
	Password      string         `json:"password"`
	RoleID        string         `json:"role_id"`
	EmpCode       string         `json:"emp_code"`
	TypeCode      EmployeeType   `json:"type_code"`
	FirstName     string         `json:"first_name"`
	LastName      string         `json:"last_name"`
	Phone         *string        `json:"phone,omitempty"`
	DOB           *string        `json:"dob,omitempty"`
	DOJ           string         `json:"doj"`
	Status        EmployeeStatus `json:"status"`
	ProbationEnd  *string        `json:"probation_end,omitempty"`
	DepartmentID  *string        `json:"department_id,omitempty"`
	DesignationID *string        `json:"designation_id,omitempty"`
}

// UpdateRequest is the PUT /users/:id body. Optional fields are sent as null when nil so the
// server clears them.
type UpdateRequest struct {
	Username      string         `json:"username"`
	Email         string         `json:"email"`
	RoleID        string         `json:"role_id"`
	EmpCode       string         `json:"emp_code"`
	TypeCode      EmployeeType   `json:"type_code"`
	FirstName     string         `json:"first_name"`
	LastName      string         `json:"last_name"`
	Phone         *string        `json:"phone"`
	DOB           *string        `json:"dob"`
	DOJ           string         `json:"doj"`
	Status        EmployeeStatus `json:"status"`
	ProbationEnd  *string        `json:"probation_end"`
	DepartmentID  *string        `json:"department_id"`
	DesignationID *string        `json:"designation_id"`
}

// DeleteResult describes a soft delete: the record is flagged, not removed
type DeleteResult struct {
	ID        string `json:"id"`
	IsActive  bool   `json:"is_active"`
	IsDeleted bool   `json:"is_deleted"`
	Message   string `json:"message"`
}

// ListParams are the GET /users filters. Every slice is sent as a repeated query parameter.
type ListParams struct {
	Search       string           `json:"search,omitempty"`
	Status       []EmployeeStatus `json:"status,omitempty"`
	DepartmentID []string         `json:"department_id,omitempty"`
	TypeCode     []EmployeeType   `json:"type_code,omitempty"`
}

func (p ListParams) Values() url.Values {
	v := url.Values{}
	if p.Search != "" {
		v.Add("search", p.Search)
	}
	for _, s := range p.Status {
		v.Add("status", string(s))
	}
	for _, d := range p.DepartmentID {
		v.Add("department_id", d)
	}
	for _, t := range p.TypeCode {
		v.Add("type_code", string(t))
	}
	return v
}

// Matches applies the filters the way the server does; used by in-memory repos
func (p ListParams) Matches(u *User) bool {
	if p.Search != "" {
		needle := strings.ToLower(p.Search)
		haystack := strings.ToLower(strings.Join([]string{u.FirstName, u.LastName, u.Email, u.EmpCode, u.Username}, " "))
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	if len(p.Status) > 0 && !contains(p.Status, u.Status) {
		return false
	}
	if len(p.TypeCode) > 0 && !contains(p.TypeCode, u.TypeCode) {
		return false
	}
	if len(p.DepartmentID) > 0 && (u.DepartmentID == nil || !contains(p.DepartmentID, *u.DepartmentID)) {
		return false
	}
	return true
}

func contains[T comparable](list []T, v T) bool {
	for _, e := range list {
		if e == v {
			return true
		}
	}
	return false
}

func (r *CreateRequest) Validate() error {
	if r.Password == "" {
		return hrerrors.NewValidationError("password", "is required")
	}
	return validateCommon(r.Username, r.Email, r.RoleID, r.EmpCode, r.FirstName, r.LastName, r.DOJ, r.TypeCode, r.Status)
}

func (r *UpdateRequest) Validate() error {
	return validateCommon(r.Username, r.Email, r.RoleID, r.EmpCode, r.FirstName, r.LastName, r.DOJ, r.TypeCode, r.Status)
}

func validateCommon(username, email, roleID, empCode, firstName, lastName, doj string, typeCode EmployeeType, status EmployeeStatus) error {
	required := []struct{ field, value string }{
		{"username", username},
		{"email", email},
		{"role_id", roleID},
		{"emp_code", empCode},
		{"first_name", firstName},
		{"last_name", lastName},
		{"doj", doj},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return hrerrors.NewValidationError(r.field, "is required")
		}
	}
	if !strings.Contains(email, "@") {
		return hrerrors.NewValidationError("email", "must be a valid email address")
	}
	if !typeCode.Valid() {
		return hrerrors.NewValidationError("type_code", "must be one of Regular, Outsourced, Contractual, Intern")
	}
	if !status.Valid() {
		return hrerrors.NewValidationError("status", "must be one of Probation, Confirmed, Exited")
	}
	return nil
}
