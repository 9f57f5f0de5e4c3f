package designations

import (
	"net/url"
	"strconv"
	"strings"

	hrerrors "github.com/jrsteele09/go-hr-console/internal/errors"
)

// Designation is a job title. The API calls the name "title".
type Designation struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Level     int    `json:"level"`
	IsActive  bool   `json:"is_active"`
	IsDeleted bool   `json:"is_deleted"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

type CreateRequest struct {
	Title    string `json:"title"`
	Level    *int   `json:"level,omitempty"`
	IsActive *bool  `json:"is_active,omitempty"`
}

// UpdateRequest only sends the fields that are set
type UpdateRequest struct {
	Title    *string `json:"title,omitempty"`
	Level    *int    `json:"level,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

type ListParams struct {
	Page         int    `json:"page,omitempty"`
	PageSize     int    `json:"page_size,omitempty"`
	Search       string `json:"search,omitempty"`
	Level        *int   `json:"level,omitempty"`
	DepartmentID string `json:"department_id,omitempty"`
}

func (p ListParams) Values() url.Values {
	v := url.Values{}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		v.Set("page_size", strconv.Itoa(p.PageSize))
	}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	if p.Level != nil {
		v.Set("level", strconv.Itoa(*p.Level))
	}
	if p.DepartmentID != "" {
		v.Set("department_id", p.DepartmentID)
	}
	return v
}

func (p ListParams) Matches(d *Designation) bool {
	if p.Search != "" && !strings.Contains(strings.ToLower(d.Title), strings.ToLower(p.Search)) {
		return false
	}
	if p.Level != nil && d.Level != *p.Level {
		return false
	}
	return true
}

func (r *CreateRequest) Validate() error {
	if err := validateTitle(r.Title); err != nil {
		return err
	}
	return validateLevel(r.Level)
}

func (r *UpdateRequest) Validate() error {
	if r.Title != nil {
		if err := validateTitle(*r.Title); err != nil {
			return err
		}
	}
	return validateLevel(r.Level)
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return hrerrors.NewValidationError("title", "is required")
	}
	return nil
}

func validateLevel(level *int) error {
	if level != nil && *level < 0 {
		return hrerrors.NewValidationError("level", "must not be negative")
	}
	return nil
}
