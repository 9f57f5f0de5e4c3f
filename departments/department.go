package departments

import (
	"net/url"
	"strconv"
	"strings"

	hrerrors "github.com/jrsteele09/go-hr-console/internal/errors"
)

type Department struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsActive  bool   `json:"is_active"`
	IsDeleted bool   `json:"is_deleted"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

type CreateRequest struct {
	Name     string `json:"name"`
	IsActive *bool  `json:"is_active,omitempty"`
}

type UpdateRequest struct {
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// ListParams are the GET /departments filters; zero values are not sent
type ListParams struct {
	Page     int    `json:"page,omitempty"`
	PageSize int    `json:"page_size,omitempty"`
	Search   string `json:"search,omitempty"`
	Status   string `json:"status,omitempty"` // "active" or "inactive"
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
	if p.Status != "" {
		v.Set("status", p.Status)
	}
	return v
}

func (p ListParams) Matches(d *Department) bool {
	if p.Search != "" && !strings.Contains(strings.ToLower(d.Name), strings.ToLower(p.Search)) {
		return false
	}
	switch strings.ToLower(p.Status) {
	case "active":
		return d.IsActive
	case "inactive":
		return !d.IsActive
	}
	return true
}

func (r *CreateRequest) Validate() error {
	return validateName(r.Name)
}

func (r *UpdateRequest) Validate() error {
	return validateName(r.Name)
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return hrerrors.NewValidationError("name", "is required")
	}
	if len(name) > 100 {
		return hrerrors.NewValidationError("name", "must be at most 100 characters")
	}
	return nil
}
