package tenants

import (
	"strings"

	hrerrors "github.com/jrsteele09/go-hr-console/internal/errors"
)

// HeaderTenantCode routes every request to the caller's tenant. Resource visibility
// on the server is tenant scoped.
const HeaderTenantCode = "X-Tenant-Code"

const maxCodeLength = 64

// Code identifies an isolated customer organisation (e.g. "acme")
type Code string

func (c Code) String() string {
	return string(c)
}

// ParseCode trims the raw input and checks it is a usable tenant code
func ParseCode(raw string) (Code, error) {
	code := strings.TrimSpace(raw)
	if code == "" {
		return "", hrerrors.NewValidationError("tenant_code", "is required")
	}
	if len(code) > maxCodeLength {
		return "", hrerrors.NewValidationError("tenant_code", "is too long")
	}
	for _, r := range code {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
		default:
			return "", hrerrors.NewValidationError("tenant_code", "contains invalid characters")
		}
	}
	return Code(code), nil
}
