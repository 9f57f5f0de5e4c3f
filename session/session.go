package session

import (
	"encoding/json"
	"strings"

	"github.com/jrsteele09/go-hr-console/internal/utils"
)

// Storage keys. token and tenant_code are opaque strings; auth-store holds the serialised State.
// All three are written and cleared together.
const (
	StorageKeyToken      = "token"
	StorageKeyTenantCode = "tenant_code"
	StorageKeySession    = "auth-store"
)

// RoleName accepts either "Admin" or {"id": "...", "name": "Admin"} from the server
type RoleName string

func (r *RoleName) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = ""
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*r = RoleName(name)
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*r = RoleName(obj.Name)
	return nil
}

// UserSummary is the authenticated principal. It belongs to the session only.
type UserSummary struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	EmpCode   string   `json:"emp_code,omitempty"`
	Role      RoleName `json:"role,omitempty"`
	FirstName string   `json:"first_name,omitempty"`
	LastName  string   `json:"last_name,omitempty"`
}

func (u *UserSummary) DisplayName() string {
	if name := strings.TrimSpace(u.FirstName + " " + u.LastName); name != "" {
		return name
	}
	return u.Email
}

// UserPatch is a partial profile update; nil fields are left alone
type UserPatch struct {
	Email     *string
	EmpCode   *string
	Role      *string
	FirstName *string
	LastName  *string
}

func (p UserPatch) apply(u *UserSummary) {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.EmpCode != nil {
		u.EmpCode = *p.EmpCode
	}
	if p.Role != nil {
		u.Role = RoleName(*p.Role)
	}
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
}

// State is the session as held in memory and persisted under StorageKeySession
type State struct {
	Token           string       `json:"token,omitempty"`
	TenantCode      string       `json:"tenantCode,omitempty"`
	User            *UserSummary `json:"user,omitempty"`
	IsAuthenticated bool         `json:"isAuthenticated"`
}

func (s State) clone() State {
	if s.User != nil {
		s.User = utils.Ptr(*s.User)
	}
	return s
}

// Grant is what a successful authentication hands back
type Grant struct {
	Token string
	User  *UserSummary
}

// Reason says why a session ended
type Reason string

const (
	ReasonLogout      Reason = "logout"
	ReasonExpired     Reason = "expired"
	ReasonLoginFailed Reason = "login_failed"
	ReasonReconciled  Reason = "reconciled"
)
