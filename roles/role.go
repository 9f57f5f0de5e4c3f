package roles

// Role is read-only on this side; roles are managed by the server
type Role struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

func (r *Role) HasPermission(permission string) bool {
	for _, p := range r.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// ByName finds a role case-sensitively, e.g. to map a name typed on the command line to its id
func ByName(list []*Role, name string) *Role {
	for _, r := range list {
		if r.Name == name {
			return r
		}
	}
	return nil
}
