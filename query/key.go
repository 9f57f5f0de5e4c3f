package query

import (
	"encoding/json"
	"strings"
)

// Kind is the shape of a cached read
type Kind string

const (
	KindList   Kind = "list"
	KindDetail Kind = "detail"
)

// Resource names double as the first element of every key
const (
	ResourceUsers        = "users"
	ResourceDepartments  = "departments"
	ResourceDesignations = "designations"
	ResourceRoles        = "roles"
)

// Key identifies one cache entry: (resource, kind, params). For lists Params is the canonical
// JSON of the filters, so two differently filtered views never share an entry. For details it
// is the record id.
type Key struct {
	Resource string
	Kind     Kind
	Params   string
}

func ListKey(resource string, filters any) Key {
	params := "{}"
	if filters != nil {
		if data, err := json.Marshal(filters); err == nil {
			params = string(data)
		}
	}
	return Key{Resource: resource, Kind: KindList, Params: params}
}

func DetailKey(resource, id string) Key {
	return Key{Resource: resource, Kind: KindDetail, Params: id}
}

func (k Key) String() string {
	return strings.Join([]string{k.Resource, string(k.Kind), k.Params}, "/")
}
