package users

import "context"

// Repo is the employee resource as served by the HR API
type Repo interface {
	List(ctx context.Context, params ListParams) ([]*User, error)
	Get(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, req *CreateRequest) (*User, error)
	Update(ctx context.Context, id string, req *UpdateRequest) (*User, error)
	Delete(ctx context.Context, id string) (*DeleteResult, error)
}
