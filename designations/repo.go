package designations

import "context"

type Repo interface {
	List(ctx context.Context, params ListParams) ([]*Designation, error)
	Get(ctx context.Context, id string) (*Designation, error)
	Create(ctx context.Context, req *CreateRequest) (*Designation, error)
	Update(ctx context.Context, id string, req *UpdateRequest) (*Designation, error)
	Delete(ctx context.Context, id string) error
}
