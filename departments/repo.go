package departments

import "context"

type Repo interface {
	List(ctx context.Context, params ListParams) ([]*Department, error)
	Get(ctx context.Context, id string) (*Department, error)
	Create(ctx context.Context, req *CreateRequest) (*Department, error)
	Update(ctx context.Context, id string, req *UpdateRequest) (*Department, error)
	// Delete soft deletes; the server usually answers 204
	Delete(ctx context.Context, id string) error
}
