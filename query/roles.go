package query

import (
	"context"

	"github.com/jrsteele09/go-hr-console/roles"
)

// Roles is read only. Roles rarely change, so the window is an hour.
type Roles struct {
	client *Client
	list   Source[struct{}, []*roles.Role]
}

func NewRoles(c *Client, repo roles.Repo, options ...HookOption) *Roles {
	cfg := newHookConfig(RolesStaleTime, options)
	return &Roles{
		client: c,
		list: Source[struct{}, []*roles.Role]{
			Policy: Policy{StaleTime: cfg.staleTime},
			Key:    func(struct{}) Key { return ListKey(ResourceRoles, nil) },
			Load: func(ctx context.Context, _ struct{}) ([]*roles.Role, error) {
				return repo.List(ctx)
			},
		},
	}
}

func (r *Roles) List(ctx context.Context) ([]*roles.Role, error) {
	return Read(ctx, r.client, r.list, struct{}{})
}

func (r *Roles) ObserveList(ctx context.Context, onChange func(State[[]*roles.Role])) *Observer[struct{}, []*roles.Role] {
	return Observe(ctx, r.client, r.list, struct{}{}, onChange)
}
