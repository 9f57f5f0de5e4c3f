package query

import (
	"context"
	"fmt"

	"github.com/jrsteele09/go-hr-console/designations"
	hrerrors "github.com/jrsteele09/go-hr-console/internal/errors"
)

type Designations struct {
	client   *Client
	repo     designations.Repo
	notifier Notifier
	list     Source[designations.ListParams, []*designations.Designation]
	detail   Source[string, *designations.Designation]
}

func NewDesignations(c *Client, repo designations.Repo, options ...HookOption) *Designations {
	cfg := newHookConfig(DefaultStaleTime, options)
	policy := Policy{StaleTime: cfg.staleTime}
	return &Designations{
		client:   c,
		repo:     repo,
		notifier: cfg.notifier,
		list: Source[designations.ListParams, []*designations.Designation]{
			Policy: policy,
			Key:    func(p designations.ListParams) Key { return ListKey(ResourceDesignations, p) },
			Load:   repo.List,
		},
		detail: Source[string, *designations.Designation]{
			Policy: policy,
			Key:    func(id string) Key { return DetailKey(ResourceDesignations, id) },
			Load:   repo.Get,
		},
	}
}

func (d *Designations) List(ctx context.Context, params designations.ListParams) ([]*designations.Designation, error) {
	return Read(ctx, d.client, d.list, params)
}

func (d *Designations) Get(ctx context.Context, id string) (*designations.Designation, error) {
	if id == "" {
		return nil, hrerrors.MissingID()
	}
	return Read(ctx, d.client, d.detail, id)
}

func (d *Designations) ObserveList(ctx context.Context, params designations.ListParams, onChange func(State[[]*designations.Designation])) *Observer[designations.ListParams, []*designations.Designation] {
	return Observe(ctx, d.client, d.list, params, onChange)
}

func (d *Designations) ObserveDetail(ctx context.Context, id string, onChange func(State[*designations.Designation])) *Observer[string, *designations.Designation] {
	return Observe(ctx, d.client, d.detail, id, onChange)
}

func (d *Designations) Create(ctx context.Context, req *designations.CreateRequest) (*designations.Designation, error) {
	return mutate(d.notifier,
		func() (*designations.Designation, error) {
			if req == nil {
				return nil, hrerrors.NewValidationError("request", "is required")
			}
			if err := req.Validate(); err != nil {
				return nil, err
			}
			g, err := d.repo.Create(ctx, req)
			if err != nil {
				return nil, err
			}
			d.client.Invalidate(ResourceDesignations, KindList)
			return g, nil
		},
		func(g *designations.Designation) Notification {
			return success("Designation Created", fmt.Sprintf("%s has been added successfully.", g.Title))
		},
		"Error", "Failed to create designation")
}

func (d *Designations) Update(ctx context.Context, id string, req *designations.UpdateRequest) (*designations.Designation, error) {
	return mutate(d.notifier,
		func() (*designations.Designation, error) {
			if id == "" {
				return nil, hrerrors.MissingID()
			}
			if req == nil {
				return nil, hrerrors.NewValidationError("request", "is required")
			}
			if err := req.Validate(); err != nil {
				return nil, err
			}
			g, err := d.repo.Update(ctx, id, req)
			if err != nil {
				return nil, err
			}
			if g.ID == "" {
				g.ID = id
			}
			d.client.Invalidate(ResourceDesignations, KindList)
			d.client.SetData(DetailKey(ResourceDesignations, g.ID), g)
			return g, nil
		},
		func(g *designations.Designation) Notification {
			return success("Designation Updated", fmt.Sprintf("%s has been updated successfully.", g.Title))
		},
		"Error", "Failed to update designation")
}

// Delete follows the same policy as the other resources: lists invalidated, detail dropped
func (d *Designations) Delete(ctx context.Context, id string) error {
	_, err := mutate(d.notifier,
		func() (struct{}, error) {
			if id == "" {
				return struct{}{}, hrerrors.MissingID()
			}
			if err := d.repo.Delete(ctx, id); err != nil {
				return struct{}{}, err
			}
			d.client.Invalidate(ResourceDesignations, KindList)
			d.client.Remove(DetailKey(ResourceDesignations, id))
			return struct{}{}, nil
		},
		func(struct{}) Notification {
			return success("Designation Deleted", "Designation has been removed successfully.")
		},
		"Error", "Failed to delete designation")
	return err
}
