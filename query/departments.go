package query

import (
	"context"
	"fmt"

	"github.com/jrsteele09/go-hr-console/departments"
	hrerrors "github.com/jrsteele09/go-hr-console/internal/errors"
)

type Departments struct {
	client   *Client
	repo     departments.Repo
	notifier Notifier
	list     Source[departments.ListParams, []*departments.Department]
	detail   Source[string, *departments.Department]
}

func NewDepartments(c *Client, repo departments.Repo, options ...HookOption) *Departments {
	cfg := newHookConfig(DefaultStaleTime, options)
	policy := Policy{StaleTime: cfg.staleTime}
	return &Departments{
		client:   c,
		repo:     repo,
		notifier: cfg.notifier,
		list: Source[departments.ListParams, []*departments.Department]{
			Policy: policy,
			Key:    func(p departments.ListParams) Key { return ListKey(ResourceDepartments, p) },
			Load:   repo.List,
		},
		detail: Source[string, *departments.Department]{
			Policy: policy,
			Key:    func(id string) Key { return DetailKey(ResourceDepartments, id) },
			Load:   repo.Get,
		},
	}
}

func (d *Departments) List(ctx context.Context, params departments.ListParams) ([]*departments.Department, error) {
	return Read(ctx, d.client, d.list, params)
}

func (d *Departments) Get(ctx context.Context, id string) (*departments.Department, error) {
	if id == "" {
		return nil, hrerrors.MissingID()
	}
	return Read(ctx, d.client, d.detail, id)
}

func (d *Departments) ObserveList(ctx context.Context, params departments.ListParams, onChange func(State[[]*departments.Department])) *Observer[departments.ListParams, []*departments.Department] {
	return Observe(ctx, d.client, d.list, params, onChange)
}

func (d *Departments) ObserveDetail(ctx context.Context, id string, onChange func(State[*departments.Department])) *Observer[string, *departments.Department] {
	return Observe(ctx, d.client, d.detail, id, onChange)
}

func (d *Departments) Create(ctx context.Context, req *departments.CreateRequest) (*departments.Department, error) {
	return mutate(d.notifier,
		func() (*departments.Department, error) {
			if req == nil {
				return nil, hrerrors.NewValidationError("request", "is required")
			}
			if err := req.Validate(); err != nil {
				return nil, err
			}
			dept, err := d.repo.Create(ctx, req)
			if err != nil {
				return nil, err
			}
			d.client.Invalidate(ResourceDepartments, KindList)
			return dept, nil
		},
		func(dept *departments.Department) Notification {
			return success("Department Created", fmt.Sprintf(`Department "%s" has been created.`, dept.Name))
		},
		"Error Creating Department", "Failed to create department")
}

func (d *Departments) Update(ctx context.Context, id string, req *departments.UpdateRequest) (*departments.Department, error) {
	return mutate(d.notifier,
		func() (*departments.Department, error) {
			if id == "" {
				return nil, hrerrors.MissingID()
			}
			if req == nil {
				return nil, hrerrors.NewValidationError("request", "is required")
			}
			if err := req.Validate(); err != nil {
				return nil, err
			}
			dept, err := d.repo.Update(ctx, id, req)
			if err != nil {
				return nil, err
			}
			if dept.ID == "" {
				dept.ID = id
			}
			d.client.Invalidate(ResourceDepartments, KindList)
			d.client.SetData(DetailKey(ResourceDepartments, dept.ID), dept)
			return dept, nil
		},
		func(dept *departments.Department) Notification {
			return success("Department Updated", fmt.Sprintf(`Department "%s" has been updated.`, dept.Name))
		},
		"Error Updating Department", "Failed to update department")
}

func (d *Departments) Delete(ctx context.Context, id string) error {
	_, err := mutate(d.notifier,
		func() (struct{}, error) {
			if id == "" {
				return struct{}{}, hrerrors.MissingID()
			}
			if err := d.repo.Delete(ctx, id); err != nil {
				return struct{}{}, err
			}
			d.client.Invalidate(ResourceDepartments, KindList)
			d.client.Remove(DetailKey(ResourceDepartments, id))
			return struct{}{}, nil
		},
		func(struct{}) Notification {
			return success("Department Deleted", "Department has been removed successfully.")
		},
		"Error Deleting Department", "Failed to delete department")
	return err
}
