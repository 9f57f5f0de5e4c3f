package query

import (
	"context"
	"fmt"

	hrerrors "github.com/jrsteele09/go-hr-console/internal/errors"
	"github.com/jrsteele09/go-hr-console/users"
)

// Employees is the read/write hook set for /users
type Employees struct {
	client   *Client
	repo     users.Repo
	notifier Notifier
	list     Source[users.ListParams, []*users.User]
	detail   Source[string, *users.User]
}

func NewEmployees(c *Client, repo users.Repo, options ...HookOption) *Employees {
	cfg := newHookConfig(DefaultStaleTime, options)
	policy := Policy{StaleTime: cfg.staleTime}
	return &Employees{
		client:   c,
		repo:     repo,
		notifier: cfg.notifier,
		list: Source[users.ListParams, []*users.User]{
			Policy: policy,
			Key:    func(p users.ListParams) Key { return ListKey(ResourceUsers, p) },
			Load:   repo.List,
		},
		detail: Source[string, *users.User]{
			Policy: policy,
			Key:    func(id string) Key { return DetailKey(ResourceUsers, id) },
			Load:   repo.Get,
		},
	}
}

func (e *Employees) List(ctx context.Context, params users.ListParams) ([]*users.User, error) {
	return Read(ctx, e.client, e.list, params)
}

func (e *Employees) Get(ctx context.Context, id string) (*users.User, error) {
	if id == "" {
		return nil, hrerrors.MissingID()
	}
	return Read(ctx, e.client, e.detail, id)
}

func (e *Employees) ObserveList(ctx context.Context, params users.ListParams, onChange func(State[[]*users.User])) *Observer[users.ListParams, []*users.User] {
	return Observe(ctx, e.client, e.list, params, onChange)
}

func (e *Employees) ObserveDetail(ctx context.Context, id string, onChange func(State[*users.User])) *Observer[string, *users.User] {
	return Observe(ctx, e.client, e.detail, id, onChange)
}

// Create validates and normalises req, then invalidates every employee list
func (e *Employees) Create(ctx context.Context, req *users.CreateRequest) (*users.User, error) {
	return mutate(e.notifier,
		func() (*users.User, error) {
			if req == nil {
				return nil, hrerrors.NewValidationError("request", "is required")
			}
			if err := req.Validate(); err != nil {
				return nil, err
			}
			u, err := e.repo.Create(ctx, normalizeUserCreate(req))
			if err != nil {
				return nil, err
			}
			e.client.Invalidate(ResourceUsers, KindList)
			return u, nil
		},
		func(u *users.User) Notification {
			return success("Success", fmt.Sprintf(`Employee "%s" has been created.`, u.FullName()))
		},
		"Error Creating Employee", unexpectedError)
}

// Update invalidates every employee list and puts the server's copy straight into the detail
// entry, so a detail read right after sees the edit without waiting for any refetch
func (e *Employees) Update(ctx context.Context, id string, req *users.UpdateRequest) (*users.User, error) {
	return mutate(e.notifier,
		func() (*users.User, error) {
			if id == "" {
				return nil, hrerrors.MissingID()
			}
			if req == nil {
				return nil, hrerrors.NewValidationError("request", "is required")
			}
			if err := req.Validate(); err != nil {
				return nil, err
			}
			u, err := e.repo.Update(ctx, id, normalizeUserUpdate(req))
			if err != nil {
				return nil, err
			}
			if u.ID == "" {
				u.ID = id
			}
			e.client.Invalidate(ResourceUsers, KindList)
			e.client.SetData(DetailKey(ResourceUsers, u.ID), u)
			return u, nil
		},
		func(u *users.User) Notification {
			return success("Success", fmt.Sprintf(`Employee "%s" has been updated.`, u.FullName()))
		},
		"Error Updating Employee", unexpectedError)
}

// Delete soft deletes the employee, invalidates every list and drops the detail entry outright
func (e *Employees) Delete(ctx context.Context, id string) (*users.DeleteResult, error) {
	return mutate(e.notifier,
		func() (*users.DeleteResult, error) {
			if id == "" {
				return nil, hrerrors.MissingID()
			}
			res, err := e.repo.Delete(ctx, id)
			if err != nil {
				return nil, err
			}
			e.client.Invalidate(ResourceUsers, KindList)
			e.client.Remove(DetailKey(ResourceUsers, id))
			return res, nil
		},
		func(res *users.DeleteResult) Notification {
			description := res.Message
			if description == "" {
				description = "The employee has been successfully removed."
			}
			return success("Employee Deleted", description)
		},
		"Error Deleting Employee", unexpectedError)
}
