package api

import (
	"context"
	"net/http"

	hrerrors "github.com/jrsteele09/go-hr-console/internal/errors"
	"github.com/jrsteele09/go-hr-console/users"
)

const usersPath = "users"

var _ users.Repo = (*UserRepo)(nil)

// UserRepo is the employee resource, /users
type UserRepo struct {
	client *Client
}

func (r *UserRepo) List(ctx context.Context, params users.ListParams) ([]*users.User, error) {
	list, err := getList[users.User](ctx, r.client, params.Values(), usersPath)
	return list, hrerrors.Wrapf(err, "[UserRepo.List]")
}

func (r *UserRepo) Get(ctx context.Context, id string) (*users.User, error) {
	if id == "" {
		return nil, hrerrors.MissingID()
	}
	var u users.User
	if err := r.client.do(ctx, http.MethodGet, nil, nil, &u, usersPath, id); err != nil {
		return nil, hrerrors.Wrapf(err, "[UserRepo.Get]")
	}
	return &u, nil
}

func (r *UserRepo) Create(ctx context.Context, req *users.CreateRequest) (*users.User, error) {
	var u users.User
	if err := r.client.do(ctx, http.MethodPost, nil, req, &u, usersPath); err != nil {
		return nil, hrerrors.Wrapf(err, "[UserRepo.Create]")
	}
	return &u, nil
}

func (r *UserRepo) Update(ctx context.Context, id string, req *users.UpdateRequest) (*users.User, error) {
	if id == "" {
		return nil, hrerrors.MissingID()
	}
	var u users.User
	if err := r.client.do(ctx, http.MethodPut, nil, req, &u, usersPath, id); err != nil {
		return nil, hrerrors.Wrapf(err, "[UserRepo.Update]")
	}
	return &u, nil
}

// Delete soft deletes the employee. The server answers {id, message} or nothing at all.
func (r *UserRepo) Delete(ctx context.Context, id string) (*users.DeleteResult, error) {
	if id == "" {
		return nil, hrerrors.MissingID()
	}
	var resp struct {
		Message string `json:"message"`
	}
	if err := r.client.do(ctx, http.MethodDelete, nil, nil, &resp, usersPath, id); err != nil {
		return nil, hrerrors.Wrapf(err, "[UserRepo.Delete]")
	}
	return &users.DeleteResult{
		ID:        id,
		IsActive:  false,
		IsDeleted: true,
		Message:   resp.Message,
	}, nil
}
