package api

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-hr-console/departments"
	hrerrors "github.com/jrsteele09/go-hr-console/internal/errors"
)

const departmentsPath = "departments"

var _ departments.Repo = (*DepartmentRepo)(nil)

type DepartmentRepo struct {
	client *Client
}

func (r *DepartmentRepo) List(ctx context.Context, params departments.ListParams) ([]*departments.Department, error) {
	list, err := getList[departments.Department](ctx, r.client, params.Values(), departmentsPath)
	return list, hrerrors.Wrapf(err, "[DepartmentRepo.List]")
}

func (r *DepartmentRepo) Get(ctx context.Context, id string) (*departments.Department, error) {
	if id == "" {
		return nil, hrerrors.MissingID()
	}
	var d departments.Department
	if err := r.client.do(ctx, http.MethodGet, nil, nil, &d, departmentsPath, id); err != nil {
		return nil, hrerrors.Wrapf(err, "[DepartmentRepo.Get]")
	}
	return &d, nil
}

func (r *DepartmentRepo) Create(ctx context.Context, req *departments.CreateRequest) (*departments.Department, error) {
	var d departments.Department
	if err := r.client.do(ctx, http.MethodPost, nil, req, &d, departmentsPath); err != nil {
		return nil, hrerrors.Wrapf(err, "[DepartmentRepo.Create]")
	}
	return &d, nil
}

func (r *DepartmentRepo) Update(ctx context.Context, id string, req *departments.UpdateRequest) (*departments.Department, error) {
	if id == "" {
		return nil, hrerrors.MissingID()
	}
	var d departments.Department
	if err := r.client.do(ctx, http.MethodPut, nil, req, &d, departmentsPath, id); err != nil {
		return nil, hrerrors.Wrapf(err, "[DepartmentRepo.Update]")
	}
	return &d, nil
}

func (r *DepartmentRepo) Delete(ctx context.Context, id string) error {
	if id == "" {
		return hrerrors.MissingID()
	}
	return hrerrors.Wrapf(r.client.do(ctx, http.MethodDelete, nil, nil, nil, departmentsPath, id), "[DepartmentRepo.Delete]")
}
