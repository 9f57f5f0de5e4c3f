package api

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-hr-console/designations"
	hrerrors "github.com/jrsteele09/go-hr-console/internal/errors"
)

const designationsPath = "designations"

var _ designations.Repo = (*DesignationRepo)(nil)

type DesignationRepo struct {
	client *Client
}

func (r *DesignationRepo) List(ctx context.Context, params designations.ListParams) ([]*designations.Designation, error) {
	list, err := getList[designations.Designation](ctx, r.client, params.Values(), designationsPath)
	return list, hrerrors.Wrapf(err, "[DesignationRepo.List]")
}

func (r *DesignationRepo) Get(ctx context.Context, id string) (*designations.Designation, error) {
	if id == "" {
		return nil, hrerrors.MissingID()
	}
	var d designations.Designation
	if err := r.client.do(ctx, http.MethodGet, nil, nil, &d, designationsPath, id); err != nil {
		return nil, hrerrors.Wrapf(err, "[DesignationRepo.Get]")
	}
	return &d, nil
}

func (r *DesignationRepo) Create(ctx context.Context, req *designations.CreateRequest) (*designations.Designation, error) {
	var d designations.Designation
	if err := r.client.do(ctx, http.MethodPost, nil, req, &d, designationsPath); err != nil {
		return nil, hrerrors.Wrapf(err, "[DesignationRepo.Create]")
	}
	return &d, nil
}

// Update sends only the fields set on req; the id travels in the path, never in the body
func (r *DesignationRepo) Update(ctx context.Context, id string, req *designations.UpdateRequest) (*designations.Designation, error) {
	if id == "" {
		return nil, hrerrors.MissingID()
	}
	var d designations.Designation
	if err := r.client.do(ctx, http.MethodPut, nil, req, &d, designationsPath, id); err != nil {
		return nil, hrerrors.Wrapf(err, "[DesignationRepo.Update]")
	}
	return &d, nil
}

func (r *DesignationRepo) Delete(ctx context.Context, id string) error {
	if id == "" {
		return hrerrors.MissingID()
	}
	return hrerrors.Wrapf(r.client.do(ctx, http.MethodDelete, nil, nil, nil, designationsPath, id), "[DesignationRepo.Delete]")
}
