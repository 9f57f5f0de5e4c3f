package api

import (
	"context"

	hrerrors "github.com/jrsteele09/go-hr-console/internal/errors"
	"github.com/jrsteele09/go-hr-console/roles"
)

var _ roles.Repo = (*RoleRepo)(nil)

type RoleRepo struct {
	client *Client
}

func (r *RoleRepo) List(ctx context.Context) ([]*roles.Role, error) {
	list, err := getList[roles.Role](ctx, r.client, nil, "roles")
	return list, hrerrors.Wrapf(err, "[RoleRepo.List]")
}
