package main

import (
	"context"
	"strings"
)

func (a *app) listRoles(ctx context.Context, args []string) error {
	fs := a.flagSet("roles list")
	asJSON := fs.Bool("json", false, "print JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	list, err := a.roles.List(ctx)
	if err != nil {
		return err
	}
	if *asJSON {
		return writeJSON(a.out, list)
	}
	t := newTable(a.out, "ID", "NAME", "PERMISSIONS")
	for _, r := range list {
		t.row(r.ID, r.Name, strings.Join(r.Permissions, ","))
	}
	return t.flush()
}
