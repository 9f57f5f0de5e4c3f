package main

import (
	"context"
	"fmt"

	"github.com/jrsteele09/go-hr-console/departments"
	"github.com/jrsteele09/go-hr-console/internal/utils"
)

func (a *app) listDepartments(ctx context.Context, args []string) error {
	fs := a.flagSet("departments list")
	var params departments.ListParams
	fs.StringVar(&params.Search, "search", "", "name contains")
	fs.StringVar(&params.Status, "status", "", "active or inactive")
	fs.IntVar(&params.Page, "page", 0, "page number")
	fs.IntVar(&params.PageSize, "page-size", 0, "page size")
	asJSON := fs.Bool("json", false, "print JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	list, err := a.departments.List(ctx, params)
	if err != nil {
		return err
	}
	if *asJSON {
		return writeJSON(a.out, list)
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No departments found.")
		return nil
	}
	t := newTable(a.out, "ID", "NAME", "ACTIVE")
	for _, d := range list {
		t.row(d.ID, d.Name, fmt.Sprint(d.IsActive))
	}
	return t.flush()
}

func (a *app) getDepartment(ctx context.Context, args []string) error {
	fs := a.flagSet("departments get")
	asJSON := fs.Bool("json", false, "print JSON")
	id, err := parseWithID(fs, args, a.errOut)
	if err != nil {
		return err
	}

	d, err := a.departments.Get(ctx, id)
	if err != nil {
		return err
	}
	if *asJSON {
		return writeJSON(a.out, d)
	}
	t := newTable(a.out, "FIELD", "VALUE")
	t.row("id", d.ID)
	t.row("name", d.Name)
	t.row("active", fmt.Sprint(d.IsActive))
	t.row("updated", d.UpdatedAt)
	return t.flush()
}

func (a *app) createDepartment(ctx context.Context, args []string) error {
	fs := a.flagSet("departments create")
	name := fs.String("name", "", "department name")
	inactive := fs.Bool("inactive", false, "create the department inactive")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := &departments.CreateRequest{Name: *name}
	if *inactive {
		req.IsActive = utils.Ptr(false)
	}
	d, err := a.departments.Create(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, d.ID)
	return nil
}

func (a *app) updateDepartment(ctx context.Context, args []string) error {
	fs := a.flagSet("departments update")
	name := fs.String("name", "", "department name")
	active := fs.Bool("active", true, "whether the department is active")
	id, err := parseWithID(fs, args, a.errOut)
	if err != nil {
		return err
	}
	set := visited(fs)

	cur, err := a.departments.Get(ctx, id)
	if err != nil {
		return err
	}
	req := &departments.UpdateRequest{Name: cur.Name, IsActive: cur.IsActive}
	if set["name"] {
		req.Name = *name
	}
	if set["active"] {
		req.IsActive = *active
	}
	_, err = a.departments.Update(ctx, id, req)
	return err
}

func (a *app) deleteDepartment(ctx context.Context, args []string) error {
	id, err := parseWithID(a.flagSet("departments delete"), args, a.errOut)
	if err != nil {
		return err
	}
	return a.departments.Delete(ctx, id)
}
