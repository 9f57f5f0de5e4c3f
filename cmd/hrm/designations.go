package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jrsteele09/go-hr-console/designations"
	"github.com/jrsteele09/go-hr-console/internal/utils"
)

func (a *app) listDesignations(ctx context.Context, args []string) error {
	fs := a.flagSet("designations list")
	var params designations.ListParams
	fs.StringVar(&params.Search, "search", "", "title contains")
	level := fs.Int("level", -1, "exact level")
	fs.StringVar(&params.DepartmentID, "department", "", "department id")
	fs.IntVar(&params.Page, "page", 0, "page number")
	fs.IntVar(&params.PageSize, "page-size", 0, "page size")
	asJSON := fs.Bool("json", false, "print JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *level >= 0 {
		params.Level = level
	}

	list, err := a.designations.List(ctx, params)
	if err != nil {
		return err
	}
	if *asJSON {
		return writeJSON(a.out, list)
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No designations found.")
		return nil
	}
	t := newTable(a.out, "ID", "TITLE", "LEVEL", "ACTIVE")
	for _, d := range list {
		t.row(d.ID, d.Title, strconv.Itoa(d.Level), fmt.Sprint(d.IsActive))
	}
	return t.flush()
}

func (a *app) getDesignation(ctx context.Context, args []string) error {
	fs := a.flagSet("designations get")
	asJSON := fs.Bool("json", false, "print JSON")
	id, err := parseWithID(fs, args, a.errOut)
	if err != nil {
		return err
	}

	d, err := a.designations.Get(ctx, id)
	if err != nil {
		return err
	}
	if *asJSON {
		return writeJSON(a.out, d)
	}
	t := newTable(a.out, "FIELD", "VALUE")
	t.row("id", d.ID)
	t.row("title", d.Title)
	t.row("level", strconv.Itoa(d.Level))
	t.row("active", fmt.Sprint(d.IsActive))
	return t.flush()
}

func (a *app) createDesignation(ctx context.Context, args []string) error {
	fs := a.flagSet("designations create")
	title := fs.String("title", "", "job title")
	level := fs.Int("level", 0, "seniority level")
	inactive := fs.Bool("inactive", false, "create the designation inactive")
	if err := fs.Parse(args); err != nil {
		return err
	}
	set := visited(fs)

	req := &designations.CreateRequest{Title: *title}
	if set["level"] {
		req.Level = level
	}
	if *inactive {
		req.IsActive = utils.Ptr(false)
	}
	d, err := a.designations.Create(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, d.ID)
	return nil
}

// updateDesignation sends only the fields given
func (a *app) updateDesignation(ctx context.Context, args []string) error {
	fs := a.flagSet("designations update")
	title := fs.String("title", "", "job title")
	level := fs.Int("level", 0, "seniority level")
	active := fs.Bool("active", true, "whether the designation is active")
	id, err := parseWithID(fs, args, a.errOut)
	if err != nil {
		return err
	}
	set := visited(fs)

	req := &designations.UpdateRequest{}
	if set["title"] {
		req.Title = title
	}
	if set["level"] {
		req.Level = level
	}
	if set["active"] {
		req.IsActive = active
	}
	_, err = a.designations.Update(ctx, id, req)
	return err
}

func (a *app) deleteDesignation(ctx context.Context, args []string) error {
	id, err := parseWithID(a.flagSet("designations delete"), args, a.errOut)
	if err != nil {
		return err
	}
	return a.designations.Delete(ctx, id)
}
