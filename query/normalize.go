package query

import (
	"github.com/jrsteele09/go-hr-console/internal/utils"
	"github.com/jrsteele09/go-hr-console/users"
)

// Optional fields arrive from forms as "" and must reach the server as absent on create and
// null on update. The rule lives on the write path and nowhere else. Requests are copied, never
// changed in place.

func normalizeUserCreate(req *users.CreateRequest) *users.CreateRequest {
	out := *req
	clearEmpty(&out.Phone, &out.DOB, &out.ProbationEnd, &out.DepartmentID, &out.DesignationID)
	return &out
}

func normalizeUserUpdate(req *users.UpdateRequest) *users.UpdateRequest {
	out := *req
	clearEmpty(&out.Phone, &out.DOB, &out.ProbationEnd, &out.DepartmentID, &out.DesignationID)
	return &out
}

func clearEmpty(fields ...**string) {
	for _, f := range fields {
		*f = utils.EmptyToNil(*f)
	}
}
