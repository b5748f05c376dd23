// Package policy holds every role-based access rule in one place, as pure
// functions over the actor and the complaint record. Handlers and the
// complaint service consult it exactly once per operation instead of
// scattering role checks across routes.
package policy

import (
	"github.com/Manikandankb2403/College-Complaint-Management-System/internal/models"
)

// CanCreate reports whether the actor may file a complaint owned by
// submitterID. Only students create complaints, and only for themselves.
func CanCreate(actor models.Actor, submitterID string) bool {
	return actor.Role == models.RoleStudent && actor.ID == submitterID
}

// CanRead reports whether the actor may see this complaint: admins see
// everything, students their own submissions, faculty the complaints
// currently assigned to them.
func CanRead(actor models.Actor, c *models.Complaint) bool {
	switch actor.Role {
	case models.RoleAdmin:
		return true
	case models.RoleStudent:
		return c.SubmitterID == actor.ID
	case models.RoleFaculty:
		return c.AssigneeID != nil && *c.AssigneeID == actor.ID
	}
	return false
}

// CanListAll reports whether the actor may run the cross-cutting filtered
// query over all complaints.
func CanListAll(actor models.Actor) bool {
	return actor.Role == models.RoleAdmin
}

// CanUpdate reports whether the actor may change this complaint's status or
// assignee. Admins always may. Faculty may only when they are the current
// assignee, which also means the initial assignment is effectively
// admin-only. Students never update.
func CanUpdate(actor models.Actor, c *models.Complaint) bool {
	switch actor.Role {
	case models.RoleAdmin:
		return true
	case models.RoleFaculty:
		return c.AssigneeID != nil && *c.AssigneeID == actor.ID
	}
	return false
}

// CanExport reports whether the actor may download the formatted document
// for this complaint. Admins and the submitter may; the assigned faculty may
// not. The asymmetry with CanRead is intentional.
func CanExport(actor models.Actor, c *models.Complaint) bool {
	return actor.Role == models.RoleAdmin || c.SubmitterID == actor.ID
}
