// Package complaint implements the complaint lifecycle: creation, status and
// assignment transitions, scoped reads and the export view. Every operation
// consults the policy package once, persists through the storage layer and
// hands resulting events to the notifier.
package complaint

import (
	"fmt"
	"strings"
	"time"

	"github.com/Manikandankb2403/College-Complaint-Management-System/internal/config"
	"github.com/Manikandankb2403/College-Complaint-Management-System/internal/models"
	"github.com/Manikandankb2403/College-Complaint-Management-System/internal/policy"
	"github.com/Manikandankb2403/College-Complaint-Management-System/internal/storage"
)

// Notifier delivers realtime events. Delivery is best-effort: implementations
// must never block the caller and never report failure, so a dead transport
// cannot fail a mutation that already committed.
type Notifier interface {
	Publish(ev models.Event)
}

// Service handles the business logic for complaints.
type Service struct {
	Storage  storage.Storage
	Notifier Notifier
}

// NewService creates a new complaint service.
func NewService(s storage.Storage, n Notifier) *Service {
	return &Service{Storage: s, Notifier: n}
}

// CreateRequest carries the fields of a new complaint. File is the attachment
// reference already placed in object storage, or empty.
type CreateRequest struct {
	DeptNo     string
	Department string
	Category   string
	Details    string
	File       string
}

// Create files a new complaint owned by the actor. Only students may create,
// and ownership is taken from the actor, never from the request.
func (s *Service) Create(actor models.Actor, req CreateRequest) (*models.Complaint, error) {
	if !policy.CanCreate(actor, actor.ID) {
		return nil, ErrForbidden
	}

	if err := validateCreate(req); err != nil {
		return nil, err
	}

	user, err := s.Storage.GetUserByID(actor.ID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Role != models.RoleStudent {
		return nil, ErrForbidden
	}

	c := &models.Complaint{
		DeptNo:        req.DeptNo,
		Department:    req.Department,
		Category:      req.Category,
		SubmitterName: user.Name,
		Details:       req.Details,
		File:          req.File,
		SubmitterID:   user.ID,
		Status:        models.StatusSubmitted,
	}
	if err := s.Storage.CreateComplaint(c); err != nil {
		return nil, err
	}

	s.Notifier.Publish(models.Event{
		Name:      models.EventNewComplaint,
		Message:   "New complaint submitted",
		Complaint: c,
	})
	s.Notifier.Publish(models.Event{
		Name:      models.EventStatusUpdate,
		Target:    c.SubmitterID,
		Message:   fmt.Sprintf("Your complaint %s has been submitted", c.DeptNo),
		Complaint: c,
	})
	return c, nil
}

func validateCreate(req CreateRequest) error {
	if strings.TrimSpace(req.DeptNo) == "" {
		return NewValidationError("deptNo", "department number is required")
	}
	if req.Department == "" {
		return NewValidationError("department", "department is required")
	}
	if req.Category == "" {
		return NewValidationError("category", "category is required")
	}
	details := strings.TrimSpace(req.Details)
	if details == "" {
		return NewValidationError("details", "details are required")
	}
	if len(details) > config.MaxDetailsLength {
		return NewValidationError("details",
			fmt.Sprintf("details must not exceed %d characters", config.MaxDetailsLength))
	}
	return nil
}

// TransitionRequest is a partial update of a complaint's mutable fields.
// A nil Status leaves the status untouched. SetAssignee distinguishes an
// omitted assignee (field untouched) from an explicit null (unassign).
type TransitionRequest struct {
	Status      *models.Status
	SetAssignee bool
	Assignee    *string
}

// Transition validates and applies a status/assignment change. The order is
// fixed: load, authorize, validate, patch, notify. Nothing is persisted when
// authorization or validation fails.
func (s *Service) Transition(actor models.Actor, id string, req TransitionRequest) (*models.Complaint, error) {
	current, err := s.Storage.GetComplaintByID(id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrNotFound
	}

	if !policy.CanUpdate(actor, current) {
		return nil, ErrForbidden
	}

	patch := map[string]interface{}{}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, NewValidationError("status", "invalid status")
		}
		patch["status"] = *req.Status
	}
	if req.SetAssignee {
		if req.Assignee != nil {
			faculty, err := s.Storage.GetFacultyByID(*req.Assignee)
			if err != nil {
				return nil, err
			}
			if faculty == nil {
				return nil, NewValidationError("assignedTo", "invalid faculty id")
			}
			patch["assignee_id"] = *req.Assignee
		} else {
			patch["assignee_id"] = nil
		}
	}
	patch["updated_at"] = time.Now()

	updated, err := s.Storage.UpdateComplaintByID(id, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrNotFound
	}

	s.Notifier.Publish(models.Event{
		Name:      models.EventComplaintUpdated,
		Message:   fmt.Sprintf("Complaint %s updated", updated.ID),
		Complaint: updated,
	})
	s.Notifier.Publish(models.Event{
		Name:      models.EventStatusUpdate,
		Target:    updated.SubmitterID,
		Message:   fmt.Sprintf("Your complaint %s is now %s", updated.DeptNo, updated.Status),
		Complaint: updated,
	})
	return updated, nil
}

// Get returns a single complaint the actor is allowed to see.
func (s *Service) Get(actor models.Actor, id string) (*models.Complaint, error) {
	c, err := s.Storage.GetComplaintByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}
	if !policy.CanRead(actor, c) {
		return nil, ErrForbidden
	}
	return c, nil
}

// ListResult is one page of the admin query.
type ListResult struct {
	Items []models.Complaint `json:"complaints"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Pages int64              `json:"pages"`
}

// List runs the cross-cutting filtered query. Admin only.
func (s *Service) List(actor models.Actor, f storage.ComplaintFilter, opts storage.ListOptions) (*ListResult, error) {
	if !policy.CanListAll(actor) {
		return nil, ErrForbidden
	}
	opts = opts.Normalize()
	items, total, err := s.Storage.QueryComplaints(f, opts)
	if err != nil {
		return nil, err
	}
	return &ListResult{
		Items: items,
		Total: total,
		Page:  opts.Page,
		Pages: storage.Pages(total, opts.Limit),
	}, nil
}

// ListOwn returns the complaints the actor submitted.
func (s *Service) ListOwn(actor models.Actor) ([]models.Complaint, error) {
	return s.Storage.ComplaintsBySubmitter(actor.ID)
}

// ListAssigned returns the complaints currently assigned to the actor.
func (s *Service) ListAssigned(actor models.Actor) ([]models.Complaint, error) {
	return s.Storage.ComplaintsByAssignee(actor.ID)
}

// Export returns a complaint for the formatted document download, together
// with the assignee's display name. Admins and the submitter may export; the
// assigned faculty deliberately may not.
func (s *Service) Export(actor models.Actor, id string) (*models.Complaint, string, error) {
	c, err := s.Storage.GetComplaintByID(id)
	if err != nil {
		return nil, "", err
	}
	if c == nil {
		return nil, "", ErrNotFound
	}
	if !policy.CanExport(actor, c) {
		return nil, "", ErrForbidden
	}

	assigneeName := "Unassigned"
	if c.AssigneeID != nil {
		faculty, err := s.Storage.GetFacultyByID(*c.AssigneeID)
		if err != nil {
			return nil, "", err
		}
		if faculty != nil {
			assigneeName = faculty.Name
		}
	}
	return c, assigneeName, nil
}
