package complaint_test

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Manikandankb2403/College-Complaint-Management-System/internal/complaint"
	"github.com/Manikandankb2403/College-Complaint-Management-System/internal/models"
	"github.com/Manikandankb2403/College-Complaint-Management-System/internal/storage"
)

func strptr(s string) *string { return &s }

func statusPtr(s models.Status) *models.Status { return &s }

var (
	studentActor = models.Actor{ID: "student-1", Role: models.RoleStudent, Name: "Priya"}
	facultyActor = models.Actor{ID: "faculty-1", Role: models.RoleFaculty, Name: "Dr. Rao"}
	adminActor   = models.Actor{ID: "admin-1", Role: models.RoleAdmin, Name: "Registrar"}
)

func validCreateRequest() complaint.CreateRequest {
	return complaint.CreateRequest{
		DeptNo:     "CSE-104",
		Department: "Computer Science",
		Category:   "Infrastructure",
		Details:    "Leaking pipe",
	}
}

func TestCreate_OwnershipAndDefaults(t *testing.T) {
	storageMock := new(MockStorage)
	notifier := &recordingNotifier{}
	svc := complaint.NewService(storageMock, notifier)

	storageMock.On("GetUserByID", "student-1").Return(
		&models.User{ID: "student-1", Name: "Priya Kumar", Role: models.RoleStudent}, nil)
	storageMock.On("CreateComplaint", mock.AnythingOfType("*models.Complaint")).
		Run(func(args mock.Arguments) {
			c := args.Get(0).(*models.Complaint)
			c.ID = "c-1"
			c.CreatedAt = time.Now()
			c.UpdatedAt = c.CreatedAt
		}).Return(nil)

	created, err := svc.Create(studentActor, validCreateRequest())

	assert.NoError(t, err)
	assert.Equal(t, "student-1", created.SubmitterID, "ownership comes from the actor")
	assert.Equal(t, models.StatusSubmitted, created.Status)
	assert.Nil(t, created.AssigneeID)
	assert.Equal(t, "Priya Kumar", created.SubmitterName, "name is snapshotted at creation")

	broadcasts := notifier.byName(models.EventNewComplaint)
	if assert.Len(t, broadcasts, 1) {
		assert.Empty(t, broadcasts[0].Target, "newComplaint goes to every observer")
	}
	direct := notifier.byName(models.EventStatusUpdate)
	if assert.Len(t, direct, 1) {
		assert.Equal(t, "student-1", direct[0].Target, "submitter is informed directly")
	}
}

func TestCreate_NonStudentForbidden(t *testing.T) {
	for _, actor := range []models.Actor{facultyActor, adminActor} {
		storageMock := new(MockStorage)
		svc := complaint.NewService(storageMock, &recordingNotifier{})

		_, err := svc.Create(actor, validCreateRequest())

		assert.ErrorIs(t, err, complaint.ErrForbidden)
		storageMock.AssertNotCalled(t, "CreateComplaint", mock.Anything)
	}
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*complaint.CreateRequest)
	}{
		{"missing deptNo", func(r *complaint.CreateRequest) { r.DeptNo = "  " }},
		{"missing department", func(r *complaint.CreateRequest) { r.Department = "" }},
		{"missing category", func(r *complaint.CreateRequest) { r.Category = "" }},
		{"missing details", func(r *complaint.CreateRequest) { r.Details = "" }},
		{"oversized details", func(r *complaint.CreateRequest) { r.Details = strings.Repeat("a", 2001) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storageMock := new(MockStorage)
			svc := complaint.NewService(storageMock, &recordingNotifier{})

			req := validCreateRequest()
			tt.mutate(&req)
			_, err := svc.Create(studentActor, req)

			var ve *complaint.ValidationError
			assert.ErrorAs(t, err, &ve)
			storageMock.AssertNotCalled(t, "CreateComplaint", mock.Anything)
		})
	}
}

func TestTransition_RegressionAllowed(t *testing.T) {
	storageMock := new(MockStorage)
	notifier := &recordingNotifier{}
	svc := complaint.NewService(storageMock, notifier)

	current := &models.Complaint{ID: "c-1", SubmitterID: "student-1", Status: models.StatusResolved}
	reopened := &models.Complaint{ID: "c-1", SubmitterID: "student-1", Status: models.StatusInProgress}

	storageMock.On("GetComplaintByID", "c-1").Return(current, nil)
	storageMock.On("UpdateComplaintByID", "c-1", mock.MatchedBy(func(patch map[string]interface{}) bool {
		return patch["status"] == models.StatusInProgress
	})).Return(reopened, nil)

	updated, err := svc.Transition(adminActor, "c-1", complaint.TransitionRequest{
		Status: statusPtr(models.StatusInProgress),
	})

	assert.NoError(t, err, "resolved -> in_progress is a legal transition")
	assert.Equal(t, models.StatusInProgress, updated.Status)
}

func TestTransition_InvalidStatus(t *testing.T) {
	storageMock := new(MockStorage)
	svc := complaint.NewService(storageMock, &recordingNotifier{})

	storageMock.On("GetComplaintByID", "c-1").Return(
		&models.Complaint{ID: "c-1", Status: models.StatusSubmitted}, nil)

	_, err := svc.Transition(adminActor, "c-1", complaint.TransitionRequest{
		Status: statusPtr(models.Status("escalated")),
	})

	var ve *complaint.ValidationError
	assert.ErrorAs(t, err, &ve)
	storageMock.AssertNotCalled(t, "UpdateComplaintByID", mock.Anything, mock.Anything)
}

func TestTransition_InvalidAssignee(t *testing.T) {
	storageMock := new(MockStorage)
	svc := complaint.NewService(storageMock, &recordingNotifier{})

	storageMock.On("GetComplaintByID", "c-1").Return(
		&models.Complaint{ID: "c-1", Status: models.StatusSubmitted}, nil)
	storageMock.On("GetFacultyByID", "ghost").Return(nil, nil)

	_, err := svc.Transition(adminActor, "c-1", complaint.TransitionRequest{
		SetAssignee: true,
		Assignee:    strptr("ghost"),
	})

	var ve *complaint.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "assignedTo", ve.Field)
	storageMock.AssertNotCalled(t, "UpdateComplaintByID", mock.Anything, mock.Anything)
}

func TestTransition_OmittedAssigneeUntouched(t *testing.T) {
	storageMock := new(MockStorage)
	svc := complaint.NewService(storageMock, &recordingNotifier{})

	current := &models.Complaint{
		ID: "c-1", SubmitterID: "student-1",
		AssigneeID: strptr("faculty-1"), Status: models.StatusInProgress,
	}
	storageMock.On("GetComplaintByID", "c-1").Return(current, nil)
	storageMock.On("UpdateComplaintByID", "c-1", mock.MatchedBy(func(patch map[string]interface{}) bool {
		_, touched := patch["assignee_id"]
		return !touched
	})).Return(current, nil)

	_, err := svc.Transition(adminActor, "c-1", complaint.TransitionRequest{
		Status: statusPtr(models.StatusResolved),
	})

	assert.NoError(t, err)
	storageMock.AssertExpectations(t)
}

func TestTransition_ExplicitUnassign(t *testing.T) {
	storageMock := new(MockStorage)
	svc := complaint.NewService(storageMock, &recordingNotifier{})

	current := &models.Complaint{
		ID: "c-1", SubmitterID: "student-1",
		AssigneeID: strptr("faculty-1"), Status: models.StatusInProgress,
	}
	unassigned := &models.Complaint{ID: "c-1", SubmitterID: "student-1", Status: models.StatusInProgress}

	storageMock.On("GetComplaintByID", "c-1").Return(current, nil)
	storageMock.On("UpdateComplaintByID", "c-1", mock.MatchedBy(func(patch map[string]interface{}) bool {
		v, touched := patch["assignee_id"]
		return touched && v == nil
	})).Return(unassigned, nil)

	updated, err := svc.Transition(adminActor, "c-1", complaint.TransitionRequest{SetAssignee: true})

	assert.NoError(t, err)
	assert.Nil(t, updated.AssigneeID)
}

func TestTransition_FacultyNotAssigneeForbidden(t *testing.T) {
	storageMock := new(MockStorage)
	svc := complaint.NewService(storageMock, &recordingNotifier{})

	storageMock.On("GetComplaintByID", "c-1").Return(&models.Complaint{
		ID: "c-1", SubmitterID: "student-1",
		AssigneeID: strptr("faculty-2"), Status: models.StatusInProgress,
	}, nil)

	_, err := svc.Transition(facultyActor, "c-1", complaint.TransitionRequest{
		Status: statusPtr(models.StatusResolved),
	})

	assert.ErrorIs(t, err, complaint.ErrForbidden)
	storageMock.AssertNotCalled(t, "UpdateComplaintByID", mock.Anything, mock.Anything)
}

func TestTransition_NotFound(t *testing.T) {
	storageMock := new(MockStorage)
	svc := complaint.NewService(storageMock, &recordingNotifier{})

	storageMock.On("GetComplaintByID", "missing").Return(nil, nil)

	_, err := svc.Transition(adminActor, "missing", complaint.TransitionRequest{
		Status: statusPtr(models.StatusResolved),
	})

	assert.ErrorIs(t, err, complaint.ErrNotFound)
}

// Admin assigns the complaint to a faculty member, who then resolves it. The
// submitter hears about both moves on their direct channel.
func TestTransition_AssignThenResolve(t *testing.T) {
	store := newFakeStore()
	notifier := &recordingNotifier{}
	svc := complaint.NewService(store, notifier)

	store.complaints["c-1"] = &models.Complaint{
		ID: "c-1", DeptNo: "CSE-104", SubmitterID: "student-1", Status: models.StatusSubmitted,
	}
	store.faculties["faculty-1"] = &models.Faculty{ID: "faculty-1", Name: "Dr. Rao"}

	_, err := svc.Transition(adminActor, "c-1", complaint.TransitionRequest{
		Status:      statusPtr(models.StatusInProgress),
		SetAssignee: true,
		Assignee:    strptr("faculty-1"),
	})
	assert.NoError(t, err)

	resolved, err := svc.Transition(facultyActor, "c-1", complaint.TransitionRequest{
		Status: statusPtr(models.StatusResolved),
	})
	assert.NoError(t, err, "the assignee may resolve")
	assert.Equal(t, models.StatusResolved, resolved.Status)

	direct := notifier.byName(models.EventStatusUpdate)
	if assert.Len(t, direct, 2) {
		assert.Equal(t, "student-1", direct[1].Target)
		assert.Equal(t, models.StatusResolved, direct[1].Complaint.Status)
	}
	assert.Len(t, notifier.byName(models.EventComplaintUpdated), 2)
}

// Two racing updates to the same record: the store applies each patch
// atomically and the later one wins whole. The final record must match one
// of the two requests exactly, never a blend of both.
func TestTransition_LastWriterWins(t *testing.T) {
	store := newFakeStore()
	svc := complaint.NewService(store, &recordingNotifier{})

	store.complaints["c-1"] = &models.Complaint{
		ID: "c-1", SubmitterID: "student-1", Status: models.StatusSubmitted,
	}
	store.faculties["faculty-1"] = &models.Faculty{ID: "faculty-1", Name: "Dr. Rao"}
	store.faculties["faculty-2"] = &models.Faculty{ID: "faculty-2", Name: "Dr. Iyer"}

	reqA := complaint.TransitionRequest{
		Status:      statusPtr(models.StatusInProgress),
		SetAssignee: true,
		Assignee:    strptr("faculty-1"),
	}
	reqB := complaint.TransitionRequest{
		Status:      statusPtr(models.StatusResolved),
		SetAssignee: true,
		Assignee:    strptr("faculty-2"),
	}

	var wg sync.WaitGroup
	for _, req := range []complaint.TransitionRequest{reqA, reqB} {
		wg.Add(1)
		go func(r complaint.TransitionRequest) {
			defer wg.Done()
			_, err := svc.Transition(adminActor, "c-1", r)
			assert.NoError(t, err)
		}(req)
	}
	wg.Wait()

	final, err := store.GetComplaintByID("c-1")
	assert.NoError(t, err)
	if assert.NotNil(t, final.AssigneeID) {
		matchesA := final.Status == models.StatusInProgress && *final.AssigneeID == "faculty-1"
		matchesB := final.Status == models.StatusResolved && *final.AssigneeID == "faculty-2"
		assert.True(t, matchesA || matchesB, "final state blends the two updates: %s/%s", final.Status, *final.AssigneeID)
	}
}

func TestList_AdminOnlyAndPagination(t *testing.T) {
	storageMock := new(MockStorage)
	svc := complaint.NewService(storageMock, &recordingNotifier{})

	_, err := svc.List(studentActor, storage.ComplaintFilter{}, storage.ListOptions{})
	assert.ErrorIs(t, err, complaint.ErrForbidden)

	lastPage := make([]models.Complaint, 5)
	storageMock.On("QueryComplaints", mock.Anything, mock.MatchedBy(func(o storage.ListOptions) bool {
		return o.Page == 3 && o.Limit == 10
	})).Return(lastPage, int64(25), nil)

	result, err := svc.List(adminActor, storage.ComplaintFilter{}, storage.ListOptions{Page: 3, Limit: 10})
	assert.NoError(t, err)
	assert.Len(t, result.Items, 5)
	assert.Equal(t, int64(25), result.Total)
	assert.Equal(t, 3, result.Page)
	assert.Equal(t, int64(3), result.Pages)
}

func TestGet_ReadScoping(t *testing.T) {
	storageMock := new(MockStorage)
	svc := complaint.NewService(storageMock, &recordingNotifier{})

	owned := &models.Complaint{ID: "c-1", SubmitterID: "student-1", AssigneeID: strptr("faculty-1")}
	storageMock.On("GetComplaintByID", "c-1").Return(owned, nil)
	storageMock.On("GetComplaintByID", "missing").Return(nil, nil)

	_, err := svc.Get(studentActor, "c-1")
	assert.NoError(t, err)

	_, err = svc.Get(models.Actor{ID: "student-2", Role: models.RoleStudent}, "c-1")
	assert.ErrorIs(t, err, complaint.ErrForbidden)

	_, err = svc.Get(studentActor, "missing")
	assert.ErrorIs(t, err, complaint.ErrNotFound)
}

func TestExport_Asymmetry(t *testing.T) {
	storageMock := new(MockStorage)
	svc := complaint.NewService(storageMock, &recordingNotifier{})

	c := &models.Complaint{ID: "c-1", SubmitterID: "student-1", AssigneeID: strptr("faculty-1")}
	storageMock.On("GetComplaintByID", "c-1").Return(c, nil)
	storageMock.On("GetFacultyByID", "faculty-1").Return(&models.Faculty{ID: "faculty-1", Name: "Dr. Rao"}, nil)

	_, name, err := svc.Export(studentActor, "c-1")
	assert.NoError(t, err)
	assert.Equal(t, "Dr. Rao", name)

	// The assigned faculty can read this complaint but not export it.
	_, _, err = svc.Export(facultyActor, "c-1")
	assert.ErrorIs(t, err, complaint.ErrForbidden)
}

func TestExport_Unassigned(t *testing.T) {
	storageMock := new(MockStorage)
	svc := complaint.NewService(storageMock, &recordingNotifier{})

	storageMock.On("GetComplaintByID", "c-2").Return(
		&models.Complaint{ID: "c-2", SubmitterID: "student-1"}, nil)

	_, name, err := svc.Export(adminActor, "c-2")
	assert.NoError(t, err)
	assert.Equal(t, "Unassigned", name)
}
