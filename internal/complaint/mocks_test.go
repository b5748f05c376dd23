package complaint_test

import (
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"

	"github.com/Manikandankb2403/College-Complaint-Management-System/internal/models"
	"github.com/Manikandankb2403/College-Complaint-Management-System/internal/storage"
)

// MockStorage is a testify mock of the storage contract.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) CreateComplaint(c *models.Complaint) error {
	args := m.Called(c)
	return args.Error(0)
}

func (m *MockStorage) GetComplaintByID(id string) (*models.Complaint, error) {
	args := m.Called(id)
	if c := args.Get(0); c != nil {
		return c.(*models.Complaint), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) UpdateComplaintByID(id string, patch map[string]interface{}) (*models.Complaint, error) {
	args := m.Called(id, patch)
	if c := args.Get(0); c != nil {
		return c.(*models.Complaint), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) QueryComplaints(f storage.ComplaintFilter, opts storage.ListOptions) ([]models.Complaint, int64, error) {
	args := m.Called(f, opts)
	var items []models.Complaint
	if v := args.Get(0); v != nil {
		items = v.([]models.Complaint)
	}
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *MockStorage) ComplaintsBySubmitter(userID string) ([]models.Complaint, error) {
	args := m.Called(userID)
	var items []models.Complaint
	if v := args.Get(0); v != nil {
		items = v.([]models.Complaint)
	}
	return items, args.Error(1)
}

func (m *MockStorage) ComplaintsByAssignee(facultyID string) ([]models.Complaint, error) {
	args := m.Called(facultyID)
	var items []models.Complaint
	if v := args.Get(0); v != nil {
		items = v.([]models.Complaint)
	}
	return items, args.Error(1)
}

func (m *MockStorage) GetUserByID(id string) (*models.User, error) {
	args := m.Called(id)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) GetFacultyByID(id string) (*models.Faculty, error) {
	args := m.Called(id)
	if f := args.Get(0); f != nil {
		return f.(*models.Faculty), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) SaveUser(u *models.User) error {
	args := m.Called(u)
	return args.Error(0)
}

func (m *MockStorage) SaveFaculty(f *models.Faculty) error {
	args := m.Called(f)
	return args.Error(0)
}

func (m *MockStorage) UserExists(email, deptNo, phone string) (bool, error) {
	args := m.Called(email, deptNo, phone)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) FacultyExists(email, facultyID, phone string) (bool, error) {
	args := m.Called(email, facultyID, phone)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) FindLoginAccount(identifier string) (*storage.Account, error) {
	args := m.Called(identifier)
	if a := args.Get(0); a != nil {
		return a.(*storage.Account), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) FindAccountByEmail(email string) (*storage.Account, error) {
	args := m.Called(email)
	if a := args.Get(0); a != nil {
		return a.(*storage.Account), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) UpdatePassword(accountID, passwordHash string) error {
	args := m.Called(accountID, passwordHash)
	return args.Error(0)
}

func (m *MockStorage) PublishEvent(ev models.Event) error {
	args := m.Called(ev)
	return args.Error(0)
}

func (m *MockStorage) SubscribeEvents() *redis.PubSub {
	args := m.Called()
	if p := args.Get(0); p != nil {
		return p.(*redis.PubSub)
	}
	return nil
}

func (m *MockStorage) SaveResetToken(token, accountID string) error {
	args := m.Called(token, accountID)
	return args.Error(0)
}

func (m *MockStorage) ConsumeResetToken(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

// recordingNotifier captures published events for assertions. Safe for
// concurrent use.
type recordingNotifier struct {
	mu     sync.Mutex
	events []models.Event
}

func (n *recordingNotifier) Publish(ev models.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
}

func (n *recordingNotifier) byName(name string) []models.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []models.Event
	for _, ev := range n.events {
		if ev.Name == name {
			out = append(out, ev)
		}
	}
	return out
}

// fakeStore is an in-memory store with the same per-record atomicity as the
// real one: each patch is applied under a lock in one step, so concurrent
// updates serialize and the later one wins whole. Methods the lifecycle
// tests do not touch are left to the embedded nil interface.
type fakeStore struct {
	storage.Storage

	mu         sync.Mutex
	complaints map[string]*models.Complaint
	faculties  map[string]*models.Faculty
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		complaints: make(map[string]*models.Complaint),
		faculties:  make(map[string]*models.Faculty),
	}
}

func (f *fakeStore) GetComplaintByID(id string) (*models.Complaint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.complaints[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeStore) UpdateComplaintByID(id string, patch map[string]interface{}) (*models.Complaint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.complaints[id]
	if !ok {
		return nil, nil
	}
	if v, ok := patch["status"]; ok {
		c.Status = v.(models.Status)
	}
	if v, ok := patch["assignee_id"]; ok {
		if v == nil {
			c.AssigneeID = nil
		} else {
			id := v.(string)
			c.AssigneeID = &id
		}
	}
	if v, ok := patch["updated_at"]; ok {
		c.UpdatedAt = v.(time.Time)
	}
	cp := *c
	return &cp, nil
}

func (f *fakeStore) GetFacultyByID(id string) (*models.Faculty, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fac, ok := f.faculties[id]
	if !ok {
		return nil, nil
	}
	cp := *fac
	return &cp, nil
}
