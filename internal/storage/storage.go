package storage

import (
	"context"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Manikandankb2403/College-Complaint-Management-System/internal/models"
)

// EventsChannel is the Redis pub/sub channel realtime events travel over.
// Every running instance subscribes to it, so events reach clients connected
// to any instance, not just the one that handled the mutation.
const EventsChannel = "complaints:events"

// Storage is the persistence contract the rest of the application depends on.
// Lookup methods return (nil, nil) when the record does not exist; callers
// decide what a missing record means for them.
type Storage interface {
	CreateComplaint(c *models.Complaint) error
	GetComplaintByID(id string) (*models.Complaint, error)
	// UpdateComplaintByID applies the patch in a single UPDATE statement.
	// Two concurrent patches to the same record race and the later write
	// wins; there is no version check.
	UpdateComplaintByID(id string, patch map[string]interface{}) (*models.Complaint, error)
	QueryComplaints(f ComplaintFilter, opts ListOptions) ([]models.Complaint, int64, error)
	ComplaintsBySubmitter(userID string) ([]models.Complaint, error)
	ComplaintsByAssignee(facultyID string) ([]models.Complaint, error)

	GetUserByID(id string) (*models.User, error)
	GetFacultyByID(id string) (*models.Faculty, error)
	SaveUser(u *models.User) error
	SaveFaculty(f *models.Faculty) error
	UserExists(email, deptNo, phone string) (bool, error)
	FacultyExists(email, facultyID, phone string) (bool, error)
	FindLoginAccount(identifier string) (*Account, error)
	FindAccountByEmail(email string) (*Account, error)
	UpdatePassword(accountID, passwordHash string) error

	PublishEvent(ev models.Event) error
	SubscribeEvents() *redis.PubSub

	SaveResetToken(token, accountID string) error
	ConsumeResetToken(token string) (string, error)
}

// Account is the login-facing view of either a User or a Faculty row.
type Account struct {
	ID           string
	Name         string
	Email        string
	Role         models.Role
	PasswordHash string
}

// Service implements Storage on top of PostgreSQL (GORM) and Redis.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}
