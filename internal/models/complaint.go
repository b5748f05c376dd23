package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status is the lifecycle state of a complaint.
type Status string

const (
	StatusSubmitted  Status = "submitted"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
)

// Valid reports whether s is one of the three known lifecycle states.
// The lifecycle is deliberately not forward-only: resolved complaints may be
// reopened, so any valid status can follow any other.
func (s Status) Valid() bool {
	switch s {
	case StatusSubmitted, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

// Complaint is the central record of the system. Classification fields and
// the details text are set once at creation; only Status and AssigneeID are
// mutable afterwards, and only through the complaint service.
type Complaint struct {
	ID         string `gorm:"primaryKey" json:"id"`
	DeptNo     string `gorm:"not null" json:"deptNo"`
	Department string `gorm:"not null" json:"department"`
	Category   string `gorm:"not null" json:"category"`
	// SubmitterName is a one-time snapshot of the submitter's display name.
	// It is not kept in sync with later profile changes.
	SubmitterName string `gorm:"not null" json:"username"`
	Details       string `gorm:"type:text;not null" json:"details"`
	// File is an opaque reference to the uploaded attachment in object
	// storage, empty when the complaint has none.
	File        string    `json:"file,omitempty"`
	SubmitterID string    `gorm:"type:uuid;not null;index" json:"userId"`
	AssigneeID  *string   `gorm:"type:uuid;index" json:"assignedTo"`
	Status      Status    `gorm:"type:text;not null;default:submitted" json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BeforeCreate generates the complaint ID and applies the default status when
// the caller left them unset.
func (c *Complaint) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Status == "" {
		c.Status = StatusSubmitted
	}
	return
}
