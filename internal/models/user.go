package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role classifies every authenticated caller.
type Role string

const (
	RoleStudent Role = "student"
	RoleFaculty Role = "faculty"
	RoleAdmin   Role = "admin"
)

// Actor is the authenticated caller of an operation, as resolved from the
// login token. It is the only identity information the policy layer sees.
type Actor struct {
	ID   string
	Role Role
	Name string
}

// User is a student or admin account. Faculty accounts live in a separate
// table, mirroring the registration flows that create them.
type User struct {
	ID       string `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	DeptNo   string `gorm:"uniqueIndex;not null" json:"deptNo"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Phone    string `gorm:"uniqueIndex;not null" json:"phone"`
	Password string `gorm:"not null" json:"-"`
	Role     Role   `gorm:"type:text;not null;default:student" json:"role"`
}

// Faculty is a staff account that complaints can be assigned to.
type Faculty struct {
	ID         string `gorm:"primaryKey" json:"id"`
	Name       string `gorm:"not null" json:"name"`
	FacultyID  string `gorm:"uniqueIndex;not null" json:"facultyId"`
	Email      string `gorm:"uniqueIndex;not null" json:"email"`
	Phone      string `gorm:"uniqueIndex;not null" json:"phone"`
	Password   string `gorm:"not null" json:"-"`
	Department string `gorm:"not null" json:"department"`
}

// BeforeCreate generates the account ID if the caller left it unset.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// BeforeCreate generates the account ID if the caller left it unset.
func (f *Faculty) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return
}
