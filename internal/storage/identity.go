package storage

import (
	"errors"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/Manikandankb2403/College-Complaint-Management-System/internal/models"
)

// GetUserByID returns the student or admin account, or (nil, nil) when absent.
func (s *Service) GetUserByID(id string) (*models.User, error) {
	var u models.User
	err := s.DB.Where("id = ?", id).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		log.Printf("ERROR: Failed to get user %s: %v", id, err)
		return nil, err
	}
	return &u, nil
}

// GetFacultyByID returns the faculty account, or (nil, nil) when absent.
// The complaint service uses this to validate assignment targets.
func (s *Service) GetFacultyByID(id string) (*models.Faculty, error) {
	var f models.Faculty
	err := s.DB.Where("id = ?", id).First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		log.Printf("ERROR: Failed to get faculty %s: %v", id, err)
		return nil, err
	}
	return &f, nil
}

// SaveUser persists a student or admin account.
func (s *Service) SaveUser(u *models.User) error {
	return s.DB.Save(u).Error
}

// SaveFaculty persists a faculty account.
func (s *Service) SaveFaculty(f *models.Faculty) error {
	return s.DB.Save(f).Error
}

// UserExists reports whether any user already claims one of the unique fields.
func (s *Service) UserExists(email, deptNo, phone string) (bool, error) {
	var count int64
	err := s.DB.Model(&models.User{}).
		Where("email = ? OR dept_no = ? OR phone = ?", email, deptNo, phone).
		Count(&count).Error
	return count > 0, err
}

// FacultyExists reports whether any faculty already claims one of the unique fields.
func (s *Service) FacultyExists(email, facultyID, phone string) (bool, error) {
	var count int64
	err := s.DB.Model(&models.Faculty{}).
		Where("email = ? OR faculty_id = ? OR phone = ?", email, facultyID, phone).
		Count(&count).Error
	return count > 0, err
}

// FindLoginAccount resolves a login identifier to an account. Students and
// admins match on dept number (upper-cased), email or phone; faculty match on
// faculty ID (case-insensitive) or email. Returns (nil, nil) when nothing
// matches, so the caller can respond uniformly without leaking which part
// failed.
func (s *Service) FindLoginAccount(identifier string) (*Account, error) {
	ident := strings.ToLower(strings.TrimSpace(identifier))

	var u models.User
	err := s.DB.Where("dept_no = ? OR email = ? OR phone = ?",
		strings.ToUpper(ident), ident, ident).First(&u).Error
	if err == nil {
		return &Account{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, PasswordHash: u.Password}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("ERROR: Login lookup failed for %q: %v", ident, err)
		return nil, err
	}

	var f models.Faculty
	err = s.DB.Where("LOWER(faculty_id) = ? OR email = ?", ident, ident).First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		log.Printf("ERROR: Faculty login lookup failed for %q: %v", ident, err)
		return nil, err
	}
	return &Account{ID: f.ID, Name: f.Name, Email: f.Email, Role: models.RoleFaculty, PasswordHash: f.Password}, nil
}

// FindAccountByEmail resolves an email to an account across both tables.
func (s *Service) FindAccountByEmail(email string) (*Account, error) {
	var u models.User
	err := s.DB.Where("email = ?", email).First(&u).Error
	if err == nil {
		return &Account{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, PasswordHash: u.Password}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var f models.Faculty
	err = s.DB.Where("email = ?", email).First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &Account{ID: f.ID, Name: f.Name, Email: f.Email, Role: models.RoleFaculty, PasswordHash: f.Password}, nil
}

// UpdatePassword replaces the password hash on whichever table holds the account.
func (s *Service) UpdatePassword(accountID, passwordHash string) error {
	res := s.DB.Model(&models.User{}).Where("id = ?", accountID).
		Update("password", passwordHash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	res = s.DB.Model(&models.Faculty{}).Where("id = ?", accountID).
		Update("password", passwordHash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("account not found")
	}
	return nil
}
