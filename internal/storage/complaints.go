package storage

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/Manikandankb2403/College-Complaint-Management-System/internal/models"
)

// CreateComplaint inserts a new complaint. ID, default status and timestamps
// are filled in by the model hooks and GORM.
func (s *Service) CreateComplaint(c *models.Complaint) error {
	if err := s.DB.Create(c).Error; err != nil {
		log.Printf("ERROR: Failed to save complaint for user %s: %v", c.SubmitterID, err)
		return err
	}
	return nil
}

// GetComplaintByID returns the complaint or (nil, nil) when absent.
func (s *Service) GetComplaintByID(id string) (*models.Complaint, error) {
	var c models.Complaint
	err := s.DB.Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		log.Printf("ERROR: Failed to get complaint %s: %v", id, err)
		return nil, err
	}
	return &c, nil
}

// UpdateComplaintByID applies the patch in one UPDATE and returns the record
// as persisted afterwards. Concurrent patches to the same row are serialized
// by the database; the later one wins outright.
func (s *Service) UpdateComplaintByID(id string, patch map[string]interface{}) (*models.Complaint, error) {
	res := s.DB.Model(&models.Complaint{}).Where("id = ?", id).Updates(patch)
	if res.Error != nil {
		log.Printf("ERROR: Failed to update complaint %s: %v", id, res.Error)
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return s.GetComplaintByID(id)
}

// QueryComplaints runs the admin list query and returns the matching page
// together with the total match count.
func (s *Service) QueryComplaints(f ComplaintFilter, opts ListOptions) ([]models.Complaint, int64, error) {
	opts = opts.Normalize()

	q := s.DB.Model(&models.Complaint{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Department != "" {
		q = q.Where("department ILIKE ?", "%"+f.Department+"%")
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.StartDate != nil {
		q = q.Where("created_at >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("created_at <= ?", *f.EndDate)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Printf("ERROR: Failed to count complaints: %v", err)
		return nil, 0, err
	}

	var items []models.Complaint
	err := q.Order(opts.OrderClause()).
		Offset(opts.Offset()).
		Limit(opts.Limit).
		Find(&items).Error
	if err != nil {
		log.Printf("ERROR: Failed to query complaints: %v", err)
		return nil, 0, err
	}
	return items, total, nil
}

// ComplaintsBySubmitter lists a student's own complaints, newest first.
func (s *Service) ComplaintsBySubmitter(userID string) ([]models.Complaint, error) {
	var items []models.Complaint
	err := s.DB.Where("submitter_id = ?", userID).
		Order("created_at desc").
		Find(&items).Error
	if err != nil {
		log.Printf("ERROR: Failed to list complaints for submitter %s: %v", userID, err)
		return nil, err
	}
	return items, nil
}

// ComplaintsByAssignee lists complaints assigned to a faculty member, newest first.
func (s *Service) ComplaintsByAssignee(facultyID string) ([]models.Complaint, error) {
	var items []models.Complaint
	err := s.DB.Where("assignee_id = ?", facultyID).
		Order("created_at desc").
		Find(&items).Error
	if err != nil {
		log.Printf("ERROR: Failed to list complaints for assignee %s: %v", facultyID, err)
		return nil, err
	}
	return items, nil
}
