package handler

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Manikandankb2403/College-Complaint-Management-System/internal/complaint"
	"github.com/Manikandankb2403/College-Complaint-Management-System/internal/config"
	"github.com/Manikandankb2403/College-Complaint-Management-System/internal/export"
	"github.com/Manikandankb2403/College-Complaint-Management-System/internal/models"
	"github.com/Manikandankb2403/College-Complaint-Management-System/internal/storage"
)

// CreateComplaint files a new complaint from a multipart form with an
// optional image attachment.
func (h *Handler) CreateComplaint(c *gin.Context) {
	actor := actorFrom(c)

	req := complaint.CreateRequest{
		DeptNo:     c.PostForm("deptNo"),
		Department: c.PostForm("department"),
		Category:   c.PostForm("category"),
		Details:    c.PostForm("details"),
	}

	if fileHeader, err := c.FormFile("file"); err == nil && fileHeader != nil {
		contentType := fileHeader.Header.Get("Content-Type")
		if !config.AllowedAttachmentTypes[contentType] {
			c.JSON(http.StatusBadRequest, gin.H{"message": "File must be a JPEG or PNG", "field": "file"})
			return
		}
		f, err := fileHeader.Open()
		if err != nil {
			respondError(c, err)
			return
		}
		defer f.Close()

		key, err := h.Attachments.Put(c.Request.Context(), fileHeader.Filename, contentType, f, fileHeader.Size)
		if err != nil {
			respondError(c, err)
			return
		}
		req.File = key
	}

	created, err := h.Complaints.Create(actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Complaint submitted successfully", "complaint": created})
}

// ListComplaints is the admin dashboard query: filtered, sorted, paginated.
func (h *Handler) ListComplaints(c *gin.Context) {
	actor := actorFrom(c)

	filter := storage.ComplaintFilter{
		Status:     c.Query("status"),
		Department: c.Query("department"),
		Category:   c.Query("category"),
	}
	if t, ok := parseDate(c.Query("startDate")); ok {
		filter.StartDate = &t
	}
	if t, ok := parseDate(c.Query("endDate")); ok {
		filter.EndDate = &t
	}

	opts := storage.ListOptions{
		SortBy:    c.DefaultQuery("sortBy", config.DefaultSortBy),
		SortOrder: c.DefaultQuery("sortOrder", "desc"),
		Page:      intQuery(c, "page", 1),
		Limit:     intQuery(c, "limit", config.DefaultPageSize),
	}

	result, err := h.Complaints.List(actor, filter, opts)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// MyComplaints lists the complaints the caller submitted.
func (h *Handler) MyComplaints(c *gin.Context) {
	items, err := h.Complaints.ListOwn(actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"complaints": items})
}

// AssignedComplaints lists the complaints assigned to the calling faculty.
func (h *Handler) AssignedComplaints(c *gin.Context) {
	items, err := h.Complaints.ListAssigned(actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"complaints": items})
}

// GetComplaint returns a single complaint the caller may read.
func (h *Handler) GetComplaint(c *gin.Context) {
	found, err := h.Complaints.Get(actorFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"complaint": found})
}

// updateComplaintBody distinguishes an omitted assignedTo (leave unchanged)
// from an explicit null or empty value (unassign), which a plain *string
// binding cannot express.
type updateComplaintBody struct {
	Status     *string         `json:"status"`
	AssignedTo json.RawMessage `json:"assignedTo"`
}

// UpdateComplaint applies a status/assignment transition.
func (h *Handler) UpdateComplaint(c *gin.Context) {
	var body updateComplaintBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	req := complaint.TransitionRequest{}
	if body.Status != nil {
		status := models.Status(*body.Status)
		req.Status = &status
	}
	if body.AssignedTo != nil {
		req.SetAssignee = true
		var assignee *string
		if err := json.Unmarshal(body.AssignedTo, &assignee); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid faculty ID format", "field": "assignedTo"})
			return
		}
		if assignee != nil && *assignee != "" {
			req.Assignee = assignee
		}
	}

	updated, err := h.Complaints.Transition(actorFrom(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Complaint updated successfully", "complaint": updated})
}

// ExportComplaint streams the formatted PDF for one complaint.
func (h *Handler) ExportComplaint(c *gin.Context) {
	found, assigneeName, err := h.Complaints.Export(actorFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=complaint_%s.pdf", found.ID))
	if err := export.ComplaintPDF(c.Writer, found, assigneeName); err != nil {
		// Headers are already out; all we can do is log.
		log.Printf("ERROR: Failed to render PDF for complaint %s: %v", found.ID, err)
	}
}

// parseDate accepts a plain date or a full RFC 3339 timestamp.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func intQuery(c *gin.Context, key string, def int) int {
	if v := c.Query(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}
