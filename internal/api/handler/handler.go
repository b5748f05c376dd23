package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/Manikandankb2403/College-Complaint-Management-System/internal/attachments"
	"github.com/Manikandankb2403/College-Complaint-Management-System/internal/complaint"
	"github.com/Manikandankb2403/College-Complaint-Management-System/internal/config"
	"github.com/Manikandankb2403/College-Complaint-Management-System/internal/mailer"
	"github.com/Manikandankb2403/College-Complaint-Management-System/internal/notifyhub"
	"github.com/Manikandankb2403/College-Complaint-Management-System/internal/storage"
)

// Handler wires the HTTP surface to the application services.
type Handler struct {
	Storage     storage.Storage
	Complaints  *complaint.Service
	Hub         *notifyhub.ManagerService
	Attachments attachments.Store
	Mailer      mailer.Mailer
	Cfg         *config.Config

	validate *validator.Validate
}

func NewHandler(s storage.Storage, svc *complaint.Service, hub *notifyhub.ManagerService,
	att attachments.Store, m mailer.Mailer, cfg *config.Config) *Handler {
	return &Handler{
		Storage:     s,
		Complaints:  svc,
		Hub:         hub,
		Attachments: att,
		Mailer:      m,
		Cfg:         cfg,
		validate:    validator.New(),
	}
}

// respondError maps service errors onto HTTP responses. Validation, forbidden
// and not-found outcomes carry their own message; anything else is answered
// with a generic server error and logged with the real cause.
func respondError(c *gin.Context, err error) {
	var ve *complaint.ValidationError
	switch {
	case errors.Is(err, complaint.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Complaint not found"})
	case errors.Is(err, complaint.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": "Access denied"})
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"message": ve.Message, "field": ve.Field})
	default:
		log.Printf("ERROR: %s %s failed: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
	}
}
