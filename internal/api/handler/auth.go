package handler

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/Manikandankb2403/College-Complaint-Management-System/internal/mailer"
	"github.com/Manikandankb2403/College-Complaint-Management-System/internal/models"
)

type registerUserRequest struct {
	Name     string `json:"name" validate:"required"`
	DeptNo   string `json:"deptNo" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,len=10,numeric"`
	Password string `json:"password" validate:"required,min=6"`
	Secret   string `json:"secret"`
}

type registerFacultyRequest struct {
	Name       string `json:"name" validate:"required"`
	FacultyID  string `json:"facultyId" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required,len=10,numeric"`
	Password   string `json:"password" validate:"required,min=6"`
	Department string `json:"department" validate:"required"`
}

// RegisterStudent creates a student account.
func (h *Handler) RegisterStudent(c *gin.Context) {
	h.registerUser(c, models.RoleStudent)
}

// RegisterAdmin creates an admin account; it additionally requires the
// shared admin secret.
func (h *Handler) RegisterAdmin(c *gin.Context) {
	h.registerUser(c, models.RoleAdmin)
}

func (h *Handler) registerUser(c *gin.Context, role models.Role) {
	var req registerUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if role == models.RoleAdmin && req.Secret != h.Cfg.AdminSecret {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid admin secret"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	deptNo := strings.ToUpper(strings.TrimSpace(req.DeptNo))

	exists, err := h.Storage.UserExists(email, deptNo, req.Phone)
	if err != nil {
		respondError(c, err)
		return
	}
	if exists {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, err)
		return
	}

	user := &models.User{
		Name:     req.Name,
		DeptNo:   deptNo,
		Email:    email,
		Phone:    req.Phone,
		Password: string(hash),
		Role:     role,
	}
	if err := h.Storage.SaveUser(user); err != nil {
		respondError(c, err)
		return
	}

	h.sendWelcome(email, req.Name, string(role), "Dept No", deptNo)
	msg := "Student registered successfully"
	if role == models.RoleAdmin {
		msg = "Admin registered successfully"
	}
	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

// RegisterFaculty creates a faculty account. Faculty IDs are stored
// lowercased so login can match them case-insensitively.
func (h *Handler) RegisterFaculty(c *gin.Context) {
	var req registerFacultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	facultyID := strings.ToLower(strings.TrimSpace(req.FacultyID))

	exists, err := h.Storage.FacultyExists(email, facultyID, req.Phone)
	if err != nil {
		respondError(c, err)
		return
	}
	if exists {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Faculty already exists"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, err)
		return
	}

	faculty := &models.Faculty{
		Name:       req.Name,
		FacultyID:  facultyID,
		Email:      email,
		Phone:      req.Phone,
		Password:   string(hash),
		Department: req.Department,
	}
	if err := h.Storage.SaveFaculty(faculty); err != nil {
		respondError(c, err)
		return
	}

	h.sendWelcome(email, req.Name, "faculty", "Faculty ID", facultyID)
	c.JSON(http.StatusCreated, gin.H{"message": "Faculty registered successfully"})
}

type loginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// Login authenticates by dept number, email, phone or faculty ID and returns
// a signed token. Unknown identifiers and wrong passwords get the same
// answer.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	account, err := h.Storage.FindLoginAccount(req.Identifier)
	if err != nil {
		respondError(c, err)
		return
	}
	if account == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	actor := models.Actor{ID: account.ID, Role: account.Role, Name: account.Name}
	token, err := generateToken(actor, h.Cfg.JWTSecret)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "role": account.Role, "name": account.Name})
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ForgotPassword issues a one-hour reset token and mails the reset link.
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	account, err := h.Storage.FindAccountByEmail(email)
	if err != nil {
		respondError(c, err)
		return
	}
	if account == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		respondError(c, err)
		return
	}
	token := hex.EncodeToString(buf)
	if err := h.Storage.SaveResetToken(token, account.ID); err != nil {
		respondError(c, err)
		return
	}

	resetURL := h.Cfg.FrontendURL + "/reset-password/" + token
	subject, body := mailer.PasswordReset(account.Name, resetURL)
	go func() {
		if err := h.Mailer.Send(email, subject, body); err != nil {
			log.Printf("WARNING: %v", err)
		}
	}()

	c.JSON(http.StatusOK, gin.H{"message": "Password reset email sent"})
}

type resetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// ResetPassword consumes a reset token and replaces the account password.
func (h *Handler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	accountID, err := h.Storage.ConsumeResetToken(req.Token)
	if err != nil {
		respondError(c, err)
		return
	}
	if accountID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid or expired token"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.Storage.UpdatePassword(accountID, string(hash)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully"})
}

// sendWelcome mails the account-created message without blocking the request.
func (h *Handler) sendWelcome(email, name, role, detailLabel, detailValue string) {
	subject, body := mailer.Welcome(name, role, detailLabel, detailValue, h.Cfg.FrontendURL+"/login")
	go func() {
		if err := h.Mailer.Send(email, subject, body); err != nil {
			log.Printf("WARNING: %v", err)
		}
	}()
}
