package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Manikandankb2403/College-Complaint-Management-System/internal/api/handler"
	"github.com/Manikandankb2403/College-Complaint-Management-System/internal/attachments"
	"github.com/Manikandankb2403/College-Complaint-Management-System/internal/complaint"
	"github.com/Manikandankb2403/College-Complaint-Management-System/internal/config"
	"github.com/Manikandankb2403/College-Complaint-Management-System/internal/mailer"
	"github.com/Manikandankb2403/College-Complaint-Management-System/internal/models"
	"github.com/Manikandankb2403/College-Complaint-Management-System/internal/notifyhub"
	"github.com/Manikandankb2403/College-Complaint-Management-System/internal/storage"
)

func setupDependencies(cfg *config.Config) (*gorm.DB, *redis.Client) {
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Faculty{},
		&models.Complaint{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting Complaint Portal Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set!")
	}

	db, rdb := setupDependencies(cfg)
	s := storage.NewStorageService(db, rdb)

	att, err := attachments.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("Failed to set up attachment storage: %v", err)
	}

	hub := notifyhub.NewManagerService(s)
	svc := complaint.NewService(s, notifyhub.NewPublisher(s))
	mail := mailer.NewSMTP(cfg.SMTP)

	go hub.Run()

	r := gin.Default()
	h := handler.NewHandler(s, svc, hub, att, mail, cfg)

	auth := r.Group("/api/auth")
	{
		auth.POST("/register/student", h.RegisterStudent)
		auth.POST("/register/faculty", h.RegisterFaculty)
		auth.POST("/register/admin", h.RegisterAdmin)
		auth.POST("/login", h.Login)
		auth.POST("/forgot-password", h.ForgotPassword)
		auth.POST("/reset-password", h.ResetPassword)
	}

	complaints := r.Group("/api/complaints", h.Authenticate())
	{
		complaints.POST("", h.CreateComplaint)
		complaints.GET("", h.ListComplaints)
		complaints.GET("/user", h.MyComplaints)
		complaints.GET("/faculty", h.AssignedComplaints)
		complaints.GET("/:id", h.GetComplaint)
		complaints.PUT("/:id", h.UpdateComplaint)
		complaints.GET("/:id/pdf", h.ExportComplaint)
	}

	r.GET("/ws", h.ServeWebSocket)

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Printf("Listening on %s", server.Addr)
	log.Fatal(server.ListenAndServe())
}
