// Command admin is an operator CLI for account maintenance that bypasses the
// HTTP surface: bootstrapping the first admin account and resetting a
// password when a user is locked out.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Manikandankb2403/College-Complaint-Management-System/internal/config"
	"github.com/Manikandankb2403/College-Complaint-Management-System/internal/models"
	"github.com/Manikandankb2403/College-Complaint-Management-System/internal/storage"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Faculty{}); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	s := storage.NewStorageService(db, nil) // No redis needed for admin CLI

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		fmt.Println("Commands: create-admin, set-password")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "create-admin":
		if len(os.Args) != 7 {
			fmt.Println("Usage: admin create-admin <name> <deptNo> <email> <phone> <password>")
			os.Exit(1)
		}
		if err := createAdmin(s, os.Args[2], os.Args[3], os.Args[4], os.Args[5], os.Args[6]); err != nil {
			log.Fatalf("Error creating admin: %v", err)
		}
		fmt.Printf("Admin account for %s created.\n", os.Args[4])
	case "set-password":
		if len(os.Args) != 4 {
			fmt.Println("Usage: admin set-password <account_id> <password>")
			os.Exit(1)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(os.Args[3]), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Error hashing password: %v", err)
		}
		if err := s.UpdatePassword(os.Args[2], string(hash)); err != nil {
			log.Fatalf("Error setting password: %v", err)
		}
		fmt.Printf("Password updated for account %s.\n", os.Args[2])
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}

func createAdmin(s storage.Storage, name, deptNo, email, phone, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	deptNo = strings.ToUpper(strings.TrimSpace(deptNo))

	exists, err := s.UserExists(email, deptNo, phone)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("an account with these details already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.SaveUser(&models.User{
		Name:     name,
		DeptNo:   deptNo,
		Email:    email,
		Phone:    phone,
		Password: string(hash),
		Role:     models.RoleAdmin,
	})
}
