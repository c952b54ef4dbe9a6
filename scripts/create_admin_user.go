package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type User struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	Email     string `gorm:"uniqueIndex;not null"`
	Password  string `gorm:"not null"`
	Role      string `gorm:"default:'PROFESSOR'"`
	Photo     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Creates a local admin account for development. Run with:
//
//	go run ./scripts/create_admin_user.go --email=admin@example.com --password=changeme
func main() {
	name := flag.String("name", "Admin", "User name")
	email := flag.String("email", "admin@example.com", "User email")
	password := flag.String("password", "admin-secret-123", "User password")
	dbPath := flag.String("db", "users.sqlite", "SQLite database path")
	flag.Parse()

	db, err := gorm.Open(sqlite.Open(*dbPath), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := db.AutoMigrate(&User{}); err != nil {
		log.Fatal("Failed to migrate schema:", err)
	}

	normalized := strings.ToLower(strings.TrimSpace(*email))

	// Check if the user already exists
	var existing User
	if err := db.Where("email = ?", normalized).First(&existing).Error; err == nil {
		fmt.Printf("User already exists:\n")
		fmt.Printf("  ID:    %d\n", existing.ID)
		fmt.Printf("  Email: %s\n", existing.Email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	user := User{
		Name:     *name,
		Email:    normalized,
		Password: string(hash),
		Role:     "ADMIN",
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatal("Failed to create user:", err)
	}

	fmt.Printf("Admin user created:\n")
	fmt.Printf("  ID:    %d\n", user.ID)
	fmt.Printf("  Email: %s\n", user.Email)
	fmt.Printf("  Role:  %s\n", user.Role)
}
