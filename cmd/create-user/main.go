package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"

	"legal_cms_go/config"
	"legal_cms_go/db"
	"legal_cms_go/models"
	"legal_cms_go/services"

	"golang.org/x/term"
)

// minPasswordLength applies to accounts created from the console
const minPasswordLength = 8

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	database, err := db.Initialize(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(models.All()...); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New User ===")
	fmt.Println()

	name := prompt(reader, "Name: ")
	email := prompt(reader, "Email: ")
	role := strings.ToLower(prompt(reader, "Role (court/advocate/public) [court]: "))
	if role == "" {
		role = models.RoleCourt
	}

	input := services.RegisterInput{Name: name, Email: email, Role: role}
	switch role {
	case models.RoleCourt:
		if court := prompt(reader, "Court name: "); court != "" {
			input.CourtName = &court
		}
	case models.RoleAdvocate:
		if barID := prompt(reader, "Bar Council ID: "); barID != "" {
			input.BarCouncilID = &barID
		}
	}

	// Get password securely
	fmt.Print("Password: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		log.Fatalf("Failed to read password: %v", err)
	}
	fmt.Println()
	input.Password = string(passwordBytes)

	if len(input.Password) < minPasswordLength {
		log.Fatalf("Password must be at least %d characters long", minPasswordLength)
	}

	user, err := services.Register(database, input)
	if err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Println()
	fmt.Println("✓ User created successfully!")
	fmt.Printf("  ID: %d\n", user.ID)
	fmt.Printf("  Name: %s\n", user.Name)
	fmt.Printf("  Email: %s\n", user.Email)
	fmt.Printf("  Role: %s\n", user.Role)
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	value, _ := reader.ReadString('\n')
	return strings.TrimSpace(value)
}
