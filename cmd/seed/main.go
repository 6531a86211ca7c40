package main

import (
	"fmt"
	"log"

	"legal_cms_go/config"
	"legal_cms_go/db"
	"legal_cms_go/logging"
	"legal_cms_go/models"
	"legal_cms_go/services"
)

// Wipes the database and loads the demo data set
func main() {
	cfg := config.Load()

	if _, err := logging.New(cfg.LogLevel, "console", "legal-cms-seed"); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	database, err := db.Initialize(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(models.All()...); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	summary, err := services.SeedDemoData(database)
	if err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	fmt.Println("Database seeded successfully!")
	fmt.Printf("  Users: %d\n", summary.Users)
	fmt.Printf("  Courtrooms: %d\n", summary.Courtrooms)
	fmt.Printf("  Cases: %d\n", summary.Cases)
	fmt.Printf("  Hearings: %d\n", summary.Hearings)
	fmt.Printf("  Documents: %d\n", summary.Documents)
	fmt.Printf("  Tasks: %d\n", summary.Tasks)
	fmt.Printf("  Notes: %d\n", summary.Notes)
	fmt.Printf("  Notifications: %d\n", summary.Notifications)
	fmt.Printf("  Messages: %d\n", summary.Messages)
	fmt.Println()
	fmt.Printf("All demo accounts use the password %q\n", services.DemoPassword)
}
