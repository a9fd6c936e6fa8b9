// Command main runs the database seeder for Stackbase.
package main

import (
	"flag"
	"log"

	"stackbase/internal/config"
	"stackbase/internal/database"
	"stackbase/internal/seed"
)

func main() {
	// Parse command line flags
	numUsers := flag.Int("users", 25, "Number of users to create")
	numQuestions := flag.Int("questions", 100, "Number of questions to create")
	maxDays := flag.Int("max-days", 45, "Spread question timestamps over this many days")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d users, %d questions, clean=%v\n", *numUsers, *numQuestions, *shouldClean)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumUsers:     *numUsers,
		NumQuestions: *numQuestions,
		MaxDays:      *maxDays,
		ShouldClean:  *shouldClean,
	}); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with test data.")
}
