// Command main runs the database seeder for Photoshare.
package main

import (
	"flag"
	"log"

	"photoshare/internal/config"
	"photoshare/internal/database"
	"photoshare/internal/seed"
)

func main() {
	// Parse command line flags
	numUsers := flag.Int("users", 50, "Number of users to create")
	numPhotos := flag.Int("photos", 200, "Number of photos to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	skipBcrypt := flag.Bool("skip-bcrypt", false, "Store plaintext passwords (fast, dev only)")
	dryRun := flag.Bool("dry-run", false, "Log what would be created without writing")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d users, %d photos, clean=%v\n", *numUsers, *numPhotos, *shouldClean)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	_, err = database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run seeder
	s := seed.NewSeederWithOptions(database.DB, seed.SeedOptions{
		DryRun:     *dryRun,
		SkipBcrypt: *skipBcrypt,
	})

	if *shouldClean && !*dryRun {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("❌ Cleanup failed: %v", err)
		}
	}

	users, err := s.SeedCommunity(*numUsers)
	if err != nil {
		log.Fatalf("❌ User seeding failed: %v", err)
	}

	if _, err := s.SeedEngagement(users, *numPhotos); err != nil {
		log.Fatalf("❌ Engagement seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with test data.")
	log.Println("📧 All test users have the password: password123")
}
