// Command main runs the database seeder for Fitness Finder.
package main

import (
	"context"
	"flag"
	"log"

	"fitnessfinder/internal/config"
	"fitnessfinder/internal/database"
	"fitnessfinder/internal/seed"
)

func main() {
	// Parse command line flags
	settingsPath := flag.String("settings", "", "Path to a settings JSON file (overrides random generation)")
	numProfiles := flag.Int("profiles", 25, "Number of random members to create")
	numSessions := flag.Int("sessions", 40, "Number of random sessions to create")
	force := flag.Bool("force", false, "Seed even if the database already has profiles")
	flag.Parse()

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

	ctx := context.Background()
	loader := seed.NewLoader(db)

	var settings *seed.Settings
	if *settingsPath != "" {
		log.Printf("Loading settings from %s", *settingsPath)
		settings, err = seed.ReadSettings(*settingsPath)
		if err != nil {
			log.Fatalf("Failed to read settings: %v", err)
		}
	} else {
		log.Printf("Generating %d members and %d sessions", *numProfiles, *numSessions)
		settings = seed.NewFactory(loader).RandomSettings(*numProfiles, *numSessions)
	}

	if *force {
		err = loader.Load(ctx, settings)
	} else {
		err = loader.LoadIfEmpty(ctx, settings)
	}
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete.")
}
