// Command main runs the database seeder for SIMONEV.
package main

import (
	"flag"
	"log"

	"simonev/internal/config"
	"simonev/internal/database"
	"simonev/internal/seed"
)

func main() {
	numSkpds := flag.Int("skpds", 8, "Number of SKPDs to create")
	publishers := flag.Int("publishers", 2, "Publisher accounts per SKPD")
	operators := flag.Int("operators", 3, "Number of operator accounts")
	contents := flag.Int("contents", 20, "Contents per SKPD")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	skipBcrypt := flag.Bool("skip-bcrypt", false, "Store plaintext passwords (fast local seeding only)")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")
	log.Printf("Target: %d SKPDs, %d publishers each, %d operators, %d contents each, clean=%v\n",
		*numSkpds, *publishers, *operators, *contents, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumSkpds:          *numSkpds,
		PublishersPerSkpd: *publishers,
		NumOperators:      *operators,
		ContentsPerSkpd:   *contents,
		ShouldClean:       *shouldClean,
		SkipBcrypt:        *skipBcrypt,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done! The database is populated with demo data.")
	log.Println("All demo accounts share the password: password123")
}
