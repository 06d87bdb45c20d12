package main

import (
	"database/sql"
	"flag"
	"log"

	"fintrack/internal/config"
	"fintrack/internal/database"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// Standalone migration runner for deploy pipelines, where migrations run
// before the API server starts.
func main() {
	var (
		seed   = flag.Bool("seed", false, "load seed data after migrating")
		status = flag.Bool("status", false, "print migration status and exit")
	)
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	runner := database.NewMigrationRunner(db)

	if err := runner.WaitForDatabase(); err != nil {
		log.Fatalf("database not reachable: %v", err)
	}

	if *status {
		version, dirty, err := runner.GetMigrationStatus()
		if err != nil {
			log.Fatalf("failed to read migration status: %v", err)
		}
		log.Printf("migration version=%d dirty=%v", version, dirty)
		return
	}

	if err := runner.RunMigrations(); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	if *seed {
		if err := runner.LoadSeeds(); err != nil {
			log.Fatalf("seeding failed: %v", err)
		}
	}

	log.Println("migrations complete")
}
