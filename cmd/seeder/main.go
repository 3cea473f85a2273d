// Command seeder applies migrations and loads the default taxonomy into
// Postgres. It is safe to run repeatedly.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"skillmatch/internal/config"
	"skillmatch/internal/database/migration"
	dbpostgres "skillmatch/internal/database/postgres"
	"skillmatch/internal/database/seeder"
)

func main() {
	migrationsDir := flag.String("migrations", "migrations", "directory with V<N>__name.sql files")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if !cfg.Database.HasDatabase() {
		log.Fatalf("seeder requires DB_HOST and DB_NAME")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer func() { _ = db.Close() }()

	r := migration.Runner{Dir: *migrationsDir}
	if err := r.Run(ctx, db.SQLDB()); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	run := seeder.Runner{Seeders: seeder.Defaults()}
	if err := run.Run(ctx, db); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}

	log.Printf("default taxonomy seeded")
}
