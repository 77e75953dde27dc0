// Command migrate applies the GORM schema to the configured database.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"stylmou/internal/config"
	"stylmou/internal/database"

	"gorm.io/gorm"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func usage() error {
	return fmt.Errorf("usage: go run ./cmd/migrate/main.go <up|status>")
}

func run() error {
	flag.Parse()
	if flag.NArg() < 1 {
		return usage()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Connect skips migration in production so "up" is the explicit path there.
	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(flag.Arg(0))) {
	case "up":
		if err := database.Migrate(db); err != nil {
			return err
		}
		log.Println("schema applied")
	case "status":
		missing := missingTables(db)
		log.Printf("tables=%d missing=%d", len(database.PersistentModels()), len(missing))
		for _, name := range missing {
			log.Printf("missing: %s", name)
		}
	default:
		return usage()
	}
	return nil
}

func missingTables(db *gorm.DB) []string {
	var missing []string
	for _, model := range database.PersistentModels() {
		if !db.Migrator().HasTable(model) {
			stmt := &gorm.Statement{DB: db}
			if err := stmt.Parse(model); err == nil {
				missing = append(missing, stmt.Schema.Table)
			} else {
				missing = append(missing, fmt.Sprintf("%T", model))
			}
		}
	}
	return missing
}
