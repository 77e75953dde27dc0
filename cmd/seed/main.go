// Command main runs the database seeder for stylmou.
package main

import (
	"context"
	"flag"
	"log"

	"stylmou/internal/config"
	"stylmou/internal/database"
	"stylmou/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numPosts := flag.Int("posts", 200, "Number of posts to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	dryRun := flag.Bool("dry-run", false, "Build entities without writing them")
	fast := flag.Bool("fast", false, "Skip bcrypt for generated passwords")
	referenceOnly := flag.Bool("reference-only", false, "Only install categories, languages, countries and tags")
	randSeed := flag.Int64("seed", 0, "Random seed (0 picks one)")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	if *referenceOnly {
		if err := seed.Reference(ctx, db); err != nil {
			log.Fatalf("❌ Reference seeding failed: %v", err)
		}
		log.Println("✨ Reference data installed.")
		return
	}

	log.Printf("Target: %d users, %d posts, clean=%v\n", *numUsers, *numPosts, *shouldClean)
	summary, err := seed.NewSeeder(db, seed.Options{
		NumUsers:    *numUsers,
		NumPosts:    *numPosts,
		ShouldClean: *shouldClean,
		DryRun:      *dryRun,
		SkipBcrypt:  *fast,
		RandSeed:    *randSeed,
	}).Run(ctx)
	if err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Printf("✨ All done! %d users, %d posts, %d follows.", summary.Users, summary.Posts, summary.Follows)
	log.Printf("📧 All test users have the password: %s", seed.DefaultPassword)
}
