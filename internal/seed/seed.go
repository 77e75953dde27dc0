package seed

import (
	"context"
	"fmt"
	"log"

	"stylmou/internal/database"
	"stylmou/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
	// DryRun builds entities without writing them.
	DryRun bool
	// SkipBcrypt stores DefaultPassword unhashed for fast local seeding.
	SkipBcrypt bool
	// MaxDays bounds how far back created_at is spread.
	MaxDays int
	// RandSeed makes generation reproducible when non-zero.
	RandSeed int64
}

// Summary counts what a seeding run produced.
type Summary struct {
	Users   int
	Posts   int
	Follows int
	Saved   int
	Likes   int
}

// Seeder populates a database through a Factory.
type Seeder struct {
	db      *gorm.DB
	opts    Options
	factory *Factory
}

func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{db: db, opts: opts, factory: NewFactory(db, opts)}
}

// Factory exposes the underlying entity factory.
func (s *Seeder) Factory() *Factory {
	return s.factory
}

// Run installs reference data and then generates users, posts, follows,
// bookmarks and likes.
func (s *Seeder) Run(ctx context.Context) (*Summary, error) {
	log.Printf("🌱 Starting database seeding with %d users and %d posts...", s.opts.NumUsers, s.opts.NumPosts)

	if s.opts.ShouldClean && !s.opts.DryRun {
		if err := s.ClearAll(); err != nil {
			return nil, err
		}
	}
	if !s.opts.DryRun {
		if err := Reference(ctx, s.db); err != nil {
			return nil, err
		}
	}

	summary := &Summary{}
	users := make([]*models.User, 0, s.opts.NumUsers)
	for i := 0; i < s.opts.NumUsers; i++ {
		user, err := s.factory.CreateUser(i + 1)
		if err != nil {
			return nil, fmt.Errorf("failed to create user %d: %w", i+1, err)
		}
		users = append(users, user)
	}
	summary.Users = len(users)
	log.Printf("✓ %d users created", summary.Users)
	if len(users) == 0 {
		return summary, nil
	}

	posts := make([]*models.Post, 0, s.opts.NumPosts)
	for i := 0; i < s.opts.NumPosts; i++ {
		style := models.StyleCompare
		if s.factory.Chance(0.3) {
			style = models.StyleVideo
		}
		post, err := s.factory.CreatePost(users[s.factory.Pick(len(users))], style)
		if err != nil {
			return nil, fmt.Errorf("failed to create post %d: %w", i+1, err)
		}
		posts = append(posts, post)
	}
	summary.Posts = len(posts)
	log.Printf("✓ %d posts created", summary.Posts)

	for i, follower := range users {
		for j, followed := range users {
			if i == j || !s.factory.Chance(0.25) {
				continue
			}
			if err := s.factory.CreateFollow(follower, followed); err != nil {
				return nil, fmt.Errorf("failed to create follow: %w", err)
			}
			summary.Follows++
		}
	}

	for _, user := range users {
		for _, post := range posts {
			if post.UserID == user.ID {
				continue
			}
			if s.factory.Chance(0.1) {
				if err := s.factory.CreateSavedPost(user, post); err != nil {
					return nil, fmt.Errorf("failed to save post: %w", err)
				}
				summary.Saved++
			}
			if len(post.Images) > 0 && s.factory.Chance(0.3) {
				image := &post.Images[s.factory.Pick(len(post.Images))]
				if err := s.factory.CreateLike(user, image); err != nil {
					return nil, fmt.Errorf("failed to like image: %w", err)
				}
				summary.Likes++
			}
		}
	}
	log.Printf("✓ %d follows, %d saved posts, %d likes", summary.Follows, summary.Saved, summary.Likes)

	log.Println("🎉 Database seeding completed successfully!")
	return summary, nil
}

// ClearAll deletes every row of every schema-managed table.
func (s *Seeder) ClearAll() error {
	log.Println("🗑️  Clearing existing data...")
	tables := database.PersistentModels()
	for i := len(tables) - 1; i >= 0; i-- {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(tables[i]).Error; err != nil {
			return fmt.Errorf("clear %T: %w", tables[i], err)
		}
	}
	return nil
}
