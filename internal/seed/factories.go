// Package seed provides helpers to create reference, test and demo data for
// the application database. Everything except Reference is intended for
// development and testing only.
package seed

import (
	"fmt"
	"log"
	"time"

	"stylmou/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password of every generated user.
const DefaultPassword = "password123"

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db    *gorm.DB
	opts  Options
	faker *gofakeit.Faker
	now   time.Time
	// synthetic ID counter when running in DryRun mode
	nextID uint
	// password hash shared by generated users
	password string
}

// NewFactory creates a new Factory bound to the provided Gorm DB. A zero
// opts.RandSeed draws a random seed.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	if opts.MaxDays <= 0 {
		opts.MaxDays = 30
	}
	return &Factory{
		db:     db,
		opts:   opts,
		faker:  gofakeit.New(opts.RandSeed),
		now:    time.Now(),
		nextID: 1000,
	}
}

func (f *Factory) passwordHash() string {
	if f.password != "" {
		return f.password
	}
	if f.opts.SkipBcrypt {
		f.password = DefaultPassword
		return f.password
	}
	hashed, _ := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	f.password = string(hashed)
	return f.password
}

// BuildUser constructs a user without persisting it. seq keeps email and
// mobile unique within one run.
func (f *Factory) BuildUser(seq int, overrides ...func(*models.User)) *models.User {
	username := fmt.Sprintf("%s%d", f.faker.Username(), seq)
	if len(username) > 30 {
		username = username[len(username)-30:]
	}
	user := &models.User{
		Username:     username,
		Fullname:     f.faker.Name(),
		Email:        fmt.Sprintf("user%d.%s@example.com", seq, f.faker.Word()),
		Mobile:       fmt.Sprintf("9%09d", seq),
		Password:     f.passwordHash(),
		ProfileImage: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", f.faker.UUID()),
		Bio:          f.faker.Sentence(10),
		DOB:          f.faker.DateRange(f.now.AddDate(-50, 0, 0), f.now.AddDate(-16, 0, 0)).Format("2006-01-02"),
		LoginType:    models.LoginTypeNormal,
		SoftDelete:   models.SoftDelete{IsActive: true},
	}
	for _, override := range overrides {
		override(user)
	}
	return user
}

// CreateUser constructs and persists a sample user.
func (f *Factory) CreateUser(seq int, overrides ...func(*models.User)) (*models.User, error) {
	user := f.BuildUser(seq, overrides...)
	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		log.Printf("[dry-run] CreateUser: %s", user.Username)
		return user, nil
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildPost constructs a post with attachments and tags for user without
// persisting it. Compare posts carry two to four images; video posts carry a
// single video with a duration.
func (f *Factory) BuildPost(user *models.User, style string, overrides ...func(*models.Post)) *models.Post {
	daysBack := f.faker.IntRange(0, f.opts.MaxDays)
	createdAt := f.now.Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(f.faker.IntRange(0, 23))*time.Hour)
	// roughly a third of the posts have already expired
	expiringOn := createdAt.Add(time.Duration(f.faker.IntRange(1, 14)) * 24 * time.Hour)

	post := &models.Post{
		UserID:         user.ID,
		Description:    f.faker.Sentence(12),
		CategoriesID:   uint(f.faker.IntRange(1, 3)),
		Style:          style,
		StyleThumbnail: fmt.Sprintf("https://picsum.photos/seed/%s/400/400", f.faker.UUID()),
		ExpiringOn:     expiringOn,
		AvgRating:      float64(f.faker.IntRange(0, 50)) / 10,
		SoftDelete:     models.SoftDelete{IsActive: true},
		CreatedAt:      createdAt,
	}

	switch style {
	case models.StyleVideo:
		duration := f.faker.IntRange(5, 90)
		post.Images = []models.PostImage{{
			Type:          models.MediaTypeVideo,
			Image:         fmt.Sprintf("https://cdn.stylmou.app/videos/%s.mp4", f.faker.UUID()),
			VideoDuration: &duration,
			SoftDelete:    models.SoftDelete{IsActive: true},
		}}
	default:
		n := f.faker.IntRange(2, 4)
		post.Images = make([]models.PostImage, 0, n)
		for i := 0; i < n; i++ {
			post.Images = append(post.Images, models.PostImage{
				Type:       models.MediaTypeImage,
				Image:      fmt.Sprintf("https://picsum.photos/seed/%s/800/800", f.faker.UUID()),
				SoftDelete: models.SoftDelete{IsActive: true},
			})
		}
	}

	tags := DefaultReference().Tags
	for _, i := range f.faker.Rand.Perm(len(tags))[:f.faker.IntRange(0, 3)] {
		post.Tags = append(post.Tags, models.PostTag{TagID: tags[i].ID, SoftDelete: models.SoftDelete{IsActive: true}})
	}

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePost constructs and persists a sample post with its images and tags.
func (f *Factory) CreatePost(user *models.User, style string, overrides ...func(*models.Post)) (*models.Post, error) {
	post := f.BuildPost(user, style, overrides...)
	if f.opts.DryRun {
		f.nextID++
		post.ID = f.nextID
		log.Printf("[dry-run] CreatePost: style=%s user=%d images=%d", post.Style, post.UserID, len(post.Images))
		return post, nil
	}
	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateFollow persists an accepted follow from follower to followed.
func (f *Factory) CreateFollow(follower, followed *models.User) error {
	if f.opts.DryRun {
		return nil
	}
	return f.db.Create(&models.Follow{
		FollowedBy:  follower.ID,
		FollowingTo: followed.ID,
		Status:      models.FollowStatusAccepted,
		IsFollow:    true,
		SoftDelete:  models.SoftDelete{IsActive: true},
	}).Error
}

// CreateSavedPost persists a bookmark of post by user.
func (f *Factory) CreateSavedPost(user *models.User, post *models.Post) error {
	if f.opts.DryRun {
		return nil
	}
	return f.db.Create(&models.SavedPost{
		UserID:     user.ID,
		PostID:     post.ID,
		IsSaved:    true,
		SoftDelete: models.SoftDelete{IsActive: true},
	}).Error
}

// CreateLike persists a like by user on one image.
func (f *Factory) CreateLike(user *models.User, image *models.PostImage) error {
	if f.opts.DryRun {
		return nil
	}
	return f.db.Create(&models.Like{
		UserID:     user.ID,
		ImageID:    image.ID,
		SoftDelete: models.SoftDelete{IsActive: true},
	}).Error
}

// Pick returns a pseudo-random index in [0, n).
func (f *Factory) Pick(n int) int {
	return f.faker.IntRange(0, n-1)
}

// Chance reports true with probability p.
func (f *Factory) Chance(p float64) bool {
	return f.faker.Float64Range(0, 1) < p
}
