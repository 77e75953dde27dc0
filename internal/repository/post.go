package repository

import (
	"context"
	"errors"
	"time"

	"stylmou/internal/models"
	"stylmou/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Feed orderings accepted by FeedFilter.Sort.
const (
	SortNewest   = "new"
	SortTrending = "trending"
)

// FeedFilter narrows a post listing. Zero fields do not filter.
type FeedFilter struct {
	Style      string
	CategoryID uint
	// FollowedBy limits posts to authors the user follows with an accepted request.
	FollowedBy uint
	// SavedBy limits posts to those the user saved.
	SavedBy uint
	// ExpiredAt limits posts to those whose expiring_on is at or before the time.
	ExpiredAt *time.Time
	Sort      string
	Limit     int
	Offset    int
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	AddImage(ctx context.Context, image *models.PostImage) error
	AddTag(ctx context.Context, tag *models.PostTag) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, filter FeedFilter) ([]*models.Post, error)
	Styles(ctx context.Context) ([]string, error)
	ImageRatings(ctx context.Context, postID uint) ([]models.ImageRating, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	defer observability.TrackQuery("create", "tbl_posts")()

	if err := GetDB(ctx, r.db).Omit(clause.Associations).Create(post).Error; err != nil {
		return models.NewOperationError(err)
	}
	return nil
}

func (r *postRepository) AddImage(ctx context.Context, image *models.PostImage) error {
	defer observability.TrackQuery("create", "tbl_post_images")()

	if err := GetDB(ctx, r.db).Create(image).Error; err != nil {
		return models.NewOperationError(err)
	}
	return nil
}

func (r *postRepository) AddTag(ctx context.Context, tag *models.PostTag) error {
	defer observability.TrackQuery("create", "tbl_post_tags")()

	if err := GetDB(ctx, r.db).Omit(clause.Associations).Create(tag).Error; err != nil {
		return models.NewOperationError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	defer observability.TrackQuery("get_by_id", "tbl_posts")()

	var post models.Post
	err := r.withAttachments(GetDB(ctx, r.db)).
		Where("is_deleted = ?", false).
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewOperationError(err)
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, filter FeedFilter) ([]*models.Post, error) {
	defer observability.TrackQuery("list", "tbl_posts")()

	db := GetDB(ctx, r.db)
	query := r.withAttachments(db).
		Preload("User").
		Where("tbl_posts.is_deleted = ?", false)

	if filter.Style != "" {
		query = query.Where("style = ?", filter.Style)
	}
	if filter.CategoryID != 0 {
		query = query.Where("categories_id = ?", filter.CategoryID)
	}
	if filter.FollowedBy != 0 {
		following := db.Session(&gorm.Session{NewDB: true}).
			Model(&models.Follow{}).
			Select("following_to").
			Where("followed_by = ? AND status = ? AND is_deleted = ?", filter.FollowedBy, models.FollowStatusAccepted, false)
		query = query.Where("user_id IN (?)", following)
	}
	if filter.SavedBy != 0 {
		saved := db.Session(&gorm.Session{NewDB: true}).
			Model(&models.SavedPost{}).
			Select("post_id").
			Where("user_id = ? AND is_saved = ? AND is_deleted = ?", filter.SavedBy, true, false)
		query = query.Where("id IN (?)", saved)
	}
	if filter.ExpiredAt != nil {
		query = query.Where("expiring_on <= ?", *filter.ExpiredAt)
	}

	query = applySort(query, filter.Sort)
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	var posts []*models.Post
	if err := query.Find(&posts).Error; err != nil {
		return nil, models.NewOperationError(err)
	}
	return posts, nil
}

func (r *postRepository) Styles(ctx context.Context) ([]string, error) {
	defer observability.TrackQuery("styles", "tbl_posts")()

	var styles []string
	err := GetDB(ctx, r.db).Model(&models.Post{}).
		Where("is_deleted = ?", false).
		Distinct("style").
		Order("style").
		Pluck("style", &styles).Error
	if err != nil {
		return nil, models.NewOperationError(err)
	}
	return styles, nil
}

func (r *postRepository) ImageRatings(ctx context.Context, postID uint) ([]models.ImageRating, error) {
	defer observability.TrackQuery("image_ratings", "tbl_post_images")()

	var ratings []models.ImageRating
	err := GetDB(ctx, r.db).
		Table("tbl_post_images AS i").
		Select("i.image AS image, COUNT(l.id) AS like_count").
		Joins("LEFT JOIN tbl_likes l ON l.image_id = i.id AND l.is_deleted = ?", false).
		Where("i.post_id = ? AND i.is_deleted = ?", postID, false).
		Group("i.id, i.image").
		Order("like_count DESC").
		Order("i.id").
		Scan(&ratings).Error
	if err != nil {
		return nil, models.NewOperationError(err)
	}
	return ratings, nil
}

func (r *postRepository) withAttachments(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Images", "is_deleted = ?", false).
		Preload("Tags", "is_deleted = ?", false).
		Preload("Tags.Tag")
}

func applySort(db *gorm.DB, sort string) *gorm.DB {
	switch sort {
	case SortTrending:
		return db.Order("avg_rating DESC").Order("created_at DESC")
	default: // SortNewest and anything unrecognized
		return db.Order("created_at DESC").Order("id DESC")
	}
}
