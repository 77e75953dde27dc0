package repository

import (
	"context"

	"stylmou/internal/models"
	"stylmou/internal/observability"

	"gorm.io/gorm"
)

// ContentRepository stores blogs and contact-us submissions.
type ContentRepository interface {
	CreateBlog(ctx context.Context, blog *models.Blog) error
	CreateContactMessage(ctx context.Context, msg *models.ContactMessage) error
}

type contentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) CreateBlog(ctx context.Context, blog *models.Blog) error {
	defer observability.TrackQuery("create", "blogs")()

	if err := GetDB(ctx, r.db).Create(blog).Error; err != nil {
		return models.NewOperationError(err)
	}
	return nil
}

func (r *contentRepository) CreateContactMessage(ctx context.Context, msg *models.ContactMessage) error {
	defer observability.TrackQuery("create", "contect_us")()

	if err := GetDB(ctx, r.db).Create(msg).Error; err != nil {
		return models.NewOperationError(err)
	}
	return nil
}
