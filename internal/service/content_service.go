package service

import (
	"context"
	"strings"

	"stylmou/internal/models"
	"stylmou/internal/repository"
	"stylmou/internal/validation"
)

// ContentService accepts blog posts and contact-us messages.
type ContentService struct {
	content repository.ContentRepository
}

func NewContentService(content repository.ContentRepository) *ContentService {
	return &ContentService{content: content}
}

type CreateBlogInput struct {
	UserID      uint
	BlogImage   string
	Title       string
	Description string
}

type ContactInput struct {
	FullName    string
	Email       string
	Subject     string
	Description string
}

func (s *ContentService) CreateBlog(ctx context.Context, in CreateBlogInput) (*models.Blog, error) {
	if in.UserID == 0 || in.BlogImage == "" || strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" {
		return nil, models.NewValidationError("user_id, blog_image, description and title are required.")
	}
	blog := &models.Blog{
		UserID:      in.UserID,
		BlogImage:   in.BlogImage,
		Title:       in.Title,
		Description: in.Description,
		SoftDelete:  models.SoftDelete{IsActive: true},
	}
	if err := s.content.CreateBlog(ctx, blog); err != nil {
		return nil, err
	}
	return blog, nil
}

func (s *ContentService) CreateContactMessage(ctx context.Context, in ContactInput) (*models.ContactMessage, error) {
	if strings.TrimSpace(in.FullName) == "" || in.Email == "" || strings.TrimSpace(in.Description) == "" {
		return nil, models.NewValidationError("full_name, email and description are required.")
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	msg := &models.ContactMessage{
		FullName:    in.FullName,
		Email:       in.Email,
		Subject:     in.Subject,
		Description: in.Description,
	}
	if err := s.content.CreateContactMessage(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}
