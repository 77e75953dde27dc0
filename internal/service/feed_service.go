package service

import (
	"context"
	"time"

	"stylmou/internal/cache"
	"stylmou/internal/models"
	"stylmou/internal/repository"
)

// FeedService answers the post listing endpoints.
type FeedService struct {
	posts   repository.PostRepository
	catalog repository.CatalogRepository
	cache   *cache.Cache
	now     func() time.Time
}

func NewFeedService(posts repository.PostRepository, catalog repository.CatalogRepository, c *cache.Cache) *FeedService {
	return &FeedService{posts: posts, catalog: catalog, cache: c, now: time.Now}
}

// feedCategories are the category ids the category feed accepts.
var feedCategories = map[uint]bool{1: true, 2: true, 3: true}

func (s *FeedService) Styles(ctx context.Context) ([]string, error) {
	var styles []string
	err := s.cache.Aside(ctx, cache.StylesKey, &styles, cache.CatalogTTL, func() error {
		var err error
		styles, err = s.posts.Styles(ctx)
		return err
	})
	return styles, err
}

func (s *FeedService) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := s.cache.Aside(ctx, cache.CategoriesKey, &categories, cache.CatalogTTL, func() error {
		var err error
		categories, err = s.catalog.Categories(ctx)
		return err
	})
	return categories, err
}

// All lists every live post, newest first. A zero limit returns everything.
func (s *FeedService) All(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.posts.List(ctx, repository.FeedFilter{Limit: limit, Offset: offset})
}

func (s *FeedService) ByStyle(ctx context.Context, style string) ([]*models.Post, error) {
	if style == "" {
		return nil, models.NewValidationError("style is required.")
	}
	return s.posts.List(ctx, repository.FeedFilter{Style: style})
}

func (s *FeedService) Saved(ctx context.Context, userID uint) ([]*models.Post, error) {
	if userID == 0 {
		return nil, models.NewValidationError("user_id is required.")
	}
	return s.posts.List(ctx, repository.FeedFilter{SavedBy: userID})
}

func (s *FeedService) Trending(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.posts.List(ctx, repository.FeedFilter{Sort: repository.SortTrending, Limit: limit, Offset: offset})
}

func (s *FeedService) Newest(ctx context.Context, style string) ([]*models.Post, error) {
	return s.posts.List(ctx, repository.FeedFilter{Style: style, Sort: repository.SortNewest})
}

func (s *FeedService) Following(ctx context.Context, userID uint, style string) ([]*models.Post, error) {
	if userID == 0 {
		return nil, models.NewValidationError("userId is required.")
	}
	return s.posts.List(ctx, repository.FeedFilter{FollowedBy: userID, Style: style})
}

// Expiring lists posts whose expiry time has passed.
func (s *FeedService) Expiring(ctx context.Context, style string) ([]*models.Post, error) {
	now := s.now()
	return s.posts.List(ctx, repository.FeedFilter{Style: style, ExpiredAt: &now})
}

func (s *FeedService) ByCategory(ctx context.Context, categoryID uint) ([]*models.Post, error) {
	if categoryID == 0 {
		return nil, models.NewValidationError("categoryId is required.")
	}
	if !feedCategories[categoryID] {
		return nil, models.NewValidationError("categoryId must be one of the following values: 1, 2, or 3.")
	}
	posts, err := s.posts.List(ctx, repository.FeedFilter{CategoryID: categoryID})
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, models.NewNotFoundMessage("No posts found for this category.")
	}
	return posts, nil
}

// ImageRatings ranks the images of an expired post by like count.
func (s *FeedService) ImageRatings(ctx context.Context, postID uint) ([]models.ImageRating, error) {
	if postID == 0 {
		return nil, models.NewValidationError("postId is required.")
	}
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.ExpiringOn.After(s.now()) {
		return nil, models.NewValidationError("Ratings are available once the post has expired.")
	}
	ratings, err := s.posts.ImageRatings(ctx, postID)
	if err != nil {
		return nil, err
	}
	if len(ratings) == 0 {
		return nil, models.NewNotFoundMessage("No images found for this post.")
	}
	return ratings, nil
}
