package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"stylmou/internal/cache"
	"stylmou/internal/middleware"
	"stylmou/internal/models"
	"stylmou/internal/observability"
	"stylmou/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

type PostService struct {
	posts   repository.PostRepository
	cascade repository.CascadeRepository
	writes  *WriteCoordinator
	events  EventPublisher
	cache   *cache.Cache
	opts    FanoutOptions
	now     func() time.Time
}

// CreatePostImage is one attachment of a new post.
type CreatePostImage struct {
	Type  string `json:"type"`
	Image string `json:"image"`
}

type CreatePostInput struct {
	UserID         uint
	Description    string
	CategoryID     uint
	Style          string
	StyleThumbnail string
	Video          string
	VideoDuration  *int
	Images         []CreatePostImage
	Tags           []uint
	CreatedAt      *time.Time
	ExpiringOn     *time.Time
}

// CreatedPost identifies a post once every attempted sub-write succeeded.
type CreatedPost struct {
	PostID uint `json:"postId"`
	UserID uint `json:"userId"`
}

func NewPostService(
	posts repository.PostRepository,
	cascade repository.CascadeRepository,
	writes *WriteCoordinator,
	events EventPublisher,
	c *cache.Cache,
) *PostService {
	return &PostService{
		posts:   posts,
		cascade: cascade,
		writes:  writes,
		events:  orNoopEvents(events),
		cache:   c,
		opts:    writes.opts,
		now:     time.Now,
	}
}

// CreatePostWithAttachments inserts the post, then its video, then its images
// and finally its tags.
func (s *PostService) CreatePostWithAttachments(ctx context.Context, in CreatePostInput) (_ *CreatedPost, err error) {
	ctx, span := observability.StartSpan(ctx, "fanout", "create_post",
		attribute.Int("images", len(in.Images)),
		attribute.Int("tags", len(in.Tags)),
	)
	record := observability.TrackFanout("create_post")
	defer func() {
		record(err)
		observability.EndSpan(span, err)
	}()

	if err := validateCreatePost(in); err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID:         in.UserID,
		Description:    in.Description,
		CategoriesID:   in.CategoryID,
		Style:          in.Style,
		StyleThumbnail: in.StyleThumbnail,
		ExpiringOn:     *in.ExpiringOn,
		SoftDelete:     models.SoftDelete{IsActive: true},
		CreatedAt:      *in.CreatedAt,
	}

	err = s.writes.run(ctx, in.UserID, func(ctx context.Context, mode writeMode) error {
		return s.writePost(ctx, post, in, mode)
	})
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "post creation failed",
			slog.Uint64("user_id", uint64(in.UserID)),
			slog.Uint64("post_id", uint64(post.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.cache.Invalidate(ctx, cache.StylesKey)
	logPublishFailure(ctx, "post.created", s.events.PublishPostCreated(ctx, post.UserID, post.ID))

	return &CreatedPost{PostID: post.ID, UserID: post.UserID}, nil
}

func (s *PostService) writePost(ctx context.Context, post *models.Post, in CreatePostInput, mode writeMode) error {
	if err := s.posts.Create(ctx, post); err != nil {
		return err
	}

	var videoErr error
	if in.Video != "" {
		videoErr = s.posts.AddImage(ctx, &models.PostImage{
			PostID:        post.ID,
			Type:          models.MediaTypeVideo,
			Image:         in.Video,
			VideoDuration: in.VideoDuration,
		})
		observability.FanoutSubWrites.WithLabelValues("video", observability.Outcome(videoErr)).Inc()
		if videoErr != nil {
			if s.opts.AbortOnVideoFailure || mode.transactional {
				return videoErr
			}
			middleware.Logger.WarnContext(ctx, "video attachment failed, continuing with images",
				slog.Uint64("post_id", uint64(post.ID)),
				slog.String("error", videoErr.Error()),
			)
		}
	}

	err := fanOut(ctx, "images", mode.parallelism, len(in.Images), func(ctx context.Context, i int) error {
		img := in.Images[i]
		return s.posts.AddImage(ctx, &models.PostImage{
			PostID: post.ID,
			Type:   imageType(img.Type),
			Image:  img.Image,
		})
	})
	if err != nil {
		return firstError(videoErr, err)
	}

	err = fanOut(ctx, "tags", mode.parallelism, len(in.Tags), func(ctx context.Context, i int) error {
		return s.posts.AddTag(ctx, &models.PostTag{PostID: post.ID, TagID: in.Tags[i]})
	})
	if err != nil {
		return firstError(videoErr, err)
	}

	return videoErr
}

// DeletePost soft-deletes a post's images, then its tags, then the post row.
func (s *PostService) DeletePost(ctx context.Context, postID uint) (err error) {
	ctx, span := observability.StartSpan(ctx, "fanout", "delete_post", attribute.Int64("post_id", int64(postID)))
	record := observability.TrackFanout("delete_post")
	defer func() {
		record(err)
		observability.EndSpan(span, err)
	}()

	if postID == 0 {
		return models.NewValidationError("postId is required.")
	}

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	err = s.writes.run(ctx, post.UserID, func(ctx context.Context, _ writeMode) error {
		return applyPlan(ctx, s.cascade, "delete_post", repository.PostCascadePlan(), postID, s.now())
	})
	if err != nil {
		return err
	}

	s.cache.Invalidate(ctx, cache.StylesKey)
	logPublishFailure(ctx, "post.deleted", s.events.PublishPostDeleted(ctx, post.UserID, postID))
	return nil
}

func validateCreatePost(in CreatePostInput) error {
	if in.UserID == 0 || strings.TrimSpace(in.Description) == "" || in.CategoryID == 0 ||
		strings.TrimSpace(in.Style) == "" || in.CreatedAt == nil || in.ExpiringOn == nil {
		return models.NewValidationError("userId, description, categories_id, style, created_at, and expiring_on are required.")
	}
	if in.Video != "" && (in.VideoDuration == nil || *in.VideoDuration <= 0) {
		return models.NewValidationError("video_duration is required when a video is supplied.")
	}
	for _, img := range in.Images {
		if strings.TrimSpace(img.Image) == "" {
			return models.NewValidationError("Each image requires an image URL.")
		}
		if img.Type != "" && img.Type != models.MediaTypeImage && img.Type != models.MediaTypeVideo {
			return models.NewValidationError("Image type must be Image or Video.")
		}
	}
	for _, tagID := range in.Tags {
		if tagID == 0 {
			return models.NewValidationError("Tag ids must be positive.")
		}
	}
	return nil
}

func imageType(t string) string {
	if t == "" {
		return models.MediaTypeImage
	}
	return t
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
