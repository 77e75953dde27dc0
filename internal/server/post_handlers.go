package server

import (
	"stylmou/internal/models"
	"stylmou/internal/service"

	"github.com/gofiber/fiber/v2"
)

const defaultFeedLimit = 50

// CreatePost handles POST /v1/user/post/createPost
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		UserID         uint                      `json:"userId"`
		Description    string                    `json:"description"`
		CategoryID     uint                      `json:"categories_id"`
		Style          string                    `json:"style"`
		StyleThumbnail string                    `json:"style_thumbnail"`
		Video          string                    `json:"video"`
		VideoDuration  *int                      `json:"video_duration"`
		Images         []service.CreatePostImage `json:"images"`
		Tags           []uint                    `json:"tags"`
		CreatedAt      string                    `json:"created_at"`
		ExpiringOn     string                    `json:"expiring_on"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	createdAt, err := parseTimestamp("created_at", req.CreatedAt)
	if err != nil {
		return fail(c, err)
	}
	expiringOn, err := parseTimestamp("expiring_on", req.ExpiringOn)
	if err != nil {
		return fail(c, err)
	}

	created, err := s.postService.CreatePostWithAttachments(c.UserContext(), service.CreatePostInput{
		UserID:         req.UserID,
		Description:    req.Description,
		CategoryID:     req.CategoryID,
		Style:          req.Style,
		StyleThumbnail: req.StyleThumbnail,
		Video:          req.Video,
		VideoDuration:  req.VideoDuration,
		Images:         req.Images,
		Tags:           req.Tags,
		CreatedAt:      createdAt,
		ExpiringOn:     expiringOn,
	})
	if err != nil {
		return fail(c, err)
	}
	return respond(c, "Post created successfully.", created)
}

// DeletePost handles POST /v1/post/delete
func (s *Server) DeletePost(c *fiber.Ctx) error {
	var req struct {
		PostID uint `json:"postId"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.UserContext(), req.PostID); err != nil {
		return fail(c, err)
	}
	return respond(c, "Post and related data deleted successfully.", nil)
}

// GetPostStyles handles GET /v1/post/post-style
func (s *Server) GetPostStyles(c *fiber.Ctx) error {
	styles, err := s.feedService.Styles(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return respond(c, "Post styles fetched successfully.", styles)
}

// GetCategories handles GET /v1/post/post-categories
func (s *Server) GetCategories(c *fiber.Ctx) error {
	categories, err := s.feedService.Categories(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return respond(c, "Categories fetched successfully.", categories)
}

// GetAllPosts handles GET /v1/post/allPosts
func (s *Server) GetAllPosts(c *fiber.Ctx) error {
	page := parsePagination(c, defaultFeedLimit)
	posts, err := s.feedService.All(c.UserContext(), page.Limit, page.Offset)
	return s.respondPosts(c, "All posts fetched successfully.", posts, err)
}

// GetTrendingPosts handles GET /v1/post/trending
func (s *Server) GetTrendingPosts(c *fiber.Ctx) error {
	page := parsePagination(c, defaultFeedLimit)
	posts, err := s.feedService.Trending(c.UserContext(), page.Limit, page.Offset)
	return s.respondPosts(c, "Trending posts fetched successfully.", posts, err)
}

type styleRequest struct {
	Style string `json:"style"`
}

// GetPostsByStyle handles POST /v1/post/postByStyle
func (s *Server) GetPostsByStyle(c *fiber.Ctx) error {
	var req styleRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	posts, err := s.feedService.ByStyle(c.UserContext(), req.Style)
	return s.respondPosts(c, "Posts fetched successfully.", posts, err)
}

// GetNewPosts handles POST /v1/post/new
func (s *Server) GetNewPosts(c *fiber.Ctx) error {
	var req styleRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	posts, err := s.feedService.Newest(c.UserContext(), req.Style)
	return s.respondPosts(c, "New posts fetched successfully.", posts, err)
}

// GetExpiringPosts handles POST /v1/post/expiring
func (s *Server) GetExpiringPosts(c *fiber.Ctx) error {
	var req styleRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	posts, err := s.feedService.Expiring(c.UserContext(), req.Style)
	return s.respondPosts(c, "Expiring posts fetched successfully.", posts, err)
}

// GetFollowingPosts handles POST /v1/post/following
func (s *Server) GetFollowingPosts(c *fiber.Ctx) error {
	var req struct {
		UserID uint   `json:"userId"`
		Style  string `json:"style"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	posts, err := s.feedService.Following(c.UserContext(), req.UserID, req.Style)
	return s.respondPosts(c, "Posts from following users fetched successfully.", posts, err)
}

// GetSavedPosts handles POST /v1/post/saved
func (s *Server) GetSavedPosts(c *fiber.Ctx) error {
	var req struct {
		UserID uint `json:"user_id"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	posts, err := s.feedService.Saved(c.UserContext(), req.UserID)
	return s.respondPosts(c, "Saved posts fetched successfully.", posts, err)
}

// GetPostsByCategory handles POST /v1/post/category
func (s *Server) GetPostsByCategory(c *fiber.Ctx) error {
	var req struct {
		CategoryID uint `json:"categoryId"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	posts, err := s.feedService.ByCategory(c.UserContext(), req.CategoryID)
	return s.respondPosts(c, "Posts fetched successfully.", posts, err)
}

// GetStylComparePosts handles GET /v1/post/stylCompare
func (s *Server) GetStylComparePosts(c *fiber.Ctx) error {
	posts, err := s.feedService.ByStyle(c.UserContext(), models.StyleCompare)
	return s.respondPosts(c, "StylCompare posts fetched successfully.", posts, err)
}

// GetStylVideoPosts handles GET /v1/post/stylVideo
func (s *Server) GetStylVideoPosts(c *fiber.Ctx) error {
	posts, err := s.feedService.ByStyle(c.UserContext(), models.StyleVideo)
	return s.respondPosts(c, "StylVideo posts fetched successfully.", posts, err)
}

// GetImageRatings handles POST /v1/post/images/rating
func (s *Server) GetImageRatings(c *fiber.Ctx) error {
	var req struct {
		PostID uint `json:"postId"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	ratings, err := s.feedService.ImageRatings(c.UserContext(), req.PostID)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, "Images fetched successfully.", ratings)
}

func (s *Server) respondPosts(c *fiber.Ctx, message string, posts []*models.Post, err error) error {
	if err != nil {
		return fail(c, err)
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	return respond(c, message, posts)
}
