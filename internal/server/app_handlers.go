package server

import (
	"stylmou/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateBlog handles POST /v1/app/blogs
func (s *Server) CreateBlog(c *fiber.Ctx) error {
	var req struct {
		UserID      uint   `json:"user_id"`
		BlogImage   string `json:"blog_image"`
		Description string `json:"description"`
		Title       string `json:"title"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	blog, err := s.contentService.CreateBlog(c.UserContext(), service.CreateBlogInput{
		UserID:      req.UserID,
		BlogImage:   req.BlogImage,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return fail(c, err)
	}
	return respond(c, "Blog created successfully.", blog)
}

// CreateContactMessage handles POST /v1/app/contactUs
func (s *Server) CreateContactMessage(c *fiber.Ctx) error {
	var req struct {
		FullName    string `json:"full_name"`
		Email       string `json:"email"`
		Subject     string `json:"subject"`
		Description string `json:"description"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	msg, err := s.contentService.CreateContactMessage(c.UserContext(), service.ContactInput{
		FullName:    req.FullName,
		Email:       req.Email,
		Subject:     req.Subject,
		Description: req.Description,
	})
	if err != nil {
		return fail(c, err)
	}
	return respond(c, "Contact us entry created successfully.", msg)
}
