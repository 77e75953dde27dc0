package server

import (
	"stylmou/internal/service"

	"github.com/gofiber/fiber/v2"
)

type userIDRequest struct {
	UserID uint `json:"userId"`
}

// GetProfile handles POST /v1/user/profile
func (s *Server) GetProfile(c *fiber.Ctx) error {
	var req userIDRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	profile, err := s.profileService.Profile(c.UserContext(), req.UserID)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, "User profile fetched successfully.", profile)
}

// GetOtherUserProfile handles POST /v1/user/otherUserProfile
func (s *Server) GetOtherUserProfile(c *fiber.Ctx) error {
	var req struct {
		UserID        uint `json:"userId"`
		CurrentUserID uint `json:"currentUserId"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	profile, err := s.profileService.OtherUserProfile(c.UserContext(), req.UserID, req.CurrentUserID)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, "User profile fetched successfully.", profile)
}

// EditProfile handles POST /v1/user/edit-profile
func (s *Server) EditProfile(c *fiber.Ctx) error {
	var req struct {
		UserID      uint   `json:"user_id"`
		Username    string `json:"username"`
		Email       string `json:"email"`
		CountryCode string `json:"country_code"`
		Bio         string `json:"bio"`
		Fullname    string `json:"fullname"`
		Mobile      string `json:"mobile"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	err := s.profileService.EditProfile(c.UserContext(), service.EditProfileInput{
		UserID:      req.UserID,
		Username:    req.Username,
		Email:       req.Email,
		CountryCode: req.CountryCode,
		Bio:         req.Bio,
		Fullname:    req.Fullname,
		Mobile:      req.Mobile,
	})
	if err != nil {
		return fail(c, err)
	}
	return respond(c, "User profile updated successfully.", nil)
}

// GetLanguages handles GET /v1/user/languages
func (s *Server) GetLanguages(c *fiber.Ctx) error {
	languages, err := s.profileService.Languages(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return respond(c, "Languages fetched successfully.", languages)
}

// SetLanguage handles POST /v1/user/setLanguage
func (s *Server) SetLanguage(c *fiber.Ctx) error {
	var req struct {
		UserID     uint `json:"userId"`
		LanguageID uint `json:"languageId"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	if err := s.profileService.SetLanguage(c.UserContext(), req.UserID, req.LanguageID); err != nil {
		return fail(c, err)
	}
	return respond(c, "Language set successfully.", nil)
}

// DeleteAccount handles POST /v1/user/deleteAccount
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	var req userIDRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	if err := s.accountService.CascadeSoftDelete(c.UserContext(), req.UserID); err != nil {
		return fail(c, err)
	}
	return respond(c, "User account and related data deleted successfully.", nil)
}
