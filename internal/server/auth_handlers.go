package server

import (
	"stylmou/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SignUp handles POST /v1/user/signUp
func (s *Server) SignUp(c *fiber.Ctx) error {
	var req struct {
		Username   string              `json:"username"`
		Email      string              `json:"email"`
		Password   string              `json:"password"`
		Mobile     string              `json:"mobile"`
		Fullname   string              `json:"fullname"`
		DOB        string              `json:"dob"`
		LoginType  string              `json:"login_type"`
		SocialID   string              `json:"social_id"`
		VerifyWith string              `json:"verifyWith"`
		DeviceInfo *service.DeviceInfo `json:"deviceInfo"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	result, err := s.authService.SignUp(c.UserContext(), service.SignUpInput{
		Username:   req.Username,
		Email:      req.Email,
		Password:   req.Password,
		Mobile:     req.Mobile,
		Fullname:   req.Fullname,
		DOB:        req.DOB,
		LoginType:  req.LoginType,
		SocialID:   req.SocialID,
		VerifyWith: req.VerifyWith,
		Device:     req.DeviceInfo,
	})
	if err != nil {
		return fail(c, err)
	}
	return respond(c, "User registered successfully. OTP sent.", result)
}

// Login handles POST /v1/user/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Identifier string `json:"identifier"`
		Password   string `json:"password"`
		Action     string `json:"action"`
		VerifyWith string `json:"verify_with"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	result, err := s.authService.Login(c.UserContext(), service.LoginInput{
		Identifier: req.Identifier,
		Password:   req.Password,
		Action:     req.Action,
		VerifyWith: req.VerifyWith,
	})
	if err != nil {
		return fail(c, err)
	}
	return respond(c, "Login successful", result)
}

// GetByEmailOrMobile handles POST /v1/user/getByEmailOrMobile
func (s *Server) GetByEmailOrMobile(c *fiber.Ctx) error {
	var req struct {
		Email  string `json:"email"`
		Mobile string `json:"mobile"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	user, err := s.authService.GetByEmailOrMobile(c.UserContext(), req.Email, req.Mobile)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, "User fetched successfully.", user)
}

type otpRequest struct {
	UserID     uint   `json:"userId"`
	Action     string `json:"action"`
	VerifyWith string `json:"verifyWith"`
}

// CreateOTP handles POST /v1/user/createOtp
func (s *Server) CreateOTP(c *fiber.Ctx) error {
	var req otpRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	result, err := s.authService.CreateOTP(c.UserContext(), req.UserID, req.Action, req.VerifyWith)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, "OTP and token generated successfully.", result)
}

// ResendOTP handles POST /v1/user/resendOtp. The token is not returned.
func (s *Server) ResendOTP(c *fiber.Ctx) error {
	var req otpRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	result, err := s.authService.ResendOTP(c.UserContext(), req.UserID, req.Action, req.VerifyWith)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, "OTP resent successfully.", fiber.Map{
		"userId":         result.UserID,
		"otp":            result.OTP,
		"verificationId": result.VerificationID,
	})
}

type verifyRequest struct {
	UserID uint   `json:"userId"`
	OTP    string `json:"otp"`
	Action string `json:"action"`
}

// VerifyOTP handles POST /v1/user/verifyOtp
func (s *Server) VerifyOTP(c *fiber.Ctx) error {
	return s.verify(c)
}

// VerifyForgotPasswordOTP handles POST /v1/user/verifyForgotPasswordOtp
func (s *Server) VerifyForgotPasswordOTP(c *fiber.Ctx) error {
	return s.verify(c)
}

func (s *Server) verify(c *fiber.Ctx) error {
	var req verifyRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	result, err := s.authService.VerifyOTP(c.UserContext(), req.UserID, req.OTP, req.Action)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, "OTP verified successfully.", result)
}

// ForgotPassword handles POST /v1/user/forgotPassword
func (s *Server) ForgotPassword(c *fiber.Ctx) error {
	var req struct {
		Identifier string `json:"identifier"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	result, err := s.authService.ForgotPassword(c.UserContext(), req.Identifier)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, "OTP generated successfully.", result)
}

// ChangePassword handles POST /v1/user/changePassword (forgot-password flow)
func (s *Server) ChangePassword(c *fiber.Ctx) error {
	var req struct {
		UserID      uint   `json:"userId"`
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	if err := s.authService.ChangePassword(c.UserContext(), req.UserID, req.OldPassword, req.NewPassword); err != nil {
		return fail(c, err)
	}
	return respond(c, "Password updated successfully.", nil)
}

// UpdatePassword handles POST /v1/user/updatePassword
func (s *Server) UpdatePassword(c *fiber.Ctx) error {
	var req struct {
		UserID          uint   `json:"userId"`
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	err := s.authService.UpdatePassword(c.UserContext(), req.UserID, req.CurrentPassword, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, "Password updated successfully.", nil)
}

// Logout handles POST /v1/user/logout
func (s *Server) Logout(c *fiber.Ctx) error {
	var req struct {
		UserID uint `json:"userId"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	if err := s.authService.Logout(c.UserContext(), req.UserID); err != nil {
		return fail(c, err)
	}
	return respond(c, "User logged out successfully.", nil)
}
