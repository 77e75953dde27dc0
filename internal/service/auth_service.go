package service

import (
	"context"
	"log/slog"
	"strings"

	"stylmou/internal/middleware"
	"stylmou/internal/models"
	"stylmou/internal/repository"
	"stylmou/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// AuthService implements sign-up, login, OTP and password flows.
type AuthService struct {
	users         repository.UserRepository
	verifications *VerificationService
	hashCost      int
}

// DeviceInfo is the optional client description sent at sign-up.
type DeviceInfo struct {
	DeviceType  string `json:"device_type"`
	DeviceToken string `json:"device_token"`
	OSVersion   string `json:"os_version"`
	AppVersion  string `json:"app_version"`
}

type SignUpInput struct {
	Username   string
	Email      string
	Password   string
	Mobile     string
	Fullname   string
	DOB        string
	LoginType  string
	SocialID   string
	VerifyWith string
	Device     *DeviceInfo
}

type SignUpResult struct {
	UserID uint         `json:"userId"`
	User   *models.User `json:"userData"`
	IssuedVerification
	Device *DeviceInfo `json:"deviceInfo,omitempty"`
}

type LoginInput struct {
	Identifier string
	Password   string
	Action     string
	VerifyWith string
}

// LoginUser is the user summary returned by login.
type LoginUser struct {
	ID     uint   `json:"id"`
	Email  string `json:"email"`
	Mobile string `json:"mobile"`
}

type LoginResult struct {
	Token      string    `json:"token"`
	Action     string    `json:"action"`
	VerifyWith string    `json:"verify_with"`
	User       LoginUser `json:"user"`
}

// OTPResult is returned by every call that issues a verification for a known user.
type OTPResult struct {
	UserID uint `json:"userId"`
	IssuedVerification
}

func NewAuthService(users repository.UserRepository, verifications *VerificationService) *AuthService {
	return &AuthService{
		users:         users,
		verifications: verifications,
		hashCost:      bcrypt.DefaultCost,
	}
}

// SignUp validates the payload, rejects taken identities, creates the user and
// issues a SignUp verification.
func (s *AuthService) SignUp(ctx context.Context, in SignUpInput) (*SignUpResult, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Mobile = strings.TrimSpace(in.Mobile)
	in.LoginType = strings.ToLower(strings.TrimSpace(in.LoginType))
	if in.VerifyWith == "" {
		in.VerifyWith = models.VerifyWithEmail
	}

	if in.Username == "" || in.Email == "" || in.Password == "" || in.Mobile == "" ||
		in.Fullname == "" || in.DOB == "" || in.LoginType == "" {
		return nil, models.NewValidationError("Username, email, password, mobile, fullname, dob and login_type are required.")
	}
	if validation.IsSocialLogin(in.LoginType) && in.SocialID == "" {
		return nil, models.NewValidationError("social_id is required for Google or Facebook login.")
	}
	for _, check := range []error{
		validation.ValidateUsername(in.Username),
		validation.ValidateEmail(in.Email),
		validation.ValidateMobile(in.Mobile),
		validation.ValidateDOB(in.DOB),
		validation.ValidateLoginType(in.LoginType),
		validation.ValidateVerifyWith(in.VerifyWith),
	} {
		if check != nil {
			return nil, models.NewValidationError(check.Error())
		}
	}

	existing, err := s.users.GetByEmailOrMobile(ctx, in.Email, in.Mobile)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewValidationError(duplicateMessage(existing, in.Email, in.Mobile))
	}
	taken, err := s.users.ExistsByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.NewValidationError("Username is already taken.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, models.NewOperationError(err)
	}

	user := &models.User{
		Username:   in.Username,
		Fullname:   in.Fullname,
		Email:      in.Email,
		Mobile:     in.Mobile,
		Password:   string(hash),
		DOB:        in.DOB,
		LoginType:  in.LoginType,
		SocialID:   in.SocialID,
		SoftDelete: models.SoftDelete{IsActive: true},
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	ctx = middleware.WithUserID(ctx, user.ID)

	issued, err := s.verifications.Issue(ctx, user.ID, models.ActionSignUp, in.VerifyWith)
	if err != nil {
		return nil, err
	}

	device := in.Device
	if device == nil {
		device = &DeviceInfo{}
	}
	if err := s.users.CreateDevice(ctx, &models.Device{
		UserID:      user.ID,
		DeviceType:  device.DeviceType,
		DeviceToken: device.DeviceToken,
		OSVersion:   device.OSVersion,
		AppVersion:  device.AppVersion,
	}); err != nil {
		return nil, err
	}

	middleware.Logger.InfoContext(ctx, "user signed up", slog.String("login_type", in.LoginType))
	return &SignUpResult{UserID: user.ID, User: user, IssuedVerification: *issued, Device: in.Device}, nil
}

func duplicateMessage(existing *models.User, email, mobile string) string {
	emailTaken := strings.EqualFold(existing.Email, email)
	mobileTaken := existing.Mobile == mobile
	switch {
	case emailTaken && mobileTaken:
		return "Both email and mobile are already registered."
	case emailTaken:
		return "Email is already registered."
	default:
		return "Mobile number is already registered."
	}
}

// Login checks the password for an email or mobile identifier and stamps a
// fresh token on the user's most recent verification.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	if err := validation.ValidateVerifyWith(in.VerifyWith); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if strings.TrimSpace(in.Identifier) == "" || in.Password == "" {
		return nil, models.NewValidationError("identifier and password are required.")
	}
	if strings.TrimSpace(in.Action) == "" {
		return nil, models.NewValidationError("Action is required.")
	}

	user, err := s.users.GetByIdentifier(ctx, normalizeIdentifier(in.Identifier))
	if err != nil {
		return nil, err
	}
	ctx = middleware.WithUserID(ctx, user.ID)

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		middleware.Logger.WarnContext(ctx, "login rejected")
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}

	token, err := s.verifications.GenerateToken()
	if err != nil {
		return nil, models.NewOperationError(err)
	}
	if err := s.verifications.RefreshLoginChallenge(ctx, user.ID, token, in.Action, in.VerifyWith); err != nil {
		return nil, err
	}
	if !user.IsActive {
		if err := s.users.SetActive(ctx, user.ID, true); err != nil {
			return nil, err
		}
	}

	return &LoginResult{
		Token:      token,
		Action:     in.Action,
		VerifyWith: in.VerifyWith,
		User:       LoginUser{ID: user.ID, Email: user.Email, Mobile: user.Mobile},
	}, nil
}

// GetByEmailOrMobile looks up a user by either identifier.
func (s *AuthService) GetByEmailOrMobile(ctx context.Context, email, mobile string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	mobile = strings.TrimSpace(mobile)
	if email == "" && mobile == "" {
		return nil, models.NewValidationError("Please provide either email or mobile to fetch user.")
	}
	user, err := s.users.GetByEmailOrMobile(ctx, email, mobile)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundMessage("No user found with the provided email or mobile.")
	}
	return user, nil
}

// CreateOTP issues a verification for a caller-chosen action.
func (s *AuthService) CreateOTP(ctx context.Context, userID uint, action, verifyWith string) (*OTPResult, error) {
	if userID == 0 || action == "" || verifyWith == "" {
		return nil, models.NewValidationError("userId, action, and verifyWith are required.")
	}
	issued, err := s.verifications.Issue(ctx, userID, action, verifyWith)
	if err != nil {
		return nil, err
	}
	return &OTPResult{UserID: userID, IssuedVerification: *issued}, nil
}

// ResendOTP issues a new verification; callers only expose the OTP and its id.
func (s *AuthService) ResendOTP(ctx context.Context, userID uint, action, verifyWith string) (*OTPResult, error) {
	return s.CreateOTP(ctx, userID, action, verifyWith)
}

// VerifyOTP consumes a live OTP.
func (s *AuthService) VerifyOTP(ctx context.Context, userID uint, otp, action string) (*VerifiedChallenge, error) {
	return s.verifications.Verify(ctx, userID, otp, action)
}

// ForgotPassword issues a Forget verification addressed to the identifier.
func (s *AuthService) ForgotPassword(ctx context.Context, identifier string) (*OTPResult, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, models.NewValidationError("Identifier (email or mobile) is required.")
	}
	user, err := s.users.GetByIdentifier(ctx, normalizeIdentifier(identifier))
	if err != nil {
		return nil, err
	}
	issued, err := s.verifications.Issue(ctx, user.ID, models.ActionForget, identifier)
	if err != nil {
		return nil, err
	}
	return &OTPResult{UserID: user.ID, IssuedVerification: *issued}, nil
}

// ChangePassword replaces the password after a forgot-password verification.
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	if userID == 0 || oldPassword == "" || newPassword == "" {
		return models.NewValidationError("userId, oldPassword, and newPassword are required.")
	}
	if oldPassword == newPassword {
		return models.NewValidationError("New password cannot be the same as the old password.")
	}
	return s.replacePassword(ctx, userID, oldPassword, newPassword, "Old password is incorrect.")
}

// UpdatePassword replaces the password of a signed-in user.
func (s *AuthService) UpdatePassword(ctx context.Context, userID uint, currentPassword, newPassword, confirmPassword string) error {
	if userID == 0 || currentPassword == "" || newPassword == "" || confirmPassword == "" {
		return models.NewValidationError("userId, currentPassword, newPassword, and confirmPassword are required.")
	}
	if newPassword != confirmPassword {
		return models.NewValidationError("New password and confirm password do not match.")
	}
	return s.replacePassword(ctx, userID, currentPassword, newPassword, "Current password is incorrect.")
}

func (s *AuthService) replacePassword(ctx context.Context, userID uint, current, next, mismatch string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)); err != nil {
		return models.NewUnauthorizedError(mismatch)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), s.hashCost)
	if err != nil {
		return models.NewOperationError(err)
	}
	if err := s.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}
	middleware.Logger.InfoContext(middleware.WithUserID(ctx, userID), "password updated")
	return nil
}

// Logout clears the active flag; the next login sets it again.
func (s *AuthService) Logout(ctx context.Context, userID uint) error {
	if userID == 0 {
		return models.NewValidationError("userId is required.")
	}
	return s.users.SetActive(ctx, userID, false)
}

func normalizeIdentifier(identifier string) string {
	identifier = strings.TrimSpace(identifier)
	if strings.Contains(identifier, "@") {
		return strings.ToLower(identifier)
	}
	return identifier
}
