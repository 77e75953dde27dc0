package service

import (
	"context"
	"strings"

	"stylmou/internal/cache"
	"stylmou/internal/models"
	"stylmou/internal/repository"
	"stylmou/internal/validation"
)

// ProfileService serves and edits user profiles and language preferences.
type ProfileService struct {
	users   repository.UserRepository
	catalog repository.CatalogRepository
	cache   *cache.Cache
}

type EditProfileInput struct {
	UserID      uint
	Username    string
	Email       string
	CountryCode string
	Bio         string
	Fullname    string
	Mobile      string
}

func NewProfileService(users repository.UserRepository, catalog repository.CatalogRepository, c *cache.Cache) *ProfileService {
	return &ProfileService{users: users, catalog: catalog, cache: c}
}

// Profile returns the caller's own profile, cached per user.
func (s *ProfileService) Profile(ctx context.Context, userID uint) (*models.UserProfile, error) {
	if userID == 0 {
		return nil, models.NewValidationError("userId is required.")
	}
	var profile models.UserProfile
	err := s.cache.Aside(ctx, cache.ProfileKey(userID), &profile, cache.ProfileTTL, func() error {
		p, err := s.users.Profile(ctx, userID, 0)
		if err != nil {
			return err
		}
		profile = *p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// OtherUserProfile returns userID's profile as seen by viewerID, including is_follow.
func (s *ProfileService) OtherUserProfile(ctx context.Context, userID, viewerID uint) (*models.UserProfile, error) {
	if userID == 0 || viewerID == 0 {
		return nil, models.NewValidationError("userId and currentUserId are required.")
	}
	return s.users.Profile(ctx, userID, viewerID)
}

// EditProfile updates the editable columns. The mobile number is fixed after sign-up.
func (s *ProfileService) EditProfile(ctx context.Context, in EditProfileInput) error {
	if in.Mobile != "" {
		return models.NewValidationError("Mobile number cannot be updated.")
	}
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.UserID == 0 || in.Username == "" || in.Email == "" || in.CountryCode == "" || in.Bio == "" || in.Fullname == "" {
		return models.NewValidationError("All fields except mobile are required.")
	}
	if err := validation.ValidateUsername(in.Username); err != nil {
		return models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return models.NewValidationError(err.Error())
	}

	countryID, err := s.catalog.CountryIDByCode(ctx, in.CountryCode)
	if err != nil {
		return err
	}

	if err := s.users.UpdateProfile(ctx, in.UserID, repository.ProfileUpdate{
		Username:  in.Username,
		Email:     in.Email,
		Fullname:  in.Fullname,
		Bio:       in.Bio,
		CountryID: countryID,
	}); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, cache.ProfileKey(in.UserID))
	return nil
}

// Languages lists the selectable languages.
func (s *ProfileService) Languages(ctx context.Context) ([]models.Language, error) {
	var languages []models.Language
	err := s.cache.Aside(ctx, cache.LanguagesKey, &languages, cache.CatalogTTL, func() error {
		var err error
		languages, err = s.catalog.Languages(ctx)
		return err
	})
	return languages, err
}

// SetLanguage records the user's single language preference.
func (s *ProfileService) SetLanguage(ctx context.Context, userID, languageID uint) error {
	if userID == 0 || languageID == 0 {
		return models.NewValidationError("userId and languageId are required.")
	}
	ok, err := s.catalog.LanguageExists(ctx, languageID)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewNotFoundError("Language", languageID)
	}
	return s.catalog.SetUserLanguage(ctx, userID, languageID)
}
