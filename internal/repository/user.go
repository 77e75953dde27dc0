package repository

import (
	"context"
	"errors"

	"stylmou/internal/models"
	"stylmou/internal/observability"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	// GetByIdentifier finds a non-deleted user whose email or mobile equals identifier.
	GetByIdentifier(ctx context.Context, identifier string) (*models.User, error)
	// GetByEmailOrMobile returns nil, nil when no non-deleted user matches.
	GetByEmailOrMobile(ctx context.Context, email, mobile string) (*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, user *models.User) error
	CreateDevice(ctx context.Context, device *models.Device) error
	UpdatePassword(ctx context.Context, id uint, hash string) error
	SetActive(ctx context.Context, id uint, active bool) error
	UpdateProfile(ctx context.Context, id uint, update ProfileUpdate) error
	Profile(ctx context.Context, id, viewerID uint) (*models.UserProfile, error)
}

// ProfileUpdate carries the editable profile columns.
type ProfileUpdate struct {
	Username  string
	Email     string
	Fullname  string
	Bio       string
	CountryID *uint
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	defer observability.TrackQuery("get_by_id", "tbl_users")()

	var user models.User
	if err := GetDB(ctx, r.db).Where("is_deleted = ?", false).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewOperationError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	defer observability.TrackQuery("get_by_identifier", "tbl_users")()

	var user models.User
	err := GetDB(ctx, r.db).
		Where("(email = ? OR mobile = ?) AND is_deleted = ?", identifier, identifier, false).
		Order("id DESC").
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundMessage("User not found")
		}
		return nil, models.NewOperationError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmailOrMobile(ctx context.Context, email, mobile string) (*models.User, error) {
	defer observability.TrackQuery("get_by_email_or_mobile", "tbl_users")()

	query := GetDB(ctx, r.db).Where("is_deleted = ?", false)
	switch {
	case email != "" && mobile != "":
		query = query.Where("(email = ? OR mobile = ?)", email, mobile)
	case email != "":
		query = query.Where("email = ?", email)
	case mobile != "":
		query = query.Where("mobile = ?", mobile)
	default:
		return nil, nil
	}

	var user models.User
	if err := query.Order("id DESC").First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewOperationError(err)
	}
	return &user, nil
}

func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	defer observability.TrackQuery("exists_by_username", "tbl_users")()

	var count int64
	err := GetDB(ctx, r.db).Model(&models.User{}).
		Where("username = ? AND is_deleted = ?", username, false).
		Count(&count).Error
	if err != nil {
		return false, models.NewOperationError(err)
	}
	return count > 0, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	defer observability.TrackQuery("create", "tbl_users")()

	if err := GetDB(ctx, r.db).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("User already exists")
		}
		return models.NewOperationError(err)
	}
	return nil
}

func (r *userRepository) CreateDevice(ctx context.Context, device *models.Device) error {
	defer observability.TrackQuery("create", "tbl_device")()

	if err := GetDB(ctx, r.db).Create(device).Error; err != nil {
		return models.NewOperationError(err)
	}
	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uint, hash string) error {
	return r.updateColumns(ctx, id, "update_password", map[string]interface{}{"password": hash})
}

func (r *userRepository) SetActive(ctx context.Context, id uint, active bool) error {
	return r.updateColumns(ctx, id, "set_active", map[string]interface{}{"is_active": active})
}

func (r *userRepository) UpdateProfile(ctx context.Context, id uint, update ProfileUpdate) error {
	return r.updateColumns(ctx, id, "update_profile", map[string]interface{}{
		"username":   update.Username,
		"email":      update.Email,
		"fullname":   update.Fullname,
		"bio":        update.Bio,
		"country_id": update.CountryID,
	})
}

func (r *userRepository) updateColumns(ctx context.Context, id uint, op string, columns map[string]interface{}) error {
	defer observability.TrackQuery(op, "tbl_users")()

	result := GetDB(ctx, r.db).Model(&models.User{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(columns)
	if result.Error != nil {
		if isUniqueConstraintError(result.Error) {
			return models.NewValidationError("User already exists")
		}
		return models.NewOperationError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("User", id)
	}
	return nil
}

func (r *userRepository) Profile(ctx context.Context, id, viewerID uint) (*models.UserProfile, error) {
	defer observability.TrackQuery("profile", "tbl_users")()

	user, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	db := GetDB(ctx, r.db)
	profile := &models.UserProfile{
		ID:             user.ID,
		Username:       user.Username,
		Fullname:       user.Fullname,
		ProfileImage:   user.ProfileImage,
		Bio:            user.Bio,
		TotalRetreate:  user.TotalRetreate,
		TotalMyRatings: user.TotalMyRatings,
	}

	accepted := db.Model(&models.Follow{}).
		Where("status = ? AND is_deleted = ?", models.FollowStatusAccepted, false)

	if err := accepted.Session(&gorm.Session{}).Where("following_to = ?", id).Count(&profile.TotalFollowers).Error; err != nil {
		return nil, models.NewOperationError(err)
	}
	if err := accepted.Session(&gorm.Session{}).Where("followed_by = ?", id).Count(&profile.TotalFollowing).Error; err != nil {
		return nil, models.NewOperationError(err)
	}

	if viewerID != 0 && viewerID != id {
		var n int64
		err := accepted.Session(&gorm.Session{}).
			Where("followed_by = ? AND following_to = ?", viewerID, id).
			Count(&n).Error
		if err != nil {
			return nil, models.NewOperationError(err)
		}
		isFollow := n > 0
		profile.IsFollow = &isFollow
	}

	return profile, nil
}
