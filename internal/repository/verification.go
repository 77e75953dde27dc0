package repository

import (
	"context"
	"errors"
	"time"

	"stylmou/internal/models"
	"stylmou/internal/observability"

	"gorm.io/gorm"
)

// VerificationRepository persists issued OTP and token pairs.
type VerificationRepository interface {
	Create(ctx context.Context, v *models.Verification) error
	// FindLatestValid returns the newest active record for (user, otp, action)
	// created at or after since.
	FindLatestValid(ctx context.Context, userID uint, otp, action string, since time.Time) (*models.Verification, error)
	// Consume marks an active record as used and returns the affected row count.
	Consume(ctx context.Context, id uint, at time.Time) (int64, error)
	// RefreshLatest rewrites token, action and verify_with on the user's most
	// recent record and returns the affected row count.
	RefreshLatest(ctx context.Context, userID uint, token, action, verifyWith string) (int64, error)
}

type verificationRepository struct {
	db *gorm.DB
}

// NewVerificationRepository returns a new VerificationRepository implementation.
func NewVerificationRepository(db *gorm.DB) VerificationRepository {
	return &verificationRepository{db: db}
}

func (r *verificationRepository) Create(ctx context.Context, v *models.Verification) error {
	defer observability.TrackQuery("create", "tbl_verifications")()

	if err := GetDB(ctx, r.db).Create(v).Error; err != nil {
		return models.NewOperationError(err)
	}
	return nil
}

func (r *verificationRepository) FindLatestValid(ctx context.Context, userID uint, otp, action string, since time.Time) (*models.Verification, error) {
	defer observability.TrackQuery("find_latest_valid", "tbl_verifications")()

	var v models.Verification
	err := GetDB(ctx, r.db).
		Where("user_id = ? AND otp = ? AND action = ?", userID, otp, action).
		Where("is_active = ? AND is_deleted = ?", true, false).
		Where("created_at >= ?", since).
		Order("created_at DESC").
		Order("id DESC").
		First(&v).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundMessage("Invalid or expired OTP.")
		}
		return nil, models.NewOperationError(err)
	}
	return &v, nil
}

func (r *verificationRepository) Consume(ctx context.Context, id uint, at time.Time) (int64, error) {
	defer observability.TrackQuery("consume", "tbl_verifications")()

	result := GetDB(ctx, r.db).
		Model(&models.Verification{}).
		Where("id = ? AND is_active = ? AND is_deleted = ?", id, true, false).
		Updates(map[string]interface{}{
			"is_active":  false,
			"is_deleted": true,
			"deleted_at": at,
		})
	if result.Error != nil {
		return 0, models.NewOperationError(result.Error)
	}
	return result.RowsAffected, nil
}

func (r *verificationRepository) RefreshLatest(ctx context.Context, userID uint, token, action, verifyWith string) (int64, error) {
	defer observability.TrackQuery("refresh_latest", "tbl_verifications")()

	db := GetDB(ctx, r.db)
	latest := db.Session(&gorm.Session{NewDB: true}).
		Model(&models.Verification{}).
		Select("id").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(1)

	result := db.Model(&models.Verification{}).
		Where("id = (?)", latest).
		Updates(map[string]interface{}{
			"token":       token,
			"action":      action,
			"verify_with": verifyWith,
		})
	if result.Error != nil {
		return 0, models.NewOperationError(result.Error)
	}
	return result.RowsAffected, nil
}
