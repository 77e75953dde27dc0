package repository

import (
	"context"
	"errors"
	"time"

	"stylmou/internal/models"
	"stylmou/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CatalogRepository serves reference data: categories, languages, countries and tags.
type CatalogRepository interface {
	Categories(ctx context.Context) ([]models.Category, error)
	Languages(ctx context.Context) ([]models.Language, error)
	LanguageExists(ctx context.Context, id uint) (bool, error)
	SetUserLanguage(ctx context.Context, userID, languageID uint) error
	CountryIDByCode(ctx context.Context, code string) (*uint, error)
	// SeedReference inserts missing reference rows and leaves existing ones untouched.
	SeedReference(ctx context.Context, ref Reference) error
}

// Reference is the reference data set installed at startup.
type Reference struct {
	Categories []models.Category
	Languages  []models.Language
	Countries  []models.Country
	Tags       []models.Tag
}

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository returns a new CatalogRepository implementation.
func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) Categories(ctx context.Context) ([]models.Category, error) {
	defer observability.TrackQuery("list", "tbl_categories")()

	var categories []models.Category
	if err := GetDB(ctx, r.db).Where("is_active = ? AND is_deleted = ?", true, false).Order("id").Find(&categories).Error; err != nil {
		return nil, models.NewOperationError(err)
	}
	return categories, nil
}

func (r *catalogRepository) Languages(ctx context.Context) ([]models.Language, error) {
	defer observability.TrackQuery("list", "tbl_languages")()

	var languages []models.Language
	if err := GetDB(ctx, r.db).Where("is_active = ? AND is_deleted = ?", true, false).Order("name").Find(&languages).Error; err != nil {
		return nil, models.NewOperationError(err)
	}
	return languages, nil
}

func (r *catalogRepository) LanguageExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&models.Language{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Count(&count).Error
	if err != nil {
		return false, models.NewOperationError(err)
	}
	return count > 0, nil
}

func (r *catalogRepository) SetUserLanguage(ctx context.Context, userID, languageID uint) error {
	defer observability.TrackQuery("upsert", "tbl_user_languages")()

	pref := models.UserLanguage{UserID: userID, LanguageID: languageID}
	err := GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"language_id": languageID,
			"is_active":   true,
			"is_deleted":  false,
			"deleted_at":  nil,
			"updated_at":  time.Now(),
		}),
	}).Create(&pref).Error
	if err != nil {
		return models.NewOperationError(err)
	}
	return nil
}

func (r *catalogRepository) CountryIDByCode(ctx context.Context, code string) (*uint, error) {
	var country models.Country
	err := GetDB(ctx, r.db).Where("country_code = ?", code).First(&country).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundMessage("Country not found")
		}
		return nil, models.NewOperationError(err)
	}
	return &country.ID, nil
}

func (r *catalogRepository) SeedReference(ctx context.Context, ref Reference) error {
	db := GetDB(ctx, r.db).Clauses(clause.OnConflict{DoNothing: true})
	err := errors.Join(
		seedRows(db, ref.Categories),
		seedRows(db, ref.Languages),
		seedRows(db, ref.Countries),
		seedRows(db, ref.Tags),
	)
	if err != nil {
		return models.NewOperationError(err)
	}
	return nil
}

func seedRows[T any](db *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	return db.Create(&rows).Error
}
