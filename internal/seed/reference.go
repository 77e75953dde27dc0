package seed

import (
	"context"
	"fmt"

	"stylmou/internal/models"
	"stylmou/internal/repository"

	"gorm.io/gorm"
)

// DefaultReference is the catalog every environment starts with. Category ids
// are fixed because the feed only recognises 1, 2 and 3.
func DefaultReference() repository.Reference {
	active := models.SoftDelete{IsActive: true}
	return repository.Reference{
		Categories: []models.Category{
			{ID: 1, Category: "Men", Logo: "https://cdn.stylmou.app/categories/men.png", SoftDelete: active},
			{ID: 2, Category: "Women", Logo: "https://cdn.stylmou.app/categories/women.png", SoftDelete: active},
			{ID: 3, Category: "Kids", Logo: "https://cdn.stylmou.app/categories/kids.png", SoftDelete: active},
		},
		Languages: []models.Language{
			{ID: 1, Name: "English", Code: "en", SoftDelete: active},
			{ID: 2, Name: "Hindi", Code: "hi", SoftDelete: active},
			{ID: 3, Name: "Spanish", Code: "es", SoftDelete: active},
			{ID: 4, Name: "French", Code: "fr", SoftDelete: active},
		},
		Countries: []models.Country{
			{ID: 1, CountryCode: "+91", Name: "India"},
			{ID: 2, CountryCode: "+1", Name: "United States"},
			{ID: 3, CountryCode: "+44", Name: "United Kingdom"},
			{ID: 4, CountryCode: "+61", Name: "Australia"},
		},
		Tags: []models.Tag{
			{ID: 1, Tag: "streetwear", SoftDelete: active},
			{ID: 2, Tag: "formal", SoftDelete: active},
			{ID: 3, Tag: "casual", SoftDelete: active},
			{ID: 4, Tag: "vintage", SoftDelete: active},
			{ID: 5, Tag: "athleisure", SoftDelete: active},
			{ID: 6, Tag: "ethnic", SoftDelete: active},
		},
	}
}

// Reference installs DefaultReference. Existing rows are left untouched so it
// is safe to run on every start.
func Reference(ctx context.Context, db *gorm.DB) error {
	if err := repository.NewCatalogRepository(db).SeedReference(ctx, DefaultReference()); err != nil {
		return fmt.Errorf("seed reference data: %w", err)
	}
	return nil
}
