package cache

import (
	"fmt"
	"time"
)

const (
	CategoriesKey     = "catalog:categories"
	LanguagesKey      = "catalog:languages"
	StylesKey         = "catalog:styles"
	ProfileKeyPattern = "user:%d:profile"
)

const (
	CatalogTTL = 30 * time.Minute
	ProfileTTL = 5 * time.Minute
)

func ProfileKey(userID uint) string {
	return fmt.Sprintf(ProfileKeyPattern, userID)
}
