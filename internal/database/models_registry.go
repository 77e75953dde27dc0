package database

import "stylmou/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Device{},
		&models.Verification{},
		&models.Category{},
		&models.Tag{},
		&models.Language{},
		&models.UserLanguage{},
		&models.Country{},
		&models.Post{},
		&models.PostImage{},
		&models.PostTag{},
		&models.Follow{},
		&models.Like{},
		&models.Notification{},
		&models.ReportPost{},
		&models.ReportProfile{},
		&models.Message{},
		&models.SavedPost{},
		&models.SavedAd{},
		&models.PostComment{},
		&models.PostRating{},
		&models.GroupUser{},
		&models.Blog{},
		&models.ContactMessage{},
	}
}
