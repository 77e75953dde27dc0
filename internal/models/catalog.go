package models

import "time"

// Category groups posts; the feed recognises ids 1 to 3.
type Category struct {
	ID       uint   `gorm:"primaryKey" json:"category_id"`
	Category string `gorm:"size:64;not null" json:"category_name"`
	Logo     string `json:"category_logo"`
	SoftDelete
}

func (Category) TableName() string { return "tbl_categories" }

type Tag struct {
	ID  uint   `gorm:"primaryKey" json:"id"`
	Tag string `gorm:"size:64;not null;uniqueIndex" json:"tag"`
	SoftDelete
}

func (Tag) TableName() string { return "tbl_tags" }

type Language struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:64;not null" json:"name"`
	Code string `gorm:"size:8;not null;uniqueIndex" json:"code"`
	SoftDelete
}

func (Language) TableName() string { return "tbl_languages" }

// UserLanguage is the single language preference of a user.
type UserLanguage struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	UserID     uint `gorm:"not null;uniqueIndex" json:"user_id"`
	LanguageID uint `gorm:"not null" json:"language_id"`
	SoftDelete
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (UserLanguage) TableName() string { return "tbl_user_languages" }

type Country struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	CountryCode string `gorm:"size:8;not null;uniqueIndex" json:"country_code"`
	Name        string `gorm:"size:64;not null" json:"name"`
}

func (Country) TableName() string { return "tbl_countries" }

// Blog is a long-form article written by a user.
type Blog struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	UserID      uint   `gorm:"not null;index" json:"user_id"`
	BlogImage   string `json:"blog_image"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	SoftDelete
	CreatedAt time.Time `json:"created_at"`
}

func (Blog) TableName() string { return "blogs" }

// ContactMessage is a contact-us form submission.
type ContactMessage struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FullName    string    `gorm:"not null" json:"full_name"`
	Email       string    `gorm:"not null" json:"email"`
	Subject     string    `json:"subject"`
	Description string    `gorm:"type:text;not null" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func (ContactMessage) TableName() string { return "contect_us" }
