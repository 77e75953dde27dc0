// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Login types accepted at sign-up.
const (
	LoginTypeNormal   = "normal"
	LoginTypeGoogle   = "google"
	LoginTypeFacebook = "facebook"
)

// SoftDelete is the active/deleted flag pair every table carries.
type SoftDelete struct {
	IsActive  bool       `gorm:"not null;default:true" json:"is_active"`
	IsDeleted bool       `gorm:"not null;default:false" json:"-"`
	DeletedAt *time.Time `json:"-"`
}

// User represents an account.
type User struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Username       string `gorm:"size:64;not null;index" json:"username"`
	Fullname       string `gorm:"size:128" json:"fullname"`
	Email          string `gorm:"size:191;not null;index" json:"email"`
	Mobile         string `gorm:"size:32;not null;index" json:"mobile"`
	Password       string `gorm:"not null" json:"-"`
	ProfileImage   string `json:"profile_image"`
	Bio            string `gorm:"type:text" json:"bio"`
	DOB            string `gorm:"column:dob;size:16" json:"dob"`
	LoginType      string `gorm:"size:16;not null;default:normal" json:"login_type"`
	SocialID       string `gorm:"size:191" json:"social_id,omitempty"`
	CountryID      *uint  `json:"country_id,omitempty"`
	TotalFollowers int    `gorm:"not null;default:0" json:"total_followers"`
	TotalFollowing int    `gorm:"not null;default:0" json:"total_following"`
	TotalRetreate  int    `gorm:"not null;default:0" json:"total_retreate"`
	TotalMyRatings int    `gorm:"not null;default:0" json:"total_my_ratings"`
	SoftDelete
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string { return "tbl_users" }

// Device stores the client a user signed up from.
type Device struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	UserID      uint   `gorm:"not null;index" json:"user_id"`
	DeviceType  string `gorm:"size:32" json:"device_type"`
	DeviceToken string `json:"device_token"`
	OSVersion   string `gorm:"size:32" json:"os_version"`
	AppVersion  string `gorm:"size:32" json:"app_version"`
	SoftDelete
	CreatedAt time.Time `json:"created_at"`
}

func (Device) TableName() string { return "tbl_device" }

// UserProfile is the profile projection with follow counters.
type UserProfile struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	Fullname       string `json:"fullname"`
	ProfileImage   string `json:"profile_image"`
	Bio            string `json:"bio"`
	TotalFollowers int64  `json:"total_followers"`
	TotalFollowing int64  `json:"total_following"`
	TotalRetreate  int    `json:"total_retreate"`
	TotalMyRatings int    `json:"total_my_ratings"`
	IsFollow       *bool  `json:"is_follow,omitempty"`
}
