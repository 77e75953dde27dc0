package models

import (
	"time"
)

// Post styles used by the feed endpoints.
const (
	StyleCompare = "ToStylCompare"
	StyleVideo   = "ToStylVideo"
)

// Attachment types stored in PostImage.Type.
const (
	MediaTypeImage = "Image"
	MediaTypeVideo = "Video"
)

// Post represents a post and its attachments.
type Post struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	UserID         uint        `gorm:"not null;index" json:"user_id"`
	User           *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Description    string      `gorm:"type:text;not null" json:"description"`
	CategoriesID   uint        `gorm:"column:categories_id;not null;index" json:"categories_id"`
	Category       *Category   `gorm:"foreignKey:CategoriesID" json:"category,omitempty"`
	Style          string      `gorm:"size:64;not null;index" json:"style"`
	StyleThumbnail string      `json:"style_thumbnail,omitempty"`
	ExpiringOn     time.Time   `gorm:"not null;index" json:"expiring_on"`
	TotalComments  int         `gorm:"not null;default:0" json:"total_comments"`
	AvgRating      float64     `gorm:"not null;default:0" json:"avg_rating"`
	Images         []PostImage `gorm:"foreignKey:PostID" json:"images,omitempty"`
	Tags           []PostTag   `gorm:"foreignKey:PostID" json:"tags,omitempty"`
	SoftDelete
	CreatedAt time.Time `json:"created_at"`
}

func (Post) TableName() string { return "tbl_posts" }

// PostImage is an image or video attached to a post.
type PostImage struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	PostID        uint   `gorm:"not null;index" json:"post_id"`
	Type          string `gorm:"size:16;not null;default:Image" json:"type"`
	Image         string `gorm:"not null" json:"image"`
	VideoDuration *int   `json:"video_duration,omitempty"`
	SoftDelete
	CreatedAt time.Time `json:"created_at"`
}

func (PostImage) TableName() string { return "tbl_post_images" }

// PostTag associates a post with a tag.
type PostTag struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	PostID uint `gorm:"not null;index" json:"post_id"`
	TagID  uint `gorm:"not null;index" json:"tag_id"`
	Tag    *Tag `gorm:"foreignKey:TagID" json:"tag,omitempty"`
	SoftDelete
	CreatedAt time.Time `json:"created_at"`
}

func (PostTag) TableName() string { return "tbl_post_tags" }

// ImageRating is the like count of one image of an expired post.
type ImageRating struct {
	Image     string `json:"image"`
	LikeCount int64  `json:"like_count"`
}
