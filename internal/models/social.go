package models

import "time"

// FollowStatusAccepted marks an accepted follow request.
const FollowStatusAccepted = "accepted"

// Follow is a directed follow relation.
type Follow struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	FollowedBy  uint   `gorm:"not null;index" json:"followed_by"`
	FollowingTo uint   `gorm:"not null;index" json:"following_to"`
	Status      string `gorm:"size:16;not null;default:pending" json:"status"`
	IsFollow    bool   `gorm:"not null;default:false" json:"is_follow"`
	SoftDelete
	CreatedAt time.Time `json:"created_at"`
}

func (Follow) TableName() string { return "tbl_follow" }

// Like is a like on a post image.
type Like struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	UserID  uint `gorm:"not null;index" json:"user_id"`
	ImageID uint `gorm:"not null;index" json:"image_id"`
	SoftDelete
	CreatedAt time.Time `json:"created_at"`
}

func (Like) TableName() string { return "tbl_likes" }

type Notification struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	UserID  uint   `gorm:"not null;index" json:"user_id"`
	Message string `json:"message"`
	SoftDelete
	CreatedAt time.Time `json:"created_at"`
}

func (Notification) TableName() string { return "tbl_notifications" }

type ReportPost struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"not null;index" json:"user_id"`
	PostID uint   `gorm:"not null;index" json:"post_id"`
	Reason string `json:"reason"`
	SoftDelete
	CreatedAt time.Time `json:"created_at"`
}

func (ReportPost) TableName() string { return "tbl_report_posts" }

type ReportProfile struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	ReporterID uint   `gorm:"not null;index" json:"reporter_id"`
	ReportedID uint   `gorm:"not null;index" json:"reported_id"`
	Reason     string `json:"reason"`
	SoftDelete
	CreatedAt time.Time `json:"created_at"`
}

func (ReportProfile) TableName() string { return "tbl_report_profiles" }

// Message is a direct message between two users.
type Message struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	UserID1 uint   `gorm:"column:user_id1;not null;index" json:"user_id1"`
	UserID2 uint   `gorm:"column:user_id2;not null;index" json:"user_id2"`
	Body    string `gorm:"type:text" json:"body"`
	SoftDelete
	CreatedAt time.Time `json:"created_at"`
}

func (Message) TableName() string { return "tbl_messages" }

type SavedPost struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	UserID  uint `gorm:"not null;index" json:"user_id"`
	PostID  uint `gorm:"not null;index" json:"post_id"`
	IsSaved bool `gorm:"not null;default:true" json:"is_saved"`
	SoftDelete
	CreatedAt time.Time `json:"created_at"`
}

func (SavedPost) TableName() string { return "tbl_saved_posts" }

type SavedAd struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`
	PostID uint `gorm:"not null;index" json:"post_id"`
	SoftDelete
	CreatedAt time.Time `json:"created_at"`
}

func (SavedAd) TableName() string { return "tbl_saved_ads" }

type PostComment struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	UserID  uint   `gorm:"not null;index" json:"user_id"`
	PostID  uint   `gorm:"not null;index" json:"post_id"`
	Comment string `gorm:"type:text" json:"comment"`
	SoftDelete
	CreatedAt time.Time `json:"created_at"`
}

func (PostComment) TableName() string { return "tbl_post_comments" }

type PostRating struct {
	ID     uint    `gorm:"primaryKey" json:"id"`
	UserID uint    `gorm:"not null;index" json:"user_id"`
	PostID uint    `gorm:"not null;index" json:"post_id"`
	Rating float64 `gorm:"not null" json:"rating"`
	SoftDelete
	CreatedAt time.Time `json:"created_at"`
}

func (PostRating) TableName() string { return "tbl_post_ratings" }

// GroupUser is a user's membership in a group.
type GroupUser struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	UserID  uint `gorm:"not null;index" json:"user_id"`
	GroupID uint `gorm:"not null;index" json:"group_id"`
	SoftDelete
	CreatedAt time.Time `json:"created_at"`
}

func (GroupUser) TableName() string { return "tbl_group_users" }
