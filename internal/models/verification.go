package models

import "time"

// Verification actions issued by the account flows. Callers may pass other values.
const (
	ActionSignUp = "SignUp"
	ActionLogin  = "Login"
	ActionForget = "Forget"
)

// Verify-with channel markers.
const (
	VerifyWithEmail  = "E"
	VerifyWithMobile = "M"
)

// Verification is one issued OTP and token pair.
type Verification struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	UserID     uint   `gorm:"not null;index:idx_verification_lookup,priority:1" json:"user_id"`
	OTP        string `gorm:"column:otp;size:4;not null;index:idx_verification_lookup,priority:2" json:"-"`
	Token      string `gorm:"size:191" json:"-"`
	Action     string `gorm:"size:32;not null;index:idx_verification_lookup,priority:3" json:"action"`
	VerifyWith string `gorm:"size:191" json:"verify_with"`
	SoftDelete
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

func (Verification) TableName() string { return "tbl_verifications" }
