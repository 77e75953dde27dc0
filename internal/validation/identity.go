// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	mobileRegex   = regexp.MustCompile(`^\+?[0-9]{3,15}$`)
	dobRegex      = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ValidateUsername checks if a username meets requirements
func ValidateUsername(username string) error {
	if len(username) < 3 {
		return fmt.Errorf("username must be at least 3 characters long")
	}

	if len(username) > 30 {
		return fmt.Errorf("username must not exceed 30 characters")
	}

	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username can only contain letters, numbers, dots, underscores, and hyphens")
	}

	return nil
}

// ValidateEmail checks basic email format
func ValidateEmail(email string) error {
	if len(email) > 254 {
		return fmt.Errorf("email must not exceed 254 characters")
	}

	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}

	return nil
}

// ValidateMobile accepts 3 to 15 digits with an optional leading plus.
func ValidateMobile(mobile string) error {
	if !mobileRegex.MatchString(mobile) {
		return fmt.Errorf("mobile must contain 3 to 15 digits")
	}
	return nil
}

// ValidateDOB checks the YYYY-MM-DD shape of a date of birth.
func ValidateDOB(dob string) error {
	if !dobRegex.MatchString(dob) {
		return fmt.Errorf("dob must be formatted as YYYY-MM-DD")
	}
	return nil
}

// ValidateVerifyWith accepts the E (email) and M (mobile) channel markers.
func ValidateVerifyWith(v string) error {
	switch v {
	case "E", "M":
		return nil
	}
	return fmt.Errorf("Invalid verify_with value. Use 'E' for Email or 'M' for Mobile.")
}

// ValidateLoginType accepts normal, google and facebook.
func ValidateLoginType(loginType string) error {
	switch strings.ToLower(loginType) {
	case "normal", "google", "facebook":
		return nil
	}
	return fmt.Errorf("login_type must be normal, google or facebook")
}

// IsSocialLogin reports whether loginType requires a social id.
func IsSocialLogin(loginType string) bool {
	switch strings.ToLower(loginType) {
	case "google", "facebook":
		return true
	}
	return false
}
