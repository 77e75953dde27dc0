package server

import (
	"net/http"
	"testing"

	"stylmou/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignUpThenVerifyOTP(t *testing.T) {
	app, _ := newTestApp(t)

	status, env := doJSON(t, app, http.MethodPost, "/v1/user/signUp", signUpBody("alice", "a@x.io", "1555"))
	require.Equal(t, http.StatusOK, status, env.Error)
	assert.Equal(t, "User registered successfully. OTP sent.", env.Message)
	assert.JSONEq(t, "200", string(env.Code))

	var signed struct {
		UserID         uint   `json:"userId"`
		VerificationID uint   `json:"verificationId"`
		OTP            string `json:"otp"`
		Token          string `json:"token"`
	}
	decodeData(t, env, &signed)
	require.NotZero(t, signed.UserID)
	assert.NotZero(t, signed.VerificationID)
	assert.Len(t, signed.OTP, 4)
	assert.Len(t, signed.Token, 32)

	verify := map[string]interface{}{"userId": signed.UserID, "otp": signed.OTP, "action": models.ActionSignUp}
	status, env = doJSON(t, app, http.MethodPost, "/v1/user/verifyOtp", verify)
	require.Equal(t, http.StatusOK, status, env.Error)
	assert.Equal(t, "OTP verified successfully.", env.Message)

	// A consumed verification cannot be used twice.
	status, env = doJSON(t, app, http.MethodPost, "/v1/user/verifyOtp", verify)
	assert.Equal(t, http.StatusNotFound, status)
	assert.JSONEq(t, `"`+models.ErrCodeNotFound+`"`, string(env.Code))
}

func TestSignUp_DuplicateIdentity(t *testing.T) {
	app, _ := newTestApp(t)

	status, _ := doJSON(t, app, http.MethodPost, "/v1/user/signUp", signUpBody("alice", "a@x.io", "1555"))
	require.Equal(t, http.StatusOK, status)

	tests := []struct {
		name string
		body map[string]interface{}
		want string
	}{
		{"email", signUpBody("bob", "a@x.io", "1666"), "Email is already registered."},
		{"mobile", signUpBody("bob", "b@x.io", "1555"), "Mobile number is already registered."},
		{"both", signUpBody("bob", "A@X.io", "1555"), "Both email and mobile are already registered."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := doJSON(t, app, http.MethodPost, "/v1/user/signUp", tt.body)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, tt.want, env.Error)
			assert.JSONEq(t, `"`+models.ErrCodeValidation+`"`, string(env.Code))
		})
	}
}

func TestSignUp_InvalidBody(t *testing.T) {
	app, _ := newTestApp(t)

	status, env := doJSON(t, app, http.MethodPost, "/v1/user/signUp", "not an object")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid request body", env.Error)
}

func TestVerifyOTP_MissingFields(t *testing.T) {
	app, _ := newTestApp(t)

	status, env := doJSON(t, app, http.MethodPost, "/v1/user/verifyOtp", map[string]interface{}{"userId": 1})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.NotEmpty(t, env.Error)
}

func TestLogin(t *testing.T) {
	app, _ := newTestApp(t)

	status, _ := doJSON(t, app, http.MethodPost, "/v1/user/signUp", signUpBody("alice", "a@x.io", "1555"))
	require.Equal(t, http.StatusOK, status)

	status, env := doJSON(t, app, http.MethodPost, "/v1/user/login", map[string]interface{}{
		"identifier": "a@x.io", "password": "p1", "action": models.ActionLogin, "verify_with": "E",
	})
	require.Equal(t, http.StatusOK, status, env.Error)
	assert.Equal(t, "Login successful", env.Message)

	var logged struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	decodeData(t, env, &logged)
	assert.Len(t, logged.Token, 32)
	assert.Equal(t, "a@x.io", logged.User.Email)

	status, _ = doJSON(t, app, http.MethodPost, "/v1/user/login", map[string]interface{}{
		"identifier": "a@x.io", "password": "wrong", "action": models.ActionLogin, "verify_with": "E",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestResendOTP_OmitsToken(t *testing.T) {
	app, _ := newTestApp(t)

	_, env := doJSON(t, app, http.MethodPost, "/v1/user/signUp", signUpBody("alice", "a@x.io", "1555"))
	var signed struct {
		UserID uint `json:"userId"`
	}
	decodeData(t, env, &signed)

	status, env := doJSON(t, app, http.MethodPost, "/v1/user/resendOtp", map[string]interface{}{
		"userId": signed.UserID, "action": models.ActionSignUp, "verifyWith": "E",
	})
	require.Equal(t, http.StatusOK, status, env.Error)

	var data map[string]interface{}
	decodeData(t, env, &data)
	assert.Contains(t, data, "otp")
	assert.Contains(t, data, "verificationId")
	assert.NotContains(t, data, "token")
}
