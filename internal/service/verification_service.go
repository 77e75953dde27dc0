package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"stylmou/internal/middleware"
	"stylmou/internal/models"
	"stylmou/internal/observability"
	"stylmou/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// TokenAlphabet is the character set verification tokens are drawn from.
const TokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz@123456789"

const (
	DefaultOTPTTL      = 5 * time.Minute
	DefaultTokenLength = 40
	otpSpace           = 10000
)

// IssuedVerification is returned to the caller after an OTP is issued.
type IssuedVerification struct {
	VerificationID uint   `json:"verificationId"`
	OTP            string `json:"otp"`
	Token          string `json:"token"`
}

// VerifiedChallenge describes a successfully consumed OTP.
type VerifiedChallenge struct {
	UserID uint   `json:"userId"`
	OTP    string `json:"otp"`
	Action string `json:"action"`
}

// VerificationService owns the OTP and token lifecycle.
type VerificationService struct {
	repo        repository.VerificationRepository
	ttl         time.Duration
	tokenLength int
	now         func() time.Time
	random      io.Reader
}

// VerificationOption customizes a VerificationService.
type VerificationOption func(*VerificationService)

// WithClock replaces time.Now as the source of issue and expiry times.
func WithClock(now func() time.Time) VerificationOption {
	return func(s *VerificationService) { s.now = now }
}

// WithRandom replaces crypto/rand as the source of OTP and token randomness.
func WithRandom(r io.Reader) VerificationOption {
	return func(s *VerificationService) { s.random = r }
}

func NewVerificationService(repo repository.VerificationRepository, ttl time.Duration, tokenLength int, opts ...VerificationOption) *VerificationService {
	if ttl <= 0 {
		ttl = DefaultOTPTTL
	}
	if tokenLength <= 0 {
		tokenLength = DefaultTokenLength
	}
	s := &VerificationService{
		repo:        repo,
		ttl:         ttl,
		tokenLength: tokenLength,
		now:         time.Now,
		random:      rand.Reader,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue generates an OTP and token for (userID, action) and records them as active.
func (s *VerificationService) Issue(ctx context.Context, userID uint, action, verifyWith string) (_ *IssuedVerification, err error) {
	ctx, span := observability.StartSpan(ctx, "verification", "issue", attribute.String("action", action))
	defer func() { observability.EndSpan(span, err) }()

	if userID == 0 || strings.TrimSpace(action) == "" {
		return nil, models.NewValidationError("userId and action are required.")
	}

	otp, err := s.GenerateOTP()
	if err != nil {
		return nil, models.NewOperationError(err)
	}
	token, err := s.GenerateToken()
	if err != nil {
		return nil, models.NewOperationError(err)
	}

	record := &models.Verification{
		UserID:     userID,
		OTP:        otp,
		Token:      token,
		Action:     action,
		VerifyWith: verifyWith,
		SoftDelete: models.SoftDelete{IsActive: true},
		CreatedAt:  s.now(),
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}

	observability.VerificationsIssued.WithLabelValues(action).Inc()
	middleware.Logger.InfoContext(ctx, "verification issued",
		slog.Uint64("user_id", uint64(userID)),
		slog.String("action", action),
		slog.Uint64("verification_id", uint64(record.ID)),
	)

	return &IssuedVerification{VerificationID: record.ID, OTP: otp, Token: token}, nil
}

// Verify consumes the newest live OTP matching (userID, otp, action).
// Wrong, expired and already-consumed codes are all NotFound.
func (s *VerificationService) Verify(ctx context.Context, userID uint, otp, action string) (_ *VerifiedChallenge, err error) {
	ctx, span := observability.StartSpan(ctx, "verification", "verify", attribute.String("action", action))
	defer func() { observability.EndSpan(span, err) }()

	if userID == 0 || otp == "" || action == "" {
		return nil, models.NewValidationError("userId, otp, and action are required.")
	}

	outcome := "error"
	defer func() { observability.VerificationAttempts.WithLabelValues(action, outcome).Inc() }()

	now := s.now()
	record, err := s.repo.FindLatestValid(ctx, userID, otp, action, now.Add(-s.ttl))
	if err != nil {
		if models.IsNotFound(err) {
			outcome = "rejected"
		}
		return nil, err
	}

	affected, err := s.repo.Consume(ctx, record.ID, now)
	if err != nil {
		return nil, err
	}
	if affected != 1 {
		outcome = "lost_race"
		middleware.Logger.WarnContext(ctx, "verification consumed concurrently",
			slog.Uint64("verification_id", uint64(record.ID)),
			slog.Int64("rows_affected", affected),
		)
		return nil, models.NewNotFoundMessage("Invalid or expired OTP.")
	}

	outcome = "consumed"
	return &VerifiedChallenge{UserID: userID, OTP: otp, Action: action}, nil
}

// RefreshLoginChallenge rewrites the token, action and channel of the user's most recent verification.
func (s *VerificationService) RefreshLoginChallenge(ctx context.Context, userID uint, token, action, verifyWith string) (err error) {
	ctx, span := observability.StartSpan(ctx, "verification", "refresh", attribute.String("action", action))
	defer func() { observability.EndSpan(span, err) }()

	affected, err := s.repo.RefreshLatest(ctx, userID, token, action, verifyWith)
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.NewNotFoundMessage("No verification found for user.")
	}
	return nil
}

// GenerateOTP draws a four digit code uniformly from 0000-9999.
func (s *VerificationService) GenerateOTP() (string, error) {
	n, err := rand.Int(s.random, big.NewInt(otpSpace))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}

// GenerateToken draws a token of the configured length from TokenAlphabet.
func (s *VerificationService) GenerateToken() (string, error) {
	size := big.NewInt(int64(len(TokenAlphabet)))
	var b strings.Builder
	b.Grow(s.tokenLength)
	for i := 0; i < s.tokenLength; i++ {
		n, err := rand.Int(s.random, size)
		if err != nil {
			return "", fmt.Errorf("generate token: %w", err)
		}
		b.WriteByte(TokenAlphabet[n.Int64()])
	}
	return b.String(), nil
}
