package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"stylmou/internal/models"
	"stylmou/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// verificationRepoStub is a stub for repository.VerificationRepository.
type verificationRepoStub struct {
	createFn          func(context.Context, *models.Verification) error
	findLatestValidFn func(context.Context, uint, string, string, time.Time) (*models.Verification, error)
	consumeFn         func(context.Context, uint, time.Time) (int64, error)
	refreshLatestFn   func(context.Context, uint, string, string, string) (int64, error)
}

func (s *verificationRepoStub) Create(ctx context.Context, v *models.Verification) error {
	return s.createFn(ctx, v)
}
func (s *verificationRepoStub) FindLatestValid(ctx context.Context, userID uint, otp, action string, since time.Time) (*models.Verification, error) {
	return s.findLatestValidFn(ctx, userID, otp, action, since)
}
func (s *verificationRepoStub) Consume(ctx context.Context, id uint, at time.Time) (int64, error) {
	return s.consumeFn(ctx, id, at)
}
func (s *verificationRepoStub) RefreshLatest(ctx context.Context, userID uint, token, action, verifyWith string) (int64, error) {
	return s.refreshLatestFn(ctx, userID, token, action, verifyWith)
}

func noopVerificationRepo() *verificationRepoStub {
	return &verificationRepoStub{
		createFn: func(_ context.Context, v *models.Verification) error {
			v.ID = 1
			return nil
		},
		findLatestValidFn: func(_ context.Context, _ uint, _, _ string, _ time.Time) (*models.Verification, error) {
			return nil, models.NewNotFoundMessage("Invalid or expired OTP.")
		},
		consumeFn:       func(_ context.Context, _ uint, _ time.Time) (int64, error) { return 1, nil },
		refreshLatestFn: func(_ context.Context, _ uint, _, _, _ string) (int64, error) { return 1, nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn            func(context.Context, uint) (*models.User, error)
	getByIdentifierFn    func(context.Context, string) (*models.User, error)
	getByEmailOrMobileFn func(context.Context, string, string) (*models.User, error)
	existsByUsernameFn   func(context.Context, string) (bool, error)
	createFn             func(context.Context, *models.User) error
	createDeviceFn       func(context.Context, *models.Device) error
	updatePasswordFn     func(context.Context, uint, string) error
	setActiveFn          func(context.Context, uint, bool) error
	updateProfileFn      func(context.Context, uint, repository.ProfileUpdate) error
	profileFn            func(context.Context, uint, uint) (*models.UserProfile, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	return s.getByIdentifierFn(ctx, identifier)
}
func (s *userRepoStub) GetByEmailOrMobile(ctx context.Context, email, mobile string) (*models.User, error) {
	return s.getByEmailOrMobileFn(ctx, email, mobile)
}
func (s *userRepoStub) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return s.existsByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) CreateDevice(ctx context.Context, device *models.Device) error {
	return s.createDeviceFn(ctx, device)
}
func (s *userRepoStub) UpdatePassword(ctx context.Context, id uint, hash string) error {
	return s.updatePasswordFn(ctx, id, hash)
}
func (s *userRepoStub) SetActive(ctx context.Context, id uint, active bool) error {
	return s.setActiveFn(ctx, id, active)
}
func (s *userRepoStub) UpdateProfile(ctx context.Context, id uint, update repository.ProfileUpdate) error {
	return s.updateProfileFn(ctx, id, update)
}
func (s *userRepoStub) Profile(ctx context.Context, id, viewerID uint) (*models.UserProfile, error) {
	return s.profileFn(ctx, id, viewerID)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:            func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByIdentifierFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, models.NewNotFoundMessage("User not found") },
		getByEmailOrMobileFn: func(_ context.Context, _, _ string) (*models.User, error) { return nil, nil },
		existsByUsernameFn:   func(_ context.Context, _ string) (bool, error) { return false, nil },
		createFn: func(_ context.Context, u *models.User) error {
			u.ID = 1
			return nil
		},
		createDeviceFn:   func(_ context.Context, _ *models.Device) error { return nil },
		updatePasswordFn: func(_ context.Context, _ uint, _ string) error { return nil },
		setActiveFn:      func(_ context.Context, _ uint, _ bool) error { return nil },
		updateProfileFn:  func(_ context.Context, _ uint, _ repository.ProfileUpdate) error { return nil },
		profileFn: func(_ context.Context, id, _ uint) (*models.UserProfile, error) {
			return &models.UserProfile{ID: id}, nil
		},
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn       func(context.Context, *models.Post) error
	addImageFn     func(context.Context, *models.PostImage) error
	addTagFn       func(context.Context, *models.PostTag) error
	getByIDFn      func(context.Context, uint) (*models.Post, error)
	listFn         func(context.Context, repository.FeedFilter) ([]*models.Post, error)
	stylesFn       func(context.Context) ([]string, error)
	imageRatingsFn func(context.Context, uint) ([]models.ImageRating, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) AddImage(ctx context.Context, image *models.PostImage) error {
	return s.addImageFn(ctx, image)
}
func (s *postRepoStub) AddTag(ctx context.Context, tag *models.PostTag) error {
	return s.addTagFn(ctx, tag)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context, filter repository.FeedFilter) ([]*models.Post, error) {
	return s.listFn(ctx, filter)
}
func (s *postRepoStub) Styles(ctx context.Context) ([]string, error) {
	return s.stylesFn(ctx)
}
func (s *postRepoStub) ImageRatings(ctx context.Context, postID uint) ([]models.ImageRating, error) {
	return s.imageRatingsFn(ctx, postID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, p *models.Post) error {
			p.ID = 10
			return nil
		},
		addImageFn:     func(_ context.Context, _ *models.PostImage) error { return nil },
		addTagFn:       func(_ context.Context, _ *models.PostTag) error { return nil },
		getByIDFn:      func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id, UserID: 1}, nil },
		listFn:         func(_ context.Context, _ repository.FeedFilter) ([]*models.Post, error) { return nil, nil },
		stylesFn:       func(_ context.Context) ([]string, error) { return nil, nil },
		imageRatingsFn: func(_ context.Context, _ uint) ([]models.ImageRating, error) { return nil, nil },
	}
}

// cascadeRepoStub is a stub for repository.CascadeRepository.
type cascadeRepoStub struct {
	softDeleteUserFn func(context.Context, uint, time.Time) (int64, error)
	applyFn          func(context.Context, repository.CascadeStep, uint, time.Time) (int64, error)
	followPeersFn    func(context.Context, uint) ([]uint, error)
}

func (s *cascadeRepoStub) SoftDeleteUser(ctx context.Context, userID uint, at time.Time) (int64, error) {
	return s.softDeleteUserFn(ctx, userID, at)
}
func (s *cascadeRepoStub) Apply(ctx context.Context, step repository.CascadeStep, id uint, at time.Time) (int64, error) {
	return s.applyFn(ctx, step, id, at)
}
func (s *cascadeRepoStub) FollowPeers(ctx context.Context, userID uint) ([]uint, error) {
	return s.followPeersFn(ctx, userID)
}

func noopCascadeRepo() *cascadeRepoStub {
	return &cascadeRepoStub{
		softDeleteUserFn: func(_ context.Context, _ uint, _ time.Time) (int64, error) { return 1, nil },
		applyFn:          func(_ context.Context, _ repository.CascadeStep, _ uint, _ time.Time) (int64, error) { return 0, nil },
		followPeersFn:    func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
	}
}

// catalogRepoStub is a stub for repository.CatalogRepository.
type catalogRepoStub struct {
	categoriesFn      func(context.Context) ([]models.Category, error)
	languagesFn       func(context.Context) ([]models.Language, error)
	languageExistsFn  func(context.Context, uint) (bool, error)
	setUserLanguageFn func(context.Context, uint, uint) error
	countryIDByCodeFn func(context.Context, string) (*uint, error)
	seedReferenceFn   func(context.Context, repository.Reference) error
}

func (s *catalogRepoStub) Categories(ctx context.Context) ([]models.Category, error) {
	return s.categoriesFn(ctx)
}
func (s *catalogRepoStub) Languages(ctx context.Context) ([]models.Language, error) {
	return s.languagesFn(ctx)
}
func (s *catalogRepoStub) LanguageExists(ctx context.Context, id uint) (bool, error) {
	return s.languageExistsFn(ctx, id)
}
func (s *catalogRepoStub) SetUserLanguage(ctx context.Context, userID, languageID uint) error {
	return s.setUserLanguageFn(ctx, userID, languageID)
}
func (s *catalogRepoStub) CountryIDByCode(ctx context.Context, code string) (*uint, error) {
	return s.countryIDByCodeFn(ctx, code)
}
func (s *catalogRepoStub) SeedReference(ctx context.Context, ref repository.Reference) error {
	return s.seedReferenceFn(ctx, ref)
}

func noopCatalogRepo() *catalogRepoStub {
	return &catalogRepoStub{
		categoriesFn:      func(_ context.Context) ([]models.Category, error) { return nil, nil },
		languagesFn:       func(_ context.Context) ([]models.Language, error) { return nil, nil },
		languageExistsFn:  func(_ context.Context, _ uint) (bool, error) { return true, nil },
		setUserLanguageFn: func(_ context.Context, _, _ uint) error { return nil },
		countryIDByCodeFn: func(_ context.Context, _ string) (*uint, error) {
			id := uint(91)
			return &id, nil
		},
		seedReferenceFn: func(_ context.Context, _ repository.Reference) error { return nil },
	}
}

// contentRepoStub is a stub for repository.ContentRepository.
type contentRepoStub struct {
	createBlogFn           func(context.Context, *models.Blog) error
	createContactMessageFn func(context.Context, *models.ContactMessage) error
}

func (s *contentRepoStub) CreateBlog(ctx context.Context, blog *models.Blog) error {
	return s.createBlogFn(ctx, blog)
}
func (s *contentRepoStub) CreateContactMessage(ctx context.Context, msg *models.ContactMessage) error {
	return s.createContactMessageFn(ctx, msg)
}

// unitOfWorkStub runs fn directly and records that a transaction was requested.
type unitOfWorkStub struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (u *unitOfWorkStub) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	u.mu.Lock()
	u.calls++
	u.mu.Unlock()
	if err := fn(ctx); err != nil {
		return err
	}
	return u.err
}

// eventsStub records published events.
type eventsStub struct {
	mu     sync.Mutex
	events []string
}

func (e *eventsStub) record(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, name)
	return nil
}

func (e *eventsStub) PublishPostCreated(context.Context, uint, uint) error {
	return e.record("post.created")
}
func (e *eventsStub) PublishPostDeleted(context.Context, uint, uint) error {
	return e.record("post.deleted")
}
func (e *eventsStub) PublishAccountDeleted(context.Context, uint) error {
	return e.record("account.deleted")
}

// callLog records the order of sub-writes across goroutines.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(call string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, call)
}

func (l *callLog) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

// zeroReader makes crypto/rand.Int deterministic: every draw is zero.
type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

var errStore = errors.New("store unavailable")

func assertAppError(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppError(t, err, "VALIDATION_ERROR")
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	assertAppError(t, err, "NOT_FOUND")
}

func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	assertAppError(t, err, "UNAUTHORIZED")
}
