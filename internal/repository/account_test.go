package repository

import (
	"context"
	"testing"
	"time"

	"stylmou/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAccountCascadePlan_Order(t *testing.T) {
	var tables []string
	for _, step := range AccountCascadePlan() {
		tables = append(tables, step.Table)
	}

	assert.Equal(t, []string{
		"tbl_post_images",
		"tbl_post_tags",
		"tbl_posts",
		"tbl_likes",
		"tbl_follow",
		"tbl_notifications",
		"tbl_report_posts",
		"tbl_report_profiles",
		"tbl_messages",
		"tbl_saved_posts",
		"tbl_saved_ads",
		"tbl_post_comments",
		"tbl_post_ratings",
		"tbl_user_languages",
		"tbl_group_users",
	}, tables)
}

func TestAccountCascadePlan_ReturnsCopy(t *testing.T) {
	plan := AccountCascadePlan()
	plan[0].Table = "mutated"
	assert.Equal(t, "tbl_post_images", AccountCascadePlan()[0].Table)
}

type cascadeFixture struct {
	user, other      models.User
	post, otherPost  models.Post
	image, otherImg  models.PostImage
	message, foreign models.Message
}

func seedCascadeFixture(t *testing.T, db *gorm.DB) cascadeFixture {
	t.Helper()
	var f cascadeFixture

	f.user = models.User{Username: "alice", Email: "a@x.com", Mobile: "555", Password: "h"}
	f.other = models.User{Username: "bob", Email: "b@x.com", Mobile: "556", Password: "h"}
	require.NoError(t, db.Create(&f.user).Error)
	require.NoError(t, db.Create(&f.other).Error)

	f.post = models.Post{UserID: f.user.ID, Description: "mine", CategoriesID: 1, Style: models.StyleCompare, ExpiringOn: ledgerNow}
	f.otherPost = models.Post{UserID: f.other.ID, Description: "theirs", CategoriesID: 1, Style: models.StyleCompare, ExpiringOn: ledgerNow}
	require.NoError(t, db.Omit("User", "Category", "Images", "Tags").Create(&f.post).Error)
	require.NoError(t, db.Omit("User", "Category", "Images", "Tags").Create(&f.otherPost).Error)

	f.image = models.PostImage{PostID: f.post.ID, Type: models.MediaTypeImage, Image: "https://cdn/1.jpg"}
	f.otherImg = models.PostImage{PostID: f.otherPost.ID, Type: models.MediaTypeImage, Image: "https://cdn/2.jpg"}
	require.NoError(t, db.Create(&f.image).Error)
	require.NoError(t, db.Create(&f.otherImg).Error)

	require.NoError(t, db.Create(&models.PostTag{PostID: f.post.ID, TagID: 1}).Error)
	require.NoError(t, db.Create(&models.Like{UserID: f.user.ID, ImageID: f.otherImg.ID}).Error)
	require.NoError(t, db.Create(&models.Follow{FollowedBy: f.other.ID, FollowingTo: f.user.ID, Status: models.FollowStatusAccepted}).Error)
	require.NoError(t, db.Create(&models.ReportProfile{ReporterID: f.other.ID, ReportedID: f.user.ID}).Error)
	require.NoError(t, db.Create(&models.SavedAd{UserID: f.other.ID, PostID: f.post.ID}).Error)
	require.NoError(t, db.Create(&models.UserLanguage{UserID: f.user.ID, LanguageID: 1}).Error)
	require.NoError(t, db.Create(&models.GroupUser{UserID: f.user.ID, GroupID: 9}).Error)

	f.message = models.Message{UserID1: f.other.ID, UserID2: f.user.ID, Body: "hi"}
	f.foreign = models.Message{UserID1: f.other.ID, UserID2: 999, Body: "unrelated"}
	require.NoError(t, db.Create(&f.message).Error)
	require.NoError(t, db.Create(&f.foreign).Error)
	return f
}

func isDeleted(t *testing.T, db *gorm.DB, table string, id uint) bool {
	t.Helper()
	var row struct {
		IsActive  bool
		IsDeleted bool
	}
	require.NoError(t, db.Table(table).Select("is_active, is_deleted").Where("id = ?", id).Take(&row).Error)
	return row.IsDeleted && !row.IsActive
}

func TestCascadeRepository_AccountPlan(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewCascadeRepository(db)
	ctx := context.Background()
	f := seedCascadeFixture(t, db)
	at := time.Now().UTC()

	n, err := repo.SoftDeleteUser(ctx, f.user.ID, at)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	for _, step := range AccountCascadePlan() {
		_, err := repo.Apply(ctx, step, f.user.ID, at)
		require.NoError(t, err, step.Table)
	}

	assert.True(t, isDeleted(t, db, "tbl_users", f.user.ID))
	assert.True(t, isDeleted(t, db, "tbl_posts", f.post.ID))
	assert.True(t, isDeleted(t, db, "tbl_post_images", f.image.ID))
	assert.True(t, isDeleted(t, db, "tbl_messages", f.message.ID))

	assert.False(t, isDeleted(t, db, "tbl_users", f.other.ID))
	assert.False(t, isDeleted(t, db, "tbl_posts", f.otherPost.ID))
	assert.False(t, isDeleted(t, db, "tbl_post_images", f.otherImg.ID))
	assert.False(t, isDeleted(t, db, "tbl_messages", f.foreign.ID))

	for _, table := range []string{"tbl_post_tags", "tbl_likes", "tbl_follow", "tbl_report_profiles", "tbl_saved_ads", "tbl_user_languages", "tbl_group_users"} {
		var live int64
		require.NoError(t, db.Table(table).Where("is_deleted = ?", false).Count(&live).Error)
		assert.Zero(t, live, table)
	}
}

func TestCascadeRepository_SoftDeleteUserMissing(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewCascadeRepository(db)

	n, err := repo.SoftDeleteUser(context.Background(), 42, time.Now())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCascadeRepository_SoftDeleteUserAlreadyFlagged(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewCascadeRepository(db)
	ctx := context.Background()
	f := seedCascadeFixture(t, db)
	first := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	_, err := repo.SoftDeleteUser(ctx, f.user.ID, first)
	require.NoError(t, err)

	n, err := repo.SoftDeleteUser(ctx, f.user.ID, first.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "an already flagged user still exists")

	var user models.User
	require.NoError(t, db.First(&user, f.user.ID).Error)
	require.NotNil(t, user.DeletedAt)
	assert.True(t, first.Equal(user.DeletedAt.UTC()), "deleted_at keeps the first deletion time")
}

func TestCascadeRepository_ApplySkipsDeletedRows(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewCascadeRepository(db)
	ctx := context.Background()
	f := seedCascadeFixture(t, db)
	step := CascadeStep{Table: "tbl_posts", Where: "user_id = @id"}

	n, err := repo.Apply(ctx, step, f.user.ID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.Apply(ctx, step, f.user.ID, time.Now())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCascadeRepository_FollowPeers(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewCascadeRepository(db)
	ctx := context.Background()
	f := seedCascadeFixture(t, db)

	carol := models.User{Username: "carol", Email: "c@x.com", Mobile: "557", Password: "h"}
	require.NoError(t, db.Create(&carol).Error)
	require.NoError(t, db.Create(&models.Follow{FollowedBy: f.user.ID, FollowingTo: f.other.ID, Status: models.FollowStatusAccepted}).Error)
	require.NoError(t, db.Create(&models.Follow{FollowedBy: f.user.ID, FollowingTo: carol.ID, Status: models.FollowStatusAccepted}).Error)

	peers, err := repo.FollowPeers(ctx, f.user.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{f.other.ID, carol.ID}, peers)

	_, err = repo.Apply(ctx, CascadeStep{Table: "tbl_follow", Where: "(followed_by = @id OR following_to = @id)"}, f.user.ID, time.Now())
	require.NoError(t, err)

	peers, err = repo.FollowPeers(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Empty(t, peers)
}

func TestCascadeRepository_PostPlan(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewCascadeRepository(db)
	ctx := context.Background()
	f := seedCascadeFixture(t, db)

	for _, step := range PostCascadePlan() {
		_, err := repo.Apply(ctx, step, f.post.ID, time.Now())
		require.NoError(t, err)
	}

	assert.True(t, isDeleted(t, db, "tbl_posts", f.post.ID))
	assert.True(t, isDeleted(t, db, "tbl_post_images", f.image.ID))
	assert.False(t, isDeleted(t, db, "tbl_posts", f.otherPost.ID))
	assert.False(t, isDeleted(t, db, "tbl_users", f.user.ID))
}
