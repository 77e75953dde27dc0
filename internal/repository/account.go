package repository

import (
	"context"
	"time"

	"stylmou/internal/models"
	"stylmou/internal/observability"

	"gorm.io/gorm"
)

// CascadeStep is one soft-delete update. Where binds the owner id as @id.
type CascadeStep struct {
	Table string
	Where string
}

const ownedPosts = "post_id IN (SELECT id FROM tbl_posts WHERE user_id = @id)"

var accountCascade = []CascadeStep{
	{Table: "tbl_post_images", Where: ownedPosts},
	{Table: "tbl_post_tags", Where: ownedPosts},
	{Table: "tbl_posts", Where: "user_id = @id"},
	{Table: "tbl_likes", Where: "user_id = @id"},
	{Table: "tbl_follow", Where: "(followed_by = @id OR following_to = @id)"},
	{Table: "tbl_notifications", Where: "user_id = @id"},
	{Table: "tbl_report_posts", Where: "user_id = @id"},
	{Table: "tbl_report_profiles", Where: "(reporter_id = @id OR reported_id = @id)"},
	{Table: "tbl_messages", Where: "(user_id1 = @id OR user_id2 = @id)"},
	{Table: "tbl_saved_posts", Where: "user_id = @id"},
	{Table: "tbl_saved_ads", Where: ownedPosts},
	{Table: "tbl_post_comments", Where: "user_id = @id"},
	{Table: "tbl_post_ratings", Where: "user_id = @id"},
	{Table: "tbl_user_languages", Where: "user_id = @id"},
	{Table: "tbl_group_users", Where: "user_id = @id"},
}

var postCascade = []CascadeStep{
	{Table: "tbl_post_images", Where: "post_id = @id"},
	{Table: "tbl_post_tags", Where: "post_id = @id"},
	{Table: "tbl_posts", Where: "id = @id"},
}

// AccountCascadePlan returns the ordered updates that follow a user soft-delete.
func AccountCascadePlan() []CascadeStep {
	return append([]CascadeStep(nil), accountCascade...)
}

// PostCascadePlan returns the ordered updates that soft-delete a post and its attachments.
func PostCascadePlan() []CascadeStep {
	return append([]CascadeStep(nil), postCascade...)
}

// CascadeRepository applies soft-delete updates across tables.
type CascadeRepository interface {
	// SoftDeleteUser flags the user row and returns how many user rows match
	// userID. A row flagged by an earlier call still counts, so zero means the
	// user never existed.
	SoftDeleteUser(ctx context.Context, userID uint, at time.Time) (int64, error)
	// FollowPeers returns the users on the other side of userID's live follow rows.
	FollowPeers(ctx context.Context, userID uint) ([]uint, error)
	// Apply runs one step for id and returns the affected row count.
	Apply(ctx context.Context, step CascadeStep, id uint, at time.Time) (int64, error)
}

type cascadeRepository struct {
	db *gorm.DB
}

// NewCascadeRepository returns a new CascadeRepository implementation.
func NewCascadeRepository(db *gorm.DB) CascadeRepository {
	return &cascadeRepository{db: db}
}

func (r *cascadeRepository) SoftDeleteUser(ctx context.Context, userID uint, at time.Time) (int64, error) {
	affected, err := r.Apply(ctx, CascadeStep{Table: "tbl_users", Where: "id = @id"}, userID, at)
	if err != nil || affected > 0 {
		return affected, err
	}

	defer observability.TrackQuery("count", "tbl_users")()
	var existing int64
	if err := GetDB(ctx, r.db).Model(&models.User{}).Where("id = ?", userID).Count(&existing).Error; err != nil {
		return 0, models.NewOperationError(err)
	}
	return existing, nil
}

func (r *cascadeRepository) FollowPeers(ctx context.Context, userID uint) ([]uint, error) {
	defer observability.TrackQuery("select", "tbl_follow")()

	var rows []models.Follow
	err := GetDB(ctx, r.db).
		Select("followed_by, following_to").
		Where("is_deleted = ?", false).
		Where("followed_by = ? OR following_to = ?", userID, userID).
		Find(&rows).Error
	if err != nil {
		return nil, models.NewOperationError(err)
	}

	seen := make(map[uint]struct{}, len(rows))
	peers := make([]uint, 0, len(rows))
	for _, row := range rows {
		peer := row.FollowedBy
		if peer == userID {
			peer = row.FollowingTo
		}
		if _, ok := seen[peer]; ok || peer == userID {
			continue
		}
		seen[peer] = struct{}{}
		peers = append(peers, peer)
	}
	return peers, nil
}

func (r *cascadeRepository) Apply(ctx context.Context, step CascadeStep, id uint, at time.Time) (int64, error) {
	defer observability.TrackQuery("soft_delete", step.Table)()

	result := GetDB(ctx, r.db).
		Table(step.Table).
		Where(step.Where, map[string]interface{}{"id": id}).
		Where("is_deleted = ?", false).
		Updates(softDeleted(at))
	if result.Error != nil {
		return 0, models.NewOperationError(result.Error)
	}
	return result.RowsAffected, nil
}

func softDeleted(at time.Time) map[string]interface{} {
	return map[string]interface{}{
		"is_active":  false,
		"is_deleted": true,
		"deleted_at": at,
	}
}
