package service

import (
	"context"
	"testing"
	"time"

	"stylmou/internal/models"
	"stylmou/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFeedService(posts *postRepoStub) *FeedService {
	svc := NewFeedService(posts, noopCatalogRepo(), nil)
	svc.now = fixedClock
	return svc
}

func TestFeedService_Filters(t *testing.T) {
	t.Parallel()

	var got repository.FeedFilter
	posts := noopPostRepo()
	posts.listFn = func(_ context.Context, f repository.FeedFilter) ([]*models.Post, error) {
		got = f
		return []*models.Post{{ID: 1}}, nil
	}
	svc := newTestFeedService(posts)
	ctx := context.Background()

	_, err := svc.ByStyle(ctx, models.StyleVideo)
	require.NoError(t, err)
	assert.Equal(t, repository.FeedFilter{Style: models.StyleVideo}, got)

	_, err = svc.Saved(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, repository.FeedFilter{SavedBy: 3}, got)

	_, err = svc.Trending(ctx, 20, 40)
	require.NoError(t, err)
	assert.Equal(t, repository.FeedFilter{Sort: repository.SortTrending, Limit: 20, Offset: 40}, got)

	_, err = svc.All(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, repository.FeedFilter{}, got)

	_, err = svc.Newest(ctx, models.StyleCompare)
	require.NoError(t, err)
	assert.Equal(t, repository.FeedFilter{Style: models.StyleCompare, Sort: repository.SortNewest}, got)

	_, err = svc.Following(ctx, 3, "")
	require.NoError(t, err)
	assert.Equal(t, repository.FeedFilter{FollowedBy: 3}, got)

	_, err = svc.Expiring(ctx, "")
	require.NoError(t, err)
	require.NotNil(t, got.ExpiredAt)
	assert.Equal(t, fixedNow, *got.ExpiredAt)

	_, err = svc.ByCategory(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, repository.FeedFilter{CategoryID: 2}, got)
}

func TestFeedService_RequiredParameters(t *testing.T) {
	t.Parallel()

	svc := newTestFeedService(noopPostRepo())
	ctx := context.Background()

	_, err := svc.ByStyle(ctx, "")
	assertValidationError(t, err)
	_, err = svc.Saved(ctx, 0)
	assertValidationError(t, err)
	_, err = svc.Following(ctx, 0, "")
	assertValidationError(t, err)
	_, err = svc.ByCategory(ctx, 4)
	assertValidationError(t, err)
	assert.Equal(t, "categoryId must be one of the following values: 1, 2, or 3.", err.Error())
}

func TestFeedService_ByCategoryEmpty(t *testing.T) {
	t.Parallel()

	_, err := newTestFeedService(noopPostRepo()).ByCategory(context.Background(), 1)
	assertNotFoundError(t, err)
}

func TestFeedService_ImageRatings(t *testing.T) {
	t.Parallel()

	expiredPost := func(expiring time.Time) *postRepoStub {
		posts := noopPostRepo()
		posts.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
			return &models.Post{ID: id, ExpiringOn: expiring}, nil
		}
		return posts
	}

	t.Run("ranked images of an expired post", func(t *testing.T) {
		t.Parallel()
		posts := expiredPost(fixedNow.Add(-time.Hour))
		posts.imageRatingsFn = func(context.Context, uint) ([]models.ImageRating, error) {
			return []models.ImageRating{{Image: "a.jpg", LikeCount: 4}, {Image: "b.jpg", LikeCount: 1}}, nil
		}
		got, err := newTestFeedService(posts).ImageRatings(context.Background(), 10)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "a.jpg", got[0].Image)
	})

	t.Run("live post", func(t *testing.T) {
		t.Parallel()
		_, err := newTestFeedService(expiredPost(fixedNow.Add(time.Hour))).ImageRatings(context.Background(), 10)
		assertValidationError(t, err)
	})

	t.Run("no images", func(t *testing.T) {
		t.Parallel()
		_, err := newTestFeedService(expiredPost(fixedNow.Add(-time.Hour))).ImageRatings(context.Background(), 10)
		assertNotFoundError(t, err)
		assert.Equal(t, "No images found for this post.", err.Error())
	})
}

func TestFeedService_StylesAndCategories(t *testing.T) {
	t.Parallel()

	c, _ := newTestCache(t)
	posts := noopPostRepo()
	calls := 0
	posts.stylesFn = func(context.Context) ([]string, error) {
		calls++
		return []string{models.StyleCompare, models.StyleVideo}, nil
	}
	catalog := noopCatalogRepo()
	catalog.categoriesFn = func(context.Context) ([]models.Category, error) {
		return []models.Category{{ID: 1, Category: "Men"}}, nil
	}
	svc := NewFeedService(posts, catalog, c)

	for i := 0; i < 2; i++ {
		styles, err := svc.Styles(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{models.StyleCompare, models.StyleVideo}, styles)
	}
	assert.Equal(t, 1, calls)

	categories, err := svc.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Men", categories[0].Category)
}
