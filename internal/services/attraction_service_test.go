package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"tourship/internal/models/db_models"
	"tourship/internal/models/request_models"
	"tourship/internal/models/response_models"
	"tourship/internal/repositories"
	"tourship/pkg/utils"
)

func newTestAttractionService(db *gorm.DB) AttractionServiceInterface {
	return NewAttractionService(repositories.NewAttractionRepository(db), repositories.NewUserRepository(db))
}

func attractionRequest(name, city string) request_models.CreateAttractionRequest {
	return request_models.CreateAttractionRequest{
		Name:     name,
		City:     city,
		Country:  "Cambodia",
		Category: "temple",
	}
}

func createAttraction(t *testing.T, svc AttractionServiceInterface, adminID string, name, city string) response_models.AttractionDetail {
	t.Helper()
	detail, err := svc.Create(context.Background(), adminID, attractionRequest(name, city))
	require.NoError(t, err)
	return detail
}

func TestCreateAttractionBumpsSlugOnCollision(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAttractionService(db)
	admin := seedUser(t, db, db_models.RoleAdmin)

	first := createAttraction(t, svc, admin.ID.String(), "Royal Palace", "Phnom Penh")
	assert.Equal(t, "royal-palace-phnom-penh", first.Slug)
	assert.Equal(t, string(db_models.AttractionVisible), first.Status)

	second := createAttraction(t, svc, admin.ID.String(), "Royal Palace", "Phnom Penh")
	assert.Equal(t, "royal-palace-phnom-penh-2", second.Slug)

	third := createAttraction(t, svc, admin.ID.String(), "Royal Palace", "Phnom Penh")
	assert.Equal(t, "royal-palace-phnom-penh-3", third.Slug)
}

func TestGetDetailResolvesSlugAndCountsPublicViews(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAttractionService(db)
	ctx := context.Background()
	admin := seedUser(t, db, db_models.RoleAdmin)

	created := createAttraction(t, svc, admin.ID.String(), "Bayon", "Siem Reap")

	bySlug, err := svc.GetDetail(ctx, "bayon-siem-reap", true)
	require.NoError(t, err)
	assert.Equal(t, created.ID, bySlug.ID)

	byID, err := svc.GetDetail(ctx, created.ID, true)
	require.NoError(t, err)
	assert.Equal(t, int64(2), byID.ViewCount)

	// Admin reads do not count as visits.
	adminView, err := svc.GetDetail(ctx, created.ID, false)
	require.NoError(t, err)
	assert.Equal(t, int64(2), adminView.ViewCount)
	assert.Equal(t, string(db_models.AttractionVisible), adminView.Status)

	_, err = svc.GetDetail(ctx, "no-such-slug", true)
	assert.ErrorIs(t, err, utils.ErrAttractionNotFound)
}

func TestHiddenAttractionInvisibleToPublic(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAttractionService(db)
	ctx := context.Background()
	admin := seedUser(t, db, db_models.RoleAdmin)

	created := createAttraction(t, svc, admin.ID.String(), "Bayon", "Siem Reap")

	hidden := "hidden"
	_, err := svc.Update(ctx, created.ID, request_models.UpdateAttractionRequest{Status: &hidden})
	require.NoError(t, err)

	_, err = svc.GetDetail(ctx, created.ID, true)
	assert.ErrorIs(t, err, utils.ErrAttractionNotFound)

	adminView, err := svc.GetDetail(ctx, created.ID, false)
	require.NoError(t, err)
	assert.Equal(t, "hidden", adminView.Status)

	// Hidden entries take no reviews and no wishlist entries.
	tourist := seedTourist(t, db)
	_, err = svc.AddReview(ctx, tourist.ID.String(), created.ID, request_models.AddReviewRequest{Rating: 5})
	assert.ErrorIs(t, err, utils.ErrAttractionNotFound)
	assert.ErrorIs(t, svc.AddToWishlist(ctx, tourist.ID.String(), created.ID), utils.ErrAttractionNotFound)
}

func TestUpdateAttractionRenamesSlugOnly(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAttractionService(db)
	ctx := context.Background()
	admin := seedUser(t, db, db_models.RoleAdmin)

	created := createAttraction(t, svc, admin.ID.String(), "Bayon", "Siem Reap")

	description := "A richly decorated Khmer temple."
	updated, err := svc.Update(ctx, created.ID, request_models.UpdateAttractionRequest{Description: &description})
	require.NoError(t, err)
	assert.Equal(t, "bayon-siem-reap", updated.Slug)

	name := "Bayon Temple"
	updated, err = svc.Update(ctx, created.ID, request_models.UpdateAttractionRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "bayon-temple-siem-reap", updated.Slug)

	_, err = svc.Update(ctx, uuid.NewString(), request_models.UpdateAttractionRequest{Name: &name})
	assert.ErrorIs(t, err, utils.ErrAttractionNotFound)
}

func TestAddReviewRebuildsAggregates(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAttractionService(db)
	ctx := context.Background()
	admin := seedUser(t, db, db_models.RoleAdmin)

	created := createAttraction(t, svc, admin.ID.String(), "Bayon", "Siem Reap")
	alice := seedTourist(t, db)
	bella := seedTourist(t, db)

	_, err := svc.AddReview(ctx, alice.ID.String(), created.ID, request_models.AddReviewRequest{Rating: 5, Comment: "stunning"})
	require.NoError(t, err)

	detail, err := svc.AddReview(ctx, bella.ID.String(), created.ID, request_models.AddReviewRequest{Rating: 4})
	require.NoError(t, err)

	assert.Equal(t, 4.5, detail.Ratings.Overall)
	assert.Equal(t, 2, detail.Ratings.Count)
	assert.Equal(t, [5]int{0, 0, 0, 1, 1}, detail.Ratings.Histogram)

	// The flat mirror columns stay in step for list filtering.
	var stored db_models.Attraction
	require.NoError(t, db.First(&stored, "id = ?", created.ID).Error)
	assert.Equal(t, 4.5, stored.RatingOverall)
	assert.Equal(t, 2, stored.RatingCount)

	// One review per user.
	_, err = svc.AddReview(ctx, alice.ID.String(), created.ID, request_models.AddReviewRequest{Rating: 1})
	assert.ErrorIs(t, err, utils.ErrDuplicateReview)
}

func TestListReviewsPagesInMemory(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAttractionService(db)
	ctx := context.Background()

	attraction := seedAttraction(t, db)
	attraction.Reviews = []db_models.Review{
		{ID: uuid.New(), UserID: uuid.New(), Rating: 3, CreatedAt: 100},
		{ID: uuid.New(), UserID: uuid.New(), Rating: 5, CreatedAt: 300},
		{ID: uuid.New(), UserID: uuid.New(), Rating: 4, CreatedAt: 200},
	}
	attraction.RecalculateRatings()
	require.NoError(t, db.Save(attraction).Error)

	page, err := svc.ListReviews(ctx, attraction.ID.String(), utils.Pagination{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, int64(300), page.Items[0].CreatedAt)
	assert.Equal(t, int64(200), page.Items[1].CreatedAt)

	page, err = svc.ListReviews(ctx, attraction.ID.String(), utils.Pagination{Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(100), page.Items[0].CreatedAt)

	page, err = svc.ListReviews(ctx, attraction.ID.String(), utils.Pagination{Page: 3, PageSize: 2})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestWishlistKeepsBothSidesInStep(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAttractionService(db)
	ctx := context.Background()

	attraction := seedAttraction(t, db)
	tourist := seedTourist(t, db)
	id := attraction.ID.String()

	require.NoError(t, svc.AddToWishlist(ctx, tourist.ID.String(), id))
	require.NoError(t, svc.AddToWishlist(ctx, tourist.ID.String(), id)) // already present, no-op

	var stored db_models.Attraction
	require.NoError(t, db.First(&stored, "id = ?", id).Error)
	assert.Equal(t, int64(1), stored.WishlistCount)

	profile := reloadUser(t, db, tourist.ID).TouristProfile.Data()
	require.Len(t, profile.Wishlist, 1)
	assert.Equal(t, attraction.ID, profile.Wishlist[0])

	require.NoError(t, svc.RemoveFromWishlist(ctx, tourist.ID.String(), id))
	require.NoError(t, svc.RemoveFromWishlist(ctx, tourist.ID.String(), id)) // already gone, no-op

	require.NoError(t, db.First(&stored, "id = ?", id).Error)
	assert.Equal(t, int64(0), stored.WishlistCount)
	assert.Empty(t, reloadUser(t, db, tourist.ID).TouristProfile.Data().Wishlist)
}

func TestListFiltersAndVisibility(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAttractionService(db)
	ctx := context.Background()
	admin := seedUser(t, db, db_models.RoleAdmin)
	tourist := seedTourist(t, db)

	bayon := createAttraction(t, svc, admin.ID.String(), "Bayon", "Siem Reap")
	palace := createAttraction(t, svc, admin.ID.String(), "Royal Palace", "Phnom Penh")
	hiddenDetail := createAttraction(t, svc, admin.ID.String(), "Closed Site", "Phnom Penh")

	hidden := "hidden"
	_, err := svc.Update(ctx, hiddenDetail.ID, request_models.UpdateAttractionRequest{Status: &hidden})
	require.NoError(t, err)

	_, err = svc.AddReview(ctx, tourist.ID.String(), bayon.ID, request_models.AddReviewRequest{Rating: 5})
	require.NoError(t, err)

	page := utils.Pagination{Page: 1, PageSize: 20}

	public, err := svc.List(ctx, request_models.ListAttractionsQuery{}, page, true)
	require.NoError(t, err)
	assert.Equal(t, int64(2), public.Total)
	for _, item := range public.Items {
		assert.Empty(t, item.Status) // not an admin view
	}

	adminList, err := svc.List(ctx, request_models.ListAttractionsQuery{}, page, false)
	require.NoError(t, err)
	assert.Equal(t, int64(3), adminList.Total)

	byCity, err := svc.List(ctx, request_models.ListAttractionsQuery{City: "phnom penh"}, page, true)
	require.NoError(t, err)
	require.Len(t, byCity.Items, 1)
	assert.Equal(t, palace.ID, byCity.Items[0].ID)

	rated, err := svc.List(ctx, request_models.ListAttractionsQuery{MinRating: 4}, page, true)
	require.NoError(t, err)
	require.Len(t, rated.Items, 1)
	assert.Equal(t, bayon.ID, rated.Items[0].ID)

	search, err := svc.List(ctx, request_models.ListAttractionsQuery{Search: "royal"}, page, true)
	require.NoError(t, err)
	require.Len(t, search.Items, 1)
	assert.Equal(t, palace.ID, search.Items[0].ID)
}

func TestBulkLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAttractionService(db)
	ctx := context.Background()
	admin := seedUser(t, db, db_models.RoleAdmin)

	batch, err := svc.BulkCreate(ctx, admin.ID.String(), request_models.BulkCreateAttractionsRequest{
		Attractions: []request_models.CreateAttractionRequest{
			attractionRequest("Bayon", "Siem Reap"),
			attractionRequest("Ta Prohm", "Siem Reap"),
		},
	})
	require.NoError(t, err)
	require.Len(t, batch, 2)

	ids := []string{batch[0].ID, batch[1].ID}

	n, err := svc.BulkSetStatus(ctx, request_models.BulkAttractionStatusRequest{IDs: ids, Status: "hidden"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	public, err := svc.List(ctx, request_models.ListAttractionsQuery{}, utils.Pagination{Page: 1, PageSize: 20}, true)
	require.NoError(t, err)
	assert.Equal(t, int64(0), public.Total)

	n, err = svc.BulkDelete(ctx, request_models.BulkAttractionDeleteRequest{IDs: ids})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	all, err := svc.List(ctx, request_models.ListAttractionsQuery{}, utils.Pagination{Page: 1, PageSize: 20}, false)
	require.NoError(t, err)
	assert.Equal(t, int64(0), all.Total)

	_, err = svc.BulkDelete(ctx, request_models.BulkAttractionDeleteRequest{IDs: []string{"not-a-uuid"}})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestStatsReflectEngagement(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAttractionService(db)
	ctx := context.Background()
	admin := seedUser(t, db, db_models.RoleAdmin)
	tourist := seedTourist(t, db)

	created := createAttraction(t, svc, admin.ID.String(), "Bayon", "Siem Reap")

	_, err := svc.GetDetail(ctx, created.ID, true)
	require.NoError(t, err)
	require.NoError(t, svc.AddToWishlist(ctx, tourist.ID.String(), created.ID))
	_, err = svc.AddReview(ctx, tourist.ID.String(), created.ID, request_models.AddReviewRequest{Rating: 4})
	require.NoError(t, err)

	stats, err := svc.Stats(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.ViewCount)
	assert.Equal(t, int64(1), stats.WishlistCount)
	assert.Equal(t, 1, stats.ReviewCount)
	assert.Equal(t, 4.0, stats.RatingOverall)

	catalogue, err := svc.CatalogueStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), catalogue.Total)
	assert.Equal(t, int64(1), catalogue.Visible)
	assert.Equal(t, int64(0), catalogue.Hidden)
	assert.Equal(t, int64(1), catalogue.TotalViews)
	assert.Equal(t, int64(1), catalogue.TotalWishlist)
	assert.Equal(t, int64(1), catalogue.TotalReviews)
}
