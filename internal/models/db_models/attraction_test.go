package db_models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func review(rating int) Review {
	return Review{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Rating: rating,
	}
}

func TestRecalculateRatings(t *testing.T) {
	a := Attraction{
		Reviews: datatypes.NewJSONSlice([]Review{
			review(5), review(4), review(4), review(1),
		}),
	}
	a.RecalculateRatings()

	r := a.Ratings.Data()
	assert.Equal(t, 4, r.Count)
	assert.InDelta(t, 3.5, r.Overall, 0.0001)
	assert.Equal(t, [5]int{1, 0, 0, 2, 1}, r.Histogram)
	assert.InDelta(t, 3.5, a.RatingOverall, 0.0001)
}

func TestRecalculateRatingsEmptyAndOutOfRange(t *testing.T) {
	var a Attraction
	a.RecalculateRatings()
	assert.Equal(t, 0, a.Ratings.Data().Count)
	assert.Zero(t, a.Ratings.Data().Overall)

	a.Reviews = datatypes.NewJSONSlice([]Review{review(0), review(6), review(3)})
	a.RecalculateRatings()
	assert.Equal(t, 1, a.Ratings.Data().Count)
	assert.InDelta(t, 3.0, a.Ratings.Data().Overall, 0.0001)
}

func TestHasReviewBy(t *testing.T) {
	userID := uuid.New()
	a := Attraction{
		Reviews: datatypes.NewJSONSlice([]Review{
			{ID: uuid.New(), UserID: userID, Rating: 5},
		}),
	}

	assert.True(t, a.HasReviewBy(userID))
	assert.False(t, a.HasReviewBy(uuid.New()))
}

func TestRecalculatePopularity(t *testing.T) {
	a := Attraction{
		ViewCount:     100,
		WishlistCount: 20,
		Ratings: datatypes.NewJSONType(RatingSummary{
			Overall: 4.0,
			Count:   10,
		}),
	}
	a.RecalculatePopularity()
	// 4*10 + 100*0.1 + 20*0.5 + 10*2 = 80
	assert.InDelta(t, 80.0, a.PopularityScore, 0.0001)

	a.IsFeatured = true
	a.RecalculatePopularity()
	assert.InDelta(t, 105.0, a.PopularityScore, 0.0001)

	a.IsUnesco = true
	a.RecalculatePopularity()
	assert.InDelta(t, 155.0, a.PopularityScore, 0.0001)
}

func TestPopularityOrdersMoreEngagedAttractionsHigher(t *testing.T) {
	quiet := Attraction{Ratings: datatypes.NewJSONType(RatingSummary{Overall: 4.5, Count: 2})}
	busy := Attraction{
		ViewCount:     500,
		WishlistCount: 60,
		Ratings:       datatypes.NewJSONType(RatingSummary{Overall: 4.2, Count: 80}),
	}
	quiet.RecalculatePopularity()
	busy.RecalculatePopularity()

	assert.Greater(t, busy.PopularityScore, quiet.PopularityScore)
}
