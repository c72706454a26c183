package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"tourship/internal/models/request_models"
	"tourship/internal/models/response_models"
	"tourship/internal/repositories"
	"tourship/pkg/utils"
)

func newTestDashboardService(db *gorm.DB) DashboardService {
	return NewDashboardService(
		repositories.NewDashboardRepository(db),
		repositories.NewUserRepository(db),
	)
}

func TestNormalizeRangeDefaults(t *testing.T) {
	rng := normalizeRange(response_models.TimeRange{})

	assert.Equal(t, "day", rng.Interval)
	assert.WithinDuration(t, time.Now().UTC(), rng.End, 5*time.Second)
	assert.Equal(t, rng.End.AddDate(0, 0, -30), rng.Start)

	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)
	rng = normalizeRange(response_models.TimeRange{Start: start, End: end, Interval: "week"})
	assert.Equal(t, start, rng.Start)
	assert.Equal(t, end, rng.End)
	assert.Equal(t, "week", rng.Interval)

	// An inverted range is swapped rather than rejected.
	rng = normalizeRange(response_models.TimeRange{Start: end, End: start, Interval: "month"})
	assert.Equal(t, start, rng.Start)
	assert.Equal(t, end, rng.End)
}

func TestBucketStartByInterval(t *testing.T) {
	ict := time.FixedZone("ICT", 7*3600)

	cases := []struct {
		name     string
		ts       time.Time
		interval string
		loc      *time.Location
		want     time.Time
	}{
		{
			name:     "day truncates to midnight",
			ts:       time.Date(2026, 3, 11, 15, 4, 5, 0, time.UTC),
			interval: "day",
			loc:      time.UTC,
			want:     time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "day respects the bucketing zone",
			ts:       time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC), // 03:00 next day in ICT
			interval: "day",
			loc:      ict,
			want:     time.Date(2026, 3, 11, 0, 0, 0, 0, ict),
		},
		{
			name:     "week starts on Monday",
			ts:       time.Date(2026, 3, 11, 9, 30, 0, 0, time.UTC), // Wednesday
			interval: "week",
			loc:      time.UTC,
			want:     time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "sunday belongs to the preceding Monday",
			ts:       time.Date(2026, 3, 15, 23, 59, 0, 0, time.UTC), // Sunday
			interval: "week",
			loc:      time.UTC,
			want:     time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "monday is its own bucket",
			ts:       time.Date(2026, 3, 9, 0, 0, 1, 0, time.UTC),
			interval: "week",
			loc:      time.UTC,
			want:     time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "month truncates to the first",
			ts:       time.Date(2026, 3, 15, 13, 45, 0, 0, time.UTC),
			interval: "month",
			loc:      time.UTC,
			want:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := bucketStart(tc.ts.Unix(), tc.interval, tc.loc)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSortedPointsAscending(t *testing.T) {
	b1 := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	b2 := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)
	b3 := time.Date(2026, 1, 19, 0, 0, 0, 0, time.UTC)

	points := sortedPoints(map[time.Time]int64{b2: 7, b3: 1, b1: 4})

	require.Len(t, points, 3)
	assert.Equal(t, response_models.SeriesPoint{Bucket: b1, Value: 4}, points[0])
	assert.Equal(t, response_models.SeriesPoint{Bucket: b2, Value: 7}, points[1])
	assert.Equal(t, response_models.SeriesPoint{Bucket: b3, Value: 1}, points[2])
}

func TestBuildGuideDashboard(t *testing.T) {
	db := newTestDB(t)
	trips := newTestTripService(db, &mailRecorder{})
	svc := newTestDashboardService(db)
	ctx := context.Background()

	organiser := seedOrganiser(t, db, true)
	guide := seedGuide(t, db, true)
	attraction := seedAttraction(t, db)
	orgID := organiser.ID.String()
	guideID := guide.ID.String()

	assign := func(tripID string) {
		t.Helper()
		_, err := trips.AssignGuide(ctx, orgID, tripID, request_models.AssignGuideRequest{GuideID: guide.ID})
		require.NoError(t, err)
	}
	accept := func(tripID string) {
		t.Helper()
		_, err := trips.RespondToAssignment(ctx, guideID, tripID, request_models.GuideRespondRequest{Action: "accept"})
		require.NoError(t, err)
	}

	soon := createTrip(t, trips, orgID, attraction.ID, 10, 20000, time.Now().Add(24*time.Hour))
	publishTrip(t, trips, orgID, soon.ID)
	assign(soon.ID)
	accept(soon.ID)

	later := createTrip(t, trips, orgID, attraction.ID, 10, 20000, time.Now().Add(72*time.Hour))
	publishTrip(t, trips, orgID, later.ID)
	assign(later.ID)
	accept(later.ID)

	queued := createTrip(t, trips, orgID, attraction.ID, 10, 20000, time.Now().Add(96*time.Hour))
	publishTrip(t, trips, orgID, queued.ID)
	assign(queued.ID)

	past := createTrip(t, trips, orgID, attraction.ID, 10, 20000, time.Now().Add(-72*time.Hour))
	publishTrip(t, trips, orgID, past.ID)
	assign(past.ID)
	accept(past.ID)
	_, err := trips.Complete(ctx, orgID, past.ID)
	require.NoError(t, err)

	board, err := svc.BuildGuideDashboard(ctx, guideID)
	require.NoError(t, err)

	assert.Equal(t, int64(1), board.PendingAssignments)
	assert.Equal(t, int64(3), board.AcceptedAssignments)
	assert.Equal(t, 3, board.ToursAssigned)
	assert.Equal(t, 1, board.ToursCompleted)

	// Upcoming lists accepted future trips soonest first; the finished
	// one is behind us and the queued one is still unanswered.
	require.Len(t, board.UpcomingTrips, 2)
	assert.Equal(t, soon.ID, board.UpcomingTrips[0].ID)
	assert.Equal(t, later.ID, board.UpcomingTrips[1].ID)
}

func TestBuildGuideDashboardEmpty(t *testing.T) {
	db := newTestDB(t)
	svc := newTestDashboardService(db)
	ctx := context.Background()

	guide := seedGuide(t, db, true)

	board, err := svc.BuildGuideDashboard(ctx, guide.ID.String())
	require.NoError(t, err)
	assert.Zero(t, board.PendingAssignments)
	assert.Zero(t, board.AcceptedAssignments)
	assert.Zero(t, board.ToursAssigned)
	assert.Zero(t, board.ToursCompleted)
	assert.Empty(t, board.UpcomingTrips)

	_, err = svc.BuildGuideDashboard(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}
