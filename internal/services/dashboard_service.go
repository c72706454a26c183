package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	dbm "tourship/internal/models/db_models"
	resp "tourship/internal/models/response_models"
	"tourship/internal/repositories"
	"tourship/pkg/utils"
)

type DashboardService interface {
	BuildDashboard(ctx context.Context, rng resp.TimeRange, currency string) (*resp.DashboardReport, error)
	BuildGuideDashboard(ctx context.Context, guideID string) (*resp.GuideDashboard, error)
}

type dashboardService struct {
	repo     repositories.DashboardRepository
	userRepo repositories.UserRepository
}

func NewDashboardService(repo repositories.DashboardRepository, userRepo repositories.UserRepository) DashboardService {
	return &dashboardService{repo: repo, userRepo: userRepo}
}

// normalizeRange ensures sane defaults and ordering
func normalizeRange(r resp.TimeRange) resp.TimeRange {
	out := r
	if out.Interval == "" {
		out.Interval = "day"
	}
	if out.End.IsZero() {
		out.End = time.Now().UTC()
	}
	if out.Start.IsZero() {
		out.Start = out.End.AddDate(0, 0, -30) // last 30 days default
	}
	if out.Start.After(out.End) {
		out.Start, out.End = out.End, out.Start
	}
	return out
}

// bucketStart truncates a unix timestamp to its day, ISO week or month
// in the given location. Bookings live inside trip documents, so their
// series are bucketed here rather than in SQL.
func bucketStart(ts int64, interval string, loc *time.Location) time.Time {
	t := time.Unix(ts, 0).In(loc)
	switch interval {
	case "month":
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
	case "week":
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
		offset := (int(day.Weekday()) + 6) % 7 // Monday start
		return day.AddDate(0, 0, -offset)
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	}
}

func sortedPoints(sums map[time.Time]int64) []resp.SeriesPoint {
	points := make([]resp.SeriesPoint, 0, len(sums))
	for bucket, value := range sums {
		points = append(points, resp.SeriesPoint{Bucket: bucket, Value: value})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Bucket.Before(points[j].Bucket) })
	return points
}

func (s *dashboardService) BuildDashboard(ctx context.Context, rng resp.TimeRange, currency string) (*resp.DashboardReport, error) {
	rng = normalizeRange(rng)

	loc := time.UTC
	if rng.Timezone != "" {
		if l, err := time.LoadLocation(rng.Timezone); err == nil {
			loc = l
		}
	}

	// ---------- Core counts ----------
	totalUsers, err := s.repo.CountTotalUsers(ctx)
	if err != nil {
		return nil, err
	}
	newUsers, err := s.repo.CountNewUsers(ctx, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}
	activeUsers, err := s.repo.CountActiveUsers(ctx)
	if err != nil {
		return nil, err
	}
	tourists, err := s.repo.CountUsersByRole(ctx, dbm.RoleTourist)
	if err != nil {
		return nil, err
	}
	guides, err := s.repo.CountUsersByRole(ctx, dbm.RoleGuide)
	if err != nil {
		return nil, err
	}
	organisers, err := s.repo.CountUsersByRole(ctx, dbm.RoleOrganiser)
	if err != nil {
		return nil, err
	}
	admins, err := s.repo.CountUsersByRole(ctx, dbm.RoleAdmin)
	if err != nil {
		return nil, err
	}

	totalAttractions, err := s.repo.CountAttractions(ctx)
	if err != nil {
		return nil, err
	}
	visibleAttractions, err := s.repo.CountAttractionsByStatus(ctx, dbm.AttractionVisible)
	if err != nil {
		return nil, err
	}

	totalTrips, err := s.repo.CountTrips(ctx)
	if err != nil {
		return nil, err
	}
	draftTrips, err := s.repo.CountTripsByStatus(ctx, dbm.TripDraft)
	if err != nil {
		return nil, err
	}
	publishedTrips, err := s.repo.CountTripsByStatus(ctx, dbm.TripPublished)
	if err != nil {
		return nil, err
	}
	fullTrips, err := s.repo.CountTripsByStatus(ctx, dbm.TripFull)
	if err != nil {
		return nil, err
	}
	completedTrips, err := s.repo.CountTripsByStatus(ctx, dbm.TripCompleted)
	if err != nil {
		return nil, err
	}
	cancelledTrips, err := s.repo.CountTripsByStatus(ctx, dbm.TripCancelled)
	if err != nil {
		return nil, err
	}

	verificationQueue, err := s.repo.CountVerificationQueue(ctx)
	if err != nil {
		return nil, err
	}

	// ---------- New user series ----------
	newUsersRows, err := s.repo.NewUsersSeries(ctx, rng.Start, rng.End, rng.Interval, rng.Timezone)
	if err != nil {
		return nil, err
	}
	var newUsersPoints []resp.SeriesPoint
	for _, r := range newUsersRows {
		newUsersPoints = append(newUsersPoints, resp.SeriesPoint{Bucket: r.Bucket, Value: r.Sum})
	}

	// ---------- Bookings and revenue ----------
	// Both live inside the trip documents, so one scan feeds the booking
	// series, the revenue series, the booking KPIs and the recent list.
	trips, err := s.repo.TripsWithBookings(ctx)
	if err != nil {
		return nil, err
	}

	bookingSums := make(map[time.Time]int64)
	revenueSums := make(map[time.Time]int64)
	var totalRevenue int64
	var totalBookings, activeBookings int64
	var allBookings []resp.RecentBooking

	startUnix, endUnix := rng.Start.Unix(), rng.End.Unix()
	for i := range trips {
		trip := &trips[i]
		for _, b := range trip.Bookings {
			totalBookings++
			if b.Status != dbm.BookingCancelled {
				activeBookings++
			}

			allBookings = append(allBookings, resp.RecentBooking{
				BookingID:     b.ID.String(),
				TripID:        trip.ID.String(),
				TripTitle:     trip.Title,
				ContactName:   b.ContactName,
				People:        b.NumberOfPeople,
				TotalMinor:    b.TotalMinor,
				Currency:      b.Currency,
				Status:        string(b.Status),
				PaymentStatus: string(b.PaymentStatus),
				CreatedAt:     b.CreatedAt,
			})

			if b.CreatedAt < startUnix || b.CreatedAt > endUnix {
				continue
			}
			bucket := bucketStart(b.CreatedAt, rng.Interval, loc)
			bookingSums[bucket]++

			earned := b.TotalMinor
			if b.Status == dbm.BookingCancelled {
				earned = b.TotalMinor - b.RefundMinor
			}
			revenueSums[bucket] += earned
			totalRevenue += earned
		}
	}

	sort.Slice(allBookings, func(i, j int) bool { return allBookings[i].CreatedAt > allBookings[j].CreatedAt })
	if len(allBookings) > 10 {
		allBookings = allBookings[:10]
	}

	// ---------- Top attractions ----------
	topRows, err := s.repo.TopAttractions(ctx, 10)
	if err != nil {
		return nil, err
	}
	var top []resp.TopAttraction
	for i := range topRows {
		a := &topRows[i]
		top = append(top, resp.TopAttraction{
			ID:              a.ID.String(),
			Name:            a.Name,
			City:            a.City,
			PopularityScore: a.PopularityScore,
			RatingOverall:   a.RatingOverall,
			ViewCount:       a.ViewCount,
		})
	}

	report := &resp.DashboardReport{
		Range: resp.TimeRange{
			Start:    rng.Start,
			End:      rng.End,
			Interval: rng.Interval,
			Timezone: rng.Timezone,
		},
		KPIs: resp.KPIBlock{
			TotalUsers:     totalUsers,
			NewUsers:       newUsers,
			ActiveUsers:    activeUsers,
			TouristCount:   tourists,
			GuideCount:     guides,
			OrganiserCount: organisers,
			AdminCount:     admins,

			TotalAttractions:   totalAttractions,
			VisibleAttractions: visibleAttractions,

			TotalTrips:     totalTrips,
			DraftTrips:     draftTrips,
			PublishedTrips: publishedTrips,
			FullTrips:      fullTrips,
			CompletedTrips: completedTrips,
			CancelledTrips: cancelledTrips,

			TotalBookings:        totalBookings,
			ActiveBookings:       activeBookings,
			PendingVerifications: verificationQueue,
		},
		Revenue: resp.RevenueSeries{
			Currency:   currency,
			Points:     sortedPoints(revenueSums),
			TotalMinor: totalRevenue,
		},
		NewUsers: resp.CountSeries{
			Points: newUsersPoints,
		},
		NewBookings: resp.CountSeries{
			Points: sortedPoints(bookingSums),
		},
		TopAttractions: top,
		RecentBookings: allBookings,
	}

	return report, nil
}

func (s *dashboardService) BuildGuideDashboard(ctx context.Context, guideID string) (*resp.GuideDashboard, error) {
	id, err := uuid.Parse(guideID)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}

	pending, err := s.repo.CountGuideAssignments(ctx, id, dbm.GuidePending)
	if err != nil {
		return nil, err
	}
	accepted, err := s.repo.CountGuideAssignments(ctx, id, dbm.GuideAccepted)
	if err != nil {
		return nil, err
	}

	upcoming, err := s.repo.UpcomingGuideTrips(ctx, id, time.Now().Unix(), 10)
	if err != nil {
		return nil, err
	}
	summaries := make([]resp.TripSummary, 0, len(upcoming))
	for i := range upcoming {
		summaries = append(summaries, resp.NewTripSummary(&upcoming[i]))
	}

	board := &resp.GuideDashboard{
		PendingAssignments:  pending,
		AcceptedAssignments: accepted,
		UpcomingTrips:       summaries,
	}

	guide, err := s.userRepo.FindByID(ctx, guideID)
	if err != nil {
		return nil, err
	}
	if guide != nil {
		profile := guide.GuideProfile.Data()
		board.ToursAssigned = profile.ToursAssigned
		board.ToursCompleted = profile.ToursCompleted
	}

	return board, nil
}
