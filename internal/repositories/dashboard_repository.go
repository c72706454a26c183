package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "tourship/internal/models/db_models"
)

type DashboardRepository interface {
	// KPIs / counts
	CountTotalUsers(ctx context.Context) (int64, error)
	CountNewUsers(ctx context.Context, start, end time.Time) (int64, error)
	CountActiveUsers(ctx context.Context) (int64, error)
	CountUsersByRole(ctx context.Context, role dbm.Role) (int64, error)
	CountAttractions(ctx context.Context) (int64, error)
	CountAttractionsByStatus(ctx context.Context, status dbm.AttractionStatus) (int64, error)
	CountTrips(ctx context.Context) (int64, error)
	CountTripsByStatus(ctx context.Context, status dbm.TripStatus) (int64, error)
	CountVerificationQueue(ctx context.Context) (int64, error)

	// Time series (date_trunc bucketing, Postgres)
	NewUsersSeries(ctx context.Context, start, end time.Time, interval, tz string) ([]BucketSum, error)

	// Booking and revenue figures live inside the trip documents; the
	// service unpacks these rows in Go.
	TripsWithBookings(ctx context.Context) ([]dbm.Trip, error)

	// Top attractions
	TopAttractions(ctx context.Context, limit int) ([]dbm.Attraction, error)

	// Guide dashboard
	CountGuideAssignments(ctx context.Context, guideID uuid.UUID, status dbm.GuideAssignmentStatus) (int64, error)
	UpcomingGuideTrips(ctx context.Context, guideID uuid.UUID, after int64, limit int) ([]dbm.Trip, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

// ---------- Row helpers ----------
type BucketSum struct {
	Bucket time.Time `gorm:"column:bucket"`
	Sum    int64     `gorm:"column:sum"`
}

// ---------- Helpers ----------
func dateTrunc(interval, tz string, unixColumn string) string {
	// unixColumn holds UNIX seconds (e.g., created_at). Convert to
	// timestamptz, then date_trunc with a timezone.
	// Example: date_trunc('day', timezone('Europe/Lisbon', to_timestamp(created_at)))
	if tz == "" {
		return "date_trunc(?, to_timestamp(" + unixColumn + "))"
	}
	return "date_trunc(?, timezone(?, to_timestamp(" + unixColumn + ")))"
}

// ---------- Counts ----------
func (r *dashboardRepository) CountTotalUsers(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&dbm.User{}).Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountNewUsers(ctx context.Context, start, end time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&dbm.User{}).
		Where("created_at BETWEEN ? AND ?", start.Unix(), end.Unix()).
		Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountActiveUsers(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&dbm.User{}).
		Where("is_active = ?", true).
		Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountUsersByRole(ctx context.Context, role dbm.Role) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&dbm.User{}).
		Where("role = ?", role).
		Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountAttractions(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&dbm.Attraction{}).Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountAttractionsByStatus(ctx context.Context, status dbm.AttractionStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&dbm.Attraction{}).
		Where("status = ?", status).
		Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountTrips(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&dbm.Trip{}).Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountTripsByStatus(ctx context.Context, status dbm.TripStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&dbm.Trip{}).
		Where("status = ?", status).
		Count(&n).Error
	return n, err
}

// CountVerificationQueue counts guide and organiser profiles waiting on
// an admin decision. The status lives inside the profile document.
func (r *dashboardRepository) CountVerificationQueue(ctx context.Context) (int64, error) {
	var n int64
	pattern := "%" + string(dbm.VerificationUnderReview) + "%"
	err := r.db.WithContext(ctx).
		Model(&dbm.User{}).
		Where("role IN ?", []dbm.Role{dbm.RoleGuide, dbm.RoleOrganiser}).
		Where("CAST(guide_profile AS TEXT) LIKE ? OR CAST(organiser_profile AS TEXT) LIKE ?", pattern, pattern).
		Count(&n).Error
	return n, err
}

// ---------- Series ----------
func (r *dashboardRepository) NewUsersSeries(ctx context.Context, start, end time.Time, interval, tz string) ([]BucketSum, error) {
	var rows []BucketSum
	truncExpr := dateTrunc(interval, tz, "created_at")
	tx := r.db.WithContext(ctx).
		Table("users").
		Select(truncExpr+" AS bucket, COUNT(*) AS sum", interval, tz).
		Where("created_at BETWEEN ? AND ?", start.Unix(), end.Unix()).
		Group("bucket").
		Order("bucket ASC")
	err := tx.Find(&rows).Error
	return rows, err
}

// ---------- Trip documents ----------
func (r *dashboardRepository) TripsWithBookings(ctx context.Context) ([]dbm.Trip, error) {
	var trips []dbm.Trip
	err := r.db.WithContext(ctx).
		Where("bookings_count > 0").
		Find(&trips).Error
	return trips, err
}

// ---------- Top attractions ----------
func (r *dashboardRepository) TopAttractions(ctx context.Context, limit int) ([]dbm.Attraction, error) {
	var rows []dbm.Attraction
	err := r.db.WithContext(ctx).
		Where("status = ?", dbm.AttractionVisible).
		Order("popularity_score DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// ---------- Guide dashboard ----------
func (r *dashboardRepository) CountGuideAssignments(ctx context.Context, guideID uuid.UUID, status dbm.GuideAssignmentStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&dbm.Trip{}).
		Where("guide_id = ? AND guide_status = ?", guideID, status).
		Count(&n).Error
	return n, err
}

func (r *dashboardRepository) UpcomingGuideTrips(ctx context.Context, guideID uuid.UUID, after int64, limit int) ([]dbm.Trip, error) {
	var trips []dbm.Trip
	err := r.db.WithContext(ctx).
		Where("guide_id = ? AND guide_status = ?", guideID, dbm.GuideAccepted).
		Where("start_date >= ?", after).
		Order("start_date ASC").
		Limit(limit).
		Find(&trips).Error
	return trips, err
}
