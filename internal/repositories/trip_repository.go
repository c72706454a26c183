package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"tourship/internal/models/db_models"
)

// TripFilter narrows the public trip catalogue.
type TripFilter struct {
	AttractionID string
	City         string // matched through the primary attraction
	StartFrom    int64
	StartTo      int64
	MinPrice     int64
	MaxPrice     int64
}

type TripRepository interface {
	Insert(ctx context.Context, trip *db_models.Trip) error
	Save(ctx context.Context, trip *db_models.Trip) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id string) (*db_models.Trip, error)
	ListPublic(ctx context.Context, filter TripFilter, sort string, page, pageSize int) ([]db_models.Trip, int64, error)
	ListByOrganiser(ctx context.Context, organiserID uuid.UUID, status db_models.TripStatus, page, pageSize int) ([]db_models.Trip, int64, error)
	ListByGuide(ctx context.Context, guideID uuid.UUID) ([]db_models.Trip, error)
	ListByTourist(ctx context.Context, touristID uuid.UUID) ([]db_models.Trip, error)
}

type tripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) TripRepository {
	return &tripRepository{
		db: db,
	}
}

func (t *tripRepository) Insert(ctx context.Context, trip *db_models.Trip) error {
	return t.db.WithContext(ctx).Create(trip).Error
}

// Save writes the whole document back, bookings and counters included.
// Last write wins; there is no optimistic token on the row.
func (t *tripRepository) Save(ctx context.Context, trip *db_models.Trip) error {
	return t.db.WithContext(ctx).Save(trip).Error
}

func (t *tripRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := t.db.WithContext(ctx).Delete(&db_models.Trip{}, "id = ?", id).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func (t *tripRepository) FindByID(ctx context.Context, id string) (*db_models.Trip, error) {
	var trip db_models.Trip
	err := t.db.WithContext(ctx).First(&trip, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &trip, nil
}

func (t *tripRepository) ListPublic(ctx context.Context, filter TripFilter, sort string, page, pageSize int) ([]db_models.Trip, int64, error) {
	query := t.db.WithContext(ctx).
		Model(&db_models.Trip{}).
		Where("trips.status IN ?", []db_models.TripStatus{db_models.TripPublished, db_models.TripFull})

	if filter.AttractionID != "" {
		query = query.Where("trips.attraction_id = ?", filter.AttractionID)
	}
	if filter.City != "" {
		query = query.
			Joins("JOIN attractions ON attractions.id = trips.attraction_id").
			Where("LOWER(attractions.city) = LOWER(?)", filter.City)
	}
	if filter.StartFrom > 0 {
		query = query.Where("trips.start_date >= ?", filter.StartFrom)
	}
	if filter.StartTo > 0 {
		query = query.Where("trips.start_date <= ?", filter.StartTo)
	}
	if filter.MinPrice > 0 {
		query = query.Where("trips.price_minor >= ?", filter.MinPrice)
	}
	if filter.MaxPrice > 0 {
		query = query.Where("trips.price_minor <= ?", filter.MaxPrice)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var trips []db_models.Trip
	err := query.
		Order(tripOrder(sort)).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&trips).Error
	if err != nil {
		return nil, 0, err
	}

	return trips, total, nil
}

func tripOrder(sort string) string {
	switch sort {
	case "price":
		return "trips.price_minor ASC"
	case "newest":
		return "trips.created_at DESC"
	default:
		return "trips.start_date ASC"
	}
}

func (t *tripRepository) ListByOrganiser(ctx context.Context, organiserID uuid.UUID, status db_models.TripStatus, page, pageSize int) ([]db_models.Trip, int64, error) {
	query := t.db.WithContext(ctx).
		Model(&db_models.Trip{}).
		Where("organiser_id = ?", organiserID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var trips []db_models.Trip
	err := query.
		Order("start_date ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&trips).Error
	if err != nil {
		return nil, 0, err
	}

	return trips, total, nil
}

func (t *tripRepository) ListByGuide(ctx context.Context, guideID uuid.UUID) ([]db_models.Trip, error) {
	var trips []db_models.Trip
	err := t.db.WithContext(ctx).
		Where("guide_id = ?", guideID).
		Order("start_date ASC").
		Find(&trips).Error
	return trips, err
}

// ListByTourist finds trips whose embedded booking list mentions the
// tourist. The uuid match on the raw document text is a wide net; the
// caller picks the exact bookings out of each row.
func (t *tripRepository) ListByTourist(ctx context.Context, touristID uuid.UUID) ([]db_models.Trip, error) {
	var trips []db_models.Trip
	err := t.db.WithContext(ctx).
		Where("CAST(bookings AS TEXT) LIKE ?", "%"+touristID.String()+"%").
		Order("start_date ASC").
		Find(&trips).Error
	return trips, err
}
