package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"tourship/internal/models/db_models"
)

// AttractionFilter narrows the public catalogue listing.
type AttractionFilter struct {
	City       string
	Country    string
	Category   string
	Tag        string
	Search     string
	MinRating  float64
	IsFeatured *bool
	IsUnesco   *bool
	// Status restricts visibility; empty means any (admin views).
	Status db_models.AttractionStatus
}

type AttractionRepository interface {
	Insert(ctx context.Context, attraction *db_models.Attraction) error
	Save(ctx context.Context, attraction *db_models.Attraction) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id string) (*db_models.Attraction, error)
	FindBySlug(ctx context.Context, slug string) (*db_models.Attraction, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	List(ctx context.Context, filter AttractionFilter, sort string, page, pageSize int) ([]db_models.Attraction, int64, error)
	BulkSetStatus(ctx context.Context, ids []uuid.UUID, status db_models.AttractionStatus) (int64, error)
	BulkDelete(ctx context.Context, ids []uuid.UUID) (int64, error)
	CatalogueStats(ctx context.Context) (total, visible, featured, unesco, views, wishlists, reviews int64, err error)
}

type attractionRepository struct {
	db *gorm.DB
}

func NewAttractionRepository(db *gorm.DB) AttractionRepository {
	return &attractionRepository{
		db: db,
	}
}

func (a *attractionRepository) Insert(ctx context.Context, attraction *db_models.Attraction) error {
	return a.db.WithContext(ctx).Create(attraction).Error
}

// Save writes the whole document back, reviews and aggregates included.
func (a *attractionRepository) Save(ctx context.Context, attraction *db_models.Attraction) error {
	return a.db.WithContext(ctx).Save(attraction).Error
}

func (a *attractionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := a.db.WithContext(ctx).Delete(&db_models.Attraction{}, "id = ?", id).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func (a *attractionRepository) FindByID(ctx context.Context, id string) (*db_models.Attraction, error) {
	var attraction db_models.Attraction
	err := a.db.WithContext(ctx).First(&attraction, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &attraction, nil
}

func (a *attractionRepository) FindBySlug(ctx context.Context, slug string) (*db_models.Attraction, error) {
	var attraction db_models.Attraction
	err := a.db.WithContext(ctx).First(&attraction, "slug = ?", slug).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &attraction, nil
}

func (a *attractionRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var n int64
	err := a.db.WithContext(ctx).
		Model(&db_models.Attraction{}).
		Where("slug = ?", slug).
		Count(&n).Error
	return n > 0, err
}

func (a *attractionRepository) List(ctx context.Context, filter AttractionFilter, sort string, page, pageSize int) ([]db_models.Attraction, int64, error) {
	query := a.db.WithContext(ctx).Model(&db_models.Attraction{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.City != "" {
		query = query.Where("LOWER(city) = ?", strings.ToLower(filter.City))
	}
	if filter.Country != "" {
		query = query.Where("LOWER(country) = ?", strings.ToLower(filter.Country))
	}
	if filter.Category != "" {
		query = query.Where("LOWER(category) = ?", strings.ToLower(filter.Category))
	}
	if filter.Tag != "" {
		// Tags are stored as a json array of strings; match the quoted token.
		query = query.Where("LOWER(CAST(tags AS TEXT)) LIKE ?", "%\""+strings.ToLower(filter.Tag)+"\"%")
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(city) LIKE ? OR LOWER(CAST(tags AS TEXT)) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if filter.MinRating > 0 {
		query = query.Where("rating_overall >= ?", filter.MinRating)
	}
	if filter.IsFeatured != nil {
		query = query.Where("is_featured = ?", *filter.IsFeatured)
	}
	if filter.IsUnesco != nil {
		query = query.Where("is_unesco = ?", *filter.IsUnesco)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var attractions []db_models.Attraction
	err := query.
		Order(attractionOrder(sort)).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&attractions).Error
	if err != nil {
		return nil, 0, err
	}

	return attractions, total, nil
}

func attractionOrder(sort string) string {
	switch sort {
	case "rating":
		return "rating_overall DESC"
	case "views":
		return "view_count DESC"
	case "newest":
		return "created_at DESC"
	default:
		return "popularity_score DESC"
	}
}

func (a *attractionRepository) BulkSetStatus(ctx context.Context, ids []uuid.UUID, status db_models.AttractionStatus) (int64, error) {
	result := a.db.WithContext(ctx).
		Model(&db_models.Attraction{}).
		Where("id IN ?", ids).
		Update("status", status)
	return result.RowsAffected, result.Error
}

func (a *attractionRepository) BulkDelete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	result := a.db.WithContext(ctx).
		Delete(&db_models.Attraction{}, "id IN ?", ids)
	return result.RowsAffected, result.Error
}

func (a *attractionRepository) CatalogueStats(ctx context.Context) (total, visible, featured, unesco, views, wishlists, reviews int64, err error) {
	model := func() *gorm.DB {
		return a.db.WithContext(ctx).Model(&db_models.Attraction{})
	}

	if err = model().Count(&total).Error; err != nil {
		return
	}
	if err = model().Where("status = ?", db_models.AttractionVisible).Count(&visible).Error; err != nil {
		return
	}
	if err = model().Where("is_featured = ?", true).Count(&featured).Error; err != nil {
		return
	}
	if err = model().Where("is_unesco = ?", true).Count(&unesco).Error; err != nil {
		return
	}

	type sums struct {
		Views     int64
		Wishlists int64
		Reviews   int64
	}
	var s sums
	err = model().
		Select("COALESCE(SUM(view_count), 0) AS views, COALESCE(SUM(wishlist_count), 0) AS wishlists, COALESCE(SUM(rating_count), 0) AS reviews").
		Scan(&s).Error
	views, wishlists, reviews = s.Views, s.Wishlists, s.Reviews
	return
}
