package response_models

import "tourship/internal/models/db_models"

// AttractionSummary is the list/search line item.
type AttractionSummary struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Slug            string   `json:"slug"`
	City            string   `json:"city"`
	Country         string   `json:"country"`
	Category        string   `json:"category"`
	Tags            []string `json:"tags,omitempty"`
	CoverImage      string   `json:"cover_image,omitempty"`
	RatingOverall   float64  `json:"rating_overall"`
	RatingCount     int      `json:"rating_count"`
	PopularityScore float64  `json:"popularity_score"`
	IsFeatured      bool     `json:"is_featured"`
	IsUnesco        bool     `json:"is_unesco"`
	Status          string   `json:"status,omitempty"` // admin views only
}

func NewAttractionSummary(a *db_models.Attraction, includeStatus bool) AttractionSummary {
	r := a.Ratings.Data()
	s := AttractionSummary{
		ID:              a.ID.String(),
		Name:            a.Name,
		Slug:            a.Slug,
		City:            a.City,
		Country:         a.Country,
		Category:        a.Category,
		Tags:            a.Tags,
		CoverImage:      a.Media.Data().CoverImage,
		RatingOverall:   r.Overall,
		RatingCount:     r.Count,
		PopularityScore: a.PopularityScore,
		IsFeatured:      a.IsFeatured,
		IsUnesco:        a.IsUnesco,
	}
	if includeStatus {
		s.Status = string(a.Status)
	}
	return s
}

// AttractionDetail is the full public document minus the raw review
// list, which pages separately.
type AttractionDetail struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Description string   `json:"description,omitempty"`
	City        string   `json:"city"`
	Country     string   `json:"country"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags,omitempty"`

	Location     db_models.Location     `json:"location"`
	OpeningHours db_models.OpeningHours `json:"opening_hours,omitempty"`
	EntryFee     db_models.EntryFee     `json:"entry_fee"`
	Media        db_models.Media        `json:"media"`

	IsFeatured bool   `json:"is_featured"`
	IsUnesco   bool   `json:"is_unesco"`
	Status     string `json:"status,omitempty"` // admin views only

	Ratings       db_models.RatingSummary `json:"ratings"`
	ViewCount     int64                   `json:"view_count"`
	WishlistCount int64                   `json:"wishlist_count"`
	CreatedAt     int64                   `json:"created_at"`
	UpdatedAt     int64                   `json:"updated_at"`
}

func NewAttractionDetail(a *db_models.Attraction, includeStatus bool) AttractionDetail {
	d := AttractionDetail{
		ID:            a.ID.String(),
		Name:          a.Name,
		Slug:          a.Slug,
		Description:   a.Description,
		City:          a.City,
		Country:       a.Country,
		Category:      a.Category,
		Tags:          a.Tags,
		Location:      a.Location.Data(),
		OpeningHours:  a.OpeningHours.Data(),
		EntryFee:      a.EntryFee.Data(),
		Media:         a.Media.Data(),
		IsFeatured:    a.IsFeatured,
		IsUnesco:      a.IsUnesco,
		Ratings:       a.Ratings.Data(),
		ViewCount:     a.ViewCount,
		WishlistCount: a.WishlistCount,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
	if includeStatus {
		d.Status = string(a.Status)
	}
	return d
}

// AttractionStats is the admin per-attraction engagement view.
type AttractionStats struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	ViewCount       int64   `json:"view_count"`
	WishlistCount   int64   `json:"wishlist_count"`
	ReviewCount     int     `json:"review_count"`
	RatingOverall   float64 `json:"rating_overall"`
	Histogram       [5]int  `json:"histogram"`
	PopularityScore float64 `json:"popularity_score"`
}

// CatalogueStats aggregates the whole attraction catalogue for admins.
type CatalogueStats struct {
	Total         int64 `json:"total"`
	Visible       int64 `json:"visible"`
	Hidden        int64 `json:"hidden"`
	Featured      int64 `json:"featured"`
	Unesco        int64 `json:"unesco"`
	TotalViews    int64 `json:"total_views"`
	TotalWishlist int64 `json:"total_wishlist"`
	TotalReviews  int64 `json:"total_reviews"`
}
