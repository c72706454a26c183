package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AttractionStatus string

const (
	AttractionVisible AttractionStatus = "visible"
	AttractionHidden  AttractionStatus = "hidden"
)

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}

type DayHours struct {
	Open  string `json:"open"`  // "08:00"
	Close string `json:"close"` // "17:30"
}

// OpeningHours maps a lowercase weekday name to its hours. A missing day
// means closed.
type OpeningHours map[string]DayHours

type EntryFee struct {
	AdultMinor int64  `json:"adult_minor"`
	ChildMinor int64  `json:"child_minor"`
	Currency   string `json:"currency"`
}

type Media struct {
	CoverImage string   `json:"cover_image,omitempty"`
	Images     []string `json:"images,omitempty"`
}

// Review lives inside its attraction row and has no identity outside it.
type Review struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	UserName  string    `json:"user_name"`
	Rating    int       `json:"rating"` // 1..5
	Comment   string    `json:"comment,omitempty"`
	VisitedAt *int64    `json:"visited_at,omitempty"`
	CreatedAt int64     `json:"created_at"`
}

// RatingSummary is derived from the embedded review list, never edited
// directly. Histogram[0] counts 1-star reviews.
type RatingSummary struct {
	Overall   float64 `json:"overall"`
	Count     int     `json:"count"`
	Histogram [5]int  `json:"histogram"`
}

type Attraction struct {
	BaseModel
	Name        string
	Slug        string `gorm:"uniqueIndex"`
	Description string
	City        string `gorm:"index"`
	Country     string
	Category    string                      `gorm:"index"`
	Tags        datatypes.JSONSlice[string] `gorm:"type:jsonb;default:'[]'"`

	Location     datatypes.JSONType[Location]     `gorm:"type:jsonb;default:'{}'"`
	OpeningHours datatypes.JSONType[OpeningHours] `gorm:"type:jsonb;default:'{}'"`
	EntryFee     datatypes.JSONType[EntryFee]     `gorm:"type:jsonb;default:'{}'"`
	Media        datatypes.JSONType[Media]        `gorm:"type:jsonb;default:'{}'"`

	IsFeatured bool
	IsUnesco   bool
	Status     AttractionStatus `gorm:"index;default:visible"`

	Reviews datatypes.JSONSlice[Review]       `gorm:"type:jsonb;default:'[]'"`
	Ratings datatypes.JSONType[RatingSummary] `gorm:"type:jsonb;default:'{}'"`

	// RatingOverall and RatingCount mirror the Ratings aggregate as plain
	// columns so listings can filter, sort and sum without opening jsonb.
	RatingOverall   float64 `gorm:"index"`
	RatingCount     int
	ViewCount       int64
	WishlistCount   int64
	PopularityScore float64 `gorm:"index"`

	CreatedBy uuid.UUID `gorm:"type:uuid"`
}

// HasReviewBy reports whether the user already reviewed this attraction.
// One review per user is an application rule, not a DB constraint.
func (a *Attraction) HasReviewBy(userID uuid.UUID) bool {
	for _, r := range a.Reviews {
		if r.UserID == userID {
			return true
		}
	}
	return false
}

// RecalculateRatings rebuilds the rating aggregate by a full scan of the
// embedded reviews. Out-of-range ratings are ignored rather than biasing
// the histogram.
func (a *Attraction) RecalculateRatings() {
	var s RatingSummary
	var sum int
	for _, r := range a.Reviews {
		if r.Rating < 1 || r.Rating > 5 {
			continue
		}
		s.Count++
		sum += r.Rating
		s.Histogram[r.Rating-1]++
	}
	if s.Count > 0 {
		s.Overall = float64(sum) / float64(s.Count)
	}
	a.Ratings = datatypes.NewJSONType(s)
	a.RatingOverall = s.Overall
	a.RatingCount = s.Count
}

// RecalculatePopularity rebuilds the popularity score from the current
// counters. The weights are hand-tuned; featured and UNESCO entries get
// flat bonuses.
func (a *Attraction) RecalculatePopularity() {
	r := a.Ratings.Data()
	score := r.Overall*10 +
		float64(a.ViewCount)*0.1 +
		float64(a.WishlistCount)*0.5 +
		float64(r.Count)*2
	if a.IsFeatured {
		score += 25
	}
	if a.IsUnesco {
		score += 50
	}
	a.PopularityScore = score
}
