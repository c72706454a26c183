package request_models

type LocationPayload struct {
	Latitude  float64 `json:"latitude" binding:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" binding:"gte=-180,lte=180"`
	Address   string  `json:"address"`
}

type DayHoursPayload struct {
	Open  string `json:"open" binding:"required"`
	Close string `json:"close" binding:"required"`
}

type EntryFeePayload struct {
	AdultMinor int64  `json:"adult_minor" binding:"gte=0"`
	ChildMinor int64  `json:"child_minor" binding:"gte=0"`
	Currency   string `json:"currency" binding:"omitempty,len=3"`
}

type MediaPayload struct {
	CoverImage string   `json:"cover_image"`
	Images     []string `json:"images"`
}

type CreateAttractionRequest struct {
	Name        string   `json:"name" binding:"required,min=2,max=200"`
	Description string   `json:"description"`
	City        string   `json:"city" binding:"required"`
	Country     string   `json:"country" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Tags        []string `json:"tags"`

	Location     *LocationPayload           `json:"location"`
	OpeningHours map[string]DayHoursPayload `json:"opening_hours"`
	EntryFee     *EntryFeePayload           `json:"entry_fee"`
	Media        *MediaPayload              `json:"media"`

	IsFeatured bool `json:"is_featured"`
	IsUnesco   bool `json:"is_unesco"`
}

// UpdateAttractionRequest is a typed patch: nil means leave unchanged.
type UpdateAttractionRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=2,max=200"`
	Description *string  `json:"description"`
	City        *string  `json:"city"`
	Country     *string  `json:"country"`
	Category    *string  `json:"category"`
	Tags        []string `json:"tags"`

	Location     *LocationPayload           `json:"location"`
	OpeningHours map[string]DayHoursPayload `json:"opening_hours"`
	EntryFee     *EntryFeePayload           `json:"entry_fee"`
	Media        *MediaPayload              `json:"media"`

	IsFeatured *bool   `json:"is_featured"`
	IsUnesco   *bool   `json:"is_unesco"`
	Status     *string `json:"status" binding:"omitempty,oneof=visible hidden"`
}

type BulkCreateAttractionsRequest struct {
	Attractions []CreateAttractionRequest `json:"attractions" binding:"required,min=1,max=100,dive"`
}

type AddReviewRequest struct {
	Rating    int    `json:"rating" binding:"required,gte=1,lte=5"`
	Comment   string `json:"comment" binding:"max=2000"`
	VisitedAt *int64 `json:"visited_at"`
}

// ListAttractionsQuery binds the public catalogue filters. Page and page
// size ride separately through utils.ParsePagination.
type ListAttractionsQuery struct {
	City       string  `form:"city"`
	Country    string  `form:"country"`
	Category   string  `form:"category"`
	Tag        string  `form:"tag"`
	Search     string  `form:"q"`
	MinRating  float64 `form:"min_rating" binding:"gte=0,lte=5"`
	IsFeatured *bool   `form:"is_featured"`
	IsUnesco   *bool   `form:"is_unesco"`
	Sort       string  `form:"sort" binding:"omitempty,oneof=popularity rating views newest"`
}

type BulkAttractionStatusRequest struct {
	IDs    []string `json:"ids" binding:"required,min=1,dive,uuid4"`
	Status string   `json:"status" binding:"required,oneof=visible hidden"`
}

type BulkAttractionDeleteRequest struct {
	IDs []string `json:"ids" binding:"required,min=1,dive,uuid4"`
}
