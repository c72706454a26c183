package request_models

import "github.com/google/uuid"

type HotelOptionPayload struct {
	Name               string `json:"name" binding:"required"`
	Stars              int    `json:"stars" binding:"gte=1,lte=5"`
	PricePerNightMinor int64  `json:"price_per_night_minor" binding:"gte=0"`
	Notes              string `json:"notes"`
}

type RefundTierPayload struct {
	DaysBefore    int `json:"days_before" binding:"gte=0"`
	RefundPercent int `json:"refund_percent" binding:"gte=0,lte=100"`
}

type CreateTripRequest struct {
	AttractionID           uuid.UUID   `json:"attraction_id" binding:"required"`
	SecondaryAttractionIDs []uuid.UUID `json:"secondary_attraction_ids"`

	Title       string `json:"title" binding:"required,min=3,max=200"`
	Description string `json:"description"`
	StartDate   int64  `json:"start_date" binding:"required,gt=0"`
	EndDate     int64  `json:"end_date" binding:"required,gtefield=StartDate"`

	PriceMinor int64  `json:"price_minor" binding:"gte=0"`
	Currency   string `json:"currency" binding:"required,len=3"`
	MaxPeople  int    `json:"max_people" binding:"required,gt=0"`

	HotelOptions       []HotelOptionPayload `json:"hotel_options" binding:"omitempty,dive"`
	CancellationPolicy []RefundTierPayload  `json:"cancellation_policy" binding:"omitempty,dive"`
}

// UpdateTripRequest is a typed patch: nil means leave unchanged. Trips
// are editable while in draft only.
type UpdateTripRequest struct {
	AttractionID           *uuid.UUID  `json:"attraction_id"`
	SecondaryAttractionIDs []uuid.UUID `json:"secondary_attraction_ids"`

	Title       *string `json:"title" binding:"omitempty,min=3,max=200"`
	Description *string `json:"description"`
	StartDate   *int64  `json:"start_date" binding:"omitempty,gt=0"`
	EndDate     *int64  `json:"end_date" binding:"omitempty,gt=0"`

	PriceMinor *int64  `json:"price_minor" binding:"omitempty,gte=0"`
	Currency   *string `json:"currency" binding:"omitempty,len=3"`
	MaxPeople  *int    `json:"max_people" binding:"omitempty,gt=0"`

	CancellationPolicy []RefundTierPayload `json:"cancellation_policy" binding:"omitempty,dive"`
}

type AddBookingRequest struct {
	ContactName    string `json:"contact_name" binding:"required,min=2,max=100"`
	ContactEmail   string `json:"contact_email" binding:"required,email"`
	NumberOfPeople int    `json:"number_of_people" binding:"required,gt=0"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required,oneof=partial completed refunded"`
}

type AssignGuideRequest struct {
	GuideID uuid.UUID `json:"guide_id" binding:"required"`
}

type GuideRespondRequest struct {
	Action string `json:"action" binding:"required,oneof=accept reject"`
	Reason string `json:"reason" binding:"required_if=Action reject,max=500"`
}

// ListTripsQuery binds the public trip catalogue filters.
type ListTripsQuery struct {
	AttractionID string `form:"attraction_id" binding:"omitempty,uuid4"`
	City         string `form:"city"`
	StartFrom    int64  `form:"start_from" binding:"gte=0"`
	StartTo      int64  `form:"start_to" binding:"gte=0"`
	MinPrice     int64  `form:"min_price" binding:"gte=0"`
	MaxPrice     int64  `form:"max_price" binding:"gte=0"`
	Sort         string `form:"sort" binding:"omitempty,oneof=date price newest"`
}
