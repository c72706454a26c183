package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type TripStatus string

const (
	TripDraft     TripStatus = "draft"
	TripPublished TripStatus = "published"
	TripFull      TripStatus = "full"
	TripCompleted TripStatus = "completed"
	TripCancelled TripStatus = "cancelled"
)

// full <-> published flips are driven by capacity, the rest by the
// organiser.
var tripTransitions = map[TripStatus][]TripStatus{
	TripDraft:     {TripPublished, TripCancelled},
	TripPublished: {TripFull, TripCompleted, TripCancelled},
	TripFull:      {TripPublished, TripCompleted, TripCancelled},
}

func (s TripStatus) CanTransitionTo(next TripStatus) bool {
	for _, allowed := range tripTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCompleted, BookingCancelled},
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPartial   PaymentStatus = "partial"
	PaymentCompleted PaymentStatus = "completed"
	PaymentRefunded  PaymentStatus = "refunded"
)

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending:   {PaymentPartial, PaymentCompleted},
	PaymentPartial:   {PaymentCompleted},
	PaymentCompleted: {PaymentRefunded},
}

func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	for _, allowed := range paymentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type GuideAssignmentStatus string

const (
	GuideNotAssigned GuideAssignmentStatus = "not_assigned"
	GuidePending     GuideAssignmentStatus = "pending"
	GuideAccepted    GuideAssignmentStatus = "accepted"
	GuideRejected    GuideAssignmentStatus = "rejected"
)

// A rejected assignment may be retried with another guide. There is no
// expiry on pending.
var guideAssignmentTransitions = map[GuideAssignmentStatus][]GuideAssignmentStatus{
	GuideNotAssigned: {GuidePending},
	GuidePending:     {GuideAccepted, GuideRejected},
	GuideRejected:    {GuidePending},
}

func (s GuideAssignmentStatus) CanTransitionTo(next GuideAssignmentStatus) bool {
	for _, allowed := range guideAssignmentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Booking lives inside its trip row and has no identity outside it.
type Booking struct {
	ID             uuid.UUID     `json:"id"`
	TouristID      uuid.UUID     `json:"tourist_id"`
	ContactName    string        `json:"contact_name"`
	ContactEmail   string        `json:"contact_email"`
	NumberOfPeople int           `json:"number_of_people"`
	TotalMinor     int64         `json:"total_minor"`
	Currency       string        `json:"currency"`
	Status         BookingStatus `json:"status"`
	PaymentStatus  PaymentStatus `json:"payment_status"`
	RefundPercent  int           `json:"refund_percent,omitempty"`
	RefundMinor    int64         `json:"refund_minor,omitempty"`
	CreatedAt      int64         `json:"created_at"`
	UpdatedAt      int64         `json:"updated_at"`
	CancelledAt    *int64        `json:"cancelled_at,omitempty"`
}

type HotelOption struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Stars              int       `json:"stars"`
	PricePerNightMinor int64     `json:"price_per_night_minor"`
	Notes              string    `json:"notes,omitempty"`
}

// RefundTier grants RefundPercent when the cancellation happens strictly
// more than DaysBefore days ahead of the trip start.
type RefundTier struct {
	DaysBefore    int `json:"days_before"`
	RefundPercent int `json:"refund_percent"`
}

// DefaultCancellationPolicy returns the stock tiers: more than 7 days out
// refunds 90%, more than 3 days 50%, later cancellations nothing.
func DefaultCancellationPolicy() []RefundTier {
	return []RefundTier{
		{DaysBefore: 7, RefundPercent: 90},
		{DaysBefore: 3, RefundPercent: 50},
	}
}

// RefundPercentFor picks the refund percentage for a cancellation made
// daysUntilStart days ahead. Tiers are checked most-generous first.
func RefundPercentFor(tiers []RefundTier, daysUntilStart int) int {
	best := 0
	bestDays := -1
	for _, t := range tiers {
		if daysUntilStart > t.DaysBefore && t.DaysBefore > bestDays {
			best = t.RefundPercent
			bestDays = t.DaysBefore
		}
	}
	return best
}

type Trip struct {
	BaseModel
	OrganiserID  uuid.UUID `gorm:"type:uuid;index"`
	AttractionID uuid.UUID `gorm:"type:uuid;index"`

	SecondaryAttractionIDs datatypes.JSONSlice[uuid.UUID] `gorm:"type:jsonb;default:'[]'"`

	Title       string
	Description string
	StartDate   int64 `gorm:"index"`
	EndDate     int64

	PriceMinor int64  // per person
	Currency   string `gorm:"size:3"`

	MaxPeople       int
	CurrentBookings int
	Status          TripStatus `gorm:"index;default:draft"`

	Bookings     datatypes.JSONSlice[Booking]     `gorm:"type:jsonb;default:'[]'"`
	HotelOptions datatypes.JSONSlice[HotelOption] `gorm:"type:jsonb;default:'[]'"`

	GuideID              *uuid.UUID            `gorm:"type:uuid"`
	GuideStatus          GuideAssignmentStatus `gorm:"default:not_assigned"`
	GuideRejectionReason string

	CancellationPolicy datatypes.JSONSlice[RefundTier] `gorm:"type:jsonb;default:'[]'"`

	BookingsCount int
	RevenueMinor  int64
}

// FindBooking returns a pointer into the embedded list so callers can
// mutate the booking in place before saving the row.
func (t *Trip) FindBooking(id uuid.UUID) *Booking {
	for i := range t.Bookings {
		if t.Bookings[i].ID == id {
			return &t.Bookings[i]
		}
	}
	return nil
}

func (t *Trip) RemainingCapacity() int {
	return t.MaxPeople - t.CurrentBookings
}

// RecalculateAggregates rebuilds every derived field from the embedded
// booking list: the active head-count, the booking and revenue counters,
// and the full/published flip. It is the only place these fields change.
func (t *Trip) RecalculateAggregates() {
	current := 0
	revenue := int64(0)
	for _, b := range t.Bookings {
		if b.Status != BookingCancelled {
			current += b.NumberOfPeople
			revenue += b.TotalMinor
		} else {
			revenue += b.TotalMinor - b.RefundMinor
		}
	}
	t.CurrentBookings = current
	t.BookingsCount = len(t.Bookings)
	t.RevenueMinor = revenue

	switch {
	case t.Status == TripPublished && t.CurrentBookings >= t.MaxPeople:
		t.Status = TripFull
	case t.Status == TripFull && t.CurrentBookings < t.MaxPeople:
		t.Status = TripPublished
	}
}
