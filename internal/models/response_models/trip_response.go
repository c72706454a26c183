package response_models

import "tourship/internal/models/db_models"

// TripSummary is the public catalogue line item.
type TripSummary struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	AttractionID    string `json:"attraction_id"`
	OrganiserID     string `json:"organiser_id"`
	StartDate       int64  `json:"start_date"`
	EndDate         int64  `json:"end_date"`
	PriceMinor      int64  `json:"price_minor"`
	Currency        string `json:"currency"`
	MaxPeople       int    `json:"max_people"`
	CurrentBookings int    `json:"current_bookings"`
	SpotsLeft       int    `json:"spots_left"`
	Status          string `json:"status"`
}

func NewTripSummary(t *db_models.Trip) TripSummary {
	return TripSummary{
		ID:              t.ID.String(),
		Title:           t.Title,
		AttractionID:    t.AttractionID.String(),
		OrganiserID:     t.OrganiserID.String(),
		StartDate:       t.StartDate,
		EndDate:         t.EndDate,
		PriceMinor:      t.PriceMinor,
		Currency:        t.Currency,
		MaxPeople:       t.MaxPeople,
		CurrentBookings: t.CurrentBookings,
		SpotsLeft:       t.RemainingCapacity(),
		Status:          string(t.Status),
	}
}

// TripDetail is the full document. Bookings are included only in the
// organiser's own view; the public one carries them nil.
type TripDetail struct {
	TripSummary
	Description            string                   `json:"description,omitempty"`
	SecondaryAttractionIDs []string                 `json:"secondary_attraction_ids,omitempty"`
	HotelOptions           []db_models.HotelOption  `json:"hotel_options,omitempty"`
	CancellationPolicy     []db_models.RefundTier   `json:"cancellation_policy,omitempty"`
	GuideID                string                   `json:"guide_id,omitempty"`
	GuideStatus            string                   `json:"guide_status"`
	GuideRejectionReason   string                   `json:"guide_rejection_reason,omitempty"`
	BookingsCount          int                      `json:"bookings_count"`
	RevenueMinor           *int64                   `json:"revenue_minor,omitempty"` // organiser view only
	Bookings               []db_models.Booking      `json:"bookings,omitempty"`      // organiser view only
	CreatedAt              int64                    `json:"created_at"`
	UpdatedAt              int64                    `json:"updated_at"`
}

func NewTripDetail(t *db_models.Trip, ownerView bool) TripDetail {
	d := TripDetail{
		TripSummary:          NewTripSummary(t),
		Description:          t.Description,
		HotelOptions:         t.HotelOptions,
		CancellationPolicy:   t.CancellationPolicy,
		GuideStatus:          string(t.GuideStatus),
		GuideRejectionReason: t.GuideRejectionReason,
		BookingsCount:        t.BookingsCount,
		CreatedAt:            t.CreatedAt,
		UpdatedAt:            t.UpdatedAt,
	}
	for _, id := range t.SecondaryAttractionIDs {
		d.SecondaryAttractionIDs = append(d.SecondaryAttractionIDs, id.String())
	}
	if t.GuideID != nil {
		d.GuideID = t.GuideID.String()
	}
	if ownerView {
		d.Bookings = t.Bookings
		revenue := t.RevenueMinor
		d.RevenueMinor = &revenue
	}
	return d
}

// BookingResponse pairs an embedded booking with enough of its parent
// trip for the tourist's list view.
type BookingResponse struct {
	TripID        string            `json:"trip_id"`
	TripTitle     string            `json:"trip_title"`
	TripStartDate int64             `json:"trip_start_date"`
	TripEndDate   int64             `json:"trip_end_date"`
	TripStatus    string            `json:"trip_status"`
	Booking       db_models.Booking `json:"booking"`
}

func NewBookingResponse(t *db_models.Trip, b db_models.Booking) BookingResponse {
	return BookingResponse{
		TripID:        t.ID.String(),
		TripTitle:     t.Title,
		TripStartDate: t.StartDate,
		TripEndDate:   t.EndDate,
		TripStatus:    string(t.Status),
		Booking:       b,
	}
}
