package db_models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestBookingStatusTransitions(t *testing.T) {
	assert.True(t, BookingPending.CanTransitionTo(BookingConfirmed))
	assert.True(t, BookingPending.CanTransitionTo(BookingCancelled))
	assert.True(t, BookingConfirmed.CanTransitionTo(BookingCompleted))
	assert.True(t, BookingConfirmed.CanTransitionTo(BookingCancelled))

	assert.False(t, BookingPending.CanTransitionTo(BookingCompleted))
	assert.False(t, BookingCompleted.CanTransitionTo(BookingCancelled))
	assert.False(t, BookingCancelled.CanTransitionTo(BookingPending))
}

func TestPaymentStatusTransitions(t *testing.T) {
	assert.True(t, PaymentPending.CanTransitionTo(PaymentPartial))
	assert.True(t, PaymentPending.CanTransitionTo(PaymentCompleted))
	assert.True(t, PaymentPartial.CanTransitionTo(PaymentCompleted))
	assert.True(t, PaymentCompleted.CanTransitionTo(PaymentRefunded))

	assert.False(t, PaymentPending.CanTransitionTo(PaymentRefunded))
	assert.False(t, PaymentPartial.CanTransitionTo(PaymentRefunded))
	assert.False(t, PaymentRefunded.CanTransitionTo(PaymentPending))
}

func TestTripStatusTransitions(t *testing.T) {
	assert.True(t, TripDraft.CanTransitionTo(TripPublished))
	assert.True(t, TripDraft.CanTransitionTo(TripCancelled))
	assert.True(t, TripPublished.CanTransitionTo(TripFull))
	assert.True(t, TripFull.CanTransitionTo(TripPublished))
	assert.True(t, TripPublished.CanTransitionTo(TripCompleted))
	assert.True(t, TripFull.CanTransitionTo(TripCancelled))

	assert.False(t, TripDraft.CanTransitionTo(TripFull))
	assert.False(t, TripCompleted.CanTransitionTo(TripPublished))
	assert.False(t, TripCancelled.CanTransitionTo(TripPublished))
}

func TestGuideAssignmentTransitions(t *testing.T) {
	assert.True(t, GuideNotAssigned.CanTransitionTo(GuidePending))
	assert.True(t, GuidePending.CanTransitionTo(GuideAccepted))
	assert.True(t, GuidePending.CanTransitionTo(GuideRejected))
	assert.True(t, GuideRejected.CanTransitionTo(GuidePending))

	assert.False(t, GuideNotAssigned.CanTransitionTo(GuideAccepted))
	assert.False(t, GuideAccepted.CanTransitionTo(GuideRejected))
	assert.False(t, GuideAccepted.CanTransitionTo(GuidePending))
}

func TestRefundPercentFor(t *testing.T) {
	tiers := DefaultCancellationPolicy()

	assert.Equal(t, 90, RefundPercentFor(tiers, 30))
	assert.Equal(t, 90, RefundPercentFor(tiers, 8))
	assert.Equal(t, 50, RefundPercentFor(tiers, 7)) // not strictly more than 7
	assert.Equal(t, 50, RefundPercentFor(tiers, 4))
	assert.Equal(t, 0, RefundPercentFor(tiers, 3))
	assert.Equal(t, 0, RefundPercentFor(tiers, 1))
	assert.Equal(t, 0, RefundPercentFor(tiers, 0))
	assert.Equal(t, 0, RefundPercentFor(tiers, -2))
}

func TestRefundPercentForCustomUnorderedTiers(t *testing.T) {
	tiers := []RefundTier{
		{DaysBefore: 1, RefundPercent: 10},
		{DaysBefore: 14, RefundPercent: 100},
		{DaysBefore: 5, RefundPercent: 40},
	}

	assert.Equal(t, 100, RefundPercentFor(tiers, 20))
	assert.Equal(t, 40, RefundPercentFor(tiers, 10))
	assert.Equal(t, 10, RefundPercentFor(tiers, 3))
	assert.Equal(t, 0, RefundPercentFor(tiers, 1))
	assert.Equal(t, 0, RefundPercentFor(nil, 30))
}

func activeBooking(people int, total int64) Booking {
	return Booking{
		ID:             uuid.New(),
		TouristID:      uuid.New(),
		NumberOfPeople: people,
		TotalMinor:     total,
		Status:         BookingConfirmed,
		PaymentStatus:  PaymentCompleted,
	}
}

func TestRecalculateAggregatesCountsOnlyActiveBookings(t *testing.T) {
	cancelled := activeBooking(3, 3000)
	cancelled.Status = BookingCancelled
	cancelled.RefundPercent = 90
	cancelled.RefundMinor = 2700

	trip := Trip{
		MaxPeople: 10,
		Status:    TripPublished,
		Bookings: datatypes.NewJSONSlice([]Booking{
			activeBooking(2, 2000),
			activeBooking(4, 4000),
			cancelled,
		}),
	}
	trip.RecalculateAggregates()

	assert.Equal(t, 6, trip.CurrentBookings)
	assert.Equal(t, 3, trip.BookingsCount)
	// 2000 + 4000 active, plus the 300 kept from the cancelled booking.
	assert.Equal(t, int64(6300), trip.RevenueMinor)
	assert.Equal(t, TripPublished, trip.Status)
	assert.Equal(t, 4, trip.RemainingCapacity())
}

func TestRecalculateAggregatesFlipsFullAndBack(t *testing.T) {
	trip := Trip{
		MaxPeople: 5,
		Status:    TripPublished,
		Bookings: datatypes.NewJSONSlice([]Booking{
			activeBooking(3, 3000),
			activeBooking(2, 2000),
		}),
	}
	trip.RecalculateAggregates()
	assert.Equal(t, TripFull, trip.Status)
	assert.Equal(t, 0, trip.RemainingCapacity())

	trip.Bookings[1].Status = BookingCancelled
	trip.RecalculateAggregates()
	assert.Equal(t, TripPublished, trip.Status)
	assert.Equal(t, 3, trip.CurrentBookings)
}

func TestRecalculateAggregatesLeavesDraftAlone(t *testing.T) {
	trip := Trip{
		MaxPeople: 2,
		Status:    TripDraft,
		Bookings:  datatypes.NewJSONSlice([]Booking{activeBooking(2, 2000)}),
	}
	trip.RecalculateAggregates()
	assert.Equal(t, TripDraft, trip.Status)
}

func TestFindBookingReturnsMutablePointer(t *testing.T) {
	b := activeBooking(2, 2000)
	trip := Trip{Bookings: datatypes.NewJSONSlice([]Booking{b})}

	found := trip.FindBooking(b.ID)
	assert.NotNil(t, found)
	found.Status = BookingCompleted
	assert.Equal(t, BookingCompleted, trip.Bookings[0].Status)

	assert.Nil(t, trip.FindBooking(uuid.New()))
}
