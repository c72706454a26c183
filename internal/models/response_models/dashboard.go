package response_models

import "time"

type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	// "day" | "week" | "month"
	Interval string `json:"interval"`
	// Optional: timezone used for bucketing (defaults to UTC if empty)
	Timezone string `json:"timezone,omitempty"`
}

type KPIBlock struct {
	TotalUsers     int64 `json:"total_users"`
	NewUsers       int64 `json:"new_users"`
	ActiveUsers    int64 `json:"active_users"`
	TouristCount   int64 `json:"tourist_count"`
	GuideCount     int64 `json:"guide_count"`
	OrganiserCount int64 `json:"organiser_count"`
	AdminCount     int64 `json:"admin_count"`

	TotalAttractions   int64 `json:"total_attractions"`
	VisibleAttractions int64 `json:"visible_attractions"`

	TotalTrips     int64 `json:"total_trips"`
	DraftTrips     int64 `json:"draft_trips"`
	PublishedTrips int64 `json:"published_trips"`
	FullTrips      int64 `json:"full_trips"`
	CompletedTrips int64 `json:"completed_trips"`
	CancelledTrips int64 `json:"cancelled_trips"`

	TotalBookings        int64 `json:"total_bookings"`
	ActiveBookings       int64 `json:"active_bookings"`
	PendingVerifications int64 `json:"pending_verifications"`
}

type SeriesPoint struct {
	Bucket time.Time `json:"bucket"`
	Value  int64     `json:"value"`
}

type RevenueSeries struct {
	Currency   string        `json:"currency"`
	Points     []SeriesPoint `json:"points"`
	TotalMinor int64         `json:"total_minor"`
}

type CountSeries struct {
	Points []SeriesPoint `json:"points"`
}

type TopAttraction struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	City            string  `json:"city"`
	PopularityScore float64 `json:"popularity_score"`
	RatingOverall   float64 `json:"rating_overall"`
	ViewCount       int64   `json:"view_count"`
}

type RecentBooking struct {
	BookingID     string `json:"booking_id"`
	TripID        string `json:"trip_id"`
	TripTitle     string `json:"trip_title"`
	ContactName   string `json:"contact_name"`
	People        int    `json:"people"`
	TotalMinor    int64  `json:"total_minor"`
	Currency      string `json:"currency"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	CreatedAt     int64  `json:"created_at"`
}

type DashboardReport struct {
	Range          TimeRange       `json:"range"`
	KPIs           KPIBlock        `json:"kpis"`
	Revenue        RevenueSeries   `json:"revenue"`
	NewUsers       CountSeries     `json:"new_users"`
	NewBookings    CountSeries     `json:"new_bookings"`
	TopAttractions []TopAttraction `json:"top_attractions"`
	RecentBookings []RecentBooking `json:"recent_bookings"`
}

// GuideDashboard is the guide's assignment overview. Rejected
// assignments are not counted here: rejecting clears the trip's guide.
type GuideDashboard struct {
	PendingAssignments  int64         `json:"pending_assignments"`
	AcceptedAssignments int64         `json:"accepted_assignments"`
	ToursAssigned       int           `json:"tours_assigned"`
	ToursCompleted      int           `json:"tours_completed"`
	UpcomingTrips       []TripSummary `json:"upcoming_trips"`
}
