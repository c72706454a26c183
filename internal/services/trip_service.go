package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"tourship/internal/models/db_models"
	"tourship/internal/models/request_models"
	"tourship/internal/models/response_models"
	"tourship/internal/repositories"
	"tourship/pkg/utils"
)

type TripServiceInterface interface {
	// Organiser lifecycle
	Create(ctx context.Context, organiserID string, request request_models.CreateTripRequest) (response_models.TripDetail, error)
	Update(ctx context.Context, organiserID, tripID string, request request_models.UpdateTripRequest) (response_models.TripDetail, error)
	Delete(ctx context.Context, organiserID, tripID string) error
	Publish(ctx context.Context, organiserID, tripID string) (response_models.TripDetail, error)
	Cancel(ctx context.Context, organiserID, tripID string) (response_models.TripDetail, error)
	Complete(ctx context.Context, organiserID, tripID string) (response_models.TripDetail, error)
	ListOwn(ctx context.Context, organiserID, status string, page utils.Pagination) (response_models.PagedResponse[response_models.TripSummary], error)
	GetOwn(ctx context.Context, organiserID, tripID string) (response_models.TripDetail, error)

	// Hotel options
	AddHotelOption(ctx context.Context, organiserID, tripID string, request request_models.HotelOptionPayload) (response_models.TripDetail, error)
	RemoveHotelOption(ctx context.Context, organiserID, tripID, optionID string) (response_models.TripDetail, error)

	// Booking management (organiser side)
	ConfirmBooking(ctx context.Context, organiserID, tripID, bookingID string) (response_models.BookingResponse, error)
	CompleteBooking(ctx context.Context, organiserID, tripID, bookingID string) (response_models.BookingResponse, error)
	UpdateBookingPayment(ctx context.Context, organiserID, tripID, bookingID string, request request_models.UpdatePaymentStatusRequest) (response_models.BookingResponse, error)

	// Guide assignment
	AssignGuide(ctx context.Context, organiserID, tripID string, request request_models.AssignGuideRequest) (response_models.TripDetail, error)
	RespondToAssignment(ctx context.Context, guideID, tripID string, request request_models.GuideRespondRequest) (response_models.TripDetail, error)
	ListGuideTrips(ctx context.Context, guideID string) ([]response_models.TripSummary, error)

	// Public catalogue
	ListPublic(ctx context.Context, query request_models.ListTripsQuery, page utils.Pagination) (response_models.PagedResponse[response_models.TripSummary], error)
	GetPublic(ctx context.Context, tripID string) (response_models.TripDetail, error)

	// Tourist bookings
	Book(ctx context.Context, touristID, tripID string, request request_models.AddBookingRequest) (response_models.BookingResponse, error)
	ListMyBookings(ctx context.Context, touristID string) ([]response_models.BookingResponse, error)
	CancelMyBooking(ctx context.Context, touristID, tripID, bookingID string) (response_models.BookingResponse, error)
}

type TripService struct {
	tripRepo       repositories.TripRepository
	attractionRepo repositories.AttractionRepository
	userRepo       repositories.UserRepository
	mail           MailService
}

func NewTripService(tripRepo repositories.TripRepository, attractionRepo repositories.AttractionRepository, userRepo repositories.UserRepository, mail MailService) TripServiceInterface {
	return &TripService{
		tripRepo:       tripRepo,
		attractionRepo: attractionRepo,
		userRepo:       userRepo,
		mail:           mail,
	}
}

// ---------- Organiser lifecycle ----------

func (s *TripService) Create(ctx context.Context, organiserID string, request request_models.CreateTripRequest) (response_models.TripDetail, error) {
	organiser, err := uuid.Parse(organiserID)
	if err != nil {
		return response_models.TripDetail{}, utils.ErrInvalidInput
	}

	attraction, err := s.attractionRepo.FindByID(ctx, request.AttractionID.String())
	if err != nil {
		return response_models.TripDetail{}, utils.ErrDatabaseError
	}
	if attraction == nil {
		return response_models.TripDetail{}, utils.ErrAttractionNotFound
	}

	policy := db_models.DefaultCancellationPolicy()
	if len(request.CancellationPolicy) > 0 {
		policy = make([]db_models.RefundTier, 0, len(request.CancellationPolicy))
		for _, t := range request.CancellationPolicy {
			policy = append(policy, db_models.RefundTier{DaysBefore: t.DaysBefore, RefundPercent: t.RefundPercent})
		}
	}

	hotels := make([]db_models.HotelOption, 0, len(request.HotelOptions))
	for _, h := range request.HotelOptions {
		hotels = append(hotels, db_models.HotelOption{
			ID:                 uuid.New(),
			Name:               h.Name,
			Stars:              h.Stars,
			PricePerNightMinor: h.PricePerNightMinor,
			Notes:              h.Notes,
		})
	}

	trip := &db_models.Trip{
		OrganiserID:            organiser,
		AttractionID:           request.AttractionID,
		SecondaryAttractionIDs: datatypes.NewJSONSlice(request.SecondaryAttractionIDs),
		Title:                  request.Title,
		Description:            request.Description,
		StartDate:              request.StartDate,
		EndDate:                request.EndDate,
		PriceMinor:             request.PriceMinor,
		Currency:               request.Currency,
		MaxPeople:              request.MaxPeople,
		Status:                 db_models.TripDraft,
		HotelOptions:           datatypes.NewJSONSlice(hotels),
		GuideStatus:            db_models.GuideNotAssigned,
		CancellationPolicy:     datatypes.NewJSONSlice(policy),
	}

	if err := s.tripRepo.Insert(ctx, trip); err != nil {
		return response_models.TripDetail{}, utils.ErrDatabaseError
	}

	return response_models.NewTripDetail(trip, true), nil
}

// Update edits a draft. Published trips are immutable apart from their
// dedicated transitions.
func (s *TripService) Update(ctx context.Context, organiserID, tripID string, request request_models.UpdateTripRequest) (response_models.TripDetail, error) {
	trip, err := s.loadOwn(ctx, organiserID, tripID)
	if err != nil {
		return response_models.TripDetail{}, err
	}
	if trip.Status != db_models.TripDraft {
		return response_models.TripDetail{}, utils.ErrInvalidTransition
	}

	if request.AttractionID != nil {
		attraction, err := s.attractionRepo.FindByID(ctx, request.AttractionID.String())
		if err != nil {
			return response_models.TripDetail{}, utils.ErrDatabaseError
		}
		if attraction == nil {
			return response_models.TripDetail{}, utils.ErrAttractionNotFound
		}
		trip.AttractionID = *request.AttractionID
	}
	if request.SecondaryAttractionIDs != nil {
		trip.SecondaryAttractionIDs = datatypes.NewJSONSlice(request.SecondaryAttractionIDs)
	}
	if request.Title != nil {
		trip.Title = *request.Title
	}
	if request.Description != nil {
		trip.Description = *request.Description
	}
	if request.StartDate != nil {
		trip.StartDate = *request.StartDate
	}
	if request.EndDate != nil {
		trip.EndDate = *request.EndDate
	}
	if trip.EndDate < trip.StartDate {
		return response_models.TripDetail{}, utils.ErrInvalidInput
	}
	if request.PriceMinor != nil {
		trip.PriceMinor = *request.PriceMinor
	}
	if request.Currency != nil {
		trip.Currency = *request.Currency
	}
	if request.MaxPeople != nil {
		trip.MaxPeople = *request.MaxPeople
	}
	if request.CancellationPolicy != nil {
		policy := make([]db_models.RefundTier, 0, len(request.CancellationPolicy))
		for _, t := range request.CancellationPolicy {
			policy = append(policy, db_models.RefundTier{DaysBefore: t.DaysBefore, RefundPercent: t.RefundPercent})
		}
		trip.CancellationPolicy = datatypes.NewJSONSlice(policy)
	}

	if err := s.tripRepo.Save(ctx, trip); err != nil {
		return response_models.TripDetail{}, utils.ErrDatabaseError
	}
	return response_models.NewTripDetail(trip, true), nil
}

func (s *TripService) Delete(ctx context.Context, organiserID, tripID string) error {
	trip, err := s.loadOwn(ctx, organiserID, tripID)
	if err != nil {
		return err
	}
	if trip.Status != db_models.TripDraft {
		return utils.ErrInvalidTransition
	}
	if err := s.tripRepo.Delete(ctx, trip.ID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *TripService) Publish(ctx context.Context, organiserID, tripID string) (response_models.TripDetail, error) {
	trip, err := s.loadOwn(ctx, organiserID, tripID)
	if err != nil {
		return response_models.TripDetail{}, err
	}
	if !trip.Status.CanTransitionTo(db_models.TripPublished) {
		return response_models.TripDetail{}, utils.ErrInvalidTransition
	}
	trip.Status = db_models.TripPublished

	if err := s.tripRepo.Save(ctx, trip); err != nil {
		return response_models.TripDetail{}, utils.ErrDatabaseError
	}

	// Count the publication on the organiser's profile.
	if organiser, err := s.userRepo.FindByID(ctx, organiserID); err == nil && organiser != nil {
		p := organiser.OrganiserProfile.Data()
		p.TripsPublished++
		organiser.OrganiserProfile = datatypes.NewJSONType(p)
		if err := s.userRepo.Save(ctx, organiser); err != nil {
			log.Printf("failed to bump trips published for %s: %v", organiserID, err)
		}
	}

	return response_models.NewTripDetail(trip, true), nil
}

// Cancel stops a trip and cancels every active booking with a full
// refund, whatever the policy tiers say.
func (s *TripService) Cancel(ctx context.Context, organiserID, tripID string) (response_models.TripDetail, error) {
	trip, err := s.loadOwn(ctx, organiserID, tripID)
	if err != nil {
		return response_models.TripDetail{}, err
	}
	if !trip.Status.CanTransitionTo(db_models.TripCancelled) {
		return response_models.TripDetail{}, utils.ErrInvalidTransition
	}

	now := time.Now().Unix()
	type notice struct {
		email, name string
		refund      int64
	}
	var notices []notice

	for i := range trip.Bookings {
		b := &trip.Bookings[i]
		if b.Status == db_models.BookingCancelled {
			continue
		}
		b.Status = db_models.BookingCancelled
		b.RefundPercent = 100
		b.RefundMinor = b.TotalMinor
		if b.PaymentStatus.CanTransitionTo(db_models.PaymentRefunded) {
			b.PaymentStatus = db_models.PaymentRefunded
		}
		b.CancelledAt = &now
		b.UpdatedAt = now
		notices = append(notices, notice{email: b.ContactEmail, name: b.ContactName, refund: b.RefundMinor})
	}

	trip.Status = db_models.TripCancelled
	trip.RecalculateAggregates()

	if err := s.tripRepo.Save(ctx, trip); err != nil {
		return response_models.TripDetail{}, utils.ErrDatabaseError
	}

	for _, n := range notices {
		if err := s.mail.SendTripCancelled(n.email, n.name, trip.Title, n.refund, trip.Currency); err != nil {
			log.Printf("failed to send cancellation mail to %s: %v", n.email, err)
		}
	}

	return response_models.NewTripDetail(trip, true), nil
}

// Complete closes out a finished trip: confirmed bookings complete with
// it, and an accepted guide gets the tour counted.
func (s *TripService) Complete(ctx context.Context, organiserID, tripID string) (response_models.TripDetail, error) {
	trip, err := s.loadOwn(ctx, organiserID, tripID)
	if err != nil {
		return response_models.TripDetail{}, err
	}
	if !trip.Status.CanTransitionTo(db_models.TripCompleted) {
		return response_models.TripDetail{}, utils.ErrInvalidTransition
	}

	now := time.Now().Unix()
	for i := range trip.Bookings {
		b := &trip.Bookings[i]
		if b.Status == db_models.BookingConfirmed {
			b.Status = db_models.BookingCompleted
			b.UpdatedAt = now
		}
	}
	trip.Status = db_models.TripCompleted
	trip.RecalculateAggregates()

	if err := s.tripRepo.Save(ctx, trip); err != nil {
		return response_models.TripDetail{}, utils.ErrDatabaseError
	}

	if trip.GuideID != nil && trip.GuideStatus == db_models.GuideAccepted {
		if guide, err := s.userRepo.FindByID(ctx, trip.GuideID.String()); err == nil && guide != nil {
			p := guide.GuideProfile.Data()
			p.ToursCompleted++
			guide.GuideProfile = datatypes.NewJSONType(p)
			if err := s.userRepo.Save(ctx, guide); err != nil {
				log.Printf("failed to bump tours completed for guide %s: %v", trip.GuideID, err)
			}
		}
	}

	return response_models.NewTripDetail(trip, true), nil
}

func (s *TripService) ListOwn(ctx context.Context, organiserID, status string, page utils.Pagination) (response_models.PagedResponse[response_models.TripSummary], error) {
	organiser, err := uuid.Parse(organiserID)
	if err != nil {
		return response_models.PagedResponse[response_models.TripSummary]{}, utils.ErrInvalidInput
	}

	trips, total, err := s.tripRepo.ListByOrganiser(ctx, organiser, db_models.TripStatus(status), page.Page, page.PageSize)
	if err != nil {
		return response_models.PagedResponse[response_models.TripSummary]{}, utils.ErrDatabaseError
	}

	items := make([]response_models.TripSummary, 0, len(trips))
	for i := range trips {
		items = append(items, response_models.NewTripSummary(&trips[i]))
	}
	return response_models.NewPagedResponse(items, page.Page, page.PageSize, total, utils.TotalPages(total, page.PageSize)), nil
}

func (s *TripService) GetOwn(ctx context.Context, organiserID, tripID string) (response_models.TripDetail, error) {
	trip, err := s.loadOwn(ctx, organiserID, tripID)
	if err != nil {
		return response_models.TripDetail{}, err
	}
	return response_models.NewTripDetail(trip, true), nil
}

// ---------- Hotel options ----------

func (s *TripService) AddHotelOption(ctx context.Context, organiserID, tripID string, request request_models.HotelOptionPayload) (response_models.TripDetail, error) {
	trip, err := s.loadOwn(ctx, organiserID, tripID)
	if err != nil {
		return response_models.TripDetail{}, err
	}

	trip.HotelOptions = append(trip.HotelOptions, db_models.HotelOption{
		ID:                 uuid.New(),
		Name:               request.Name,
		Stars:              request.Stars,
		PricePerNightMinor: request.PricePerNightMinor,
		Notes:              request.Notes,
	})

	if err := s.tripRepo.Save(ctx, trip); err != nil {
		return response_models.TripDetail{}, utils.ErrDatabaseError
	}
	return response_models.NewTripDetail(trip, true), nil
}

func (s *TripService) RemoveHotelOption(ctx context.Context, organiserID, tripID, optionID string) (response_models.TripDetail, error) {
	trip, err := s.loadOwn(ctx, organiserID, tripID)
	if err != nil {
		return response_models.TripDetail{}, err
	}

	id, err := uuid.Parse(optionID)
	if err != nil {
		return response_models.TripDetail{}, utils.ErrInvalidInput
	}

	kept := trip.HotelOptions[:0]
	found := false
	for _, h := range trip.HotelOptions {
		if h.ID == id {
			found = true
			continue
		}
		kept = append(kept, h)
	}
	if !found {
		return response_models.TripDetail{}, utils.ErrInvalidInput
	}
	trip.HotelOptions = kept

	if err := s.tripRepo.Save(ctx, trip); err != nil {
		return response_models.TripDetail{}, utils.ErrDatabaseError
	}
	return response_models.NewTripDetail(trip, true), nil
}

// ---------- Booking management (organiser side) ----------

func (s *TripService) ConfirmBooking(ctx context.Context, organiserID, tripID, bookingID string) (response_models.BookingResponse, error) {
	trip, booking, err := s.loadOwnBooking(ctx, organiserID, tripID, bookingID)
	if err != nil {
		return response_models.BookingResponse{}, err
	}

	if !booking.Status.CanTransitionTo(db_models.BookingConfirmed) {
		return response_models.BookingResponse{}, utils.ErrInvalidTransition
	}
	booking.Status = db_models.BookingConfirmed
	booking.UpdatedAt = time.Now().Unix()

	if err := s.tripRepo.Save(ctx, trip); err != nil {
		return response_models.BookingResponse{}, utils.ErrDatabaseError
	}

	if err := s.mail.SendBookingConfirmation(booking.ContactEmail, booking.ContactName, trip.Title, booking.NumberOfPeople, booking.TotalMinor, booking.Currency, trip.StartDate); err != nil {
		log.Printf("failed to send booking confirmation to %s: %v", booking.ContactEmail, err)
	}

	return response_models.NewBookingResponse(trip, *booking), nil
}

func (s *TripService) CompleteBooking(ctx context.Context, organiserID, tripID, bookingID string) (response_models.BookingResponse, error) {
	trip, booking, err := s.loadOwnBooking(ctx, organiserID, tripID, bookingID)
	if err != nil {
		return response_models.BookingResponse{}, err
	}

	if !booking.Status.CanTransitionTo(db_models.BookingCompleted) {
		return response_models.BookingResponse{}, utils.ErrInvalidTransition
	}
	booking.Status = db_models.BookingCompleted
	booking.UpdatedAt = time.Now().Unix()

	if err := s.tripRepo.Save(ctx, trip); err != nil {
		return response_models.BookingResponse{}, utils.ErrDatabaseError
	}
	return response_models.NewBookingResponse(trip, *booking), nil
}

func (s *TripService) UpdateBookingPayment(ctx context.Context, organiserID, tripID, bookingID string, request request_models.UpdatePaymentStatusRequest) (response_models.BookingResponse, error) {
	trip, booking, err := s.loadOwnBooking(ctx, organiserID, tripID, bookingID)
	if err != nil {
		return response_models.BookingResponse{}, err
	}

	target := db_models.PaymentStatus(request.PaymentStatus)
	if !booking.PaymentStatus.CanTransitionTo(target) {
		return response_models.BookingResponse{}, utils.ErrInvalidTransition
	}
	booking.PaymentStatus = target
	booking.UpdatedAt = time.Now().Unix()

	trip.RecalculateAggregates()
	if err := s.tripRepo.Save(ctx, trip); err != nil {
		return response_models.BookingResponse{}, utils.ErrDatabaseError
	}
	return response_models.NewBookingResponse(trip, *booking), nil
}

// ---------- Guide assignment ----------

func (s *TripService) AssignGuide(ctx context.Context, organiserID, tripID string, request request_models.AssignGuideRequest) (response_models.TripDetail, error) {
	trip, err := s.loadOwn(ctx, organiserID, tripID)
	if err != nil {
		return response_models.TripDetail{}, err
	}

	if !trip.GuideStatus.CanTransitionTo(db_models.GuidePending) {
		return response_models.TripDetail{}, utils.ErrInvalidTransition
	}

	guide, err := s.userRepo.FindByID(ctx, request.GuideID.String())
	if err != nil {
		return response_models.TripDetail{}, utils.ErrDatabaseError
	}
	if guide == nil || guide.Role != db_models.RoleGuide || !guide.IsActive || !guide.IsVerified() {
		return response_models.TripDetail{}, utils.ErrGuideNotEligible
	}

	guideID := guide.ID
	trip.GuideID = &guideID
	trip.GuideStatus = db_models.GuidePending
	trip.GuideRejectionReason = ""

	if err := s.tripRepo.Save(ctx, trip); err != nil {
		return response_models.TripDetail{}, utils.ErrDatabaseError
	}
	return response_models.NewTripDetail(trip, true), nil
}

// RespondToAssignment lets the pending guide accept or reject. Rejecting
// clears the assignment and records the reason.
func (s *TripService) RespondToAssignment(ctx context.Context, guideID, tripID string, request request_models.GuideRespondRequest) (response_models.TripDetail, error) {
	trip, err := s.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		return response_models.TripDetail{}, utils.ErrDatabaseError
	}
	if trip == nil {
		return response_models.TripDetail{}, utils.ErrTripNotFound
	}
	if trip.GuideID == nil || trip.GuideID.String() != guideID {
		return response_models.TripDetail{}, utils.ErrForbidden
	}

	if request.Action == "accept" {
		if !trip.GuideStatus.CanTransitionTo(db_models.GuideAccepted) {
			return response_models.TripDetail{}, utils.ErrInvalidTransition
		}
		trip.GuideStatus = db_models.GuideAccepted

		if guide, err := s.userRepo.FindByID(ctx, guideID); err == nil && guide != nil {
			p := guide.GuideProfile.Data()
			p.ToursAssigned++
			guide.GuideProfile = datatypes.NewJSONType(p)
			if err := s.userRepo.Save(ctx, guide); err != nil {
				log.Printf("failed to bump tours assigned for guide %s: %v", guideID, err)
			}
		}
	} else {
		if !trip.GuideStatus.CanTransitionTo(db_models.GuideRejected) {
			return response_models.TripDetail{}, utils.ErrInvalidTransition
		}
		trip.GuideStatus = db_models.GuideRejected
		trip.GuideRejectionReason = request.Reason
		trip.GuideID = nil
	}

	if err := s.tripRepo.Save(ctx, trip); err != nil {
		return response_models.TripDetail{}, utils.ErrDatabaseError
	}
	return response_models.NewTripDetail(trip, true), nil
}

func (s *TripService) ListGuideTrips(ctx context.Context, guideID string) ([]response_models.TripSummary, error) {
	id, err := uuid.Parse(guideID)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}

	trips, err := s.tripRepo.ListByGuide(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.TripSummary, 0, len(trips))
	for i := range trips {
		out = append(out, response_models.NewTripSummary(&trips[i]))
	}
	return out, nil
}

// ---------- Public catalogue ----------

func (s *TripService) ListPublic(ctx context.Context, query request_models.ListTripsQuery, page utils.Pagination) (response_models.PagedResponse[response_models.TripSummary], error) {
	filter := repositories.TripFilter{
		AttractionID: query.AttractionID,
		City:         query.City,
		StartFrom:    query.StartFrom,
		StartTo:      query.StartTo,
		MinPrice:     query.MinPrice,
		MaxPrice:     query.MaxPrice,
	}

	trips, total, err := s.tripRepo.ListPublic(ctx, filter, query.Sort, page.Page, page.PageSize)
	if err != nil {
		return response_models.PagedResponse[response_models.TripSummary]{}, utils.ErrDatabaseError
	}

	items := make([]response_models.TripSummary, 0, len(trips))
	for i := range trips {
		items = append(items, response_models.NewTripSummary(&trips[i]))
	}
	return response_models.NewPagedResponse(items, page.Page, page.PageSize, total, utils.TotalPages(total, page.PageSize)), nil
}

func (s *TripService) GetPublic(ctx context.Context, tripID string) (response_models.TripDetail, error) {
	trip, err := s.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		return response_models.TripDetail{}, utils.ErrDatabaseError
	}
	if trip == nil || (trip.Status != db_models.TripPublished && trip.Status != db_models.TripFull) {
		return response_models.TripDetail{}, utils.ErrTripNotFound
	}
	return response_models.NewTripDetail(trip, false), nil
}

// ---------- Tourist bookings ----------

// Book reserves seats on a published trip. A request for more people
// than the remaining capacity is rejected and changes nothing.
func (s *TripService) Book(ctx context.Context, touristID, tripID string, request request_models.AddBookingRequest) (response_models.BookingResponse, error) {
	trip, err := s.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		return response_models.BookingResponse{}, utils.ErrDatabaseError
	}
	if trip == nil {
		return response_models.BookingResponse{}, utils.ErrTripNotFound
	}
	if trip.Status != db_models.TripPublished {
		return response_models.BookingResponse{}, utils.ErrTripNotBookable
	}
	if request.NumberOfPeople > trip.RemainingCapacity() {
		return response_models.BookingResponse{}, utils.ErrCapacityExceeded
	}

	tourist, err := s.userRepo.FindByID(ctx, touristID)
	if err != nil {
		return response_models.BookingResponse{}, utils.ErrDatabaseError
	}
	if tourist == nil {
		return response_models.BookingResponse{}, utils.ErrAccountNotFound
	}

	now := time.Now().Unix()
	booking := db_models.Booking{
		ID:             uuid.New(),
		TouristID:      tourist.ID,
		ContactName:    request.ContactName,
		ContactEmail:   request.ContactEmail,
		NumberOfPeople: request.NumberOfPeople,
		TotalMinor:     trip.PriceMinor * int64(request.NumberOfPeople),
		Currency:       trip.Currency,
		Status:         db_models.BookingPending,
		PaymentStatus:  db_models.PaymentPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	trip.Bookings = append(trip.Bookings, booking)
	trip.RecalculateAggregates()

	if err := s.tripRepo.Save(ctx, trip); err != nil {
		return response_models.BookingResponse{}, utils.ErrDatabaseError
	}

	// Count the booking on the tourist's profile.
	p := tourist.TouristProfile.Data()
	p.BookingsCount++
	tourist.TouristProfile = datatypes.NewJSONType(p)
	if err := s.userRepo.Save(ctx, tourist); err != nil {
		log.Printf("failed to bump bookings count for %s: %v", touristID, err)
	}

	return response_models.NewBookingResponse(trip, booking), nil
}

func (s *TripService) ListMyBookings(ctx context.Context, touristID string) ([]response_models.BookingResponse, error) {
	id, err := uuid.Parse(touristID)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}

	trips, err := s.tripRepo.ListByTourist(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	var out []response_models.BookingResponse
	for i := range trips {
		for _, b := range trips[i].Bookings {
			if b.TouristID == id {
				out = append(out, response_models.NewBookingResponse(&trips[i], b))
			}
		}
	}
	if out == nil {
		out = []response_models.BookingResponse{}
	}
	return out, nil
}

// CancelMyBooking cancels the tourist's own booking and applies the
// trip's refund tiers against the days left before departure.
func (s *TripService) CancelMyBooking(ctx context.Context, touristID, tripID, bookingID string) (response_models.BookingResponse, error) {
	trip, err := s.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		return response_models.BookingResponse{}, utils.ErrDatabaseError
	}
	if trip == nil {
		return response_models.BookingResponse{}, utils.ErrTripNotFound
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return response_models.BookingResponse{}, utils.ErrInvalidInput
	}
	booking := trip.FindBooking(id)
	if booking == nil {
		return response_models.BookingResponse{}, utils.ErrBookingNotFound
	}
	if booking.TouristID.String() != touristID {
		return response_models.BookingResponse{}, utils.ErrForbidden
	}
	if !booking.Status.CanTransitionTo(db_models.BookingCancelled) {
		return response_models.BookingResponse{}, utils.ErrInvalidTransition
	}

	now := time.Now()
	days := utils.DaysUntil(time.Unix(trip.StartDate, 0), now)
	percent := db_models.RefundPercentFor(trip.CancellationPolicy, days)

	booking.Status = db_models.BookingCancelled
	booking.RefundPercent = percent
	booking.RefundMinor = booking.TotalMinor * int64(percent) / 100
	if percent > 0 && booking.PaymentStatus.CanTransitionTo(db_models.PaymentRefunded) {
		booking.PaymentStatus = db_models.PaymentRefunded
	}
	nowUnix := now.Unix()
	booking.CancelledAt = &nowUnix
	booking.UpdatedAt = nowUnix

	trip.RecalculateAggregates()

	if err := s.tripRepo.Save(ctx, trip); err != nil {
		return response_models.BookingResponse{}, utils.ErrDatabaseError
	}
	return response_models.NewBookingResponse(trip, *booking), nil
}

// ---------- helpers ----------

func (s *TripService) loadOwn(ctx context.Context, organiserID, tripID string) (*db_models.Trip, error) {
	trip, err := s.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if trip == nil {
		return nil, utils.ErrTripNotFound
	}
	if trip.OrganiserID.String() != organiserID {
		return nil, utils.ErrForbidden
	}
	return trip, nil
}

func (s *TripService) loadOwnBooking(ctx context.Context, organiserID, tripID, bookingID string) (*db_models.Trip, *db_models.Booking, error) {
	trip, err := s.loadOwn(ctx, organiserID, tripID)
	if err != nil {
		return nil, nil, err
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, nil, utils.ErrInvalidInput
	}
	booking := trip.FindBooking(id)
	if booking == nil {
		return nil, nil, utils.ErrBookingNotFound
	}
	return trip, booking, nil
}
