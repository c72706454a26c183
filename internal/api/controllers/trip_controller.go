package controllers

import (
	"github.com/gin-gonic/gin"

	"tourship/internal/models/request_models"
	"tourship/internal/services"
	"tourship/pkg/middleware"
	"tourship/pkg/utils"
)

type TripController struct {
	tripService services.TripServiceInterface
}

func NewTripController(tripService services.TripServiceInterface) *TripController {
	return &TripController{
		tripService: tripService,
	}
}

// ListPublic godoc
// @Summary List bookable trips
// @Description Browse published and full trips with filters and sorting
// @Tags Trips
// @Produce json
// @Param attraction_id query string false "Filter by primary attraction"
// @Param city query string false "Filter by the primary attraction's city"
// @Param start_from query int false "Earliest start date (unix seconds)"
// @Param start_to query int false "Latest start date (unix seconds)"
// @Param min_price query int false "Minimum price in minor units"
// @Param max_price query int false "Maximum price in minor units"
// @Param sort query string false "date | price | newest (default: date)"
// @Param page query int false "Page number (default 1)"
// @Param pageSize query int false "Page size (default 20, max 100)"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /trips [get]
func (t *TripController) ListPublic(c *gin.Context) {
	var query request_models.ListTripsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	page, err := utils.ParsePagination(c)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	result, err := t.tripService.ListPublic(c.Request.Context(), query, page)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Trips fetched successfully")
}

// GetPublic godoc
// @Summary Get one trip
// @Description Fetch a published or full trip. Bookings are not exposed here.
// @Tags Trips
// @Produce json
// @Param id path string true "Trip id"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /trips/{id} [get]
func (t *TripController) GetPublic(c *gin.Context) {
	detail, err := t.tripService.GetPublic(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, detail, "Trip fetched successfully")
}

// Book godoc
// @Summary Book a trip
// @Description Reserve seats on a published trip. Fails when the group exceeds the remaining capacity.
// @Tags Trips
// @Accept json
// @Produce json
// @Param id path string true "Trip id"
// @Param request body request_models.AddBookingRequest true "Booking payload"
// @Success 201 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{id}/bookings [post]
func (t *TripController) Book(c *gin.Context) {
	var req request_models.AddBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	touristID := c.GetString(middleware.CtxUserID)

	booking, err := t.tripService.Book(c.Request.Context(), touristID, c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, booking, "Booking created successfully")
}

func (t *TripController) MyBookings(c *gin.Context) {
	touristID := c.GetString(middleware.CtxUserID)

	bookings, err := t.tripService.ListMyBookings(c.Request.Context(), touristID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, bookings, "Bookings fetched successfully")
}

// CancelMyBooking applies the trip's refund tiers against the time left
// before departure.
func (t *TripController) CancelMyBooking(c *gin.Context) {
	touristID := c.GetString(middleware.CtxUserID)

	booking, err := t.tripService.CancelMyBooking(c.Request.Context(), touristID, c.Param("id"), c.Param("bookingId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, booking, "Booking cancelled successfully")
}
