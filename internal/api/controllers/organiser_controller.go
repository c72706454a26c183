package controllers

import (
	"github.com/gin-gonic/gin"

	"tourship/internal/models/request_models"
	"tourship/internal/services"
	"tourship/pkg/middleware"
	"tourship/pkg/utils"
)

// OrganiserController covers the organiser's own trips: lifecycle,
// hotel options, booking management and guide assignment.
type OrganiserController struct {
	tripService services.TripServiceInterface
}

func NewOrganiserController(tripService services.TripServiceInterface) *OrganiserController {
	return &OrganiserController{
		tripService: tripService,
	}
}

func (o *OrganiserController) CreateTrip(c *gin.Context) {
	var req request_models.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	organiserID := c.GetString(middleware.CtxUserID)

	trip, err := o.tripService.Create(c.Request.Context(), organiserID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, trip, "Trip created successfully")
}

func (o *OrganiserController) UpdateTrip(c *gin.Context) {
	var req request_models.UpdateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	organiserID := c.GetString(middleware.CtxUserID)

	trip, err := o.tripService.Update(c.Request.Context(), organiserID, c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trip, "Trip updated successfully")
}

func (o *OrganiserController) DeleteTrip(c *gin.Context) {
	organiserID := c.GetString(middleware.CtxUserID)

	if err := o.tripService.Delete(c.Request.Context(), organiserID, c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Trip deleted successfully")
}

func (o *OrganiserController) ListTrips(c *gin.Context) {
	page, err := utils.ParsePagination(c)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	organiserID := c.GetString(middleware.CtxUserID)

	result, err := o.tripService.ListOwn(c.Request.Context(), organiserID, c.Query("status"), page)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Trips fetched successfully")
}

// GetTrip returns the owner view, bookings and revenue included.
func (o *OrganiserController) GetTrip(c *gin.Context) {
	organiserID := c.GetString(middleware.CtxUserID)

	trip, err := o.tripService.GetOwn(c.Request.Context(), organiserID, c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trip, "Trip fetched successfully")
}

// ---------- Lifecycle transitions ----------

func (o *OrganiserController) PublishTrip(c *gin.Context) {
	organiserID := c.GetString(middleware.CtxUserID)

	trip, err := o.tripService.Publish(c.Request.Context(), organiserID, c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trip, "Trip published successfully")
}

func (o *OrganiserController) CancelTrip(c *gin.Context) {
	organiserID := c.GetString(middleware.CtxUserID)

	trip, err := o.tripService.Cancel(c.Request.Context(), organiserID, c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trip, "Trip cancelled, active bookings refunded")
}

func (o *OrganiserController) CompleteTrip(c *gin.Context) {
	organiserID := c.GetString(middleware.CtxUserID)

	trip, err := o.tripService.Complete(c.Request.Context(), organiserID, c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trip, "Trip completed successfully")
}

// ---------- Hotel options ----------

func (o *OrganiserController) AddHotelOption(c *gin.Context) {
	var req request_models.HotelOptionPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	organiserID := c.GetString(middleware.CtxUserID)

	trip, err := o.tripService.AddHotelOption(c.Request.Context(), organiserID, c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, trip, "Hotel option added successfully")
}

func (o *OrganiserController) RemoveHotelOption(c *gin.Context) {
	organiserID := c.GetString(middleware.CtxUserID)

	trip, err := o.tripService.RemoveHotelOption(c.Request.Context(), organiserID, c.Param("id"), c.Param("optionId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trip, "Hotel option removed successfully")
}

// ---------- Booking management ----------

func (o *OrganiserController) ConfirmBooking(c *gin.Context) {
	organiserID := c.GetString(middleware.CtxUserID)

	booking, err := o.tripService.ConfirmBooking(c.Request.Context(), organiserID, c.Param("id"), c.Param("bookingId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, booking, "Booking confirmed successfully")
}

func (o *OrganiserController) CompleteBooking(c *gin.Context) {
	organiserID := c.GetString(middleware.CtxUserID)

	booking, err := o.tripService.CompleteBooking(c.Request.Context(), organiserID, c.Param("id"), c.Param("bookingId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, booking, "Booking completed successfully")
}

func (o *OrganiserController) UpdateBookingPayment(c *gin.Context) {
	var req request_models.UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	organiserID := c.GetString(middleware.CtxUserID)

	booking, err := o.tripService.UpdateBookingPayment(c.Request.Context(), organiserID, c.Param("id"), c.Param("bookingId"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, booking, "Payment status updated successfully")
}

// ---------- Guide assignment ----------

func (o *OrganiserController) AssignGuide(c *gin.Context) {
	var req request_models.AssignGuideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	organiserID := c.GetString(middleware.CtxUserID)

	trip, err := o.tripService.AssignGuide(c.Request.Context(), organiserID, c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trip, "Guide assignment requested")
}
