package controllers

import (
	"github.com/gin-gonic/gin"

	"tourship/internal/models/request_models"
	"tourship/internal/services"
	"tourship/pkg/middleware"
	"tourship/pkg/utils"
)

// GuideController covers the guide's side of assignments plus their
// personal dashboard.
type GuideController struct {
	tripService      services.TripServiceInterface
	dashboardService services.DashboardService
}

func NewGuideController(tripService services.TripServiceInterface, dashboardService services.DashboardService) *GuideController {
	return &GuideController{
		tripService:      tripService,
		dashboardService: dashboardService,
	}
}

func (g *GuideController) ListAssignments(c *gin.Context) {
	guideID := c.GetString(middleware.CtxUserID)

	trips, err := g.tripService.ListGuideTrips(c.Request.Context(), guideID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trips, "Assignments fetched successfully")
}

// Respond accepts or rejects a pending assignment. Rejection requires a
// reason and hands the trip back to the organiser.
func (g *GuideController) Respond(c *gin.Context) {
	var req request_models.GuideRespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	guideID := c.GetString(middleware.CtxUserID)

	trip, err := g.tripService.RespondToAssignment(c.Request.Context(), guideID, c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trip, "Assignment response recorded")
}

func (g *GuideController) Dashboard(c *gin.Context) {
	guideID := c.GetString(middleware.CtxUserID)

	board, err := g.dashboardService.BuildGuideDashboard(c.Request.Context(), guideID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, board, "Dashboard data fetched successfully")
}
