package controllers

import (
	"github.com/gin-gonic/gin"

	"tourship/internal/models/request_models"
	"tourship/internal/services"
	"tourship/pkg/middleware"
	"tourship/pkg/utils"
)

type AttractionController struct {
	attractionService services.AttractionServiceInterface
}

func NewAttractionController(attractionService services.AttractionServiceInterface) *AttractionController {
	return &AttractionController{
		attractionService: attractionService,
	}
}

// ---------- Public catalogue ----------

// List godoc
// @Summary List attractions
// @Description Browse visible attractions with filters, search and sorting
// @Tags Attractions
// @Produce json
// @Param city query string false "Filter by city"
// @Param country query string false "Filter by country"
// @Param category query string false "Filter by category"
// @Param tag query string false "Filter by tag"
// @Param q query string false "Search over name, city and tags"
// @Param min_rating query number false "Minimum overall rating"
// @Param sort query string false "popularity | rating | views | newest (default: popularity)"
// @Param page query int false "Page number (default 1)"
// @Param pageSize query int false "Page size (default 20, max 100)"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /attractions [get]
func (a *AttractionController) List(c *gin.Context) {
	var query request_models.ListAttractionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	page, err := utils.ParsePagination(c)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	result, err := a.attractionService.List(c.Request.Context(), query, page, true)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Attractions fetched successfully")
}

// GetDetail godoc
// @Summary Get one attraction
// @Description Fetch a visible attraction by id or slug. Counts the view.
// @Tags Attractions
// @Produce json
// @Param id path string true "Attraction id or slug"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /attractions/{id} [get]
func (a *AttractionController) GetDetail(c *gin.Context) {
	detail, err := a.attractionService.GetDetail(c.Request.Context(), c.Param("id"), true)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, detail, "Attraction fetched successfully")
}

func (a *AttractionController) ListReviews(c *gin.Context) {
	page, err := utils.ParsePagination(c)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	result, err := a.attractionService.ListReviews(c.Request.Context(), c.Param("id"), page)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Reviews fetched successfully")
}

// ---------- Tourist actions ----------

func (a *AttractionController) AddReview(c *gin.Context) {
	var req request_models.AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	userID := c.GetString(middleware.CtxUserID)

	detail, err := a.attractionService.AddReview(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, detail, "Review added successfully")
}

func (a *AttractionController) AddToWishlist(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)

	if err := a.attractionService.AddToWishlist(c.Request.Context(), userID, c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Attraction added to wishlist")
}

func (a *AttractionController) RemoveFromWishlist(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)

	if err := a.attractionService.RemoveFromWishlist(c.Request.Context(), userID, c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Attraction removed from wishlist")
}

// ---------- Admin catalogue management ----------

func (a *AttractionController) Create(c *gin.Context) {
	var req request_models.CreateAttractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	adminID := c.GetString(middleware.CtxUserID)

	detail, err := a.attractionService.Create(c.Request.Context(), adminID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, detail, "Attraction created successfully")
}

func (a *AttractionController) BulkCreate(c *gin.Context) {
	var req request_models.BulkCreateAttractionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	adminID := c.GetString(middleware.CtxUserID)

	created, err := a.attractionService.BulkCreate(c.Request.Context(), adminID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, created, "Attractions created successfully")
}

func (a *AttractionController) Update(c *gin.Context) {
	var req request_models.UpdateAttractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	detail, err := a.attractionService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, detail, "Attraction updated successfully")
}

func (a *AttractionController) Delete(c *gin.Context) {
	if err := a.attractionService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Attraction deleted successfully")
}

func (a *AttractionController) BulkSetStatus(c *gin.Context) {
	var req request_models.BulkAttractionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	updated, err := a.attractionService.BulkSetStatus(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"updated": updated}, "Attraction status updated")
}

func (a *AttractionController) BulkDelete(c *gin.Context) {
	var req request_models.BulkAttractionDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	deleted, err := a.attractionService.BulkDelete(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"deleted": deleted}, "Attractions deleted")
}

// AdminList shows every attraction, hidden ones included.
func (a *AttractionController) AdminList(c *gin.Context) {
	var query request_models.ListAttractionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	page, err := utils.ParsePagination(c)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	result, err := a.attractionService.List(c.Request.Context(), query, page, false)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Attractions fetched successfully")
}

func (a *AttractionController) Stats(c *gin.Context) {
	stats, err := a.attractionService.Stats(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, stats, "Attraction stats fetched successfully")
}

func (a *AttractionController) CatalogueStats(c *gin.Context) {
	stats, err := a.attractionService.CatalogueStats(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, stats, "Catalogue stats fetched successfully")
}
