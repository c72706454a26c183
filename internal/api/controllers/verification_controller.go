package controllers

import (
	"github.com/gin-gonic/gin"

	"tourship/internal/models/request_models"
	"tourship/internal/services"
	"tourship/pkg/middleware"
	"tourship/pkg/utils"
)

type VerificationController struct {
	verificationService services.VerificationServiceInterface
}

func NewVerificationController(verificationService services.VerificationServiceInterface) *VerificationController {
	return &VerificationController{
		verificationService: verificationService,
	}
}

// SubmitGuide files or refiles the guide's credentials for review.
func (v *VerificationController) SubmitGuide(c *gin.Context) {
	var req request_models.SubmitGuideVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	userID := c.GetString(middleware.CtxUserID)

	result, err := v.verificationService.SubmitGuide(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Verification submitted for review")
}

func (v *VerificationController) SubmitOrganiser(c *gin.Context) {
	var req request_models.SubmitOrganiserVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	userID := c.GetString(middleware.CtxUserID)

	result, err := v.verificationService.SubmitOrganiser(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Verification submitted for review")
}

func (v *VerificationController) GetMine(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)

	result, err := v.verificationService.GetOwn(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Verification fetched successfully")
}

// ---------- Admin review ----------

func (v *VerificationController) ListQueue(c *gin.Context) {
	var query request_models.ListVerificationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	page, err := utils.ParsePagination(c)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	result, err := v.verificationService.ListQueue(c.Request.Context(), query.Role, query.Status, page)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Verification queue fetched successfully")
}

func (v *VerificationController) Review(c *gin.Context) {
	var req request_models.ReviewVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	reviewerID := c.GetString(middleware.CtxUserID)

	result, err := v.verificationService.Review(c.Request.Context(), reviewerID, c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Verification reviewed successfully")
}
