package controllers

import (
	"github.com/gin-gonic/gin"

	"tourship/internal/models/request_models"
	"tourship/internal/repositories"
	"tourship/internal/services"
	"tourship/pkg/utils"
)

// AdminController covers platform user management.
type AdminController struct {
	accountService services.AccountServiceInterface
}

func NewAdminController(accountService services.AccountServiceInterface) *AdminController {
	return &AdminController{
		accountService: accountService,
	}
}

func (a *AdminController) ListUsers(c *gin.Context) {
	var query request_models.ListUsersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	page, err := utils.ParsePagination(c)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	filter := repositories.UserFilter{
		Role:   query.Role,
		Status: query.Status,
		Search: query.Search,
	}

	result, err := a.accountService.ListUsers(c.Request.Context(), filter, page)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Users fetched successfully")
}

// DeactivateUser bans the account: login stops working and the email is
// mangled so the address frees up for re-registration.
func (a *AdminController) DeactivateUser(c *gin.Context) {
	if err := a.accountService.DeactivateUser(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "User deactivated successfully")
}

func (a *AdminController) ReactivateUser(c *gin.Context) {
	if err := a.accountService.ReactivateUser(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "User reactivated successfully")
}

func (a *AdminController) ChangeRole(c *gin.Context) {
	var req request_models.ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	account, err := a.accountService.ChangeRole(c.Request.Context(), c.Param("id"), req.Role)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, account, "Role changed successfully")
}
