package controllers_fx

import (
	"go.uber.org/fx"

	"tourship/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewAttractionController),
	fx.Provide(controllers.NewTripController),
	fx.Provide(controllers.NewOrganiserController),
	fx.Provide(controllers.NewGuideController),
	fx.Provide(controllers.NewVerificationController),
	fx.Provide(controllers.NewAdminController),
	fx.Provide(controllers.NewDashboardController))
