package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"tourship/cmd/fx/account_fx"
	"tourship/cmd/fx/attraction_fx"
	"tourship/cmd/fx/config_fx"
	"tourship/cmd/fx/controllers_fx"
	"tourship/cmd/fx/dashboard"
	"tourship/cmd/fx/db_fx"
	"tourship/cmd/fx/mail_fx"
	"tourship/cmd/fx/memcache_fx"
	"tourship/cmd/fx/trip_fx"
	"tourship/cmd/fx/verification_fx"
	"tourship/internal/api/controllers"
	"tourship/internal/config"
	"tourship/internal/models/db_models"
	"tourship/internal/services"
	"tourship/pkg/middleware"
	"tourship/pkg/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from the environment")
	}

	app := fx.New(
		config_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		mail_fx.Module,
		account_fx.Module,
		attraction_fx.Module,
		trip_fx.Module,
		verification_fx.Module,
		dashboard.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(InitAuth),
		fx.Invoke(SeedAdmin),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func InitAuth(cfg config.Config) {
	utils.InitJWT(cfg.JWTSecret)
}

func SeedAdmin(cfg config.Config, accountService services.AccountServiceInterface) {
	if err := accountService.EnsureSeedAdmin(context.Background(), cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
		log.Printf("Failed to seed admin account: %v", err)
	}
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Printf("Starting HTTP server on :%s", cfg.Port)
				if err := engine.Run(":" + cfg.Port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	cfg config.Config,
	accountService services.AccountServiceInterface,
	accountController *controllers.AccountController,
	attractionController *controllers.AttractionController,
	tripController *controllers.TripController,
	organiserController *controllers.OrganiserController,
	guideController *controllers.GuideController,
	verificationController *controllers.VerificationController,
	adminController *controllers.AdminController,
	dashboardController *controllers.DashboardController) *gin.Engine {

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Trace-ID"},
		ExposeHeaders:    []string{"X-Trace-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Middleware())

	RegisterRoutes(r, accountService,
		accountController, attractionController, tripController,
		organiserController, guideController, verificationController,
		adminController, dashboardController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	accountService services.AccountServiceInterface,
	accountController *controllers.AccountController,
	attractionController *controllers.AttractionController,
	tripController *controllers.TripController,
	organiserController *controllers.OrganiserController,
	guideController *controllers.GuideController,
	verificationController *controllers.VerificationController,
	adminController *controllers.AdminController,
	dashboardController *controllers.DashboardController) {

	api := r.Group("/api")

	// ---------- Public ----------
	auth := api.Group("/auth")
	auth.POST("/register", accountController.Register)
	auth.POST("/login", accountController.Login)
	auth.POST("/forgot-password", accountController.ForgotPassword)
	auth.POST("/reset-password", accountController.ResetPassword)

	attractions := api.Group("/attractions")
	attractions.GET("", attractionController.List)
	attractions.GET("/:id", attractionController.GetDetail)
	attractions.GET("/:id/reviews", attractionController.ListReviews)

	trips := api.Group("/trips")
	trips.GET("", tripController.ListPublic)
	trips.GET("/:id", tripController.GetPublic)

	// ---------- Any authenticated user ----------
	me := api.Group("/auth", middleware.JWTAuthMiddleware())
	me.GET("/me", accountController.Me)
	me.PUT("/me", accountController.UpdateProfile)

	// ---------- Tourist ----------
	tourist := api.Group("", middleware.JWTAuthMiddleware(), middleware.RequireRole(string(db_models.RoleTourist)))
	tourist.POST("/trips/:id/bookings", tripController.Book)
	tourist.POST("/trips/:id/bookings/:bookingId/cancel", tripController.CancelMyBooking)
	tourist.GET("/tourist/bookings", tripController.MyBookings)
	tourist.POST("/attractions/:id/reviews", attractionController.AddReview)
	tourist.POST("/tourist/wishlist/:id", attractionController.AddToWishlist)
	tourist.DELETE("/tourist/wishlist/:id", attractionController.RemoveFromWishlist)

	// ---------- Guide ----------
	guide := api.Group("/guide", middleware.JWTAuthMiddleware(), middleware.RequireRole(string(db_models.RoleGuide)))
	guide.POST("/verification", verificationController.SubmitGuide)
	guide.GET("/verification", verificationController.GetMine)

	guideVerified := guide.Group("", middleware.RequireVerified(accountService))
	guideVerified.GET("/assignments", guideController.ListAssignments)
	guideVerified.POST("/assignments/:id/respond", guideController.Respond)
	guideVerified.GET("/dashboard", guideController.Dashboard)

	// ---------- Organiser ----------
	organiser := api.Group("/organiser", middleware.JWTAuthMiddleware(), middleware.RequireRole(string(db_models.RoleOrganiser)))
	organiser.POST("/verification", verificationController.SubmitOrganiser)
	organiser.GET("/verification", verificationController.GetMine)

	organiserTrips := organiser.Group("/trips", middleware.RequireVerified(accountService))
	organiserTrips.POST("", organiserController.CreateTrip)
	organiserTrips.GET("", organiserController.ListTrips)
	organiserTrips.GET("/:id", organiserController.GetTrip)
	organiserTrips.PUT("/:id", organiserController.UpdateTrip)
	organiserTrips.DELETE("/:id", organiserController.DeleteTrip)
	organiserTrips.POST("/:id/publish", organiserController.PublishTrip)
	organiserTrips.POST("/:id/cancel", organiserController.CancelTrip)
	organiserTrips.POST("/:id/complete", organiserController.CompleteTrip)
	organiserTrips.POST("/:id/hotel-options", organiserController.AddHotelOption)
	organiserTrips.DELETE("/:id/hotel-options/:optionId", organiserController.RemoveHotelOption)
	organiserTrips.POST("/:id/bookings/:bookingId/confirm", organiserController.ConfirmBooking)
	organiserTrips.POST("/:id/bookings/:bookingId/complete", organiserController.CompleteBooking)
	organiserTrips.PUT("/:id/bookings/:bookingId/payment", organiserController.UpdateBookingPayment)
	organiserTrips.POST("/:id/guide", organiserController.AssignGuide)

	// ---------- Admin ----------
	admin := api.Group("/admin", middleware.JWTAuthMiddleware(), middleware.RequireRole(string(db_models.RoleAdmin)))
	admin.GET("/users", adminController.ListUsers)
	admin.POST("/users/:id/deactivate", adminController.DeactivateUser)
	admin.POST("/users/:id/reactivate", adminController.ReactivateUser)
	admin.PUT("/users/:id/role", adminController.ChangeRole)

	admin.GET("/attractions", attractionController.AdminList)
	admin.POST("/attractions", attractionController.Create)
	admin.POST("/attractions/bulk", attractionController.BulkCreate)
	admin.POST("/attractions/bulk-status", attractionController.BulkSetStatus)
	admin.POST("/attractions/bulk-delete", attractionController.BulkDelete)
	admin.GET("/attractions/stats", attractionController.CatalogueStats)
	admin.PUT("/attractions/:id", attractionController.Update)
	admin.DELETE("/attractions/:id", attractionController.Delete)
	admin.GET("/attractions/:id/stats", attractionController.Stats)

	admin.GET("/verifications", verificationController.ListQueue)
	admin.POST("/verifications/:id/review", verificationController.Review)

	admin.GET("/dashboard", dashboardController.GetDashboard)
}
