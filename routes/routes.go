package routes

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/handlers"
	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/middleware"
	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/models"
	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/store"
)

type Controllers struct {
	Auth          *handlers.AuthController
	Reports       *handlers.ReportController
	Accommodation *handlers.AccommodationController
	Counters      *handlers.CounterController
	Admin         *handlers.AdminController
	Upload        *handlers.UploadController
}

func RegisterRoutes(e *echo.Echo, users store.UserStore, ctrl Controllers) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	auth := middleware.JWTMiddleware(users)
	otpLimit := middleware.OTPRateLimiter(rate.Every(20*time.Second), 3)

	api := e.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/signup", ctrl.Auth.Signup, otpLimit)
	authGroup.POST("/login", ctrl.Auth.Login)
	authGroup.POST("/verify-email", ctrl.Auth.VerifyEmail)
	authGroup.POST("/resend-otp", ctrl.Auth.ResendOTP, otpLimit)
	authGroup.POST("/forgot-password", ctrl.Auth.ForgotPassword, otpLimit)
	authGroup.POST("/reset-password", ctrl.Auth.ResetPassword)
	authGroup.GET("/me", ctrl.Auth.Me, auth)

	api.GET("/reports", ctrl.Reports.ListReports)
	api.POST("/reports", ctrl.Reports.CreateReport, auth)
	api.GET("/reports/my-reports", ctrl.Reports.MyReports, auth)
	api.PUT("/reports/:id", ctrl.Reports.UpdateReport, auth)
	api.DELETE("/reports/:id", ctrl.Reports.DeleteReport, auth)
	api.POST("/reports/:id/upvote", ctrl.Reports.ToggleUpvote, auth)

	api.GET("/accommodations", ctrl.Accommodation.ListAccommodations)
	api.GET("/accommodations/:id", ctrl.Accommodation.GetAccommodation)

	api.POST("/upload", ctrl.Upload.UploadImages, auth)
	api.DELETE("/upload/*", ctrl.Upload.DeleteImage, auth)

	owner := api.Group("/owner", auth, middleware.RequireRole(models.RoleOwner))
	owner.GET("/accommodations", ctrl.Accommodation.MyAccommodations)
	owner.POST("/accommodations", ctrl.Accommodation.CreateAccommodation)
	owner.PUT("/accommodations/:id", ctrl.Accommodation.UpdateAccommodation)
	owner.DELETE("/accommodations/:id", ctrl.Accommodation.DeleteAccommodation)
	owner.PUT("/accommodations/:id/occupancy", ctrl.Accommodation.UpdateOccupancy)
	owner.GET("/reports", ctrl.Accommodation.OwnerReports)
	owner.GET("/stats", ctrl.Accommodation.OwnerStats)
	owner.POST("/counter-report", ctrl.Counters.SubmitCounter)
	owner.GET("/counter-reports", ctrl.Counters.MyCounters)

	admin := api.Group("/admin", auth, middleware.RequireRole(models.RoleAdmin))
	admin.GET("/stats", ctrl.Admin.Stats)
	admin.GET("/reports", ctrl.Admin.ListReports)
	admin.PUT("/reports/:id/status", ctrl.Admin.SetReportStatus)
	admin.DELETE("/reports/:id", ctrl.Admin.DeleteReport)
	admin.GET("/users", ctrl.Admin.ListUsers)
	admin.PUT("/users/:id/ban", ctrl.Admin.ToggleBan)
	admin.GET("/counter-reports", ctrl.Admin.ListCounters)
	admin.PUT("/counter-reports/:id", ctrl.Admin.ResolveCounter)
}
