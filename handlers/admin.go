package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/middleware"
	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/models"
	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/safety"
	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/store"
)

type AdminController struct {
	service *safety.Service
}

func NewAdminController(service *safety.Service) *AdminController {
	return &AdminController{service: service}
}

func (ac *AdminController) Stats(c echo.Context) error {
	stats, err := ac.service.AdminStats(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, stats)
}

func (ac *AdminController) ListReports(c echo.Context) error {
	reports, err := ac.service.AdminReports(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	if reports == nil {
		reports = []models.Report{}
	}
	return respond(c, http.StatusOK, reports)
}

func (ac *AdminController) SetReportStatus(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid report ID")
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	report, err := ac.service.SetReportStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, report)
}

func (ac *AdminController) DeleteReport(c echo.Context) error {
	admin := middleware.CurrentUser(c)
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid report ID")
	}
	if err := ac.service.DeleteReport(c.Request().Context(), admin, id); err != nil {
		return fail(c, err)
	}
	return message(c, http.StatusOK, "Report deleted successfully")
}

func (ac *AdminController) ListUsers(c echo.Context) error {
	users, err := ac.service.ListUsers(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, users)
}

func (ac *AdminController) ToggleBan(c echo.Context) error {
	admin := middleware.CurrentUser(c)
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}
	user, err := ac.service.ToggleBan(c.Request().Context(), admin, id)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, user)
}

func (ac *AdminController) ListCounters(c echo.Context) error {
	counters, err := ac.service.ListCounters(c.Request().Context(), store.CounterFilter{Status: c.QueryParam("status")})
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, counters)
}

func (ac *AdminController) ResolveCounter(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid counter report ID")
	}
	var req models.ResolveCounterRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	counter, err := ac.service.ResolveCounter(c.Request().Context(), id, req.Status, req.AdminNotes)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, counter)
}
