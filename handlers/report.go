package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/middleware"
	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/models"
	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/safety"
)

type ReportController struct {
	service *safety.Service
}

func NewReportController(service *safety.Service) *ReportController {
	return &ReportController{service: service}
}

func reportID(c echo.Context) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(c.Param("id"))
}

func (rc *ReportController) CreateReport(c echo.Context) error {
	user := middleware.CurrentUser(c)
	var req models.CreateReportRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	report, err := rc.service.CreateReport(c.Request().Context(), user, req)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusCreated, report)
}

func (rc *ReportController) ListReports(c echo.Context) error {
	reports, err := rc.service.ListReports(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	if reports == nil {
		reports = []models.Report{}
	}
	return respond(c, http.StatusOK, reports)
}

func (rc *ReportController) MyReports(c echo.Context) error {
	user := middleware.CurrentUser(c)
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	reports, total, pages, err := rc.service.MyReports(c.Request().Context(), user.ID, page, limit)
	if err != nil {
		return fail(c, err)
	}
	if reports == nil {
		reports = []models.Report{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    reports,
		"total":   total,
		"pages":   pages,
	})
}

func (rc *ReportController) UpdateReport(c echo.Context) error {
	user := middleware.CurrentUser(c)
	id, err := reportID(c)
	if err != nil {
		return badRequest(c, "Invalid report ID")
	}
	var req models.CreateReportRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	report, err := rc.service.UpdateReport(c.Request().Context(), user, id, req)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, report)
}

func (rc *ReportController) DeleteReport(c echo.Context) error {
	user := middleware.CurrentUser(c)
	id, err := reportID(c)
	if err != nil {
		return badRequest(c, "Invalid report ID")
	}
	if err := rc.service.DeleteReport(c.Request().Context(), user, id); err != nil {
		return fail(c, err)
	}
	return message(c, http.StatusOK, "Report deleted successfully")
}

func (rc *ReportController) ToggleUpvote(c echo.Context) error {
	user := middleware.CurrentUser(c)
	id, err := reportID(c)
	if err != nil {
		return badRequest(c, "Invalid report ID")
	}
	result, err := rc.service.ToggleUpvote(c.Request().Context(), user, id)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, result)
}
