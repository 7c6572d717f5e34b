package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/middleware"
	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/models"
	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/safety"
	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/store"
)

type AccommodationController struct {
	service *safety.Service
}

func NewAccommodationController(service *safety.Service) *AccommodationController {
	return &AccommodationController{service: service}
}

func (ac *AccommodationController) ListAccommodations(c echo.Context) error {
	filter := store.AccommodationFilter{
		City:   c.QueryParam("city"),
		Search: c.QueryParam("search"),
	}
	if maxPrice := c.QueryParam("max_price"); maxPrice != "" {
		if price, err := strconv.ParseFloat(maxPrice, 64); err == nil {
			filter.MaxPrice = price
		}
	}
	accommodations, err := ac.service.ListAccommodations(c.Request().Context(), filter)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, accommodations)
}

func (ac *AccommodationController) GetAccommodation(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid accommodation ID")
	}
	accommodation, err := ac.service.GetAccommodation(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, accommodation)
}

func (ac *AccommodationController) MyAccommodations(c echo.Context) error {
	owner := middleware.CurrentUser(c)
	accommodations, err := ac.service.ListAccommodations(c.Request().Context(), store.AccommodationFilter{Owner: &owner.ID})
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, accommodations)
}

func (ac *AccommodationController) CreateAccommodation(c echo.Context) error {
	owner := middleware.CurrentUser(c)
	var req models.AccommodationRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	accommodation, err := ac.service.CreateAccommodation(c.Request().Context(), owner, req)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusCreated, accommodation)
}

func (ac *AccommodationController) UpdateAccommodation(c echo.Context) error {
	owner := middleware.CurrentUser(c)
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid accommodation ID")
	}
	var req models.AccommodationRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	accommodation, err := ac.service.UpdateAccommodation(c.Request().Context(), owner, id, req)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, accommodation)
}

func (ac *AccommodationController) DeleteAccommodation(c echo.Context) error {
	owner := middleware.CurrentUser(c)
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid accommodation ID")
	}
	if err := ac.service.DeleteAccommodation(c.Request().Context(), owner, id); err != nil {
		return fail(c, err)
	}
	return message(c, http.StatusOK, "Accommodation deleted successfully")
}

func (ac *AccommodationController) UpdateOccupancy(c echo.Context) error {
	owner := middleware.CurrentUser(c)
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid accommodation ID")
	}
	var req models.OccupancyRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	accommodation, err := ac.service.UpdateOccupancy(c.Request().Context(), owner, id, req.OccupiedRooms)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, accommodation)
}

func (ac *AccommodationController) OwnerReports(c echo.Context) error {
	owner := middleware.CurrentUser(c)
	reports, err := ac.service.OwnerReports(c.Request().Context(), owner.ID)
	if err != nil {
		return fail(c, err)
	}
	if reports == nil {
		reports = []models.Report{}
	}
	return respond(c, http.StatusOK, reports)
}

func (ac *AccommodationController) OwnerStats(c echo.Context) error {
	owner := middleware.CurrentUser(c)
	stats, err := ac.service.OwnerStats(c.Request().Context(), owner.ID)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, stats)
}
