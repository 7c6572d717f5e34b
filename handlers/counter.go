package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/middleware"
	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/models"
	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/safety"
	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/store"
)

type CounterController struct {
	service *safety.Service
}

func NewCounterController(service *safety.Service) *CounterController {
	return &CounterController{service: service}
}

func (cc *CounterController) SubmitCounter(c echo.Context) error {
	owner := middleware.CurrentUser(c)
	var req models.SubmitCounterRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	counter, err := cc.service.SubmitCounter(c.Request().Context(), owner, req)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusCreated, counter)
}

func (cc *CounterController) MyCounters(c echo.Context) error {
	owner := middleware.CurrentUser(c)
	counters, err := cc.service.ListCounters(c.Request().Context(), store.CounterFilter{Owner: &owner.ID})
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, counters)
}
