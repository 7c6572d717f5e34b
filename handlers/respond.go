package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/safety"
)

func respond(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, map[string]interface{}{"success": true, "data": data})
}

func message(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]interface{}{"success": true, "message": msg})
}

// fail maps a business-rule error to its HTTP status. Anything outside
// the taxonomy is a store failure: it is logged and surfaces as a
// generic 500 so internals never leak.
func fail(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch safety.KindOf(err) {
	case safety.KindValidation:
		status = http.StatusBadRequest
	case safety.KindUnauthorized:
		status = http.StatusUnauthorized
	case safety.KindForbidden:
		status = http.StatusForbidden
	case safety.KindNotFound:
		status = http.StatusNotFound
	case safety.KindConflict:
		status = http.StatusConflict
	default:
		c.Logger().Error(err)
		return c.JSON(status, map[string]interface{}{"success": false, "message": "Internal server error"})
	}
	return c.JSON(status, map[string]interface{}{"success": false, "message": err.Error()})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, map[string]interface{}{"success": false, "message": msg})
}
