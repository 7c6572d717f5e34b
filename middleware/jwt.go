package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/models"
	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/store"
	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/utils"
)

// JWTMiddleware validates the bearer token, loads the current user so
// role and ban state are always fresh, and stores it in the context
// under "user".
func JWTMiddleware(users store.UserStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"success": false, "message": "Authorization header is required",
				})
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"success": false, "message": "Invalid authorization header format",
				})
			}

			claims, err := utils.ValidateJWT(tokenParts[1])
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"success": false, "message": "Invalid token",
				})
			}

			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"success": false, "message": "Invalid token",
				})
			}
			if user.IsBanned {
				return c.JSON(http.StatusForbidden, map[string]interface{}{
					"success": false, "message": "Your account has been banned",
				})
			}

			c.Set("user", user)
			return next(c)
		}
	}
}

// RequireRole gates a route group to a single role. It must run after
// JWTMiddleware.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get("user").(*models.User)
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"success": false, "message": "Authentication required",
				})
			}
			if user.Role != role {
				return c.JSON(http.StatusForbidden, map[string]interface{}{
					"success": false, "message": "Access denied",
				})
			}
			return next(c)
		}
	}
}

// CurrentUser returns the authenticated user set by JWTMiddleware.
func CurrentUser(c echo.Context) *models.User {
	user, _ := c.Get("user").(*models.User)
	return user
}
