package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/middleware"
	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/models"
	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/store"
	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/utils"
)

const otpTTL = 10 * time.Minute

type AuthController struct {
	users store.UserStore
	otps  store.OTPStore
}

func NewAuthController(users store.UserStore, otps store.OTPStore) *AuthController {
	return &AuthController{users: users, otps: otps}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (ac *AuthController) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return badRequest(c, "Please enter all fields: name, email, and password are required")
	}
	if len(req.Password) < 6 {
		return badRequest(c, "Password must be at least 6 characters")
	}

	// Admin accounts are provisioned out of band, never self-assigned.
	role := req.Role
	switch role {
	case "":
		role = models.RoleStudent
	case models.RoleStudent, models.RoleOwner:
	default:
		return badRequest(c, "Role must be student or owner")
	}

	ctx := c.Request().Context()
	if _, err := ac.users.FindByEmail(ctx, req.Email); err == nil {
		return c.JSON(http.StatusConflict, map[string]interface{}{
			"success": false, "message": "Email already registered",
		})
	} else if err != store.ErrNotFound {
		return fail(c, err)
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return fail(c, err)
	}

	user := &models.User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  hashed,
		Role:      role,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := ac.users.Insert(ctx, user); err != nil {
		return fail(c, err)
	}

	ac.issueOTP(c, req.Email, utils.OTPTypeVerification)

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "User registered successfully. Please check your email for a verification code.",
	})
}

// issueOTP writes a fresh code (replacing any previous one) and mails
// it. Delivery failures are logged, not surfaced; the user can resend.
func (ac *AuthController) issueOTP(c echo.Context, email, otpType string) {
	ctx := c.Request().Context()
	code, err := utils.GenerateOTP()
	if err != nil {
		log.Printf("otp generation failed for %s: %v", email, err)
		return
	}
	if err := ac.otps.Delete(ctx, email, otpType); err != nil {
		log.Printf("otp delete failed for %s: %v", email, err)
	}
	if err := ac.otps.Set(ctx, email, otpType, code, otpTTL); err != nil {
		log.Printf("otp store failed for %s: %v", email, err)
		return
	}
	if err := utils.SendOTPEmail(email, code, otpType); err != nil {
		log.Printf("otp email failed for %s: %v", email, err)
	}
}

func (ac *AuthController) VerifyEmail(c echo.Context) error {
	var req models.VerifyEmailRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.Email = normalizeEmail(req.Email)
	if req.Email == "" || req.OTP == "" {
		return badRequest(c, "Email and verification code are required")
	}

	ctx := c.Request().Context()
	code, err := ac.otps.Get(ctx, req.Email, utils.OTPTypeVerification)
	if err == store.ErrNotFound || code != req.OTP {
		return badRequest(c, "Invalid or expired verification code")
	}
	if err != nil {
		return fail(c, err)
	}

	user, err := ac.users.FindByEmail(ctx, req.Email)
	if err == store.ErrNotFound {
		return badRequest(c, "Invalid or expired verification code")
	}
	if err != nil {
		return fail(c, err)
	}

	user.IsVerified = true
	user.UpdatedAt = time.Now()
	if err := ac.users.Save(ctx, user); err != nil {
		return fail(c, err)
	}
	if err := ac.otps.Delete(ctx, req.Email, utils.OTPTypeVerification); err != nil {
		log.Printf("otp delete failed for %s: %v", req.Email, err)
	}

	return message(c, http.StatusOK, "Email verified successfully")
}

func (ac *AuthController) ResendOTP(c echo.Context) error {
	var req models.ResendOTPRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.Email = normalizeEmail(req.Email)
	if req.Type != utils.OTPTypeVerification && req.Type != utils.OTPTypePasswordReset {
		return badRequest(c, "Invalid OTP type")
	}

	ctx := c.Request().Context()
	user, err := ac.users.FindByEmail(ctx, req.Email)
	if err == store.ErrNotFound {
		return c.JSON(http.StatusNotFound, map[string]interface{}{
			"success": false, "message": "No account found with that email",
		})
	}
	if err != nil {
		return fail(c, err)
	}
	if req.Type == utils.OTPTypeVerification && user.IsVerified {
		return badRequest(c, "Email is already verified")
	}

	ac.issueOTP(c, req.Email, req.Type)
	return message(c, http.StatusOK, "A new code has been sent to your email")
}

func (ac *AuthController) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.Email = normalizeEmail(req.Email)
	if req.Email == "" || req.Password == "" {
		return badRequest(c, "Please enter all fields")
	}

	ctx := c.Request().Context()
	user, err := ac.users.FindByEmail(ctx, req.Email)
	if err == store.ErrNotFound {
		return c.JSON(http.StatusUnauthorized, map[string]interface{}{
			"success": false, "message": "Invalid credentials",
		})
	}
	if err != nil {
		return fail(c, err)
	}
	if err := utils.CheckPassword(user.Password, req.Password); err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]interface{}{
			"success": false, "message": "Invalid credentials",
		})
	}
	if user.IsBanned {
		return c.JSON(http.StatusForbidden, map[string]interface{}{
			"success": false, "message": "Your account has been banned",
		})
	}
	if !user.IsVerified {
		return c.JSON(http.StatusForbidden, map[string]interface{}{
			"success": false, "message": "Please verify your email before logging in",
		})
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, user.Role)
	if err != nil {
		return fail(c, err)
	}

	user.Password = ""
	return respond(c, http.StatusOK, models.LoginResponse{Token: token, User: *user})
}

func (ac *AuthController) ForgotPassword(c echo.Context) error {
	var req models.ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.Email = normalizeEmail(req.Email)
	if req.Email == "" {
		return badRequest(c, "Email is required")
	}

	ctx := c.Request().Context()
	if _, err := ac.users.FindByEmail(ctx, req.Email); err == store.ErrNotFound {
		return c.JSON(http.StatusNotFound, map[string]interface{}{
			"success": false, "message": "No account found with that email",
		})
	} else if err != nil {
		return fail(c, err)
	}

	ac.issueOTP(c, req.Email, utils.OTPTypePasswordReset)
	return message(c, http.StatusOK, "A password reset code has been sent to your email")
}

func (ac *AuthController) ResetPassword(c echo.Context) error {
	var req models.ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.Email = normalizeEmail(req.Email)
	if req.Email == "" || req.OTP == "" || req.NewPassword == "" {
		return badRequest(c, "Email, code and new password are required")
	}
	if len(req.NewPassword) < 6 {
		return badRequest(c, "Password must be at least 6 characters")
	}

	ctx := c.Request().Context()
	code, err := ac.otps.Get(ctx, req.Email, utils.OTPTypePasswordReset)
	if err == store.ErrNotFound || code != req.OTP {
		return badRequest(c, "Invalid or expired reset code")
	}
	if err != nil {
		return fail(c, err)
	}

	user, err := ac.users.FindByEmail(ctx, req.Email)
	if err == store.ErrNotFound {
		return badRequest(c, "Invalid or expired reset code")
	}
	if err != nil {
		return fail(c, err)
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fail(c, err)
	}
	user.Password = hashed
	user.UpdatedAt = time.Now()
	if err := ac.users.Save(ctx, user); err != nil {
		return fail(c, err)
	}
	if err := ac.otps.Delete(ctx, req.Email, utils.OTPTypePasswordReset); err != nil {
		log.Printf("otp delete failed for %s: %v", req.Email, err)
	}

	return message(c, http.StatusOK, "Password has been reset successfully")
}

func (ac *AuthController) Me(c echo.Context) error {
	user := middleware.CurrentUser(c)
	out := *user
	out.Password = ""
	return respond(c, http.StatusOK, out)
}
