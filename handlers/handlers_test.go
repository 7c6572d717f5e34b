package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/handlers"
	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/models"
	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/routes"
	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/safety"
	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/store"
	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/utils"
)

// newTestApp wires the full route table over the in-memory store, the
// same way main does against Mongo and Redis.
func newTestApp(t *testing.T) (*echo.Echo, *store.MemoryStore) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("EMAIL_USER", "")

	mem := store.NewMemoryStore()
	service := safety.New(mem.Reports(), mem.Counters(), mem.Accommodations(), mem.Users())

	e := echo.New()
	routes.RegisterRoutes(e, mem.Users(), routes.Controllers{
		Auth:          handlers.NewAuthController(mem.Users(), mem.OTPs()),
		Reports:       handlers.NewReportController(service),
		Accommodation: handlers.NewAccommodationController(service),
		Counters:      handlers.NewCounterController(service),
		Admin:         handlers.NewAdminController(service),
		Upload:        handlers.NewUploadController(),
	})
	return e, mem
}

func seedVerifiedUser(t *testing.T, mem *store.MemoryStore, name, role string) (*models.User, string) {
	t.Helper()
	hash, err := utils.HashPassword("secret123")
	require.NoError(t, err)
	user := &models.User{
		Name:       name,
		Email:      name + "@example.com",
		Password:   hash,
		Role:       role,
		IsVerified: true,
		CreatedAt:  time.Now(),
	}
	require.NoError(t, mem.InsertUser(context.Background(), user))
	token, err := utils.GenerateJWT(user.ID, user.Email, user.Role)
	require.NoError(t, err)
	return user, token
}

func do(t *testing.T, e *echo.Echo, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var out map[string]interface{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	}
	return rec, out
}

func dataField(t *testing.T, out map[string]interface{}) map[string]interface{} {
	t.Helper()
	data, ok := out["data"].(map[string]interface{})
	require.True(t, ok, "response has no data object: %v", out)
	return data
}
