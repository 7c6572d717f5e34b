package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/models"
)

func reportRequest(name string) models.CreateReportRequest {
	return models.CreateReportRequest{
		AccommodationName: name,
		IssueType:         "Security",
		Description:       "Broken lock on the main gate for two weeks",
	}
}

func TestCreateReportEndpoint(t *testing.T) {
	e, mem := newTestApp(t)
	_, token := seedVerifiedUser(t, mem, "asha", models.RoleStudent)

	rec, _ := do(t, e, http.MethodPost, "/api/reports", "", reportRequest("Sunrise PG"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, out := do(t, e, http.MethodPost, "/api/reports", token, reportRequest("Sunrise PG"))
	require.Equal(t, http.StatusCreated, rec.Code, "body: %v", out)
	data := dataField(t, out)
	assert.Equal(t, "pending", data["status"])
	assert.Equal(t, "none", data["counterStatus"])
	assert.Equal(t, float64(0), data["upvotes"])

	rec, _ = do(t, e, http.MethodPost, "/api/reports", token, reportRequest(""))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// The public listing needs no token.
	rec, out = do(t, e, http.MethodGet, "/api/reports", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list, ok := out["data"].([]interface{})
	require.True(t, ok)
	assert.Len(t, list, 1)
}

func TestMyReportsEnvelope(t *testing.T) {
	e, mem := newTestApp(t)
	_, token := seedVerifiedUser(t, mem, "asha", models.RoleStudent)
	_, otherToken := seedVerifiedUser(t, mem, "chetan", models.RoleStudent)

	for i := 0; i < 12; i++ {
		rec, _ := do(t, e, http.MethodPost, "/api/reports", token, reportRequest("Sunrise PG"))
		require.Equal(t, http.StatusCreated, rec.Code)
	}
	rec, _ := do(t, e, http.MethodPost, "/api/reports", otherToken, reportRequest("Lakeview Hostel"))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, out := do(t, e, http.MethodGet, "/api/reports/my-reports?page=2&limit=10", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(12), out["total"])
	assert.Equal(t, float64(2), out["pages"])
	list, ok := out["data"].([]interface{})
	require.True(t, ok)
	assert.Len(t, list, 2)
}

func TestUpvoteEndpoint(t *testing.T) {
	e, mem := newTestApp(t)
	_, authorToken := seedVerifiedUser(t, mem, "asha", models.RoleStudent)
	_, voterToken := seedVerifiedUser(t, mem, "chetan", models.RoleStudent)

	rec, out := do(t, e, http.MethodPost, "/api/reports", authorToken, reportRequest("Sunrise PG"))
	require.Equal(t, http.StatusCreated, rec.Code)
	reportID := dataField(t, out)["_id"].(string)

	rec, _ = do(t, e, http.MethodPost, "/api/reports/"+reportID+"/upvote", authorToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, out = do(t, e, http.MethodPost, "/api/reports/"+reportID+"/upvote", voterToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := dataField(t, out)
	assert.Equal(t, float64(1), data["upvotes"])
	assert.Equal(t, true, data["hasUpvoted"])

	rec, out = do(t, e, http.MethodPost, "/api/reports/"+reportID+"/upvote", voterToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data = dataField(t, out)
	assert.Equal(t, float64(0), data["upvotes"])
	assert.Equal(t, false, data["hasUpvoted"])

	rec, _ = do(t, e, http.MethodPost, "/api/reports/not-an-id/upvote", voterToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRoleGates(t *testing.T) {
	e, mem := newTestApp(t)
	_, studentToken := seedVerifiedUser(t, mem, "asha", models.RoleStudent)
	_, ownerToken := seedVerifiedUser(t, mem, "balu", models.RoleOwner)

	rec, _ := do(t, e, http.MethodGet, "/api/owner/stats", studentToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = do(t, e, http.MethodGet, "/api/admin/stats", ownerToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = do(t, e, http.MethodGet, "/api/owner/stats", ownerToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCounterDisputeOverHTTP(t *testing.T) {
	e, mem := newTestApp(t)
	_, studentToken := seedVerifiedUser(t, mem, "asha", models.RoleStudent)
	_, ownerToken := seedVerifiedUser(t, mem, "balu", models.RoleOwner)
	_, adminToken := seedVerifiedUser(t, mem, "moderator", models.RoleAdmin)

	rec, out := do(t, e, http.MethodPost, "/api/owner/accommodations", ownerToken, models.AccommodationRequest{
		Name: "Sunrise PG", Address: "12 College Road", City: "Pune",
		Description: "Shared rooms near campus", TotalRooms: 20, OccupiedRooms: 5,
		PricePerMonth: 6500, ContactPhone: "9876543210",
	})
	require.Equal(t, http.StatusCreated, rec.Code, "body: %v", out)
	accommodationID := dataField(t, out)["_id"].(string)

	rec, out = do(t, e, http.MethodPost, "/api/reports", studentToken, reportRequest("Sunrise PG"))
	require.Equal(t, http.StatusCreated, rec.Code)
	reportID := dataField(t, out)["_id"].(string)

	rec, out = do(t, e, http.MethodGet, "/api/accommodations/"+accommodationID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(25), dataField(t, out)["riskScore"])

	counterReq := models.SubmitCounterRequest{
		ReportID:    reportID,
		Reason:      "resolved_issue",
		Explanation: "The lock was replaced last Monday, receipt attached",
	}
	rec, out = do(t, e, http.MethodPost, "/api/owner/counter-report", ownerToken, counterReq)
	require.Equal(t, http.StatusCreated, rec.Code, "body: %v", out)
	counterID := dataField(t, out)["_id"].(string)

	rec, _ = do(t, e, http.MethodPost, "/api/owner/counter-report", ownerToken, counterReq)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, out = do(t, e, http.MethodPut, "/api/admin/counter-reports/"+counterID, adminToken, models.ResolveCounterRequest{
		Status: "accepted", AdminNotes: "Verified the repair invoice",
	})
	require.Equal(t, http.StatusOK, rec.Code, "body: %v", out)
	assert.Equal(t, "accepted", dataField(t, out)["status"])

	rec, out = do(t, e, http.MethodGet, "/api/reports", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := out["data"].([]interface{})
	require.Len(t, list, 1)
	report := list[0].(map[string]interface{})
	assert.Equal(t, "rejected", report["status"])
	assert.Equal(t, "accepted", report["counterStatus"])

	rec, out = do(t, e, http.MethodGet, "/api/accommodations/"+accommodationID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := dataField(t, out)
	assert.Equal(t, float64(0), data["riskScore"])
	assert.Equal(t, "Safe", data["safetyLevel"])
}

func TestAdminModerationEndpoints(t *testing.T) {
	e, mem := newTestApp(t)
	student, studentToken := seedVerifiedUser(t, mem, "asha", models.RoleStudent)
	admin, adminToken := seedVerifiedUser(t, mem, "moderator", models.RoleAdmin)

	rec, out := do(t, e, http.MethodPost, "/api/reports", studentToken, reportRequest("Sunrise PG"))
	require.Equal(t, http.StatusCreated, rec.Code)
	reportID := dataField(t, out)["_id"].(string)

	rec, out = do(t, e, http.MethodPut, "/api/admin/reports/"+reportID+"/status", adminToken, map[string]string{"status": "approved"})
	require.Equal(t, http.StatusOK, rec.Code, "body: %v", out)
	assert.Equal(t, "approved", dataField(t, out)["status"])

	rec, _ = do(t, e, http.MethodPut, "/api/admin/reports/"+reportID+"/status", adminToken, map[string]string{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, out = do(t, e, http.MethodGet, "/api/admin/reports", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := out["data"].([]interface{})
	require.Len(t, list, 1)
	author, ok := list[0].(map[string]interface{})["user"].(map[string]interface{})
	require.True(t, ok, "moderation view attaches the author snapshot")
	assert.Equal(t, student.Email, author["email"])

	rec, out = do(t, e, http.MethodGet, "/api/admin/stats", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := dataField(t, out)
	assert.Equal(t, float64(1), stats["totalReports"])
	assert.Equal(t, float64(2), stats["totalUsers"])

	rec, _ = do(t, e, http.MethodPut, "/api/admin/users/"+admin.ID.Hex()+"/ban", adminToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, out = do(t, e, http.MethodPut, "/api/admin/users/"+student.ID.Hex()+"/ban", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, dataField(t, out)["isBanned"])

	// A banned author can no longer use their token.
	rec, _ = do(t, e, http.MethodPost, "/api/reports", studentToken, reportRequest("Sunrise PG"))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = do(t, e, http.MethodDelete, "/api/admin/reports/"+reportID, adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOccupancyEndpoint(t *testing.T) {
	e, mem := newTestApp(t)
	_, ownerToken := seedVerifiedUser(t, mem, "balu", models.RoleOwner)

	rec, out := do(t, e, http.MethodPost, "/api/owner/accommodations", ownerToken, models.AccommodationRequest{
		Name: "Sunrise PG", Address: "12 College Road", City: "Pune",
		Description: "Shared rooms near campus", TotalRooms: 20, OccupiedRooms: 5,
		PricePerMonth: 6500, ContactPhone: "9876543210",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := dataField(t, out)["_id"].(string)

	rec, out = do(t, e, http.MethodPut, "/api/owner/accommodations/"+id+"/occupancy", ownerToken, models.OccupancyRequest{OccupiedRooms: 18})
	require.Equal(t, http.StatusOK, rec.Code, "body: %v", out)
	assert.Equal(t, float64(18), dataField(t, out)["occupiedRooms"])

	rec, _ = do(t, e, http.MethodPut, "/api/owner/accommodations/"+id+"/occupancy", ownerToken, models.OccupancyRequest{OccupiedRooms: 21})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, out = do(t, e, http.MethodGet, "/api/accommodations/"+id, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(18), dataField(t, out)["occupiedRooms"])
}
