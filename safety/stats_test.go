package safety

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/models"
)

func TestAdminStats(t *testing.T) {
	svc, mem := newTestService()
	student := seedUser(t, mem, "asha", models.RoleStudent)
	owner := seedUser(t, mem, "balu", models.RoleOwner)
	seedUser(t, mem, "moderator", models.RoleAdmin)
	seedAccommodation(t, mem, "Sunrise PG", owner)
	ctx := context.Background()

	r1, err := svc.CreateReport(ctx, student, validReport("Sunrise PG", "Security"))
	require.NoError(t, err)
	r2, err := svc.CreateReport(ctx, student, validReport("Sunrise PG", "Security"))
	require.NoError(t, err)
	_, err = svc.CreateReport(ctx, student, validReport("Sunrise PG", "Hygiene"))
	require.NoError(t, err)

	_, err = svc.SetReportStatus(ctx, r1.ID, models.ReportStatusApproved)
	require.NoError(t, err)
	_, err = svc.SetReportStatus(ctx, r2.ID, models.ReportStatusRejected)
	require.NoError(t, err)

	_, err = svc.SubmitCounter(ctx, owner, counterRequest(r1.ID))
	require.NoError(t, err)

	stats, err := svc.AdminStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalReports)
	assert.Equal(t, 1, stats.PendingReports)
	assert.Equal(t, 1, stats.ApprovedReports)
	assert.Equal(t, 1, stats.RejectedReports)
	assert.Equal(t, 3, stats.TotalUsers)
	assert.Equal(t, 0, stats.BannedUsers)
	assert.Equal(t, 1, stats.PendingCounters)
	require.Len(t, stats.IssueStats, 2)
	assert.Equal(t, models.IssueCount{IssueType: "Security", Count: 2}, stats.IssueStats[0])
	assert.Equal(t, models.IssueCount{IssueType: "Hygiene", Count: 1}, stats.IssueStats[1])
}

func TestAdminStatsEmpty(t *testing.T) {
	svc, _ := newTestService()

	stats, err := svc.AdminStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalReports)
	assert.NotNil(t, stats.IssueStats)
	assert.Empty(t, stats.IssueStats)
}

func TestOwnerStats(t *testing.T) {
	svc, mem := newTestService()
	student := seedUser(t, mem, "asha", models.RoleStudent)
	owner := seedUser(t, mem, "balu", models.RoleOwner)
	ctx := context.Background()

	first := validAccommodation("Sunrise PG")
	first.TotalRooms = 20
	first.OccupiedRooms = 5
	_, err := svc.CreateAccommodation(ctx, owner, first)
	require.NoError(t, err)

	second := validAccommodation("Lakeview Hostel")
	second.TotalRooms = 10
	second.OccupiedRooms = 5
	_, err = svc.CreateAccommodation(ctx, owner, second)
	require.NoError(t, err)

	report, err := svc.CreateReport(ctx, student, validReport("Sunrise PG", "Security"))
	require.NoError(t, err)
	_, err = svc.CreateReport(ctx, student, validReport("Elsewhere Lodge", "Hygiene"))
	require.NoError(t, err)
	_, err = svc.SubmitCounter(ctx, owner, counterRequest(report.ID))
	require.NoError(t, err)

	stats, err := svc.OwnerStats(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalAccommodations)
	assert.Equal(t, 30, stats.TotalRooms)
	assert.Equal(t, 10, stats.OccupiedRooms)
	assert.InDelta(t, 33.3, stats.OccupancyRate, 0.001)
	assert.Equal(t, 1, stats.TotalReports)
	assert.Equal(t, 1, stats.PendingCounters)
}

func TestOwnerStatsNoListings(t *testing.T) {
	svc, mem := newTestService()
	owner := seedUser(t, mem, "balu", models.RoleOwner)

	stats, err := svc.OwnerStats(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalAccommodations)
	assert.Equal(t, 0.0, stats.OccupancyRate)
	assert.Equal(t, 0, stats.TotalReports)
}

func TestToggleBan(t *testing.T) {
	svc, mem := newTestService()
	admin := seedUser(t, mem, "moderator", models.RoleAdmin)
	student := seedUser(t, mem, "asha", models.RoleStudent)
	ctx := context.Background()

	_, err := svc.ToggleBan(ctx, admin, admin.ID)
	assert.Equal(t, KindForbidden, KindOf(err))

	banned, err := svc.ToggleBan(ctx, admin, student.ID)
	require.NoError(t, err)
	assert.True(t, banned.IsBanned)
	assert.Empty(t, banned.Password)

	unbanned, err := svc.ToggleBan(ctx, admin, student.ID)
	require.NoError(t, err)
	assert.False(t, unbanned.IsBanned)
}

func TestListUsersStripsPasswords(t *testing.T) {
	svc, mem := newTestService()
	user := seedUser(t, mem, "asha", models.RoleStudent)
	user.Password = "$2a$10$notarealhash"
	require.NoError(t, mem.SaveUser(context.Background(), user))

	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Empty(t, users[0].Password)
}
