package safety

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/models"
	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/store"
)

// brokenCounterStore fails every insert while delegating the rest.
type brokenCounterStore struct {
	store.CounterReportStore
}

func (brokenCounterStore) Insert(ctx context.Context, cr *models.CounterReport) error {
	return errors.New("insert failed")
}

func counterRequest(reportID primitive.ObjectID) models.SubmitCounterRequest {
	return models.SubmitCounterRequest{
		ReportID:    reportID.Hex(),
		Reason:      "resolved_issue",
		Explanation: "The lock was replaced last Monday, receipt attached",
	}
}

func TestSubmitCounterValidation(t *testing.T) {
	svc, mem := newTestService()
	student := seedUser(t, mem, "asha", models.RoleStudent)
	owner := seedUser(t, mem, "balu", models.RoleOwner)
	seedAccommodation(t, mem, "Sunrise PG", owner)
	ctx := context.Background()

	report, err := svc.CreateReport(ctx, student, validReport("Sunrise PG", "Security"))
	require.NoError(t, err)

	_, err = svc.SubmitCounter(ctx, owner, models.SubmitCounterRequest{
		ReportID: "not-an-id", Reason: "resolved_issue", Explanation: "x",
	})
	assert.Equal(t, KindValidation, KindOf(err))

	req := counterRequest(report.ID)
	req.Reason = "because"
	_, err = svc.SubmitCounter(ctx, owner, req)
	assert.Equal(t, KindValidation, KindOf(err))

	req = counterRequest(report.ID)
	req.Explanation = "   "
	_, err = svc.SubmitCounter(ctx, owner, req)
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = svc.SubmitCounter(ctx, owner, counterRequest(primitive.NewObjectID()))
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestSubmitCounterRequiresMatchingOwner(t *testing.T) {
	svc, mem := newTestService()
	student := seedUser(t, mem, "asha", models.RoleStudent)
	owner := seedUser(t, mem, "balu", models.RoleOwner)
	stranger := seedUser(t, mem, "dev", models.RoleOwner)
	seedAccommodation(t, mem, "Sunrise PG", owner)
	seedAccommodation(t, mem, "Moonlight Hostel", stranger)
	ctx := context.Background()

	report, err := svc.CreateReport(ctx, student, validReport("Sunrise PG", "Security"))
	require.NoError(t, err)

	// Owning some accommodation is not enough; the name must match.
	_, err = svc.SubmitCounter(ctx, stranger, counterRequest(report.ID))
	assert.Equal(t, KindForbidden, KindOf(err))

	_, err = svc.SubmitCounter(ctx, owner, counterRequest(report.ID))
	require.NoError(t, err)
}

func TestSubmitCounterOncePerReport(t *testing.T) {
	svc, mem := newTestService()
	student := seedUser(t, mem, "asha", models.RoleStudent)
	owner := seedUser(t, mem, "balu", models.RoleOwner)
	seedAccommodation(t, mem, "Sunrise PG", owner)
	ctx := context.Background()

	report, err := svc.CreateReport(ctx, student, validReport("Sunrise PG", "Security"))
	require.NoError(t, err)

	_, err = svc.SubmitCounter(ctx, owner, counterRequest(report.ID))
	require.NoError(t, err)

	_, err = svc.SubmitCounter(ctx, owner, counterRequest(report.ID))
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestCounterDisputeLifecycle(t *testing.T) {
	svc, mem := newTestService()
	student := seedUser(t, mem, "asha", models.RoleStudent)
	owner := seedUser(t, mem, "balu", models.RoleOwner)
	accommodation := seedAccommodation(t, mem, "Sunrise PG", owner)
	ctx := context.Background()

	report, err := svc.CreateReport(ctx, student, validReport("Sunrise PG", "Security"))
	require.NoError(t, err)

	stored, err := svc.GetAccommodation(ctx, accommodation.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, stored.RiskScore)

	counter, err := svc.SubmitCounter(ctx, owner, counterRequest(report.ID))
	require.NoError(t, err)
	assert.Equal(t, models.CounterStatusPending, counter.Status)
	assert.Equal(t, accommodation.ID, counter.Accommodation)
	assert.Nil(t, counter.ReviewedAt)

	stored2, err := svc.GetReport(ctx, report.ID)
	require.NoError(t, err)
	assert.True(t, stored2.IsCountered)
	assert.Equal(t, models.CounterStatusPending, stored2.CounterStatus)
	assert.Equal(t, models.ReportStatusPending, stored2.Status)

	resolved, err := svc.ResolveCounter(ctx, counter.ID, models.CounterStatusAccepted, "Verified the repair invoice")
	require.NoError(t, err)
	assert.Equal(t, models.CounterStatusAccepted, resolved.Status)
	assert.Equal(t, "Verified the repair invoice", resolved.AdminNotes)
	require.NotNil(t, resolved.ReviewedAt)

	// Accepting the dispute rejects the report and removes its weight.
	stored2, err = svc.GetReport(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusRejected, stored2.Status)
	assert.Equal(t, models.CounterStatusAccepted, stored2.CounterStatus)

	stored, err = svc.GetAccommodation(ctx, accommodation.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.RiskScore)
	assert.Equal(t, models.SafetyLevelSafe, stored.SafetyLevel)
}

func TestResolveCounterRejectedLeavesReport(t *testing.T) {
	svc, mem := newTestService()
	student := seedUser(t, mem, "asha", models.RoleStudent)
	owner := seedUser(t, mem, "balu", models.RoleOwner)
	seedAccommodation(t, mem, "Sunrise PG", owner)
	ctx := context.Background()

	report, err := svc.CreateReport(ctx, student, validReport("Sunrise PG", "Security"))
	require.NoError(t, err)
	_, err = svc.SetReportStatus(ctx, report.ID, models.ReportStatusApproved)
	require.NoError(t, err)

	counter, err := svc.SubmitCounter(ctx, owner, counterRequest(report.ID))
	require.NoError(t, err)

	_, err = svc.ResolveCounter(ctx, counter.ID, models.CounterStatusRejected, "")
	require.NoError(t, err)

	stored, err := svc.GetReport(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusApproved, stored.Status)
	assert.Equal(t, models.CounterStatusRejected, stored.CounterStatus)
}

func TestResolveCounterExactlyOnce(t *testing.T) {
	svc, mem := newTestService()
	student := seedUser(t, mem, "asha", models.RoleStudent)
	owner := seedUser(t, mem, "balu", models.RoleOwner)
	seedAccommodation(t, mem, "Sunrise PG", owner)
	ctx := context.Background()

	report, err := svc.CreateReport(ctx, student, validReport("Sunrise PG", "Security"))
	require.NoError(t, err)
	counter, err := svc.SubmitCounter(ctx, owner, counterRequest(report.ID))
	require.NoError(t, err)

	_, err = svc.ResolveCounter(ctx, counter.ID, "pending", "")
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = svc.ResolveCounter(ctx, counter.ID, models.CounterStatusRejected, "")
	require.NoError(t, err)

	_, err = svc.ResolveCounter(ctx, counter.ID, models.CounterStatusAccepted, "")
	assert.Equal(t, KindConflict, KindOf(err))

	_, err = svc.ResolveCounter(ctx, primitive.NewObjectID(), models.CounterStatusAccepted, "")
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestSubmitCounterInsertFailureLeavesReportClean(t *testing.T) {
	mem := store.NewMemoryStore()
	svc := New(mem.Reports(), brokenCounterStore{mem.Counters()}, mem.Accommodations(), mem.Users())
	student := seedUser(t, mem, "asha", models.RoleStudent)
	owner := seedUser(t, mem, "balu", models.RoleOwner)
	seedAccommodation(t, mem, "Sunrise PG", owner)
	ctx := context.Background()

	report, err := svc.CreateReport(ctx, student, validReport("Sunrise PG", "Security"))
	require.NoError(t, err)

	_, err = svc.SubmitCounter(ctx, owner, counterRequest(report.ID))
	require.Error(t, err)

	// The flags roll back, so a counter never exists while the report
	// says otherwise.
	stored, err := svc.GetReport(ctx, report.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsCountered)
	assert.Equal(t, models.CounterStatusNone, stored.CounterStatus)

	// With a healthy store the retry goes through.
	healthy := New(mem.Reports(), mem.Counters(), mem.Accommodations(), mem.Users())
	counter, err := healthy.SubmitCounter(ctx, owner, counterRequest(report.ID))
	require.NoError(t, err)
	assert.Equal(t, models.CounterStatusPending, counter.Status)

	stored, err = svc.GetReport(ctx, report.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsCountered)
}

func TestResolveCounterSurvivesDeletedReport(t *testing.T) {
	svc, mem := newTestService()
	student := seedUser(t, mem, "asha", models.RoleStudent)
	owner := seedUser(t, mem, "balu", models.RoleOwner)
	admin := seedUser(t, mem, "moderator", models.RoleAdmin)
	seedAccommodation(t, mem, "Sunrise PG", owner)
	ctx := context.Background()

	report, err := svc.CreateReport(ctx, student, validReport("Sunrise PG", "Security"))
	require.NoError(t, err)
	counter, err := svc.SubmitCounter(ctx, owner, counterRequest(report.ID))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteReport(ctx, admin, report.ID))

	resolved, err := svc.ResolveCounter(ctx, counter.ID, models.CounterStatusAccepted, "")
	require.NoError(t, err)
	assert.Equal(t, models.CounterStatusAccepted, resolved.Status)
}

func TestListCountersFilterByStatus(t *testing.T) {
	svc, mem := newTestService()
	student := seedUser(t, mem, "asha", models.RoleStudent)
	owner := seedUser(t, mem, "balu", models.RoleOwner)
	seedAccommodation(t, mem, "Sunrise PG", owner)
	seedAccommodation(t, mem, "Lakeview Hostel", owner)
	ctx := context.Background()

	first, err := svc.CreateReport(ctx, student, validReport("Sunrise PG", "Security"))
	require.NoError(t, err)
	second, err := svc.CreateReport(ctx, student, validReport("Lakeview Hostel", "Hygiene"))
	require.NoError(t, err)

	c1, err := svc.SubmitCounter(ctx, owner, counterRequest(first.ID))
	require.NoError(t, err)
	_, err = svc.SubmitCounter(ctx, owner, counterRequest(second.ID))
	require.NoError(t, err)

	_, err = svc.ResolveCounter(ctx, c1.ID, models.CounterStatusAccepted, "")
	require.NoError(t, err)

	pending, err := svc.ListCounters(ctx, store.CounterFilter{Status: models.CounterStatusPending})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, second.ID, pending[0].OriginalReport)

	all, err := svc.ListCounters(ctx, store.CounterFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	none, err := svc.ListCounters(ctx, store.CounterFilter{Owner: &student.ID})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
