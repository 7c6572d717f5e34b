package safety

import (
	"context"
	"log"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/models"
	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/store"
)

func validCounterReason(reason string) bool {
	for _, r := range models.CounterReasons {
		if r == reason {
			return true
		}
	}
	return false
}

// SubmitCounter files an owner's dispute against a report. The caller
// must own an accommodation whose name exactly equals the report's
// accommodationName, and no counter-report may already reference the
// report.
func (s *Service) SubmitCounter(ctx context.Context, owner *models.User, req models.SubmitCounterRequest) (*models.CounterReport, error) {
	reportID, err := primitive.ObjectIDFromHex(req.ReportID)
	if err != nil {
		return nil, Validationf("invalid report id")
	}
	if !validCounterReason(req.Reason) {
		return nil, Validationf("invalid counter reason %q", req.Reason)
	}
	req.Explanation = strings.TrimSpace(req.Explanation)
	if req.Explanation == "" {
		return nil, Validationf("explanation is required")
	}

	report, err := s.GetReport(ctx, reportID)
	if err != nil {
		return nil, err
	}

	accommodation, err := s.accommodations.FindOneByNameAndOwner(ctx, report.AccommodationName, owner.ID)
	if err == store.ErrNotFound {
		return nil, Forbiddenf("you are not authorized to counter this report")
	}
	if err != nil {
		return nil, err
	}

	if _, err := s.counters.FindByReport(ctx, reportID); err == nil {
		return nil, Conflictf("a counter report has already been submitted for this report")
	} else if err != store.ErrNotFound {
		return nil, err
	}

	// Flag the report before the counter exists. The orphaned-flag
	// window this leaves on an insert failure is recoverable: a retry
	// passes the at-most-one check and re-flags, whereas an orphaned
	// counter would block resubmission forever. There are no
	// transactions at this scale.
	report.IsCountered = true
	report.CounterStatus = models.CounterStatusPending
	if err := s.reports.Save(ctx, report); err != nil {
		return nil, err
	}

	counter := &models.CounterReport{
		OriginalReport:      reportID,
		Accommodation:       accommodation.ID,
		Owner:               owner.ID,
		Reason:              req.Reason,
		Explanation:         req.Explanation,
		EvidenceUrls:        req.EvidenceUrls,
		EvidenceDescription: strings.TrimSpace(req.EvidenceDescription),
		Status:              models.CounterStatusPending,
		CreatedAt:           time.Now(),
	}
	if err := s.counters.Insert(ctx, counter); err != nil {
		report.IsCountered = false
		report.CounterStatus = models.CounterStatusNone
		if serr := s.reports.Save(ctx, report); serr != nil {
			log.Printf("counter submit: reverting report %s flags: %v", report.ID.Hex(), serr)
		}
		return nil, err
	}
	return counter, nil
}

// ResolveCounter records the admin decision exactly once. Accepting the
// dispute forces the original report to rejected; rejecting it leaves
// the report's status untouched. There is no path back to pending.
func (s *Service) ResolveCounter(ctx context.Context, counterID primitive.ObjectID, decision, adminNotes string) (*models.CounterReport, error) {
	if decision != models.CounterStatusAccepted && decision != models.CounterStatusRejected {
		return nil, Validationf("counter decision must be accepted or rejected")
	}
	counter, err := s.counters.FindByID(ctx, counterID)
	if err == store.ErrNotFound {
		return nil, NotFoundf("counter report not found")
	}
	if err != nil {
		return nil, err
	}
	if counter.Status != models.CounterStatusPending {
		return nil, Conflictf("counter report has already been resolved")
	}

	now := time.Now()
	counter.Status = decision
	counter.AdminNotes = adminNotes
	counter.ReviewedAt = &now
	if err := s.counters.Save(ctx, counter); err != nil {
		return nil, err
	}

	report, err := s.reports.FindByID(ctx, counter.OriginalReport)
	if err == store.ErrNotFound {
		// Report deleted since submission; the resolution still stands.
		return counter, nil
	}
	if err != nil {
		return nil, err
	}
	report.CounterStatus = decision
	if decision == models.CounterStatusAccepted {
		report.Status = models.ReportStatusRejected
	}
	if err := s.reports.Save(ctx, report); err != nil {
		return nil, err
	}
	s.recomputeRisk(ctx, report.AccommodationName)
	return counter, nil
}

// ListCounters returns counter-reports matching the filter, newest
// first.
func (s *Service) ListCounters(ctx context.Context, f store.CounterFilter) ([]models.CounterReport, error) {
	counters, err := s.counters.Find(ctx, f)
	if err != nil {
		return nil, err
	}
	if counters == nil {
		counters = []models.CounterReport{}
	}
	return counters, nil
}
