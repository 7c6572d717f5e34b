package safety

import (
	"context"
	"log"

	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/models"
	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/store"
)

// issueWeights is the canonical per-category contribution to an
// accommodation's risk score.
var issueWeights = map[string]int{
	"Security":       25,
	"Infrastructure": 20,
	"Food Safety":    15,
	"Water Quality":  15,
	"Hygiene":        10,
}

// RiskScore sums category weights over the given reports. Rejected
// reports do not count: a won dispute suppresses its report's weight.
func RiskScore(reports []models.Report) int {
	score := 0
	for _, r := range reports {
		if r.Status == models.ReportStatusRejected {
			continue
		}
		score += issueWeights[r.IssueType]
	}
	return score
}

// SafetyLevel buckets a risk score: Safe below 40, Risky up to 69,
// High Risk from 70.
func SafetyLevel(score int) string {
	switch {
	case score >= 70:
		return models.SafetyLevelHighRisk
	case score >= 40:
		return models.SafetyLevelRisky
	default:
		return models.SafetyLevelSafe
	}
}

// recomputeRisk refreshes the persisted risk score of every
// accommodation sharing the given name. It is invoked after each report
// mutation; failures are logged, not surfaced, so the primary operation
// stays committed.
func (s *Service) recomputeRisk(ctx context.Context, accommodationName string) {
	if accommodationName == "" {
		return
	}
	reports, err := s.reports.Find(ctx, store.ReportFilter{AccommodationNames: []string{accommodationName}})
	if err != nil {
		log.Printf("risk recompute: fetching reports for %q: %v", accommodationName, err)
		return
	}
	score := RiskScore(reports)
	accommodations, err := s.accommodations.FindByName(ctx, accommodationName)
	if err != nil {
		log.Printf("risk recompute: fetching accommodations %q: %v", accommodationName, err)
		return
	}
	for i := range accommodations {
		a := &accommodations[i]
		if a.RiskScore == score {
			continue
		}
		a.RiskScore = score
		if err := s.accommodations.Save(ctx, a); err != nil {
			log.Printf("risk recompute: saving accommodation %s: %v", a.ID.Hex(), err)
		}
	}
}
