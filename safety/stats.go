package safety

import (
	"context"
	"math"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/models"
	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/store"
)

// AdminStats recomputes the moderation counters on every call. There is
// no caching layer at this scale.
func (s *Service) AdminStats(ctx context.Context) (*models.AdminStats, error) {
	byStatus, err := s.reports.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	totalUsers, bannedUsers, err := s.users.Counts(ctx)
	if err != nil {
		return nil, err
	}
	pendingCounters, err := s.counters.Count(ctx, store.CounterFilter{Status: models.CounterStatusPending})
	if err != nil {
		return nil, err
	}
	histogram, err := s.reports.IssueHistogram(ctx)
	if err != nil {
		return nil, err
	}
	if histogram == nil {
		histogram = []models.IssueCount{}
	}
	return &models.AdminStats{
		TotalReports:    byStatus[models.ReportStatusPending] + byStatus[models.ReportStatusApproved] + byStatus[models.ReportStatusRejected],
		PendingReports:  byStatus[models.ReportStatusPending],
		ApprovedReports: byStatus[models.ReportStatusApproved],
		RejectedReports: byStatus[models.ReportStatusRejected],
		TotalUsers:      totalUsers,
		BannedUsers:     bannedUsers,
		PendingCounters: int(pendingCounters),
		IssueStats:      histogram,
	}, nil
}

// OwnerStats aggregates the caller's listings and the reports filed
// against them.
func (s *Service) OwnerStats(ctx context.Context, ownerID primitive.ObjectID) (*models.OwnerStats, error) {
	accommodations, err := s.accommodations.Find(ctx, store.AccommodationFilter{Owner: &ownerID})
	if err != nil {
		return nil, err
	}
	stats := &models.OwnerStats{TotalAccommodations: len(accommodations)}
	names := make([]string, 0, len(accommodations))
	for _, a := range accommodations {
		stats.TotalRooms += a.TotalRooms
		stats.OccupiedRooms += a.OccupiedRooms
		names = append(names, a.Name)
	}
	if stats.TotalRooms > 0 {
		rate := float64(stats.OccupiedRooms) / float64(stats.TotalRooms) * 100
		stats.OccupancyRate = math.Round(rate*10) / 10
	}
	if len(names) > 0 {
		reports, err := s.reports.Find(ctx, store.ReportFilter{AccommodationNames: names})
		if err != nil {
			return nil, err
		}
		stats.TotalReports = len(reports)
	}
	pending, err := s.counters.Count(ctx, store.CounterFilter{Owner: &ownerID, Status: models.CounterStatusPending})
	if err != nil {
		return nil, err
	}
	stats.PendingCounters = int(pending)
	return stats, nil
}
