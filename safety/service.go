// Package safety implements the report lifecycle engine: report
// creation and moderation, the owner counter-dispute workflow, upvote
// toggling, and the derived risk score and stats projections.
package safety

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/models"
	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/store"
)

const (
	maxAccommodationNameLen = 200
	maxDescriptionLen       = 2000
	maxReportImages         = 5
)

type Service struct {
	reports        store.ReportStore
	counters       store.CounterReportStore
	accommodations store.AccommodationStore
	users          store.UserStore
}

func New(reports store.ReportStore, counters store.CounterReportStore, accommodations store.AccommodationStore, users store.UserStore) *Service {
	return &Service{
		reports:        reports,
		counters:       counters,
		accommodations: accommodations,
		users:          users,
	}
}

func validIssueType(issueType string) bool {
	for _, t := range models.IssueTypes {
		if t == issueType {
			return true
		}
	}
	return false
}

// cleanImages drops malformed image entries instead of rejecting the
// request, and caps the sequence at maxReportImages.
func cleanImages(images []models.ReportImage) []models.ReportImage {
	cleaned := make([]models.ReportImage, 0, len(images))
	for _, img := range images {
		if img.URL == "" || img.PublicID == "" {
			continue
		}
		cleaned = append(cleaned, img)
		if len(cleaned) == maxReportImages {
			break
		}
	}
	return cleaned
}

func validateReportFields(req *models.CreateReportRequest) error {
	req.AccommodationName = strings.TrimSpace(req.AccommodationName)
	req.Description = strings.TrimSpace(req.Description)
	if req.AccommodationName == "" {
		return Validationf("accommodation name is required")
	}
	if utf8.RuneCountInString(req.AccommodationName) > maxAccommodationNameLen {
		return Validationf("accommodation name must be at most %d characters", maxAccommodationNameLen)
	}
	if !validIssueType(req.IssueType) {
		return Validationf("invalid issue type %q", req.IssueType)
	}
	if req.Description == "" {
		return Validationf("description is required")
	}
	if utf8.RuneCountInString(req.Description) > maxDescriptionLen {
		return Validationf("description must be at most %d characters", maxDescriptionLen)
	}
	return nil
}

func (s *Service) CreateReport(ctx context.Context, author *models.User, req models.CreateReportRequest) (*models.Report, error) {
	if err := validateReportFields(&req); err != nil {
		return nil, err
	}
	report := &models.Report{
		AccommodationName: req.AccommodationName,
		IssueType:         req.IssueType,
		Description:       req.Description,
		Images:            cleanImages(req.Images),
		Status:            models.ReportStatusPending,
		CounterStatus:     models.CounterStatusNone,
		UpvotedBy:         []primitive.ObjectID{},
		User:              author.ID,
		CreatedAt:         time.Now(),
	}
	if err := s.reports.Insert(ctx, report); err != nil {
		return nil, err
	}
	s.recomputeRisk(ctx, report.AccommodationName)
	return report, nil
}

func (s *Service) GetReport(ctx context.Context, id primitive.ObjectID) (*models.Report, error) {
	report, err := s.reports.FindByID(ctx, id)
	if err == store.ErrNotFound {
		return nil, NotFoundf("report not found")
	}
	return report, err
}

// ListReports returns every report, newest first. Public endpoint; the
// author snapshot is not attached here.
func (s *Service) ListReports(ctx context.Context) ([]models.Report, error) {
	return s.reports.Find(ctx, store.ReportFilter{})
}

// MyReports returns one page of the author's own reports plus paging
// metadata.
func (s *Service) MyReports(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]models.Report, int64, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	reports, total, err := s.reports.FindPage(ctx, store.ReportFilter{User: &userID}, page, limit)
	if err != nil {
		return nil, 0, 0, err
	}
	pages := int((total + int64(limit) - 1) / int64(limit))
	return reports, total, pages, nil
}

// UpdateReport lets the original author edit the report's fields.
// Status and counter state are never touched through this path.
func (s *Service) UpdateReport(ctx context.Context, actor *models.User, id primitive.ObjectID, req models.CreateReportRequest) (*models.Report, error) {
	report, err := s.GetReport(ctx, id)
	if err != nil {
		return nil, err
	}
	if report.User != actor.ID {
		return nil, Forbiddenf("only the report author can edit this report")
	}
	if err := validateReportFields(&req); err != nil {
		return nil, err
	}
	previousName := report.AccommodationName
	report.AccommodationName = req.AccommodationName
	report.IssueType = req.IssueType
	report.Description = req.Description
	report.Images = cleanImages(req.Images)
	if err := s.reports.Save(ctx, report); err != nil {
		return nil, err
	}
	s.recomputeRisk(ctx, previousName)
	if report.AccommodationName != previousName {
		s.recomputeRisk(ctx, report.AccommodationName)
	}
	return report, nil
}

func (s *Service) DeleteReport(ctx context.Context, actor *models.User, id primitive.ObjectID) error {
	report, err := s.GetReport(ctx, id)
	if err != nil {
		return err
	}
	if report.User != actor.ID && actor.Role != models.RoleAdmin {
		return Forbiddenf("only the report author or an admin can delete this report")
	}
	if err := s.reports.Delete(ctx, id); err != nil {
		return err
	}
	s.recomputeRisk(ctx, report.AccommodationName)
	return nil
}

// SetReportStatus is the admin moderation path. Role enforcement
// happens in the middleware; the status set is validated here.
func (s *Service) SetReportStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Report, error) {
	switch status {
	case models.ReportStatusPending, models.ReportStatusApproved, models.ReportStatusRejected:
	default:
		return nil, Validationf("invalid report status %q", status)
	}
	report, err := s.GetReport(ctx, id)
	if err != nil {
		return nil, err
	}
	report.Status = status
	if err := s.reports.Save(ctx, report); err != nil {
		return nil, err
	}
	s.recomputeRisk(ctx, report.AccommodationName)
	return report, nil
}

// ToggleUpvote flips the caller's upvote on a report. A second call
// returns the report to its prior state; this is a toggle, not an
// idempotent add. Authors cannot upvote their own reports.
func (s *Service) ToggleUpvote(ctx context.Context, user *models.User, id primitive.ObjectID) (*models.UpvoteResult, error) {
	report, err := s.GetReport(ctx, id)
	if err != nil {
		return nil, err
	}
	if report.User == user.ID {
		return nil, Forbiddenf("you cannot upvote your own report")
	}
	if report.HasUpvoted(user.ID) {
		kept := report.UpvotedBy[:0]
		for _, uid := range report.UpvotedBy {
			if uid != user.ID {
				kept = append(kept, uid)
			}
		}
		report.UpvotedBy = kept
		if report.Upvotes > 0 {
			report.Upvotes--
		}
	} else {
		report.UpvotedBy = append(report.UpvotedBy, user.ID)
		report.Upvotes++
	}
	if err := s.reports.Save(ctx, report); err != nil {
		return nil, err
	}
	return &models.UpvoteResult{
		Upvotes:    report.Upvotes,
		HasUpvoted: report.HasUpvoted(user.ID),
	}, nil
}

// AdminReports returns all reports with the author snapshot attached
// for the moderation view.
func (s *Service) AdminReports(ctx context.Context) ([]models.Report, error) {
	reports, err := s.reports.Find(ctx, store.ReportFilter{})
	if err != nil {
		return nil, err
	}
	for i := range reports {
		author, err := s.users.FindByID(ctx, reports[i].User)
		if err != nil {
			continue
		}
		reports[i].Author = &models.ReportAuthor{Name: author.Name, Email: author.Email}
	}
	return reports, nil
}

// OwnerReports returns the reports filed against any accommodation the
// owner currently holds, matched by exact name.
func (s *Service) OwnerReports(ctx context.Context, ownerID primitive.ObjectID) ([]models.Report, error) {
	names, err := s.ownedNames(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return []models.Report{}, nil
	}
	return s.reports.Find(ctx, store.ReportFilter{AccommodationNames: names})
}

func (s *Service) ownedNames(ctx context.Context, ownerID primitive.ObjectID) ([]string, error) {
	accommodations, err := s.accommodations.Find(ctx, store.AccommodationFilter{Owner: &ownerID})
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(accommodations))
	for _, a := range accommodations {
		names = append(names, a.Name)
	}
	return names, nil
}
