// Package store defines the persistence interfaces for the platform's
// entities, with a MongoDB implementation for production, an in-memory
// implementation for tests and demo mode, and a Redis-backed OTP store.
package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/models"
)

// ErrNotFound is returned when a referenced document does not exist,
// or when an OTP entry is absent or has expired.
var ErrNotFound = errors.New("store: not found")

type ReportFilter struct {
	User               *primitive.ObjectID
	Status             string
	AccommodationNames []string
}

type ReportStore interface {
	Insert(ctx context.Context, r *models.Report) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Report, error)
	Find(ctx context.Context, f ReportFilter) ([]models.Report, error)
	// FindPage returns one page of matching reports, newest first,
	// along with the total match count.
	FindPage(ctx context.Context, f ReportFilter, page, limit int) ([]models.Report, int64, error)
	Save(ctx context.Context, r *models.Report) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	CountByStatus(ctx context.Context) (map[string]int, error)
	IssueHistogram(ctx context.Context) ([]models.IssueCount, error)
}

type CounterFilter struct {
	Owner  *primitive.ObjectID
	Status string
}

type CounterReportStore interface {
	Insert(ctx context.Context, cr *models.CounterReport) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.CounterReport, error)
	// FindByReport returns the counter-report referencing the given
	// report, or ErrNotFound. At most one can exist.
	FindByReport(ctx context.Context, reportID primitive.ObjectID) (*models.CounterReport, error)
	Find(ctx context.Context, f CounterFilter) ([]models.CounterReport, error)
	Count(ctx context.Context, f CounterFilter) (int64, error)
	Save(ctx context.Context, cr *models.CounterReport) error
}

type AccommodationFilter struct {
	Owner    *primitive.ObjectID
	City     string
	Search   string
	MaxPrice float64
}

type AccommodationStore interface {
	Insert(ctx context.Context, a *models.Accommodation) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Accommodation, error)
	Find(ctx context.Context, f AccommodationFilter) ([]models.Accommodation, error)
	// FindByName matches by exact name string; reports link to
	// accommodations by name, so several documents may share one.
	FindByName(ctx context.Context, name string) ([]models.Accommodation, error)
	FindOneByNameAndOwner(ctx context.Context, name string, owner primitive.ObjectID) (*models.Accommodation, error)
	Save(ctx context.Context, a *models.Accommodation) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type UserStore interface {
	Insert(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	Save(ctx context.Context, u *models.User) error
	// Counts returns the total and banned user counts.
	Counts(ctx context.Context) (total, banned int, err error)
}

// OTPStore holds one-time codes keyed by email and type. Entries expire
// at the store level after their TTL; Delete removes a code eagerly on
// successful use or resend to prevent replay.
type OTPStore interface {
	Set(ctx context.Context, email, otpType, code string, ttl time.Duration) error
	Get(ctx context.Context, email, otpType string) (string, error)
	Delete(ctx context.Context, email, otpType string) error
}
