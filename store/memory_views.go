package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/models"
)

// Reports exposes the memory store as a ReportStore.
func (m *MemoryStore) Reports() ReportStore { return m }

// Counters exposes the memory store as a CounterReportStore.
func (m *MemoryStore) Counters() CounterReportStore { return memoryCounters{m} }

// Accommodations exposes the memory store as an AccommodationStore.
func (m *MemoryStore) Accommodations() AccommodationStore { return memoryAccommodations{m} }

// Users exposes the memory store as a UserStore.
func (m *MemoryStore) Users() UserStore { return memoryUsers{m} }

// OTPs exposes the memory store as an OTPStore.
func (m *MemoryStore) OTPs() OTPStore { return memoryOTPs{m} }

type memoryCounters struct{ m *MemoryStore }

func (v memoryCounters) Insert(ctx context.Context, cr *models.CounterReport) error {
	return v.m.InsertCounter(ctx, cr)
}

func (v memoryCounters) FindByID(ctx context.Context, id primitive.ObjectID) (*models.CounterReport, error) {
	return v.m.FindCounterByID(ctx, id)
}

func (v memoryCounters) FindByReport(ctx context.Context, reportID primitive.ObjectID) (*models.CounterReport, error) {
	return v.m.FindCounterByReport(ctx, reportID)
}

func (v memoryCounters) Find(ctx context.Context, f CounterFilter) ([]models.CounterReport, error) {
	return v.m.FindCounters(ctx, f)
}

func (v memoryCounters) Count(ctx context.Context, f CounterFilter) (int64, error) {
	return v.m.CountCounters(ctx, f)
}

func (v memoryCounters) Save(ctx context.Context, cr *models.CounterReport) error {
	return v.m.SaveCounter(ctx, cr)
}

type memoryAccommodations struct{ m *MemoryStore }

func (v memoryAccommodations) Insert(ctx context.Context, a *models.Accommodation) error {
	return v.m.InsertAccommodation(ctx, a)
}

func (v memoryAccommodations) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Accommodation, error) {
	return v.m.FindAccommodationByID(ctx, id)
}

func (v memoryAccommodations) Find(ctx context.Context, f AccommodationFilter) ([]models.Accommodation, error) {
	return v.m.FindAccommodations(ctx, f)
}

func (v memoryAccommodations) FindByName(ctx context.Context, name string) ([]models.Accommodation, error) {
	return v.m.FindAccommodationsByName(ctx, name)
}

func (v memoryAccommodations) FindOneByNameAndOwner(ctx context.Context, name string, owner primitive.ObjectID) (*models.Accommodation, error) {
	return v.m.FindAccommodationByNameAndOwner(ctx, name, owner)
}

func (v memoryAccommodations) Save(ctx context.Context, a *models.Accommodation) error {
	return v.m.SaveAccommodation(ctx, a)
}

func (v memoryAccommodations) Delete(ctx context.Context, id primitive.ObjectID) error {
	return v.m.DeleteAccommodation(ctx, id)
}

type memoryUsers struct{ m *MemoryStore }

func (v memoryUsers) Insert(ctx context.Context, u *models.User) error {
	return v.m.InsertUser(ctx, u)
}

func (v memoryUsers) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return v.m.FindUserByID(ctx, id)
}

func (v memoryUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return v.m.FindUserByEmail(ctx, email)
}

func (v memoryUsers) FindAll(ctx context.Context) ([]models.User, error) {
	return v.m.FindAllUsers(ctx)
}

func (v memoryUsers) Save(ctx context.Context, u *models.User) error {
	return v.m.SaveUser(ctx, u)
}

func (v memoryUsers) Counts(ctx context.Context) (int, int, error) {
	return v.m.UserCounts(ctx)
}

type memoryOTPs struct{ m *MemoryStore }

func (v memoryOTPs) Set(ctx context.Context, email, otpType, code string, ttl time.Duration) error {
	return v.m.SetOTP(ctx, email, otpType, code, ttl)
}

func (v memoryOTPs) Get(ctx context.Context, email, otpType string) (string, error) {
	return v.m.GetOTP(ctx, email, otpType)
}

func (v memoryOTPs) Delete(ctx context.Context, email, otpType string) error {
	return v.m.DeleteOTP(ctx, email, otpType)
}
