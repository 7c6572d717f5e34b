package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/models"
)

// MemoryStore is a pure in-memory repository implementing every store
// interface. It backs the tests and the demo mode; it is never the
// authoritative store.
type MemoryStore struct {
	mu             sync.Mutex
	reports        map[primitive.ObjectID]models.Report
	counters       map[primitive.ObjectID]models.CounterReport
	accommodations map[primitive.ObjectID]models.Accommodation
	users          map[primitive.ObjectID]models.User
	otps           map[string]otpEntry
}

type otpEntry struct {
	code      string
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		reports:        make(map[primitive.ObjectID]models.Report),
		counters:       make(map[primitive.ObjectID]models.CounterReport),
		accommodations: make(map[primitive.ObjectID]models.Accommodation),
		users:          make(map[primitive.ObjectID]models.User),
		otps:           make(map[string]otpEntry),
	}
}

func cloneReport(r models.Report) models.Report {
	out := r
	out.Images = append([]models.ReportImage(nil), r.Images...)
	out.UpvotedBy = append([]primitive.ObjectID(nil), r.UpvotedBy...)
	return out
}

func matchesReport(r models.Report, f ReportFilter) bool {
	if f.User != nil && r.User != *f.User {
		return false
	}
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	if len(f.AccommodationNames) > 0 {
		found := false
		for _, name := range f.AccommodationNames {
			if r.AccommodationName == name {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (m *MemoryStore) Insert(ctx context.Context, r *models.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	m.reports[r.ID] = cloneReport(*r)
	return nil
}

func (m *MemoryStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reports[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneReport(r)
	return &out, nil
}

func (m *MemoryStore) Find(ctx context.Context, f ReportFilter) ([]models.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var reports []models.Report
	for _, r := range m.reports {
		if matchesReport(r, f) {
			reports = append(reports, cloneReport(r))
		}
	}
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].CreatedAt.After(reports[j].CreatedAt)
	})
	return reports, nil
}

func (m *MemoryStore) FindPage(ctx context.Context, f ReportFilter, page, limit int) ([]models.Report, int64, error) {
	reports, err := m.Find(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	total := int64(len(reports))
	start := (page - 1) * limit
	if start >= len(reports) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(reports) {
		end = len(reports)
	}
	return reports[start:end], total, nil
}

func (m *MemoryStore) Save(ctx context.Context, r *models.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reports[r.ID]; !ok {
		return ErrNotFound
	}
	m.reports[r.ID] = cloneReport(*r)
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.reports, id)
	return nil
}

func (m *MemoryStore) CountByStatus(ctx context.Context) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[string]int)
	for _, r := range m.reports {
		counts[r.Status]++
	}
	return counts, nil
}

func (m *MemoryStore) IssueHistogram(ctx context.Context) ([]models.IssueCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[string]int)
	for _, r := range m.reports {
		counts[r.IssueType]++
	}
	var histogram []models.IssueCount
	for issueType, count := range counts {
		histogram = append(histogram, models.IssueCount{IssueType: issueType, Count: count})
	}
	sort.Slice(histogram, func(i, j int) bool {
		if histogram[i].Count != histogram[j].Count {
			return histogram[i].Count > histogram[j].Count
		}
		return histogram[i].IssueType < histogram[j].IssueType
	})
	return histogram, nil
}

func (m *MemoryStore) InsertCounter(ctx context.Context, cr *models.CounterReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cr.ID.IsZero() {
		cr.ID = primitive.NewObjectID()
	}
	m.counters[cr.ID] = *cr
	return nil
}

func (m *MemoryStore) FindCounterByID(ctx context.Context, id primitive.ObjectID) (*models.CounterReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cr, ok := m.counters[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := cr
	return &out, nil
}

func (m *MemoryStore) FindCounterByReport(ctx context.Context, reportID primitive.ObjectID) (*models.CounterReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, cr := range m.counters {
		if cr.OriginalReport == reportID {
			out := cr
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func matchesCounter(cr models.CounterReport, f CounterFilter) bool {
	if f.Owner != nil && cr.Owner != *f.Owner {
		return false
	}
	if f.Status != "" && cr.Status != f.Status {
		return false
	}
	return true
}

func (m *MemoryStore) FindCounters(ctx context.Context, f CounterFilter) ([]models.CounterReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var counters []models.CounterReport
	for _, cr := range m.counters {
		if matchesCounter(cr, f) {
			counters = append(counters, cr)
		}
	}
	sort.Slice(counters, func(i, j int) bool {
		return counters[i].CreatedAt.After(counters[j].CreatedAt)
	})
	return counters, nil
}

func (m *MemoryStore) CountCounters(ctx context.Context, f CounterFilter) (int64, error) {
	counters, err := m.FindCounters(ctx, f)
	if err != nil {
		return 0, err
	}
	return int64(len(counters)), nil
}

func (m *MemoryStore) SaveCounter(ctx context.Context, cr *models.CounterReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.counters[cr.ID]; !ok {
		return ErrNotFound
	}
	m.counters[cr.ID] = *cr
	return nil
}

func cloneAccommodation(a models.Accommodation) models.Accommodation {
	out := a
	out.Amenities = append([]string(nil), a.Amenities...)
	out.Images = append([]string(nil), a.Images...)
	return out
}

func (m *MemoryStore) InsertAccommodation(ctx context.Context, a *models.Accommodation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	m.accommodations[a.ID] = cloneAccommodation(*a)
	return nil
}

func (m *MemoryStore) FindAccommodationByID(ctx context.Context, id primitive.ObjectID) (*models.Accommodation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accommodations[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneAccommodation(a)
	return &out, nil
}

func (m *MemoryStore) FindAccommodations(ctx context.Context, f AccommodationFilter) ([]models.Accommodation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var accommodations []models.Accommodation
	for _, a := range m.accommodations {
		if f.Owner != nil && a.Owner != *f.Owner {
			continue
		}
		if f.City != "" && !strings.EqualFold(strings.TrimSpace(f.City), a.City) {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(a.Name), strings.ToLower(f.Search)) {
			continue
		}
		if f.MaxPrice > 0 && a.PricePerMonth > f.MaxPrice {
			continue
		}
		accommodations = append(accommodations, cloneAccommodation(a))
	}
	sort.Slice(accommodations, func(i, j int) bool {
		return accommodations[i].CreatedAt.After(accommodations[j].CreatedAt)
	})
	return accommodations, nil
}

func (m *MemoryStore) FindAccommodationsByName(ctx context.Context, name string) ([]models.Accommodation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var accommodations []models.Accommodation
	for _, a := range m.accommodations {
		if a.Name == name {
			accommodations = append(accommodations, cloneAccommodation(a))
		}
	}
	return accommodations, nil
}

func (m *MemoryStore) FindAccommodationByNameAndOwner(ctx context.Context, name string, owner primitive.ObjectID) (*models.Accommodation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accommodations {
		if a.Name == name && a.Owner == owner {
			out := cloneAccommodation(a)
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) SaveAccommodation(ctx context.Context, a *models.Accommodation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accommodations[a.ID]; !ok {
		return ErrNotFound
	}
	m.accommodations[a.ID] = cloneAccommodation(*a)
	return nil
}

func (m *MemoryStore) DeleteAccommodation(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.accommodations, id)
	return nil
}

func (m *MemoryStore) InsertUser(ctx context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	m.users[u.ID] = *u
	return nil
}

func (m *MemoryStore) FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := u
	return &out, nil
}

func (m *MemoryStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) FindAllUsers(ctx context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var users []models.User
	for _, u := range m.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

func (m *MemoryStore) SaveUser(ctx context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.ID]; !ok {
		return ErrNotFound
	}
	m.users[u.ID] = *u
	return nil
}

func (m *MemoryStore) UserCounts(ctx context.Context) (int, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	banned := 0
	for _, u := range m.users {
		if u.IsBanned {
			banned++
		}
	}
	return len(m.users), banned, nil
}

func (m *MemoryStore) SetOTP(ctx context.Context, email, otpType, code string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.otps[otpType+":"+email] = otpEntry{code: code, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (m *MemoryStore) GetOTP(ctx context.Context, email, otpType string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.otps[otpType+":"+email]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(m.otps, otpType+":"+email)
		return "", ErrNotFound
	}
	return entry.code, nil
}

func (m *MemoryStore) DeleteOTP(ctx context.Context, email, otpType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.otps, otpType+":"+email)
	return nil
}
