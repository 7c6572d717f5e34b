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

func validateAccommodation(req *models.AccommodationRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Address = strings.TrimSpace(req.Address)
	req.City = strings.TrimSpace(req.City)
	req.Description = strings.TrimSpace(req.Description)
	req.ContactPhone = strings.TrimSpace(req.ContactPhone)
	switch {
	case req.Name == "":
		return Validationf("name is required")
	case utf8.RuneCountInString(req.Name) > maxAccommodationNameLen:
		return Validationf("name must be at most %d characters", maxAccommodationNameLen)
	case req.Address == "":
		return Validationf("address is required")
	case req.City == "":
		return Validationf("city is required")
	case req.Description == "":
		return Validationf("description is required")
	case req.ContactPhone == "":
		return Validationf("contact phone is required")
	case req.TotalRooms <= 0:
		return Validationf("total rooms must be positive")
	case req.PricePerMonth <= 0:
		return Validationf("price per month must be positive")
	case req.OccupiedRooms < 0 || req.OccupiedRooms > req.TotalRooms:
		return Validationf("occupied rooms must be between 0 and total rooms")
	}
	return nil
}

func (s *Service) CreateAccommodation(ctx context.Context, owner *models.User, req models.AccommodationRequest) (*models.Accommodation, error) {
	if err := validateAccommodation(&req); err != nil {
		return nil, err
	}
	accommodation := &models.Accommodation{
		Name:          req.Name,
		Address:       req.Address,
		City:          req.City,
		Description:   req.Description,
		Amenities:     req.Amenities,
		TotalRooms:    req.TotalRooms,
		OccupiedRooms: req.OccupiedRooms,
		PricePerMonth: req.PricePerMonth,
		ContactPhone:  req.ContactPhone,
		Images:        req.Images,
		Owner:         owner.ID,
		CreatedAt:     time.Now(),
	}
	// Reports may predate the listing; pick up their weight immediately.
	existing, err := s.reports.Find(ctx, store.ReportFilter{AccommodationNames: []string{req.Name}})
	if err == nil {
		accommodation.RiskScore = RiskScore(existing)
	}
	if err := s.accommodations.Insert(ctx, accommodation); err != nil {
		return nil, err
	}
	decorate(accommodation)
	return accommodation, nil
}

func (s *Service) GetAccommodation(ctx context.Context, id primitive.ObjectID) (*models.Accommodation, error) {
	accommodation, err := s.accommodations.FindByID(ctx, id)
	if err == store.ErrNotFound {
		return nil, NotFoundf("accommodation not found")
	}
	if err != nil {
		return nil, err
	}
	decorate(accommodation)
	return accommodation, nil
}

func (s *Service) ListAccommodations(ctx context.Context, f store.AccommodationFilter) ([]models.Accommodation, error) {
	accommodations, err := s.accommodations.Find(ctx, f)
	if err != nil {
		return nil, err
	}
	for i := range accommodations {
		decorate(&accommodations[i])
	}
	if accommodations == nil {
		accommodations = []models.Accommodation{}
	}
	return accommodations, nil
}

func (s *Service) UpdateAccommodation(ctx context.Context, owner *models.User, id primitive.ObjectID, req models.AccommodationRequest) (*models.Accommodation, error) {
	accommodation, err := s.ownedAccommodation(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if err := validateAccommodation(&req); err != nil {
		return nil, err
	}
	accommodation.Name = req.Name
	accommodation.Address = req.Address
	accommodation.City = req.City
	accommodation.Description = req.Description
	accommodation.Amenities = req.Amenities
	accommodation.TotalRooms = req.TotalRooms
	accommodation.OccupiedRooms = req.OccupiedRooms
	accommodation.PricePerMonth = req.PricePerMonth
	accommodation.ContactPhone = req.ContactPhone
	accommodation.Images = req.Images
	if err := s.accommodations.Save(ctx, accommodation); err != nil {
		return nil, err
	}
	s.recomputeRisk(ctx, accommodation.Name)
	return s.GetAccommodation(ctx, id)
}

// DeleteAccommodation is a hard delete with no cascade; reports keep
// their name string and simply stop matching.
func (s *Service) DeleteAccommodation(ctx context.Context, owner *models.User, id primitive.ObjectID) error {
	if _, err := s.ownedAccommodation(ctx, owner, id); err != nil {
		return err
	}
	return s.accommodations.Delete(ctx, id)
}

// UpdateOccupancy enforces 0 <= occupiedRooms <= totalRooms; on
// violation the stored value is left unchanged.
func (s *Service) UpdateOccupancy(ctx context.Context, owner *models.User, id primitive.ObjectID, occupiedRooms int) (*models.Accommodation, error) {
	accommodation, err := s.ownedAccommodation(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if occupiedRooms < 0 || occupiedRooms > accommodation.TotalRooms {
		return nil, Validationf("occupied rooms must be between 0 and %d", accommodation.TotalRooms)
	}
	accommodation.OccupiedRooms = occupiedRooms
	if err := s.accommodations.Save(ctx, accommodation); err != nil {
		return nil, err
	}
	decorate(accommodation)
	return accommodation, nil
}

func (s *Service) ownedAccommodation(ctx context.Context, owner *models.User, id primitive.ObjectID) (*models.Accommodation, error) {
	accommodation, err := s.accommodations.FindByID(ctx, id)
	if err == store.ErrNotFound {
		return nil, NotFoundf("accommodation not found")
	}
	if err != nil {
		return nil, err
	}
	if accommodation.Owner != owner.ID {
		return nil, Forbiddenf("you do not own this accommodation")
	}
	return accommodation, nil
}

func decorate(a *models.Accommodation) {
	a.SafetyLevel = SafetyLevel(a.RiskScore)
}
