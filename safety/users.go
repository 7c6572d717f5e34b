package safety

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/models"
	"github.com/Mukkala-Praneeth/student-accommodation-safety-platform/store"
)

// ListUsers returns every user with the credential hash stripped.
func (s *Service) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Password = ""
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// ToggleBan flips a user's banned flag. Admins cannot ban themselves.
func (s *Service) ToggleBan(ctx context.Context, admin *models.User, userID primitive.ObjectID) (*models.User, error) {
	if userID == admin.ID {
		return nil, Forbiddenf("you cannot ban your own account")
	}
	user, err := s.users.FindByID(ctx, userID)
	if err == store.ErrNotFound {
		return nil, NotFoundf("user not found")
	}
	if err != nil {
		return nil, err
	}
	user.IsBanned = !user.IsBanned
	user.UpdatedAt = time.Now()
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}
