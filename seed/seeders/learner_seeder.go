package seeders

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/vooky-app/vooky_api/model"
	"github.com/vooky-app/vooky_api/services/repositories"
)

// LearnerSeeder creates the demo learner used to try the API.
type LearnerSeeder struct {
	users *repositories.UserRepository
}

func NewLearnerSeeder(users *repositories.UserRepository) *LearnerSeeder {
	return &LearnerSeeder{users: users}
}

// SeedLearner returns the existing account when the email is taken. An empty
// email gets a random one.
func (s *LearnerSeeder) SeedLearner(ctx context.Context, name, email, password string) (*model.User, error) {
	if email == "" {
		email = fmt.Sprintf("learner+%s@vooky.dev", uuid.NewString()[:8])
	}

	user, err := s.users.EnsureUser(ctx, name, email, password)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"user_id": user.ID, "email": user.Email}).Info("Demo learner ready")
	return user, nil
}
