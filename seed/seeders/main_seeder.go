package seeders

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/vooky-app/vooky_api/model"
	"github.com/vooky-app/vooky_api/services"
)

// MainSeeder coordinates all seeding operations
type MainSeeder struct {
	db *services.DatabaseService
}

func NewMainSeeder(db *services.DatabaseService) *MainSeeder {
	return &MainSeeder{db: db}
}

type LearnerOptions struct {
	Name     string
	Email    string
	Password string
}

// SeedAll seeds the demo course and then the learner.
func (s *MainSeeder) SeedAll(ctx context.Context, opts LearnerOptions) (*model.User, error) {
	log.Info("Starting database seeding...")

	if err := s.SeedContentOnly(); err != nil {
		return nil, err
	}

	user, err := s.SeedLearnerOnly(ctx, opts)
	if err != nil {
		return nil, err
	}

	log.Info("Database seeding completed successfully")
	return user, nil
}

func (s *MainSeeder) SeedContentOnly() error {
	if _, err := NewCourseSeeder(s.db.Db()).SeedCourse(); err != nil {
		log.WithError(err).Error("Course seeding failed")
		return err
	}
	return nil
}

func (s *MainSeeder) SeedLearnerOnly(ctx context.Context, opts LearnerOptions) (*model.User, error) {
	user, err := NewLearnerSeeder(s.db.Users()).SeedLearner(ctx, opts.Name, opts.Email, opts.Password)
	if err != nil {
		log.WithError(err).Error("Learner seeding failed")
		return nil, err
	}
	return user, nil
}
