package repositories

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/vooky-app/vooky_api/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const passwordCost = 12

type UserRepository struct {
	BaseRepository
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *UserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := ds.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// EnsureUser returns the user with email, creating it with a bcrypt hash of
// password when missing.
func (ds *UserRepository) EnsureUser(ctx context.Context, name, email, password string) (*model.User, error) {
	existing, err := ds.GetUserByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:      name,
		Email:     email,
		Password:  string(hashedPassword),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := ds.db.WithContext(ctx).Create(user).Error; err != nil {
		log.WithField("email", email).WithError(err).Error("Failed to create user")
		return nil, err
	}
	return user, nil
}

func CheckPassword(user *model.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil
}
