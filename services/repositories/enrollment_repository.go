package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/vooky-app/vooky_api/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EnrollmentRepository struct {
	BaseRepository
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// Enroll keeps an existing enrollment untouched and returns the stored row.
func (ds *EnrollmentRepository) Enroll(ctx context.Context, userID, courseID uint, at time.Time) (*model.CourseUser, error) {
	row := model.CourseUser{UserID: userID, CourseID: courseID, EnrolledAt: at, CreatedAt: at}
	err := ds.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
	if err != nil {
		return nil, err
	}
	return ds.GetEnrollment(ctx, userID, courseID)
}

// Unenroll reports false when the user was not enrolled.
func (ds *EnrollmentRepository) Unenroll(ctx context.Context, userID, courseID uint) (bool, error) {
	res := ds.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Delete(&model.CourseUser{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// GetEnrollment returns nil, nil when the user is not enrolled.
func (ds *EnrollmentRepository) GetEnrollment(ctx context.Context, userID, courseID uint) (*model.CourseUser, error) {
	var row model.CourseUser
	err := ds.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
