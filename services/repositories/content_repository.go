package repositories

import (
	"context"

	"github.com/vooky-app/vooky_api/model"
	"gorm.io/gorm"
)

type ContentRepository struct {
	BaseRepository
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// GetLesson loads the lesson with its level, which carries the course id.
func (ds *ContentRepository) GetLesson(ctx context.Context, lessonID uint) (*model.Lesson, error) {
	var lesson model.Lesson
	if err := ds.db.WithContext(ctx).Preload("Level").Where("id = ?", lessonID).First(&lesson).Error; err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (ds *ContentRepository) GetCourse(ctx context.Context, courseID uint) (*model.Course, error) {
	var course model.Course
	if err := ds.db.WithContext(ctx).Where("id = ?", courseID).First(&course).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

// GetEligibleImages returns every image of earlier levels plus the images of
// levelID up to dia, ordered by id.
func (ds *ContentRepository) GetEligibleImages(ctx context.Context, levelID uint, dia int) ([]model.Image, error) {
	var images []model.Image
	err := ds.db.WithContext(ctx).
		Where("level_id < ?", levelID).
		Or("level_id = ? AND dia <= ?", levelID, dia).
		Order("id ASC").
		Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}

func (ds *ContentRepository) CountCourseLessons(ctx context.Context, courseID uint) (int64, error) {
	var count int64
	err := ds.db.WithContext(ctx).Model(&model.Lesson{}).
		Joins("JOIN levels ON levels.id = lessons.level_id").
		Where("levels.course_id = ?", courseID).
		Count(&count).Error
	return count, err
}
