package repositories

import (
	"context"
	"time"

	"github.com/vooky-app/vooky_api/game/progress"
	"github.com/vooky-app/vooky_api/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BadgeRepository struct {
	BaseRepository
}

func NewBadgeRepository(db *gorm.DB) *BadgeRepository {
	return &BadgeRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// CountCompleted counts the user's completed lessons across the course's levels.
func (ds *BadgeRepository) CountCompleted(ctx context.Context, userID, courseID uint) (int64, error) {
	var count int64
	err := ds.db.WithContext(ctx).Model(&model.LessonUser{}).
		Joins("JOIN lessons ON lessons.id = lesson_user.lesson_id").
		Joins("JOIN levels ON levels.id = lessons.level_id").
		Where("lesson_user.user_id = ? AND levels.course_id = ? AND lesson_user.completed_at IS NOT NULL", userID, courseID).
		Count(&count).Error
	return count, err
}

func (ds *BadgeRepository) BadgesForCourse(ctx context.Context, courseID uint, maxThreshold int64) ([]progress.Badge, error) {
	var badges []model.Badge
	err := ds.db.WithContext(ctx).
		Where("course_id = ? AND lessons_required <= ?", courseID, maxThreshold).
		Order("lessons_required ASC, id ASC").
		Find(&badges).Error
	if err != nil {
		return nil, err
	}

	out := make([]progress.Badge, 0, len(badges))
	for _, b := range badges {
		out = append(out, ToProgressBadge(b))
	}
	return out, nil
}

func (ds *BadgeRepository) HasAward(ctx context.Context, userID, badgeID uint) (bool, error) {
	var count int64
	err := ds.db.WithContext(ctx).Model(&model.BadgeUser{}).
		Where("user_id = ? AND badge_id = ?", userID, badgeID).
		Count(&count).Error
	return count > 0, err
}

// CreateAward inserts or ignores; the result is false when the pair existed.
func (ds *BadgeRepository) CreateAward(ctx context.Context, userID, badgeID uint, at time.Time) (bool, error) {
	award := model.BadgeUser{UserID: userID, BadgeID: badgeID, EarnedAt: at, CreatedAt: at}
	res := ds.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&award)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (ds *BadgeRepository) ListCourseBadges(ctx context.Context, courseID uint) ([]model.Badge, error) {
	var badges []model.Badge
	err := ds.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("lessons_required ASC, id ASC").
		Find(&badges).Error
	return badges, err
}

func (ds *BadgeRepository) ListUserBadges(ctx context.Context, userID uint) ([]model.BadgeUser, error) {
	var awards []model.BadgeUser
	err := ds.db.WithContext(ctx).
		Preload("Badge").
		Where("user_id = ?", userID).
		Order("earned_at ASC, id ASC").
		Find(&awards).Error
	return awards, err
}

func ToProgressBadge(b model.Badge) progress.Badge {
	return progress.Badge{
		ID:              b.ID,
		Name:            b.Name,
		Description:     b.Description,
		Image:           b.Image,
		LessonsRequired: b.LessonsRequired,
	}
}
