package repositories

import (
	"context"

	"github.com/vooky-app/vooky_api/model"
	"gorm.io/gorm"
)

// LeaderboardRow is a learner's standing in a course: the sum of best game
// scores over the course's lessons.
type LeaderboardRow struct {
	UserID           uint
	Name             string
	TotalScore       int64
	CompletedLessons int64
}

type LeaderboardRepository struct {
	BaseRepository
}

func NewLeaderboardRepository(db *gorm.DB) *LeaderboardRepository {
	return &LeaderboardRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *LeaderboardRepository) courseScores(ctx context.Context, courseID uint) *gorm.DB {
	return ds.db.WithContext(ctx).Model(&model.LessonUser{}).
		Joins("JOIN lessons ON lessons.id = lesson_user.lesson_id").
		Joins("JOIN levels ON levels.id = lessons.level_id").
		Where("levels.course_id = ? AND lesson_user.attempts > 0", courseID)
}

func (ds *LeaderboardRepository) CourseLeaderboard(ctx context.Context, courseID uint, limit int) ([]LeaderboardRow, error) {
	var rows []LeaderboardRow
	err := ds.courseScores(ctx, courseID).
		Select("lesson_user.user_id AS user_id, users.name AS name, " +
			"SUM(lesson_user.game_score) AS total_score, COUNT(lesson_user.completed_at) AS completed_lessons").
		Joins("LEFT JOIN users ON users.id = lesson_user.user_id").
		Group("lesson_user.user_id, users.name").
		Order("total_score DESC, lesson_user.user_id ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// UserRank is 1 + the number of learners with a strictly higher total; ok is
// false when the user has no attempts in the course.
func (ds *LeaderboardRepository) UserRank(ctx context.Context, courseID, userID uint) (rank int, ok bool, err error) {
	var mine struct {
		Played int64
		Total  int64
	}
	err = ds.courseScores(ctx, courseID).
		Where("lesson_user.user_id = ?", userID).
		Select("COUNT(*) AS played, COALESCE(SUM(lesson_user.game_score), 0) AS total").
		Scan(&mine).Error
	if err != nil || mine.Played == 0 {
		return 0, false, err
	}

	ahead := ds.courseScores(ctx, courseID).
		Select("lesson_user.user_id").
		Group("lesson_user.user_id").
		Having("SUM(lesson_user.game_score) > ?", mine.Total)

	var count int64
	if err = ds.db.WithContext(ctx).Table("(?) AS ahead", ahead).Count(&count).Error; err != nil {
		return 0, false, err
	}
	return int(count) + 1, true, nil
}
