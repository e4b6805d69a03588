package repositories

import (
	"context"
	"errors"

	"github.com/vooky-app/vooky_api/game/progress"
	"github.com/vooky-app/vooky_api/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressRepository stores best results in lesson_user. Rows with zero
// attempts are lock placeholders and read as absent.
type ProgressRepository struct {
	BaseRepository
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *ProgressRepository) Get(ctx context.Context, userID, lessonID uint) (*progress.Record, error) {
	var row model.LessonUser
	err := ds.db.WithContext(ctx).
		Where("user_id = ? AND lesson_id = ? AND attempts > 0", userID, lessonID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toRecord(row), nil
}

func (ds *ProgressRepository) Upsert(ctx context.Context, rec *progress.Record) error {
	row := model.LessonUser{
		UserID:         rec.UserID,
		LessonID:       rec.LessonID,
		Accuracy:       rec.Accuracy,
		GameScore:      rec.GameScore,
		CorrectAnswers: rec.CorrectAnswers,
		TotalQuestions: rec.TotalQuestions,
		Attempts:       rec.Attempts,
		CompletedAt:    rec.CompletedAt,
		CreatedAt:      rec.UpdatedAt,
		UpdatedAt:      rec.UpdatedAt,
	}

	return ds.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"accuracy", "game_score", "correct_answers", "total_questions",
			"attempts", "completed_at", "updated_at",
		}),
	}).Create(&row).Error
}

// Run executes fn in a transaction holding the row lock of (userID, lessonID).
// A placeholder row is inserted first so the lock exists even before the
// first submission.
func (ds *ProgressRepository) Run(ctx context.Context, userID, lessonID uint, fn func(progress.Stores) error) error {
	return ds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		placeholder := model.LessonUser{UserID: userID, LessonID: lessonID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&placeholder).Error; err != nil {
			return err
		}

		var locked model.LessonUser
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND lesson_id = ?", userID, lessonID).
			First(&locked).Error
		if err != nil {
			return err
		}

		return fn(progress.Stores{
			Progress: NewProgressRepository(tx),
			Badges:   NewBadgeRepository(tx),
		})
	})
}

func toRecord(row model.LessonUser) *progress.Record {
	return &progress.Record{
		UserID:         row.UserID,
		LessonID:       row.LessonID,
		Accuracy:       row.Accuracy,
		GameScore:      row.GameScore,
		CorrectAnswers: row.CorrectAnswers,
		TotalQuestions: row.TotalQuestions,
		Attempts:       row.Attempts,
		CompletedAt:    row.CompletedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}
