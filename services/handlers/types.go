package handlers

import (
	"context"

	"github.com/vooky-app/vooky_api/dto"
	"github.com/vooky-app/vooky_api/game/progress"
)

type LessonGameServiceInterface interface {
	GetQuestions(ctx context.Context, lessonID uint) (*dto.QuestionsResponse, error)
	GetQuestionPool(ctx context.Context, lessonID uint) (*dto.QuestionPoolResponse, error)
	SubmitResult(ctx context.Context, userID, lessonID uint, req dto.SubmitResultRequest) (*progress.Summary, error)
	GetProgress(ctx context.Context, userID, lessonID uint) (*progress.Snapshot, error)
}

type CourseServiceInterface interface {
	CourseProgress(ctx context.Context, userID, courseID uint) (*dto.CourseProgressResponse, error)
	CourseBadges(ctx context.Context, courseID uint) ([]dto.BadgeResponse, error)
	UserBadges(ctx context.Context, userID uint) ([]dto.UserBadgeResponse, error)
	Leaderboard(ctx context.Context, userID, courseID uint, limit int) (*dto.LeaderboardResponse, error)
	Enroll(ctx context.Context, userID, courseID uint) (*dto.EnrollmentResponse, error)
	Unenroll(ctx context.Context, userID, courseID uint) (*dto.EnrollmentResponse, error)
}
