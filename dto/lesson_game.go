package dto

import (
	"time"

	"github.com/vooky-app/vooky_api/game/quiz"
)

type LessonInfo struct {
	ID          uint   `json:"id" example:"12"`
	Title       string `json:"title" example:"Animales - día 3"`
	ContentType string `json:"content_type" example:"mixto"`
	Dia         int    `json:"dia" example:"3"`
}

type QuestionsResponse struct {
	Lesson         LessonInfo      `json:"lesson"`
	Questions      []quiz.Question `json:"questions"`
	TotalQuestions int             `json:"total_questions" example:"20"`
}

type InsufficientDataResponse struct {
	Message         string `json:"message" example:"Not enough images available to generate questions."`
	AvailableImages int    `json:"available_images" example:"1"`
	LevelID         uint   `json:"level_id" example:"2"`
	LessonDia       int    `json:"lesson_dia" example:"1"`
}

type QuestionPoolResponse struct {
	Lesson LessonInfo  `json:"lesson"`
	Items  []quiz.Item `json:"items"`
	Total  int         `json:"total"`
}

type SubmitResultRequest struct {
	CorrectAnswers *int `json:"correct_answers" validate:"required,min=0,max=20" example:"15"`
	TotalQuestions *int `json:"total_questions" validate:"required,min=1,max=20" example:"20"`
	GameScore      *int `json:"game_score,omitempty" validate:"omitempty,min=0" example:"312"`
}

func (r SubmitResultRequest) Validate() error {
	return GetValidator().Struct(r)
}

type BadgeResponse struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Image           string `json:"image"`
	LessonsRequired int    `json:"lessons_required"`
}

type UserBadgeResponse struct {
	BadgeID  uint          `json:"badge_id"`
	EarnedAt time.Time     `json:"earned_at"`
	Badge    BadgeResponse `json:"badge"`
}

type CourseProgressResponse struct {
	CourseID         uint    `json:"course_id"`
	Enrolled         bool    `json:"enrolled"`
	TotalLessons     int64   `json:"total_lessons"`
	CompletedLessons int64   `json:"completed_lessons"`
	ProgressPercent  float64 `json:"progress_percent"`
}

type EnrollmentResponse struct {
	CourseID   uint       `json:"course_id"`
	Enrolled   bool       `json:"enrolled"`
	EnrolledAt *time.Time `json:"enrolled_at"`
}

type LeaderboardEntry struct {
	Rank             int    `json:"rank"`
	UserID           uint   `json:"user_id"`
	Name             string `json:"name"`
	TotalScore       int64  `json:"total_score"`
	CompletedLessons int64  `json:"completed_lessons"`
	IsCurrentUser    bool   `json:"is_current_user"`
}

type LeaderboardResponse struct {
	CourseID uint               `json:"course_id"`
	Entries  []LeaderboardEntry `json:"entries"`
	UserRank *int               `json:"user_rank"`
}
