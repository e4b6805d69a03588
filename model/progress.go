package model

import "time"

// LessonUser is the best result of a user for a lesson. One row per pair.
type LessonUser struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	UserID         uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_lesson_user_pair"`
	LessonID       uint       `json:"lesson_id" gorm:"not null;uniqueIndex:idx_lesson_user_pair"`
	Accuracy       int        `json:"accuracy" gorm:"not null;default:0"`
	GameScore      int        `json:"game_score" gorm:"not null;default:0"`
	CorrectAnswers int        `json:"correct_answers" gorm:"not null;default:0"`
	TotalQuestions int        `json:"total_questions" gorm:"not null;default:0"`
	Attempts       int        `json:"attempts" gorm:"not null;default:0"`
	CompletedAt    *time.Time `json:"completed_at" gorm:"index"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	Lesson *Lesson `json:"lesson,omitempty" gorm:"foreignKey:LessonID"`
}

func (LessonUser) TableName() string {
	return "lesson_user"
}

type Badge struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	CourseID        uint      `json:"course_id" gorm:"not null;index"`
	Name            string    `json:"name" gorm:"not null"`
	Description     string    `json:"description" gorm:"type:text"`
	Image           string    `json:"image"`
	LessonsRequired int       `json:"lessons_required" gorm:"not null;default:1"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// BadgeUser is an award; the unique pair makes awarding idempotent.
type BadgeUser struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_badge_user_pair"`
	BadgeID   uint      `json:"badge_id" gorm:"not null;uniqueIndex:idx_badge_user_pair"`
	EarnedAt  time.Time `json:"earned_at" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`

	Badge *Badge `json:"badge,omitempty" gorm:"foreignKey:BadgeID"`
}

func (BadgeUser) TableName() string {
	return "badge_user"
}

// CourseUser enrolls a user in a course. One row per pair.
type CourseUser struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_course_user_pair"`
	CourseID   uint      `json:"course_id" gorm:"not null;uniqueIndex:idx_course_user_pair"`
	EnrolledAt time.Time `json:"enrolled_at" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
}

func (CourseUser) TableName() string {
	return "course_user"
}
