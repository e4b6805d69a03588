package progress

import (
	"context"
	"fmt"
	"time"
)

const (
	PassThreshold = 75
	MaxQuestions  = 20
	MinQuestions  = 1

	FieldCorrect   = "correct_answers"
	FieldTotal     = "total_questions"
	FieldGameScore = "game_score"
)

// ValidationError names the submission field that is out of range.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Record is the best-known result of a user for a lesson.
type Record struct {
	UserID         uint
	LessonID       uint
	Accuracy       int
	GameScore      int
	CorrectAnswers int
	TotalQuestions int
	Attempts       int
	CompletedAt    *time.Time
	UpdatedAt      time.Time
}

func (r *Record) Completed() bool {
	return r != nil && r.CompletedAt != nil
}

type Badge struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Image           string `json:"image"`
	LessonsRequired int    `json:"lessons_required"`
}

type ProgressStore interface {
	// Get returns nil, nil when the user has no record for the lesson.
	Get(ctx context.Context, userID, lessonID uint) (*Record, error)
	Upsert(ctx context.Context, rec *Record) error
}

type BadgeStore interface {
	CountCompleted(ctx context.Context, userID, courseID uint) (int64, error)
	BadgesForCourse(ctx context.Context, courseID uint, maxThreshold int64) ([]Badge, error)
	HasAward(ctx context.Context, userID, badgeID uint) (bool, error)
	// CreateAward reports false when the award already existed.
	CreateAward(ctx context.Context, userID, badgeID uint, at time.Time) (bool, error)
}

// Stores are bound to a single unit of work.
type Stores struct {
	Progress ProgressStore
	Badges   BadgeStore
}

// UnitOfWork runs fn atomically with the (user, lesson) record locked against
// concurrent submissions. Any error from fn rolls everything back.
type UnitOfWork interface {
	Run(ctx context.Context, userID, lessonID uint, fn func(Stores) error) error
}

// Reader serves progress lookups outside of a submission.
type Reader interface {
	Get(ctx context.Context, userID, lessonID uint) (*Record, error)
}

type Attempt struct {
	UserID         uint
	LessonID       uint
	CourseID       uint
	CorrectAnswers int
	TotalQuestions int
	GameScore      *int
}

type Summary struct {
	Message                string     `json:"message"`
	Accuracy               int        `json:"accuracy"`
	GameScore              int        `json:"game_score"`
	CurrentAttemptAccuracy int        `json:"current_attempt_accuracy"`
	CurrentAttemptScore    int        `json:"current_attempt_score"`
	CorrectAnswers         int        `json:"correct_answers"`
	TotalQuestions         int        `json:"total_questions"`
	Passed                 bool       `json:"passed"`
	Improved               bool       `json:"improved"`
	WasAlreadyCompleted    bool       `json:"was_already_completed"`
	NewBadges              []Badge    `json:"new_badges"`
	CompletedAt            *time.Time `json:"-"`
}

// Snapshot is the public view of a record; every pointer is nil when the user
// never submitted the lesson.
type Snapshot struct {
	Completed      bool       `json:"completed"`
	Accuracy       *int       `json:"accuracy"`
	GameScore      *int       `json:"game_score"`
	CorrectAnswers *int       `json:"correct_answers"`
	TotalQuestions *int       `json:"total_questions"`
	CompletedAt    *time.Time `json:"completed_at"`
}
