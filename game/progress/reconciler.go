package progress

import (
	"context"
	"fmt"
	"time"
)

const (
	MessageFirstPass     = "Lesson passed for the first time!"
	MessageNewBest       = "New best score! Lesson was already passed."
	MessageAlreadyPassed = "Lesson already passed. Your previous score is better."
	MessageStillPassed   = "Lesson is still passed. This attempt did not reach 75%."
	MessageNotPassed     = "Lesson not passed - you need 75% or more."
)

type Reconciler struct {
	uow    UnitOfWork
	reader Reader
	now    func() time.Time
}

// NewReconciler wires the reconciler; now defaults to time.Now.
func NewReconciler(uow UnitOfWork, reader Reader, now func() time.Time) *Reconciler {
	if now == nil {
		now = time.Now
	}
	return &Reconciler{uow: uow, reader: reader, now: now}
}

// Validate checks 0 <= correct <= total <= 20, total >= 1 and a non-negative score.
func Validate(a Attempt) error {
	switch {
	case a.TotalQuestions < MinQuestions || a.TotalQuestions > MaxQuestions:
		return &ValidationError{Field: FieldTotal, Message: fmt.Sprintf("must be between %d and %d", MinQuestions, MaxQuestions)}
	case a.CorrectAnswers < 0 || a.CorrectAnswers > MaxQuestions:
		return &ValidationError{Field: FieldCorrect, Message: fmt.Sprintf("must be between 0 and %d", MaxQuestions)}
	case a.CorrectAnswers > a.TotalQuestions:
		return &ValidationError{Field: FieldCorrect, Message: "cannot exceed total_questions"}
	case a.GameScore != nil && *a.GameScore < 0:
		return &ValidationError{Field: FieldGameScore, Message: "must be zero or greater"}
	}
	return nil
}

// AccuracyOf is 100*correct/total rounded half up.
func AccuracyOf(correct, total int) int {
	return (200*correct + total) / (2 * total)
}

// Submit merges an attempt into the user's best record for the lesson and
// awards course badges on the first pass.
func (r *Reconciler) Submit(ctx context.Context, a Attempt) (*Summary, error) {
	if err := Validate(a); err != nil {
		return nil, err
	}

	accuracy := AccuracyOf(a.CorrectAnswers, a.TotalQuestions)
	score := accuracy
	if a.GameScore != nil {
		score = *a.GameScore
	}
	passedNow := accuracy >= PassThreshold

	incoming := Record{
		UserID:         a.UserID,
		LessonID:       a.LessonID,
		Accuracy:       accuracy,
		GameScore:      score,
		CorrectAnswers: a.CorrectAnswers,
		TotalQuestions: a.TotalQuestions,
	}

	var summary *Summary
	err := r.uow.Run(ctx, a.UserID, a.LessonID, func(s Stores) error {
		existing, err := s.Progress.Get(ctx, a.UserID, a.LessonID)
		if err != nil {
			return fmt.Errorf("load progress: %w", err)
		}

		now := r.now()
		merged := Merge(existing, incoming, passedNow, now)
		if err := s.Progress.Upsert(ctx, &merged); err != nil {
			return fmt.Errorf("save progress: %w", err)
		}

		wasCompleted := existing.Completed()
		badges := []Badge{}
		if passedNow && !wasCompleted {
			if badges, err = AwardBadges(ctx, s.Badges, a.UserID, a.CourseID, now); err != nil {
				return fmt.Errorf("award badges: %w", err)
			}
		}

		improved := existing != nil && accuracy > existing.Accuracy
		summary = &Summary{
			Message:                statusMessage(passedNow, wasCompleted, improved),
			Accuracy:               merged.Accuracy,
			GameScore:              merged.GameScore,
			CurrentAttemptAccuracy: accuracy,
			CurrentAttemptScore:    score,
			CorrectAnswers:         merged.CorrectAnswers,
			TotalQuestions:         merged.TotalQuestions,
			Passed:                 merged.CompletedAt != nil,
			Improved:               improved,
			WasAlreadyCompleted:    wasCompleted,
			NewBadges:              badges,
			CompletedAt:            merged.CompletedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// Merge picks the winning attempt per metric. The accuracy winner carries its
// own correct/total counts; ties go to the incoming attempt. Completion is
// never cleared or moved once set.
func Merge(existing *Record, incoming Record, passedNow bool, now time.Time) Record {
	merged := incoming
	merged.UpdatedAt = now
	merged.Attempts = 1

	if existing == nil {
		if passedNow {
			merged.CompletedAt = &now
		}
		return merged
	}

	bestAccuracy := incoming
	if existing.Accuracy > incoming.Accuracy {
		bestAccuracy = *existing
	}
	merged.Accuracy = bestAccuracy.Accuracy
	merged.CorrectAnswers = bestAccuracy.CorrectAnswers
	merged.TotalQuestions = bestAccuracy.TotalQuestions

	if existing.GameScore > incoming.GameScore {
		merged.GameScore = existing.GameScore
	}

	merged.Attempts = existing.Attempts + 1

	switch {
	case existing.CompletedAt != nil:
		merged.CompletedAt = existing.CompletedAt
	case passedNow:
		merged.CompletedAt = &now
	default:
		merged.CompletedAt = nil
	}
	return merged
}

// AwardBadges grants every course badge whose threshold the user now meets
// and returns only the awards created by this call.
func AwardBadges(ctx context.Context, store BadgeStore, userID, courseID uint, at time.Time) ([]Badge, error) {
	completed, err := store.CountCompleted(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	candidates, err := store.BadgesForCourse(ctx, courseID, completed)
	if err != nil {
		return nil, err
	}

	awarded := []Badge{}
	for _, badge := range candidates {
		held, err := store.HasAward(ctx, userID, badge.ID)
		if err != nil {
			return nil, err
		}
		if held {
			continue
		}

		created, err := store.CreateAward(ctx, userID, badge.ID, at)
		if err != nil {
			return nil, err
		}
		if created {
			awarded = append(awarded, badge)
		}
	}
	return awarded, nil
}

// Progress returns the stored best result or an empty snapshot.
func (r *Reconciler) Progress(ctx context.Context, userID, lessonID uint) (*Snapshot, error) {
	rec, err := r.reader.Get(ctx, userID, lessonID)
	if err != nil {
		return nil, err
	}
	return SnapshotOf(rec), nil
}

func SnapshotOf(rec *Record) *Snapshot {
	if rec == nil {
		return &Snapshot{}
	}
	accuracy, score, correct, total := rec.Accuracy, rec.GameScore, rec.CorrectAnswers, rec.TotalQuestions
	return &Snapshot{
		Completed:      rec.CompletedAt != nil,
		Accuracy:       &accuracy,
		GameScore:      &score,
		CorrectAnswers: &correct,
		TotalQuestions: &total,
		CompletedAt:    rec.CompletedAt,
	}
}

func statusMessage(passedNow, wasCompleted, improved bool) string {
	switch {
	case passedNow && !wasCompleted:
		return MessageFirstPass
	case passedNow && improved:
		return MessageNewBest
	case passedNow:
		return MessageAlreadyPassed
	case wasCompleted:
		return MessageStillPassed
	default:
		return MessageNotPassed
	}
}
