package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"github.com/vooky-app/vooky_api/dto"
	"github.com/vooky-app/vooky_api/game/progress"
	"github.com/vooky-app/vooky_api/game/quiz"
	"github.com/vooky-app/vooky_api/game/scoring"
	"github.com/vooky-app/vooky_api/model"
	"github.com/vooky-app/vooky_api/services/repositories"
	"github.com/vooky-app/vooky_api/shared"
	"gorm.io/gorm"
)

const (
	LESSON_GAME_SVC = "lesson_game_svc"

	DefaultLeaderboardLimit = 50
	MaxLeaderboardLimit     = 100

	defaultPoolCacheTTL = 10 * time.Minute

	InsufficientDataMessage = "Not enough images available to generate questions."
)

// LessonGameService serves quizzes and records lesson results.
type LessonGameService struct {
	appContext.DefaultService

	db      *DatabaseService
	redis   *RedisService
	assets  *MinIOService
	metrics *MonitoringService

	generator  *quiz.Generator
	reconciler *progress.Reconciler
	poolTTL    time.Duration
	now        func() time.Time
}

func (svc LessonGameService) Id() string {
	return LESSON_GAME_SVC
}

func (svc *LessonGameService) Configure(ctx *appContext.Context) error {
	svc.poolTTL = defaultPoolCacheTTL
	if raw := os.Getenv("POOL_CACHE_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid POOL_CACHE_TTL: %w", err)
		}
		svc.poolTTL = ttl
	}
	return svc.DefaultService.Configure(ctx)
}

func (svc *LessonGameService) Start() error {
	svc.db = svc.Service(DATABASE_SVC).(*DatabaseService)
	svc.redis = svc.Service(REDIS_SVC).(*RedisService)
	svc.assets = svc.Service(MINIO_SVC).(*MinIOService)
	svc.metrics = svc.Service(MONITORING_SVC).(*MonitoringService)

	svc.generator = quiz.NewGenerator(nil)
	svc.reconciler = progress.NewReconciler(svc.db.Progress(), svc.db.Progress(), nil)
	svc.now = time.Now
	return nil
}

// NewLessonGameService wires the service without the context; redis, assets
// and metrics may be nil.
func NewLessonGameService(db *DatabaseService, redis *RedisService, assets *MinIOService, metrics *MonitoringService, rnd quiz.Rand, now func() time.Time) *LessonGameService {
	if now == nil {
		now = time.Now
	}
	return &LessonGameService{
		db:         db,
		redis:      redis,
		assets:     assets,
		metrics:    metrics,
		generator:  quiz.NewGenerator(rnd),
		reconciler: progress.NewReconciler(db.Progress(), db.Progress(), now),
		poolTTL:    defaultPoolCacheTTL,
		now:        now,
	}
}

func (svc *LessonGameService) lesson(ctx context.Context, lessonID uint) (*model.Lesson, error) {
	lesson, err := svc.db.Content().GetLesson(ctx, lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "Lesson not found")
		}
		return nil, svc.db.HandleError(err)
	}
	return lesson, nil
}

func lessonInfo(lesson *model.Lesson) dto.LessonInfo {
	return dto.LessonInfo{
		ID:          lesson.ID,
		Title:       lesson.Title,
		ContentType: lesson.ContentType,
		Dia:         lesson.Dia,
	}
}

func courseOf(lesson *model.Lesson) uint {
	if lesson.Level == nil {
		return 0
	}
	return lesson.Level.CourseID
}

// eligiblePool returns the media a lesson may draw from, with asset URLs
// resolved per request so presigned links never outlive their expiry.
func (svc *LessonGameService) eligiblePool(ctx context.Context, lesson *model.Lesson) ([]quiz.Item, error) {
	stored, err := svc.storedPool(ctx, lesson)
	if err != nil {
		return nil, err
	}

	pool := make([]quiz.Item, len(stored))
	for i, item := range stored {
		item.FileURL = svc.resolveURL(ctx, item.FileURL)
		item.AudioFileURL = svc.resolveURL(ctx, item.AudioFileURL)
		pool[i] = item
	}
	return pool, nil
}

// storedPool holds raw asset references. Pools are cached per (level, day)
// when redis is enabled.
func (svc *LessonGameService) storedPool(ctx context.Context, lesson *model.Lesson) ([]quiz.Item, error) {
	cacheKey := fmt.Sprintf("lesson_pool:%d:%d", lesson.LevelID, lesson.Dia)

	var pool []quiz.Item
	if svc.redis.Enabled() {
		hit, err := svc.redis.GetJSON(ctx, cacheKey, &pool)
		if err != nil {
			log.WithError(err).WithField("key", cacheKey).Warn("Pool cache read failed")
		}
		if hit && err == nil {
			return pool, nil
		}
	}

	images, err := svc.db.Content().GetEligibleImages(ctx, lesson.LevelID, lesson.Dia)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	pool = make([]quiz.Item, 0, len(images))
	for _, img := range images {
		pool = append(pool, quiz.Item{
			ID:           img.ID,
			CategoryID:   img.CategoryID,
			LevelID:      img.LevelID,
			Dia:          img.Dia,
			FileURL:      img.FileURL,
			AudioFileURL: img.AudioFileURL,
			Description:  img.Description,
		})
	}

	if svc.redis.Enabled() {
		if err := svc.redis.SetJSON(ctx, cacheKey, pool, svc.poolTTL); err != nil {
			log.WithError(err).WithField("key", cacheKey).Warn("Pool cache write failed")
		}
	}
	return pool, nil
}

func (svc *LessonGameService) resolveURL(ctx context.Context, ref string) string {
	if svc.assets == nil {
		return ref
	}
	return svc.assets.ResolveURL(ctx, ref)
}

// GetQuestions builds a fresh quiz for the lesson. An underpopulated pool is
// reported through a 400 AppError carrying dto.InsufficientDataResponse.
func (svc *LessonGameService) GetQuestions(ctx context.Context, lessonID uint) (*dto.QuestionsResponse, error) {
	lesson, err := svc.lesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	pool, err := svc.eligiblePool(ctx, lesson)
	if err != nil {
		return nil, err
	}

	quizLesson := quiz.Lesson{
		ID:          lesson.ID,
		LevelID:     lesson.LevelID,
		Dia:         lesson.Dia,
		ContentType: lesson.ContentType,
	}
	questions, err := svc.generator.Generate(quizLesson, pool)

	var insufficient *quiz.InsufficientDataError
	if errors.As(err, &insufficient) {
		svc.metrics.RecordInsufficientData()
		appErr := shared.NewBadRequestError(err, InsufficientDataMessage)
		appErr.Data = &dto.InsufficientDataResponse{
			Message:         InsufficientDataMessage,
			AvailableImages: insufficient.Available,
			LevelID:         lesson.LevelID,
			LessonDia:       lesson.Dia,
		}
		return nil, appErr
	}
	if err != nil {
		return nil, err
	}

	strategy, _ := quiz.ResolveStrategy(lesson.ContentType)
	svc.metrics.RecordQuiz(strategy.String(), len(questions))

	return &dto.QuestionsResponse{
		Lesson:         lessonInfo(lesson),
		Questions:      questions,
		TotalQuestions: len(questions),
	}, nil
}

// GetQuestionPool lists the eligible media of a lesson.
func (svc *LessonGameService) GetQuestionPool(ctx context.Context, lessonID uint) (*dto.QuestionPoolResponse, error) {
	lesson, err := svc.lesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	pool, err := svc.eligiblePool(ctx, lesson)
	if err != nil {
		return nil, err
	}

	return &dto.QuestionPoolResponse{
		Lesson: lessonInfo(lesson),
		Items:  pool,
		Total:  len(pool),
	}, nil
}

// SubmitResult records an attempt. Out-of-range counts come back as
// *progress.ValidationError before anything is written.
func (svc *LessonGameService) SubmitResult(ctx context.Context, userID, lessonID uint, req dto.SubmitResultRequest) (*progress.Summary, error) {
	attempt := progress.Attempt{
		UserID:    userID,
		LessonID:  lessonID,
		GameScore: req.GameScore,
	}
	if req.CorrectAnswers != nil {
		attempt.CorrectAnswers = *req.CorrectAnswers
	}
	if req.TotalQuestions != nil {
		attempt.TotalQuestions = *req.TotalQuestions
	}
	if err := progress.Validate(attempt); err != nil {
		return nil, err
	}

	lesson, err := svc.lesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	attempt.CourseID = courseOf(lesson)

	if attempt.GameScore != nil {
		if ceiling := scoring.MaxScore(attempt.TotalQuestions); *attempt.GameScore > ceiling {
			svc.metrics.RecordScoreOverMax()
			log.WithFields(log.Fields{
				"user_id":    userID,
				"lesson_id":  lessonID,
				"game_score": *attempt.GameScore,
				"max_score":  ceiling,
			}).Warn("Reported game score above the reachable maximum")
		}
	}

	summary, err := svc.reconciler.Submit(ctx, attempt)
	if err != nil {
		var validationErr *progress.ValidationError
		if errors.As(err, &validationErr) {
			return nil, err
		}
		log.WithError(err).WithFields(log.Fields{"user_id": userID, "lesson_id": lessonID}).Error("Failed to save lesson result")
		return nil, shared.NewInternalError(err, "Failed to save lesson result")
	}

	outcome := "failed"
	if summary.Passed {
		outcome = "passed"
	}
	svc.metrics.RecordResult(outcome, len(summary.NewBadges))

	log.WithFields(log.Fields{
		"user_id":    userID,
		"lesson_id":  lessonID,
		"accuracy":   summary.CurrentAttemptAccuracy,
		"passed":     summary.Passed,
		"new_badges": len(summary.NewBadges),
	}).Info("Lesson result recorded")

	return summary, nil
}

func (svc *LessonGameService) GetProgress(ctx context.Context, userID, lessonID uint) (*progress.Snapshot, error) {
	if _, err := svc.lesson(ctx, lessonID); err != nil {
		return nil, err
	}

	snapshot, err := svc.reconciler.Progress(ctx, userID, lessonID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	return snapshot, nil
}

func (svc *LessonGameService) course(ctx context.Context, courseID uint) error {
	if _, err := svc.db.Content().GetCourse(ctx, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.NewNotFoundError(err, "Course not found")
		}
		return svc.db.HandleError(err)
	}
	return nil
}

// CourseProgress reports completed over total lessons, the percentage rounded
// to two decimals.
func (svc *LessonGameService) CourseProgress(ctx context.Context, userID, courseID uint) (*dto.CourseProgressResponse, error) {
	if err := svc.course(ctx, courseID); err != nil {
		return nil, err
	}

	total, err := svc.db.Content().CountCourseLessons(ctx, courseID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	completed, err := svc.db.Badges().CountCompleted(ctx, userID, courseID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	percent := 0.0
	if total > 0 {
		percent = math.Round(float64(completed)/float64(total)*10000) / 100
	}

	enrollment, err := svc.db.Enrollments().GetEnrollment(ctx, userID, courseID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	return &dto.CourseProgressResponse{
		CourseID:         courseID,
		Enrolled:         enrollment != nil,
		TotalLessons:     total,
		CompletedLessons: completed,
		ProgressPercent:  percent,
	}, nil
}

func toBadgeResponse(b model.Badge) dto.BadgeResponse {
	return dto.BadgeResponse{
		ID:              b.ID,
		Name:            b.Name,
		Description:     b.Description,
		Image:           b.Image,
		LessonsRequired: b.LessonsRequired,
	}
}

func (svc *LessonGameService) CourseBadges(ctx context.Context, courseID uint) ([]dto.BadgeResponse, error) {
	if err := svc.course(ctx, courseID); err != nil {
		return nil, err
	}

	badges, err := svc.db.Badges().ListCourseBadges(ctx, courseID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	out := make([]dto.BadgeResponse, 0, len(badges))
	for _, b := range badges {
		out = append(out, toBadgeResponse(b))
	}
	return out, nil
}

func (svc *LessonGameService) UserBadges(ctx context.Context, userID uint) ([]dto.UserBadgeResponse, error) {
	awards, err := svc.db.Badges().ListUserBadges(ctx, userID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	out := make([]dto.UserBadgeResponse, 0, len(awards))
	for _, award := range awards {
		resp := dto.UserBadgeResponse{BadgeID: award.BadgeID, EarnedAt: award.EarnedAt}
		if award.Badge != nil {
			resp.Badge = toBadgeResponse(*award.Badge)
		}
		out = append(out, resp)
	}
	return out, nil
}

// Leaderboard ranks learners by their summed best game scores in the course.
// Learners with equal totals share a rank.
func (svc *LessonGameService) Leaderboard(ctx context.Context, userID, courseID uint, limit int) (*dto.LeaderboardResponse, error) {
	if err := svc.course(ctx, courseID); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	if limit > MaxLeaderboardLimit {
		limit = MaxLeaderboardLimit
	}

	rows, err := svc.db.Leaderboard().CourseLeaderboard(ctx, courseID, limit)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	resp := &dto.LeaderboardResponse{
		CourseID: courseID,
		Entries:  rankEntries(rows, userID),
	}

	rank, ok, err := svc.db.Leaderboard().UserRank(ctx, courseID, userID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	if ok {
		resp.UserRank = &rank
	}
	return resp, nil
}

func rankEntries(rows []repositories.LeaderboardRow, userID uint) []dto.LeaderboardEntry {
	entries := make([]dto.LeaderboardEntry, 0, len(rows))
	for i, row := range rows {
		rank := i + 1
		if i > 0 && row.TotalScore == rows[i-1].TotalScore {
			rank = entries[i-1].Rank
		}
		entries = append(entries, dto.LeaderboardEntry{
			Rank:             rank,
			UserID:           row.UserID,
			Name:             row.Name,
			TotalScore:       row.TotalScore,
			CompletedLessons: row.CompletedLessons,
			IsCurrentUser:    row.UserID == userID,
		})
	}
	return entries
}

// Enroll is idempotent; enrolling twice keeps the first enrollment date.
func (svc *LessonGameService) Enroll(ctx context.Context, userID, courseID uint) (*dto.EnrollmentResponse, error) {
	if err := svc.course(ctx, courseID); err != nil {
		return nil, err
	}

	row, err := svc.db.Enrollments().Enroll(ctx, userID, courseID, svc.now())
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	log.WithFields(log.Fields{"user_id": userID, "course_id": courseID}).Info("User enrolled in course")
	return &dto.EnrollmentResponse{CourseID: courseID, Enrolled: true, EnrolledAt: &row.EnrolledAt}, nil
}

// Unenroll drops the enrollment only; lesson progress and badges are kept.
func (svc *LessonGameService) Unenroll(ctx context.Context, userID, courseID uint) (*dto.EnrollmentResponse, error) {
	if err := svc.course(ctx, courseID); err != nil {
		return nil, err
	}

	removed, err := svc.db.Enrollments().Unenroll(ctx, userID, courseID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	if removed {
		log.WithFields(log.Fields{"user_id": userID, "course_id": courseID}).Info("User unenrolled from course")
	}
	return &dto.EnrollmentResponse{CourseID: courseID, Enrolled: false}, nil
}
