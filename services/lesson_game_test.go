package services

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/http"
	"testing"
	"time"

	"github.com/vooky-app/vooky_api/dto"
	"github.com/vooky-app/vooky_api/game/progress"
	"github.com/vooky-app/vooky_api/game/quiz"
	"github.com/vooky-app/vooky_api/model"
	"github.com/vooky-app/vooky_api/services/repositories"
	"github.com/vooky-app/vooky_api/shared"
)

type gameFixture struct {
	svc     *LessonGameService
	course  model.Course
	lessons map[string]model.Lesson
	users   []model.User
}

func intPtr(v int) *int { return &v }

func newGameFixture(t *testing.T) gameFixture {
	t.Helper()
	ds := newTestDatabase(t)
	db := ds.Db()

	f := gameFixture{course: model.Course{Title: "Colors and animals"}, lessons: map[string]model.Lesson{}}
	mustCreate(t, db.Create(&f.course).Error)

	level := model.Level{CourseID: f.course.ID, Name: "Level 1", Order: 1}
	mustCreate(t, db.Create(&level).Error)

	categories := []model.Category{{CourseID: f.course.ID, Name: "Colors"}, {CourseID: f.course.ID, Name: "Animals"}}
	mustCreate(t, db.Create(&categories).Error)

	images := []model.Image{
		{CategoryID: categories[0].ID, LevelID: level.ID, Dia: 1, FileURL: "https://cdn.test/red.png", AudioFileURL: "https://cdn.test/red.mp3"},
		{CategoryID: categories[0].ID, LevelID: level.ID, Dia: 2, FileURL: "https://cdn.test/blue.png", AudioFileURL: "https://cdn.test/blue.mp3"},
		{CategoryID: categories[1].ID, LevelID: level.ID, Dia: 2, FileURL: "https://cdn.test/cat.png", AudioFileURL: "https://cdn.test/cat.mp3"},
		{CategoryID: categories[1].ID, LevelID: level.ID, Dia: 2, FileURL: "https://cdn.test/dog.png", AudioFileURL: "https://cdn.test/dog.mp3"},
	}
	mustCreate(t, db.Create(&images).Error)

	for _, l := range []model.Lesson{
		{LevelID: level.ID, Title: "Day 1", ContentType: "combinadas", Dia: 1},
		{LevelID: level.ID, Title: "Day 2", ContentType: "mixto", Dia: 2},
		{LevelID: level.ID, Title: "Day 2 review", ContentType: "misma categoría", Dia: 2},
	} {
		mustCreate(t, db.Create(&l).Error)
		f.lessons[l.Title] = l
	}

	badges := []model.Badge{
		{CourseID: f.course.ID, Name: "First steps", LessonsRequired: 1},
		{CourseID: f.course.ID, Name: "Finisher", LessonsRequired: 3},
	}
	mustCreate(t, db.Create(&badges).Error)

	f.users = []model.User{{Name: "Ana", Email: "ana@vooky.test"}, {Name: "Luis", Email: "luis@vooky.test"}}
	mustCreate(t, db.Create(&f.users).Error)

	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	f.svc = NewLessonGameService(ds, nil, nil, nil, rand.New(rand.NewPCG(7, 11)), func() time.Time { return now })
	return f
}

func mustCreate(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

func statusOf(err error) int {
	if appErr, ok := shared.GetAppError(err); ok {
		return appErr.StatusCode
	}
	return 0
}

func TestGetQuestions(t *testing.T) {
	f := newGameFixture(t)
	ctx := context.Background()
	lesson := f.lessons["Day 2"]

	resp, err := f.svc.GetQuestions(ctx, lesson.ID)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Lesson.ID != lesson.ID || resp.Lesson.ContentType != "mixto" || resp.Lesson.Dia != 2 {
		t.Errorf("unexpected lesson info %+v", resp.Lesson)
	}
	if len(resp.Questions) == 0 || resp.TotalQuestions != len(resp.Questions) {
		t.Fatalf("expected questions with a matching total, got %d/%d", len(resp.Questions), resp.TotalQuestions)
	}
	for i, q := range resp.Questions {
		if q.QuestionNumber != i+1 {
			t.Errorf("question %d numbered %d", i, q.QuestionNumber)
		}
		if q.Options.Left.ID == q.Options.Right.ID {
			t.Errorf("question %d offers the same item twice", q.QuestionNumber)
		}
		if q.AudioURL == "" {
			t.Errorf("question %d has no audio", q.QuestionNumber)
		}
	}
}

func TestGetQuestionsInsufficientData(t *testing.T) {
	f := newGameFixture(t)
	lesson := f.lessons["Day 1"]

	_, err := f.svc.GetQuestions(context.Background(), lesson.ID)
	appErr, ok := shared.GetAppError(err)
	if !ok || appErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected a 400 AppError, got %v", err)
	}

	body, ok := appErr.Data.(*dto.InsufficientDataResponse)
	if !ok {
		t.Fatalf("unexpected data %T", appErr.Data)
	}
	if body.AvailableImages != 1 || body.LevelID != lesson.LevelID || body.LessonDia != 1 {
		t.Errorf("unexpected body %+v", body)
	}
	if body.Message != InsufficientDataMessage {
		t.Errorf("unexpected message %q", body.Message)
	}
}

func TestUnknownLesson(t *testing.T) {
	f := newGameFixture(t)
	ctx := context.Background()

	if _, err := f.svc.GetQuestions(ctx, 999); statusOf(err) != http.StatusNotFound {
		t.Errorf("GetQuestions: expected 404, got %v", err)
	}
	if _, err := f.svc.GetProgress(ctx, f.users[0].ID, 999); statusOf(err) != http.StatusNotFound {
		t.Errorf("GetProgress: expected 404, got %v", err)
	}
	req := dto.SubmitResultRequest{CorrectAnswers: intPtr(5), TotalQuestions: intPtr(10)}
	if _, err := f.svc.SubmitResult(ctx, f.users[0].ID, 999, req); statusOf(err) != http.StatusNotFound {
		t.Errorf("SubmitResult: expected 404, got %v", err)
	}
}

func TestQuestionPool(t *testing.T) {
	f := newGameFixture(t)

	resp, err := f.svc.GetQuestionPool(context.Background(), f.lessons["Day 2"].ID)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Total != 4 || len(resp.Items) != 4 {
		t.Errorf("expected 4 eligible items, got %d", resp.Total)
	}
}

func TestSubmitResultRejectsInvalidCounts(t *testing.T) {
	f := newGameFixture(t)
	ctx := context.Background()
	user, lesson := f.users[0].ID, f.lessons["Day 2"].ID

	_, err := f.svc.SubmitResult(ctx, user, lesson, dto.SubmitResultRequest{CorrectAnswers: intPtr(12), TotalQuestions: intPtr(10)})
	var validationErr *progress.ValidationError
	if !errors.As(err, &validationErr) || validationErr.Field != progress.FieldCorrect {
		t.Fatalf("expected a correct_answers validation error, got %v", err)
	}

	snapshot, err := f.svc.GetProgress(ctx, user, lesson)
	if err != nil {
		t.Fatal(err)
	}
	if snapshot.Completed || snapshot.Accuracy != nil {
		t.Errorf("rejected submission left state behind: %+v", snapshot)
	}
}

func TestSubmitResultAndCourseViews(t *testing.T) {
	f := newGameFixture(t)
	ctx := context.Background()
	ana, luis := f.users[0].ID, f.users[1].ID

	summary, err := f.svc.SubmitResult(ctx, ana, f.lessons["Day 2"].ID,
		dto.SubmitResultRequest{CorrectAnswers: intPtr(16), TotalQuestions: intPtr(20), GameScore: intPtr(250)})
	if err != nil {
		t.Fatal(err)
	}
	if !summary.Passed || summary.Accuracy != 80 || summary.GameScore != 250 || summary.Message != progress.MessageFirstPass {
		t.Errorf("unexpected summary %+v", summary)
	}
	if len(summary.NewBadges) != 1 || summary.NewBadges[0].Name != "First steps" {
		t.Errorf("expected the first badge, got %+v", summary.NewBadges)
	}

	snapshot, err := f.svc.GetProgress(ctx, ana, f.lessons["Day 2"].ID)
	if err != nil {
		t.Fatal(err)
	}
	if !snapshot.Completed || *snapshot.GameScore != 250 || snapshot.CompletedAt == nil {
		t.Errorf("unexpected snapshot %+v", snapshot)
	}

	_, err = f.svc.SubmitResult(ctx, luis, f.lessons["Day 1"].ID,
		dto.SubmitResultRequest{CorrectAnswers: intPtr(5), TotalQuestions: intPtr(10)})
	if err != nil {
		t.Fatal(err)
	}

	courseProgress, err := f.svc.CourseProgress(ctx, ana, f.course.ID)
	if err != nil {
		t.Fatal(err)
	}
	if courseProgress.TotalLessons != 3 || courseProgress.CompletedLessons != 1 || courseProgress.ProgressPercent != 33.33 {
		t.Errorf("unexpected course progress %+v", courseProgress)
	}

	awards, err := f.svc.UserBadges(ctx, ana)
	if err != nil {
		t.Fatal(err)
	}
	if len(awards) != 1 || awards[0].Badge.Name != "First steps" {
		t.Errorf("unexpected awards %+v", awards)
	}

	catalogue, err := f.svc.CourseBadges(ctx, f.course.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(catalogue) != 2 || catalogue[1].LessonsRequired != 3 {
		t.Errorf("unexpected catalogue %+v", catalogue)
	}

	board, err := f.svc.Leaderboard(ctx, luis, f.course.ID, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(board.Entries) != 2 || board.Entries[0].UserID != ana || board.Entries[0].TotalScore != 250 {
		t.Fatalf("unexpected leaderboard %+v", board.Entries)
	}
	if !board.Entries[1].IsCurrentUser || board.UserRank == nil || *board.UserRank != 2 {
		t.Errorf("caller should be ranked second, got %+v rank=%v", board.Entries[1], board.UserRank)
	}

	if _, err := f.svc.Leaderboard(ctx, ana, 999, 10); statusOf(err) != http.StatusNotFound {
		t.Errorf("expected 404 for an unknown course, got %v", err)
	}
}

func TestRankEntriesSharesTies(t *testing.T) {
	rows := []repositories.LeaderboardRow{
		{UserID: 1, TotalScore: 300},
		{UserID: 2, TotalScore: 200},
		{UserID: 3, TotalScore: 200},
		{UserID: 4, TotalScore: 100},
	}

	entries := rankEntries(rows, 3)
	want := []int{1, 2, 2, 4}
	for i, e := range entries {
		if e.Rank != want[i] {
			t.Errorf("entry %d rank = %d, want %d", i, e.Rank, want[i])
		}
		if e.IsCurrentUser != (e.UserID == 3) {
			t.Errorf("entry %d current user flag = %v", i, e.IsCurrentUser)
		}
	}
}

func TestEnrollment(t *testing.T) {
	f := newGameFixture(t)
	ctx := context.Background()
	ana := f.users[0].ID

	first, err := f.svc.Enroll(ctx, ana, f.course.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !first.Enrolled || first.EnrolledAt == nil {
		t.Fatalf("enroll: %+v", first)
	}
	again, err := f.svc.Enroll(ctx, ana, f.course.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !again.EnrolledAt.Equal(*first.EnrolledAt) {
		t.Errorf("second enroll moved the date: %v -> %v", first.EnrolledAt, again.EnrolledAt)
	}

	var rows int64
	mustCreate(t, f.svc.db.Db().Model(&model.CourseUser{}).Count(&rows).Error)
	if rows != 1 {
		t.Errorf("expected 1 enrollment row, got %d", rows)
	}

	courseProgress, err := f.svc.CourseProgress(ctx, ana, f.course.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !courseProgress.Enrolled {
		t.Error("course progress should report the enrollment")
	}

	left, err := f.svc.Unenroll(ctx, ana, f.course.ID)
	if err != nil {
		t.Fatal(err)
	}
	if left.Enrolled || left.EnrolledAt != nil {
		t.Errorf("unenroll: %+v", left)
	}
	if _, err := f.svc.Unenroll(ctx, ana, f.course.ID); err != nil {
		t.Errorf("unenrolling twice should succeed: %v", err)
	}

	courseProgress, err = f.svc.CourseProgress(ctx, ana, f.course.ID)
	if err != nil {
		t.Fatal(err)
	}
	if courseProgress.Enrolled {
		t.Error("course progress still reports the enrollment")
	}

	if _, err := f.svc.Enroll(ctx, ana, 999); statusOf(err) != http.StatusNotFound {
		t.Errorf("Enroll unknown course: expected 404, got %v", err)
	}
	if _, err := f.svc.Unenroll(ctx, ana, 999); statusOf(err) != http.StatusNotFound {
		t.Errorf("Unenroll unknown course: expected 404, got %v", err)
	}
}

func TestPoolCachesRawAssetReferences(t *testing.T) {
	f := newGameFixture(t)
	ctx := context.Background()
	db := f.svc.db.Db()
	f.svc.assets = &MinIOService{publicBaseURL: "https://assets.vooky.test"}

	levelID := f.lessons["Day 1"].LevelID
	var category model.Category
	mustCreate(t, db.First(&category).Error)
	sun := model.Image{CategoryID: category.ID, LevelID: levelID, Dia: 3, FileURL: "storage/images/sun.png", AudioFileURL: "storage/audio/sun.mp3"}
	mustCreate(t, db.Create(&sun).Error)
	lesson := model.Lesson{LevelID: levelID, Title: "Day 3", ContentType: "mixto", Dia: 3}
	mustCreate(t, db.Create(&lesson).Error)

	find := func(pool []quiz.Item) quiz.Item {
		t.Helper()
		for _, item := range pool {
			if item.ID == sun.ID {
				return item
			}
		}
		t.Fatalf("image %d missing from pool", sun.ID)
		return quiz.Item{}
	}

	stored, err := f.svc.storedPool(ctx, &lesson)
	if err != nil {
		t.Fatal(err)
	}
	if item := find(stored); item.FileURL != sun.FileURL || item.AudioFileURL != sun.AudioFileURL {
		t.Errorf("stored pool should keep raw references, got %q %q", item.FileURL, item.AudioFileURL)
	}

	served, err := f.svc.eligiblePool(ctx, &lesson)
	if err != nil {
		t.Fatal(err)
	}
	item := find(served)
	if item.FileURL != "https://assets.vooky.test/storage/images/sun.png" || item.AudioFileURL != "https://assets.vooky.test/storage/audio/sun.mp3" {
		t.Errorf("served pool not resolved: %q %q", item.FileURL, item.AudioFileURL)
	}
	if find(stored).FileURL != sun.FileURL {
		t.Error("resolving mutated the stored pool")
	}
}
