package scoring

import (
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func answer(s *Session, clock *fakeClock, after time.Duration, correct bool) AnswerResult {
	s.StartQuestion()
	clock.Advance(after)
	if !correct {
		s.Incorrect()
		return AnswerResult{}
	}
	return s.Correct()
}

func TestComboMultiplier(t *testing.T) {
	cases := map[int]float64{0: 1, 1: 1, 2: 1.25, 3: 1.5, 4: 1.75, 5: 2, 12: 2}
	for streak, want := range cases {
		if got := ComboMultiplier(streak); got != want {
			t.Errorf("ComboMultiplier(%d) = %v, want %v", streak, got, want)
		}
	}
}

func TestTimeMultiplier(t *testing.T) {
	cases := []struct {
		elapsed time.Duration
		want    float64
	}{
		{500 * time.Millisecond, 1.5},
		{2 * time.Second, 1.25},
		{4 * time.Second, 1},
		{9 * time.Second, 0.75},
	}
	for _, tc := range cases {
		if got := TimeMultiplier(tc.elapsed); got != tc.want {
			t.Errorf("TimeMultiplier(%v) = %v, want %v", tc.elapsed, got, tc.want)
		}
	}
}

func TestFirstCorrectAnswer(t *testing.T) {
	clock := &fakeClock{t: time.Unix(100, 0)}
	s := NewSession(clock.Now)

	res := answer(s, clock, time.Second, true)
	if res.Points != 22 {
		t.Errorf("expected 22 points, got %d", res.Points)
	}
	if len(res.Bonuses) != 1 || res.Bonuses[0] != TagFirstCorrect {
		t.Errorf("expected first_correct bonus, got %v", res.Bonuses)
	}
}

func TestMissResetsComboAndPerfectRun(t *testing.T) {
	clock := &fakeClock{t: time.Unix(100, 0)}
	s := NewSession(clock.Now)

	for i := 0; i < 3; i++ {
		answer(s, clock, 2*time.Second, true)
	}
	if s.Score != 56 {
		t.Fatalf("expected 56 after three fast answers, got %d", s.Score)
	}

	answer(s, clock, time.Second, false)
	if s.CurrentCombo != 0 || s.PerfectRun || s.ConsecutiveErrors != 1 {
		t.Fatalf("miss did not reset state: combo=%d perfect=%v errors=%d", s.CurrentCombo, s.PerfectRun, s.ConsecutiveErrors)
	}

	res := answer(s, clock, 6*time.Second, true)
	if res.Points != 7 {
		t.Errorf("expected 7 points for slow answer, got %d", res.Points)
	}
	if s.ConsecutiveErrors != 0 {
		t.Error("correct answer should clear consecutive errors")
	}
	if s.MaxCombo != 3 {
		t.Errorf("expected max combo 3, got %d", s.MaxCombo)
	}

	fb := s.Finish()
	if fb.Bonus != 0 || len(fb.Achievements) != 0 {
		t.Errorf("expected no final bonus, got %+v", fb)
	}
	if s.Score != 63 {
		t.Errorf("expected final score 63, got %d", s.Score)
	}

	answer(s, clock, time.Second, true)
	if s.PerfectRun {
		t.Error("perfect run flag must stay cleared")
	}
}

func TestPerfectRunCollectsAllBonuses(t *testing.T) {
	clock := &fakeClock{t: time.Unix(100, 0)}
	s := NewSession(clock.Now)

	for i := 0; i < 10; i++ {
		answer(s, clock, time.Second, true)
	}
	if s.Score != 318 {
		t.Fatalf("expected 318 before final bonuses, got %d", s.Score)
	}

	fb := s.Finish()
	if fb.Bonus != PerfectRunBonus+SpeedDemonBonus+ComboMasterBonus+SharpshooterBonus {
		t.Errorf("unexpected final bonus %d", fb.Bonus)
	}
	want := []string{TagPerfectRun, TagSpeedDemon, TagComboMaster, TagSharpshooter}
	if len(fb.Achievements) != len(want) {
		t.Fatalf("expected %v, got %v", want, fb.Achievements)
	}
	for i := range want {
		if fb.Achievements[i] != want[i] {
			t.Errorf("achievement %d = %s, want %s", i, fb.Achievements[i], want[i])
		}
	}
	if s.Score != 543 {
		t.Errorf("expected 543, got %d", s.Score)
	}
	if MaxScore(10) != s.Score {
		t.Errorf("MaxScore(10) = %d, want %d", MaxScore(10), s.Score)
	}
}

func TestFinishOnEmptySession(t *testing.T) {
	s := NewSession(nil)
	if fb := s.Finish(); fb.Bonus != 0 {
		t.Errorf("empty session earned %d", fb.Bonus)
	}
	if MaxScore(0) != 0 {
		t.Error("MaxScore(0) should be 0")
	}
}

func TestReset(t *testing.T) {
	clock := &fakeClock{t: time.Unix(100, 0)}
	s := NewSession(clock.Now)
	answer(s, clock, time.Second, false)
	answer(s, clock, time.Second, true)

	s.Reset()
	if s.Score != 0 || s.Answered() != 0 || !s.PerfectRun || s.MaxCombo != 0 {
		t.Errorf("reset left state behind: %+v", s)
	}
}
