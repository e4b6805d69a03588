// Package scoring models a live play session: combo streaks, response-time
// multipliers and end-of-session bonuses that produce the reported game score.
package scoring

import (
	"math"
	"time"
)

const (
	BasePoints = 10

	fastAnswerThreshold  = 3 * time.Second
	speedStreakMilestone = 3

	firstCorrectBonus   = 0.5
	comboMilestoneBonus = 0.5
	speedStreakBonus    = 0.25

	PerfectRunBonus   = 100
	SpeedDemonBonus   = 50
	ComboMasterBonus  = 50
	SharpshooterBonus = 25

	speedDemonFraction   = 0.8
	comboMasterStreak    = 10
	sharpshooterAccuracy = 90
)

const (
	TagFirstCorrect = "first_correct"
	TagCombo        = "combo"
	TagSpeedStreak  = "speed_streak"
	TagPerfectRun   = "perfect_run"
	TagSpeedDemon   = "speed_demon"
	TagComboMaster  = "combo_master"
	TagSharpshooter = "sharpshooter"
)

var comboMilestones = map[int]bool{5: true, 10: true, 15: true}

// ComboMultiplier is the step function of the current streak.
func ComboMultiplier(streak int) float64 {
	switch {
	case streak >= 5:
		return 2
	case streak >= 4:
		return 1.75
	case streak >= 3:
		return 1.5
	case streak >= 2:
		return 1.25
	default:
		return 1
	}
}

// TimeMultiplier rewards faster responses.
func TimeMultiplier(elapsed time.Duration) float64 {
	switch {
	case elapsed < 1800*time.Millisecond:
		return 1.5
	case elapsed < fastAnswerThreshold:
		return 1.25
	case elapsed < 5*time.Second:
		return 1
	default:
		return 0.75
	}
}

type AnswerResult struct {
	Points          int
	BasePoints      int
	TimeMultiplier  float64
	ComboMultiplier float64
	BonusMultiplier float64
	ComboLevel      int
	Bonuses         []string
}

type FinalBonus struct {
	Bonus        int
	Achievements []string
}

type Session struct {
	now func() time.Time

	Score             int
	CorrectAnswers    int
	IncorrectAnswers  int
	CurrentCombo      int
	MaxCombo          int
	ConsecutiveErrors int
	PerfectRun        bool

	questionStart time.Time
	speedStreak   int
	fastAnswers   int
}

// NewSession starts an empty session; now defaults to time.Now.
func NewSession(now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	return &Session{now: now, PerfectRun: true}
}

func (s *Session) Answered() int {
	return s.CorrectAnswers + s.IncorrectAnswers
}

// Accuracy is the percentage of correct answers so far.
func (s *Session) Accuracy() float64 {
	if s.Answered() == 0 {
		return 0
	}
	return float64(s.CorrectAnswers) / float64(s.Answered()) * 100
}

func (s *Session) StartQuestion() {
	s.questionStart = s.now()
}

func (s *Session) Correct() AnswerResult {
	elapsed := s.now().Sub(s.questionStart)

	s.CorrectAnswers++
	s.CurrentCombo++
	s.ConsecutiveErrors = 0
	if s.CurrentCombo > s.MaxCombo {
		s.MaxCombo = s.CurrentCombo
	}

	timeMult := TimeMultiplier(elapsed)
	if elapsed < fastAnswerThreshold {
		s.speedStreak++
		s.fastAnswers++
	} else {
		s.speedStreak = 0
	}

	bonusMult := 1.0
	var bonuses []string
	if s.CorrectAnswers == 1 {
		bonusMult += firstCorrectBonus
		bonuses = append(bonuses, TagFirstCorrect)
	}
	if comboMilestones[s.CurrentCombo] {
		bonusMult += comboMilestoneBonus
		bonuses = append(bonuses, TagCombo)
	}
	if s.speedStreak > 0 && s.speedStreak%speedStreakMilestone == 0 {
		bonusMult += speedStreakBonus
		bonuses = append(bonuses, TagSpeedStreak)
	}

	comboMult := ComboMultiplier(s.CurrentCombo)
	points := int(math.Floor(BasePoints * timeMult * comboMult * bonusMult))
	s.Score += points

	return AnswerResult{
		Points:          points,
		BasePoints:      BasePoints,
		TimeMultiplier:  timeMult,
		ComboMultiplier: comboMult,
		BonusMultiplier: bonusMult,
		ComboLevel:      s.CurrentCombo,
		Bonuses:         bonuses,
	}
}

func (s *Session) Incorrect() {
	s.IncorrectAnswers++
	s.CurrentCombo = 0
	s.speedStreak = 0
	s.PerfectRun = false
	s.ConsecutiveErrors++
}

// Finish adds the end-of-session bonuses to the score.
func (s *Session) Finish() FinalBonus {
	var fb FinalBonus
	if s.Answered() == 0 {
		return fb
	}

	if s.PerfectRun {
		fb.Bonus += PerfectRunBonus
		fb.Achievements = append(fb.Achievements, TagPerfectRun)
	}
	if float64(s.fastAnswers)/float64(s.Answered()) >= speedDemonFraction {
		fb.Bonus += SpeedDemonBonus
		fb.Achievements = append(fb.Achievements, TagSpeedDemon)
	}
	if s.MaxCombo >= comboMasterStreak {
		fb.Bonus += ComboMasterBonus
		fb.Achievements = append(fb.Achievements, TagComboMaster)
	}
	if s.Accuracy() >= sharpshooterAccuracy {
		fb.Bonus += SharpshooterBonus
		fb.Achievements = append(fb.Achievements, TagSharpshooter)
	}

	s.Score += fb.Bonus
	return fb
}

func (s *Session) Reset() {
	*s = Session{now: s.now, PerfectRun: true}
}

// MaxScore is the best score reachable over n questions: every answer correct
// and instant, plus all final bonuses.
func MaxScore(n int) int {
	if n <= 0 {
		return 0
	}
	at := time.Unix(0, 0)
	s := NewSession(func() time.Time { return at })
	for i := 0; i < n; i++ {
		s.StartQuestion()
		s.Correct()
	}
	s.Finish()
	return s.Score
}
