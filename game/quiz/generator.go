package quiz

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"

	log "github.com/sirupsen/logrus"
)

const (
	TotalQuestions      = 20
	HybridMixedCount    = 10
	HybridSameCount     = 10
	MinEligibleItems    = 2
	minCategoryPairSize = 2
)

var ErrInsufficientData = errors.New("not enough eligible media to build a quiz")

// InsufficientDataError is returned when the eligible pool cannot form a single pair.
type InsufficientDataError struct {
	Available int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s: %d available", ErrInsufficientData.Error(), e.Available)
}

func (e *InsufficientDataError) Unwrap() error {
	return ErrInsufficientData
}

// Item is a media record (image + audio) that can appear as an option.
type Item struct {
	ID           uint    `json:"id"`
	CategoryID   uint    `json:"category_id"`
	LevelID      uint    `json:"level_id"`
	Dia          int     `json:"dia"`
	FileURL      string  `json:"file_url"`
	AudioFileURL string  `json:"audio_file_url"`
	Description  *string `json:"description"`
}

// Lesson is the part of a lesson the generator needs.
type Lesson struct {
	ID          uint
	LevelID     uint
	Dia         int
	ContentType string
}

// Eligible reports whether item may appear in a quiz for lesson: everything from
// earlier levels plus the current level up to the lesson's day.
func Eligible(item Item, lesson Lesson) bool {
	if item.LevelID < lesson.LevelID {
		return true
	}
	return item.LevelID == lesson.LevelID && item.Dia <= lesson.Dia
}

// FilterEligible keeps the items allowed for lesson, preserving order.
func FilterEligible(items []Item, lesson Lesson) []Item {
	eligible := make([]Item, 0, len(items))
	for _, item := range items {
		if Eligible(item, lesson) {
			eligible = append(eligible, item)
		}
	}
	return eligible
}

type Option struct {
	ID          uint    `json:"id"`
	URL         string  `json:"url"`
	Description *string `json:"description"`
}

type Options struct {
	Left  Option `json:"left"`
	Right Option `json:"right"`
}

type Question struct {
	QuestionNumber int     `json:"question_number"`
	AudioURL       string  `json:"audio_url"`
	CorrectImageID uint    `json:"correct_image_id"`
	Options        Options `json:"options"`
}

// CorrectOnLeft reports which slot holds the correct item.
func (q Question) CorrectOnLeft() bool {
	return q.Options.Left.ID == q.CorrectImageID
}

// Rand is the randomness the generator consumes. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

type globalRand struct{}

func (globalRand) IntN(n int) int                     { return rand.IntN(n) }
func (globalRand) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

type Generator struct {
	rnd Rand
}

// NewGenerator builds a generator; a nil rnd uses the process-wide source.
func NewGenerator(rnd Rand) *Generator {
	if rnd == nil {
		rnd = globalRand{}
	}
	return &Generator{rnd: rnd}
}

// Generate builds the quiz for lesson out of an already eligible pool. The
// result may hold fewer than TotalQuestions when the pool cannot supply a
// distractor for some picks.
func (g *Generator) Generate(lesson Lesson, pool []Item) ([]Question, error) {
	if len(pool) < MinEligibleItems {
		return nil, &InsufficientDataError{Available: len(pool)}
	}

	strategy, known := ResolveStrategy(lesson.ContentType)
	logEntry := log.WithFields(log.Fields{
		"lesson_id":    lesson.ID,
		"content_type": lesson.ContentType,
		"strategy":     strategy.String(),
		"pool_size":    len(pool),
	})
	if !known {
		logEntry.Warn("Unknown content_type, using mixed categories")
	} else {
		logEntry.Debug("Generating lesson questions")
	}

	var questions []Question
	switch strategy {
	case StrategySameCategory:
		questions = g.sameCategory(pool, TotalQuestions)
	case StrategyHybrid:
		questions = append(g.mixedCategory(pool, HybridMixedCount), g.sameCategory(pool, HybridSameCount)...)
		g.rnd.Shuffle(len(questions), func(i, j int) {
			questions[i], questions[j] = questions[j], questions[i]
		})
	default:
		questions = g.mixedCategory(pool, TotalQuestions)
	}

	for i := range questions {
		questions[i].QuestionNumber = i + 1
	}
	return questions, nil
}

func (g *Generator) mixedCategory(pool []Item, count int) []Question {
	questions := make([]Question, 0, count)
	for i := 0; i < count; i++ {
		correct := pool[g.rnd.IntN(len(pool))]

		candidates := filterItems(pool, func(it Item) bool { return it.CategoryID != correct.CategoryID })
		if len(candidates) == 0 {
			candidates = filterItems(pool, func(it Item) bool { return it.ID != correct.ID })
		}
		if len(candidates) == 0 {
			continue
		}

		incorrect := candidates[g.rnd.IntN(len(candidates))]
		questions = append(questions, g.format(correct, incorrect))
	}
	return questions
}

func (g *Generator) sameCategory(pool []Item, count int) []Question {
	byCategory := make(map[uint][]Item)
	for _, item := range pool {
		byCategory[item.CategoryID] = append(byCategory[item.CategoryID], item)
	}

	// map iteration order is random; sort so a seeded Rand replays exactly
	validIDs := make([]uint, 0, len(byCategory))
	for id, items := range byCategory {
		if len(items) >= minCategoryPairSize {
			validIDs = append(validIDs, id)
		}
	}
	sort.Slice(validIDs, func(i, j int) bool { return validIDs[i] < validIDs[j] })

	if len(validIDs) == 0 {
		log.WithField("categories", len(byCategory)).Warn("No category with 2+ images, falling back to mixed questions")
		return g.mixedCategory(pool, count)
	}

	questions := make([]Question, 0, count)
	for i := 0; i < count; i++ {
		items := append([]Item(nil), byCategory[validIDs[g.rnd.IntN(len(validIDs))]]...)
		g.rnd.Shuffle(len(items), func(a, b int) { items[a], items[b] = items[b], items[a] })
		questions = append(questions, g.format(items[0], items[1]))
	}
	return questions
}

func (g *Generator) format(correct, incorrect Item) Question {
	left, right := incorrect, correct
	if g.rnd.IntN(2) == 1 {
		left, right = correct, incorrect
	}

	return Question{
		AudioURL:       correct.AudioFileURL,
		CorrectImageID: correct.ID,
		Options: Options{
			Left:  optionOf(left),
			Right: optionOf(right),
		},
	}
}

func optionOf(item Item) Option {
	return Option{ID: item.ID, URL: item.FileURL, Description: item.Description}
}

func filterItems(items []Item, keep func(Item) bool) []Item {
	var out []Item
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
