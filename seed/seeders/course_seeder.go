package seeders

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/vooky-app/vooky_api/model"
	"gorm.io/gorm"
)

const DemoCourseTitle = "Inglés para peques"

// CourseSeeder creates a demo course with media, lessons and badges.
type CourseSeeder struct {
	db *gorm.DB
}

func NewCourseSeeder(db *gorm.DB) *CourseSeeder {
	return &CourseSeeder{db: db}
}

type demoWord struct {
	category string
	word     string
}

// two levels, three days each; words are introduced on the day they appear
var demoDays = [][][]demoWord{
	{
		{{"Animales", "cat"}, {"Animales", "dog"}, {"Colores", "red"}},
		{{"Colores", "blue"}, {"Frutas", "apple"}, {"Frutas", "banana"}},
		{{"Animales", "bird"}, {"Colores", "green"}, {"Frutas", "grape"}},
	},
	{
		{{"Animales", "horse"}, {"Colores", "yellow"}},
		{{"Frutas", "orange"}, {"Animales", "fish"}},
		{{"Colores", "purple"}, {"Frutas", "lemon"}},
	},
}

var demoContentTypes = []string{"misma categoría", "mixto", "combinadas"}

// SeedCourse is idempotent on the course title.
func (s *CourseSeeder) SeedCourse() (*model.Course, error) {
	var existing model.Course
	err := s.db.Where("title = ?", DemoCourseTitle).First(&existing).Error
	if err == nil {
		log.WithField("course_id", existing.ID).Info("Demo course already exists, skipping")
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	course := model.Course{Title: DemoCourseTitle, Description: "Escucha la palabra y toca la imagen correcta."}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&course).Error; err != nil {
			return err
		}

		categories, err := s.seedCategories(tx, course.ID)
		if err != nil {
			return err
		}

		for levelIdx, days := range demoDays {
			level := model.Level{CourseID: course.ID, Name: fmt.Sprintf("Nivel %d", levelIdx+1), Order: levelIdx + 1}
			if err := tx.Create(&level).Error; err != nil {
				return err
			}

			for dayIdx, words := range days {
				dia := dayIdx + 1
				for _, w := range words {
					description := w.word
					image := model.Image{
						CategoryID:   categories[w.category],
						LevelID:      level.ID,
						Dia:          dia,
						FileURL:      fmt.Sprintf("storage/images/%s.png", w.word),
						AudioFileURL: fmt.Sprintf("storage/audio/%s.mp3", w.word),
						Description:  &description,
					}
					if err := tx.Create(&image).Error; err != nil {
						return err
					}
				}

				lesson := model.Lesson{
					LevelID:     level.ID,
					Title:       fmt.Sprintf("%s - día %d", level.Name, dia),
					ContentType: demoContentTypes[dayIdx%len(demoContentTypes)],
					Dia:         dia,
				}
				if err := tx.Create(&lesson).Error; err != nil {
					return err
				}
			}
		}

		return s.seedBadges(tx, course.ID)
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"course_id": course.ID, "title": course.Title}).Info("Created demo course")
	return &course, nil
}

func (s *CourseSeeder) seedCategories(tx *gorm.DB, courseID uint) (map[string]uint, error) {
	ids := map[string]uint{}
	for _, name := range []string{"Animales", "Colores", "Frutas"} {
		category := model.Category{CourseID: courseID, Name: name}
		if err := tx.Create(&category).Error; err != nil {
			return nil, err
		}
		ids[name] = category.ID
	}
	return ids, nil
}

func (s *CourseSeeder) seedBadges(tx *gorm.DB, courseID uint) error {
	badges := []model.Badge{
		{CourseID: courseID, Name: "Primer paso", Description: "Completaste tu primera lección", Image: "storage/badges/first.png", LessonsRequired: 1},
		{CourseID: courseID, Name: "Oído fino", Description: "Completaste tres lecciones", Image: "storage/badges/three.png", LessonsRequired: 3},
		{CourseID: courseID, Name: "Curso completo", Description: "Completaste todas las lecciones", Image: "storage/badges/all.png", LessonsRequired: 6},
	}
	return tx.Create(&badges).Error
}
