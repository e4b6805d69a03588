package model

import "time"

// Course groups levels; badges are scoped to a course.
type Course struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Levels []Level `json:"levels,omitempty" gorm:"foreignKey:CourseID"`
}

type Level struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CourseID  uint      `json:"course_id" gorm:"not null;index"`
	Name      string    `json:"name" gorm:"not null"`
	Order     int       `json:"order" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Course *Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`
}

type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CourseID  uint      `json:"course_id" gorm:"not null;index"`
	Name      string    `json:"name" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Lesson is a playable matching game for one day of a level.
type Lesson struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	LevelID     uint      `json:"level_id" gorm:"not null;index"`
	Title       string    `json:"title" gorm:"not null"`
	ContentType string    `json:"content_type" gorm:"not null"`
	Dia         int       `json:"dia" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Level *Level `json:"level,omitempty" gorm:"foreignKey:LevelID"`
}

// Image is a media item: a picture and its pronunciation audio.
type Image struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	CategoryID   uint      `json:"category_id" gorm:"not null;index"`
	LevelID      uint      `json:"level_id" gorm:"not null;index:idx_images_level_dia"`
	Dia          int       `json:"dia" gorm:"not null;index:idx_images_level_dia"`
	FileURL      string    `json:"file_url" gorm:"not null"`
	AudioFileURL string    `json:"audio_file_url"`
	Description  *string   `json:"description" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
