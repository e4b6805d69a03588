package model

import "time"

// RateLimit is a fixed-window counter used when redis is unavailable.
type RateLimit struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Identifier   string     `json:"identifier" gorm:"not null;size:255;uniqueIndex:idx_rate_limit_key"`
	EndpointType string     `json:"endpoint_type" gorm:"not null;size:50;uniqueIndex:idx_rate_limit_key"`
	RequestCount int        `json:"request_count" gorm:"default:0;not null"`
	WindowStart  time.Time  `json:"window_start" gorm:"not null"`
	BlockedUntil *time.Time `json:"blocked_until,omitempty" gorm:"index"`
	CreatedAt    time.Time  `json:"created_at" gorm:"not null"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"not null"`
}
