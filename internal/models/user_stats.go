package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MaxWeights holds the four tracked lift maxima, in kilograms.
type MaxWeights struct {
	BackSquat float64 `json:"back_squat"`
	Deadlift  float64 `json:"deadlift"`
	Clean     float64 `json:"clean"`
	Snatch    float64 `json:"snatch"`
}

// UserStats is the per-identity profile document, keyed by the provider uid.
// Created on first sign-in, never deleted by normal application flows.
type UserStats struct {
	UID          string                           `gorm:"primaryKey;size:128" json:"uid"`
	Role         string                           `gorm:"size:20;not null;default:'member'" json:"role"`
	Email        string                           `gorm:"size:255;index" json:"email"`
	DisplayName  string                           `gorm:"size:255" json:"display_name"`
	PhotoURL     string                           `gorm:"size:512" json:"photo_url"`
	BodyWeight   float64                          `json:"body_weight"`
	MaxWeights   datatypes.JSONType[MaxWeights]   `gorm:"type:jsonb" json:"max_weights"`
	CurrentBoxID *uuid.UUID                       `gorm:"type:uuid" json:"current_box_id"`
	CreatedAt    time.Time                        `json:"created_at"`
	UpdatedAt    time.Time                        `json:"updated_at"`
}
