package profile

import (
	"time"

	"github.com/google/uuid"
)

// Profile maps to the profiles table. The row ID is the authenticated
// user's subject, so one profile exists per account.
type Profile struct {
	ID                 uuid.UUID  `db:"id" json:"id"`
	Email              string     `db:"email" json:"email"`
	FullName           *string    `db:"full_name" json:"full_name,omitempty"`
	LanguagePreference string     `db:"language_preference" json:"language_preference"`
	TotalPoints        int        `db:"total_points" json:"total_points"`
	CurrentStreak      int        `db:"current_streak" json:"current_streak"`
	LongestStreak      int        `db:"longest_streak" json:"longest_streak"`
	LastCompletedDate  *time.Time `db:"last_completed_date" json:"last_completed_date,omitempty"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updated_at"`
}

// BaselineProfile holds the lifestyle answers collected during onboarding.
// They are forwarded to the analysis pipeline as patient context.
type BaselineProfile struct {
	ID                uuid.UUID `db:"id" json:"id"`
	UserID            uuid.UUID `db:"user_id" json:"user_id"`
	OccupationType    *string   `db:"occupation_type" json:"occupation_type,omitempty"`
	DailySittingHours *int      `db:"daily_sitting_hours" json:"daily_sitting_hours,omitempty"`
	PhysicalWorkLevel *string   `db:"physical_work_level" json:"physical_work_level,omitempty"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

// MedicalCondition is a catalog entry users can tag themselves with.
type MedicalCondition struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Name string    `db:"name" json:"name"`
}
