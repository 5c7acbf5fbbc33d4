package assessment

import (
	"time"

	"github.com/google/uuid"
)

// InjuryAssessment maps to the injury_assessments table. One row per
// reported injury; the analysis pipeline hangs off it.
type InjuryAssessment struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	UserID       uuid.UUID  `db:"user_id" json:"user_id"`
	BodyPart     string     `db:"body_part" json:"body_part"`
	PainLocation string     `db:"pain_location" json:"pain_location"`
	PainLevel    int        `db:"pain_level" json:"pain_level"`
	Description  *string    `db:"description" json:"description,omitempty"`
	InjuryDate   *time.Time `db:"injury_date" json:"injury_date,omitempty"`
	Status       string     `db:"status" json:"status"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// InjuryImage records a photo uploaded for an assessment. ImagePath is
// the object key inside the private injury-images bucket, never a
// public URL.
type InjuryImage struct {
	ID            uuid.UUID `db:"id" json:"id"`
	AssessmentID  uuid.UUID `db:"injury_assessment_id" json:"injury_assessment_id"`
	ImagePath     string    `db:"image_path" json:"image_path"`
	AIDescription *string   `db:"ai_description" json:"ai_description,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}
