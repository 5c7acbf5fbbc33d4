package progress

import (
	"time"

	"github.com/google/uuid"
)

// PointsPerDay is awarded for each rehab day completed for the first time.
const PointsPerDay = 50

// DailyProgress maps to the daily_progress table. The unique pair
// (injury_assessment_id, day_number) makes completion idempotent.
type DailyProgress struct {
	ID                 uuid.UUID `db:"id" json:"id"`
	InjuryAssessmentID uuid.UUID `db:"injury_assessment_id" json:"injury_assessment_id"`
	UserID             uuid.UUID `db:"user_id" json:"user_id"`
	DayNumber          int       `db:"day_number" json:"day_number"`
	PainLevel          *int      `db:"pain_level" json:"pain_level,omitempty"`
	Notes              *string   `db:"notes" json:"notes,omitempty"`
	CompletedAt        time.Time `db:"completed_at" json:"completed_at"`
}

type CompleteDayRequest struct {
	InjuryAssessmentID uuid.UUID `json:"injury_assessment_id"`
	DayNumber          int       `json:"day_number"`
	PainLevel          *int      `json:"pain_level,omitempty"`
	Notes              *string   `json:"notes,omitempty"`
}

type CompleteDayResponse struct {
	Success          bool `json:"success"`
	PointsEarned     int  `json:"points_earned"`
	TotalPoints      int  `json:"total_points"`
	CurrentStreak    int  `json:"current_streak"`
	LongestStreak    int  `json:"longest_streak"`
	AlreadyCompleted bool `json:"already_completed"`
}
