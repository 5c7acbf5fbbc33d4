package analysis

import (
	"time"

	"github.com/google/uuid"

	"github.com/rehabflow/rehabflow/internal/plan"
)

// ClinicalAnalysis maps to the ai_clinical_analysis table. Reasoning
// stores the composed model output: visual assessment, clinical
// reasoning, and the rehabilitation plan in one markdown document. The
// structured plan is re-derived from it on every read.
type ClinicalAnalysis struct {
	ID                 uuid.UUID `db:"id" json:"id"`
	InjuryAssessmentID uuid.UUID `db:"injury_assessment_id" json:"injury_assessment_id"`
	ProbableCondition  string    `db:"probable_condition" json:"probable_condition"`
	ConfidenceScore    float64   `db:"confidence_score" json:"confidence_score"`
	Reasoning          string    `db:"reasoning" json:"reasoning"`
	ModelVersion       string    `db:"model_version" json:"model_version"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
}

// PlanExercise is an exercise as shown to the user, with the unset
// stat sentinels already filtered out.
type PlanExercise struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Stats       []plan.Stat `json:"stats,omitempty"`
}

// PlanDay is one day of the recovery schedule, annotated with the
// user's completion state.
type PlanDay struct {
	DayNumber    int            `json:"day_number"`
	PhaseTitle   string         `json:"phase_title"`
	PhaseColor   string         `json:"phase_color"`
	Exercises    []PlanExercise `json:"exercises"`
	Instructions []string       `json:"instructions"`
	Completed    bool           `json:"completed"`
}

// PlanResponse is the full day-by-day plan view for one assessment.
type PlanResponse struct {
	AnalysisID        uuid.UUID `json:"analysis_id"`
	ProbableCondition string    `json:"probable_condition"`
	ConfidenceScore   float64   `json:"confidence_score"`
	VisualAssessment  string    `json:"visual_assessment,omitempty"`
	ClinicalReasoning string    `json:"clinical_reasoning,omitempty"`
	Precautions       []string  `json:"precautions"`
	Days              []PlanDay `json:"days"`
	Today             int       `json:"today"`
	CompletedDays     []int     `json:"completed_days"`
	Language          string    `json:"language"`
}
