// Package plan converts the free-form reasoning text produced by the
// clinical analysis model into a structured recovery plan and projects
// that plan onto a per-day schedule. Both operations are pure functions
// over their inputs: nothing is persisted and no instance state is kept,
// so they are safe to call from any number of concurrent requests.
package plan

import "strings"

// ParsedPlan is the structured view of one analysis result. It is
// recomputed on every read and never stored.
type ParsedPlan struct {
	ClinicalReasoning string   `json:"clinical_reasoning"`
	VisualAssessment  string   `json:"visual_assessment"`
	Precautions       []string `json:"precautions"`
	Phases            []Phase  `json:"phases"`
	// Structured reports whether any phase headers were recognized in
	// the source text. When false the projector falls back to a single
	// generic day built from the raw text.
	Structured bool `json:"structured"`
}

// Phase is a named, time-bounded stage of the recovery plan.
type Phase struct {
	Index        int        `json:"index"` // 1-based order of appearance
	Title        string     `json:"title"`
	Timeframe    string     `json:"timeframe"` // display-only, never parsed into dates
	Goal         string     `json:"goal,omitempty"`
	Exercises    []Exercise `json:"exercises"`
	Instructions []string   `json:"instructions"`
	DayStart     int        `json:"day_start"`
	DayEnd       int        `json:"day_end"`
}

// Exercise is one prescribed exercise inside a phase. The stat fields
// hold whatever the model emitted; the sentinel "n/a" means the model
// deliberately left the field unset and it must not be displayed.
type Exercise struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Sets        string `json:"sets,omitempty"`
	Reps        string `json:"reps,omitempty"`
	Hold        string `json:"hold,omitempty"`
	Frequency   string `json:"frequency,omitempty"`
}

// Stat is a single displayable exercise stat.
type Stat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// DisplayStats returns the exercise's stats in a fixed order, dropping
// empty values and the "n/a" sentinel.
func (e Exercise) DisplayStats() []Stat {
	var stats []Stat
	for _, s := range []Stat{
		{"Sets", e.Sets},
		{"Reps", e.Reps},
		{"Hold", e.Hold},
		{"Frequency", e.Frequency},
	} {
		if s.Value == "" || strings.EqualFold(s.Value, "n/a") {
			continue
		}
		stats = append(stats, s)
	}
	return stats
}

// DaySchedule is the projection of a phase onto one calendar day.
type DaySchedule struct {
	DayNumber    int        `json:"day_number"`
	PhaseTitle   string     `json:"phase_title"`
	PhaseColor   string     `json:"phase_color"`
	Exercises    []Exercise `json:"exercises"`
	Instructions []string   `json:"instructions"`
}

// phaseSlot pairs the positional day range and color tag assigned to a
// phase by its order of appearance. Phases beyond the table reuse the
// last entry.
type phaseSlot struct {
	dayStart int
	dayEnd   int
	color    string
}

var phaseSlots = []phaseSlot{
	{1, 7, "red"},
	{8, 28, "amber"},
	{29, 56, "emerald"},
	{57, 84, "blue"},
}

// slotFor returns the slot for the 1-based phase position.
func slotFor(position int) phaseSlot {
	if position < 1 {
		position = 1
	}
	if position > len(phaseSlots) {
		position = len(phaseSlots)
	}
	return phaseSlots[position-1]
}
