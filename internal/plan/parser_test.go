package plan

import (
	"reflect"
	"strings"
	"testing"
)

const structuredSample = "## Clinical Reasoning\nPatient shows mild strain.\n\n## Rehabilitation Plan\n1. **Phase 1 — Acute (Days 1-7):**\nGoal: Reduce pain\n* **Ice Pack**: Apply to area\n- Sets: 3 | Reps: 10"

func TestParse_StructuredSample(t *testing.T) {
	p := Parse(structuredSample)

	if p.ClinicalReasoning != "Patient shows mild strain." {
		t.Errorf("clinical reasoning = %q", p.ClinicalReasoning)
	}
	if !p.Structured {
		t.Error("expected structured plan")
	}
	if len(p.Phases) != 1 {
		t.Fatalf("expected 1 phase, got %d", len(p.Phases))
	}
	ph := p.Phases[0]
	if ph.Title != "Acute" {
		t.Errorf("title = %q", ph.Title)
	}
	if ph.Timeframe != "Days 1-7" {
		t.Errorf("timeframe = %q", ph.Timeframe)
	}
	if ph.Goal != "Reduce pain" {
		t.Errorf("goal = %q", ph.Goal)
	}
	if ph.Index != 1 || ph.DayStart != 1 || ph.DayEnd != 7 {
		t.Errorf("index/range = %d/%d-%d", ph.Index, ph.DayStart, ph.DayEnd)
	}
	if len(ph.Exercises) != 1 {
		t.Fatalf("expected 1 exercise, got %d", len(ph.Exercises))
	}
	ex := ph.Exercises[0]
	if ex.Name != "Ice Pack" {
		t.Errorf("exercise name = %q", ex.Name)
	}
	if ex.Description != "Apply to area" {
		t.Errorf("exercise description = %q", ex.Description)
	}
	if ex.Sets != "3" || ex.Reps != "10" {
		t.Errorf("sets/reps = %q/%q", ex.Sets, ex.Reps)
	}
}

func TestParse_EmptyInput(t *testing.T) {
	p := Parse("")
	if p.ClinicalReasoning != "" || p.VisualAssessment != "" {
		t.Error("expected empty string fields")
	}
	if len(p.Phases) != 0 || len(p.Precautions) != 0 {
		t.Error("expected no phases or precautions")
	}
}

func TestParse_UnstructuredProse(t *testing.T) {
	text := strings.Repeat("The patient should rest the affected area and monitor symptoms. ", 3)
	p := Parse(text)
	if p.Structured {
		t.Error("expected structured=false for prose without phase headers")
	}
	if len(p.Phases) != 0 {
		t.Errorf("expected 0 phases, got %d", len(p.Phases))
	}
}

func TestParse_Deterministic(t *testing.T) {
	a := Parse(structuredSample)
	b := Parse(structuredSample)
	if !reflect.DeepEqual(a, b) {
		t.Error("expected structurally equal results for the same input")
	}
}

func TestParse_PhaseOrderingAndRanges(t *testing.T) {
	text := "1. **Phase 1 — Acute (Days 1-7):**\nRest completely.\n" +
		"2. **Phase 2 — Recovery (Weeks 2-4):**\nGentle stretching.\n" +
		"3. **Phase 3 — Strengthening (Weeks 4-8):**\nAdd resistance.\n" +
		"4. **Phase 4 — Return (Weeks 8-12):**\nResume activity.\n" +
		"5. **Phase 5 — Maintenance:**\nKeep moving."
	p := Parse(text)
	if len(p.Phases) != 5 {
		t.Fatalf("expected 5 phases, got %d", len(p.Phases))
	}
	wantRanges := [][2]int{{1, 7}, {8, 28}, {29, 56}, {57, 84}, {57, 84}}
	for i, ph := range p.Phases {
		if ph.Index != i+1 {
			t.Errorf("phase %d: index = %d", i, ph.Index)
		}
		if ph.DayStart != wantRanges[i][0] || ph.DayEnd != wantRanges[i][1] {
			t.Errorf("phase %d: range = %d-%d, want %d-%d",
				i, ph.DayStart, ph.DayEnd, wantRanges[i][0], wantRanges[i][1])
		}
		if ph.DayStart > ph.DayEnd {
			t.Errorf("phase %d: dayStart > dayEnd", i)
		}
		if i > 0 && ph.DayStart < p.Phases[i-1].DayStart {
			t.Errorf("phase %d: day ranges not monotonic", i)
		}
	}
}

func TestParse_Precautions(t *testing.T) {
	text := "## Precautions\n- Avoid heavy lifting\n- Stop if sharp pain\n- ok\n"
	p := Parse(text)
	want := []string{"Avoid heavy lifting", "Stop if sharp pain"}
	if !reflect.DeepEqual(p.Precautions, want) {
		t.Errorf("precautions = %v, want %v", p.Precautions, want)
	}
}

func TestParse_WarningSignsHeader(t *testing.T) {
	p := Parse("**Warning Signs:**\n- Numbness in the limb\n")
	if len(p.Precautions) != 1 || p.Precautions[0] != "Numbness in the limb" {
		t.Errorf("precautions = %v", p.Precautions)
	}
}

func TestParse_VisualAssessment(t *testing.T) {
	text := "## Visual Assessment\n- Image 1: swollen ankle with bruising\n- Image 2: mild redness\n"
	p := Parse(text)
	want := "Image 1: swollen ankle with bruising\nImage 2: mild redness"
	if p.VisualAssessment != want {
		t.Errorf("visual assessment = %q", p.VisualAssessment)
	}
}

func TestParse_ReasoningStripsMetadataLines(t *testing.T) {
	text := "## Clinical Reasoning\n**Probable Condition:** Ankle sprain\n**Confidence:** 0.8\nThe swelling pattern suggests a grade I sprain.\n- Image 1: a swollen ankle\n"
	p := Parse(text)
	if p.ClinicalReasoning != "The swelling pattern suggests a grade I sprain." {
		t.Errorf("clinical reasoning = %q", p.ClinicalReasoning)
	}
}

func TestParse_PreambleCapturedAsReasoning(t *testing.T) {
	text := "Based on the provided images and symptoms:\n## Rehabilitation Plan\n1. **Phase 1 — Acute (Days 1-7):**\nRest the joint.\n"
	p := Parse(text)
	if p.ClinicalReasoning != "Based on the provided images and symptoms:" {
		t.Errorf("clinical reasoning = %q", p.ClinicalReasoning)
	}
	if len(p.Phases) != 1 {
		t.Fatalf("expected 1 phase, got %d", len(p.Phases))
	}
}

func TestParse_DelimiterClosesSection(t *testing.T) {
	text := "## Clinical Reasoning\nLikely a muscle strain.\n## Home Exercises\nThis line follows a delimiter and belongs nowhere.\n"
	p := Parse(text)
	if p.ClinicalReasoning != "Likely a muscle strain." {
		t.Errorf("clinical reasoning = %q", p.ClinicalReasoning)
	}
}

func TestParse_ClinicalReasoningHeaderMentioningPhase(t *testing.T) {
	// A heading like "Clinical Reasoning per Phase" must not open the
	// reasoning section.
	text := "## Visual Assessment\nMild swelling over the joint.\n## Clinical Reasoning per Phase\nSome text here.\n"
	p := Parse(text)
	if p.ClinicalReasoning != "" {
		t.Errorf("clinical reasoning = %q, want empty", p.ClinicalReasoning)
	}
}

func TestParse_MultipleExercisesWithStats(t *testing.T) {
	text := "1. **Phase 1 — Acute (Days 1-7):**\n" +
		"* **Ankle Circles**: Rotate slowly in both directions\n" +
		"- Sets: 2 | Reps: 15 | Frequency: twice daily\n" +
		"* **Calf Stretch**: Lean against a wall\n" +
		"- Sets: 3 | Hold: 30s | Reps: n/a\n" +
		"Keep the ankle elevated when resting.\n"
	p := Parse(text)
	if len(p.Phases) != 1 {
		t.Fatalf("expected 1 phase, got %d", len(p.Phases))
	}
	ph := p.Phases[0]
	if len(ph.Exercises) != 2 {
		t.Fatalf("expected 2 exercises, got %d", len(ph.Exercises))
	}
	first, second := ph.Exercises[0], ph.Exercises[1]
	if first.Name != "Ankle Circles" || first.Sets != "2" || first.Reps != "15" || first.Frequency != "twice daily" {
		t.Errorf("first exercise = %+v", first)
	}
	if second.Name != "Calf Stretch" || second.Sets != "3" || second.Hold != "30s" || second.Reps != "n/a" {
		t.Errorf("second exercise = %+v", second)
	}
	if len(ph.Instructions) != 1 || ph.Instructions[0] != "Keep the ankle elevated when resting." {
		t.Errorf("instructions = %v", ph.Instructions)
	}
}

func TestParse_BulletContinuationJoinsDescription(t *testing.T) {
	text := "1. **Phase 1 — Acute (Days 1-7):**\n" +
		"* **Ice Pack**: Apply to area\n" +
		"- for 15 minutes at a time\n"
	p := Parse(text)
	ex := p.Phases[0].Exercises[0]
	if ex.Description != "Apply to area for 15 minutes at a time" {
		t.Errorf("description = %q", ex.Description)
	}
}

func TestParse_BulletWithoutOpenExerciseIsInstruction(t *testing.T) {
	text := "1. **Phase 1 — Acute (Days 1-7):**\n- Elevate the leg whenever possible\n"
	p := Parse(text)
	ins := p.Phases[0].Instructions
	if len(ins) != 1 || ins[0] != "Elevate the leg whenever possible" {
		t.Errorf("instructions = %v", ins)
	}
}

func TestParse_ShortInstructionsDiscarded(t *testing.T) {
	text := "1. **Phase 1 — Acute (Days 1-7):**\nRest well.\nok\n"
	p := Parse(text)
	ins := p.Phases[0].Instructions
	if len(ins) != 1 || ins[0] != "Rest well." {
		t.Errorf("instructions = %v", ins)
	}
}

func TestParse_PhaseHeaderWithoutTimeframe(t *testing.T) {
	p := Parse("2. **Phase 2 — Recovery:**\nStretch gently.\n")
	if len(p.Phases) != 1 {
		t.Fatalf("expected 1 phase, got %d", len(p.Phases))
	}
	if p.Phases[0].Title != "Recovery" || p.Phases[0].Timeframe != "" {
		t.Errorf("title/timeframe = %q/%q", p.Phases[0].Title, p.Phases[0].Timeframe)
	}
}

func TestParse_PhaseHeaderHyphenVariant(t *testing.T) {
	p := Parse("Phase 1 - Acute (Days 1-7)\nRest completely.\n")
	if len(p.Phases) != 1 {
		t.Fatalf("expected 1 phase, got %d", len(p.Phases))
	}
	if p.Phases[0].Title != "Acute" || p.Phases[0].Timeframe != "Days 1-7" {
		t.Errorf("title/timeframe = %q/%q", p.Phases[0].Title, p.Phases[0].Timeframe)
	}
}

func TestDisplayStats_FiltersSentinel(t *testing.T) {
	ex := Exercise{Sets: "3", Reps: "N/A", Hold: "", Frequency: "daily"}
	stats := ex.DisplayStats()
	if len(stats) != 2 {
		t.Fatalf("expected 2 stats, got %d: %v", len(stats), stats)
	}
	if stats[0].Label != "Sets" || stats[0].Value != "3" {
		t.Errorf("stats[0] = %+v", stats[0])
	}
	if stats[1].Label != "Frequency" || stats[1].Value != "daily" {
		t.Errorf("stats[1] = %+v", stats[1])
	}
}
