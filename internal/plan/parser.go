package plan

import (
	"regexp"
	"strings"
)

// The model's output is natural language with no compatibility
// guarantee, so parsing is best-effort: Parse never fails, it extracts
// what it recognizes and degrades to an empty (but structurally valid)
// plan for anything else.

type sectionTag int

const (
	secNone sectionTag = iota
	secVisual
	secReasoning
	secPhase
	secPrecautions
)

var (
	// e.g. "1. **Phase 2 — Recovery (Weeks 2-4):**"
	phaseHeaderRe = regexp.MustCompile(`(?i)^(?:\d+[.)]\s*|[-*•]\s*)*\*{0,2}\s*phase\s+\d+\s*[—–-]+\s*(.+?)(?:\s*\((.+?)\))?\s*:?\s*\*{0,2}$`)
	// e.g. "* **Ice Pack**: Apply to area for 15 minutes"
	exerciseStartRe = regexp.MustCompile(`^[-*•]\s*\*\*(.+?)\*\*\s*:?\s*(.*)$`)
	bulletLineRe    = regexp.MustCompile(`^[-*•]\s+(.*)$`)
	statFieldRe     = regexp.MustCompile(`(?i)^(sets|reps|hold|frequency)\s*:\s*(.*)$`)
	// Metadata the analysis layer prepends to the stored reasoning text;
	// stripped so it does not show up inside the clinical reasoning body.
	metaLineRe = regexp.MustCompile(`(?mi)^\s*-?\s*(?:image\s+\d+\s*:|probable condition\s*:|confidence\s*:).*(?:\n|$)`)
)

// Parse converts a single block of model-generated reasoning text into a
// ParsedPlan. It is a pure function: the same input always yields a
// structurally equal result, and malformed input never causes an error.
// Plain text before the first recognized section header is folded into
// the clinical reasoning; plain text between sections later in the
// document is discarded rather than guessed at.
func Parse(reasoningText string) ParsedPlan {
	p := &parser{}
	for _, raw := range strings.Split(reasoningText, "\n") {
		p.consume(raw)
	}
	p.flush()

	out := ParsedPlan{
		ClinicalReasoning: strings.TrimSpace(strings.Join(p.reasoning, "\n")),
		VisualAssessment:  strings.TrimSpace(strings.Join(p.visual, "\n")),
		Precautions:       p.precautions,
		Phases:            p.phases,
	}
	for i := range out.Phases {
		out.Phases[i].Index = i + 1
		slot := slotFor(i + 1)
		out.Phases[i].DayStart = slot.dayStart
		out.Phases[i].DayEnd = slot.dayEnd
	}
	out.Structured = len(out.Phases) > 0
	return out
}

type parser struct {
	section     sectionTag
	seenSection bool
	buf         []string
	current     *Phase

	visual      []string
	reasoning   []string
	precautions []string
	phases      []Phase
}

func (p *parser) consume(raw string) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return
	}

	if m := phaseHeaderRe.FindStringSubmatch(line); m != nil {
		p.closeSection()
		p.current = &Phase{
			Title:     strings.TrimSpace(m[1]),
			Timeframe: strings.TrimSpace(m[2]),
		}
		p.section = secPhase
		p.seenSection = true
		return
	}

	if tag, ok := sectionFor(line); ok {
		p.closeSection()
		p.section = tag
		p.seenSection = true
		return
	}

	if p.section == secPhase {
		// Goal lines belong to the phase itself, not its exercise buffer.
		if goal, ok := goalLine(line); ok {
			p.current.Goal = goal
			return
		}
	}

	if p.section == secNone {
		// Preamble before any recognized header still counts as
		// clinical reasoning, skipping stray short fragments.
		if !p.seenSection && len(line) > 5 {
			p.reasoning = append(p.reasoning, line)
		}
		return
	}

	p.buf = append(p.buf, line)
}

// flush closes whatever section is still open at end of input.
func (p *parser) flush() { p.closeSection() }

func (p *parser) closeSection() {
	switch p.section {
	case secVisual:
		for _, line := range p.buf {
			p.visual = append(p.visual, stripBullet(line))
		}
	case secReasoning:
		joined := stripEmphasis(strings.Join(p.buf, "\n"))
		joined = metaLineRe.ReplaceAllString(joined, "")
		if joined = strings.TrimSpace(joined); joined != "" {
			p.reasoning = append(p.reasoning, joined)
		}
	case secPrecautions:
		for _, line := range p.buf {
			item := strings.TrimSpace(stripEmphasis(stripBullet(line)))
			if len(item) > 3 {
				p.precautions = append(p.precautions, item)
			}
		}
	case secPhase:
		ph := p.current
		ph.Exercises, ph.Instructions = parsePhaseBody(p.buf)
		p.phases = append(p.phases, *ph)
		p.current = nil
	}
	p.buf = nil
	p.section = secNone
}

// sectionFor matches markdown-heading or bold-label lines against the
// known section phrases. The "Rehabilitation Plan" and "Home Exercise"
// headers are pure delimiters: they close the current section without
// opening a new one.
func sectionFor(line string) (sectionTag, bool) {
	if !strings.HasPrefix(line, "#") && !strings.Contains(line, "**") {
		return secNone, false
	}
	lower := strings.ToLower(line)
	switch {
	case strings.Contains(lower, "visual assessment"):
		return secVisual, true
	case strings.Contains(lower, "clinical reasoning") && !strings.Contains(lower, "phase"):
		return secReasoning, true
	case strings.Contains(lower, "precaution") || strings.Contains(lower, "warning sign"):
		return secPrecautions, true
	case strings.Contains(lower, "rehabilitation plan") || strings.Contains(lower, "home exercise"):
		return secNone, true
	}
	return secNone, false
}

// parsePhaseBody runs the exercise/instruction sub-parser over a phase's
// buffered lines.
func parsePhaseBody(lines []string) ([]Exercise, []string) {
	var (
		exercises    []Exercise
		instructions []string
		open         *Exercise
	)
	closeExercise := func() {
		if open != nil && open.Name != "" {
			exercises = append(exercises, *open)
		}
		open = nil
	}

	for _, line := range lines {
		if m := exerciseStartRe.FindStringSubmatch(line); m != nil {
			closeExercise()
			open = &Exercise{
				Name:        strings.TrimSuffix(strings.TrimSpace(m[1]), ":"),
				Description: strings.TrimSpace(m[2]),
			}
			continue
		}

		if open != nil && strings.Contains(strings.ToLower(line), "sets:") {
			parseStats(open, line)
			continue
		}

		if m := bulletLineRe.FindStringSubmatch(line); m != nil {
			text := strings.TrimSpace(stripEmphasis(m[1]))
			if open != nil {
				if open.Description == "" {
					open.Description = text
				} else {
					open.Description += " " + text
				}
			} else {
				instructions = append(instructions, text)
			}
			continue
		}

		if strings.HasPrefix(line, "#") {
			continue
		}
		instructions = append(instructions, strings.TrimSpace(stripEmphasis(line)))
	}
	closeExercise()

	kept := instructions[:0]
	for _, ins := range instructions {
		if len(ins) >= 4 {
			kept = append(kept, ins)
		}
	}
	return exercises, kept
}

// parseStats extracts Sets/Reps/Hold/Frequency fields from a pipe-joined
// stats line, e.g. "- Sets: 3 | Reps: 10 | Hold: n/a".
func parseStats(e *Exercise, line string) {
	line = stripEmphasis(stripBullet(line))
	for _, part := range strings.Split(line, "|") {
		m := statFieldRe.FindStringSubmatch(strings.TrimSpace(part))
		if m == nil {
			continue
		}
		value := strings.TrimSpace(m[2])
		switch strings.ToLower(m[1]) {
		case "sets":
			e.Sets = value
		case "reps":
			e.Reps = value
		case "hold":
			e.Hold = value
		case "frequency":
			e.Frequency = value
		}
	}
}

func goalLine(line string) (string, bool) {
	s := strings.TrimSpace(stripEmphasis(stripBullet(line)))
	if len(s) >= 5 && strings.EqualFold(s[:5], "goal:") {
		return strings.TrimSpace(s[5:]), true
	}
	return "", false
}

func stripEmphasis(s string) string {
	return strings.ReplaceAll(s, "**", "")
}

// stripBullet removes leading list markers (-, *, •, en/em dashes).
func stripBullet(s string) string {
	return strings.TrimLeft(strings.TrimSpace(s), "-*•–— \t")
}

// stripMarkers removes heading, bullet, and emphasis markers. Used by the
// projector's unstructured fallback.
func stripMarkers(s string) string {
	s = stripEmphasis(strings.TrimSpace(s))
	s = strings.TrimLeft(s, "# ")
	return strings.TrimSpace(stripBullet(s))
}
