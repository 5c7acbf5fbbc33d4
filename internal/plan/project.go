package plan

import "strings"

// A phase is shown as at most this many representative days even when
// its real day range is longer.
const maxDaysPerPhase = 7

// Day 0 of every phase previews the next couple of exercises in addition
// to the day's primary pick.
const previewExercises = 2

// Fallback schedule limits for unstructured text.
const (
	fallbackMaxLines   = 15
	fallbackMinLineLen = 11
)

// Project expands a parsed plan into an ordered per-day schedule. It is
// deterministic: the same plan and source text always produce the same
// sequence, in ascending day order.
//
// When no phases were recognized, the raw source text is surfaced as a
// single generic day so the user still sees something actionable; an
// empty source yields an empty schedule.
func Project(parsed ParsedPlan, source string) []DaySchedule {
	if !parsed.Structured || len(parsed.Phases) == 0 {
		if strings.TrimSpace(source) == "" {
			return nil
		}
		return []DaySchedule{fallbackDay(source)}
	}

	var days []DaySchedule
	for _, ph := range parsed.Phases {
		span := ph.DayEnd - ph.DayStart + 1
		if span > maxDaysPerPhase {
			span = maxDaysPerPhase
		}
		color := slotFor(ph.Index).color

		for d := 0; d < span; d++ {
			day := DaySchedule{
				DayNumber:  ph.DayStart + d,
				PhaseTitle: ph.Title,
				PhaseColor: color,
			}

			if n := len(ph.Exercises); n > 0 {
				day.Exercises = append(day.Exercises, ph.Exercises[d%n])
				if d == 0 {
					// First day of a phase also previews the next
					// exercises. The primary pick is not deduplicated
					// against the preview, so an exercise can appear
					// twice here when a phase has three or fewer;
					// kept as-is for compatibility with existing
					// clients.
					for i := 1; i <= previewExercises && i < n; i++ {
						day.Exercises = append(day.Exercises, ph.Exercises[i])
					}
				}
			}

			if d == 0 {
				day.Instructions = ph.Instructions
			} else if len(ph.Instructions) > 2 {
				day.Instructions = ph.Instructions[:2]
			} else {
				day.Instructions = ph.Instructions
			}

			days = append(days, day)
		}
	}
	return days
}

// fallbackDay builds the single generic day shown when the model's text
// had no recognizable phase structure.
func fallbackDay(source string) DaySchedule {
	var instructions []string
	for _, raw := range strings.Split(source, "\n") {
		line := stripMarkers(raw)
		if len(line) < fallbackMinLineLen {
			continue
		}
		instructions = append(instructions, line)
		if len(instructions) == fallbackMaxLines {
			break
		}
	}
	return DaySchedule{
		DayNumber:    1,
		PhaseTitle:   "General",
		PhaseColor:   "blue",
		Instructions: instructions,
	}
}
