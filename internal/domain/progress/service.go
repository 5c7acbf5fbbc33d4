package progress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rehabflow/rehabflow/internal/domain/assessment"
	"github.com/rehabflow/rehabflow/internal/domain/profile"
)

// AssessmentSource checks injury assessment ownership.
// *assessment.Service satisfies it.
type AssessmentSource interface {
	GetOwned(ctx context.Context, id, userID uuid.UUID) (*assessment.InjuryAssessment, error)
}

// ProfileSource reads and writes the gamification counters on the
// user's profile. *profile.Service satisfies it.
type ProfileSource interface {
	EnsureProfile(ctx context.Context, userID uuid.UUID, email string) (*profile.Profile, error)
	ApplyStats(ctx context.Context, userID uuid.UUID, totalPoints, currentStreak, longestStreak int, lastCompleted time.Time) error
}

type Service struct {
	progress    ProgressRepository
	assessments AssessmentSource
	profiles    ProfileSource

	now func() time.Time
}

func NewService(progress ProgressRepository, assessments AssessmentSource, profiles ProfileSource) *Service {
	return &Service{
		progress:    progress,
		assessments: assessments,
		profiles:    profiles,
		now:         time.Now,
	}
}

// nextStreak applies the streak rule: consecutive calendar days extend
// the streak, a repeat completion on the same day leaves it untouched,
// any gap resets it to 1.
func nextStreak(current int, last *time.Time, today time.Time) int {
	if last == nil {
		return 1
	}
	delta := int(dateOnly(today).Sub(dateOnly(*last)).Hours() / 24)
	switch delta {
	case 0:
		return current
	case 1:
		return current + 1
	default:
		return 1
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CompleteDay marks a rehab day done, awards points, and advances the
// streak. Completing the same day twice is a no-op that reports the
// existing totals.
func (s *Service) CompleteDay(ctx context.Context, userID uuid.UUID, email string, req *CompleteDayRequest) (*CompleteDayResponse, error) {
	if req.DayNumber < 1 {
		return nil, fmt.Errorf("day_number must be at least 1")
	}
	if req.PainLevel != nil && (*req.PainLevel < 0 || *req.PainLevel > 10) {
		return nil, fmt.Errorf("pain_level must be between 0 and 10")
	}
	if _, err := s.assessments.GetOwned(ctx, req.InjuryAssessmentID, userID); err != nil {
		return nil, err
	}

	p, err := s.profiles.EnsureProfile(ctx, userID, email)
	if err != nil {
		return nil, err
	}

	_, err = s.progress.GetCompletion(ctx, req.InjuryAssessmentID, req.DayNumber)
	if err != nil && !errors.Is(err, ErrNotCompleted) {
		return nil, err
	}
	if err == nil {
		return &CompleteDayResponse{
			Success:          true,
			PointsEarned:     0,
			TotalPoints:      p.TotalPoints,
			CurrentStreak:    p.CurrentStreak,
			LongestStreak:    p.LongestStreak,
			AlreadyCompleted: true,
		}, nil
	}

	dp := &DailyProgress{
		InjuryAssessmentID: req.InjuryAssessmentID,
		UserID:             userID,
		DayNumber:          req.DayNumber,
		PainLevel:          req.PainLevel,
		Notes:              req.Notes,
	}
	if err := s.progress.RecordCompletion(ctx, dp); err != nil {
		return nil, err
	}

	today := s.now()
	streak := nextStreak(p.CurrentStreak, p.LastCompletedDate, today)
	longest := p.LongestStreak
	if streak > longest {
		longest = streak
	}
	total := p.TotalPoints + PointsPerDay

	if err := s.profiles.ApplyStats(ctx, userID, total, streak, longest, dateOnly(today)); err != nil {
		return nil, err
	}
	if err := s.progress.LogPoints(ctx, userID, PointsPerDay, fmt.Sprintf("completed_day_%d", req.DayNumber)); err != nil {
		return nil, err
	}

	return &CompleteDayResponse{
		Success:       true,
		PointsEarned:  PointsPerDay,
		TotalPoints:   total,
		CurrentStreak: streak,
		LongestStreak: longest,
	}, nil
}

// CompletedDays lists the day numbers already completed for an
// assessment the user owns.
func (s *Service) CompletedDays(ctx context.Context, userID, assessmentID uuid.UUID) ([]int, error) {
	if _, err := s.assessments.GetOwned(ctx, assessmentID, userID); err != nil {
		return nil, err
	}
	return s.progress.ListCompletedDays(ctx, assessmentID)
}
