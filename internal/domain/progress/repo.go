package progress

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotCompleted is returned by GetCompletion when the day has no
// completion record yet. It keeps absence distinguishable from a
// database failure.
var ErrNotCompleted = errors.New("day not completed")

type ProgressRepository interface {
	// GetCompletion returns ErrNotCompleted when no record exists.
	GetCompletion(ctx context.Context, assessmentID uuid.UUID, dayNumber int) (*DailyProgress, error)
	RecordCompletion(ctx context.Context, dp *DailyProgress) error
	ListCompletedDays(ctx context.Context, assessmentID uuid.UUID) ([]int, error)
	LogPoints(ctx context.Context, userID uuid.UUID, points int, source string) error
}
