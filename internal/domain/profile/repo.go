package profile

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ProfileRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (*Profile, error)
	Create(ctx context.Context, p *Profile) error
	Update(ctx context.Context, p *Profile) error
	UpdateStats(ctx context.Context, userID uuid.UUID, totalPoints, currentStreak, longestStreak int, lastCompleted time.Time) error
	GetBaseline(ctx context.Context, userID uuid.UUID) (*BaselineProfile, error)
	UpsertBaseline(ctx context.Context, b *BaselineProfile) error
	ListConditions(ctx context.Context) ([]*MedicalCondition, error)
	SetUserConditions(ctx context.Context, userID uuid.UUID, conditionIDs []uuid.UUID) error
	ListUserConditionNames(ctx context.Context, userID uuid.UUID) ([]string, error)
}
