package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	profiles ProfileRepository
}

func NewService(profiles ProfileRepository) *Service {
	return &Service{profiles: profiles}
}

// validLanguages mirrors the set of languages the translation endpoint
// can target.
var validLanguages = map[string]bool{
	"en": true, "hi": true, "bn": true, "ta": true, "te": true,
	"mr": true, "gu": true, "kn": true, "ml": true, "pa": true,
	"es": true, "fr": true, "de": true, "pt": true, "ar": true,
	"zh": true,
}

var validOccupationTypes = map[string]bool{
	"desk_job":       true,
	"field_work":     true,
	"manual_labor":   true,
	"healthcare":     true,
	"student":        true,
	"retired":        true,
	"homemaker":      true,
	"athlete":        true,
	"other":          true,
}

var validPhysicalWorkLevels = map[string]bool{
	"sedentary": true,
	"light":     true,
	"moderate":  true,
	"heavy":     true,
}

// EnsureProfile returns the user's profile, creating an empty one on
// first sight of the subject.
func (s *Service) EnsureProfile(ctx context.Context, userID uuid.UUID, email string) (*Profile, error) {
	p, err := s.profiles.Get(ctx, userID)
	if err == nil {
		return p, nil
	}
	p = &Profile{ID: userID, Email: email, LanguagePreference: "en"}
	if err := s.profiles.Create(ctx, p); err != nil {
		return nil, err
	}
	return s.profiles.Get(ctx, userID)
}

func (s *Service) UpdateProfile(ctx context.Context, p *Profile) error {
	if p.LanguagePreference == "" {
		p.LanguagePreference = "en"
	}
	if !validLanguages[p.LanguagePreference] {
		return fmt.Errorf("unsupported language: %s", p.LanguagePreference)
	}
	return s.profiles.Update(ctx, p)
}

func (s *Service) GetBaseline(ctx context.Context, userID uuid.UUID) (*BaselineProfile, error) {
	return s.profiles.GetBaseline(ctx, userID)
}

func (s *Service) SaveBaseline(ctx context.Context, b *BaselineProfile) error {
	if b.OccupationType != nil && !validOccupationTypes[*b.OccupationType] {
		return fmt.Errorf("invalid occupation_type: %s", *b.OccupationType)
	}
	if b.DailySittingHours != nil && (*b.DailySittingHours < 0 || *b.DailySittingHours > 24) {
		return fmt.Errorf("daily_sitting_hours must be between 0 and 24")
	}
	if b.PhysicalWorkLevel != nil && !validPhysicalWorkLevels[*b.PhysicalWorkLevel] {
		return fmt.Errorf("invalid physical_work_level: %s", *b.PhysicalWorkLevel)
	}
	return s.profiles.UpsertBaseline(ctx, b)
}

func (s *Service) ListConditions(ctx context.Context) ([]*MedicalCondition, error) {
	return s.profiles.ListConditions(ctx)
}

func (s *Service) SetUserConditions(ctx context.Context, userID uuid.UUID, conditionIDs []uuid.UUID) error {
	return s.profiles.SetUserConditions(ctx, userID, conditionIDs)
}

func (s *Service) ListUserConditionNames(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return s.profiles.ListUserConditionNames(ctx, userID)
}

// ApplyStats persists a progress update to the profile counters.
func (s *Service) ApplyStats(ctx context.Context, userID uuid.UUID, totalPoints, currentStreak, longestStreak int, lastCompleted time.Time) error {
	return s.profiles.UpdateStats(ctx, userID, totalPoints, currentStreak, longestStreak, lastCompleted)
}
