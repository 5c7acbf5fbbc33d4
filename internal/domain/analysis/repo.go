package analysis

import (
	"context"

	"github.com/google/uuid"
)

type AnalysisRepository interface {
	Create(ctx context.Context, a *ClinicalAnalysis) error
	LatestByAssessment(ctx context.Context, assessmentID uuid.UUID) (*ClinicalAnalysis, error)
	ListByAssessment(ctx context.Context, assessmentID uuid.UUID) ([]*ClinicalAnalysis, error)
}
