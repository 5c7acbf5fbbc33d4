package assessment

import (
	"context"

	"github.com/google/uuid"
)

type AssessmentRepository interface {
	Create(ctx context.Context, a *InjuryAssessment) error
	GetByID(ctx context.Context, id uuid.UUID) (*InjuryAssessment, error)
	Update(ctx context.Context, a *InjuryAssessment) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*InjuryAssessment, int, error)
	AddImage(ctx context.Context, img *InjuryImage) error
	ListImages(ctx context.Context, assessmentID uuid.UUID) ([]*InjuryImage, error)
	UpdateImageDescription(ctx context.Context, imageID uuid.UUID, description string) error
}
