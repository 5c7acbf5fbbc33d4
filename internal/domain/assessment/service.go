package assessment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrNotOwned is returned when an assessment exists but belongs to a
// different user. Handlers report it as not found so assessment IDs
// cannot be probed.
var ErrNotOwned = errors.New("assessment not owned by user")

type Service struct {
	assessments AssessmentRepository
}

func NewService(assessments AssessmentRepository) *Service {
	return &Service{assessments: assessments}
}

var validStatuses = map[string]bool{
	"active":    true,
	"completed": true,
	"archived":  true,
}

func (s *Service) CreateAssessment(ctx context.Context, a *InjuryAssessment) error {
	if a.BodyPart == "" {
		return fmt.Errorf("body_part is required")
	}
	if a.PainLocation == "" {
		return fmt.Errorf("pain_location is required")
	}
	if a.PainLevel < 1 || a.PainLevel > 10 {
		return fmt.Errorf("pain_level must be between 1 and 10")
	}
	if a.Status == "" {
		a.Status = "active"
	}
	if !validStatuses[a.Status] {
		return fmt.Errorf("invalid status: %s", a.Status)
	}
	return s.assessments.Create(ctx, a)
}

// GetOwned fetches an assessment and verifies it belongs to userID.
func (s *Service) GetOwned(ctx context.Context, id, userID uuid.UUID) (*InjuryAssessment, error) {
	a, err := s.assessments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.UserID != userID {
		return nil, ErrNotOwned
	}
	return a, nil
}

func (s *Service) UpdateAssessment(ctx context.Context, id, userID uuid.UUID, update *InjuryAssessment) (*InjuryAssessment, error) {
	a, err := s.GetOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if update.BodyPart != "" {
		a.BodyPart = update.BodyPart
	}
	if update.PainLocation != "" {
		a.PainLocation = update.PainLocation
	}
	if update.PainLevel != 0 {
		if update.PainLevel < 1 || update.PainLevel > 10 {
			return nil, fmt.Errorf("pain_level must be between 1 and 10")
		}
		a.PainLevel = update.PainLevel
	}
	if update.Description != nil {
		a.Description = update.Description
	}
	if update.InjuryDate != nil {
		a.InjuryDate = update.InjuryDate
	}
	if update.Status != "" {
		if !validStatuses[update.Status] {
			return nil, fmt.Errorf("invalid status: %s", update.Status)
		}
		a.Status = update.Status
	}
	if err := s.assessments.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) DeleteAssessment(ctx context.Context, id, userID uuid.UUID) error {
	if _, err := s.GetOwned(ctx, id, userID); err != nil {
		return err
	}
	return s.assessments.Delete(ctx, id)
}

func (s *Service) ListAssessments(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*InjuryAssessment, int, error) {
	return s.assessments.ListByUser(ctx, userID, limit, offset)
}

func (s *Service) AttachImage(ctx context.Context, assessmentID, userID uuid.UUID, imagePath string) (*InjuryImage, error) {
	if imagePath == "" {
		return nil, fmt.Errorf("image_path is required")
	}
	if _, err := s.GetOwned(ctx, assessmentID, userID); err != nil {
		return nil, err
	}
	img := &InjuryImage{AssessmentID: assessmentID, ImagePath: imagePath}
	if err := s.assessments.AddImage(ctx, img); err != nil {
		return nil, err
	}
	return img, nil
}

func (s *Service) ListImages(ctx context.Context, assessmentID, userID uuid.UUID) ([]*InjuryImage, error) {
	if _, err := s.GetOwned(ctx, assessmentID, userID); err != nil {
		return nil, err
	}
	return s.assessments.ListImages(ctx, assessmentID)
}

// DescribeImage records the model-generated caption for a stored photo.
// Ownership is checked by the caller before images are handed out.
func (s *Service) DescribeImage(ctx context.Context, imageID uuid.UUID, description string) error {
	return s.assessments.UpdateImageDescription(ctx, imageID, description)
}
