package assessment

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
)

// -- Mock Repository --

type mockAssessmentRepo struct {
	store  map[uuid.UUID]*InjuryAssessment
	images map[uuid.UUID][]*InjuryImage
}

func newMockAssessmentRepo() *mockAssessmentRepo {
	return &mockAssessmentRepo{
		store:  make(map[uuid.UUID]*InjuryAssessment),
		images: make(map[uuid.UUID][]*InjuryImage),
	}
}

func (m *mockAssessmentRepo) Create(_ context.Context, a *InjuryAssessment) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	m.store[a.ID] = a
	return nil
}

func (m *mockAssessmentRepo) GetByID(_ context.Context, id uuid.UUID) (*InjuryAssessment, error) {
	a, ok := m.store[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return a, nil
}

func (m *mockAssessmentRepo) Update(_ context.Context, a *InjuryAssessment) error {
	if _, ok := m.store[a.ID]; !ok {
		return fmt.Errorf("not found")
	}
	m.store[a.ID] = a
	return nil
}

func (m *mockAssessmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.store, id)
	return nil
}

func (m *mockAssessmentRepo) ListByUser(_ context.Context, userID uuid.UUID, limit, offset int) ([]*InjuryAssessment, int, error) {
	var r []*InjuryAssessment
	for _, a := range m.store {
		if a.UserID == userID {
			r = append(r, a)
		}
	}
	sort.Slice(r, func(i, j int) bool { return r[i].CreatedAt.After(r[j].CreatedAt) })
	return r, len(r), nil
}

func (m *mockAssessmentRepo) AddImage(_ context.Context, img *InjuryImage) error {
	img.ID = uuid.New()
	img.CreatedAt = time.Now()
	m.images[img.AssessmentID] = append(m.images[img.AssessmentID], img)
	return nil
}

func (m *mockAssessmentRepo) ListImages(_ context.Context, assessmentID uuid.UUID) ([]*InjuryImage, error) {
	return m.images[assessmentID], nil
}

func (m *mockAssessmentRepo) UpdateImageDescription(_ context.Context, imageID uuid.UUID, description string) error {
	for _, imgs := range m.images {
		for _, img := range imgs {
			if img.ID == imageID {
				img.AIDescription = &description
				return nil
			}
		}
	}
	return fmt.Errorf("not found")
}

func newTestService() (*Service, *mockAssessmentRepo) {
	repo := newMockAssessmentRepo()
	return NewService(repo), repo
}

// -- Service Tests --

func TestCreateAssessment_Success(t *testing.T) {
	svc, _ := newTestService()
	a := &InjuryAssessment{
		UserID:       uuid.New(),
		BodyPart:     "knee",
		PainLocation: "left knee, inner side",
		PainLevel:    6,
	}
	if err := svc.CreateAssessment(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ID == uuid.Nil {
		t.Error("expected ID to be set")
	}
	if a.Status != "active" {
		t.Errorf("expected default status 'active', got %q", a.Status)
	}
}

func TestCreateAssessment_Validation(t *testing.T) {
	svc, _ := newTestService()
	userID := uuid.New()

	cases := []struct {
		name string
		a    *InjuryAssessment
	}{
		{"missing body part", &InjuryAssessment{UserID: userID, PainLocation: "shin", PainLevel: 4}},
		{"missing pain location", &InjuryAssessment{UserID: userID, BodyPart: "leg", PainLevel: 4}},
		{"pain level too low", &InjuryAssessment{UserID: userID, BodyPart: "leg", PainLocation: "shin", PainLevel: 0}},
		{"pain level too high", &InjuryAssessment{UserID: userID, BodyPart: "leg", PainLocation: "shin", PainLevel: 11}},
		{"bad status", &InjuryAssessment{UserID: userID, BodyPart: "leg", PainLocation: "shin", PainLevel: 4, Status: "paused"}},
	}
	for _, tc := range cases {
		if err := svc.CreateAssessment(context.Background(), tc.a); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestGetOwned_RejectsOtherUser(t *testing.T) {
	svc, _ := newTestService()
	owner := uuid.New()
	a := &InjuryAssessment{UserID: owner, BodyPart: "ankle", PainLocation: "right ankle", PainLevel: 5}
	if err := svc.CreateAssessment(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.GetOwned(context.Background(), a.ID, owner); err != nil {
		t.Errorf("owner should read own assessment: %v", err)
	}
	_, err := svc.GetOwned(context.Background(), a.ID, uuid.New())
	if !errors.Is(err, ErrNotOwned) {
		t.Errorf("expected ErrNotOwned, got %v", err)
	}
}

func TestUpdateAssessment_PartialUpdate(t *testing.T) {
	svc, _ := newTestService()
	owner := uuid.New()
	a := &InjuryAssessment{UserID: owner, BodyPart: "shoulder", PainLocation: "left shoulder", PainLevel: 7}
	if err := svc.CreateAssessment(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := svc.UpdateAssessment(context.Background(), a.ID, owner, &InjuryAssessment{PainLevel: 4, Status: "completed"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.PainLevel != 4 {
		t.Errorf("expected pain level 4, got %d", updated.PainLevel)
	}
	if updated.Status != "completed" {
		t.Errorf("expected status 'completed', got %q", updated.Status)
	}
	if updated.BodyPart != "shoulder" {
		t.Error("expected untouched fields to survive")
	}
}

func TestUpdateAssessment_InvalidPainLevel(t *testing.T) {
	svc, _ := newTestService()
	owner := uuid.New()
	a := &InjuryAssessment{UserID: owner, BodyPart: "wrist", PainLocation: "right wrist", PainLevel: 3}
	if err := svc.CreateAssessment(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.UpdateAssessment(context.Background(), a.ID, owner, &InjuryAssessment{PainLevel: 12}); err == nil {
		t.Error("expected error for out-of-range pain level")
	}
}

func TestDeleteAssessment_OwnershipEnforced(t *testing.T) {
	svc, repo := newTestService()
	owner := uuid.New()
	a := &InjuryAssessment{UserID: owner, BodyPart: "back", PainLocation: "lower back", PainLevel: 8}
	if err := svc.CreateAssessment(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.DeleteAssessment(context.Background(), a.ID, uuid.New()); err == nil {
		t.Error("expected error when deleting someone else's assessment")
	}
	if _, ok := repo.store[a.ID]; !ok {
		t.Fatal("assessment should still exist")
	}
	if err := svc.DeleteAssessment(context.Background(), a.ID, owner); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := repo.store[a.ID]; ok {
		t.Error("assessment should be deleted")
	}
}

func TestAttachImage_OwnershipEnforced(t *testing.T) {
	svc, _ := newTestService()
	owner := uuid.New()
	a := &InjuryAssessment{UserID: owner, BodyPart: "ankle", PainLocation: "right ankle", PainLevel: 5}
	if err := svc.CreateAssessment(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.AttachImage(context.Background(), a.ID, uuid.New(), "other/swelling.jpg"); !errors.Is(err, ErrNotOwned) {
		t.Errorf("expected ErrNotOwned, got %v", err)
	}

	img, err := svc.AttachImage(context.Background(), a.ID, owner, owner.String()+"/swelling.jpg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if img.ID == uuid.Nil {
		t.Error("expected image ID to be set")
	}

	imgs, err := svc.ListImages(context.Background(), a.ID, owner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(imgs) != 1 {
		t.Errorf("expected 1 image, got %d", len(imgs))
	}
}

func TestAttachImage_RequiresPath(t *testing.T) {
	svc, _ := newTestService()
	owner := uuid.New()
	a := &InjuryAssessment{UserID: owner, BodyPart: "ankle", PainLocation: "right ankle", PainLevel: 5}
	if err := svc.CreateAssessment(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.AttachImage(context.Background(), a.ID, owner, ""); err == nil {
		t.Error("expected error for empty image path")
	}
}
