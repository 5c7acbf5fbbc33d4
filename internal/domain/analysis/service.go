package analysis

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/rehabflow/rehabflow/internal/domain/assessment"
	"github.com/rehabflow/rehabflow/internal/domain/profile"
	"github.com/rehabflow/rehabflow/internal/plan"
	"github.com/rehabflow/rehabflow/internal/platform/inference"
)

// ErrInferenceFailed wraps failures of the hosted model endpoint so
// handlers can report them as an upstream error.
var ErrInferenceFailed = errors.New("inference endpoint failed")

// AssessmentSource gives the pipeline ownership-checked access to
// assessments and their images. *assessment.Service satisfies it.
type AssessmentSource interface {
	GetOwned(ctx context.Context, id, userID uuid.UUID) (*assessment.InjuryAssessment, error)
	ListImages(ctx context.Context, assessmentID, userID uuid.UUID) ([]*assessment.InjuryImage, error)
	DescribeImage(ctx context.Context, imageID uuid.UUID, description string) error
}

// ProfileSource supplies the patient context sent alongside the
// complaint. *profile.Service satisfies it.
type ProfileSource interface {
	EnsureProfile(ctx context.Context, userID uuid.UUID, email string) (*profile.Profile, error)
	GetBaseline(ctx context.Context, userID uuid.UUID) (*profile.BaselineProfile, error)
	ListUserConditionNames(ctx context.Context, userID uuid.UUID) ([]string, error)
}

// CompletionSource reports which plan days the user has already done.
// *progress.Service satisfies it.
type CompletionSource interface {
	CompletedDays(ctx context.Context, userID, assessmentID uuid.UUID) ([]int, error)
}

// ImageFetcher pulls a stored injury photo as base64.
type ImageFetcher interface {
	DownloadBase64(ctx context.Context, objectPath string) (string, error)
}

// Analyzer is the hosted captioning+reasoning endpoint.
type Analyzer interface {
	Analyze(ctx context.Context, req inference.AnalyzeRequest) (*inference.AnalyzeResponse, error)
}

// Translator converts plan prose into the user's preferred language.
type Translator interface {
	Enabled() bool
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

type Service struct {
	analyses    AnalysisRepository
	assessments AssessmentSource
	profiles    ProfileSource
	completions CompletionSource
	images      ImageFetcher
	analyzer    Analyzer
	translator  Translator
}

func NewService(analyses AnalysisRepository, assessments AssessmentSource, profiles ProfileSource,
	completions CompletionSource, images ImageFetcher, analyzer Analyzer, translator Translator) *Service {
	return &Service{
		analyses:    analyses,
		assessments: assessments,
		profiles:    profiles,
		completions: completions,
		images:      images,
		analyzer:    analyzer,
		translator:  translator,
	}
}

// Run executes the full analysis pipeline for one assessment: gather
// patient context and images, call the hosted model once, compose the
// returned sections into a single reasoning document, and persist it.
func (s *Service) Run(ctx context.Context, userID uuid.UUID, email string, assessmentID uuid.UUID) (*ClinicalAnalysis, error) {
	a, err := s.assessments.GetOwned(ctx, assessmentID, userID)
	if err != nil {
		return nil, err
	}

	req := inference.AnalyzeRequest{
		TextComplaint: complaintText(a),
		PainLocation:  a.PainLocation,
		PainLevel:     a.PainLevel,
	}

	if baseline, err := s.profiles.GetBaseline(ctx, userID); err == nil {
		if baseline.OccupationType != nil {
			req.PatientContext.OccupationType = *baseline.OccupationType
		}
		if baseline.DailySittingHours != nil {
			req.PatientContext.DailySittingHours = *baseline.DailySittingHours
		}
		if baseline.PhysicalWorkLevel != nil {
			req.PatientContext.PhysicalWorkLevel = *baseline.PhysicalWorkLevel
		}
	}
	if conditions, err := s.profiles.ListUserConditionNames(ctx, userID); err == nil {
		req.PatientContext.MedicalConditions = conditions
	}

	imgs, err := s.assessments.ListImages(ctx, assessmentID, userID)
	if err != nil {
		return nil, err
	}
	var sent []*assessment.InjuryImage
	for _, img := range imgs {
		data, err := s.images.DownloadBase64(ctx, img.ImagePath)
		if err != nil {
			// A missing photo degrades the analysis but should not
			// block it.
			log.Warn().Err(err).Str("image_path", img.ImagePath).Msg("skipping injury image")
			continue
		}
		req.ImagesBase64 = append(req.ImagesBase64, data)
		sent = append(sent, img)
	}

	resp, err := s.analyzer.Analyze(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInferenceFailed, err)
	}

	// Captions come back in the order the images were sent.
	for i, cap := range resp.ImageCaptions {
		if i >= len(sent) {
			break
		}
		if err := s.assessments.DescribeImage(ctx, sent[i].ID, cap); err != nil {
			log.Warn().Err(err).Str("image_path", sent[i].ImagePath).Msg("storing image caption failed")
		}
	}

	condition := resp.ProbableCondition
	if condition == "" {
		condition = "Assessment pending"
	}

	analysis := &ClinicalAnalysis{
		InjuryAssessmentID: assessmentID,
		ProbableCondition:  condition,
		ConfidenceScore:    resp.ConfidenceScore,
		Reasoning:          composeReasoning(resp),
		ModelVersion:       inference.ModelVersion,
	}
	if err := s.analyses.Create(ctx, analysis); err != nil {
		return nil, err
	}
	return analysis, nil
}

func complaintText(a *assessment.InjuryAssessment) string {
	if a.Description != nil && *a.Description != "" {
		return *a.Description
	}
	return fmt.Sprintf("Pain in %s", a.PainLocation)
}

// composeReasoning folds the model's separate sections into the single
// markdown document stored in the reasoning column: image captions
// first, then the clinical reasoning, then the rehabilitation plan.
func composeReasoning(resp *inference.AnalyzeResponse) string {
	var doc string
	if len(resp.ImageCaptions) > 0 {
		doc = "## Visual Assessment\n"
		for i, cap := range resp.ImageCaptions {
			doc += fmt.Sprintf("- Image %d: %s\n", i+1, cap)
		}
		doc += "\n"
	}
	doc += resp.Reasoning
	if resp.RehabPlan != "" {
		doc += "\n\n## Rehabilitation Plan\n" + resp.RehabPlan
	}
	return doc
}

// Latest returns the most recent analysis for an assessment the user owns.
func (s *Service) Latest(ctx context.Context, userID, assessmentID uuid.UUID) (*ClinicalAnalysis, error) {
	if _, err := s.assessments.GetOwned(ctx, assessmentID, userID); err != nil {
		return nil, err
	}
	return s.analyses.LatestByAssessment(ctx, assessmentID)
}

// PlanFor builds the day-by-day plan view from the latest analysis,
// merging in completed days and translating the prose sections when the
// user's language preference is not English.
func (s *Service) PlanFor(ctx context.Context, userID uuid.UUID, email string, assessmentID uuid.UUID) (*PlanResponse, error) {
	analysis, err := s.Latest(ctx, userID, assessmentID)
	if err != nil {
		return nil, err
	}

	parsed := plan.Parse(analysis.Reasoning)
	days := plan.Project(parsed, analysis.Reasoning)

	completed, err := s.completions.CompletedDays(ctx, userID, assessmentID)
	if err != nil {
		return nil, err
	}
	done := make(map[int]bool, len(completed))
	for _, d := range completed {
		done[d] = true
	}
	if completed == nil {
		completed = []int{}
	}

	resp := &PlanResponse{
		AnalysisID:        analysis.ID,
		ProbableCondition: analysis.ProbableCondition,
		ConfidenceScore:   analysis.ConfidenceScore,
		VisualAssessment:  parsed.VisualAssessment,
		ClinicalReasoning: parsed.ClinicalReasoning,
		Precautions:       parsed.Precautions,
		CompletedDays:     completed,
		Language:          "en",
	}
	if resp.Precautions == nil {
		resp.Precautions = []string{}
	}

	for _, d := range days {
		pd := PlanDay{
			DayNumber:    d.DayNumber,
			PhaseTitle:   d.PhaseTitle,
			PhaseColor:   d.PhaseColor,
			Instructions: d.Instructions,
			Completed:    done[d.DayNumber],
		}
		for _, e := range d.Exercises {
			pd.Exercises = append(pd.Exercises, PlanExercise{
				Name:        e.Name,
				Description: e.Description,
				Stats:       e.DisplayStats(),
			})
		}
		resp.Days = append(resp.Days, pd)
	}

	resp.Today = todayFor(resp.Days)

	s.translatePlan(ctx, userID, email, resp)
	return resp, nil
}

// todayFor picks the lowest day not yet completed, or the final day once
// the whole schedule is done.
func todayFor(days []PlanDay) int {
	if len(days) == 0 {
		return 0
	}
	for _, d := range days {
		if !d.Completed {
			return d.DayNumber
		}
	}
	return days[len(days)-1].DayNumber
}

// translatePlan rewrites the prose sections in the user's preferred
// language. Translation failures leave the English text in place.
func (s *Service) translatePlan(ctx context.Context, userID uuid.UUID, email string, resp *PlanResponse) {
	if s.translator == nil || !s.translator.Enabled() {
		return
	}
	p, err := s.profiles.EnsureProfile(ctx, userID, email)
	if err != nil || p.LanguagePreference == "" || p.LanguagePreference == "en" {
		return
	}

	lang := p.LanguagePreference
	translate := func(text string) string {
		if text == "" {
			return text
		}
		out, err := s.translator.Translate(ctx, text, "en", lang)
		if err != nil {
			log.Warn().Err(err).Str("language", lang).Msg("plan translation failed")
			return text
		}
		return out
	}

	resp.ClinicalReasoning = translate(resp.ClinicalReasoning)
	resp.VisualAssessment = translate(resp.VisualAssessment)
	for i, pre := range resp.Precautions {
		resp.Precautions[i] = translate(pre)
	}
	resp.Language = lang
}
