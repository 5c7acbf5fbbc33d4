package analysis

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type analysisRepoPG struct{ pool *pgxpool.Pool }

func NewAnalysisRepoPG(pool *pgxpool.Pool) AnalysisRepository {
	return &analysisRepoPG{pool: pool}
}

const analysisCols = `id, injury_assessment_id, probable_condition, confidence_score,
	reasoning, model_version, created_at`

func (r *analysisRepoPG) scanAnalysis(row pgx.Row) (*ClinicalAnalysis, error) {
	var a ClinicalAnalysis
	err := row.Scan(&a.ID, &a.InjuryAssessmentID, &a.ProbableCondition, &a.ConfidenceScore,
		&a.Reasoning, &a.ModelVersion, &a.CreatedAt)
	return &a, err
}

func (r *analysisRepoPG) Create(ctx context.Context, a *ClinicalAnalysis) error {
	a.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO ai_clinical_analysis (id, injury_assessment_id, probable_condition,
			confidence_score, reasoning, model_version)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.InjuryAssessmentID, a.ProbableCondition,
		a.ConfidenceScore, a.Reasoning, a.ModelVersion)
	return err
}

func (r *analysisRepoPG) LatestByAssessment(ctx context.Context, assessmentID uuid.UUID) (*ClinicalAnalysis, error) {
	return r.scanAnalysis(r.pool.QueryRow(ctx, `
		SELECT `+analysisCols+` FROM ai_clinical_analysis
		WHERE injury_assessment_id = $1 ORDER BY created_at DESC LIMIT 1`, assessmentID))
}

func (r *analysisRepoPG) ListByAssessment(ctx context.Context, assessmentID uuid.UUID) ([]*ClinicalAnalysis, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+analysisCols+` FROM ai_clinical_analysis
		WHERE injury_assessment_id = $1 ORDER BY created_at DESC`, assessmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*ClinicalAnalysis
	for rows.Next() {
		a, err := r.scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}
