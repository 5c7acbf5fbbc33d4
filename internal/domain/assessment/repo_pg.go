package assessment

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type assessmentRepoPG struct{ pool *pgxpool.Pool }

func NewAssessmentRepoPG(pool *pgxpool.Pool) AssessmentRepository {
	return &assessmentRepoPG{pool: pool}
}

const assessmentCols = `id, user_id, body_part, pain_location, pain_level,
	description, injury_date, status, created_at, updated_at`

func (r *assessmentRepoPG) scanAssessment(row pgx.Row) (*InjuryAssessment, error) {
	var a InjuryAssessment
	err := row.Scan(&a.ID, &a.UserID, &a.BodyPart, &a.PainLocation, &a.PainLevel,
		&a.Description, &a.InjuryDate, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	return &a, err
}

func (r *assessmentRepoPG) Create(ctx context.Context, a *InjuryAssessment) error {
	a.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO injury_assessments (id, user_id, body_part, pain_location, pain_level,
			description, injury_date, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		a.ID, a.UserID, a.BodyPart, a.PainLocation, a.PainLevel,
		a.Description, a.InjuryDate, a.Status)
	return err
}

func (r *assessmentRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*InjuryAssessment, error) {
	return r.scanAssessment(r.pool.QueryRow(ctx,
		`SELECT `+assessmentCols+` FROM injury_assessments WHERE id = $1`, id))
}

func (r *assessmentRepoPG) Update(ctx context.Context, a *InjuryAssessment) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE injury_assessments SET body_part=$2, pain_location=$3, pain_level=$4,
			description=$5, injury_date=$6, status=$7, updated_at=NOW()
		WHERE id = $1`,
		a.ID, a.BodyPart, a.PainLocation, a.PainLevel,
		a.Description, a.InjuryDate, a.Status)
	return err
}

func (r *assessmentRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM injury_assessments WHERE id = $1`, id)
	return err
}

func (r *assessmentRepoPG) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*InjuryAssessment, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM injury_assessments WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+assessmentCols+` FROM injury_assessments WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*InjuryAssessment
	for rows.Next() {
		a, err := r.scanAssessment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}

func (r *assessmentRepoPG) AddImage(ctx context.Context, img *InjuryImage) error {
	img.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO injury_images (id, injury_assessment_id, image_path, ai_description)
		VALUES ($1, $2, $3, $4)`,
		img.ID, img.AssessmentID, img.ImagePath, img.AIDescription)
	return err
}

func (r *assessmentRepoPG) UpdateImageDescription(ctx context.Context, imageID uuid.UUID, description string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE injury_images SET ai_description = $2 WHERE id = $1`, imageID, description)
	return err
}

func (r *assessmentRepoPG) ListImages(ctx context.Context, assessmentID uuid.UUID) ([]*InjuryImage, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, injury_assessment_id, image_path, ai_description, created_at
		FROM injury_images WHERE injury_assessment_id = $1 ORDER BY created_at`, assessmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*InjuryImage
	for rows.Next() {
		var img InjuryImage
		if err := rows.Scan(&img.ID, &img.AssessmentID, &img.ImagePath, &img.AIDescription, &img.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &img)
	}
	return items, rows.Err()
}
