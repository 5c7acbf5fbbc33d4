package progress

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type progressRepoPG struct{ pool *pgxpool.Pool }

func NewProgressRepoPG(pool *pgxpool.Pool) ProgressRepository {
	return &progressRepoPG{pool: pool}
}

const progressCols = `id, injury_assessment_id, user_id, day_number, pain_level, notes, completed_at`

func (r *progressRepoPG) GetCompletion(ctx context.Context, assessmentID uuid.UUID, dayNumber int) (*DailyProgress, error) {
	var dp DailyProgress
	err := r.pool.QueryRow(ctx, `
		SELECT `+progressCols+` FROM daily_progress
		WHERE injury_assessment_id = $1 AND day_number = $2`,
		assessmentID, dayNumber).
		Scan(&dp.ID, &dp.InjuryAssessmentID, &dp.UserID, &dp.DayNumber, &dp.PainLevel, &dp.Notes, &dp.CompletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotCompleted
	}
	if err != nil {
		return nil, err
	}
	return &dp, nil
}

func (r *progressRepoPG) RecordCompletion(ctx context.Context, dp *DailyProgress) error {
	dp.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO daily_progress (id, injury_assessment_id, user_id, day_number, pain_level, notes)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		dp.ID, dp.InjuryAssessmentID, dp.UserID, dp.DayNumber, dp.PainLevel, dp.Notes)
	return err
}

func (r *progressRepoPG) ListCompletedDays(ctx context.Context, assessmentID uuid.UUID) ([]int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT day_number FROM daily_progress
		WHERE injury_assessment_id = $1 ORDER BY day_number`, assessmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var days []int
	for rows.Next() {
		var d int
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

func (r *progressRepoPG) LogPoints(ctx context.Context, userID uuid.UUID, points int, source string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO points_log (id, user_id, points, source) VALUES ($1, $2, $3, $4)`,
		uuid.New(), userID, points, source)
	return err
}
