package profile

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type profileRepoPG struct{ pool *pgxpool.Pool }

func NewProfileRepoPG(pool *pgxpool.Pool) ProfileRepository {
	return &profileRepoPG{pool: pool}
}

const profileCols = `id, email, full_name, language_preference,
	total_points, current_streak, longest_streak, last_completed_date,
	created_at, updated_at`

func (r *profileRepoPG) scanProfile(row pgx.Row) (*Profile, error) {
	var p Profile
	err := row.Scan(&p.ID, &p.Email, &p.FullName, &p.LanguagePreference,
		&p.TotalPoints, &p.CurrentStreak, &p.LongestStreak, &p.LastCompletedDate,
		&p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *profileRepoPG) Get(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	return r.scanProfile(r.pool.QueryRow(ctx, `SELECT `+profileCols+` FROM profiles WHERE id = $1`, userID))
}

func (r *profileRepoPG) Create(ctx context.Context, p *Profile) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO profiles (id, email, full_name, language_preference)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING`,
		p.ID, p.Email, p.FullName, p.LanguagePreference)
	return err
}

func (r *profileRepoPG) Update(ctx context.Context, p *Profile) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE profiles SET full_name=$2, language_preference=$3, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.FullName, p.LanguagePreference)
	return err
}

func (r *profileRepoPG) UpdateStats(ctx context.Context, userID uuid.UUID, totalPoints, currentStreak, longestStreak int, lastCompleted time.Time) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE profiles SET total_points=$2, current_streak=$3, longest_streak=$4,
			last_completed_date=$5, updated_at=NOW()
		WHERE id = $1`,
		userID, totalPoints, currentStreak, longestStreak, lastCompleted)
	return err
}

const baselineCols = `id, user_id, occupation_type, daily_sitting_hours, physical_work_level, created_at, updated_at`

func (r *profileRepoPG) GetBaseline(ctx context.Context, userID uuid.UUID) (*BaselineProfile, error) {
	var b BaselineProfile
	err := r.pool.QueryRow(ctx, `SELECT `+baselineCols+` FROM baseline_profiles WHERE user_id = $1`, userID).
		Scan(&b.ID, &b.UserID, &b.OccupationType, &b.DailySittingHours, &b.PhysicalWorkLevel, &b.CreatedAt, &b.UpdatedAt)
	return &b, err
}

func (r *profileRepoPG) UpsertBaseline(ctx context.Context, b *BaselineProfile) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO baseline_profiles (id, user_id, occupation_type, daily_sitting_hours, physical_work_level)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			occupation_type = EXCLUDED.occupation_type,
			daily_sitting_hours = EXCLUDED.daily_sitting_hours,
			physical_work_level = EXCLUDED.physical_work_level,
			updated_at = NOW()`,
		b.ID, b.UserID, b.OccupationType, b.DailySittingHours, b.PhysicalWorkLevel)
	return err
}

func (r *profileRepoPG) ListConditions(ctx context.Context) ([]*MedicalCondition, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM medical_conditions ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*MedicalCondition
	for rows.Next() {
		var m MedicalCondition
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, err
		}
		items = append(items, &m)
	}
	return items, rows.Err()
}

func (r *profileRepoPG) SetUserConditions(ctx context.Context, userID uuid.UUID, conditionIDs []uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM user_medical_conditions WHERE user_id = $1`, userID); err != nil {
		return err
	}
	for _, cid := range conditionIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO user_medical_conditions (user_id, condition_id) VALUES ($1, $2)`,
			userID, cid); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *profileRepoPG) ListUserConditionNames(ctx context.Context, userID uuid.UUID) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT mc.name FROM user_medical_conditions umc
		JOIN medical_conditions mc ON mc.id = umc.condition_id
		WHERE umc.user_id = $1
		ORDER BY mc.name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
