package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/fittrack-api/internal/domain/entity"
	"github.com/oksasatya/fittrack-api/internal/domain/repository"
	"github.com/oksasatya/fittrack-api/pkg/apperr"
)

const goalColumns = `id::text, user_id::text, title, goal_type, description, COALESCE(target_value, 0)::float8,
	target_unit, current_value::float8, status, start_date, target_date, created_at, updated_at`

type GoalRepository struct {
	db DB
}

func NewGoalRepository(db DB) *GoalRepository {
	return &GoalRepository{db: db}
}

func scanGoal(row pgx.Row) (*entity.Goal, error) {
	var (
		g      entity.Goal
		status string
	)
	if err := row.Scan(&g.ID, &g.UserID, &g.Title, &g.Type, &g.Description, &g.TargetValue,
		&g.TargetUnit, &g.CurrentValue, &status, &g.StartDate, &g.TargetDate, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return nil, err
	}
	g.Status = entity.GoalStatus(status)
	return &g, nil
}

func (r *GoalRepository) Create(ctx context.Context, g *entity.Goal) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO goals (user_id, title, goal_type, description, target_value, target_unit,
			current_value, status, start_date, target_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id::text, created_at, updated_at
	`, g.UserID, g.Title, g.Type, g.Description, g.TargetValue, g.TargetUnit,
		g.CurrentValue, string(g.Status), g.StartDate, g.TargetDate)
	return translate(row.Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt), "create goal", "goal")
}

func (r *GoalRepository) ListByUser(ctx context.Context, userID string) ([]entity.Goal, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+goalColumns+`
		FROM goals
		WHERE user_id = $1
		ORDER BY target_date ASC NULLS LAST, created_at ASC
	`, userID)
	if err != nil {
		return nil, translate(err, "list goals", "goal")
	}
	defer rows.Close()

	out := make([]entity.Goal, 0)
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, translate(err, "scan goal", "goal")
		}
		out = append(out, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "list goals", "goal")
	}
	return out, nil
}

// Update applies patch in one statement; absent fields keep their stored value.
func (r *GoalRepository) Update(ctx context.Context, userID, goalID string, p entity.GoalPatch) (*entity.Goal, error) {
	if !validID(goalID) {
		return nil, apperr.NotFound("goal not found")
	}
	var status *string
	if p.Status != nil {
		s := string(*p.Status)
		status = &s
	}
	row := r.db.QueryRow(ctx, `
		UPDATE goals SET
			title = COALESCE($1, title),
			description = COALESCE($2, description),
			target_value = COALESCE($3, target_value),
			target_unit = COALESCE($4, target_unit),
			current_value = COALESCE($5, current_value),
			status = COALESCE($6, status),
			target_date = COALESCE($7, target_date),
			updated_at = now()
		WHERE id = $8 AND user_id = $9
		RETURNING `+goalColumns,
		p.Title, p.Description, p.TargetValue, p.TargetUnit, p.CurrentValue, status, p.TargetDate, goalID, userID)
	g, err := scanGoal(row)
	if err != nil {
		return nil, translate(err, "update goal", "goal")
	}
	return g, nil
}

func (r *GoalRepository) Delete(ctx context.Context, userID, goalID string) error {
	if !validID(goalID) {
		return apperr.NotFound("goal not found")
	}
	res, err := r.db.Exec(ctx, `DELETE FROM goals WHERE id = $1 AND user_id = $2`, goalID, userID)
	if err != nil {
		return translate(err, "delete goal", "goal")
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound("goal not found")
	}
	return nil
}

var _ repository.GoalRepository = (*GoalRepository)(nil)
