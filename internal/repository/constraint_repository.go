package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/lhoska/venue-seating-planner/internal/model"
)

// ConstraintRepo persists plan constraints. Member ids are stored as a
// comma-joined list; occupant ids never contain commas (they are minted
// from [a-z0-9_] alphabets), so no escaping is needed.
type ConstraintRepo struct {
	db *sql.DB
}

// NewConstraintRepo creates a ConstraintRepo backed by the given database.
func NewConstraintRepo(db *sql.DB) *ConstraintRepo {
	return &ConstraintRepo{db: db}
}

// Create inserts a new constraint row.
func (r *ConstraintRepo) Create(ctx context.Context, c *model.Constraint) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO plan_constraints (id, plan_id, type, member_ids, weight, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.PlanID, string(c.Type), strings.Join(c.MemberIDs, ","),
		c.Weight, c.IsActive, c.CreatedAt,
	)
	return err
}

// Delete removes a constraint from a plan. Returns ErrConstraintNotFound
// when no row matches.
func (r *ConstraintRepo) Delete(ctx context.Context, planID, constraintID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM plan_constraints WHERE id = ? AND plan_id = ?`,
		constraintID, planID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrConstraintNotFound
	}
	return nil
}

// ConstraintsByPlan returns every constraint attached to a plan, active or
// not, in creation order.
func (r *ConstraintRepo) ConstraintsByPlan(ctx context.Context, planID string) ([]model.Constraint, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, plan_id, type, member_ids, weight, is_active, created_at
		FROM plan_constraints
		WHERE plan_id = ?
		ORDER BY created_at, id`,
		planID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Constraint
	for rows.Next() {
		var (
			c       model.Constraint
			typ     string
			members string
		)
		if err := rows.Scan(&c.ID, &c.PlanID, &typ, &members, &c.Weight, &c.IsActive, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.Type = model.ConstraintType(typ)
		if members != "" {
			c.MemberIDs = strings.Split(members, ",")
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
