package repository

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/lhoska/venue-seating-planner/internal/model"
)

// PlanRepo persists whole plan documents. The document's surface and seat
// arrays are stored as rows in plan_surfaces and plan_seats; a whole-plan
// patch replaces both row sets inside one transaction, which keeps the
// "shallow replace of the named arrays" merge strategy atomic.
type PlanRepo struct {
	db    *sql.DB
	cache *PlanCache // optional; nil disables snapshot caching
}

// NewPlanRepo constructs a PlanRepo. cache may be nil.
func NewPlanRepo(db *sql.DB, cache *PlanCache) *PlanRepo {
	return &PlanRepo{db: db, cache: cache}
}

// Create inserts a new plan together with any surfaces and seats it
// already carries (a freshly created plan is usually empty).
func (r *PlanRepo) Create(ctx context.Context, doc *model.PlanDocument) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	const q = `INSERT INTO seating_plans
	           (id, event_id, name, description, venue_layout, is_active, is_published,
	            total_seats, assigned_seats, available_seats, created_at, updated_at, created_by)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, q,
		doc.ID, doc.EventID, doc.Name, doc.Description, doc.VenueLayout,
		doc.IsActive, doc.IsPublished,
		doc.TotalSeats, doc.AssignedSeats, doc.AvailableSeats,
		doc.CreatedAt, doc.UpdatedAt, doc.CreatedBy,
	); err != nil {
		return err
	}
	if err := insertSurfacesTx(ctx, tx, doc); err != nil {
		return err
	}
	if err := insertSeatsTx(ctx, tx, doc); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	r.cache.Set(ctx, doc)
	return nil
}

// GetPlan loads a full plan document, trying the snapshot cache first.
func (r *PlanRepo) GetPlan(ctx context.Context, planID string) (*model.PlanDocument, error) {
	if doc, ok := r.cache.Get(ctx, planID); ok {
		return doc, nil
	}
	doc := &model.PlanDocument{}
	const q = `SELECT id, event_id, name, description, venue_layout, is_active, is_published,
	                  total_seats, assigned_seats, available_seats, created_at, updated_at, created_by
	           FROM seating_plans WHERE id = ?`
	err := r.db.QueryRowContext(ctx, q, planID).Scan(
		&doc.ID, &doc.EventID, &doc.Name, &doc.Description, &doc.VenueLayout,
		&doc.IsActive, &doc.IsPublished,
		&doc.TotalSeats, &doc.AssignedSeats, &doc.AvailableSeats,
		&doc.CreatedAt, &doc.UpdatedAt, &doc.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if err := r.loadSurfaces(ctx, doc); err != nil {
		return nil, err
	}
	if err := r.loadSeats(ctx, doc); err != nil {
		return nil, err
	}
	r.cache.Set(ctx, doc)
	return doc, nil
}

// ListByEvent returns the plan headers of one event ordered by creation.
func (r *PlanRepo) ListByEvent(ctx context.Context, eventID string) ([]model.SeatingPlan, error) {
	const q = `SELECT id, event_id, name, description, venue_layout, is_active, is_published,
	                  total_seats, assigned_seats, available_seats, created_at, updated_at, created_by
	           FROM seating_plans WHERE event_id = ? ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.SeatingPlan
	for rows.Next() {
		var p model.SeatingPlan
		if err := rows.Scan(
			&p.ID, &p.EventID, &p.Name, &p.Description, &p.VenueLayout,
			&p.IsActive, &p.IsPublished,
			&p.TotalSeats, &p.AssignedSeats, &p.AvailableSeats,
			&p.CreatedAt, &p.UpdatedAt, &p.CreatedBy,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ReplacePlan applies a whole-plan patch: the plan row is updated and the
// surface and seat row sets are replaced wholesale, all in one transaction.
func (r *PlanRepo) ReplacePlan(ctx context.Context, doc *model.PlanDocument) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	const q = `UPDATE seating_plans
	           SET name = ?, description = ?, venue_layout = ?, is_active = ?, is_published = ?,
	               total_seats = ?, assigned_seats = ?, available_seats = ?, updated_at = ?
	           WHERE id = ?`
	res, err := tx.ExecContext(ctx, q,
		doc.Name, doc.Description, doc.VenueLayout, doc.IsActive, doc.IsPublished,
		doc.TotalSeats, doc.AssignedSeats, doc.AvailableSeats, doc.UpdatedAt,
		doc.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// RowsAffected is 0 both for missing rows and no-op updates, so
		// double check existence before reporting not found
		var one int
		if err := tx.QueryRowContext(ctx, `SELECT 1 FROM seating_plans WHERE id = ?`, doc.ID).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrPlanNotFound
			}
			return err
		}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM plan_seats WHERE plan_id = ?`, doc.ID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM plan_surfaces WHERE plan_id = ?`, doc.ID); err != nil {
		return err
	}
	if err := insertSurfacesTx(ctx, tx, doc); err != nil {
		return err
	}
	if err := insertSeatsTx(ctx, tx, doc); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	r.cache.Set(ctx, doc)
	return nil
}

// Activate marks one plan as the event's active plan and deactivates every
// other plan of the same event, preserving the one-active-per-event rule.
func (r *PlanRepo) Activate(ctx context.Context, eventID, planID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`UPDATE seating_plans SET is_active = 0 WHERE event_id = ? AND id <> ?`, eventID, planID); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx,
		`UPDATE seating_plans SET is_active = 1 WHERE event_id = ? AND id = ?`, eventID, planID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var active bool
		if err := tx.QueryRowContext(ctx,
			`SELECT is_active FROM seating_plans WHERE id = ?`, planID).Scan(&active); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrPlanNotFound
			}
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	r.cache.Invalidate(ctx, planID)
	return nil
}

// Delete removes a plan with all of its surfaces, seats and constraints.
func (r *PlanRepo) Delete(ctx context.Context, planID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, q := range []string{
		`DELETE FROM plan_seats WHERE plan_id = ?`,
		`DELETE FROM plan_surfaces WHERE plan_id = ?`,
		`DELETE FROM plan_constraints WHERE plan_id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, q, planID); err != nil {
			return err
		}
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM seating_plans WHERE id = ?`, planID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPlanNotFound
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	r.cache.Invalidate(ctx, planID)
	return nil
}

// loadSurfaces reads the plan's surfaces into the document's table and
// chair row arrays, creation order preserved.
func (r *PlanRepo) loadSurfaces(ctx context.Context, doc *model.PlanDocument) error {
	const q = `SELECT id, kind, name, shape, size, capacity, pos_x, pos_y, rotation,
	                  head_seats, seat_sides, orientation, spacing, created_at, updated_at
	           FROM plan_surfaces WHERE plan_id = ? ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, q, doc.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var row surfaceRow
		if err := rows.Scan(
			&row.ID, &row.Kind, &row.Name, &row.Shape, &row.Size, &row.Capacity,
			&row.PosX, &row.PosY, &row.Rotation,
			&row.HeadSeats, &row.SeatSides, &row.Orientation, &row.Spacing,
			&row.CreatedAt, &row.UpdatedAt,
		); err != nil {
			return err
		}
		switch model.SurfaceKind(row.Kind) {
		case model.SurfaceTable:
			doc.Tables = append(doc.Tables, row.toTable(doc.ID))
		case model.SurfaceChairRow:
			doc.ChairRows = append(doc.ChairRows, row.toChairRow(doc.ID))
		default:
			log.Printf("plans: plan %s has surface %s with unknown kind %q, skipping", doc.ID, row.ID, row.Kind)
		}
	}
	return rows.Err()
}

// loadSeats reads the plan's seats, splitting them into the table seat and
// chair seat arrays of the document shape.
func (r *PlanRepo) loadSeats(ctx context.Context, doc *model.PlanDocument) error {
	rowSurfaces := make(map[string]bool, len(doc.ChairRows))
	for _, cr := range doc.ChairRows {
		rowSurfaces[cr.ID] = true
	}
	const q = `SELECT id, surface_id, position, occupant_id, is_reserved, created_at, updated_at
	           FROM plan_seats WHERE plan_id = ? ORDER BY surface_id, position`
	rows, err := r.db.QueryContext(ctx, q, doc.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var s model.Seat
		var occupant sql.NullString
		if err := rows.Scan(&s.ID, &s.SurfaceID, &s.Position, &occupant, &s.IsReserved, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return err
		}
		if occupant.Valid {
			s.OccupantID = occupant.String
		}
		if rowSurfaces[s.SurfaceID] {
			doc.ChairSeats = append(doc.ChairSeats, s)
		} else {
			doc.Seats = append(doc.Seats, s)
		}
	}
	return rows.Err()
}

// surfaceRow is the flat persisted form of either surface kind.
type surfaceRow struct {
	ID          string
	Kind        string
	Name        string
	Shape       sql.NullString
	Size        sql.NullFloat64
	Capacity    int
	PosX        float64
	PosY        float64
	Rotation    float64
	HeadSeats   sql.NullInt32
	SeatSides   sql.NullString
	Orientation sql.NullString
	Spacing     sql.NullFloat64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (row *surfaceRow) toTable(planID string) model.Table {
	return model.Table{
		ID:        row.ID,
		PlanID:    planID,
		Name:      row.Name,
		Shape:     row.Shape.String,
		Size:      row.Size.Float64,
		Capacity:  row.Capacity,
		Position:  model.Position{X: row.PosX, Y: row.PosY},
		Rotation:  row.Rotation,
		HeadSeats: int(row.HeadSeats.Int32),
		SeatSides: row.SeatSides.String,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func (row *surfaceRow) toChairRow(planID string) model.ChairRow {
	return model.ChairRow{
		ID:          row.ID,
		PlanID:      planID,
		Name:        row.Name,
		ChairCount:  row.Capacity,
		Orientation: row.Orientation.String,
		Position:    model.Position{X: row.PosX, Y: row.PosY},
		Rotation:    row.Rotation,
		Spacing:     row.Spacing.Float64,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

// insertSurfacesTx bulk inserts the document's tables and chair rows.
func insertSurfacesTx(ctx context.Context, tx *sql.Tx, doc *model.PlanDocument) error {
	total := len(doc.Tables) + len(doc.ChairRows)
	if total == 0 {
		return nil
	}
	query := `INSERT INTO plan_surfaces
	          (id, plan_id, kind, name, shape, size, capacity, pos_x, pos_y, rotation,
	           head_seats, seat_sides, orientation, spacing, created_at, updated_at) VALUES `
	args := make([]interface{}, 0, total*16)
	first := true
	add := func(vals ...interface{}) {
		if !first {
			query += ","
		}
		first = false
		query += "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
		args = append(args, vals...)
	}
	for _, t := range doc.Tables {
		add(t.ID, doc.ID, string(model.SurfaceTable), t.Name, t.Shape, t.Size, t.Capacity,
			t.Position.X, t.Position.Y, t.Rotation,
			t.HeadSeats, t.SeatSides, nil, nil, t.CreatedAt, t.UpdatedAt)
	}
	for _, cr := range doc.ChairRows {
		add(cr.ID, doc.ID, string(model.SurfaceChairRow), cr.Name, nil, nil, cr.ChairCount,
			cr.Position.X, cr.Position.Y, cr.Rotation,
			nil, nil, cr.Orientation, cr.Spacing, cr.CreatedAt, cr.UpdatedAt)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// insertSeatsTx bulk inserts every seat of the document.
func insertSeatsTx(ctx context.Context, tx *sql.Tx, doc *model.PlanDocument) error {
	seats := doc.AllSeats()
	if len(seats) == 0 {
		return nil
	}
	query := `INSERT INTO plan_seats (id, plan_id, surface_id, position, occupant_id, is_reserved, created_at, updated_at) VALUES `
	args := make([]interface{}, 0, len(seats)*8)
	for i, s := range seats {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?, ?, ?)"
		var occupant interface{}
		if s.OccupantID != "" {
			occupant = s.OccupantID
		}
		args = append(args, s.ID, doc.ID, s.SurfaceID, s.Position, occupant, s.IsReserved, s.CreatedAt, s.UpdatedAt)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}
