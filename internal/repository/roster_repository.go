package repository

import (
	"context"
	"database/sql"

	"github.com/lhoska/venue-seating-planner/internal/model"
)

// RosterRepo reads the guest roster for an event. The guests table is
// owned by the invitation subsystem; the planner only ever reads it.
type RosterRepo struct {
	db *sql.DB
}

// NewRosterRepo creates a RosterRepo backed by the given database.
func NewRosterRepo(db *sql.DB) *RosterRepo {
	return &RosterRepo{db: db}
}

// ListByEvent returns the roster entries for an event in name order.
func (r *RosterRepo) ListByEvent(ctx context.Context, eventID string) ([]model.RosterEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, plus_one_enabled, plus_one_name, child_count
		FROM guests
		WHERE event_id = ?
		ORDER BY name, id`,
		eventID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.RosterEntry
	for rows.Next() {
		var (
			e           model.RosterEntry
			plusOneName sql.NullString
		)
		if err := rows.Scan(&e.GuestID, &e.Name, &e.PlusOneEnabled, &plusOneName, &e.ChildCount); err != nil {
			return nil, err
		}
		e.PlusOneName = plusOneName.String
		out = append(out, e)
	}
	return out, rows.Err()
}
