// Package queue defines message payloads exchanged over the message broker
// and the background consumer that reconciles remote plan edits.
package queue

import (
	"time"

	"github.com/lhoska/venue-seating-planner/internal/model"
)

// PlanFeedExchange is the fanout exchange carrying plan snapshots. Every
// planner instance editing an event publishes here after a successful
// flush; each instance binds its own exclusive queue so every snapshot
// reaches every peer, not just one competing consumer.
const PlanFeedExchange = "seating.plan.updated"

// PlanUpdatedEvent is published after a plan document is written to the
// database. It carries the whole document so consumers can reconcile
// last-write-wins without querying the primary database.
type PlanUpdatedEvent struct {
	PlanID    string              `json:"plan_id"`
	EventID   string              `json:"event_id"`
	ActorID   string              `json:"actor_id"`
	Origin    string              `json:"origin"` // publishing instance, so it can skip its own messages
	UpdatedAt time.Time           `json:"updated_at"`
	Plan      *model.PlanDocument `json:"plan"`
}
