package repository

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lhoska/venue-seating-planner/internal/model"
)

// PlanCache keeps JSON snapshots of plan documents in Redis, plus the
// per-user "currently selected plan" pointer. Both are conveniences: every
// method on a nil cache (or one whose Redis connection failed at startup)
// degrades to a miss or a no-op, and cache errors are logged, never
// propagated. MySQL stays the source of truth.
type PlanCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewPlanCache wraps a Redis client. rdb may be nil.
func NewPlanCache(rdb *redis.Client, ttl time.Duration) *PlanCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &PlanCache{rdb: rdb, ttl: ttl}
}

func (c *PlanCache) disabled() bool { return c == nil || c.rdb == nil }

func planKey(planID string) string { return "seating:plan:" + planID }

func selectionKey(userID string) string { return "seating:selected:" + userID }

// Get returns the cached document for a plan, if present.
func (c *PlanCache) Get(ctx context.Context, planID string) (*model.PlanDocument, bool) {
	if c.disabled() {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, planKey(planID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("plancache: get %s: %v", planID, err)
		}
		return nil, false
	}
	var doc model.PlanDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		log.Printf("plancache: decode %s: %v", planID, err)
		return nil, false
	}
	return &doc, true
}

// Set stores a document snapshot with the configured TTL.
func (c *PlanCache) Set(ctx context.Context, doc *model.PlanDocument) {
	if c.disabled() || doc == nil {
		return
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		log.Printf("plancache: encode %s: %v", doc.ID, err)
		return
	}
	if err := c.rdb.Set(ctx, planKey(doc.ID), raw, c.ttl).Err(); err != nil {
		log.Printf("plancache: set %s: %v", doc.ID, err)
	}
}

// Invalidate drops a cached snapshot.
func (c *PlanCache) Invalidate(ctx context.Context, planID string) {
	if c.disabled() {
		return
	}
	if err := c.rdb.Del(ctx, planKey(planID)).Err(); err != nil {
		log.Printf("plancache: invalidate %s: %v", planID, err)
	}
}

// SetSelectedPlan records which plan the user is editing. The pointer has
// no TTL; selecting another plan overwrites it.
func (c *PlanCache) SetSelectedPlan(ctx context.Context, userID, planID string) error {
	if c.disabled() {
		return nil
	}
	return c.rdb.Set(ctx, selectionKey(userID), planID, 0).Err()
}

// SelectedPlan returns the user's selected plan id, or "" when none is
// recorded.
func (c *PlanCache) SelectedPlan(ctx context.Context, userID string) (string, error) {
	if c.disabled() {
		return "", nil
	}
	id, err := c.rdb.Get(ctx, selectionKey(userID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	return id, err
}
