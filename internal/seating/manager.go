package seating

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/lhoska/venue-seating-planner/internal/model"
)

// PlanStore is the persistence collaborator the session manager talks to.
// It is implemented by the MySQL repository; the manager only ever reads
// whole documents and writes whole-plan patches through it.
type PlanStore interface {
	GetPlan(ctx context.Context, planID string) (*model.PlanDocument, error)
	ReplacePlan(ctx context.Context, doc *model.PlanDocument) error
	ConstraintsByPlan(ctx context.Context, planID string) ([]model.Constraint, error)
}

// SelectionStore remembers which plan a user currently has selected. A nil
// store is allowed; selection then lives only in process memory.
type SelectionStore interface {
	SetSelectedPlan(ctx context.Context, userID, planID string) error
	SelectedPlan(ctx context.Context, userID string) (string, error)
}

// FeedPublisher announces a flushed plan document on the change feed so
// other devices editing the same event can reconcile.
type FeedPublisher interface {
	PublishPlanUpdated(ctx context.Context, doc *model.PlanDocument, actorID string) error
}

// SessionManager owns the open editing sessions, one per plan. It replaces
// the ambient "current plan" pointer of older designs: SelectPlan returns
// an explicit handle and nothing else in the process holds global state.
type SessionManager struct {
	mu         sync.Mutex
	store      PlanStore
	selections SelectionStore // optional
	feed       FeedPublisher  // optional
	sessions   map[string]*Session
}

// NewSessionManager wires a manager to its collaborators. selections and
// feed may be nil.
func NewSessionManager(store PlanStore, selections SelectionStore, feed FeedPublisher) *SessionManager {
	return &SessionManager{
		store:      store,
		selections: selections,
		feed:       feed,
		sessions:   make(map[string]*Session),
	}
}

// SelectPlan loads the plan and its constraints, opens (or returns) the
// session for it and records it as the user's selected plan.
func (m *SessionManager) SelectPlan(ctx context.Context, userID, planID string) (*Session, error) {
	m.mu.Lock()
	sess, ok := m.sessions[planID]
	m.mu.Unlock()
	if !ok {
		doc, err := m.store.GetPlan(ctx, planID)
		if err != nil {
			return nil, err
		}
		constraints, err := m.store.ConstraintsByPlan(ctx, planID)
		if err != nil {
			return nil, err
		}
		sess = NewSession(doc, constraints)
		m.mu.Lock()
		// another request may have opened the session meanwhile
		if existing, race := m.sessions[planID]; race {
			sess = existing
		} else {
			m.sessions[planID] = sess
		}
		m.mu.Unlock()
	}
	if m.selections != nil && userID != "" {
		if err := m.selections.SetSelectedPlan(ctx, userID, planID); err != nil {
			log.Printf("sessions: recording selected plan %s for %s: %v", planID, userID, err)
		}
	}
	return sess, nil
}

// SelectedPlan reports the plan id the user last selected, or "" when
// nothing is recorded. Without a selection store the answer is always
// empty and the client has to select again.
func (m *SessionManager) SelectedPlan(ctx context.Context, userID string) (string, error) {
	if m.selections == nil {
		return "", nil
	}
	return m.selections.SelectedPlan(ctx, userID)
}

// Session returns the open session for a plan, or ErrPlanNotSelected when
// none is open.
func (m *SessionManager) Session(planID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[planID]
	if !ok {
		return nil, ErrPlanNotSelected
	}
	return sess, nil
}

// Close discards the open session for a plan, e.g. after the plan is
// deleted.
func (m *SessionManager) Close(planID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, planID)
}

// Flush writes the session's current document through the plan store and,
// on success, announces it on the change feed. A store failure comes back
// wrapped in ErrPersistence with the optimistic in-memory state left
// intact, so the caller can retry the flush without re-deriving the
// mutation. The flush is never retried silently here.
func (m *SessionManager) Flush(ctx context.Context, sess *Session, actorID string) error {
	doc := sess.Document()
	if err := m.store.ReplacePlan(ctx, doc); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if m.feed != nil {
		// feed delivery is best effort; the write of record already happened
		if err := m.feed.PublishPlanUpdated(ctx, doc, actorID); err != nil {
			log.Printf("sessions: publish plan.updated for %s: %v", doc.ID, err)
		}
	}
	return nil
}

// ApplyRemote reconciles an externally produced snapshot into the open
// session for that plan, if any. Plans without an open session need no
// reconciliation; they will be read fresh on the next SelectPlan.
func (m *SessionManager) ApplyRemote(doc *model.PlanDocument) {
	m.mu.Lock()
	sess, ok := m.sessions[doc.ID]
	m.mu.Unlock()
	if !ok {
		return
	}
	sess.ApplyRemote(doc)
	log.Printf("sessions: plan %s replaced by remote snapshot", doc.ID)
}
