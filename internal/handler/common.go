package handler // handler defines http handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lhoska/venue-seating-planner/internal/model"
	"github.com/lhoska/venue-seating-planner/internal/repository"
	"github.com/lhoska/venue-seating-planner/internal/seating"
)

// PlanStore is the subset of the plan repository the handlers call
// directly. The session manager holds its own, wider view of the same
// repository; handlers only create, read, activate and delete.
type PlanStore interface {
	Create(ctx context.Context, doc *model.PlanDocument) error
	GetPlan(ctx context.Context, planID string) (*model.PlanDocument, error)
	ListByEvent(ctx context.Context, eventID string) ([]model.SeatingPlan, error)
	Activate(ctx context.Context, eventID, planID string) error
	Delete(ctx context.Context, planID string) error
}

// ConstraintStore persists constraint rows alongside the session's staged
// copy.
type ConstraintStore interface {
	Create(ctx context.Context, c *model.Constraint) error
	Delete(ctx context.Context, planID, constraintID string) error
}

// RosterStore supplies the guest roster for an event.
type RosterStore interface {
	ListByEvent(ctx context.Context, eventID string) ([]model.RosterEntry, error)
}

// PlannerHandler bundles the collaborators for all planner endpoints.
type PlannerHandler struct {
	Plans       PlanStore
	Constraints ConstraintStore
	Roster      RosterStore
	Sessions    *seating.SessionManager
}

// NewPlannerHandler constructs a PlannerHandler and panics if any
// dependency is nil.
func NewPlannerHandler(plans PlanStore, constraints ConstraintStore, roster RosterStore, sessions *seating.SessionManager) *PlannerHandler {
	if plans == nil || constraints == nil || roster == nil || sessions == nil {
		panic("nil dependency passed to NewPlannerHandler")
	}
	return &PlannerHandler{Plans: plans, Constraints: constraints, Roster: roster, Sessions: sessions}
}

// getUserID extracts the user_id the JWT middleware stored in the context.
func getUserID(c echo.Context) (string, error) {
	if id, ok := c.Get("user_id").(string); ok && id != "" {
		return id, nil
	}
	return "", errors.New("invalid user_id in context")
}

// session resolves the :id path parameter to the open editing session for
// that plan. Operating on a plan that was never selected is a 409, not a
// 404: the plan may well exist, the caller just has no session for it.
func (h *PlannerHandler) session(c echo.Context) (*seating.Session, error) {
	return h.Sessions.Session(c.Param("id"))
}

// flush writes the session's staged document through to storage and the
// change feed. On failure the staged state stays in memory so the caller
// can retry the same mutation.
func (h *PlannerHandler) flush(c echo.Context, sess *seating.Session) error {
	userID, _ := getUserID(c)
	return h.Sessions.Flush(c.Request().Context(), sess, userID)
}

// seatingError maps domain and repository sentinels onto HTTP responses.
// Anything unrecognized is a 500 with a generic message; the real error
// has already been logged closer to where it happened.
func seatingError(c echo.Context, err error) error {
	var status int
	switch {
	case errors.Is(err, seating.ErrPlanNotSelected),
		errors.Is(err, seating.ErrSeatOccupied),
		errors.Is(err, seating.ErrOccupantSeated):
		status = http.StatusConflict
	case errors.Is(err, seating.ErrSeatNotFound),
		errors.Is(err, seating.ErrSurfaceNotFound),
		errors.Is(err, seating.ErrConstraintNotFound),
		errors.Is(err, repository.ErrPlanNotFound),
		errors.Is(err, repository.ErrConstraintNotFound):
		status = http.StatusNotFound
	case errors.Is(err, seating.ErrInvalidSurface),
		errors.Is(err, seating.ErrInvalidConstraint),
		errors.Is(err, seating.ErrInvalidOccupant):
		status = http.StatusBadRequest
	case errors.Is(err, repository.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, seating.ErrPersistence):
		status = http.StatusBadGateway
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	return c.JSON(status, map[string]string{"error": err.Error()})
}
