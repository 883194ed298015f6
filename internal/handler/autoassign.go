package handler // solver and read-model endpoints

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lhoska/venue-seating-planner/internal/model"
	"github.com/lhoska/venue-seating-planner/internal/seating"
)

// AutoAssign handles POST /v1/plans/:id/auto-assign. The solver fills the
// unseated roster into open seats, honoring active constraints as well as
// it can, and reports what it could not place or satisfy. Already seated
// occupants are never moved.
func (h *PlannerHandler) AutoAssign(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return seatingError(c, err)
	}
	var body seating.AutoAssignOptions
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	parties, err := h.parties(c, sess)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not load roster"})
	}
	result, err := sess.AutoAssign(parties, body)
	if err != nil {
		return seatingError(c, err)
	}
	if err := h.flush(c, sess); err != nil {
		return seatingError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// ListUnassigned handles GET /v1/plans/:id/unassigned and returns the
// occupant ids from the roster that currently hold no seat.
func (h *PlannerHandler) ListUnassigned(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return seatingError(c, err)
	}
	parties, err := h.parties(c, sess)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not load roster"})
	}
	unassigned := sess.UnassignedOccupants(parties)
	if unassigned == nil {
		unassigned = []string{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"unassigned": unassigned})
}

// SurfaceOccupancy handles GET /v1/plans/:id/surfaces/:surfaceId/occupancy
// and returns one surface's fill rate as a whole percentage.
func (h *PlannerHandler) SurfaceOccupancy(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return seatingError(c, err)
	}
	pct, err := sess.SurfaceOccupancy(c.Param("surfaceId"))
	if err != nil {
		return seatingError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int{"occupancy": pct})
}

// PlanStats handles GET /v1/plans/:id/stats and summarizes the plan for
// dashboards.
func (h *PlannerHandler) PlanStats(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return seatingError(c, err)
	}
	return c.JSON(http.StatusOK, sess.Stats())
}

// parties expands the event's guest roster into seatable parties.
func (h *PlannerHandler) parties(c echo.Context, sess *seating.Session) ([]model.Party, error) {
	entries, err := h.Roster.ListByEvent(c.Request().Context(), sess.Plan().EventID)
	if err != nil {
		return nil, err
	}
	return model.ExpandRoster(entries), nil
}
