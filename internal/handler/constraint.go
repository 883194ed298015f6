package handler // constraint endpoints

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lhoska/venue-seating-planner/internal/model"
)

// AddConstraint handles POST /v1/plans/:id/constraints. The constraint is
// staged in the session and persisted in its own table; it binds occupant
// ids, never seats, so it survives any amount of reseating.
func (h *PlannerHandler) AddConstraint(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return seatingError(c, err)
	}
	var body struct {
		Type      string   `json:"type"`
		MemberIDs []string `json:"memberIds"`
		Weight    int      `json:"weight"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	constraint := model.Constraint{
		ID:        model.MintID("constraint"),
		PlanID:    sess.PlanID(),
		Type:      model.ConstraintType(body.Type),
		MemberIDs: body.MemberIDs,
		Weight:    body.Weight,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	if err := sess.AddConstraint(constraint); err != nil {
		return seatingError(c, err)
	}
	if err := h.Constraints.Create(c.Request().Context(), &constraint); err != nil {
		// roll the staged copy back so memory and storage agree
		_ = sess.RemoveConstraint(constraint.ID)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not store constraint"})
	}
	return c.JSON(http.StatusCreated, constraint)
}

// RemoveConstraint handles DELETE /v1/plans/:id/constraints/:constraintId.
func (h *PlannerHandler) RemoveConstraint(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return seatingError(c, err)
	}
	constraintID := c.Param("constraintId")
	if err := h.Constraints.Delete(c.Request().Context(), sess.PlanID(), constraintID); err != nil {
		return seatingError(c, err)
	}
	if err := sess.RemoveConstraint(constraintID); err != nil {
		return seatingError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListConstraints handles GET /v1/plans/:id/constraints and returns the
// plan's active constraints.
func (h *PlannerHandler) ListConstraints(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return seatingError(c, err)
	}
	constraints := sess.ActiveConstraints()
	if constraints == nil {
		constraints = []model.Constraint{}
	}
	return c.JSON(http.StatusOK, constraints)
}

// ValidateConstraints handles GET /v1/plans/:id/constraints/validate and
// evaluates every active constraint against the current assignment.
// Validation never mutates anything; a violated constraint is a report,
// not an error.
func (h *PlannerHandler) ValidateConstraints(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return seatingError(c, err)
	}
	results := sess.ValidateConstraints()
	satisfied := 0
	for _, r := range results {
		if r.Satisfied {
			satisfied++
		}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"results":   results,
		"satisfied": satisfied,
		"violated":  len(results) - satisfied,
	})
}
