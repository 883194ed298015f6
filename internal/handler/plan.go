package handler // plan lifecycle endpoints

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lhoska/venue-seating-planner/internal/model"
	"github.com/lhoska/venue-seating-planner/internal/repository"
)

// CreatePlan handles POST /v1/plans and creates an empty seating plan for
// an event. Duplicate plan names within an event are allowed; plans are
// addressed by id, never by name.
func (h *PlannerHandler) CreatePlan(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	var body struct {
		EventID     string `json:"eventId"`
		Name        string `json:"name"`
		Description string `json:"description"`
		VenueLayout string `json:"venueLayout"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if strings.TrimSpace(body.EventID) == "" || strings.TrimSpace(body.Name) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "eventId and name are required"})
	}
	now := time.Now()
	doc := &model.PlanDocument{SeatingPlan: model.SeatingPlan{
		ID:          model.MintID("plan"),
		EventID:     strings.TrimSpace(body.EventID),
		Name:        strings.TrimSpace(body.Name),
		Description: strings.TrimSpace(body.Description),
		VenueLayout: strings.TrimSpace(body.VenueLayout),
		CreatedAt:   now,
		UpdatedAt:   now,
		CreatedBy:   userID,
	}}
	if err := h.Plans.Create(c.Request().Context(), doc); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not create plan"})
	}
	return c.JSON(http.StatusCreated, doc.SeatingPlan)
}

// ListPlans handles GET /v1/events/:eventId/plans and returns the plan
// headers for an event, newest first.
func (h *PlannerHandler) ListPlans(c echo.Context) error {
	plans, err := h.Plans.ListByEvent(c.Request().Context(), c.Param("eventId"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	if plans == nil {
		plans = []model.SeatingPlan{}
	}
	return c.JSON(http.StatusOK, plans)
}

// GetPlan handles GET /v1/plans/:id and returns the whole plan document,
// surfaces and seats included. Reads go through the repository (and its
// snapshot cache), not the editing session, so a plan can be inspected
// without selecting it.
func (h *PlannerHandler) GetPlan(c echo.Context) error {
	doc, err := h.Plans.GetPlan(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err == repository.ErrPlanNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "plan not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, doc)
}

// SelectPlan handles POST /v1/plans/:id/select. Selection opens the
// editing session every mutating endpoint requires and records the plan as
// the user's current one.
func (h *PlannerHandler) SelectPlan(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	sess, err := h.Sessions.SelectPlan(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return seatingError(c, err)
	}
	return c.JSON(http.StatusOK, sess.Plan())
}

// SelectedPlan handles GET /v1/plans/selected and reports which plan the
// caller last selected. The pointer lives in Redis, so it survives
// restarts when Redis is up; with the cache down the answer is empty and
// the client selects again.
func (h *PlannerHandler) SelectedPlan(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	planID, err := h.Sessions.SelectedPlan(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "selection lookup failed"})
	}
	if planID == "" {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no plan selected"})
	}
	return c.JSON(http.StatusOK, map[string]string{"planId": planID})
}

// UpdatePlan handles PATCH /v1/plans/:id and patches plan header fields.
// Requires an open session owned by the caller; absent fields stay
// untouched.
func (h *PlannerHandler) UpdatePlan(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	sess, err := h.session(c)
	if err != nil {
		return seatingError(c, err)
	}
	if sess.Plan().CreatedBy != userID {
		return seatingError(c, repository.ErrForbidden)
	}
	var body struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		VenueLayout *string `json:"venueLayout"`
		IsPublished *bool   `json:"isPublished"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if body.Name != nil && strings.TrimSpace(*body.Name) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name must not be empty"})
	}
	plan := sess.UpdateMeta(body.Name, body.Description, body.VenueLayout, body.IsPublished)
	if err := h.flush(c, sess); err != nil {
		return seatingError(c, err)
	}
	return c.JSON(http.StatusOK, plan)
}

// ActivatePlan handles POST /v1/plans/:id/activate. Exactly one plan per
// event is active; activating this one deactivates the others. Only the
// plan's creator may publish it.
func (h *PlannerHandler) ActivatePlan(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	planID := c.Param("id")
	doc, err := h.Plans.GetPlan(c.Request().Context(), planID)
	if err != nil {
		if err == repository.ErrPlanNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "plan not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	if doc.CreatedBy != userID {
		return seatingError(c, repository.ErrForbidden)
	}
	if err := h.Plans.Activate(c.Request().Context(), doc.EventID, planID); err != nil {
		return seatingError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "active", "planId": planID})
}

// DeletePlan handles DELETE /v1/plans/:id. Only the creator may delete a
// plan; the plan, its surfaces, seats and constraints are removed and any
// open session is discarded.
func (h *PlannerHandler) DeletePlan(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	planID := c.Param("id")
	doc, err := h.Plans.GetPlan(c.Request().Context(), planID)
	if err != nil {
		if err == repository.ErrPlanNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "plan not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	if doc.CreatedBy != userID {
		return seatingError(c, repository.ErrForbidden)
	}
	if err := h.Plans.Delete(c.Request().Context(), planID); err != nil {
		return seatingError(c, err)
	}
	h.Sessions.Close(planID)
	return c.NoContent(http.StatusNoContent)
}
