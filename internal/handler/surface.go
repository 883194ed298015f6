package handler // surface (table and chair row) endpoints

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lhoska/venue-seating-planner/internal/model"
	"github.com/lhoska/venue-seating-planner/internal/seating"
)

// surfaceResponse wraps a created or patched surface together with the
// occupants a capacity change displaced. Displaced occupants lose their
// seat but stay on the roster; the client decides where they go next.
type surfaceResponse struct {
	Surface   interface{} `json:"surface"`
	Displaced []string    `json:"displaced,omitempty"`
}

// CreateTable handles POST /v1/plans/:id/tables and creates a table with
// its full complement of seats, numbered from 1.
func (h *PlannerHandler) CreateTable(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return seatingError(c, err)
	}
	var body struct {
		Name      string         `json:"name"`
		Shape     string         `json:"shape"`
		Size      float64        `json:"size"`
		Capacity  int            `json:"capacity"`
		Position  model.Position `json:"position"`
		Rotation  float64        `json:"rotation"`
		HeadSeats int            `json:"headSeats"`
		SeatSides string         `json:"seatSides"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if strings.TrimSpace(body.Name) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name is required"})
	}
	table, err := sess.CreateTable(seating.TableSpec{
		Name:      strings.TrimSpace(body.Name),
		Shape:     body.Shape,
		Size:      body.Size,
		Capacity:  body.Capacity,
		Position:  body.Position,
		Rotation:  body.Rotation,
		HeadSeats: body.HeadSeats,
		SeatSides: body.SeatSides,
	})
	if err != nil {
		return seatingError(c, err)
	}
	if err := h.flush(c, sess); err != nil {
		return seatingError(c, err)
	}
	return c.JSON(http.StatusCreated, table)
}

// UpdateTable handles PATCH /v1/plans/:id/tables/:tableId. Shrinking the
// capacity removes the highest-numbered seats; their occupants come back
// in the response as displaced.
func (h *PlannerHandler) UpdateTable(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return seatingError(c, err)
	}
	var body struct {
		Name      *string         `json:"name"`
		Shape     *string         `json:"shape"`
		Size      *float64        `json:"size"`
		Capacity  *int            `json:"capacity"`
		Position  *model.Position `json:"position"`
		Rotation  *float64        `json:"rotation"`
		HeadSeats *int            `json:"headSeats"`
		SeatSides *string         `json:"seatSides"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	table, displaced, err := sess.UpdateTable(c.Param("tableId"), seating.TablePatch{
		Name:      body.Name,
		Shape:     body.Shape,
		Size:      body.Size,
		Capacity:  body.Capacity,
		Position:  body.Position,
		Rotation:  body.Rotation,
		HeadSeats: body.HeadSeats,
		SeatSides: body.SeatSides,
	})
	if err != nil {
		return seatingError(c, err)
	}
	if err := h.flush(c, sess); err != nil {
		return seatingError(c, err)
	}
	return c.JSON(http.StatusOK, surfaceResponse{Surface: table, Displaced: displaced})
}

// CreateChairRow handles POST /v1/plans/:id/chair-rows for ceremony-style
// straight rows of chairs.
func (h *PlannerHandler) CreateChairRow(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return seatingError(c, err)
	}
	var body struct {
		Name        string         `json:"name"`
		ChairCount  int            `json:"chairCount"`
		Orientation string         `json:"orientation"`
		Position    model.Position `json:"position"`
		Rotation    float64        `json:"rotation"`
		Spacing     float64        `json:"spacing"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if strings.TrimSpace(body.Name) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name is required"})
	}
	row, err := sess.CreateChairRow(seating.ChairRowSpec{
		Name:        strings.TrimSpace(body.Name),
		ChairCount:  body.ChairCount,
		Orientation: body.Orientation,
		Position:    body.Position,
		Rotation:    body.Rotation,
		Spacing:     body.Spacing,
	})
	if err != nil {
		return seatingError(c, err)
	}
	if err := h.flush(c, sess); err != nil {
		return seatingError(c, err)
	}
	return c.JSON(http.StatusCreated, row)
}

// UpdateChairRow handles PATCH /v1/plans/:id/chair-rows/:rowId.
func (h *PlannerHandler) UpdateChairRow(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return seatingError(c, err)
	}
	var body struct {
		Name        *string         `json:"name"`
		ChairCount  *int            `json:"chairCount"`
		Orientation *string         `json:"orientation"`
		Position    *model.Position `json:"position"`
		Rotation    *float64        `json:"rotation"`
		Spacing     *float64        `json:"spacing"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	row, displaced, err := sess.UpdateChairRow(c.Param("rowId"), seating.ChairRowPatch{
		Name:        body.Name,
		ChairCount:  body.ChairCount,
		Orientation: body.Orientation,
		Position:    body.Position,
		Rotation:    body.Rotation,
		Spacing:     body.Spacing,
	})
	if err != nil {
		return seatingError(c, err)
	}
	if err := h.flush(c, sess); err != nil {
		return seatingError(c, err)
	}
	return c.JSON(http.StatusOK, surfaceResponse{Surface: row, Displaced: displaced})
}

// DeleteSurface handles DELETE /v1/plans/:id/surfaces/:surfaceId for both
// tables and chair rows. Every seat on the surface goes with it; the
// displaced occupants are reported, not silently dropped.
func (h *PlannerHandler) DeleteSurface(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return seatingError(c, err)
	}
	displaced, err := sess.DeleteSurface(c.Param("surfaceId"))
	if err != nil {
		return seatingError(c, err)
	}
	if err := h.flush(c, sess); err != nil {
		return seatingError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"displaced": displaced})
}

// MoveSurface handles POST /v1/plans/:id/surfaces/:surfaceId/move and
// repositions a surface on the floor plan without touching occupancy.
func (h *PlannerHandler) MoveSurface(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return seatingError(c, err)
	}
	var body struct {
		Position model.Position `json:"position"`
		Rotation *float64       `json:"rotation"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := sess.MoveSurface(c.Param("surfaceId"), body.Position, body.Rotation); err != nil {
		return seatingError(c, err)
	}
	if err := h.flush(c, sess); err != nil {
		return seatingError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
