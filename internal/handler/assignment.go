package handler // manual seat assignment endpoints

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// AssignSeat handles POST /v1/plans/:id/assignments and seats one occupant
// on one specific seat. Assigning over a different occupant is a conflict;
// there is no implicit move or swap on this endpoint.
func (h *PlannerHandler) AssignSeat(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return seatingError(c, err)
	}
	var body struct {
		OccupantID string `json:"occupantId"`
		SeatID     string `json:"seatId"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := sess.Assign(body.OccupantID, body.SeatID); err != nil {
		return seatingError(c, err)
	}
	if err := h.flush(c, sess); err != nil {
		return seatingError(c, err)
	}
	seat, err := sess.Seat(body.SeatID)
	if err != nil {
		return seatingError(c, err)
	}
	return c.JSON(http.StatusOK, seat)
}

// UnassignSeat handles DELETE /v1/plans/:id/seats/:seatId/occupant and
// clears a seat. Clearing an already empty seat succeeds with nothing
// cleared. A primary guest takes their plus-one with them; the response
// lists everyone who lost a seat.
func (h *PlannerHandler) UnassignSeat(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return seatingError(c, err)
	}
	cleared, err := sess.Unassign(c.Param("seatId"))
	if err != nil {
		return seatingError(c, err)
	}
	if err := h.flush(c, sess); err != nil {
		return seatingError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"cleared": cleared})
}

// SwapSeats handles POST /v1/plans/:id/swap and exchanges the occupants of
// two seats atomically, including the case where one side is empty.
func (h *PlannerHandler) SwapSeats(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return seatingError(c, err)
	}
	var body struct {
		SeatA string `json:"seatA"`
		SeatB string `json:"seatB"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if body.SeatA == "" || body.SeatB == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "seatA and seatB are required"})
	}
	if err := sess.Swap(body.SeatA, body.SeatB); err != nil {
		return seatingError(c, err)
	}
	if err := h.flush(c, sess); err != nil {
		return seatingError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteSeat handles DELETE /v1/plans/:id/seats/:seatId and removes one
// seat outright, distinct from shrinking its surface.
func (h *PlannerHandler) DeleteSeat(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return seatingError(c, err)
	}
	displaced, err := sess.DeleteSeat(c.Param("seatId"))
	if err != nil {
		return seatingError(c, err)
	}
	if err := h.flush(c, sess); err != nil {
		return seatingError(c, err)
	}
	resp := map[string]interface{}{}
	if displaced != "" {
		resp["displaced"] = displaced
	}
	return c.JSON(http.StatusOK, resp)
}
