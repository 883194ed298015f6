package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/lhoska/venue-seating-planner/internal/handler"
	"github.com/lhoska/venue-seating-planner/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check,
// used by load balancers and monitoring systems.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterPlanner registers all planner endpoints under /v1.  Every route
// requires a valid JWT with the PLANNER role; tokens are issued elsewhere
// and only verified here.
func RegisterPlanner(e *echo.Echo, p *handler.PlannerHandler, jwtSecret string) {
	// Attach middlewares at group construction time for clarity.
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("PLANNER"),
	)

	// ---- Plan lifecycle ----
	g.POST("/plans", p.CreatePlan)
	g.GET("/events/:eventId/plans", p.ListPlans)
	// Static route; echo matches it ahead of /plans/:id.
	g.GET("/plans/selected", p.SelectedPlan)
	g.GET("/plans/:id", p.GetPlan)
	g.PATCH("/plans/:id", p.UpdatePlan)
	g.DELETE("/plans/:id", p.DeletePlan)
	g.POST("/plans/:id/activate", p.ActivatePlan)
	// Selecting opens the editing session every mutating endpoint below
	// requires; operating on an unselected plan yields 409.
	g.POST("/plans/:id/select", p.SelectPlan)

	// ---- Surfaces ----
	g.POST("/plans/:id/tables", p.CreateTable)
	g.PATCH("/plans/:id/tables/:tableId", p.UpdateTable)
	g.POST("/plans/:id/chair-rows", p.CreateChairRow)
	g.PATCH("/plans/:id/chair-rows/:rowId", p.UpdateChairRow)
	g.DELETE("/plans/:id/surfaces/:surfaceId", p.DeleteSurface)
	g.POST("/plans/:id/surfaces/:surfaceId/move", p.MoveSurface)

	// ---- Manual assignment ----
	g.POST("/plans/:id/assignments", p.AssignSeat)
	g.DELETE("/plans/:id/seats/:seatId/occupant", p.UnassignSeat)
	g.POST("/plans/:id/swap", p.SwapSeats)
	g.DELETE("/plans/:id/seats/:seatId", p.DeleteSeat)

	// ---- Constraints ----
	g.POST("/plans/:id/constraints", p.AddConstraint)
	g.DELETE("/plans/:id/constraints/:constraintId", p.RemoveConstraint)
	g.GET("/plans/:id/constraints", p.ListConstraints)
	g.GET("/plans/:id/constraints/validate", p.ValidateConstraints)

	// ---- Solver and read models ----
	g.POST("/plans/:id/auto-assign", p.AutoAssign)
	g.GET("/plans/:id/unassigned", p.ListUnassigned)
	g.GET("/plans/:id/surfaces/:surfaceId/occupancy", p.SurfaceOccupancy)
	g.GET("/plans/:id/stats", p.PlanStats)
}
