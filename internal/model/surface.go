package model

import "time"

// SurfaceKind discriminates the two seat-bearing object types that can be
// placed on the venue canvas.
type SurfaceKind string

const (
	SurfaceTable    SurfaceKind = "table"
	SurfaceChairRow SurfaceKind = "chairRow"
)

// Table shapes accepted by the planner.
const (
	ShapeRound       = "round"
	ShapeRectangular = "rectangular"
	ShapeOval        = "oval"
	ShapeCustom      = "custom"
)

// Chair row orientations.
const (
	OrientationHorizontal = "horizontal"
	OrientationVertical   = "vertical"
)

// Position is a 2-D point on the venue canvas.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Surface is the common view of any seat-bearing object in a plan.
// Both *Table and *ChairRow implement it.
type Surface interface {
	SurfaceID() string
	SurfaceKind() SurfaceKind
	SurfaceName() string
	SeatCapacity() int
}

// Table is a round or rectangular dining table placed on the canvas.
// Each table owns capacity seats numbered 1..capacity.
//
// Fields:
//  ID        – primary key identifier ("table_..." prefix).
//  PlanID    – owning seating plan.
//  Name      – display label, e.g. "Table 1" or "Family".
//  Shape     – round, rectangular, oval or custom.
//  Size      – visual diameter/edge length in canvas units.
//  Capacity  – number of seats the table bears.
//  Position  – 2-D placement on the canvas.
//  Rotation  – rotation in degrees.
//  HeadSeats – how many seats sit at the heads of a rectangular table.
//  SeatSides – which long sides bear seats ("both", "left", "right").
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Table struct {
	ID        string    `json:"id"`
	PlanID    string    `json:"planId"`
	Name      string    `json:"name"`
	Shape     string    `json:"shape"`
	Size      float64   `json:"size"`
	Capacity  int       `json:"capacity"`
	Position  Position  `json:"position"`
	Rotation  float64   `json:"rotation"`
	HeadSeats int       `json:"headSeats,omitempty"`
	SeatSides string    `json:"seatSides,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (t *Table) SurfaceID() string        { return t.ID }
func (t *Table) SurfaceKind() SurfaceKind { return SurfaceTable }
func (t *Table) SurfaceName() string      { return t.Name }
func (t *Table) SeatCapacity() int        { return t.Capacity }

// ChairRow is a straight row of free-standing chairs, used for ceremony
// style seating. Its chair count plays the role of table capacity.
//
// Fields:
//  ID          – primary key identifier ("row_..." prefix).
//  PlanID      – owning seating plan.
//  Name        – display label, e.g. "Row A".
//  ChairCount  – number of chairs in the row.
//  Orientation – horizontal or vertical on the canvas.
//  Position    – 2-D placement of the row origin.
//  Rotation    – rotation in degrees.
//  Spacing     – gap between neighbouring chairs in canvas units.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type ChairRow struct {
	ID          string    `json:"id"`
	PlanID      string    `json:"planId"`
	Name        string    `json:"name"`
	ChairCount  int       `json:"chairCount"`
	Orientation string    `json:"orientation"`
	Position    Position  `json:"position"`
	Rotation    float64   `json:"rotation"`
	Spacing     float64   `json:"spacing"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (r *ChairRow) SurfaceID() string        { return r.ID }
func (r *ChairRow) SurfaceKind() SurfaceKind { return SurfaceChairRow }
func (r *ChairRow) SurfaceName() string      { return r.Name }
func (r *ChairRow) SeatCapacity() int        { return r.ChairCount }
