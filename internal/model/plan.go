package model

import "time"

// SeatingPlan is the root aggregate for one event's seating layout.
// A plan owns all surfaces (tables and chair rows) and their seats.
// Several draft plans may exist for the same event, but at most one
// of them is active for guest-facing publication at a time.
//
// Fields:
//  ID             – primary key identifier (string, "plan_..." prefix).
//  EventID        – event this plan belongs to.
//  Name           – human readable plan name.
//  Description    – optional free-form description.
//  VenueLayout    – reference to the venue layout the plan was drawn on.
//  IsActive       – whether this is the event's active plan.
//  IsPublished    – whether the plan is visible to guests.
//  TotalSeats     – aggregate count of all seats in the plan.
//  AssignedSeats  – count of seats with an occupant.
//  AvailableSeats – count of seats that are neither occupied nor reserved.
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
//  CreatedBy      – user id of the plan owner.
type SeatingPlan struct {
	ID             string    `json:"id"`
	EventID        string    `json:"eventId"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	VenueLayout    string    `json:"venueLayout,omitempty"`
	IsActive       bool      `json:"isActive"`
	IsPublished    bool      `json:"isPublished"`
	TotalSeats     int       `json:"totalSeats"`
	AssignedSeats  int       `json:"assignedSeats"`
	AvailableSeats int       `json:"availableSeats"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	CreatedBy      string    `json:"createdBy"`
}

// SeatingStats summarizes occupancy for a plan. Derived on demand from
// the seat graph; never persisted.
type SeatingStats struct {
	TotalTables          int `json:"totalTables"`
	TotalChairRows       int `json:"totalChairRows"`
	TotalSeats           int `json:"totalSeats"`
	AssignedSeats        int `json:"assignedSeats"`
	AvailableSeats       int `json:"availableSeats"`
	OccupancyRate        int `json:"occupancyRate"` // percentage, 0-100
	SatisfiedConstraints int `json:"satisfiedConstraints"`
	ViolatedConstraints  int `json:"violatedConstraints"`
}
