package model

import "time"

// PlanDocument is the persisted shape of a whole seating plan: the plan
// header plus its surfaces and seats, with table seats and chair-row seats
// kept in separate arrays. Updates replace the named arrays wholesale
// (shallow replace, never a recursive merge) so that a patch can be applied
// atomically by the repository.
type PlanDocument struct {
	SeatingPlan
	Tables     []Table    `json:"tables"`
	Seats      []Seat     `json:"seats"`
	ChairRows  []ChairRow `json:"chairRows"`
	ChairSeats []Seat     `json:"chairSeats"`
}

// AllSeats returns table seats and chair seats as one slice, table seats
// first. The split arrays exist only in the persisted shape.
func (d *PlanDocument) AllSeats() []Seat {
	out := make([]Seat, 0, len(d.Seats)+len(d.ChairSeats))
	out = append(out, d.Seats...)
	out = append(out, d.ChairSeats...)
	return out
}

// Recount refreshes the aggregate seat counters from the seat arrays.
func (d *PlanDocument) Recount(now time.Time) {
	total, assigned, available := 0, 0, 0
	for _, s := range d.AllSeats() {
		total++
		switch {
		case s.Occupied():
			assigned++
		case !s.IsReserved:
			available++
		}
	}
	d.TotalSeats = total
	d.AssignedSeats = assigned
	d.AvailableSeats = available
	d.UpdatedAt = now
}
