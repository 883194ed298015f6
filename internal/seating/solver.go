package seating

import (
	"fmt"
	"sort"

	"github.com/lhoska/venue-seating-planner/internal/model"
)

// Auto-assignment: greedy constraint-weighted bin-packing. The solver is a
// pure computation over a snapshot of (unseated parties, open seats, active
// constraints, existing assignments); the resulting placements are applied
// through the ordinary Assign primitive so every invariant is reused rather
// than duplicated. Finding the minimum-violation assignment is NP-hard (the
// must-not-sit-together edges alone subsume graph coloring), so the solver
// trades optimality for determinism, explainability and O(units × surfaces)
// running time, cheap enough to re-run interactively after every edit.

const reasonNoCapacity = "no surface with sufficient remaining capacity for party size"

// AutoAssignOptions tunes one solver run.
type AutoAssignOptions struct {
	// PrioritizeFamilies keeps a primary guest and their children in one
	// placement unit.
	PrioritizeFamilies bool `json:"prioritizeFamilies"`
	// KeepCouplesTogether keeps a primary guest and their plus-one in one
	// placement unit.
	KeepCouplesTogether bool `json:"keepCouplesTogether"`
	// MaxTableSize caps how many occupants a single surface may end up
	// with, overriding raw capacity. Zero means no cap.
	MaxTableSize int `json:"maxTableSize"`
}

// SeatAssignment is one (occupant, seat) pair produced by the solver.
type SeatAssignment struct {
	OccupantID string `json:"occupantId"`
	SeatID     string `json:"seatId"`
	SurfaceID  string `json:"surfaceId"`
}

// UnplacedOccupant names an occupant the solver could not seat and why.
type UnplacedOccupant struct {
	OccupantID string `json:"occupantId"`
	Reason     string `json:"reason"`
}

// AutoAssignResult reports a completed solver run.
type AutoAssignResult struct {
	Success             bool               `json:"success"`
	Placed              int                `json:"placed"`
	Unplaced            int                `json:"unplaced"`
	Assignments         []SeatAssignment   `json:"assignments"`
	UnplacedOccupants   []UnplacedOccupant `json:"unplacedOccupants,omitempty"`
	ViolatedConstraints []model.Constraint `json:"violatedConstraints,omitempty"`
	Suggestions         []string           `json:"suggestions,omitempty"`
}

// placementUnit is what the solver actually packs: an individual, a party,
// or a must-sit-together cluster of parties merged into one.
type placementUnit struct {
	members []string // seat-order: primary before plus-one before children
	minID   string   // smallest member id, for deterministic ordering
}

// surfaceState tracks one surface during the packing loop.
type surfaceState struct {
	id       string
	name     string
	open     []model.Seat // open seats ordered by position
	occupied int          // occupants already seated before the run
	planned  []string     // occupants placed here during this run
	seated   []string     // occupied ∪ planned occupant ids
}

func (st *surfaceState) remaining() int { return len(st.open) }

// usable returns how many more occupants this surface may take under the
// optional max-table-size override.
func (st *surfaceState) usable(maxSize int) int {
	n := st.remaining()
	if maxSize > 0 {
		if allowed := maxSize - st.occupied - len(st.planned); allowed < n {
			n = allowed
		}
	}
	if n < 0 {
		return 0
	}
	return n
}

// AutoAssign fills unseated roster members into open seats, minimizing
// constraint violations per the packing strategy above, then commits the
// placements through Assign and reports what is still violated.
func (s *Session) AutoAssign(parties []model.Party, opts AutoAssignOptions) (*AutoAssignResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := s.constraints.ListActive()
	units := buildUnits(parties, s.graph, opts, active)
	surfaces := s.surfaceStates()
	apart := filterByType(active, model.MustNotSitTogether)

	res := &AutoAssignResult{}
	for _, unit := range units {
		st := chooseSurface(unit, surfaces, apart, opts.MaxTableSize)
		if st == nil {
			for _, m := range unit.members {
				res.UnplacedOccupants = append(res.UnplacedOccupants, UnplacedOccupant{
					OccupantID: m,
					Reason:     reasonNoCapacity,
				})
			}
			res.Unplaced += len(unit.members)
			continue
		}
		// lowest-numbered open positions, party order preserved
		for i, m := range unit.members {
			res.Assignments = append(res.Assignments, SeatAssignment{
				OccupantID: m,
				SeatID:     st.open[i].ID,
				SurfaceID:  st.id,
			})
		}
		st.open = st.open[len(unit.members):]
		st.planned = append(st.planned, unit.members...)
		st.seated = append(st.seated, unit.members...)
		res.Placed += len(unit.members)
	}

	now := s.Now()
	for _, a := range res.Assignments {
		if err := s.graph.Assign(a.SeatID, a.OccupantID, now); err != nil {
			// the proposal was computed from the same snapshot under the
			// same lock, so a failure here is a solver bug
			return nil, fmt.Errorf("commit %s -> %s: %w", a.OccupantID, a.SeatID, err)
		}
	}
	s.recount()
	s.plan.UpdatedAt = now

	for _, r := range s.constraints.Validate(s.graph) {
		if r.Satisfied {
			continue
		}
		res.ViolatedConstraints = append(res.ViolatedConstraints, r.Constraint)
		if r.Constraint.Type == model.MustNotSitTogether && r.ConflictA != "" {
			name := r.SurfaceID
			if surf, ok := s.surface(r.SurfaceID); ok {
				name = surf.SurfaceName()
			}
			res.Suggestions = append(res.Suggestions, fmt.Sprintf(
				"%s and %s must not sit together but both sit at %s; move one of them to another surface",
				r.ConflictA, r.ConflictB, name))
		}
	}
	res.Success = res.Unplaced == 0 && len(res.ViolatedConstraints) == 0
	return res, nil
}

// buildUnits clusters the unseated roster members into placement units and
// merges units bound by a must-sit-together rule, transitively, so that
// two units under a mandatory-together rule are never packed separately.
// Units come back sorted largest first (hardest to fit), ties by smallest
// member id, so repeated runs over the same input walk the same order.
func buildUnits(parties []model.Party, g *SeatGraph, opts AutoAssignOptions, active []model.Constraint) []*placementUnit {
	grouped := opts.PrioritizeFamilies || opts.KeepCouplesTogether
	var units []*placementUnit
	for _, p := range parties {
		var current *placementUnit
		for _, m := range p.Members {
			if g.IsSeated(m) {
				continue
			}
			inParty := m == p.GuestID ||
				(model.IsPlusOne(m) && opts.KeepCouplesTogether) ||
				(model.IsChild(m) && opts.PrioritizeFamilies)
			if grouped && inParty {
				if current == nil {
					current = &placementUnit{}
					units = append(units, current)
				}
				current.add(m)
				continue
			}
			u := &placementUnit{}
			u.add(m)
			units = append(units, u)
		}
	}

	// union-find over units through must-sit-together membership
	parent := make([]int, len(units))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	unitOf := make(map[string]int, len(units))
	for i, u := range units {
		for _, m := range u.members {
			unitOf[m] = i
		}
	}
	for _, c := range active {
		if c.Type != model.MustSitTogether {
			continue
		}
		first := -1
		for _, m := range c.MemberIDs {
			i, ok := unitOf[m]
			if !ok {
				continue // member already seated or not on the roster
			}
			if first == -1 {
				first = find(i)
				continue
			}
			parent[find(i)] = first
		}
	}

	merged := make(map[int][]*placementUnit)
	for i, u := range units {
		root := find(i)
		merged[root] = append(merged[root], u)
	}
	out := make([]*placementUnit, 0, len(merged))
	for _, parts := range merged {
		sort.Slice(parts, func(i, j int) bool { return parts[i].minID < parts[j].minID })
		u := &placementUnit{}
		for _, p := range parts {
			for _, m := range p.members {
				u.add(m)
			}
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i].members) != len(out[j].members) {
			return len(out[i].members) > len(out[j].members)
		}
		return out[i].minID < out[j].minID
	})
	return out
}

func (u *placementUnit) add(m string) {
	u.members = append(u.members, m)
	if u.minID == "" || m < u.minID {
		u.minID = m
	}
}

// surfaceStates snapshots every surface's open seats and current occupants.
// Callers must hold s.mu.
func (s *Session) surfaceStates() []*surfaceState {
	var out []*surfaceState
	add := func(id, name string) {
		occ := s.graph.Occupants(id)
		out = append(out, &surfaceState{
			id:       id,
			name:     name,
			open:     s.graph.OpenSeats(id),
			occupied: len(occ),
			seated:   occ,
		})
	}
	for _, t := range s.tables {
		add(t.ID, t.Name)
	}
	for _, r := range s.rows {
		add(r.ID, r.Name)
	}
	return out
}

// chooseSurface picks the surface for one unit: among surfaces with enough
// usable capacity, the one introducing the fewest new must-not-sit-together
// violations wins; ties go to the most remaining capacity, then the lowest
// surface id. With a zero-violation candidate available this reduces to
// "first fitting surface in capacity order". Returns nil when no surface
// can hold the unit at all.
func chooseSurface(unit *placementUnit, surfaces []*surfaceState, apart []model.Constraint, maxSize int) *surfaceState {
	var best *surfaceState
	bestViolations := 0
	for _, st := range surfaces {
		if st.usable(maxSize) < len(unit.members) {
			continue
		}
		v := newViolations(unit, st.seated, apart)
		if best == nil || v < bestViolations ||
			(v == bestViolations && st.remaining() > best.remaining()) ||
			(v == bestViolations && st.remaining() == best.remaining() && st.id < best.id) {
			best = st
			bestViolations = v
		}
	}
	return best
}

// newViolations counts the must-not-sit-together pairs that placing the
// unit on a surface would create against the occupants already there.
func newViolations(unit *placementUnit, seated []string, apart []model.Constraint) int {
	if len(seated) == 0 || len(apart) == 0 {
		return 0
	}
	n := 0
	for _, c := range apart {
		for _, m := range unit.members {
			if !c.Binds(m) {
				continue
			}
			for _, o := range seated {
				if o != m && c.Binds(o) {
					n++
				}
			}
		}
	}
	return n
}

func filterByType(cs []model.Constraint, t model.ConstraintType) []model.Constraint {
	var out []model.Constraint
	for _, c := range cs {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}
