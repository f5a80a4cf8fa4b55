package scheduler

import (
	"errors"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrNoEmployees means the branch has no active employees to schedule.
	ErrNoEmployees = errors.New("no active employees to schedule")
	// ErrNoAvailability means no employee submitted any usable availability.
	ErrNoAvailability = errors.New("no availability data submitted")
)

// Employee is the minimal roster entry the solver needs. Callers filter to
// active employees before building the input.
type Employee struct {
	ID   string
	Name string
}

// Input is the snapshot a single generation run operates on. The run is a
// pure function of this snapshot; repeated runs over identical inputs yield
// identical results.
type Input struct {
	Employees    []Employee
	Availability []AvailabilityEntry
	Profile      Profile
	WeekStart    time.Time
}

// Result is the solver output before materialization.
type Result struct {
	Assignments    []Assignment
	CandidateSlots int
	Coverage       float64
	RepairPasses   int
	Unresolved     []Violation
}

// Engine runs the two-phase heuristic solver: greedy assignment over the
// candidate slot set, then bounded repair of remaining violations.
type Engine struct {
	log       *zap.Logger
	maxPasses int
}

// NewEngine constructs an engine. A nil logger falls back to a no-op one;
// a non-positive maxPasses falls back to 3.
func NewEngine(log *zap.Logger, maxPasses int) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	if maxPasses <= 0 {
		maxPasses = 3
	}
	return &Engine{log: log, maxPasses: maxPasses}
}

// Generate produces the assignment list for one branch week. It fails fast
// when the roster is empty or nothing is available; remaining unfilled
// slots and unresolved violations are reported, not raised.
func (e *Engine) Generate(in Input) (*Result, error) {
	if len(in.Employees) == 0 {
		return nil, ErrNoEmployees
	}
	profile := in.Profile
	profile.Normalize()
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	idx, err := BuildAvailabilityIndex(in.Availability)
	if err != nil {
		return nil, err
	}
	if idx.Empty() {
		return nil, ErrNoAvailability
	}

	slots := GenerateSlots(profile, in.WeekStart)
	state := newAssignState(profile, in.Employees, idx)
	state.runGreedy(slots)
	passes := state.runRepair(e.maxPasses)
	unresolved := state.detect()

	res := &Result{
		Assignments:    state.assignments,
		CandidateSlots: len(slots),
		Coverage:       coverage(slots, state.assignments),
		RepairPasses:   passes,
		Unresolved:     unresolved,
	}
	e.log.Info("schedule generated",
		zap.Int("employees", len(in.Employees)),
		zap.Int("candidate_slots", res.CandidateSlots),
		zap.Int("assignments", len(res.Assignments)),
		zap.Float64("coverage", res.Coverage),
		zap.Int("repair_passes", res.RepairPasses),
		zap.Int("unresolved_violations", len(res.Unresolved)))
	return res, nil
}

// coverage is the fraction of candidate slots that received at least one
// assignment.
func coverage(slots []Slot, assignments []Assignment) float64 {
	if len(slots) == 0 {
		return 0
	}
	filled := 0
	for _, sl := range slots {
		for _, a := range assignments {
			if a.Day == sl.Day && a.Start == sl.Start && a.End == sl.End {
				filled++
				break
			}
		}
	}
	return float64(filled) / float64(len(slots))
}
