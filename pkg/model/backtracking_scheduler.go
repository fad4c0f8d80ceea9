package model

import (
	"context"

	"github.com/samber/lo"
)

// Result cap used when none is given
const DefaultMaxTimetables = 500

type backtrackingScheduler struct {
	maxTimetables int
	strict        bool
}

// NewBacktrackingScheduler returns a Scheduler that stops after maxTimetables results (DefaultMaxTimetables if not positive).
// When strict is false, slots missing from the slot timings are assumed not to overlap other slots;
// when it's true, Build refuses such requests with a MissingTimingError.
func NewBacktrackingScheduler(maxTimetables int, strict bool) Scheduler {
	if maxTimetables <= 0 {
		maxTimetables = DefaultMaxTimetables
	}
	return &backtrackingScheduler{
		maxTimetables: maxTimetables,
		strict:        strict,
	}
}

func (scheduler *backtrackingScheduler) Build(ctx context.Context, request Request) ([]Timetable, uint64, bool, error) {
	//** Validate timings
	if scheduler.strict {
		if missing := MissingSlots(request); len(missing) > 0 {
			return nil, 0, false, MissingTimingError{Slots: missing}
		}
	}

	//** Extract options
	courses := extractOptions(request)
	totalCombinations := combinations(courses)

	timetables := make([]Timetable, 0)
	// A single course without theory options makes the whole request unschedulable
	if len(courses) == 0 || lo.SomeBy(courses, func(course courseOptions) bool { return len(course.theory) == 0 }) {
		return timetables, totalCombinations, false, nil
	}

	//** Initialize dependencies
	evaluator := newPredicateEvaluator(request.SlotTimings)
	generator := newAssignmentGenerator(courses, evaluator)

	//** Enumerate timetables
	truncated := false
	seen := make(map[string]struct{})
	err := generator.Assignments(ctx, func(assignment []ScheduledCourse) bool {
		if isDuplicate(canonicalKey(assignment), seen) {
			return true
		}
		// The search goes on past the cap until a further distinct timetable proves the result incomplete
		if len(timetables) == scheduler.maxTimetables {
			truncated = true
			return false
		}
		timetables = append(timetables, materialize(len(timetables)+1, assignment))
		return true
	})
	if err != nil {
		// Cancelled while looking beyond a full result: completeness is unknown, report it as truncated
		if len(timetables) == scheduler.maxTimetables {
			return timetables, totalCombinations, true, nil
		}
		return nil, totalCombinations, false, err
	}

	return timetables, totalCombinations, truncated, nil
}

func (scheduler *backtrackingScheduler) Verify(timetables []Timetable, request Request) bool {
	return verify(timetables, request, scheduler.maxTimetables)
}
