package model

import "context"

type Scheduler interface {
	// Build enumerates the conflict-free timetables of the request in deterministic order.
	// combinations is the size of the unpruned search space and truncated reports whether the result cap was reached,
	// in which case the timetables may not be exhaustive.
	Build(
		ctx context.Context,
		request Request,
	) (timetables []Timetable, combinations uint64, truncated bool, err error)

	Verify(
		timetables []Timetable,
		request Request,
	) bool
}
