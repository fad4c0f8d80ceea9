package model

import "context"

type assignmentGenerator interface {
	// Walks every conflict-free assignment of one theory option (and one lab option for courses with a lab component) per course,
	// depth-first in option order, handing each complete assignment to accept. The search stops as soon as accept returns false.
	// The slice passed to accept is reused by the search, accept must copy whatever it keeps.
	//
	// Example:
	//
	//	generator := newAssignmentGenerator(extractOptions(request), newPredicateEvaluator(request.SlotTimings))
	//
	//	found := 0
	//	err := generator.Assignments(ctx, func(assignment []ScheduledCourse) bool {
	//		found++
	//		return found < 10 // Stop after ten assignments
	//	})
	Assignments(ctx context.Context, accept func(assignment []ScheduledCourse) bool) error
}

func newAssignmentGenerator(courses []courseOptions, evaluator predicateEvaluator) assignmentGenerator {
	return &assignmentGeneratorImplementation{courses: courses, evaluator: evaluator}
}
