package model

import "context"

// Number of visited frames between two cancellation checks
const cancellationInterval = 1024

type assignmentGeneratorImplementation struct {
	courses   []courseOptions
	evaluator predicateEvaluator
}

// Per-call search state, never shared between calls
type generationState struct {
	ctx        context.Context
	accept     func(assignment []ScheduledCourse) bool
	assignment []ScheduledCourse // Stack of committed courses, assignment[i] belongs to courses[i]
	occupied   []string          // Stack of every slot committed so far
	frames     uint64
	stopped    bool
	err        error
}

func (generator *assignmentGeneratorImplementation) Assignments(ctx context.Context, accept func(assignment []ScheduledCourse) bool) error {
	state := generationState{
		ctx:        ctx,
		accept:     accept,
		assignment: make([]ScheduledCourse, 0, len(generator.courses)),
		occupied:   make([]string, 0, 2*len(generator.courses)),
	}
	generator.assign(&state, 0)
	return state.err
}

func (generator *assignmentGeneratorImplementation) assign(state *generationState, course int) {
	if state.stopped {
		return
	}

	if state.frames%cancellationInterval == 0 {
		if err := state.ctx.Err(); err != nil {
			state.err = err
			state.stopped = true
			return
		}
	}
	state.frames++

	if course == len(generator.courses) {
		if !state.accept(state.assignment) {
			state.stopped = true
		}
		return
	}

	options := generator.courses[course]
	for _, theory := range options.theory {
		if state.stopped {
			return
		} else if generator.evaluator.ConflictsWithAny(theory.Slot, state.occupied) {
			continue
		}

		// Push theory slot
		mark := len(state.occupied)
		state.occupied = append(state.occupied, theory.Slot)

		if len(options.lab) == 0 {
			state.assignment = append(state.assignment, ScheduledCourse{
				CourseCode:    options.code,
				TheoryFaculty: theory.Faculty,
				TheorySlot:    theory.Slot,
			})
			generator.assign(state, course+1)
			state.assignment = state.assignment[:course]
		}

		for _, lab := range options.lab {
			if state.stopped {
				break
			} else if generator.evaluator.ConflictsWithAny(lab.Slot, state.occupied) { // Occupied already holds the theory slot
				continue
			}

			state.occupied = append(state.occupied, lab.Slot)
			state.assignment = append(state.assignment, ScheduledCourse{
				CourseCode:    options.code,
				TheoryFaculty: theory.Faculty,
				TheorySlot:    theory.Slot,
				LabFaculty:    lab.Faculty,
				LabSlot:       lab.Slot,
			})
			generator.assign(state, course+1)
			state.assignment = state.assignment[:course]
			state.occupied = state.occupied[:mark+1]
		}

		// Pop theory slot
		state.occupied = state.occupied[:mark]
	}
}
