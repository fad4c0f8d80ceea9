package model

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// MissingTimingError is returned by strict schedulers when sections reference slots without timing data
type MissingTimingError struct {
	Slots []string
}

func (err MissingTimingError) Error() string {
	return fmt.Sprintf("no timing data for slots: %v", strings.Join(err.Slots, ", "))
}

func verify(timetables []Timetable, request Request, maxTimetables int) bool {
	if len(timetables) > maxTimetables {
		return false
	}

	//** Initialize dependencies
	evaluator := newPredicateEvaluator(request.SlotTimings)
	seen := make(map[string]struct{})

	for i, timetable := range timetables {
		// Check that:
		// - Ids are sequential starting from 1
		// - There is exactly one assignment per course
		// - Sections mirror the assignments
		if timetable.Id != i+1 ||
			len(timetable.ScheduledCourses) != len(request.Courses) ||
			len(timetable.Sections) != len(timetable.ScheduledCourses) {
			return false
		}

		occupied := make([]string, 0, 2*len(request.Courses))
		for j, scheduled := range timetable.ScheduledCourses {
			course := request.Courses[j]
			section := timetable.Sections[j]

			// Check that:
			// - The assignment belongs to the course at the same position
			// - The course offers the theory option
			// - The course offers the lab option, if any
			// - A course with a lab component has its lab assigned
			// - The section reflects the assignment
			if scheduled.CourseCode != course.Code ||
				!offersTheory(course, scheduled) ||
				(scheduled.LabSlot != "" && !offersLab(course, scheduled)) ||
				(scheduled.LabSlot == "" && len(LabOptions(course, nil)) > 0) ||
				section.CourseCode != scheduled.CourseCode ||
				section.Faculty != scheduled.TheoryFaculty ||
				section.TheorySlot != scheduled.TheorySlot ||
				section.LabSlot != scheduled.LabSlot {
				return false
			}

			// Check that no committed slot overlaps a previous one
			for _, slot := range []string{scheduled.TheorySlot, scheduled.LabSlot} {
				if slot == "" {
					continue
				} else if evaluator.ConflictsWithAny(slot, occupied) {
					return false
				}
				occupied = append(occupied, slot)
			}
		}

		// Check the timetable is not a repetition of a previous one
		if isDuplicate(canonicalKey(timetable.ScheduledCourses), seen) {
			return false
		}
	}
	return true
}

func offersTheory(course Course, scheduled ScheduledCourse) bool {
	return lo.SomeBy(course.Sections, func(section Section) bool {
		return section.Faculty == scheduled.TheoryFaculty && section.TheorySlot == scheduled.TheorySlot
	})
}

func offersLab(course Course, scheduled ScheduledCourse) bool {
	return lo.SomeBy(course.Sections, func(section Section) bool {
		return section.Faculty == scheduled.LabFaculty && section.LabSlot == scheduled.LabSlot
	})
}
