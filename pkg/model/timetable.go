package model

import (
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Placeholder for the lab fields of a course without lab component in canonical keys
const noLab = "none"

// ScheduledCourse is the option committed for a single course
type ScheduledCourse struct {
	CourseCode    string `json:"courseCode"`
	TheoryFaculty string `json:"theoryFaculty"`
	TheorySlot    string `json:"theorySlot"`
	LabFaculty    string `json:"labFaculty,omitempty"`
	LabSlot       string `json:"labSlot,omitempty"`
}

type Timetable struct {
	Id               int               `json:"id"` // 1-based, in acceptance order
	Sections         []Section         `json:"sections"`
	ScheduledCourses []ScheduledCourse `json:"scheduledCourses"`
}

// Slots returns every slot the timetable occupies, theory and lab, in course order
func (timetable Timetable) Slots() []string {
	slots := make([]string, 0, 2*len(timetable.ScheduledCourses))
	for _, scheduled := range timetable.ScheduledCourses {
		slots = append(slots, scheduled.TheorySlot)
		if scheduled.LabSlot != "" {
			slots = append(slots, scheduled.LabSlot)
		}
	}
	return slots
}

// Builds an order-independent identity of an assignment. Fields are quoted, so the newline joining tokens never occurs inside one
func canonicalKey(assignment []ScheduledCourse) string {
	tokens := lo.Map(assignment, func(scheduled ScheduledCourse, _ int) string {
		fields := []string{
			scheduled.CourseCode,
			scheduled.TheoryFaculty,
			scheduled.TheorySlot,
			orNone(scheduled.LabFaculty),
			orNone(scheduled.LabSlot),
		}
		return strings.Join(lo.Map(fields, func(field string, _ int) string { return strconv.Quote(field) }), ":")
	})
	slices.Sort(tokens)
	return strings.Join(tokens, "\n")
}

// Checks whether key was already seen, recording it otherwise
func isDuplicate(key string, seen map[string]struct{}) bool {
	if _, ok := seen[key]; ok {
		return true
	}
	seen[key] = struct{}{}
	return false
}

func materialize(id int, assignment []ScheduledCourse) Timetable {
	return Timetable{
		Id: id,
		Sections: lo.Map(assignment, func(scheduled ScheduledCourse, _ int) Section {
			return Section{
				Id:         sectionId(scheduled.CourseCode, scheduled.TheoryFaculty, scheduled.TheorySlot),
				CourseCode: scheduled.CourseCode,
				Faculty:    scheduled.TheoryFaculty,
				TheorySlot: scheduled.TheorySlot,
				LabSlot:    scheduled.LabSlot,
				LabFaculty: scheduled.LabFaculty,
			}
		}),
		ScheduledCourses: slices.Clone(assignment),
	}
}

func orNone(value string) string {
	if value == "" {
		return noLab
	}
	return value
}
