package model

import (
	"slices"
	"strings"
)

// Session is a single weekly meeting of a scheduled course
type Session struct {
	Day        string `json:"day"`
	Start      string `json:"start"`
	End        string `json:"end"`
	CourseCode string `json:"courseCode"`
	Faculty    string `json:"faculty"`
	Slot       string `json:"slot"`
	Lab        bool   `json:"lab"`
}

// Sessions flattens a timetable into its weekly meetings ordered by day, start time and course.
// Slots without timing data produce no sessions.
func Sessions(timetable Timetable, timings SlotTimings) []Session {
	sessions := make([]Session, 0)
	for _, scheduled := range timetable.ScheduledCourses {
		components := []Session{{CourseCode: scheduled.CourseCode, Faculty: scheduled.TheoryFaculty, Slot: scheduled.TheorySlot}}
		if scheduled.LabSlot != "" {
			components = append(components, Session{CourseCode: scheduled.CourseCode, Faculty: scheduled.LabFaculty, Slot: scheduled.LabSlot, Lab: true})
		}

		for _, component := range components {
			for _, interval := range timings[component.Slot] {
				session := component
				session.Day, session.Start, session.End = interval.Day, interval.Start, interval.End
				sessions = append(sessions, session)
			}
		}
	}

	slices.SortStableFunc(sessions, func(a, b Session) int {
		if comparison := dayIndex(a.Day) - dayIndex(b.Day); comparison != 0 {
			return comparison
		} else if comparison := strings.Compare(a.Day, b.Day); comparison != 0 {
			return comparison
		}
		startA, _ := parseTime(a.Start)
		startB, _ := parseTime(b.Start)
		if startA != startB {
			return startA - startB
		}
		return strings.Compare(a.CourseCode, b.CourseCode)
	})
	return sessions
}

// Unknown days sort after the working week
func dayIndex(day string) int {
	if index := slices.Index(Days, normalizeDay(day)); index >= 0 {
		return index
	}
	return len(Days)
}
