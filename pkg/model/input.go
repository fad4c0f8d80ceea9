package model

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

// Credits assumed for a course that does not declare them
const DefaultCredits uint64 = 3

type Section struct {
	Id         string `json:"id"`
	CourseCode string `json:"courseCode"`
	Faculty    string `json:"faculty"`
	TheorySlot string `json:"theorySlot"`
	LabSlot    string `json:"labSlot,omitempty"`
	LabFaculty string `json:"labFaculty,omitempty"` // Display only, lab options are keyed by Faculty
}

type Course struct {
	Code     string    `json:"code"`
	Title    string    `json:"title"`
	Credits  uint64    `json:"credits"`
	Sections []Section `json:"sections"`
}

// Interval is a single weekly occurrence of a slot, Start and End are "HH:MM" strings
type Interval struct {
	Day   string `json:"day" yaml:"day"`
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

// SlotTimings maps a slot code (e.g. "A1", "L1+L2") to its weekly occurrences
type SlotTimings map[string][]Interval

type RawInput struct {
	Courses        []Course            `json:"courses"`
	Slots          SlotTimings         `json:"slots"`
	Preferences    map[string][]string `json:"preferences"`
	LabPreferences map[string][]string `json:"labPreferences"`
	Selected       []string            `json:"selected"` // Course codes to schedule, in order; empty selects every course
}

type Request struct {
	Courses               []Course            `json:"courses"`
	FacultyPreferences    map[string][]string `json:"preferences"`    // Course code -> preferred theory faculty
	LabFacultyPreferences map[string][]string `json:"labPreferences"` // Course code -> preferred lab faculty
	SlotTimings           SlotTimings         `json:"slots"`
}

func InputFromJson(file string) (Request, error) {
	rawInput, err := RawInputFromJson(file)
	if err != nil {
		return Request{}, err
	}
	return ProcessRawInput(rawInput)
}

// RawInputFromJson decodes a catalog file without validating it, so callers can adjust it before processing
func RawInputFromJson(file string) (RawInput, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return RawInput{}, err
	}
	var inputJson map[string]any
	err = json.Unmarshal(bytes, &inputJson)
	if err != nil {
		return RawInput{}, err
	}

	var rawInput RawInput
	if err := mapstructure.Decode(inputJson, &rawInput); err != nil {
		return RawInput{}, fmt.Errorf("cannot decode input: %w", err)
	}
	return rawInput, nil
}

func ProcessRawInput(rawInput RawInput) (Request, error) {
	request := Request{
		FacultyPreferences:    rawInput.Preferences,
		LabFacultyPreferences: rawInput.LabPreferences,
		SlotTimings:           normalizeTimings(rawInput.Slots),
	}

	// A catalog without its own slot table is scheduled against the standard grid
	if len(request.SlotTimings) == 0 {
		request.SlotTimings = DefaultSlotTimings()
	}
	if request.FacultyPreferences == nil {
		request.FacultyPreferences = make(map[string][]string)
	}
	if request.LabFacultyPreferences == nil {
		request.LabFacultyPreferences = make(map[string][]string)
	}

	//** Manage courses
	courses := make([]Course, 0, len(rawInput.Courses))
	codes := make(map[string]int)
	for _, rawCourse := range rawInput.Courses {
		if rawCourse.Code == "" {
			return Request{}, fmt.Errorf("course \"%v\" has no code", rawCourse.Title)
		} else if _, ok := codes[rawCourse.Code]; ok {
			return Request{}, fmt.Errorf("duplicate course code \"%v\"", rawCourse.Code)
		}

		course := Course{
			Code:     rawCourse.Code,
			Title:    rawCourse.Title,
			Credits:  rawCourse.Credits,
			Sections: make([]Section, 0, len(rawCourse.Sections)),
		}
		if course.Credits == 0 {
			course.Credits = DefaultCredits
		}

		//** Manage sections
		for _, section := range rawCourse.Sections {
			// Sections are copied so the raw input is never mutated
			if section.CourseCode == "" {
				section.CourseCode = course.Code
			} else if section.CourseCode != course.Code {
				return Request{}, fmt.Errorf("section \"%v\" belongs to course \"%v\" but is listed under \"%v\"", section.Id, section.CourseCode, course.Code)
			}
			if section.Id == "" {
				section.Id = sectionId(course.Code, section.Faculty, section.TheorySlot)
			}
			course.Sections = append(course.Sections, section)
		}

		codes[course.Code] = len(courses)
		courses = append(courses, course)
	}

	//** Manage selection
	if len(rawInput.Selected) == 0 {
		request.Courses = courses
		return request, nil
	}

	if duplicates := lo.FindDuplicates(rawInput.Selected); len(duplicates) > 0 {
		return Request{}, fmt.Errorf("courses selected more than once: %v", duplicates)
	}
	request.Courses = make([]Course, 0, len(rawInput.Selected))
	for _, code := range rawInput.Selected {
		index, ok := codes[code]
		if !ok {
			return Request{}, fmt.Errorf("selected course \"%v\" is not in the catalog", code)
		}
		request.Courses = append(request.Courses, courses[index])
	}
	return request, nil
}

// TotalCredits sums the credits of the given courses, courses without credits count as DefaultCredits
func TotalCredits(courses []Course) uint64 {
	return lo.SumBy(courses, func(course Course) uint64 {
		if course.Credits == 0 {
			return DefaultCredits
		}
		return course.Credits
	})
}

// MissingSlots returns the sorted slot codes referenced by the request's sections that have no entry in its slot timings.
// Such slots never conflict with anything but themselves, so a non-empty result means conflicts may go undetected.
func MissingSlots(request Request) []string {
	missing := make([]string, 0)
	for _, course := range request.Courses {
		for _, section := range course.Sections {
			for _, slot := range []string{section.TheorySlot, section.LabSlot} {
				if _, ok := request.SlotTimings[slot]; slot != "" && !ok {
					missing = append(missing, slot)
				}
			}
		}
	}
	missing = lo.Uniq(missing)
	slices.Sort(missing)
	return missing
}

func sectionId(courseCode, faculty, slot string) string {
	return fmt.Sprintf("%v-%v-%v", courseCode, faculty, slot)
}
