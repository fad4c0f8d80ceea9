package model

import (
	"math"
	"slices"

	"github.com/samber/lo"
)

// Option is a (faculty, slot) pairing a course can be taken with
type Option struct {
	Faculty string `json:"faculty"`
	Slot    string `json:"slot"`
}

// Search domain of a single course
type courseOptions struct {
	code   string
	theory []Option
	lab    []Option // Empty when the course has no lab component
}

// TheoryOptions returns the distinct theory options of course in first-seen order.
// Preferred faculty restrict the options only when at least one option survives, otherwise every option is returned:
// the preference is best-effort, not a hard filter.
func TheoryOptions(course Course, preferred []string) []Option {
	options := lo.Map(course.Sections, func(section Section, _ int) Option {
		return Option{Faculty: section.Faculty, Slot: section.TheorySlot}
	})
	return preferredOptions(options, preferred)
}

// LabOptions returns the distinct lab options of course in first-seen order, following the same preference policy as TheoryOptions.
// Lab options and lab preferences are keyed by the section's Faculty, LabFaculty is informational only.
// A course without lab-bearing sections yields no options, meaning it has no lab component.
func LabOptions(course Course, preferred []string) []Option {
	labSections := lo.Filter(course.Sections, func(section Section, _ int) bool {
		return section.LabSlot != ""
	})
	options := lo.Map(labSections, func(section Section, _ int) Option {
		return Option{Faculty: section.Faculty, Slot: section.LabSlot}
	})
	return preferredOptions(options, preferred)
}

func preferredOptions(options []Option, preferred []string) []Option {
	if len(preferred) > 0 {
		filtered := lo.Uniq(lo.Filter(options, func(option Option, _ int) bool {
			return slices.Contains(preferred, option.Faculty)
		}))
		if len(filtered) > 0 {
			return filtered
		}
	}
	return lo.Uniq(options)
}

func extractOptions(request Request) []courseOptions {
	return lo.Map(request.Courses, func(course Course, _ int) courseOptions {
		return courseOptions{
			code:   course.Code,
			theory: TheoryOptions(course, request.FacultyPreferences[course.Code]),
			lab:    LabOptions(course, request.LabFacultyPreferences[course.Code]),
		}
	})
}

// Combinations returns the size of the unpruned search space of the request: the product of every course's
// theory and lab option counts, saturating at math.MaxUint64. Zero when any course has no theory option.
func Combinations(request Request) uint64 {
	return combinations(extractOptions(request))
}

func combinations(courses []courseOptions) uint64 {
	if len(courses) == 0 {
		return 0
	}

	total := uint64(1)
	for _, course := range courses {
		factors := []int{len(course.theory)}
		if len(course.lab) > 0 {
			factors = append(factors, len(course.lab))
		}
		for _, factor := range factors {
			if factor == 0 {
				return 0
			} else if total > math.MaxUint64/uint64(factor) {
				total = math.MaxUint64
			} else {
				total *= uint64(factor)
			}
		}
	}
	return total
}
