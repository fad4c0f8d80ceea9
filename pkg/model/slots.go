package model

import (
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

var Days = []string{"MON", "TUE", "WED", "THU", "FRI"}

// Period boundaries of the standard grid; theory periods last 50 minutes, lab periods span two theory periods
var (
	theoryPeriods = [][2]string{
		{"09:00", "09:50"},
		{"09:55", "10:45"},
		{"10:50", "11:40"},
		{"11:45", "12:35"},
		{"13:15", "14:05"},
		{"14:10", "15:00"},
		{"15:05", "15:55"},
		{"16:00", "16:50"},
	}
	labPeriods = [][2]string{
		{"09:00", "10:40"},
		{"10:50", "12:30"},
		{"13:15", "14:55"},
		{"15:05", "16:45"},
	}
)

// A weekly meeting of a theory slot on the standard grid
type placement struct {
	day    string
	period int // 1-based index into theoryPeriods
}

var theoryPlacements = map[string][]placement{
	"A1":  {{"MON", 1}, {"WED", 2}, {"FRI", 3}},
	"A2":  {{"MON", 5}, {"WED", 6}, {"FRI", 7}},
	"B1":  {{"TUE", 1}, {"THU", 2}, {"WED", 4}},
	"B2":  {{"TUE", 5}, {"THU", 6}, {"WED", 8}},
	"C1":  {{"WED", 1}, {"FRI", 2}, {"THU", 4}},
	"C2":  {{"WED", 5}, {"FRI", 6}, {"THU", 8}},
	"D1":  {{"THU", 1}, {"MON", 3}},
	"D2":  {{"THU", 5}, {"MON", 7}},
	"E1":  {{"FRI", 1}, {"TUE", 3}},
	"E2":  {{"FRI", 5}, {"TUE", 7}},
	"F1":  {{"MON", 2}, {"WED", 3}},
	"F2":  {{"MON", 6}, {"WED", 7}},
	"G1":  {{"TUE", 2}, {"THU", 3}},
	"G2":  {{"TUE", 6}, {"THU", 7}},
	"TA1": {{"TUE", 4}},
	"TA2": {{"TUE", 8}},
	"TB1": {{"FRI", 4}},
	"TB2": {{"FRI", 8}},
	"TC1": {{"MON", 4}},
	"TC2": {{"MON", 8}},
}

// DefaultSlotTimings returns the standard weekly grid.
// Lab slots are numbered so that "L(2k-1)+L(2k)" is the k-th lab block of the week:
// blocks 1-10 are the two morning blocks of MON..FRI, blocks 11-20 the two afternoon blocks.
func DefaultSlotTimings() SlotTimings {
	timings := make(SlotTimings, len(theoryPlacements)+20)

	for slot, placements := range theoryPlacements {
		intervals := make([]Interval, 0, len(placements))
		for _, placement := range placements {
			period := theoryPeriods[placement.period-1]
			intervals = append(intervals, Interval{Day: placement.day, Start: period[0], End: period[1]})
		}
		timings[slot] = intervals
	}

	for block := range 20 {
		half := block / 10        // 0 = morning, 1 = afternoon
		day := Days[(block%10)/2] // Two blocks per day
		period := labPeriods[2*half+block%2]
		slot := fmt.Sprintf("L%d+L%d", 2*block+1, 2*block+2)
		timings[slot] = []Interval{{Day: day, Start: period[0], End: period[1]}}
	}

	return timings
}

// SlotTimingsFromFile reads a slot table from a YAML file; since YAML is a superset of JSON, JSON files are accepted as well.
// The file is either the table itself or an object holding it under "slots".
func SlotTimingsFromFile(file string) (SlotTimings, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	var wrapped struct {
		Slots SlotTimings `yaml:"slots"`
	}
	if err := yaml.Unmarshal(bytes, &wrapped); err == nil && len(wrapped.Slots) > 0 {
		return normalizeTimings(wrapped.Slots), nil
	}

	var timings SlotTimings
	if err := yaml.Unmarshal(bytes, &timings); err != nil {
		return nil, fmt.Errorf("cannot parse slot timings file \"%v\": %w", file, err)
	}
	return normalizeTimings(timings), nil
}

// normalizeTimings returns a copy of timings with day names trimmed and upper-cased
func normalizeTimings(timings SlotTimings) SlotTimings {
	normalized := make(SlotTimings, len(timings))
	for slot, intervals := range timings {
		normalized[slot] = lo.Map(intervals, func(interval Interval, _ int) Interval {
			interval.Day = normalizeDay(interval.Day)
			return interval
		})
	}
	return normalized
}

func normalizeDay(day string) string {
	return strings.ToUpper(strings.TrimSpace(day))
}
