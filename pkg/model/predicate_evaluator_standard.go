package model

import (
	"strconv"
	"strings"
)

// Interval resolved to minutes since midnight
type span struct {
	day        string
	start, end int
}

type predicateEvaluatorStandard struct {
	spans map[string][]span // Parsed intervals per slot
}

func newPredicateEvaluator(timings SlotTimings) predicateEvaluator {
	evaluator := predicateEvaluatorStandard{
		spans: make(map[string][]span, len(timings)),
	}

	for slot, intervals := range timings {
		spans := make([]span, 0, len(intervals))
		for _, interval := range intervals {
			start, ok1 := parseTime(interval.Start)
			end, ok2 := parseTime(interval.End)
			// Unparsable intervals are dropped, they cannot be compared against anything
			if !ok1 || !ok2 {
				continue
			}
			spans = append(spans, span{day: normalizeDay(interval.Day), start: start, end: end})
		}
		evaluator.spans[slot] = spans
	}

	return &evaluator
}

func (evaluator *predicateEvaluatorStandard) Overlaps(slot1, slot2 string) bool {
	if slot1 == "" || slot2 == "" {
		return false
	} else if slot1 == slot2 {
		return true
	}

	spans1, ok1 := evaluator.spans[slot1]
	spans2, ok2 := evaluator.spans[slot2]
	// Missing timing data is treated as no conflict
	if !ok1 || !ok2 {
		return false
	}

	for _, span1 := range spans1 {
		for _, span2 := range spans2 {
			// Half-open intervals: one ending at 10:00 and another starting at 10:00 do not overlap
			if span1.day == span2.day && span1.start < span2.end && span2.start < span1.end {
				return true
			}
		}
	}
	return false
}

func (evaluator *predicateEvaluatorStandard) ConflictsWithAny(slot string, occupied []string) bool {
	for _, other := range occupied {
		if evaluator.Overlaps(slot, other) {
			return true
		}
	}
	return false
}

// Parses "HH:MM" into minutes since midnight
func parseTime(time string) (int, bool) {
	hours, minutes, found := strings.Cut(strings.TrimSpace(time), ":")
	if !found {
		return 0, false
	}
	h, err1 := strconv.Atoi(hours)
	m, err2 := strconv.Atoi(minutes)
	if err1 != nil || err2 != nil {
		return 0, false
	}
	return h*60 + m, true
}
