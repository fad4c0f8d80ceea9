package model

type predicateEvaluator interface {
	// Checks whether slot1 and slot2 occupy conflicting time. Identical slots always conflict, while a slot without timing data only conflicts with itself
	Overlaps(slot1, slot2 string) bool

	// Checks whether slot overlaps any of the occupied slots
	ConflictsWithAny(slot string, occupied []string) bool
}

// Overlaps checks whether two slots occupy conflicting time according to timings.
// A slot missing from timings is assumed not to overlap any other slot.
func Overlaps(slot1, slot2 string, timings SlotTimings) bool {
	return newPredicateEvaluator(timings).Overlaps(slot1, slot2)
}

// ConflictsWithAny checks whether slot overlaps any of the occupied slots according to timings
func ConflictsWithAny(slot string, occupied []string, timings SlotTimings) bool {
	return newPredicateEvaluator(timings).ConflictsWithAny(slot, occupied)
}
