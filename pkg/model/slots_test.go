package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSlotTimings(t *testing.T) {
	timings := DefaultSlotTimings()

	assert.Len(t, timings, 40)
	assert.Equal(t, []Interval{
		{Day: "MON", Start: "09:00", End: "09:50"},
		{Day: "WED", Start: "09:55", End: "10:45"},
		{Day: "FRI", Start: "10:50", End: "11:40"},
	}, timings["A1"])
	assert.Equal(t, []Interval{{Day: "MON", Start: "09:00", End: "10:40"}}, timings["L1+L2"])
	assert.Equal(t, []Interval{{Day: "TUE", Start: "10:50", End: "12:30"}}, timings["L7+L8"])
	assert.Equal(t, []Interval{{Day: "MON", Start: "13:15", End: "14:55"}}, timings["L21+L22"])
	assert.Equal(t, []Interval{{Day: "FRI", Start: "15:05", End: "16:45"}}, timings["L39+L40"])
	assert.Equal(t, []Interval{{Day: "MON", Start: "16:00", End: "16:50"}}, timings["TC2"])

	// Every call returns an independent table
	timings["A1"][0].Day = "SUN"
	assert.Equal(t, "MON", DefaultSlotTimings()["A1"][0].Day)
}

func TestSlotTimingsFromFile(t *testing.T) {
	expected := SlotTimings{
		"M1": {{Day: "MON", Start: "08:00", End: "09:00"}, {Day: "WED", Start: "08:00", End: "09:00"}},
		"X1": {{Day: "TUE", Start: "10:00", End: "12:00"}},
	}

	t.Run("Plain yaml table", func(t *testing.T) {
		file := writeFile(t, "slots.yaml", `
M1:
  - {day: mon, start: "08:00", end: "09:00"}
  - {day: WED, start: "08:00", end: "09:00"}
X1:
  - day: " tue"
    start: "10:00"
    end: "12:00"
`)
		timings, err := SlotTimingsFromFile(file)

		require.NoError(t, err)
		assert.Equal(t, expected, timings)
	})

	t.Run("Json catalog with slots", func(t *testing.T) {
		file := writeFile(t, "catalog.json", `{
			"courses": [],
			"slots": {
				"M1": [{"day": "MON", "start": "08:00", "end": "09:00"}, {"day": "WED", "start": "08:00", "end": "09:00"}],
				"X1": [{"day": "TUE", "start": "10:00", "end": "12:00"}]
			}
		}`)
		timings, err := SlotTimingsFromFile(file)

		require.NoError(t, err)
		assert.Equal(t, expected, timings)
	})

	t.Run("Malformed file", func(t *testing.T) {
		_, err := SlotTimingsFromFile(writeFile(t, "bad.yaml", "M1: [unterminated"))
		assert.Error(t, err)
	})
}
