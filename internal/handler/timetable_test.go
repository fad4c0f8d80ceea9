package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limaJavier/autoscheduler/internal/cache"
	"github.com/limaJavier/autoscheduler/pkg/model"
)

const catalogBody = `{
	"courses": [
		{"code": "A", "credits": 4, "sections": [{"faculty": "X", "theorySlot": "A1"}, {"faculty": "Y", "theorySlot": "B1"}]},
		{"code": "B", "sections": [{"faculty": "Z", "theorySlot": "A1"}]}
	]
}`

type memoryCache struct {
	entries map[string]cache.Entry
	gets    int
	sets    int
	fail    bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]cache.Entry)}
}

func (m *memoryCache) Get(_ context.Context, key string) (cache.Entry, bool, error) {
	m.gets++
	if m.fail {
		return cache.Entry{}, false, errors.New("unavailable")
	}
	entry, ok := m.entries[key]
	return entry, ok, nil
}

func (m *memoryCache) Set(_ context.Context, key string, entry cache.Entry) error {
	m.sets++
	if m.fail {
		return errors.New("unavailable")
	}
	m.entries[key] = entry
	return nil
}

func post(t *testing.T, h *TimetableHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/timetables", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Generate(e.NewContext(req, rec)))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) TimetablesResponse {
	t.Helper()
	var response TimetablesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	return response
}

func TestGenerate(t *testing.T) {
	t.Run("Timetables are generated and cached", func(t *testing.T) {
		//** Arrange
		memory := newMemoryCache()
		h := NewTimetableHandler(model.NewBacktrackingScheduler(0, false), memory, "test", time.Second)

		//** Act
		first := post(t, h, catalogBody)
		second := post(t, h, catalogBody)

		//** Assert
		assert.Equal(t, http.StatusOK, first.Code)

		response := decode(t, first)
		assert.False(t, response.Cached)
		assert.False(t, response.Truncated)
		assert.Equal(t, uint64(2), response.Combinations)
		assert.Equal(t, uint64(7), response.TotalCredits)
		require.Len(t, response.Timetables, 1)
		assert.Equal(t, "B1", response.Timetables[0].ScheduledCourses[0].TheorySlot)

		cached := decode(t, second)
		assert.True(t, cached.Cached)
		assert.Equal(t, response.Timetables, cached.Timetables)
		assert.Equal(t, 1, memory.sets)
		assert.Equal(t, 2, memory.gets)
	})

	t.Run("Cache failures fall back to searching", func(t *testing.T) {
		memory := newMemoryCache()
		memory.fail = true
		h := NewTimetableHandler(model.NewBacktrackingScheduler(0, false), memory, "test", time.Second)

		rec := post(t, h, catalogBody)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decode(t, rec).Timetables, 1)
	})

	t.Run("Works without cache", func(t *testing.T) {
		h := NewTimetableHandler(model.NewBacktrackingScheduler(0, false), nil, "test", time.Second)

		rec := post(t, h, catalogBody)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decode(t, rec).Timetables, 1)
	})

	t.Run("Malformed body", func(t *testing.T) {
		h := NewTimetableHandler(model.NewBacktrackingScheduler(0, false), nil, "test", time.Second)

		rec := post(t, h, `{"courses": [`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Invalid catalog", func(t *testing.T) {
		h := NewTimetableHandler(model.NewBacktrackingScheduler(0, false), nil, "test", time.Second)

		rec := post(t, h, `{"courses": [{"code": "A"}, {"code": "A"}]}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "duplicate course code")
	})

	t.Run("Strict scheduler rejects missing timings", func(t *testing.T) {
		h := NewTimetableHandler(model.NewBacktrackingScheduler(0, true), nil, "test", time.Second)

		rec := post(t, h, `{"courses": [{"code": "A", "sections": [{"faculty": "X", "theorySlot": "Q9"}]}]}`)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), `"slots":["Q9"]`)
	})

	t.Run("Search timeout", func(t *testing.T) {
		h := NewTimetableHandler(model.NewBacktrackingScheduler(0, false), nil, "test", time.Nanosecond)
		time.Sleep(time.Millisecond)

		// The deadline has passed before the search checks the context for the first time
		rec := post(t, h, catalogBody)

		assert.Equal(t, http.StatusRequestTimeout, rec.Code)
	})
}

func TestSlots(t *testing.T) {
	h := NewTimetableHandler(model.NewBacktrackingScheduler(0, false), nil, "test", time.Second)
	e := echo.New()
	rec := httptest.NewRecorder()

	err := h.Slots(e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/slots", nil), rec))

	require.NoError(t, err)
	var timings model.SlotTimings
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &timings))
	assert.Equal(t, model.DefaultSlotTimings(), timings)
}
