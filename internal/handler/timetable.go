// Package handler exposes the scheduler over HTTP.
package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/limaJavier/autoscheduler/internal/cache"
	"github.com/limaJavier/autoscheduler/pkg/model"
)

// TimetablesResponse is the body returned by Generate
type TimetablesResponse struct {
	Timetables   []model.Timetable `json:"timetables"`
	Combinations uint64            `json:"combinations"`
	Truncated    bool              `json:"truncated"`
	TotalCredits uint64            `json:"totalCredits"`
	Cached       bool              `json:"cached"`
}

type TimetableHandler struct {
	scheduler model.Scheduler
	cache     cache.TimetableCache // nil disables caching
	scope     string               // Distinguishes cache entries of differently configured schedulers
	timeout   time.Duration
}

func NewTimetableHandler(scheduler model.Scheduler, timetableCache cache.TimetableCache, scope string, timeout time.Duration) *TimetableHandler {
	return &TimetableHandler{
		scheduler: scheduler,
		cache:     timetableCache,
		scope:     scope,
		timeout:   timeout,
	}
}

// Generate enumerates the timetables of the posted catalog
func (h *TimetableHandler) Generate(c echo.Context) error {
	var rawInput model.RawInput
	if err := c.Bind(&rawInput); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	request, err := model.ProcessRawInput(rawInput)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if missing := model.MissingSlots(request); len(missing) > 0 {
		log.Printf("timetables: no timing data for slots %v, conflicts involving them are not detected", missing)
	}
	totalCredits := model.TotalCredits(request.Courses)

	ctx := c.Request().Context()
	key, err := cache.Key(h.scope, request)
	if err != nil {
		log.Printf("timetables: cannot derive cache key: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	//** Lookup cache
	if h.cache != nil {
		entry, ok, err := h.cache.Get(ctx, key)
		if err != nil {
			log.Printf("timetables: %v", err)
		} else if ok {
			return c.JSON(http.StatusOK, TimetablesResponse{
				Timetables:   entry.Timetables,
				Combinations: entry.Combinations,
				Truncated:    entry.Truncated,
				TotalCredits: totalCredits,
				Cached:       true,
			})
		}
	}

	//** Build timetables
	searchCtx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()
	timetables, combinations, truncated, err := h.scheduler.Build(searchCtx, request)

	var missingTiming model.MissingTimingError
	if errors.As(err, &missingTiming) {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": missingTiming.Error(), "slots": missingTiming.Slots})
	} else if errors.Is(err, context.DeadlineExceeded) {
		return c.JSON(http.StatusRequestTimeout, echo.Map{"error": "timetable search timed out"})
	} else if err != nil {
		log.Printf("timetables: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	if truncated {
		log.Printf("timetables: search stopped at %d timetables out of %d combinations", len(timetables), combinations)
	}

	//** Store cache
	if h.cache != nil {
		entry := cache.Entry{Timetables: timetables, Combinations: combinations, Truncated: truncated}
		if err := h.cache.Set(ctx, key, entry); err != nil {
			log.Printf("timetables: %v", err)
		}
	}

	return c.JSON(http.StatusOK, TimetablesResponse{
		Timetables:   timetables,
		Combinations: combinations,
		Truncated:    truncated,
		TotalCredits: totalCredits,
	})
}

// Slots returns the standard slot grid used for catalogs without their own
func (h *TimetableHandler) Slots(c echo.Context) error {
	return c.JSON(http.StatusOK, model.DefaultSlotTimings())
}
