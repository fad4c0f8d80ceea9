package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/limaJavier/autoscheduler/internal/handler"
	"github.com/limaJavier/autoscheduler/pkg/model"
)

func newServer() *echo.Echo {
	e := echo.New()
	RegisterRoutes(e, handler.NewTimetableHandler(model.NewBacktrackingScheduler(0, false), nil, "test", time.Second))
	return e
}

func serve(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRoutes(t *testing.T) {
	e := newServer()

	health := serve(e, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, health.Code)
	assert.Equal(t, "ok", health.Body.String())

	slots := serve(e, http.MethodGet, "/v1/slots", "")
	assert.Equal(t, http.StatusOK, slots.Code)
	assert.Contains(t, slots.Body.String(), `"L1+L2"`)

	timetables := serve(e, http.MethodPost, "/v1/timetables", `{"courses": [{"code": "A", "sections": [{"faculty": "X", "theorySlot": "A1"}]}]}`)
	assert.Equal(t, http.StatusOK, timetables.Code)
	assert.Contains(t, timetables.Body.String(), `"A-X-A1"`)

	// Errors pass through the request logger untouched
	invalid := serve(e, http.MethodPost, "/v1/timetables", `{"courses": [{"code": ""}]}`)
	assert.Equal(t, http.StatusBadRequest, invalid.Code)

	missing := serve(e, http.MethodGet, "/v1/unknown", "")
	assert.Equal(t, http.StatusNotFound, missing.Code)
}
