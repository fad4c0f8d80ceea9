// Package router registers the service routes.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/limaJavier/autoscheduler/internal/handler"
	"github.com/limaJavier/autoscheduler/internal/middleware"
)

func RegisterRoutes(e *echo.Echo, timetables *handler.TimetableHandler) {
	e.Use(middleware.RequestLogger())

	e.GET("/healthz", handler.Health)

	v1 := e.Group("/v1")
	v1.POST("/timetables", timetables.Generate)
	v1.GET("/slots", timetables.Slots)
}
