// Package middleware holds the echo middleware of the service.
package middleware

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
)

// RequestLogger logs method, path, status and latency of every request
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				// Let echo write the error response so the logged status is the final one
				c.Error(err)
			}

			request := c.Request()
			log.Printf("%s %s -> %d (%s)", request.Method, request.URL.Path, c.Response().Status, time.Since(start))
			return nil
		}
	}
}
