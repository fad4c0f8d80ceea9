package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/limaJavier/autoscheduler/internal/cache"
	"github.com/limaJavier/autoscheduler/internal/config"
	"github.com/limaJavier/autoscheduler/internal/handler"
	"github.com/limaJavier/autoscheduler/internal/router"
	"github.com/limaJavier/autoscheduler/pkg/model"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	// Cache is optional, the service keeps working without Redis
	var timetableCache cache.TimetableCache
	if client := config.NewRedisClient(cfg); client != nil {
		defer client.Close()
		timetableCache = cache.NewRedisCache(client, cfg.Cache.Prefix, cfg.Cache.TTL)
	}

	scheduler := model.NewBacktrackingScheduler(cfg.MaxTimetables, cfg.StrictTimings)
	scope := fmt.Sprintf("max=%d,strict=%t", cfg.MaxTimetables, cfg.StrictTimings)
	timetables := handler.NewTimetableHandler(scheduler, timetableCache, scope, cfg.SearchTimeout)

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e, timetables)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Printf("listening on :%s (env=%s, max=%d, strict=%t, cache=%t)", cfg.Port, cfg.Env, cfg.MaxTimetables, cfg.StrictTimings, timetableCache != nil)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
