/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the guard rotation server: loads the JSON data
  sources, opens the SQLite-backed ledger store, wires the engine, and
  serves the HTTP API with graceful shutdown.

STARTUP SEQUENCE:
  1. Load environment configuration (.env honored)
  2. Load and validate team, holiday, and replacement data sources
  3. Open the SQLite state store
  4. Wire ledger, generator, control, handler, router
  5. Start the background sync scheduler
  6. Serve HTTP until SIGINT/SIGTERM, then drain (30s timeout)

CONFIGURATION (environment):
  PORT                HTTP port                  (default 8080)
  DATABASE_PATH       SQLite path, ":memory:" ok (default ./rotation.db)
  TEAM_FILE           team JSON source           (default ./data/team.json)
  HOLIDAYS_FILE       holiday JSON source        (default ./data/holidays.json)
  REPLACEMENTS_FILE   replacement JSON source    (default ./data/replacements.json)
  SYNC_SCHEDULE       5-field cron expression    (default "0 6 * * *")
*/
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/smartcloud/guard-engine/api"
	"github.com/smartcloud/guard-engine/calendar"
	"github.com/smartcloud/guard-engine/config"
	"github.com/smartcloud/guard-engine/roster"
	"github.com/smartcloud/guard-engine/rotation"
	"github.com/smartcloud/guard-engine/store/sqlite"
)

func main() {
	cfg := config.Load()

	// Data sources are read-only inputs; a bad shape is fatal at startup,
	// never silently defaulted.
	ros, err := roster.Load(cfg.TeamFile)
	if err != nil {
		log.Fatalf("team data: %v", err)
	}
	cal, err := calendar.LoadCalendar(cfg.HolidaysFile)
	if err != nil {
		log.Fatalf("holiday data: %v", err)
	}
	replacements, err := roster.LoadReplacements(cfg.ReplacementsFile)
	if err != nil {
		log.Fatalf("replacement data: %v", err)
	}

	st, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("state store: %v", err)
	}
	defer st.Close()

	ledger := rotation.NewLedger(st, rotation.FingerprintFunc(ros, replacements, cal))
	gen := rotation.NewGenerator(ros, cal, ledger, replacements)
	ctrl := rotation.NewControl(ledger)

	handler := api.NewHandler(ros, cal, gen, ctrl, replacements)
	router := api.NewRouter(handler)

	sched, err := api.NewSyncScheduler(gen, ctrl, cfg.SyncSchedule)
	if err != nil {
		log.Fatalf("sync schedule %q: %v", cfg.SyncSchedule, err)
	}
	sched.Start()
	defer sched.Stop()

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("guard rotation server listening on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
