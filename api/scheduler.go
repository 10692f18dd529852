/*
scheduler.go - Background ledger sync

PURPOSE:
  Runs Generator.Sync on a cron schedule so elapsed days get ledgered even
  when no client requests a month view. The original client persisted
  history as a side effect of rendering; a server needs its own heartbeat.

DESIGN:
  - Standard 5-field cron expression (minute hour dom month dow),
    default once a day at 06:00.
  - A single goroutine sleeps until the next fire time, syncs, repeats.
  - Stop() is safe to call once and waits for the goroutine to exit.

USAGE:
  sched, err := NewSyncScheduler(gen, ctrl, "0 6 * * *")
  sched.Start()
  // ... later
  sched.Stop()
*/
package api

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/smartcloud/guard-engine/rotation"
)

// cronParser accepts standard 5-field cron expressions.
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// SyncScheduler periodically ledgers the current month.
type SyncScheduler struct {
	Generator *rotation.Generator
	Control   *rotation.Control

	schedule cron.Schedule
	stop     chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
}

// NewSyncScheduler validates the cron expression and builds the scheduler.
func NewSyncScheduler(gen *rotation.Generator, ctrl *rotation.Control, expr string) (*SyncScheduler, error) {
	schedule, err := cronParser.Parse(expr)
	if err != nil {
		return nil, err
	}
	return &SyncScheduler{
		Generator: gen,
		Control:   ctrl,
		schedule:  schedule,
		stop:      make(chan struct{}),
	}, nil
}

// Start launches the background loop.
func (s *SyncScheduler) Start() {
	s.wg.Add(1)
	go s.run()
}

// Stop signals the loop to exit and waits for it.
func (s *SyncScheduler) Stop() {
	s.once.Do(func() { close(s.stop) })
	s.wg.Wait()
}

func (s *SyncScheduler) run() {
	defer s.wg.Done()

	for {
		next := s.schedule.Next(time.Now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-s.stop:
			timer.Stop()
			return
		case <-timer.C:
			s.syncOnce()
		}
	}
}

func (s *SyncScheduler) syncOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	added, err := s.Generator.Sync(ctx)
	if err != nil {
		log.Printf("sync scheduler: %v", err)
		return
	}
	if added > 0 {
		log.Printf("sync scheduler: ledgered %d elapsed days", added)
		s.Control.Invalidate()
	}
}
