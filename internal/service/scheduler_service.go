package service

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/robfig/cron/v3"
)

// SchedulerService wraps cron-based jobs.
type SchedulerService struct {
	cron *cron.Cron
}

func NewSchedulerService(loc *time.Location) *SchedulerService {
	if loc == nil {
		loc = time.Local
	}
	logger := cron.PrintfLogger(log.New(os.Stdout, "cron: ", log.LstdFlags))
	return &SchedulerService{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithSeconds(),
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
	}
}

func (s *SchedulerService) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and waits for a running job to return.
func (s *SchedulerService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// ScheduleInterval runs job every interval, first run one interval from Start.
// Cron ticks on whole seconds, so anything finer is rejected rather than rounded.
func (s *SchedulerService) ScheduleInterval(interval time.Duration, job func()) (cron.EntryID, error) {
	if interval < time.Second || interval%time.Second != 0 {
		return 0, fmt.Errorf("interval %s must be a positive whole number of seconds", interval)
	}
	return s.cron.Schedule(cron.Every(interval), cron.FuncJob(job)), nil
}
