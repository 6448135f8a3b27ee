// Package scheduler runs periodic background jobs, currently just the
// profile regeneration sweep that keeps every member's taste profile in
// step with the countdown as results land.
package scheduler

import (
	"github.com/CarlManson/hottest100/logging"
	"github.com/robfig/cron/v3"
)

type Config struct {
	Enabled  bool
	CronSpec string
}

// Scheduler wraps a cron runner around a single job function.
type Scheduler struct {
	cfg  Config
	cron *cron.Cron
	job  func()
}

func New(cfg Config, job func()) *Scheduler {
	return &Scheduler{
		cfg:  cfg,
		cron: cron.New(),
		job:  job,
	}
}

// Start registers the job and begins the cron loop. A disabled scheduler is
// a no-op so the caller never has to branch.
func (s *Scheduler) Start() error {
	if !s.cfg.Enabled {
		logging.Log.Info("SCHEDULER: disabled, skipping")
		return nil
	}

	_, err := s.cron.AddFunc(s.cfg.CronSpec, func() {
		logging.Log.Info("SCHEDULER: running scheduled job")
		s.job()
	})
	if err != nil {
		logging.Log.Errorf("SCHEDULER: invalid cron spec %q: %v", s.cfg.CronSpec, err)
		return err
	}

	s.cron.Start()
	logging.Log.Infof("SCHEDULER: started with spec %q", s.cfg.CronSpec)
	return nil
}

// Stop halts the cron loop; running jobs finish on their own.
func (s *Scheduler) Stop() {
	if s.cfg.Enabled {
		s.cron.Stop()
		logging.Log.Info("SCHEDULER: stopped")
	}
}
