package monitor

import (
	"context"
	"time"

	"oppwatch/internal/config"

	"github.com/rs/zerolog"
)

// Scheduler drives the automated mode: one check per interval, strictly
// sequential. A run is expected to finish well inside the interval, so no
// in-process overlap handling is needed beyond the run lock.
type Scheduler struct {
	cfg     config.MonitorConfig
	checker *Checker
	logger  zerolog.Logger
}

// NewScheduler creates a new Scheduler.
func NewScheduler(cfg config.MonitorConfig, checker *Checker, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		cfg:     cfg,
		checker: checker,
		logger:  logger.With().Str("component", "Scheduler").Logger(),
	}
}

// Run performs an immediate first check and then one check per interval
// until the context is cancelled or MaxCycles is reached. It returns the
// context error on cancellation, nil otherwise. Individual run failures are
// logged and do not stop the loop.
func (s *Scheduler) Run(ctx context.Context) error {
	interval := s.cfg.Interval()
	s.logger.Info().Dur("interval", interval).Int("max_cycles", s.cfg.MaxCycles).Msg("Starting monitor loop")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	cycle := 0
	for {
		cycle++
		s.runCycle(ctx, cycle)

		if s.cfg.MaxCycles > 0 && cycle >= s.cfg.MaxCycles {
			s.logger.Info().Int("cycles", cycle).Msg("Max cycles reached, stopping monitor loop")
			return nil
		}

		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Monitor loop cancelled")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (s *Scheduler) runCycle(ctx context.Context, cycle int) {
	s.logger.Debug().Int("cycle", cycle).Msg("Starting check cycle")
	result := s.checker.Check(ctx)
	if result.Err != nil {
		s.logger.Error().Err(result.Err).Int("cycle", cycle).Msg("Check cycle failed")
	}
}
