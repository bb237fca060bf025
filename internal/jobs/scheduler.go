package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"crimewatch/api/internal/admin"
	"crimewatch/api/internal/metrics"
	"crimewatch/api/internal/models"
	"crimewatch/api/internal/service"
)

type Scheduler struct {
	cron     *cron.Cron
	sessions *admin.SessionStore
	crimes   *service.CrimeService
	log      zerolog.Logger
}

func NewScheduler(sessions *admin.SessionStore, crimes *service.CrimeService, log zerolog.Logger) *Scheduler {
	c := cron.New(cron.WithSeconds())
	return &Scheduler{
		cron:     c,
		sessions: sessions,
		crimes:   crimes,
		log:      log,
	}
}

func (s *Scheduler) Start() error {
	if s.sessions.TTL() > 0 {
		if _, err := s.cron.AddFunc("0 * * * * *", s.sweepSessions); err != nil {
			return err
		}
	}

	if _, err := s.cron.AddFunc("0 0 6 * * *", s.logReportStats); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop waits for running jobs to finish, up to a short grace period.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
	}
}

func (s *Scheduler) sweepSessions() {
	removed := s.sessions.Sweep(time.Now())
	metrics.AdminSessionsActive.Set(float64(s.sessions.ActiveCount()))
	if removed > 0 {
		s.log.Info().Int("removed", removed).Msg("expired admin sessions swept")
	}
}

func (s *Scheduler) logReportStats() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	crimes, err := s.crimes.ListAll(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("report stats failed")
		return
	}

	pending := 0
	for _, crime := range crimes {
		if crime.Status == models.StatusPending {
			pending++
		}
	}

	s.log.Info().
		Int("total", len(crimes)).
		Int("pending", pending).
		Msg("daily report stats")
}
