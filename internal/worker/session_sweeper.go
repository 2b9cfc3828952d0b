package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// ExpiredSessionDeleter is satisfied by *repository.SessionRepository.
type ExpiredSessionDeleter interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// SessionSweeper periodically purges expired sessions so the session table
// only holds tokens that can still authenticate.
type SessionSweeper struct {
	sessions ExpiredSessionDeleter
	interval time.Duration
	log      zerolog.Logger
	done     chan struct{}
}

// NewSessionSweeper creates a new SessionSweeper.
func NewSessionSweeper(sessions ExpiredSessionDeleter, interval time.Duration, log zerolog.Logger) *SessionSweeper {
	return &SessionSweeper{
		sessions: sessions,
		interval: interval,
		log:      log.With().Str("component", "session_sweeper").Logger(),
		done:     make(chan struct{}),
	}
}

// Start sweeps once immediately and then every interval until ctx is
// cancelled. A sweep still running when the next one is due is skipped.
// Call in a goroutine, once.
func (w *SessionSweeper) Start(ctx context.Context) {
	defer close(w.done)
	w.log.Info().Dur("interval", w.interval).Msg("Worker started")

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	c.Schedule(cron.Every(w.interval), cron.FuncJob(func() { w.sweep(ctx) }))

	w.sweep(ctx)
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()
	w.log.Info().Msg("Worker stopped")
}

// Done is closed once Start has returned and no sweep is in flight.
func (w *SessionSweeper) Done() <-chan struct{} {
	return w.done
}

func (w *SessionSweeper) sweep(ctx context.Context) {
	n, err := w.sessions.DeleteExpired(ctx)
	if err != nil {
		if ctx.Err() == nil {
			w.log.Error().Err(err).Msg("Sweep failed")
		}
		return
	}
	if n > 0 {
		w.log.Info().Int64("count", n).Msg("Expired sessions purged")
	}
}
