package scheduling

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// RegenerationJob is a background worker that re-runs the Generation
// Façade for a single target month on a cron schedule, until that
// month's schedule is published. It is a convenience job a caller may
// register alongside the HTTP server; the façade and its generators have
// no knowledge of it.
type RegenerationJob struct {
	facade   *Facade
	schedule cron.Schedule
	year     int
	month    int
	request  GenerationRequest

	isPublished func(ctx context.Context, year, month int) (bool, error)

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
}

// NewRegenerationJob builds a job that regenerates (year, month) with req
// on cronExpr's schedule (standard 5-field cron syntax) until
// isPublished reports true for that month.
func NewRegenerationJob(facade *Facade, cronExpr string, year, month int, req GenerationRequest, isPublished func(ctx context.Context, year, month int) (bool, error)) (*RegenerationJob, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("parse cron expression %q: %w", cronExpr, err)
	}
	return &RegenerationJob{
		facade:      facade,
		schedule:    schedule,
		year:        year,
		month:       month,
		request:     req,
		isPublished: isPublished,
	}, nil
}

// Start begins the job in a goroutine. Returns immediately; call Stop to
// shut down.
func (j *RegenerationJob) Start() {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.running {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	j.cancel = cancel
	j.running = true

	go j.run(ctx)
	log.Info().Int("year", j.year).Int("month", j.month).Msg("regeneration job started")
}

// Stop gracefully shuts down the job.
func (j *RegenerationJob) Stop() {
	j.mu.Lock()
	defer j.mu.Unlock()

	if !j.running {
		return
	}

	j.cancel()
	j.running = false
	log.Info().Int("year", j.year).Int("month", j.month).Msg("regeneration job stopped")
}

// IsRunning returns whether the job is currently running.
func (j *RegenerationJob) IsRunning() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.running
}

func (j *RegenerationJob) run(ctx context.Context) {
	now := time.Now()
	next := j.schedule.Next(now)

	for {
		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case fired := <-timer.C:
			j.tick(ctx)
			next = j.schedule.Next(fired)
		}
	}
}

func (j *RegenerationJob) tick(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("regeneration job tick panicked")
		}
	}()

	if j.isPublished != nil {
		published, err := j.isPublished(ctx, j.year, j.month)
		if err != nil {
			log.Error().Err(err).Msg("regeneration job failed to check publication state")
			return
		}
		if published {
			log.Info().Int("year", j.year).Int("month", j.month).Msg("regeneration job stopping: month published")
			j.Stop()
			return
		}
	}

	req := j.request
	req.Year, req.Month = j.year, j.month
	_, _, _, diag, err := j.facade.Generate(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		log.Error().Err(err).Int("year", j.year).Int("month", j.month).Msg("regeneration job tick failed")
		return
	}
	log.Info().Int("year", j.year).Int("month", j.month).Int64("runtime_ms", diag.RuntimeMS).Msg("regeneration job regenerated schedule")
}
