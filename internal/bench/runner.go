package bench

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/0x0BSoD/featfeed/internal/feature"
	"github.com/0x0BSoD/featfeed/internal/model"
)

// DefaultInterval is used when the configured interval is not positive.
const DefaultInterval = 10 * time.Minute

type RunStorage interface {
	Store(ctx context.Context, run model.Run) error
}

type Reporter interface {
	ReportRuns(runs []model.Run)
}

type Runner struct {
	services []*feature.Service
	runs     RunStorage
	reporter Reporter

	interval    time.Duration
	usersCount  int
	concurrency int

	now func() time.Time
}

// New creates a runner over the given pipelines. runs and reporter may be nil.
// A non-positive interval falls back to DefaultInterval.
func New(
	services []*feature.Service,
	runs RunStorage,
	reporter Reporter,
	interval time.Duration,
	usersCount int,
	concurrency int,
) *Runner {
	if interval <= 0 {
		interval = DefaultInterval
	}

	return &Runner{
		services:    services,
		runs:        runs,
		reporter:    reporter,
		interval:    interval,
		usersCount:  usersCount,
		concurrency: concurrency,
		now:         time.Now,
	}
}

func (r *Runner) Start(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	if _, err := r.Run(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := r.Run(ctx); err != nil {
				return err
			}
		}
	}
}

// Run benchmarks every pipeline once and returns the runs in pipeline order.
func (r *Runner) Run(ctx context.Context) ([]model.Run, error) {
	results := make([]model.Run, len(r.services))

	g, ctx := errgroup.WithContext(ctx)
	if r.concurrency > 0 {
		g.SetLimit(r.concurrency)
	}

	for i, svc := range r.services {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			run := r.runOne(svc)

			if r.runs != nil {
				if err := r.runs.Store(ctx, run); err != nil {
					return fmt.Errorf("store run of %s: %w", svc.Name(), err)
				}
			}

			results[i] = run
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Printf("[INFO] bench finished: %d features, %d users each", len(results), r.usersCount)

	if r.reporter != nil {
		r.reporter.ReportRuns(results)
	}

	return results, nil
}

func (r *Runner) runOne(svc *feature.Service) model.Run {
	started := r.now()
	state := svc.DemoComplexFlow(r.usersCount)
	elapsed := r.now().Sub(started)

	return model.Run{
		ID:         uuid.NewString(),
		Feature:    svc.Name(),
		UsersCount: r.usersCount,
		ItemsCount: len(state.Items),
		Checksum:   feature.BuildStateBlock(state).Checksum,
		Duration:   elapsed,
		CreatedAt:  started.UTC(),
	}
}
