package convert

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Job is one independent conversion in a batch.
type Job struct {
	ID      string
	Request Request
}

// NewJob wraps a request with a fresh id for progress tracking.
func NewJob(req Request) Job {
	return Job{ID: uuid.NewString(), Request: req}
}

// Result captures the outcome of one conversion attempt.
type Result struct {
	Job        Job
	OutputPath string
	Duration   time.Duration
	Err        error
}

// ProgressReporter receives notifications as jobs move through a batch.
type ProgressReporter interface {
	Start(job Job)
	Complete(result Result)
}

// Service runs batches of conversions with bounded parallelism.
type Service struct {
	Invoker *Invoker
}

// Options controls batch execution.
type Options struct {
	Concurrency int
	Reporter    ProgressReporter
}

// ConvertAll executes the jobs with at most Concurrency external processes
// in flight and returns one result per job, in job order. Jobs stay
// independent: one failure never stops the others, and duplicate requests
// are treated as distinct jobs.
func (s *Service) ConvertAll(ctx context.Context, jobs []Job, opts Options) []Result {
	if ctx == nil {
		ctx = context.Background()
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	results := make([]Result, len(jobs))

	var (
		wg  sync.WaitGroup
		sem = make(chan struct{}, concurrency)
	)

	for i, job := range jobs {
		i, job := i, job
		if opts.Reporter != nil {
			opts.Reporter.Start(job)
		}
		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			res := Result{Job: job}
			start := time.Now()
			if err := ctx.Err(); err != nil {
				res.Err = err
			} else {
				res.OutputPath, res.Err = s.Invoker.Convert(ctx, job.Request)
			}
			res.Duration = time.Since(start)

			results[i] = res
			if opts.Reporter != nil {
				opts.Reporter.Complete(res)
			}
		}()
	}

	wg.Wait()
	return results
}
