package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// Summary reports a single job run
type Summary struct {
	Processed int
	Failed    int
}

// JobFunc is one maintenance pass. Per-item failures are counted in the
// Summary; a returned error means the run itself could not proceed.
type JobFunc func(ctx context.Context) (Summary, error)

// Schedule decides when a job fires
type Schedule interface {
	// Next returns the first fire time strictly after now
	Next(now time.Time) time.Time
}

// Every fires at a fixed interval, optionally restricted to a daily hour
// window [FromHour, ToHour) in the given location.
type Every struct {
	Interval time.Duration
	FromHour int
	ToHour   int
	Location *time.Location
}

func (e Every) Next(now time.Time) time.Time {
	next := now.Add(e.Interval)
	if e.ToHour == 0 {
		return next
	}

	local := next.In(e.Location)
	if local.Hour() >= e.FromHour && local.Hour() < e.ToHour {
		return next
	}

	// Jump to the start of the next window
	windowStart := time.Date(local.Year(), local.Month(), local.Day(), e.FromHour, 0, 0, 0, e.Location)
	if !windowStart.After(local) {
		windowStart = windowStart.AddDate(0, 0, 1)
	}
	return windowStart
}

// DailyAt fires once a day at a fixed local time
type DailyAt struct {
	Hour     int
	Minute   int
	Location *time.Location
}

func (d DailyAt) Next(now time.Time) time.Time {
	local := now.In(d.Location)
	next := time.Date(local.Year(), local.Month(), local.Day(), d.Hour, d.Minute, 0, 0, d.Location)
	if !next.After(local) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

type job struct {
	name     string
	schedule Schedule
	run      JobFunc
	running  atomic.Bool
}

// Runner drives the clinic's background jobs. Each job runs on its own
// goroutine timer; a job still running when its next tick arrives is
// skipped rather than run concurrently.
type Runner struct {
	log    *logrus.Logger
	jobs   []*job
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewRunner(log *logrus.Logger) *Runner {
	return &Runner{log: log}
}

// Register adds a job. Must be called before Start.
func (r *Runner) Register(name string, schedule Schedule, run JobFunc) {
	r.jobs = append(r.jobs, &job{name: name, schedule: schedule, run: run})
}

func (r *Runner) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel

	for _, j := range r.jobs {
		r.wg.Add(1)
		go r.loop(ctx, j)
	}

	r.log.WithField("jobs", len(r.jobs)).Info("Scheduler started")
}

// Stop cancels all job loops and waits for in-flight runs to finish
func (r *Runner) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
	r.wg.Wait()
	r.log.Info("Scheduler stopped")
}

func (r *Runner) loop(ctx context.Context, j *job) {
	defer r.wg.Done()

	timer := time.NewTimer(time.Until(j.schedule.Next(time.Now())))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			r.fire(ctx, j)
			timer.Reset(time.Until(j.schedule.Next(time.Now())))
		}
	}
}

func (r *Runner) fire(ctx context.Context, j *job) {
	if !j.running.CompareAndSwap(false, true) {
		r.log.WithField("job", j.name).Warn("Previous run still in progress, skipping")
		return
	}
	defer j.running.Store(false)

	started := time.Now()
	summary, err := j.run(ctx)
	entry := r.log.WithFields(logrus.Fields{
		"job":       j.name,
		"processed": summary.Processed,
		"failed":    summary.Failed,
		"duration":  time.Since(started).String(),
	})
	if err != nil {
		entry.WithError(err).Error("Job run failed")
		return
	}
	entry.Info("Job run finished")
}
