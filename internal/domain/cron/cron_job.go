package cron

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/pngfun/backend/internal/common"
	"github.com/pngfun/backend/pkg/xcontext"
)

type CronJob interface {
	Name() string
	Interval() time.Duration
	Do(context.Context) error
}

type CronJobManager struct {
	scheduler gocron.Scheduler
	jobs      []CronJob
}

func NewCronJobManager() (*CronJobManager, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	return &CronJobManager{scheduler: scheduler}, nil
}

func (m *CronJobManager) Register(job CronJob) {
	m.jobs = append(m.jobs, job)
}

// Start schedules every registered job, runs them once immediately and
// blocks until ctx is done. A job never overlaps with its previous run.
func (m *CronJobManager) Start(ctx context.Context) error {
	for _, job := range m.jobs {
		job := job
		_, err := m.scheduler.NewJob(
			gocron.DurationJob(job.Interval()),
			gocron.NewTask(func() { m.run(ctx, job) }),
			gocron.WithName(job.Name()),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
			gocron.WithStartAt(gocron.WithStartImmediately()),
		)
		if err != nil {
			return err
		}
	}

	xcontext.Logger(ctx).Infof("Cron job manager started")
	m.scheduler.Start()

	<-ctx.Done()

	if err := m.scheduler.Shutdown(); err != nil {
		return err
	}

	xcontext.Logger(ctx).Infof("Cron job manager stopped")
	return nil
}

func (m *CronJobManager) run(ctx context.Context, job CronJob) {
	xcontext.Logger(ctx).Debugf("%s is running...", job.Name())

	result := "ok"
	if err := job.Do(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cron job %s failed: %v", job.Name(), err)
		result = "error"
	}

	common.PromCounters[common.CronJobRunTotal].WithLabelValues(job.Name(), result).Inc()
}
