package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fundscore/internal/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job is a named unit of scheduled work. Run must be safe to retry.
type Job interface {
	Name() string
	Schedule() string
	Run(ctx context.Context) error
}

type Scheduler struct {
	cron *cron.Cron
	log  *zap.SugaredLogger
	jobs map[string]Job
	mu   sync.RWMutex

	maxRetries int
	retryDelay time.Duration
}

func New(log *zap.SugaredLogger) *Scheduler {
	if log == nil {
		log = logger.New()
	}
	return &Scheduler{
		cron:       cron.New(),
		log:        log,
		jobs:       map[string]Job{},
		maxRetries: 3,
		retryDelay: time.Minute,
	}
}

func (s *Scheduler) AddJob(job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[job.Name()]; exists {
		return fmt.Errorf("job %s already registered", job.Name())
	}

	_, err := s.cron.AddFunc(job.Schedule(), func() {
		s.runJob(job)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule job %s: %w", job.Name(), err)
	}

	s.jobs[job.Name()] = job
	s.log.Infow("job scheduled", "job", job.Name(), "schedule", job.Schedule())
	return nil
}

func (s *Scheduler) Start() {
	s.log.Info("starting scheduler")
	s.cron.Start()
}

// Stop blocks until in-flight jobs finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("scheduler stopped")
}

// RunJob triggers a registered job immediately, outside its schedule.
func (s *Scheduler) RunJob(name string) error {
	s.mu.RLock()
	job, exists := s.jobs[name]
	s.mu.RUnlock()

	if !exists {
		return fmt.Errorf("job %s not found", name)
	}
	go s.runJob(job)
	return nil
}

func (s *Scheduler) runJob(job Job) {
	start := time.Now()
	s.log.Infow("job started", "job", job.Name())

	var err error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		ctx := logger.NewContext(context.Background(), s.log)
		err = job.Run(ctx)
		if err == nil {
			s.log.Infow("job completed", "job", job.Name(), "elapsed", time.Since(start).String())
			return
		}
		s.log.Warnw("job attempt failed", "job", job.Name(), "attempt", attempt+1, "error", err.Error())
		if attempt < s.maxRetries {
			time.Sleep(s.retryDelay)
		}
	}
	s.log.Errorw("job failed after all retries", "job", job.Name(), "error", err.Error())
}
