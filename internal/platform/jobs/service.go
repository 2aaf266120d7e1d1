package jobs

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"

	"hrrecords/internal/platform/config"
	"hrrecords/internal/platform/querier"
)

const (
	JobIdempotencyCleanup = "idempotency_cleanup"
	JobAuditRetention     = "audit_retention"
)

// Service runs housekeeping jobs on a single background worker.
type Service struct {
	DB     querier.Querier
	Cfg    config.Config
	Logger logrus.FieldLogger
	queue  chan job
	now    func() time.Time
}

type job struct {
	Type string
	Run  func(context.Context) (int64, error)
}

func New(db querier.Querier, cfg config.Config, logger logrus.FieldLogger) *Service {
	return &Service{
		DB:     db,
		Cfg:    cfg,
		Logger: logger,
		queue:  make(chan job, 16),
		now:    time.Now,
	}
}

// Start returns immediately; the worker and scheduler stop with ctx.
func (s *Service) Start(ctx context.Context) {
	go s.worker(ctx)
	if s.Cfg.CleanupInterval > 0 {
		go s.schedule(ctx, s.Cfg.CleanupInterval)
	}
}

func (s *Service) Enqueue(jobType string, run func(context.Context) (int64, error)) {
	select {
	case s.queue <- job{Type: jobType, Run: run}:
	default:
		s.Logger.WithField("jobType", jobType).Warn("job queue full")
	}
}

func (s *Service) RunNow(ctx context.Context, jobType string, run func(context.Context) (int64, error)) (int64, error) {
	return s.runJob(ctx, job{Type: jobType, Run: run})
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if _, err := s.runJob(ctx, j); err != nil {
				s.Logger.WithError(err).WithField("jobType", j.Type).Warn("job run failed")
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) (int64, error) {
	start := s.now()
	deleted, err := j.Run(ctx)
	entry := s.Logger.WithFields(logrus.Fields{
		"jobType":  j.Type,
		"deleted":  deleted,
		"duration": s.now().Sub(start).String(),
	})
	if err != nil {
		return deleted, err
	}
	entry.Debug("job completed")
	return deleted, nil
}

func (s *Service) schedule(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Enqueue(JobIdempotencyCleanup, s.PurgeIdempotencyKeys)
			if s.Cfg.AuditRetentionDays > 0 {
				s.Enqueue(JobAuditRetention, s.PurgeAuditEvents)
			}
		}
	}
}

// PurgeIdempotencyKeys drops stored responses older than the idempotency TTL.
func (s *Service) PurgeIdempotencyKeys(ctx context.Context) (int64, error) {
	if s.Cfg.IdempotencyTTL <= 0 {
		return 0, nil
	}
	cutoff := s.now().Add(-s.Cfg.IdempotencyTTL)
	tag, err := s.DB.Exec(ctx, "DELETE FROM idempotency_keys WHERE created_at < $1", cutoff)
	if err != nil {
		return 0, errors.Wrap(err, "purge idempotency keys")
	}
	return tag.RowsAffected(), nil
}

// PurgeAuditEvents drops audit events past the retention window. Zero days keeps everything.
func (s *Service) PurgeAuditEvents(ctx context.Context) (int64, error) {
	if s.Cfg.AuditRetentionDays <= 0 {
		return 0, nil
	}
	cutoff := s.now().AddDate(0, 0, -s.Cfg.AuditRetentionDays)
	tag, err := s.DB.Exec(ctx, "DELETE FROM audit_events WHERE created_at < $1", cutoff)
	if err != nil {
		return 0, errors.Wrap(err, "purge audit events")
	}
	return tag.RowsAffected(), nil
}
