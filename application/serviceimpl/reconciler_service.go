package serviceimpl

import (
	"context"
	"time"

	"taskboard/application/lifecycle"
	"taskboard/domain/ports"
	"taskboard/domain/repositories"
	"taskboard/domain/services"
	"taskboard/pkg/apperror"
	"taskboard/pkg/logger"
	"taskboard/pkg/scheduler"
)

const (
	reconcileJobID   = "project_reconciler"
	reconcileLockKey = "lock:taskboard:project_reconciler"
	reconcileLockTTL = 10 * time.Minute
)

type ReconcilerConfig struct {
	Enabled bool
	Cron    string
}

// ReconcilerService periodically re-saves every project through the project
// pipeline so derived fields and cached rows catch up with edits that did not
// trigger a synchronization, such as a title-only task change.
type ReconcilerService struct {
	config    ReconcilerConfig
	store     repositories.Store
	scheduler scheduler.EventScheduler
	lock      ports.DistributedLockPort
	notifier
}

func NewReconcilerService(config ReconcilerConfig, store repositories.Store, eventScheduler scheduler.EventScheduler, events ports.EventPublisherPort, cache ports.ProjectSummaryCachePort) services.ReconcilerService {
	if config.Cron == "" {
		config.Cron = "0 * * * *"
	}
	return &ReconcilerService{
		config:    config,
		store:     store,
		scheduler: eventScheduler,
		notifier:  notifier{events: events, cache: cache},
	}
}

// SetLock makes scheduled runs skip when another instance holds the lock.
func (s *ReconcilerService) SetLock(lock ports.DistributedLockPort) {
	s.lock = lock
}

// Start registers the job with the scheduler; it is a no-op when disabled.
func (s *ReconcilerService) Start() error {
	if !s.config.Enabled {
		logger.Info("Project reconciler disabled")
		return nil
	}
	if err := scheduler.ValidateCronExpression(s.config.Cron); err != nil {
		return err
	}
	return s.scheduler.AddJob(reconcileJobID, s.config.Cron, s.runScheduled)
}

func (s *ReconcilerService) runScheduled() {
	ctx := context.Background()
	if s.lock != nil {
		acquired, err := s.lock.AcquireLock(ctx, reconcileLockKey, reconcileLockTTL)
		if err != nil {
			logger.ErrorContext(ctx, "Failed to acquire reconciler lock", "error", err)
			return
		}
		if !acquired {
			logger.InfoContext(ctx, "Project reconciliation running elsewhere, skipping")
			return
		}
		defer func() {
			if err := s.lock.ReleaseLock(ctx, reconcileLockKey); err != nil {
				logger.WarnContext(ctx, "Failed to release reconciler lock", "error", err)
			}
		}()
	}
	if _, err := s.ReconcileAll(ctx); err != nil {
		logger.ErrorContext(ctx, "Project reconciliation failed", "error", err)
	}
}

// ReconcileAll saves each project in its own transaction. A project that
// fails, for example because a linked task vanished, is logged and skipped.
func (s *ReconcilerService) ReconcileAll(ctx context.Context) (int, error) {
	ids, err := s.store.Projects().ListIDs(ctx)
	if err != nil {
		return 0, err
	}

	reconciled := 0
	for _, id := range ids {
		err := s.store.Transaction(ctx, func(tx repositories.Store) error {
			project, err := tx.Projects().GetByID(ctx, id)
			if err != nil {
				return err
			}
			return lifecycle.SaveProject(ctx, tx, project)
		})
		if err != nil {
			if apperror.IsNotFound(err) {
				logger.WarnContext(ctx, "Skipping project during reconciliation", "project_id", id, "reason", err.Error())
				continue
			}
			return reconciled, err
		}
		reconciled++
		s.invalidate(ctx, id)
	}

	logger.InfoContext(ctx, "Project reconciliation completed", "projects", len(ids), "reconciled", reconciled)
	return reconciled, nil
}
