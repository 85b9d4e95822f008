package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// EventCleaner deletes audit events older than the given retention.
type EventCleaner interface {
	DeleteOldEvents(retention time.Duration) (int64, error)
}

// AuditRetentionScheduler periodically prunes the audit trail.
type AuditRetentionScheduler struct {
	cleaner   EventCleaner
	retention time.Duration
	schedule  string
	log       *zap.Logger

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.RWMutex
	isRunning bool
	isPruning bool
}

// NewAuditRetentionScheduler creates a scheduler that keeps retentionDays of
// audit history. The schedule uses the standard 5-field cron syntax.
func NewAuditRetentionScheduler(cleaner EventCleaner, retentionDays int, schedule string, log *zap.Logger) *AuditRetentionScheduler {
	return &AuditRetentionScheduler{
		cleaner:   cleaner,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		schedule:  schedule,
		log:       log.Named("audit-retention"),
		cron:      cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// ValidateSchedule reports whether schedule is a valid 5-field cron expression.
func ValidateSchedule(schedule string) error {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", schedule, err)
	}
	return nil
}

// Start registers the cleanup job and starts the cron runner.
// A non-positive retention disables pruning.
func (s *AuditRetentionScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if s.retention <= 0 {
		s.log.Info("Audit retention disabled")
		return nil
	}

	if err := ValidateSchedule(s.schedule); err != nil {
		return err
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.RunOnce()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule audit cleanup: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	s.log.Info("Audit retention scheduler started",
		zap.String("schedule", s.schedule),
		zap.Duration("retention", s.retention),
		zap.Time("next_run", s.cron.Entry(entryID).Next),
	)
	return nil
}

// Stop stops the cron runner and waits for a running cleanup to finish.
func (s *AuditRetentionScheduler) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	ctx := s.cron.Stop()
	s.mu.Unlock()

	// The running job takes s.mu when it finishes, so wait unlocked
	<-ctx.Done()

	s.mu.Lock()
	s.cron.Remove(s.entryID)
	s.mu.Unlock()

	s.log.Info("Audit retention scheduler stopped")
}

// IsRunning returns whether the scheduler is active
func (s *AuditRetentionScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRunTime returns when the next cleanup will occur, or nil when stopped.
func (s *AuditRetentionScheduler) NextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	t := s.cron.Entry(s.entryID).Next
	return &t
}

// RunOnce prunes expired events immediately. Overlapping runs are skipped.
func (s *AuditRetentionScheduler) RunOnce() (int64, error) {
	s.mu.Lock()
	if s.isPruning {
		s.mu.Unlock()
		s.log.Debug("Audit cleanup skipped, already running")
		return 0, nil
	}
	s.isPruning = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isPruning = false
		s.mu.Unlock()
	}()

	deleted, err := s.cleaner.DeleteOldEvents(s.retention)
	if err != nil {
		s.log.Error("Audit cleanup failed", zap.Error(err))
		return 0, err
	}
	s.log.Info("Audit cleanup completed", zap.Int64("deleted", deleted))
	return deleted, nil
}
