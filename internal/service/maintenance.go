package service

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"nyaya/internal/config"
	"nyaya/internal/domain"
	"nyaya/internal/export"
	"nyaya/internal/port"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// MaintenanceRecorder records the outcome of scheduled jobs.
type MaintenanceRecorder interface {
	ObserveBackup(err error)
	AddExpiredSessions(n int64)
}

// cronLogger forwards scheduler messages, including recovered job panics, to zap.
type cronLogger struct {
	log *zap.SugaredLogger
}

// NewCronLogger adapts logger to the cron.Logger interface.
func NewCronLogger(logger *zap.Logger) cron.Logger {
	return cronLogger{log: logger.Sugar()}
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Errorw(msg, append(keysAndValues, "error", err)...)
}

// BackupResult describes an uploaded case archive.
type BackupResult struct {
	Key       string    `json:"key"`
	Cases     int       `json:"cases"`
	URL       string    `json:"url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Maintenance runs the periodic session cleanup and case backup jobs.
type Maintenance struct {
	sessions SessionService
	caseRepo port.CaseRepository
	storage  port.ObjectStorage
	cfg      config.MaintenanceConfig
	presign  int64
	recorder MaintenanceRecorder
	log      *zap.Logger
	cron     *cron.Cron
	now      func() time.Time
}

// NewMaintenance creates the job runner. storage may be nil, in which case
// backups fail with domain.ErrBackupFailed.
func NewMaintenance(
	sessions SessionService,
	caseRepo port.CaseRepository,
	storage port.ObjectStorage,
	cfg config.MaintenanceConfig,
	presignExpiry int64,
	recorder MaintenanceRecorder,
	logger *zap.Logger,
) *Maintenance {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Maintenance{
		sessions: sessions,
		caseRepo: caseRepo,
		storage:  storage,
		cfg:      cfg,
		presign:  presignExpiry,
		recorder: recorder,
		log:      logger.Named("maintenance"),
		cron:     cron.New(cron.WithChain(cron.Recover(NewCronLogger(logger.Named("maintenance"))))),
		now:      time.Now,
	}
}

// Start registers the configured jobs and starts the scheduler. An empty
// schedule disables its job.
func (m *Maintenance) Start() error {
	if m.cfg.CleanupSchedule != "" {
		if _, err := m.cron.AddFunc(m.cfg.CleanupSchedule, func() {
			if _, err := m.ExpireSessions(context.Background()); err != nil {
				m.log.Error("session cleanup failed", zap.Error(err))
			}
		}); err != nil {
			return fmt.Errorf("scheduling session cleanup: %w", err)
		}
	}
	if m.cfg.BackupSchedule != "" && m.storage != nil {
		if _, err := m.cron.AddFunc(m.cfg.BackupSchedule, func() {
			if _, err := m.Backup(context.Background()); err != nil {
				m.log.Error("case backup failed", zap.Error(err))
			}
		}); err != nil {
			return fmt.Errorf("scheduling case backup: %w", err)
		}
	}
	m.cron.Start()
	m.log.Info("maintenance scheduler started",
		zap.String("cleanup_schedule", m.cfg.CleanupSchedule),
		zap.String("backup_schedule", m.cfg.BackupSchedule),
		zap.Int("jobs", len(m.cron.Entries())))
	return nil
}

// Stop halts the scheduler and waits for running jobs until ctx is done.
func (m *Maintenance) Stop(ctx context.Context) {
	select {
	case <-m.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// ExpireSessions marks active sessions older than the configured maximum age as expired.
func (m *Maintenance) ExpireSessions(ctx context.Context) (int64, error) {
	n, err := m.sessions.ExpireOlderThan(ctx, m.cfg.SessionMaxAge)
	if err != nil {
		return 0, err
	}
	if m.recorder != nil {
		m.recorder.AddExpiredSessions(n)
	}
	m.log.Info("expired stale sessions", zap.Int64("count", n))
	return n, nil
}

// Backup exports every stored case to XLSX and uploads it to object storage.
func (m *Maintenance) Backup(ctx context.Context) (*BackupResult, error) {
	result, err := m.backup(ctx)
	if m.recorder != nil {
		m.recorder.ObserveBackup(err)
	}
	return result, err
}

func (m *Maintenance) backup(ctx context.Context) (*BackupResult, error) {
	if m.storage == nil {
		return nil, fmt.Errorf("%w: object storage is not configured", domain.ErrBackupFailed)
	}

	cases, err := m.caseRepo.ListSince(ctx, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBackupFailed, err)
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, cases); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBackupFailed, err)
	}

	now := m.now().UTC()
	key := BackupKey(m.cfg.BackupPrefix, now)
	if _, err := m.storage.Upload(ctx, port.UploadInput{
		Key:         key,
		Body:        &buf,
		ContentType: xlsxContentType,
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBackupFailed, err)
	}

	result := &BackupResult{Key: key, Cases: len(cases), CreatedAt: now}
	if m.presign > 0 {
		url, err := m.storage.GetPresignedURL(ctx, key, m.presign)
		if err != nil {
			m.log.Warn("presigning backup failed", zap.String("key", key), zap.Error(err))
		} else {
			result.URL = url
		}
	}

	m.log.Info("case backup uploaded", zap.String("key", key), zap.Int("cases", len(cases)))
	return result, nil
}

// BackupKey returns the object key of a backup taken at t.
func BackupKey(prefix string, t time.Time) string {
	return path.Join(prefix, fmt.Sprintf("cases_%s.xlsx", t.UTC().Format("20060102T150405Z")))
}
