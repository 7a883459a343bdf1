package backup

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"blogd/internal/backup/interfaces"
	"blogd/internal/models"
	"blogd/internal/providers"
	"blogd/internal/schema"
	"blogd/internal/storage"
	"blogd/internal/structures"
)

const (
	DirName           = "backups"
	DefaultMaxBackups = 30

	filePerm = 0o644
)

var (
	ErrBackupNotFound = errors.New("backup not found")
	ErrInvalidBackup  = errors.New("invalid backup")
	ErrInvalidName    = errors.New("invalid backup name")
)

type ManagerInterface interface {
	CreateBackup(ctx context.Context) (string, error)
	ListBackups() ([]models.BackupInfo, error)
	DeleteBackup(name string) error
	RestoreFromBackup(ctx context.Context, name string) error
	ExportData(ctx context.Context) (string, error)
}

type Manager struct {
	store      storage.StoreInterface
	compressor interfaces.CompressorInterface
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface

	dataDir    string
	dir        string
	maxBackups int
	compress   bool

	// mu serializes creation, export, retention and restore so timestamps
	// stay unique and retention never races a concurrent create.
	mu  sync.Mutex
	now func() time.Time
}

func NewManager(conf *structures.Config, store storage.StoreInterface, compressor interfaces.CompressorInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) *Manager {
	maxBackups := conf.Backup.MaxBackups
	if maxBackups <= 0 {
		maxBackups = DefaultMaxBackups
	}
	return &Manager{
		store:      store,
		compressor: compressor,
		logger:     logger,
		metrics:    metrics,
		dataDir:    store.DataDir(),
		dir:        filepath.Join(store.DataDir(), DirName),
		maxBackups: maxBackups,
		compress:   conf.Backup.Compress,
		now:        time.Now,
	}
}

func (m *Manager) Dir() string {
	return m.dir
}

// CreateBackup writes a snapshot of every collection and then applies the
// retention cap. The returned path names a file whose timestamp is strictly
// later than every backup already present.
func (m *Manager) CreateBackup(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.create(ctx)
}

func (m *Manager) create(ctx context.Context) (string, error) {
	start := time.Now()
	path, err := m.writeBackup(ctx)
	if err != nil {
		m.metrics.IncBackupsTotal("failure")
		m.logger.Errorf(providers.TypeBackup, "backup failed: %v", err)
		return "", err
	}
	m.metrics.IncBackupsTotal("success")
	m.metrics.ObserveBackupDuration(time.Since(start))
	m.logger.Infof(providers.TypeBackup, "backup created: %s", filepath.Base(path))

	if err := m.enforceRetention(); err != nil {
		m.logger.Warnf(providers.TypeBackup, "retention cleanup incomplete: %v", err)
	}
	return path, nil
}

func (m *Manager) writeBackup(ctx context.Context) (string, error) {
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	snap, err := m.gather(ctx)
	if err != nil {
		return "", err
	}

	existing, err := m.ListBackups()
	if err != nil {
		return "", err
	}
	ts := schema.Timestamp(m.now())
	if len(existing) > 0 && !ts.After(existing[0].CreatedAt) {
		ts = existing[0].CreatedAt.Add(time.Millisecond)
	}
	snap.Timestamp = ts

	data, err := storage.MarshalDocument(snap)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	if m.compress {
		if data, err = m.compressor.Compress(data); err != nil {
			return "", fmt.Errorf("compress snapshot: %w", err)
		}
	}

	path := filepath.Join(m.dir, backupName(ts, m.compress))
	if err := storage.WriteFileAtomic(path, data, filePerm); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	// Listing orders by mtime, so it must match the name.
	if err := os.Chtimes(path, ts, ts); err != nil {
		return "", fmt.Errorf("stamp backup: %w", err)
	}
	return path, nil
}

// gather reads the four collections concurrently through the store read path.
// Each read returns freshly decoded records, so the snapshot shares nothing
// with live state.
func (m *Manager) gather(ctx context.Context) (models.Snapshot, error) {
	snap := models.Snapshot{Version: models.SnapshotVersion}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		snap.Posts = m.store.GetPosts()
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		snap.Comments = m.store.GetComments()
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		snap.Settings = m.store.GetSettings()
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		snap.Analytics = m.store.GetAnalytics()
		return nil
	})

	if err := g.Wait(); err != nil {
		return models.Snapshot{}, fmt.Errorf("gather snapshot: %w", err)
	}
	return snap, nil
}

// ListBackups returns backups newest first using directory metadata only.
func (m *Manager) ListBackups() ([]models.BackupInfo, error) {
	entries, err := os.ReadDir(m.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []models.BackupInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list backups: %w", err)
	}

	backups := make([]models.BackupInfo, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() || !ValidName(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		backups = append(backups, models.BackupInfo{
			Name:      e.Name(),
			Size:      info.Size(),
			CreatedAt: info.ModTime().UTC(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		if !backups[i].CreatedAt.Equal(backups[j].CreatedAt) {
			return backups[i].CreatedAt.After(backups[j].CreatedAt)
		}
		return backups[i].Name > backups[j].Name
	})
	return backups, nil
}

func (m *Manager) enforceRetention() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}
	defer func() {
		if remaining, err := m.ListBackups(); err == nil {
			m.metrics.SetBackupsCount(len(remaining))
		}
	}()

	var errs []error
	for _, b := range backups[min(len(backups), m.maxBackups):] {
		if err := os.Remove(filepath.Join(m.dir, b.Name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
			continue
		}
		m.logger.Infof(providers.TypeBackup, "retention removed %s", b.Name)
	}
	return errors.Join(errs...)
}

// DeleteBackup removes one backup. A missing file is not an error.
func (m *Manager) DeleteBackup(name string) error {
	if !ValidName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	err := os.Remove(filepath.Join(m.dir, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete backup: %w", err)
	}
	if err == nil {
		m.logger.Infof(providers.TypeBackup, "backup deleted: %s", name)
	}
	if remaining, err := m.ListBackups(); err == nil {
		m.metrics.SetBackupsCount(len(remaining))
	}
	return nil
}

// ExportData writes a standalone copy of all data next to the collections.
// Exports live outside the backup directory and are never rotated.
func (m *Manager) ExportData(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap, err := m.gather(ctx)
	if err != nil {
		return "", err
	}
	now := schema.Timestamp(m.now())
	path := filepath.Join(m.dataDir, exportName(now))
	for {
		if _, err := os.Stat(path); err != nil {
			break
		}
		now = now.Add(time.Millisecond)
		path = filepath.Join(m.dataDir, exportName(now))
	}
	snap.Timestamp = now

	data, err := storage.MarshalDocument(models.Export{Snapshot: snap, ExportedAt: now})
	if err != nil {
		return "", fmt.Errorf("encode export: %w", err)
	}
	if err := storage.WriteFileAtomic(path, data, filePerm); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	m.logger.Infof(providers.TypeBackup, "export written: %s", filepath.Base(path))
	return path, nil
}
