package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const backupPrefix = "users_"

// Backup snapshots the SQLite user database into dir and prunes snapshots
// older than retention.
type Backup struct {
	db        *gorm.DB
	dir       string
	retention time.Duration
	log       logrus.FieldLogger
	now       func() time.Time
}

func NewBackup(db *gorm.DB, dir string, retention time.Duration, log logrus.FieldLogger) *Backup {
	return &Backup{db: db, dir: dir, retention: retention, log: log, now: time.Now}
}

// Run writes one consistent snapshot with VACUUM INTO, then prunes.
func (b *Backup) Run() (string, error) {
	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}
	dest := filepath.Join(b.dir, backupPrefix+b.now().Format("2006-01-02_15-04-05")+".db")
	if err := b.db.Exec("VACUUM INTO ?", dest).Error; err != nil {
		return "", fmt.Errorf("backup to %s: %w", dest, err)
	}
	b.cleanupOldBackups()
	return dest, nil
}

// cleanupOldBackups removes snapshots older than the retention window.
func (b *Backup) cleanupOldBackups() {
	entries, err := os.ReadDir(b.dir)
	if err != nil {
		b.log.WithError(err).Warn("read backup directory failed")
		return
	}

	cutoff := b.now().Add(-b.retention)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), backupPrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			path := filepath.Join(b.dir, entry.Name())
			if err := os.Remove(path); err != nil {
				b.log.WithError(err).WithField("path", path).Warn("remove old backup failed")
			} else {
				b.log.WithField("path", path).Info("removed old backup")
			}
		}
	}
}

// Schedule registers the backup on c using a standard five-field cron expression.
func (b *Backup) Schedule(c *cron.Cron, expr string) (cron.EntryID, error) {
	return c.AddFunc(expr, func() {
		dest, err := b.Run()
		if err != nil {
			b.log.WithError(err).Error("user database backup failed")
			return
		}
		b.log.WithField("path", dest).Info("user database backed up")
	})
}
