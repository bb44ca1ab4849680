package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"weddingsite/internal/storage/interfaces"
	"weddingsite/internal/structures"
)

var ErrNoBackup = errors.New("no backup available")

// BackupManager keeps one compressed copy of the previous version of each document.
type BackupManager struct {
	dir        string
	compressor interfaces.CompressorInterface
}

func NewBackupProvider(conf *structures.Config, compressor interfaces.CompressorInterface) (interfaces.BackupInterface, error) {
	if !conf.Storage.Backup {
		return &noopBackup{}, nil
	}
	if err := os.MkdirAll(conf.Storage.BackupDir, 0755); err != nil {
		return nil, fmt.Errorf("unable to create backup dir: %w", err)
	}
	return &BackupManager{dir: conf.Storage.BackupDir, compressor: compressor}, nil
}

func (b *BackupManager) path(key string) string {
	return filepath.Join(b.dir, key+".json.zst")
}

func (b *BackupManager) Snapshot(key string, raw []byte) error {
	data, err := b.compressor.Compress(raw)
	if err != nil {
		return err
	}
	return writeAtomic(b.path(key), data)
}

func (b *BackupManager) Restore(key string) ([]byte, error) {
	data, err := os.ReadFile(b.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoBackup
		}
		return nil, err
	}
	return b.compressor.Decompress(data)
}

type noopBackup struct{}

func (n *noopBackup) Snapshot(_ string, _ []byte) error { return nil }
func (n *noopBackup) Restore(_ string) ([]byte, error)  { return nil, ErrNoBackup }
