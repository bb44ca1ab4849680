package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
	"weddingsite/internal/providers"
	"weddingsite/internal/storage/interfaces"
	"weddingsite/internal/structures"

	json "github.com/goccy/go-json"
)

const (
	KeyRSVP     = "rsvp"
	KeyPlaylist = "playlist"
	KeyGallery  = "gallery"
	KeyWishlist = "wishlist"
	KeyLinks    = "links"
)

// Keys lists every resource document the site keeps.
var Keys = []string{KeyRSVP, KeyPlaylist, KeyGallery, KeyWishlist, KeyLinks}

// FileStore persists each resource as one JSON document in the data dir.
// Documents are re-read on every request; the cache, when enabled, is
// written through on every save.
type FileStore struct {
	dir     string
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	cache   providers.CacheProviderInterface
	backup  interfaces.BackupInterface

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewFileStore(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface, cache providers.CacheProviderInterface, backup interfaces.BackupInterface) (*FileStore, error) {
	if err := os.MkdirAll(conf.Storage.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("unable to create data dir: %w", err)
	}
	return &FileStore{
		dir:     conf.Storage.DataDir,
		logger:  logger,
		metrics: metrics,
		cache:   cache,
		backup:  backup,
		locks:   make(map[string]*sync.Mutex),
	}, nil
}

func (s *FileStore) Path(key string) string {
	return filepath.Join(s.dir, key+"-data.json")
}

func cacheKey(key string) string {
	return "doc:" + key
}

func (s *FileStore) lock(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	return l
}

// Load fills doc from disk. A missing file is created with the default
// (seeded) document. An unreadable or corrupt file yields the empty default,
// so callers can't tell "empty" from "unreadable".
func (s *FileStore) Load(key string, doc interfaces.Document) {
	s.load(key, doc, false)
}

func (s *FileStore) load(key string, doc interfaces.Document, locked bool) {
	if raw, ok := s.cache.Get(cacheKey(key)); ok {
		doc.Reset()
		if err := json.Unmarshal(raw, doc); err == nil {
			return
		}
		s.cache.Del(cacheKey(key))
	}

	raw, err := os.ReadFile(s.Path(key))
	if err != nil {
		doc.Reset()
		if !os.IsNotExist(err) {
			s.logger.Errorf(providers.TypeApp, "Unable to read %s document: %s", key, err)
			return
		}
		s.initialize(key, doc, locked)
		return
	}

	doc.Reset()
	if err := json.Unmarshal(raw, doc); err != nil {
		s.logger.Errorf(providers.TypeApp, "Corrupt %s document, serving defaults: %s", key, err)
		doc.Reset()
		return
	}
	s.fillCache(key, raw)
}

func (s *FileStore) fillCache(key string, raw []byte) {
	if err := s.cache.Set(cacheKey(key), raw); err != nil {
		s.logger.Debugf(providers.TypeApp, "Document %s not cached (%d bytes): %s", key, len(raw), err)
	}
}

// initialize writes the default document for a missing file. Without the key
// lock held it takes it and re-checks, so a concurrent Update is never
// overwritten with defaults.
func (s *FileStore) initialize(key string, doc interfaces.Document, locked bool) {
	if !locked {
		l := s.lock(key)
		l.Lock()
		defer l.Unlock()
		if _, err := os.Stat(s.Path(key)); err == nil {
			s.load(key, doc, true)
			return
		}
	}

	if seeder, ok := doc.(interfaces.Seeder); ok {
		seeder.Seed()
	}
	if err := s.save(key, doc); err != nil {
		s.logger.Errorf(providers.TypeApp, "Unable to initialize %s document: %s", key, err)
	}
}

// Save derives stats and rewrites the whole document.
func (s *FileStore) Save(key string, doc interfaces.Document) error {
	l := s.lock(key)
	l.Lock()
	defer l.Unlock()
	return s.save(key, doc)
}

func (s *FileStore) save(key string, doc interfaces.Document) error {
	start := time.Now()
	doc.DeriveStats()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}

	path := s.Path(key)
	if previous, err := os.ReadFile(path); err == nil {
		if err := s.backup.Snapshot(key, previous); err != nil {
			s.logger.Warnf(providers.TypeApp, "Backup of %s failed: %s", key, err)
		}
	}

	s.cache.Del(cacheKey(key))
	if err := writeAtomic(path, data); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}

	s.fillCache(key, data)
	s.metrics.ObservePersistenceDuration(time.Since(start))
	s.metrics.SetRecordsTotal(key, doc.Count())
	return nil
}

// Update runs a read-modify-write cycle under the key's lock. The document is
// saved only when mutate returns nil.
func (s *FileStore) Update(key string, doc interfaces.Document, mutate func() error) error {
	l := s.lock(key)
	l.Lock()
	defer l.Unlock()

	s.load(key, doc, true)
	if err := mutate(); err != nil {
		return err
	}
	return s.save(key, doc)
}

// RestoreBackup replaces a document with its last backup.
func (s *FileStore) RestoreBackup(key string) error {
	l := s.lock(key)
	l.Lock()
	defer l.Unlock()

	raw, err := s.backup.Restore(key)
	if err != nil {
		return err
	}
	if !json.Valid(raw) {
		return fmt.Errorf("backup of %s is not valid JSON", key)
	}
	if err := writeAtomic(s.Path(key), raw); err != nil {
		return err
	}
	s.cache.Del(cacheKey(key))
	s.logger.Infof(providers.TypeApp, "Restored %s from backup", key)
	return nil
}

func writeAtomic(fileName string, data []byte) error {
	file, err := os.CreateTemp(filepath.Dir(fileName), filepath.Base(fileName)+".*.tmp")
	if err != nil {
		return err
	}
	tmpFile := file.Name()

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	if err = os.Chmod(tmpFile, 0644); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}
