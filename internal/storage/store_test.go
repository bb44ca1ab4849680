package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"weddingsite/internal/models"
	"weddingsite/internal/structures"
	"weddingsite/internal/testutil"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type storeFixture struct {
	store   *FileStore
	conf    *structures.Config
	logger  *testutil.MockLogger
	metrics *testutil.MockMetrics
	cache   *testutil.MockCache
}

func newStoreFixture(t *testing.T) *storeFixture {
	t.Helper()
	conf := testutil.NewConfig(t.TempDir())
	f := &storeFixture{
		conf:    conf,
		logger:  &testutil.MockLogger{},
		metrics: testutil.NewMockMetrics(),
		cache:   testutil.NewMockCache(),
	}
	store, err := NewFileStore(conf, f.logger, f.metrics, f.cache, &noopBackup{})
	require.NoError(t, err)
	f.store = store
	return f
}

func TestFileStore_MissingFileCreatesEmptyDocument(t *testing.T) {
	f := newStoreFixture(t)

	var doc models.RSVPDocument
	f.store.Load(KeyRSVP, &doc)

	assert.Empty(t, doc.RSVPs)
	assert.NotNil(t, doc.RSVPs)
	assert.Equal(t, models.RSVPStats{}, doc.Stats)

	raw, err := os.ReadFile(f.store.Path(KeyRSVP))
	require.NoError(t, err)
	assert.JSONEq(t, `{"rsvps":[],"stats":{"total":0,"attending":0,"notAttending":0,"totalGuests":0}}`, string(raw))
}

func TestFileStore_MissingWishlistIsSeeded(t *testing.T) {
	f := newStoreFixture(t)

	var doc models.WishlistDocument
	f.store.Load(KeyWishlist, &doc)

	assert.Len(t, doc.Items, 6)
	assert.Equal(t, models.WishlistStats{Total: 6, Purchased: 1, Available: 5}, doc.Stats)
	assert.FileExists(t, f.store.Path(KeyWishlist))
}

func TestFileStore_MissingLinksIsSeededWithGradient(t *testing.T) {
	f := newStoreFixture(t)

	var cfg models.SiteConfig
	f.store.Load(KeyLinks, &cfg)

	assert.Equal(t, models.BackgroundGradient, cfg.Background.Type)
	assert.Empty(t, cfg.Links)
}

func TestFileStore_CorruptFileYieldsDefaults(t *testing.T) {
	f := newStoreFixture(t)
	path := f.store.Path(KeyPlaylist)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	var doc models.PlaylistDocument
	f.store.Load(KeyPlaylist, &doc)

	assert.Empty(t, doc.Songs)
	assert.Equal(t, 1, f.logger.Count("error"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(raw), "corrupt file must not be overwritten by a read")
}

func TestFileStore_SaveDerivesStatsAndRecordsMetrics(t *testing.T) {
	f := newStoreFixture(t)

	doc := &models.RSVPDocument{RSVPs: []models.RSVP{
		{ID: "1", Name: "Anna", Attendance: models.AttendanceYes, Guests: 2},
		{ID: "2", Name: "Ben", Attendance: models.AttendanceNo},
	}}
	require.NoError(t, f.store.Save(KeyRSVP, doc))

	var reread models.RSVPDocument
	raw, err := os.ReadFile(f.store.Path(KeyRSVP))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &reread))

	assert.Equal(t, models.RSVPStats{Total: 2, Attending: 1, NotAttending: 1, TotalGuests: 2}, reread.Stats)
	assert.Equal(t, 1, f.metrics.Persisted)
	assert.Equal(t, 2, f.metrics.RecordsTotal[KeyRSVP])
}

func TestFileStore_SaveWritesThroughCache(t *testing.T) {
	f := newStoreFixture(t)

	doc := &models.PlaylistDocument{Songs: []models.Song{{ID: "1", Title: "Song", Submitter: "Anna"}}}
	require.NoError(t, f.store.Save(KeyPlaylist, doc))

	cached, ok := f.cache.Get(cacheKey(KeyPlaylist))
	require.True(t, ok)

	raw, err := os.ReadFile(f.store.Path(KeyPlaylist))
	require.NoError(t, err)
	assert.Equal(t, raw, cached)
}

func TestFileStore_UpdateErrorLeavesFileUnchanged(t *testing.T) {
	f := newStoreFixture(t)

	var doc models.WishlistDocument
	f.store.Load(KeyWishlist, &doc)
	before, err := os.ReadFile(f.store.Path(KeyWishlist))
	require.NoError(t, err)

	errStop := errors.New("not found")
	err = f.store.Update(KeyWishlist, &doc, func() error {
		doc.Items = nil
		return errStop
	})
	assert.ErrorIs(t, err, errStop)

	after, err := os.ReadFile(f.store.Path(KeyWishlist))
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestFileStore_ConcurrentUpdatesAreSerialized(t *testing.T) {
	f := newStoreFixture(t)

	const writers = 40
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var doc models.PlaylistDocument
			err := f.store.Update(KeyPlaylist, &doc, func() error {
				doc.Songs = append(doc.Songs, models.Song{ID: fmt.Sprint(i), Submitter: fmt.Sprint(i)})
				return nil
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	var doc models.PlaylistDocument
	f.store.Load(KeyPlaylist, &doc)
	assert.Len(t, doc.Songs, writers)
	assert.Equal(t, writers, doc.Stats.Contributors)
}

func TestFileStore_NoTempFilesLeftBehind(t *testing.T) {
	f := newStoreFixture(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, f.store.Save(KeyGallery, &models.GalleryDocument{Photos: []models.Photo{}}))
	}

	matches, err := filepath.Glob(filepath.Join(f.conf.Storage.DataDir, "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestFileStore_BackupAndRestore(t *testing.T) {
	conf := testutil.NewConfig(t.TempDir())
	conf.Storage.Backup = true

	compressor, err := NewZstdCompressor()
	require.NoError(t, err)
	backup, err := NewBackupProvider(conf, compressor)
	require.NoError(t, err)
	require.IsType(t, &BackupManager{}, backup)

	cache := testutil.NewMockCache()
	store, err := NewFileStore(conf, &testutil.MockLogger{}, testutil.NewMockMetrics(), cache, backup)
	require.NoError(t, err)

	first := &models.PlaylistDocument{Songs: []models.Song{{ID: "1", Title: "First", Submitter: "Anna"}}}
	require.NoError(t, store.Save(KeyPlaylist, first))
	second := &models.PlaylistDocument{Songs: []models.Song{}}
	require.NoError(t, store.Save(KeyPlaylist, second))

	assert.FileExists(t, filepath.Join(conf.Storage.BackupDir, "playlist.json.zst"))

	require.NoError(t, store.RestoreBackup(KeyPlaylist))
	_, cached := cache.Get(cacheKey(KeyPlaylist))
	assert.False(t, cached)

	var doc models.PlaylistDocument
	store.Load(KeyPlaylist, &doc)
	require.Len(t, doc.Songs, 1)
	assert.Equal(t, "First", doc.Songs[0].Title)
}

func TestFileStore_RestoreWithoutBackup(t *testing.T) {
	f := newStoreFixture(t)
	assert.ErrorIs(t, f.store.RestoreBackup(KeyRSVP), ErrNoBackup)
}

func TestBackupProvider_DisabledIsNoop(t *testing.T) {
	conf := testutil.NewConfig(t.TempDir())
	backup, err := NewBackupProvider(conf, &testutil.MockCompressor{})
	require.NoError(t, err)

	assert.NoError(t, backup.Snapshot(KeyRSVP, []byte("{}")))
	_, err = backup.Restore(KeyRSVP)
	assert.ErrorIs(t, err, ErrNoBackup)
	assert.NoDirExists(t, conf.Storage.BackupDir)
}

func TestBackupManager_UsesCompressor(t *testing.T) {
	conf := testutil.NewConfig(t.TempDir())
	conf.Storage.Backup = true
	compressor := &testutil.MockCompressor{
		CompressFn: func(b []byte) ([]byte, error) { return append([]byte("z:"), b...), nil },
		DecompressFn: func(b []byte) ([]byte, error) {
			return b[2:], nil
		},
	}
	backup, err := NewBackupProvider(conf, compressor)
	require.NoError(t, err)

	require.NoError(t, backup.Snapshot(KeyLinks, []byte(`{"links":[]}`)))
	raw, err := os.ReadFile(filepath.Join(conf.Storage.BackupDir, "links.json.zst"))
	require.NoError(t, err)
	assert.Equal(t, `z:{"links":[]}`, string(raw))

	restored, err := backup.Restore(KeyLinks)
	require.NoError(t, err)
	assert.Equal(t, `{"links":[]}`, string(restored))
}
