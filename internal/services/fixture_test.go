package services

import (
	"errors"
	"os"
	"testing"
	"weddingsite/internal/storage"
	"weddingsite/internal/storage/interfaces"
	"weddingsite/internal/structures"
	"weddingsite/internal/testutil"
	"weddingsite/internal/uploads"

	"github.com/stretchr/testify/require"
)

type serviceFixture struct {
	conf    *structures.Config
	store   *storage.FileStore
	uploads *uploads.Manager
	logger  *testutil.MockLogger
	metrics *testutil.MockMetrics
}

func newServiceFixture(t *testing.T, demo bool) *serviceFixture {
	t.Helper()
	conf := testutil.NewConfig(t.TempDir())
	conf.Demo.Enabled = demo
	logger := &testutil.MockLogger{}
	metrics := testutil.NewMockMetrics()

	store, err := storage.NewFileStore(conf, logger, metrics, testutil.NewMockCache(), noBackup{})
	require.NoError(t, err)
	manager, err := uploads.NewManager(conf, logger, metrics)
	require.NoError(t, err)

	return &serviceFixture{conf: conf, store: store, uploads: manager, logger: logger, metrics: metrics}
}

func (f *serviceFixture) raw(t *testing.T, key string) []byte {
	t.Helper()
	data, err := os.ReadFile(f.store.Path(key))
	require.NoError(t, err)
	return data
}

type noBackup struct{}

func (noBackup) Snapshot(_ string, _ []byte) error { return nil }
func (noBackup) Restore(_ string) ([]byte, error)  { return nil, storage.ErrNoBackup }

// failingStore loads like an empty store and fails every write.
type failingStore struct{}

var errDiskFull = errors.New("disk full")

func (failingStore) Load(_ string, doc interfaces.Document) { doc.Reset() }
func (failingStore) Save(_ string, _ interfaces.Document) error {
	return errDiskFull
}
func (failingStore) Update(_ string, doc interfaces.Document, mutate func() error) error {
	doc.Reset()
	if err := mutate(); err != nil {
		return err
	}
	return errDiskFull
}
