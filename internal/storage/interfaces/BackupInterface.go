package interfaces

type BackupInterface interface {
	Snapshot(key string, raw []byte) error
	Restore(key string) ([]byte, error)
}
