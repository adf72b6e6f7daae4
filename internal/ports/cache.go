package ports

// SnapshotStore persists the encoded catalog snapshot. Read reports a
// missing snapshot with an error wrapping fs.ErrNotExist.
type SnapshotStore interface {
	Read() ([]byte, error)
	Write(data []byte) error
	Clear() error

	// Location describes where the snapshot lives, for display
	Location() string
}
