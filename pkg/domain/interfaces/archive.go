package interfaces

// Archive is an opened archive whose entries can be extracted one by one
type Archive interface {
	// Len returns the number of entries
	Len() int

	// Name returns the path of the i-th entry inside the archive
	Name(i int) string

	// Extract writes the i-th entry below dir
	Extract(i int, dir string) error

	Close() error
}

// ArchiveOpener opens an archive stored on local disk
type ArchiveOpener interface {
	Open(path string) (Archive, error)
}
