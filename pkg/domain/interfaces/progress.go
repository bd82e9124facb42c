package interfaces

// Progress receives increments of a running operation
type Progress interface {
	Add(n int64)
	Close()
}

// ProgressFactory creates progress reporters. A total <= 0 means unknown.
type ProgressFactory interface {
	Bytes(description string, total int64) Progress
	Count(description string, total int64) Progress
}
