package encryption

// Job is one operation: a direction, the data file, where to find the key, and the output path.
type Job struct {
	Direction Direction
	Input     string
	Output    string
	Key       KeyLoader
}

// Result represents the outcome of processing a single job.
type Result struct {
	Job Job

	// Data bytes transformed
	Size int64

	// Output file size in bytes
	OutputSize int64

	// Whether the checksums matched (always true for encryption)
	Intact bool

	// Any error that occurred during processing
	Error error
}

// Summary aggregates the results of a run.
type Summary struct {
	Processed int
	Errored   int
	Corrupt   int

	// Data bytes transformed across all successful jobs
	DataSize int64

	// Output bytes written across all successful jobs
	OutputSize int64
}
