package types

import "errors"

// RunMeta identifies one traversal of a corpus (one event stream lifetime).
// It is attached to log entries and completion notifications.
type RunMeta struct {
	// RunID is the run identifier. Must be non-empty.
	RunID string
	// Corpus names the sample source (path, bucket/key, or label).
	Corpus string
}

// Validate checks that the run identity is usable.
func (r *RunMeta) Validate() error {
	if r.RunID == "" {
		return errors.New("run_id must be non-empty")
	}
	return nil
}
