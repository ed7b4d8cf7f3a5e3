package rowstore

import "context"

// Unavailable is a Store whose every call fails with the wrapped reason. It
// lets a session start when the remote store can't be reached at all, so that
// loading falls through to the offline cache.
type Unavailable struct {
	Err error
}

// Read always fails.
func (u Unavailable) Read(context.Context, Collection) ([][]string, error) {
	return nil, u.Err
}

// WriteAt always fails.
func (u Unavailable) WriteAt(context.Context, Collection, int, [][]string) error {
	return u.Err
}

// AppendRow always fails.
func (u Unavailable) AppendRow(context.Context, Collection, []string) (int, error) {
	return 0, u.Err
}

// DeleteRow always fails.
func (u Unavailable) DeleteRow(context.Context, Collection, int) error {
	return u.Err
}
