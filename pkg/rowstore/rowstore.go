// Package rowstore abstracts the remote tabular store the app persists to.
// Rows are 1-indexed and row 1 is always the header; id-to-row resolution is the
// caller's job, the store only moves rows.
package rowstore

import "context"

// Collection names one sheet of the backing spreadsheet.
type Collection string

// The four fixed collections.
const (
	Tasks         Collection = "Tasks"
	UserStats     Collection = "User_Stats"
	ImportantInfo Collection = "Important_Info"
	Achievements  Collection = "Achievements"
)

// Store is the capability surface the sync layer needs from the remote store.
type Store interface {
	// Read returns every populated row of the collection, header included, so
	// that slice index i holds sheet row i+1.
	Read(ctx context.Context, c Collection) ([][]string, error)

	// WriteAt overwrites consecutive rows starting at the given 1-indexed row.
	WriteAt(ctx context.Context, c Collection, rowIndex int, rows [][]string) error

	// AppendRow writes the row just past the last populated row and returns the
	// 1-indexed row it landed on.
	AppendRow(ctx context.Context, c Collection, row []string) (int, error)

	// DeleteRow removes the given 1-indexed row; later rows shift up by one.
	DeleteRow(ctx context.Context, c Collection, rowIndex int) error
}
