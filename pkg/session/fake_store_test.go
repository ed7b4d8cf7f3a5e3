package session_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/matt-steen/lifequest/pkg/calendar"
	"github.com/matt-steen/lifequest/pkg/model"
	"github.com/matt-steen/lifequest/pkg/rowstore"
)

var errRemoteDown = errors.New("remote store unavailable")

// fakeStore keeps each collection as a slice of rows, row 1 being the header,
// and records where appends landed. Collections can be failed individually to
// drive the offline paths.
type fakeStore struct {
	rows    map[rowstore.Collection][][]string
	appends map[rowstore.Collection][]int
	failing map[rowstore.Collection]bool
}

func newFakeStore() *fakeStore {
	store := &fakeStore{
		rows:    map[rowstore.Collection][][]string{},
		appends: map[rowstore.Collection][]int{},
		failing: map[rowstore.Collection]bool{},
	}

	store.rows[rowstore.Tasks] = [][]string{model.TaskHeader()}
	store.rows[rowstore.ImportantInfo] = [][]string{model.InfoHeader()}

	store.rows[rowstore.UserStats] = [][]string{model.StatsHeader()}
	store.rows[rowstore.UserStats] = append(store.rows[rowstore.UserStats], model.StatsRows(model.UserStats{})...)

	return store
}

func (f *fakeStore) Read(_ context.Context, c rowstore.Collection) ([][]string, error) {
	if f.failing[c] {
		return nil, errRemoteDown
	}

	rows := make([][]string, 0, len(f.rows[c]))

	for _, row := range f.rows[c] {
		rows = append(rows, append([]string{}, row...))
	}

	return rows, nil
}

func (f *fakeStore) WriteAt(_ context.Context, c rowstore.Collection, rowIndex int, rows [][]string) error {
	if f.failing[c] {
		return errRemoteDown
	}

	for i, row := range rows {
		pos := rowIndex - 1 + i

		for len(f.rows[c]) <= pos {
			f.rows[c] = append(f.rows[c], []string{})
		}

		f.rows[c][pos] = append([]string{}, row...)
	}

	return nil
}

func (f *fakeStore) AppendRow(ctx context.Context, c rowstore.Collection, row []string) (int, error) {
	if f.failing[c] {
		return 0, errRemoteDown
	}

	count := len(f.rows[c])
	if count == 0 {
		count = 1
	}

	next := count + 1

	if err := f.WriteAt(ctx, c, next, [][]string{row}); err != nil {
		return 0, err
	}

	f.appends[c] = append(f.appends[c], next)

	return next, nil
}

func (f *fakeStore) DeleteRow(_ context.Context, c rowstore.Collection, rowIndex int) error {
	if f.failing[c] {
		return errRemoteDown
	}

	f.rows[c] = append(f.rows[c][:rowIndex-1], f.rows[c][rowIndex:]...)

	return nil
}

// taskIDs returns the id column of the Tasks sheet, header excluded.
func (f *fakeStore) taskIDs() []string {
	ids := []string{}

	for i := 1; i < len(f.rows[rowstore.Tasks]); i++ {
		ids = append(ids, f.rows[rowstore.Tasks][i][0])
	}

	return ids
}

// fakeBridge hands out sequential event ids, or refuses entirely.
type fakeBridge struct {
	calls  int
	events []calendar.Event
	fail   bool
}

func (b *fakeBridge) CreateEvent(_ context.Context, event calendar.Event) (string, error) {
	if b.fail {
		return "", errors.New("calendar unavailable")
	}

	b.calls++
	b.events = append(b.events, event)

	return fmt.Sprintf("evt-%d", b.calls), nil
}
