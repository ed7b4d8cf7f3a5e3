package rowstore

import (
	"context"
	"fmt"

	"github.com/matt-steen/lifequest/pkg/model"
	"google.golang.org/api/sheets/v4"
)

// the sheet API needs an explicit row ceiling for range reads; no collection
// gets anywhere near it in practice.
const maxRows = 1000

// lastColumn bounds the A:<col> range of each collection.
var lastColumn = map[Collection]string{
	Tasks:         "L",
	UserStats:     "B",
	ImportantInfo: "E",
	Achievements:  "E",
}

// SheetsStore implements Store against one Google spreadsheet.
type SheetsStore struct {
	srv           *sheets.Service
	spreadsheetID string
	sheetIDs      map[Collection]int64
}

// NewSheetsStore wraps an existing spreadsheet, resolving each collection's
// sheet id by title for later row deletions.
func NewSheetsStore(ctx context.Context, srv *sheets.Service, spreadsheetID string) (*SheetsStore, error) {
	spreadsheet, err := srv.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("error opening spreadsheet %s: %w", spreadsheetID, err)
	}

	sheetIDs := map[Collection]int64{}
	for _, sheet := range spreadsheet.Sheets {
		sheetIDs[Collection(sheet.Properties.Title)] = sheet.Properties.SheetId
	}

	for c := range lastColumn {
		if _, ok := sheetIDs[c]; !ok {
			return nil, fmt.Errorf("spreadsheet %s has no %s sheet", spreadsheetID, c)
		}
	}

	return &SheetsStore{srv: srv, spreadsheetID: spreadsheetID, sheetIDs: sheetIDs}, nil
}

// SpreadsheetID returns the id of the wrapped spreadsheet.
func (s *SheetsStore) SpreadsheetID() string {
	return s.spreadsheetID
}

// Read fetches all populated rows of the collection, header included.
func (s *SheetsStore) Read(ctx context.Context, c Collection) ([][]string, error) {
	readRange := fmt.Sprintf("%s!A1:%s%d", c, lastColumn[c], maxRows)

	resp, err := s.srv.Spreadsheets.Values.Get(s.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", c, err)
	}

	rows := make([][]string, 0, len(resp.Values))

	for _, raw := range resp.Values {
		row := make([]string, 0, len(raw))
		for _, cell := range raw {
			row = append(row, fmt.Sprint(cell))
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// WriteAt overwrites consecutive rows starting at rowIndex.
func (s *SheetsStore) WriteAt(ctx context.Context, c Collection, rowIndex int, rows [][]string) error {
	writeRange := fmt.Sprintf("%s!A%d:%s%d", c, rowIndex, lastColumn[c], rowIndex+len(rows)-1)

	values := make([][]interface{}, 0, len(rows))

	for _, row := range rows {
		cells := make([]interface{}, 0, len(row))
		for _, cell := range row {
			cells = append(cells, cell)
		}

		values = append(values, cells)
	}

	_, err := s.srv.Spreadsheets.Values.Update(s.spreadsheetID, writeRange, &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("error writing %s row %d: %w", c, rowIndex, err)
	}

	return nil
}

// AppendRow counts the populated rows of the id column and writes just past
// them, returning the row it wrote to.
func (s *SheetsStore) AppendRow(ctx context.Context, c Collection, row []string) (int, error) {
	idRange := fmt.Sprintf("%s!A:A", c)

	resp, err := s.srv.Spreadsheets.Values.Get(s.spreadsheetID, idRange).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("error counting %s rows: %w", c, err)
	}

	count := len(resp.Values)
	if count == 0 {
		// header row is always there even when the read comes back empty
		count = 1
	}

	next := count + 1

	if err := s.WriteAt(ctx, c, next, [][]string{row}); err != nil {
		return 0, err
	}

	return next, nil
}

// DeleteRow removes the given row; the sheet shifts later rows up by one.
func (s *SheetsStore) DeleteRow(ctx context.Context, c Collection, rowIndex int) error {
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    s.sheetIDs[c],
					Dimension:  "ROWS",
					StartIndex: int64(rowIndex - 1),
					EndIndex:   int64(rowIndex),
				},
			},
		}},
	}

	_, err := s.srv.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("error deleting %s row %d: %w", c, rowIndex, err)
	}

	return nil
}

// CreateSpreadsheet builds a fresh Life Quest spreadsheet for the user: four
// sheets with frozen header rows, headers written, and the five stats rows
// seeded. It returns a store wrapping the new spreadsheet.
func CreateSpreadsheet(ctx context.Context, srv *sheets.Service, userName string) (*SheetsStore, error) {
	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title: fmt.Sprintf("Life Quest - %s", userName),
		},
		Sheets: []*sheets.Sheet{
			newSheet(Tasks), newSheet(UserStats), newSheet(ImportantInfo), newSheet(Achievements),
		},
	}

	created, err := srv.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("error creating spreadsheet: %w", err)
	}

	store := &SheetsStore{
		srv:           srv,
		spreadsheetID: created.SpreadsheetId,
		sheetIDs:      map[Collection]int64{},
	}

	for _, sheet := range created.Sheets {
		store.sheetIDs[Collection(sheet.Properties.Title)] = sheet.Properties.SheetId
	}

	headers := map[Collection][]string{
		Tasks:         model.TaskHeader(),
		UserStats:     model.StatsHeader(),
		ImportantInfo: model.InfoHeader(),
		Achievements:  model.AchievementHeader(),
	}

	for c, header := range headers {
		if err := store.WriteAt(ctx, c, 1, [][]string{header}); err != nil {
			return nil, err
		}
	}

	if err := store.WriteAt(ctx, UserStats, 2, model.StatsRows(model.UserStats{})); err != nil {
		return nil, err
	}

	return store, nil
}

func newSheet(c Collection) *sheets.Sheet {
	return &sheets.Sheet{
		Properties: &sheets.SheetProperties{
			Title:          string(c),
			GridProperties: &sheets.GridProperties{FrozenRowCount: 1},
		},
	}
}
