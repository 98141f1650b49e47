package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsConfig selects the spreadsheet tab that receives exports.
type SheetsConfig struct {
	SpreadsheetID   string
	SheetName       string
	CredentialsJSON string
	CredentialsFile string
}

// SheetsSink overwrites one tab of a spreadsheet with the latest export.
type SheetsSink struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetName     string
}

// NewSheetsSink builds the Sheets service from service account credentials.
// Extra options are appended, so tests can point it at a fake endpoint.
func NewSheetsSink(ctx context.Context, cfg SheetsConfig, opts ...option.ClientOption) (*SheetsSink, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	if cfg.SheetName == "" {
		cfg.SheetName = "Export"
	}

	var base []option.ClientOption
	switch {
	case cfg.CredentialsJSON != "":
		base = append(base, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	case cfg.CredentialsFile != "":
		data, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		base = append(base, option.WithCredentialsJSON(data))
	}
	base = append(base, option.WithScopes(sheets.SpreadsheetsScope))

	svc, err := sheets.NewService(ctx, append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &SheetsSink{svc: svc, spreadsheetID: cfg.SpreadsheetID, sheetName: cfg.SheetName}, nil
}

// Mirror replaces the tab's contents with the rows of f, creating the tab
// first when the spreadsheet does not have it.
func (s *SheetsSink) Mirror(ctx context.Context, f File) error {
	rows, err := f.Rows()
	if err != nil {
		return err
	}
	if err := s.ensureSheet(ctx); err != nil {
		return err
	}

	whole := fmt.Sprintf("'%s'", s.sheetName)
	if _, err := s.svc.Spreadsheets.Values.Clear(s.spreadsheetID, whole, &sheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear %s: %w", s.sheetName, err)
	}

	values := make([][]any, len(rows))
	for i, row := range rows {
		values[i] = make([]any, len(row))
		for j, cell := range row {
			values[i][j] = cell
		}
	}
	_, err = s.svc.Spreadsheets.Values.Update(s.spreadsheetID, whole+"!A1", &sheets.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("write %s: %w", s.sheetName, err)
	}
	return nil
}

func (s *SheetsSink) ensureSheet(ctx context.Context) error {
	ss, err := s.svc.Spreadsheets.Get(s.spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("get spreadsheet: %w", err)
	}
	for _, sh := range ss.Sheets {
		if sh.Properties != nil && sh.Properties.Title == s.sheetName {
			return nil
		}
	}
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{Properties: &sheets.SheetProperties{Title: s.sheetName}},
		}},
	}
	if _, err := s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("add sheet %s: %w", s.sheetName, err)
	}
	return nil
}
