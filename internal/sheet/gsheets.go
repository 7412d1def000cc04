package sheet

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// GoogleSheet is a Backend over a shared Google Sheets worksheet, for
// deployments where several people fill the same table from different
// machines. It reads the whole worksheet and overwrites it with
// clear-then-update, matching the other backends' semantics.
type GoogleSheet struct {
	svc           *sheets.Service
	spreadsheetID string
	worksheet     string
}

// NewGoogleSheet builds a backend for one worksheet of one spreadsheet,
// authenticating with a service account credentials file. worksheet
// defaults to "Sheet1".
func NewGoogleSheet(ctx context.Context, spreadsheetID, worksheet, credentialsFile string) (*GoogleSheet, error) {
	if worksheet == "" {
		worksheet = "Sheet1"
	}
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: sheets service: %v", ErrUnavailable, err)
	}
	return &GoogleSheet{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		worksheet:     worksheet,
	}, nil
}

func (g *GoogleSheet) Read(ctx context.Context) ([][]string, error) {
	resp, err := g.svc.Spreadsheets.Values.
		Get(g.spreadsheetID, g.worksheet).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrUnavailable, g.spreadsheetID, err)
	}

	grid := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = fmt.Sprint(v)
		}
		grid = append(grid, cells)
	}
	return grid, nil
}

func (g *GoogleSheet) Write(ctx context.Context, grid [][]string) error {
	_, err := g.svc.Spreadsheets.Values.
		Clear(g.spreadsheetID, g.worksheet, &sheets.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: clear %s: %v", ErrUnavailable, g.spreadsheetID, err)
	}

	values := make([][]interface{}, len(grid))
	for i, row := range grid {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		values[i] = cells
	}

	_, err = g.svc.Spreadsheets.Values.
		Update(g.spreadsheetID, g.worksheet, &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: update %s: %v", ErrUnavailable, g.spreadsheetID, err)
	}
	return nil
}

func (g *GoogleSheet) Close() error { return nil }
