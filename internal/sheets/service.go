package sheets

import (
	"context"
	"fmt"
	"os"
	"regexp"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"platformsdk/internal/export"
	"platformsdk/internal/logger"
)

// Service handles Google Sheets operations
type Service struct {
	sheetsService *sheets.Service
	spreadsheetID string
	log           zerolog.Logger
}

var spreadsheetIDPattern = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9-_]+)`)

// NewSheetsService creates a new Google Sheets service
func NewSheetsService(ctx context.Context, sheetURL string) (*Service, error) {
	const op = "NewSheetsService"

	log := logger.WithComponent("sheets")

	spreadsheetID, err := extractSpreadsheetID(sheetURL)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to extract spreadsheet ID: %w", op, err)
	}

	log.Debug().Str("spreadsheet_id", spreadsheetID).Msg("Extracted spreadsheet ID")

	creds, err := loadCredentials()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	config, err := google.JWTConfigFromJSON(creds, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse credentials: %w", op, err)
	}

	client := config.Client(ctx)
	sheetsService, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create sheets service: %w", op, err)
	}

	return &Service{
		sheetsService: sheetsService,
		spreadsheetID: spreadsheetID,
		log:           log,
	}, nil
}

func loadCredentials() ([]byte, error) {
	if credsFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credsFile != "" {
		creds, err := os.ReadFile(credsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials file: %w", err)
		}
		return creds, nil
	}
	if credsJSON := os.Getenv("GOOGLE_CREDENTIALS"); credsJSON != "" {
		return []byte(credsJSON), nil
	}
	return nil, fmt.Errorf("neither GOOGLE_APPLICATION_CREDENTIALS nor GOOGLE_CREDENTIALS is set")
}

// extractSpreadsheetID extracts the spreadsheet ID from a Google Sheets URL
func extractSpreadsheetID(url string) (string, error) {
	matches := spreadsheetIDPattern.FindStringSubmatch(url)
	if len(matches) < 2 {
		return "", fmt.Errorf("invalid Google Sheets URL format")
	}
	return matches[1], nil
}

// columnRange returns the A1 range covering the exported columns of row, or
// every row when row is zero.
func columnRange(sheetName string, row int) string {
	if row == 0 {
		return fmt.Sprintf("%s!A:%s", sheetName, export.LastColumn())
	}
	return fmt.Sprintf("%s!A%d:%s%d", sheetName, row, export.LastColumn(), row)
}

// rowsToValues converts export rows to cell values for Google Sheets
func rowsToValues(rows []export.Row) [][]interface{} {
	values := make([][]interface{}, 0, len(rows))
	for _, r := range rows {
		values = append(values, export.Values(r))
	}
	return values
}

// WriteRows appends the exported invoice rows to the specified sheet
func (s *Service) WriteRows(ctx context.Context, rows []export.Row, sheetName string) error {
	const op = "WriteRows"

	s.log.Info().
		Str("sheet", sheetName).
		Int("rows", len(rows)).
		Msg("Writing invoice rows to Google Sheet")

	if err := s.ensureSheetWithHeaders(ctx, sheetName); err != nil {
		return fmt.Errorf("%s: failed to ensure sheet exists: %w", op, err)
	}

	values := rowsToValues(rows)
	if len(values) == 0 {
		return nil
	}

	_, err := s.sheetsService.Spreadsheets.Values.Append(
		s.spreadsheetID,
		columnRange(sheetName, 0),
		&sheets.ValueRange{Values: values},
	).ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%s: failed to append values to sheet: %w", op, err)
	}

	s.log.Info().
		Int("rows_written", len(values)).
		Msg("Successfully wrote invoice rows to Google Sheet")

	return nil
}

// ensureSheetWithHeaders ensures the sheet exists and has proper headers
func (s *Service) ensureSheetWithHeaders(ctx context.Context, sheetName string) error {
	const op = "ensureSheetWithHeaders"

	spreadsheet, err := s.sheetsService.Spreadsheets.Get(s.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%s: failed to get spreadsheet: %w", op, err)
	}

	var sheetExists bool
	var sheetID int64
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties.Title == sheetName {
			sheetExists = true
			sheetID = sheet.Properties.SheetId
			break
		}
	}

	if !sheetExists {
		s.log.Info().Str("sheet", sheetName).Msg("Creating new sheet")

		batchUpdateReq := &sheets.BatchUpdateSpreadsheetRequest{
			Requests: []*sheets.Request{
				{AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{Title: sheetName},
				}},
			},
		}

		resp, err := s.sheetsService.Spreadsheets.BatchUpdate(s.spreadsheetID, batchUpdateReq).Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("%s: failed to create sheet: %w", op, err)
		}

		sheetID = resp.Replies[0].AddSheet.Properties.SheetId
	}

	headerRange := columnRange(sheetName, 1)
	resp, err := s.sheetsService.Spreadsheets.Values.Get(s.spreadsheetID, headerRange).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%s: failed to get headers: %w", op, err)
	}

	if len(resp.Values) == 0 || len(resp.Values[0]) == 0 {
		s.log.Info().Str("sheet", sheetName).Msg("Adding headers to sheet")

		valueRange := &sheets.ValueRange{Values: [][]interface{}{export.Headers()}}
		_, err = s.sheetsService.Spreadsheets.Values.Update(
			s.spreadsheetID,
			headerRange,
			valueRange,
		).ValueInputOption("RAW").Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("%s: failed to add headers: %w", op, err)
		}

		if err := s.formatHeaders(ctx, sheetID); err != nil {
			s.log.Warn().Err(err).Msg("Failed to format headers, continuing anyway")
		}
	}

	return nil
}

// headerFormatRequests makes the header row bold and sizes the exported columns.
// Zero ids are force-sent since the first sheet has id 0.
func headerFormatRequests(sheetID int64) []*sheets.Request {
	columns := int64(len(export.Columns))
	return []*sheets.Request{
		{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          sheetID,
					StartRowIndex:    0,
					EndRowIndex:      1,
					StartColumnIndex: 0,
					EndColumnIndex:   columns,
					ForceSendFields:  []string{"SheetId", "StartRowIndex", "StartColumnIndex"},
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						TextFormat: &sheets.TextFormat{Bold: true},
						BackgroundColor: &sheets.Color{
							Red:   0.9,
							Green: 0.9,
							Blue:  0.9,
						},
					},
				},
				Fields: "userEnteredFormat(textFormat,backgroundColor)",
			},
		},
		{
			UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
				Properties: &sheets.SheetProperties{
					SheetId:         sheetID,
					GridProperties:  &sheets.GridProperties{FrozenRowCount: 1},
					ForceSendFields: []string{"SheetId"},
				},
				Fields: "gridProperties.frozenRowCount",
			},
		},
		{
			AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{
				Dimensions: &sheets.DimensionRange{
					SheetId:         sheetID,
					Dimension:       "COLUMNS",
					StartIndex:      0,
					EndIndex:        columns,
					ForceSendFields: []string{"SheetId", "StartIndex"},
				},
			},
		},
	}
}

// formatHeaders applies the header formatting requests
func (s *Service) formatHeaders(ctx context.Context, sheetID int64) error {
	const op = "formatHeaders"

	batchUpdateReq := &sheets.BatchUpdateSpreadsheetRequest{Requests: headerFormatRequests(sheetID)}
	_, err := s.sheetsService.Spreadsheets.BatchUpdate(s.spreadsheetID, batchUpdateReq).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%s: failed to format headers: %w", op, err)
	}

	return nil
}

// ReadRange reads values from a specified range in the spreadsheet
func (s *Service) ReadRange(ctx context.Context, rangeSpec string) ([][]interface{}, error) {
	const op = "ReadRange"

	s.log.Debug().
		Str("range", rangeSpec).
		Msg("Reading range from spreadsheet")

	resp, err := s.sheetsService.Spreadsheets.Values.Get(s.spreadsheetID, rangeSpec).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read range %s: %w", op, rangeSpec, err)
	}

	s.log.Debug().
		Int("rows", len(resp.Values)).
		Str("range", rangeSpec).
		Msg("Successfully read range from spreadsheet")

	return resp.Values, nil
}

// ExistingInvoiceIDs returns the invoice ids already present in the sheet,
// so repeated exports can skip them.
func (s *Service) ExistingInvoiceIDs(ctx context.Context, sheetName string) (map[string]bool, error) {
	col := invoiceIDColumn()
	values, err := s.ReadRange(ctx, fmt.Sprintf("%s!%s2:%s", sheetName, col, col))
	if err != nil {
		return nil, err
	}
	return collectIDs(values), nil
}

func invoiceIDColumn() string {
	if col, ok := export.ColumnLetter("Invoice ID"); ok {
		return col
	}
	return "B"
}

func collectIDs(values [][]interface{}) map[string]bool {
	ids := make(map[string]bool, len(values))
	for _, row := range values {
		if len(row) == 0 {
			continue
		}
		if id, ok := row[0].(string); ok && id != "" {
			ids[id] = true
		}
	}
	return ids
}
