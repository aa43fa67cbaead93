// Package google implements a transaction source backed by a Google
// Sheet. Users without a linked aggregator account can point the
// dashboard at a hand-maintained sheet of bookings instead.
//
// Expected layout, one booking per row starting at row 2:
//
//	A: transaction id | B: name | C: date (YYYY-MM-DD) | D: amount
//
// Amounts follow the aggregator sign convention (positive = expense) so
// that sheet rows and live aggregator records flow through the same
// normalization.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"finora/internal/bank"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// NewFromEnv creates a Sheets-backed source from environment variables.
// Required: GOOGLE_SPREADSHEET_ID.
// Optional: GOOGLE_SHEET_NAME (default "Transactions"), credentials via
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	sheetName := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME"))
	if sheetName == "" {
		sheetName = "Transactions"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

// Recent reads all rows and keeps those inside the window. The token is
// unused; sheet access is authorized by the service account.
func (c *Client) Recent(ctx context.Context, _ string, end time.Time, days int) ([]bank.Transaction, error) {
	readRange := c.sheetName + "!A2:D"
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", readRange, err)
	}

	start := end.AddDate(0, 0, -days).Format("2006-01-02")
	endStr := end.Format("2006-01-02")

	out := make([]bank.Transaction, 0, len(resp.Values))
	for i, row := range resp.Values {
		t, err := parseRow(row)
		if err != nil {
			slog.WarnContext(ctx, "Skipping malformed sheet row",
				"row", i+2,
				"error", err)
			continue
		}
		if t.Date >= start && t.Date <= endStr {
			out = append(out, t)
		}
	}

	slog.InfoContext(ctx, "Read transactions from sheet",
		"sheet", c.sheetName,
		"rows", len(resp.Values),
		"in_window", len(out))
	return out, nil
}

func parseRow(row []interface{}) (bank.Transaction, error) {
	if len(row) < 4 {
		return bank.Transaction{}, fmt.Errorf("expected 4 columns, got %d", len(row))
	}
	amount, err := strconv.ParseFloat(strings.ReplaceAll(cell(row, 3), ",", "."), 64)
	if err != nil {
		return bank.Transaction{}, fmt.Errorf("parse amount: %w", err)
	}
	return bank.Transaction{
		ID:     cell(row, 0),
		Name:   cell(row, 1),
		Date:   cell(row, 2),
		Amount: amount,
	}, nil
}

func cell(row []interface{}, i int) string {
	if i >= len(row) {
		return ""
	}
	s, _ := row[i].(string)
	return strings.TrimSpace(s)
}

// newSheetsService initializes a Sheets service using service account
// credentials from GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE,
// or GOOGLE_APPLICATION_CREDENTIALS.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}
