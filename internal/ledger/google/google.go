// Package google implements the ledger port on a Google Sheets spreadsheet:
// one worksheet per calendar month, created lazily with the fixed header row.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"budgetbot/internal/cache"
	"budgetbot/internal/core"
	"budgetbot/internal/ledger"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	clock         func() time.Time

	// Resolved period handles, keyed by period name. The TTL bounds how
	// long a manually deleted worksheet stays unnoticed.
	periods *cache.LRUCache[ledger.Period]
}

var _ ledger.Store = (*Client)(nil)

// NewFromEnv creates a Sheets-backed ledger using environment variables.
// Required: GOOGLE_SPREADSHEET_ID plus service account credentials via
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		clock:         time.Now,
		periods:       cache.NewLRU[ledger.Period](12, time.Hour),
	}, nil
}

// WithClock replaces the clock used to name the current period.
func (c *Client) WithClock(clock func() time.Time) *Client {
	c.clock = clock
	return c
}

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
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// ResolveCurrentPeriod finds the worksheet named after the current local
// month, adding it with the header row when absent. The add-then-header pair
// is not atomic at the API level; the header write happens before the handle
// is returned, so callers never observe a headerless period.
func (c *Client) ResolveCurrentPeriod(ctx context.Context) (ledger.Period, error) {
	name := core.PeriodName(c.clock())
	if p, ok := c.periods.Get(name); ok {
		return p, nil
	}

	meta, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return ledger.Period{}, unavailable(fmt.Sprintf("list sheets of %s", c.spreadsheetID), err)
	}
	for _, sh := range meta.Sheets {
		if sh.Properties != nil && sh.Properties.Title == name {
			p := ledger.Period{Name: name, SheetID: sh.Properties.SheetId}
			c.periods.Set(name, p)
			return p, nil
		}
	}

	slog.InfoContext(ctx, "Creating ledger period", "period", name)
	resp, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			AddSheet: &gsheet.AddSheetRequest{
				Properties: &gsheet.SheetProperties{
					Title: name,
					GridProperties: &gsheet.GridProperties{
						RowCount:    1000,
						ColumnCount: 10,
					},
				},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return ledger.Period{}, unavailable(fmt.Sprintf("add sheet %s", name), err)
	}

	var sheetID int64
	if len(resp.Replies) > 0 && resp.Replies[0].AddSheet != nil && resp.Replies[0].AddSheet.Properties != nil {
		sheetID = resp.Replies[0].AddSheet.Properties.SheetId
	}

	header := &gsheet.ValueRange{Values: [][]any{{
		ledger.Header[0], ledger.Header[1], ledger.Header[2], ledger.Header[3],
	}}}
	_, err = c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rangeFor(name), header).
		ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return ledger.Period{}, unavailable(fmt.Sprintf("write header of %s", name), err)
	}

	p := ledger.Period{Name: name, SheetID: sheetID}
	c.periods.Set(name, p)
	return p, nil
}

func (c *Client) Append(ctx context.Context, p ledger.Period, rec core.ExpenseRecord) error {
	vr := &gsheet.ValueRange{Values: [][]any{{rec.Date, rec.Category, rec.Amount, rec.Comment}}}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rangeFor(p.Name), vr).
		ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return unavailable(fmt.Sprintf("append to %s", p.Name), err)
	}
	slog.InfoContext(ctx, "Record appended",
		"period", p.Name,
		"category", rec.Category,
		"amount", rec.Amount)
	return nil
}

func (c *Client) ReadAll(ctx context.Context, p ledger.Period) ([]core.ExpenseRecord, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rangeFor(p.Name)).Context(ctx).Do()
	if err != nil {
		return nil, unavailable(fmt.Sprintf("read %s", p.Name), err)
	}
	return RowsToRecords(resp.Values), nil
}

// RowsToRecords maps raw sheet rows to records, dropping the header row.
// Short rows are padded; no field validation happens here, rows come back as
// the sheet holds them.
func RowsToRecords(rows [][]any) []core.ExpenseRecord {
	var out []core.ExpenseRecord
	for i, row := range rows {
		if i == 0 {
			continue
		}
		cols := make([]string, 4)
		for j := 0; j < len(cols) && j < len(row); j++ {
			cols[j] = strings.TrimSpace(fmt.Sprint(row[j]))
		}
		out = append(out, core.ExpenseRecord{
			Date:     cols[0],
			Category: cols[1],
			Amount:   cols[2],
			Comment:  cols[3],
		})
	}
	return out
}

func rangeFor(sheetName string) string {
	return fmt.Sprintf("%s!A:D", sheetName)
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w", op, errors.Join(ledger.ErrUnavailable, err))
}
