// Package google mirrors contribution data to a Google Spreadsheet, one
// tab per year. The mirror is write-only and derived: the stored org
// document stays the source of truth and every mirror run rewrites the
// tab from scratch.
package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"github.com/Musyoka2020-eng/Contriflow/internal/core"
	"github.com/Musyoka2020-eng/Contriflow/internal/log"
	ports "github.com/Musyoka2020-eng/Contriflow/internal/sheets"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	logger        *log.Logger

	// Tab creation races with concurrent year mirrors; guard it.
	mu        sync.Mutex
	knownTabs map[string]bool
}

var _ ports.YearMirror = (*Client)(nil)

// New creates a Sheets client for the given spreadsheet using Service
// Account credentials from GOOGLE_SERVICE_ACCOUNT_JSON,
// GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS.
func New(ctx context.Context, spreadsheetID string, logger *log.Logger) (*Client, error) {
	spreadsheetID = strings.TrimSpace(spreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		logger:        logger.WithComponent(log.ComponentSheets),
		knownTabs:     make(map[string]bool),
	}, nil
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

	return gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
}

// MirrorYear rewrites the year's tab with the full contribution table:
// one section per month in calendar order, a totals line per month.
func (c *Client) MirrorYear(ctx context.Context, year string, data core.YearData) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	tab := tabName(year)
	if err := c.ensureTab(ctx, tab); err != nil {
		return err
	}

	rows := buildRows(year, data)

	clearRange := fmt.Sprintf("%s!A:E", tab)
	if _, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, clearRange, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear %s: %w", clearRange, err)
	}

	writeRange := fmt.Sprintf("%s!A1", tab)
	vr := &gsheet.ValueRange{Values: rows}
	if _, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, writeRange, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do(); err != nil {
		return fmt.Errorf("write %s: %w", writeRange, err)
	}

	c.logger.InfoContext(ctx, "Year mirrored",
		log.FieldYear, year,
		"rows", len(rows))
	return nil
}

// ensureTab creates the year tab when the spreadsheet does not have it.
func (c *Client) ensureTab(ctx context.Context, tab string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.knownTabs[tab] {
		return nil
	}
	ss, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("get spreadsheet: %w", err)
	}
	for _, sheet := range ss.Sheets {
		c.knownTabs[sheet.Properties.Title] = true
	}
	if c.knownTabs[tab] {
		return nil
	}

	req := &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			AddSheet: &gsheet.AddSheetRequest{
				Properties: &gsheet.SheetProperties{Title: tab},
			},
		}},
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("create tab %s: %w", tab, err)
	}
	c.knownTabs[tab] = true
	return nil
}

func buildRows(year string, data core.YearData) [][]any {
	rows := [][]any{{"Month", "Member", "Amount", "Status", "Month Total"}}
	for _, month := range core.Months {
		rec := data[month]
		if rec == nil || len(rec.Contributions) == 0 {
			continue
		}
		var total int64
		for _, contrib := range rec.Contributions {
			status := "Unpaid"
			if contrib.Paid {
				status = "Paid"
			}
			rows = append(rows, []any{month, contrib.MemberName, contrib.Amount, status, ""})
			total += contrib.Amount
		}
		rows = append(rows, []any{month, "TOTAL", total, "", total})
	}
	return rows
}

func tabName(year string) string {
	return fmt.Sprintf("%s Contributions", year)
}
