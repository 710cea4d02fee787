package sheets

import (
	"context"
	"fmt"

	"github.com/martinezcrafts/shopdesk-backend/pkg/config"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"
)

// Client appends rows to the order spreadsheet. The worksheet is treated as
// append-only; nothing here reads rows back or updates them.
type Client struct {
	svc           *sheets.Service
	spreadsheetID string
	worksheet     string
}

// Pinger exposes the health-check surface.
type Pinger interface {
	Ping(ctx context.Context) error
}

// New builds a Sheets client from configuration. Credentials fall back to
// application default credentials when no JSON key is provided.
func New(ctx context.Context, cfg config.SheetsConfig) (*Client, error) {
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("sheets spreadsheet id is required")
	}
	if cfg.Worksheet == "" {
		return nil, fmt.Errorf("sheets worksheet is required")
	}

	var opts []option.ClientOption
	if cfg.CredentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	}

	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		worksheet:     cfg.Worksheet,
	}, nil
}

// AppendRow appends one row to the configured worksheet. Concurrent appends
// are serialized by the Sheets API; rows never overwrite one another.
func (c *Client) AppendRow(ctx context.Context, row []any) error {
	values := &sheets.ValueRange{Values: [][]any{row}}
	_, err := c.svc.Spreadsheets.Values.
		Append(c.spreadsheetID, c.worksheet, values).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("appending row to %s!%s: %w", c.spreadsheetID, c.worksheet, err)
	}
	return nil
}

// Ping fetches spreadsheet metadata to verify reachability and permissions.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.svc.Spreadsheets.
		Get(c.spreadsheetID).
		Fields("spreadsheetId").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("fetching spreadsheet %s: %w", c.spreadsheetID, err)
	}
	return nil
}
