// Package sheets reads the student sheet through the Google Sheets API.
package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/okian/leetboard/internal/domain/model"
	"github.com/okian/leetboard/pkg/logger"
)

const (
	defaultSheetName = "Real data Leetcode"
	defaultRange     = "A:ZZ"
)

// Client is a read-only Sheets client bound to one spreadsheet and tab.
type Client struct {
	svc *sheetsapi.Service

	spreadsheetID   string
	sheetName       string
	cellRange       string
	credentialsFile string
	credentialsJSON string
	serviceAccount  string
	clientOpts      []option.ClientOption
	log             logger.Logger
}

// New builds a Client for spreadsheetID.
func New(ctx context.Context, spreadsheetID string, opts ...Option) (*Client, error) {
	if spreadsheetID == "" {
		return nil, ErrMissingSpreadsheetID
	}
	c := &Client{
		spreadsheetID: spreadsheetID,
		sheetName:     defaultSheetName,
		cellRange:     defaultRange,
		log:           logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	svcOpts := []option.ClientOption{option.WithScopes(sheetsapi.SpreadsheetsReadonlyScope)}
	switch {
	case c.credentialsJSON != "":
		svcOpts = append(svcOpts, option.WithCredentialsJSON([]byte(c.credentialsJSON)))
		c.serviceAccount = clientEmail([]byte(c.credentialsJSON))
	case c.credentialsFile != "":
		raw, err := os.ReadFile(c.credentialsFile)
		switch {
		case err == nil:
			svcOpts = append(svcOpts, option.WithCredentialsJSON(raw))
			c.serviceAccount = clientEmail(raw)
		case errors.Is(err, os.ErrNotExist):
			c.log.Warn(ctx, "credentials file not found, using application default credentials",
				logger.String("path", c.credentialsFile))
		default:
			return nil, fmt.Errorf("%w: %w", ErrCredentials, err)
		}
	}
	svcOpts = append(svcOpts, c.clientOpts...)

	svc, err := sheetsapi.NewService(ctx, svcOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrSourceUnavailable, err)
	}
	c.svc = svc
	return c, nil
}

// SpreadsheetID returns the bound spreadsheet.
func (c *Client) SpreadsheetID() string { return c.spreadsheetID }

// SheetName returns the configured tab.
func (c *Client) SheetName() string { return c.sheetName }

// ServiceAccount returns the client_email of the key in use, if known.
func (c *Client) ServiceAccount() string { return c.serviceAccount }

// A1Range quotes tab for A1 notation and appends span.
func A1Range(tab, span string) string {
	return "'" + strings.ReplaceAll(tab, "'", "''") + "'!" + span
}

// FetchRawSheet reads the configured tab. Any API failure is
// ErrSourceUnavailable; an empty tab is ErrEmptySheet.
func (c *Client) FetchRawSheet(ctx context.Context) (model.RawSheet, error) {
	return c.ReadRange(ctx, A1Range(c.sheetName, c.cellRange))
}

// ReadRange reads any A1 range of the spreadsheet as text cells.
func (c *Client) ReadRange(ctx context.Context, a1 string) (model.RawSheet, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, a1).Context(ctx).Do()
	if err != nil {
		c.explain(ctx, err)
		return nil, fmt.Errorf("%w: read %s: %w", model.ErrSourceUnavailable, a1, err)
	}
	if len(resp.Values) == 0 {
		return nil, fmt.Errorf("%w: %s", model.ErrEmptySheet, a1)
	}
	raw := make(model.RawSheet, len(resp.Values))
	for i, row := range resp.Values {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = cellText(v)
		}
		raw[i] = cells
	}
	return raw, nil
}

// Spreadsheet returns the spreadsheet title and its tab names in order.
func (c *Client) Spreadsheet(ctx context.Context) (model.SpreadsheetInfo, error) {
	resp, err := c.svc.Spreadsheets.Get(c.spreadsheetID).
		Fields("properties.title", "sheets.properties.title").
		Context(ctx).Do()
	if err != nil {
		c.explain(ctx, err)
		return model.SpreadsheetInfo{}, fmt.Errorf("%w: %w", model.ErrSourceUnavailable, err)
	}
	info := model.SpreadsheetInfo{Sheets: make([]string, 0, len(resp.Sheets))}
	if resp.Properties != nil {
		info.Title = resp.Properties.Title
	}
	for _, s := range resp.Sheets {
		if s.Properties != nil {
			info.Sheets = append(info.Sheets, s.Properties.Title)
		}
	}
	return info, nil
}

// explain logs what an operator can do about common API failures.
func (c *Client) explain(ctx context.Context, err error) {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return
	}
	switch {
	case gerr.Code == http.StatusForbidden || gerr.Code == http.StatusNotFound:
		c.log.Error(ctx, "spreadsheet not accessible; share it with the service account",
			logger.String("spreadsheet_id", c.spreadsheetID),
			logger.String("service_account", c.serviceAccount),
			logger.Int("status", gerr.Code),
		)
	case gerr.Code == http.StatusBadRequest && strings.Contains(gerr.Message, "Unable to parse range"):
		fields := []logger.Field{logger.String("sheet", c.sheetName)}
		if info, infoErr := c.Spreadsheet(ctx); infoErr == nil {
			fields = append(fields, logger.Any("available_sheets", info.Sheets))
		}
		c.log.Error(ctx, "sheet tab not found", fields...)
	}
}

// cellText renders a cell value the way the sheet displays it.
func cellText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

func clientEmail(raw []byte) string {
	var key struct {
		ClientEmail string `json:"client_email"`
	}
	if err := json.Unmarshal(raw, &key); err != nil {
		return ""
	}
	return key.ClientEmail
}
