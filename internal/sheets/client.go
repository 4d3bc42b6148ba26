// Package sheets talks to the Google Sheets v4 REST API with a service
// account. It covers the three calls the pipeline needs: reading worksheet
// values, writing plain values back, and applying rich-text formatting.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
)

const (
	// Scope grants read/write access to spreadsheets.
	Scope = "https://www.googleapis.com/auth/spreadsheets"

	defaultBaseURL = "https://sheets.googleapis.com/v4/spreadsheets"
)

// Client is a Google Sheets API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient builds a client from service account credentials JSON.
func NewClient(ctx context.Context, credentialsJSON []byte) (*Client, error) {
	cfg, err := google.JWTConfigFromJSON(credentialsJSON, Scope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}
	return &Client{
		httpClient: cfg.Client(ctx),
		baseURL:    defaultBaseURL,
	}, nil
}

// NewClientFromFile builds a client from a credentials file path.
func NewClientFromFile(ctx context.Context, path string) (*Client, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	return NewClient(ctx, data)
}

// NewTestClient builds a client against an arbitrary endpoint without
// authentication. Tests only.
func NewTestClient(httpClient *http.Client, baseURL string) *Client {
	return &Client{httpClient: httpClient, baseURL: baseURL}
}

// WorksheetInfo describes one worksheet inside a spreadsheet.
type WorksheetInfo struct {
	SheetID int64  // Numeric grid ID, used in formatting requests
	Title   string
}

// Worksheets returns the worksheets of a spreadsheet in sheet order.
func (c *Client) Worksheets(ctx context.Context, spreadsheetID string) ([]WorksheetInfo, error) {
	u := fmt.Sprintf("%s/%s?fields=sheets.properties(sheetId,title)", c.baseURL, url.PathEscape(spreadsheetID))

	var meta struct {
		Sheets []struct {
			Properties struct {
				SheetID int64  `json:"sheetId"`
				Title   string `json:"title"`
			} `json:"properties"`
		} `json:"sheets"`
	}
	if err := c.do(ctx, http.MethodGet, u, nil, &meta); err != nil {
		return nil, fmt.Errorf("failed to get spreadsheet %s: %w", spreadsheetID, err)
	}

	infos := make([]WorksheetInfo, 0, len(meta.Sheets))
	for _, s := range meta.Sheets {
		infos = append(infos, WorksheetInfo{SheetID: s.Properties.SheetID, Title: s.Properties.Title})
	}
	return infos, nil
}

// Values returns all cell values of a worksheet as strings. Row lengths are
// ragged: trailing empty cells are absent.
func (c *Client) Values(ctx context.Context, spreadsheetID, worksheetTitle string) ([][]string, error) {
	rng := "'" + strings.ReplaceAll(worksheetTitle, "'", "''") + "'"
	u := fmt.Sprintf("%s/%s/values/%s", c.baseURL, url.PathEscape(spreadsheetID), url.PathEscape(rng))

	var vr struct {
		Values [][]any `json:"values"`
	}
	if err := c.do(ctx, http.MethodGet, u, nil, &vr); err != nil {
		return nil, fmt.Errorf("failed to get values of %s/%s: %w", spreadsheetID, worksheetTitle, err)
	}

	rows := make([][]string, len(vr.Values))
	for i, row := range vr.Values {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = fmt.Sprint(cell)
		}
		rows[i] = cells
	}
	return rows, nil
}

// ValueUpdate is one range of plain values to write.
type ValueUpdate struct {
	Range  string     `json:"range"`
	Values [][]string `json:"values"`
}

// BatchUpdateValues writes plain values in one call. Values are written RAW,
// without client-side parsing into numbers or formulas.
func (c *Client) BatchUpdateValues(ctx context.Context, spreadsheetID string, updates []ValueUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	body := map[string]any{
		"valueInputOption": "RAW",
		"data":             updates,
	}
	u := fmt.Sprintf("%s/%s/values:batchUpdate", c.baseURL, url.PathEscape(spreadsheetID))
	if err := c.do(ctx, http.MethodPost, u, body, nil); err != nil {
		return fmt.Errorf("failed to batch update values of %s: %w", spreadsheetID, err)
	}
	return nil
}

// BatchUpdate applies structural requests (formatting) in one call.
func (c *Client) BatchUpdate(ctx context.Context, spreadsheetID string, requests []Request) error {
	if len(requests) == 0 {
		return nil
	}
	body := map[string]any{"requests": requests}
	u := fmt.Sprintf("%s/%s:batchUpdate", c.baseURL, url.PathEscape(spreadsheetID))
	if err := c.do(ctx, http.MethodPost, u, body, nil); err != nil {
		return fmt.Errorf("failed to batch update %s: %w", spreadsheetID, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, url string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(respBody))
	}
	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}
	return nil
}
