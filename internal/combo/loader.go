package combo

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ramonehamilton/commander-analyzer/internal/version"
)

// ErrNoRows is returned when a combo source contains no usable rows.
var ErrNoRows = errors.New("combo table has no rows")

// sheetResponse is the body of a Google Sheets values:batchGet call.
type sheetResponse struct {
	SpreadsheetID string `json:"spreadsheetId"`
	ValueRanges   []struct {
		Range          string     `json:"range"`
		MajorDimension string     `json:"majorDimension"`
		Values         [][]string `json:"values"`
	} `json:"valueRanges"`
}

// ParseSheet reads combos from a values:batchGet response. Only the first
// value range is used.
func ParseSheet(r io.Reader) ([]Combo, error) {
	var resp sheetResponse
	if err := json.NewDecoder(r).Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to decode combo sheet: %w", err)
	}
	if len(resp.ValueRanges) == 0 {
		return nil, ErrNoRows
	}
	combos := FromRows(resp.ValueRanges[0].Values)
	if len(combos) == 0 {
		return nil, ErrNoRows
	}
	return combos, nil
}

// ParseCSV reads combos from CSV. Rows may have any number of fields.
func ParseCSV(r io.Reader) ([]Combo, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read combo csv: %w", err)
	}
	combos := FromRows(rows)
	if len(combos) == 0 {
		return nil, ErrNoRows
	}
	return combos, nil
}

// Fetcher loads the combo table from a URL or a local file.
type Fetcher struct {
	source     string
	httpClient *http.Client
	userAgent  string
}

// NewFetcher creates a fetcher for source, which is an http(s) URL or a
// file path. Paths ending in .csv are parsed as CSV, everything else as a
// sheet response.
func NewFetcher(source string) *Fetcher {
	return &Fetcher{
		source:     source,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		userAgent:  version.UserAgent(),
	}
}

// Source returns the configured source.
func (f *Fetcher) Source() string {
	return f.source
}

// Fetch downloads and parses the combo table.
func (f *Fetcher) Fetch(ctx context.Context) ([]Combo, error) {
	if f.source == "" {
		return nil, fmt.Errorf("no combo source configured")
	}

	body, contentType, err := f.open(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = body.Close() }()

	if isCSV(f.source, contentType) {
		return ParseCSV(body)
	}
	return ParseSheet(body)
}

func (f *Fetcher) open(ctx context.Context) (io.ReadCloser, string, error) {
	if !strings.HasPrefix(f.source, "http://") && !strings.HasPrefix(f.source, "https://") {
		file, err := os.Open(strings.TrimPrefix(f.source, "file://"))
		if err != nil {
			return nil, "", fmt.Errorf("failed to open combo file: %w", err)
		}
		return file, "", nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.source, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch combos: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, "", fmt.Errorf("combo source returned status %d", resp.StatusCode)
	}
	return resp.Body, resp.Header.Get("Content-Type"), nil
}

func isCSV(source, contentType string) bool {
	if strings.Contains(contentType, "text/csv") {
		return true
	}
	path, _, _ := strings.Cut(source, "?")
	return strings.HasSuffix(strings.ToLower(path), ".csv")
}
