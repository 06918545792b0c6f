// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tabular downloads CSV resources and produces bounded previews.
package tabular

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/dataqa/internal/httputil"
	"github.com/pdiddy/dataqa/pkg/types"
)

const defaultMaxRows = 10

// Sampler fetches a CSV file once and derives both a row preview and the
// total row count from the same downloaded bytes.
type Sampler struct {
	UserAgent string
	MaxRows   int
	HTTP      *http.Client
}

// New builds a sampler from configuration.
func New(cfg types.SamplerConfig) *Sampler {
	return &Sampler{
		UserAgent: cfg.UserAgent,
		MaxRows:   cfg.MaxSampleRows,
		HTTP:      httputil.NewClient(cfg.HTTPConfig),
	}
}

// Sample downloads the resource at url and returns the first MaxRows data
// rows plus the file's total data row count. The count is the raw line
// count minus one header line; a file with no data rows reports -1.
func (s *Sampler) Sample(ctx context.Context, url string) (types.Sample, error) {
	body, err := httputil.Get(ctx, s.HTTP, url, s.UserAgent)
	if err != nil {
		return types.Sample{}, fmt.Errorf("downloading resource: %w", err)
	}

	maxRows := s.MaxRows
	if maxRows <= 0 {
		maxRows = defaultMaxRows
	}

	columns, rows, err := parsePreview(body, maxRows)
	if err != nil {
		return types.Sample{}, fmt.Errorf("parsing CSV from %s: %w", url, err)
	}

	return types.Sample{
		Columns:   columns,
		Rows:      rows,
		TotalRows: countLines(body) - 1,
	}, nil
}

// parsePreview reads the header line and up to maxRows data rows, mapping
// each row to column-name keyed values.
func parsePreview(body []byte, maxRows int) ([]string, []map[string]string, error) {
	r := csv.NewReader(bytes.NewReader(body))

	columns, err := r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("reading header: %w", err)
	}

	var rows []map[string]string
	for len(rows) < maxRows {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("reading row %d: %w", len(rows)+1, err)
		}

		row := make(map[string]string, len(columns))
		for i, col := range columns {
			row[col] = record[i]
		}
		rows = append(rows, row)
	}

	return columns, rows, nil
}

// countLines counts text lines the way line iteration does: every newline
// ends a line, and a trailing fragment without a newline still counts.
func countLines(body []byte) int {
	n := bytes.Count(body, []byte{'\n'})
	if len(body) > 0 && body[len(body)-1] != '\n' {
		n++
	}
	return n
}
