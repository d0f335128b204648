package pipeline

import (
	"context"
	"encoding/csv"
	"fmt"
	"go-dashboard-pipeline/internal/model"
	"go-dashboard-pipeline/pkg/utils"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
)

// ------------------- Loader options -------------------

// LoadOption configures LoadTable via functional options.
type LoadOption func(*loadConfig)

type loadConfig struct {
	client          *http.Client
	transformations []string
}

// WithHTTPClient sets the client used for URL sources.
func WithHTTPClient(c *http.Client) LoadOption {
	return func(cfg *loadConfig) {
		cfg.client = c
	}
}

// WithTransformations replaces the cell transformations applied at load time.
func WithTransformations(names ...string) LoadOption {
	return func(cfg *loadConfig) {
		cfg.transformations = names
	}
}

// ------------------- Ingestion -------------------

// LoadTable reads a CSV dataset from a local path or an http(s) URL and
// checks it against rules. Any failure is a *model.DataLoadError.
func LoadTable(ctx context.Context, source string, rules model.ValidationRules, opts ...LoadOption) (*model.Table, error) {
	cfg := &loadConfig{
		client:          http.DefaultClient,
		transformations: DefaultTransformations,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	log.Printf("➡️ Loading dataset: %s", source)

	reader, closeFn, err := openSource(ctx, cfg.client, source)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	table, err := readCSV(ctx, source, reader, cfg.transformations)
	if err != nil {
		return nil, err
	}

	if err := ValidateTable(source, table, rules); err != nil {
		return nil, err
	}

	log.Printf("📄 Dataset loaded: %d rows, %d columns from %s", table.Len(), len(table.Columns()), source)
	return table, nil
}

func openSource(ctx context.Context, client *http.Client, source string) (io.Reader, func(), error) {
	if strings.HasPrefix(source, "http") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, nil, &model.DataLoadError{Source: source, Reason: "invalid URL", Err: err}
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, nil, &model.DataLoadError{Source: source, Reason: "failed to GET CSV", Err: err}
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			resp.Body.Close()
			return nil, nil, &model.DataLoadError{Source: source, Reason: fmt.Sprintf("unexpected HTTP status %d", resp.StatusCode)}
		}
		return resp.Body, func() { resp.Body.Close() }, nil
	}

	file, err := os.Open(source)
	if err != nil {
		return nil, nil, &model.DataLoadError{Source: source, Reason: "failed to open CSV file", Err: err}
	}
	return file, func() { file.Close() }, nil
}

func readCSV(ctx context.Context, source string, reader io.Reader, transformations []string) (*model.Table, error) {
	csvReader := csv.NewReader(reader)
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	headers, err := csvReader.Read()
	if err == io.EOF {
		return nil, &model.DataLoadError{Source: source, Reason: "empty CSV, no header row"}
	}
	if err != nil {
		return nil, &model.DataLoadError{Source: source, Reason: "failed to read CSV header", Err: err}
	}

	columns := make([]string, len(headers))
	for i, h := range headers {
		columns[i] = cleanHeader(h)
	}

	var rows [][]model.Value
	skipped := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, &model.DataLoadError{Source: source, Reason: "load cancelled", Err: err}
		}

		record, err := csvReader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			skipped++
			if skipped <= 5 {
				log.Printf("❌ CSV read error in %s: %v", source, err)
			}
			continue
		}

		cells, err := applyTransformations(record, transformations)
		if err != nil {
			return nil, &model.DataLoadError{Source: source, Reason: "transformation failed", Err: err}
		}

		row := make([]model.Value, len(columns))
		for i := range columns {
			if i < len(cells) {
				row[i] = model.ValueOf(utils.ParseValue(cells[i]))
			} else {
				row[i] = model.TextValue("")
			}
		}
		rows = append(rows, row)
	}

	if skipped > 0 {
		log.Printf("⚠️ Skipped %d malformed rows in %s", skipped, source)
	}

	table, err := model.NewTable(columns, rows)
	if err != nil {
		return nil, &model.DataLoadError{Source: source, Reason: "invalid header", Err: err}
	}
	return table, nil
}
