package csvhttp

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tbarantsev/email-insights/internal/core/domain"
	"github.com/tbarantsev/email-insights/internal/infrastructure/resilience"
	"github.com/tbarantsev/email-insights/internal/infrastructure/source"
)

const operation = "csv-export"

// Client downloads a CSV export over HTTP. It tolerates ragged rows and
// sloppy quoting, which spreadsheet CSV exports regularly produce.
type Client struct {
	url    string
	apiKey string

	httpClient *http.Client
	exec       *resilience.Executor
}

func New(url, apiKey string, timeout time.Duration, exec *resilience.Executor) *Client {
	return &Client{
		url:        strings.TrimSpace(url),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		exec:       exec,
	}
}

func (c *Client) Name() string {
	return operation
}

func (c *Client) Fetch(ctx context.Context) (domain.RawTable, error) {
	var table domain.RawTable
	err := c.exec.Execute(ctx, operation, func(ctx context.Context) error {
		body, err := source.GetBody(ctx, c.httpClient, c.url, c.apiKey, operation)
		if err != nil {
			return err
		}

		rows, err := parseCSV(body)
		if err != nil {
			return domain.WrapError(domain.ErrSourceShape, operation, err)
		}
		table = source.TableFromRows(rows)
		return nil
	})
	if err != nil {
		return domain.RawTable{}, source.WrapFetchError(operation, err)
	}
	return table, nil
}

func parseCSV(body []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(body))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return rows, nil
}
