package sheets

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tbarantsev/email-insights/internal/core/domain"
	"github.com/tbarantsev/email-insights/internal/infrastructure/resilience"
	"github.com/tbarantsev/email-insights/internal/infrastructure/source"
)

const operation = "sheets-export"

// Client downloads a spreadsheet workbook export over HTTP and reads one
// worksheet as the raw email analysis table.
type Client struct {
	url       string
	worksheet string
	apiKey    string

	httpClient *http.Client
	exec       *resilience.Executor
}

// New builds the export client. An empty worksheet name selects the first
// worksheet of the workbook.
func New(url, worksheet, apiKey string, timeout time.Duration, exec *resilience.Executor) *Client {
	return &Client{
		url:        strings.TrimSpace(url),
		worksheet:  strings.TrimSpace(worksheet),
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

		parsed, err := c.parseWorkbook(body)
		if err != nil {
			return domain.WrapError(domain.ErrSourceShape, operation, err)
		}
		table = parsed
		return nil
	})
	if err != nil {
		return domain.RawTable{}, source.WrapFetchError(operation, err)
	}
	return table, nil
}

func (c *Client) parseWorkbook(body []byte) (domain.RawTable, error) {
	book, err := excelize.OpenReader(bytes.NewReader(body))
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("open workbook: %w", err)
	}
	defer book.Close()

	sheet, err := c.pickWorksheet(book)
	if err != nil {
		return domain.RawTable{}, err
	}

	rows, err := book.GetRows(sheet)
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("read worksheet %q: %w", sheet, err)
	}
	return source.TableFromRows(rows), nil
}

func (c *Client) pickWorksheet(book *excelize.File) (string, error) {
	sheetList := book.GetSheetList()
	if len(sheetList) == 0 {
		return "", fmt.Errorf("workbook has no worksheets")
	}
	if c.worksheet == "" {
		return sheetList[0], nil
	}
	for _, name := range sheetList {
		if name == c.worksheet {
			return name, nil
		}
	}
	return "", fmt.Errorf("worksheet %q not found (have: %s)", c.worksheet, strings.Join(sheetList, ", "))
}
