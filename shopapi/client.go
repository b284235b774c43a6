package shopapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/habiliai/shopagents/errors"
	"github.com/habiliai/shopagents/internal/mylog"
)

type (
	// Client talks to the shop's REST backend.
	Client interface {
		SearchCustomers(ctx context.Context, query string) ([]Customer, error)
		GetCustomerVehicles(ctx context.Context, customerID string) ([]Vehicle, error)

		ListInvoices(ctx context.Context, filter InvoiceFilter) ([]Invoice, error)
		GetInvoice(ctx context.Context, id string) (*Invoice, error)
		CreateInvoice(ctx context.Context, invoice Invoice) (*Invoice, error)
		UpdateInvoice(ctx context.Context, id string, invoice Invoice) (*Invoice, error)

		ListLogs(ctx context.Context, filter LogFilter) ([]LogEntry, error)
		GetLog(ctx context.Context, id string) (*LogEntry, error)

		SearchResearch(ctx context.Context, query ResearchQuery) ([]ResearchResult, error)
		SearchImages(ctx context.Context, query string, num int) ([]Image, error)

		ListAppointments(ctx context.Context, filter AppointmentFilter) ([]Appointment, error)
		CreateAppointment(ctx context.Context, appointment Appointment) (*Appointment, error)
	}

	client struct {
		baseURL    string
		httpClient *http.Client
		logger     *slog.Logger
	}
)

var (
	_ Client = (*client)(nil)
)

func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) Client {
	return &client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

func (c *client) SearchCustomers(ctx context.Context, query string) (customers []Customer, err error) {
	err = c.do(ctx, http.MethodGet, "/customers/search", url.Values{"q": {query}}, nil, &customers)
	return
}

func (c *client) GetCustomerVehicles(ctx context.Context, customerID string) (vehicles []Vehicle, err error) {
	err = c.do(ctx, http.MethodGet, "/customers/"+url.PathEscape(customerID)+"/vehicles", nil, nil, &vehicles)
	return
}

func (c *client) ListInvoices(ctx context.Context, filter InvoiceFilter) (invoices []Invoice, err error) {
	params := url.Values{}
	setIfNotEmpty(params, "customerId", filter.CustomerID)
	setIfNotEmpty(params, "status", filter.Status)
	err = c.do(ctx, http.MethodGet, "/invoices", params, nil, &invoices)
	return
}

func (c *client) GetInvoice(ctx context.Context, id string) (*Invoice, error) {
	var invoice Invoice
	if err := c.do(ctx, http.MethodGet, "/invoices/"+url.PathEscape(id), nil, nil, &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (c *client) CreateInvoice(ctx context.Context, invoice Invoice) (*Invoice, error) {
	var created Invoice
	if err := c.do(ctx, http.MethodPost, "/invoices", nil, invoice, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *client) UpdateInvoice(ctx context.Context, id string, invoice Invoice) (*Invoice, error) {
	var updated Invoice
	if err := c.do(ctx, http.MethodPut, "/invoices/"+url.PathEscape(id), nil, invoice, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *client) ListLogs(ctx context.Context, filter LogFilter) (logs []LogEntry, err error) {
	params := url.Values{}
	setIfNotEmpty(params, "vehicleId", filter.VehicleID)
	setIfNotEmpty(params, "customerId", filter.CustomerID)
	if filter.Limit > 0 {
		params.Set("limit", strconv.Itoa(filter.Limit))
	}
	err = c.do(ctx, http.MethodGet, "/logs", params, nil, &logs)
	return
}

func (c *client) GetLog(ctx context.Context, id string) (*LogEntry, error) {
	var entry LogEntry
	if err := c.do(ctx, http.MethodGet, "/logs/"+url.PathEscape(id), nil, nil, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (c *client) SearchResearch(ctx context.Context, query ResearchQuery) (results []ResearchResult, err error) {
	params := url.Values{"query": {query.Query}}
	setIfNotEmpty(params, "vehicleId", query.VehicleID)
	if query.Limit > 0 {
		params.Set("limit", strconv.Itoa(query.Limit))
	}
	err = c.do(ctx, http.MethodGet, "/research", params, nil, &results)
	return
}

func (c *client) SearchImages(ctx context.Context, query string, num int) (images []Image, err error) {
	params := url.Values{"q": {query}}
	if num > 0 {
		params.Set("num", strconv.Itoa(num))
	}
	err = c.do(ctx, http.MethodGet, "/images/search", params, nil, &images)
	return
}

func (c *client) ListAppointments(ctx context.Context, filter AppointmentFilter) (appointments []Appointment, err error) {
	params := url.Values{}
	setIfNotEmpty(params, "customerId", filter.CustomerID)
	if filter.From != nil {
		params.Set("from", filter.From.Format(time.RFC3339))
	}
	if filter.To != nil {
		params.Set("to", filter.To.Format(time.RFC3339))
	}
	err = c.do(ctx, http.MethodGet, "/appointments", params, nil, &appointments)
	return
}

func (c *client) CreateAppointment(ctx context.Context, appointment Appointment) (*Appointment, error) {
	var created Appointment
	if err := c.do(ctx, http.MethodPost, "/appointments", nil, appointment, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *client) do(ctx context.Context, method, path string, params url.Values, body any, out any) error {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrapf(err, "failed to encode request body")
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return errors.Wrapf(err, "failed to create request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	startedAt := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("shop api request failed", "method", method, "path", path, mylog.Err(err))
		return errors.Wrapf(errors.ErrUpstream, "%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("shop api request", "method", method, "path", path, "status", resp.StatusCode, "duration", time.Since(startedAt))

	if resp.StatusCode == http.StatusNotFound {
		return errors.Wrapf(errors.ErrNotFound, "%s %s", method, path)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return errors.Wrapf(errors.ErrUpstream, "%s %s: HTTP %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "failed to decode response of %s %s", method, path)
	}
	return nil
}

func setIfNotEmpty(params url.Values, key, value string) {
	if value != "" {
		params.Set(key, value)
	}
}
