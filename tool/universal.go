package tool

import (
	"github.com/habiliai/shopagents/entity"
	"github.com/habiliai/shopagents/errors"
	"github.com/habiliai/shopagents/internal/stringutils"
	"github.com/habiliai/shopagents/memory"
	"github.com/habiliai/shopagents/shopapi"
	"github.com/mokiat/gog"
)

type UniversalDeps struct {
	Memory memory.Store
	Shop   shopapi.Client
}

const (
	defaultResearchLimit = 5
	defaultImageCount    = 4
	defaultLogLimit      = 20
)

// RegisterUniversalTools registers the handlers behind the tools every agent
// receives. Backend failures are reported in the response's error field so the
// conversation can recover; malformed requests fail the call.
func RegisterUniversalTools(r *Registry, deps UniversalDeps) error {
	if deps.Memory == nil || deps.Shop == nil {
		return errors.Wrapf(errors.ErrInvalidConfig, "universal tools need a memory store and a shop client")
	}

	if err := RegisterFunc(r, entity.ToolNameSetMemory, func(ctx *Context, req struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}) (resp struct {
		Memory *memory.Memory `json:"memory,omitempty"`
		Error  *string        `json:"error,omitempty"`
	}, err error) {
		if req.Key == "" {
			err = errors.Wrapf(errors.ErrInvalidParams, "key is required")
			return
		}

		scope := ctx.GetSessionID()
		if scope == "" {
			scope = memory.GlobalScope
		}
		m := &memory.Memory{
			Scope:  scope,
			Key:    req.Key,
			Value:  stringutils.Sanitize(req.Value),
			Source: memory.MemorySourceAgent,
		}
		if name := ctx.GetAgent().Name; name != "" {
			m.Tags = []string{name}
		}

		if e := deps.Memory.Set(ctx, m); e != nil {
			resp.Error = gog.PtrOf(e.Error())
			return
		}
		resp.Memory = m
		return
	}); err != nil {
		return err
	}

	if err := RegisterFunc(r, entity.ToolNameGetResearchData, func(ctx *Context, req struct {
		Query     string `json:"query"`
		VehicleID string `json:"vehicle_id,omitempty"`
		Limit     int    `json:"limit,omitempty"`
	}) (resp struct {
		Results []shopapi.ResearchResult `json:"results"`
		Error   *string                  `json:"error,omitempty"`
	}, err error) {
		if req.Query == "" {
			err = errors.Wrapf(errors.ErrInvalidParams, "query is required")
			return
		}
		if req.Limit <= 0 {
			req.Limit = defaultResearchLimit
		}

		results, e := deps.Shop.SearchResearch(ctx, shopapi.ResearchQuery{
			Query:     req.Query,
			VehicleID: req.VehicleID,
			Limit:     req.Limit,
		})
		if e != nil {
			resp.Error = gog.PtrOf(e.Error())
			return
		}
		resp.Results = emptyIfNil(results)
		return
	}); err != nil {
		return err
	}

	if err := RegisterFunc(r, entity.ToolNameInvoiceService, invoiceService(deps.Shop)); err != nil {
		return err
	}

	if err := RegisterFunc(r, entity.ToolNameLogsService, logsService(deps.Shop)); err != nil {
		return err
	}

	if err := RegisterFunc(r, entity.ToolNameSearchImages, func(ctx *Context, req struct {
		Query string `json:"query"`
		Num   int    `json:"num,omitempty"`
	}) (resp struct {
		Images []shopapi.Image `json:"images"`
		Error  *string         `json:"error,omitempty"`
	}, err error) {
		if req.Query == "" {
			err = errors.Wrapf(errors.ErrInvalidParams, "query is required")
			return
		}
		if req.Num <= 0 {
			req.Num = defaultImageCount
		}

		images, e := deps.Shop.SearchImages(ctx, req.Query, req.Num)
		if e != nil {
			resp.Error = gog.PtrOf(e.Error())
			return
		}
		resp.Images = emptyIfNil(images)
		return
	}); err != nil {
		return err
	}

	return nil
}

type (
	InvoiceRequest struct {
		Action     string             `json:"action"`
		InvoiceID  string             `json:"invoice_id,omitempty"`
		CustomerID string             `json:"customer_id,omitempty"`
		VehicleID  string             `json:"vehicle_id,omitempty"`
		Status     string             `json:"status,omitempty"`
		LineItems  []InvoiceLineInput `json:"line_items,omitempty"`
		Notes      string             `json:"notes,omitempty"`
	}

	InvoiceLineInput struct {
		Description string  `json:"description"`
		Quantity    float64 `json:"quantity"`
		UnitPrice   float64 `json:"unit_price"`
	}

	InvoiceResponse struct {
		Invoice  *shopapi.Invoice  `json:"invoice,omitempty"`
		Invoices *[]shopapi.Invoice `json:"invoices,omitempty"`
		Error    *string           `json:"error,omitempty"`
	}
)

func (r InvoiceRequest) toInvoice() shopapi.Invoice {
	invoice := shopapi.Invoice{
		CustomerID: r.CustomerID,
		VehicleID:  r.VehicleID,
		Status:     r.Status,
		Notes:      r.Notes,
	}
	for _, item := range r.LineItems {
		invoice.LineItems = append(invoice.LineItems, shopapi.LineItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return invoice
}

func invoiceService(shop shopapi.Client) func(*Context, InvoiceRequest) (InvoiceResponse, error) {
	return func(ctx *Context, req InvoiceRequest) (resp InvoiceResponse, err error) {
		var e error
		switch req.Action {
		case "list":
			var invoices []shopapi.Invoice
			invoices, e = shop.ListInvoices(ctx, shopapi.InvoiceFilter{
				CustomerID: req.CustomerID,
				Status:     req.Status,
			})
			resp.Invoices = gog.PtrOf(emptyIfNil(invoices))
		case "get":
			if req.InvoiceID == "" {
				return resp, errors.Wrapf(errors.ErrInvalidParams, "invoice_id is required for get")
			}
			resp.Invoice, e = shop.GetInvoice(ctx, req.InvoiceID)
		case "create":
			if req.CustomerID == "" {
				return resp, errors.Wrapf(errors.ErrInvalidParams, "customer_id is required for create")
			}
			resp.Invoice, e = shop.CreateInvoice(ctx, req.toInvoice())
		case "update":
			if req.InvoiceID == "" {
				return resp, errors.Wrapf(errors.ErrInvalidParams, "invoice_id is required for update")
			}
			resp.Invoice, e = shop.UpdateInvoice(ctx, req.InvoiceID, req.toInvoice())
		default:
			return resp, errors.Wrapf(errors.ErrInvalidParams, "unknown invoice action %q", req.Action)
		}
		if e != nil {
			resp.Error = gog.PtrOf(e.Error())
		}
		return resp, nil
	}
}

type (
	LogsRequest struct {
		Action     string `json:"action"`
		LogID      string `json:"log_id,omitempty"`
		VehicleID  string `json:"vehicle_id,omitempty"`
		CustomerID string `json:"customer_id,omitempty"`
		Limit      int    `json:"limit,omitempty"`
	}

	LogsResponse struct {
		Log   *shopapi.LogEntry  `json:"log,omitempty"`
		Logs  *[]shopapi.LogEntry `json:"logs,omitempty"`
		Error *string            `json:"error,omitempty"`
	}
)

func logsService(shop shopapi.Client) func(*Context, LogsRequest) (LogsResponse, error) {
	return func(ctx *Context, req LogsRequest) (resp LogsResponse, err error) {
		var e error
		switch req.Action {
		case "list":
			if req.Limit <= 0 {
				req.Limit = defaultLogLimit
			}
			var logs []shopapi.LogEntry
			logs, e = shop.ListLogs(ctx, shopapi.LogFilter{
				VehicleID:  req.VehicleID,
				CustomerID: req.CustomerID,
				Limit:      req.Limit,
			})
			resp.Logs = gog.PtrOf(emptyIfNil(logs))
		case "get":
			if req.LogID == "" {
				return resp, errors.Wrapf(errors.ErrInvalidParams, "log_id is required for get")
			}
			resp.Log, e = shop.GetLog(ctx, req.LogID)
		default:
			return resp, errors.Wrapf(errors.ErrInvalidParams, "unknown logs action %q", req.Action)
		}
		if e != nil {
			resp.Error = gog.PtrOf(e.Error())
		}
		return resp, nil
	}
}

func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return make([]T, 0)
	}
	return s
}
