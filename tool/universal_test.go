package tool_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/habiliai/shopagents/agent"
	"github.com/habiliai/shopagents/entity"
	myerrors "github.com/habiliai/shopagents/errors"
	"github.com/habiliai/shopagents/internal/db"
	"github.com/habiliai/shopagents/internal/mylog"
	"github.com/habiliai/shopagents/memory"
	"github.com/habiliai/shopagents/shopapi"
	shopapitest "github.com/habiliai/shopagents/shopapi/test"
	"github.com/habiliai/shopagents/tool"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type universalFixture struct {
	dispatcher *tool.Dispatcher
	memory     memory.Store
	shop       *shopapitest.ClientMock
	agent      entity.Agent
}

func newUniversalFixture(t *testing.T) *universalFixture {
	t.Helper()

	gormDB, err := db.OpenMemoryDB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.CloseDB(gormDB) })
	require.NoError(t, db.AutoMigrate(context.Background(), gormDB, memory.Models()...))

	f := &universalFixture{
		memory: memory.NewStore(gormDB),
		shop:   &shopapitest.ClientMock{},
	}
	t.Cleanup(func() { f.shop.AssertExpectations(t) })

	r := tool.NewRegistry()
	require.NoError(t, tool.RegisterUniversalTools(r, tool.UniversalDeps{Memory: f.memory, Shop: f.shop}))
	require.NoError(t, tool.RegisterTransferTool(r))
	f.dispatcher = tool.NewDispatcher(r, mylog.Discard())

	f.agent = agent.InjectTools([]entity.Agent{{Name: "service"}})[0]
	require.NoError(t, f.dispatcher.Validate([]entity.Agent{f.agent}))

	return f
}

func (f *universalFixture) call(t *testing.T, ctx context.Context, name string, args string) any {
	t.Helper()
	res, err := f.dispatcher.Dispatch(ctx, f.agent, tool.Call{Name: name, Arguments: json.RawMessage(args)})
	require.NoError(t, err)
	return res.Output
}

func toJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func TestSetMemory(t *testing.T) {
	f := newUniversalFixture(t)
	ctx := tool.WithSessionID(context.Background(), "session-1")

	f.call(t, ctx, entity.ToolNameSetMemory, `{"key":"customer_phone","value":"555-0100"}`)

	m, err := f.memory.Get(context.Background(), "session-1", "customer_phone")
	require.NoError(t, err)
	require.Equal(t, "555-0100", m.Value)
	require.Equal(t, memory.MemorySourceAgent, m.Source)
	require.Equal(t, []string{"service"}, []string(m.Tags))

	_, err = f.dispatcher.Dispatch(ctx, f.agent, tool.Call{Name: entity.ToolNameSetMemory, Arguments: json.RawMessage(`{"value":"x"}`)})
	require.ErrorIs(t, err, myerrors.ErrInvalidParams)
}

func TestInvoiceService(t *testing.T) {
	f := newUniversalFixture(t)
	ctx := context.Background()

	f.shop.On("ListInvoices", mock.Anything, shopapi.InvoiceFilter{CustomerID: "c-1"}).
		Return([]shopapi.Invoice{{ID: "inv-1", CustomerID: "c-1", Total: 120}}, nil).Once()
	out := f.call(t, ctx, entity.ToolNameInvoiceService, `{"action":"list","customer_id":"c-1"}`)
	require.JSONEq(t, `{"invoices":[{"id":"inv-1","customerId":"c-1","total":120}]}`, toJSON(t, out))

	f.shop.On("ListInvoices", mock.Anything, shopapi.InvoiceFilter{CustomerID: "c-2", Status: "open"}).
		Return([]shopapi.Invoice(nil), nil).Once()
	out = f.call(t, ctx, entity.ToolNameInvoiceService, `{"action":"list","customer_id":"c-2","status":"open"}`)
	require.JSONEq(t, `{"invoices":[]}`, toJSON(t, out))

	f.shop.On("CreateInvoice", mock.Anything, shopapi.Invoice{
		CustomerID: "c-1",
		VehicleID:  "v-1",
		LineItems:  []shopapi.LineItem{{Description: "Oil change", Quantity: 1, UnitPrice: 49.99}},
	}).Return(&shopapi.Invoice{ID: "inv-2", CustomerID: "c-1"}, nil).Once()
	out = f.call(t, ctx, entity.ToolNameInvoiceService, `{"action":"create","customer_id":"c-1","vehicle_id":"v-1","line_items":[{"description":"Oil change","quantity":1,"unit_price":49.99}]}`)
	require.JSONEq(t, `{"invoice":{"id":"inv-2","customerId":"c-1"}}`, toJSON(t, out))

	f.shop.On("GetInvoice", mock.Anything, "inv-404").
		Return(nil, myerrors.Wrapf(myerrors.ErrNotFound, "invoice inv-404")).Once()
	out = f.call(t, ctx, entity.ToolNameInvoiceService, `{"action":"get","invoice_id":"inv-404"}`)
	require.Contains(t, toJSON(t, out), "invoice inv-404")

	_, err := f.dispatcher.Dispatch(ctx, f.agent, tool.Call{Name: entity.ToolNameInvoiceService, Arguments: json.RawMessage(`{"action":"update"}`)})
	require.ErrorIs(t, err, myerrors.ErrInvalidParams)

	_, err = f.dispatcher.Dispatch(ctx, f.agent, tool.Call{Name: entity.ToolNameInvoiceService, Arguments: json.RawMessage(`{"action":"delete"}`)})
	require.ErrorIs(t, err, myerrors.ErrInvalidParams)
}

func TestLogsService(t *testing.T) {
	f := newUniversalFixture(t)

	f.shop.On("ListLogs", mock.Anything, shopapi.LogFilter{VehicleID: "v-1", Limit: 20}).
		Return([]shopapi.LogEntry(nil), nil).Once()
	out := f.call(t, context.Background(), entity.ToolNameLogsService, `{"action":"list","vehicle_id":"v-1"}`)
	require.JSONEq(t, `{"logs":[]}`, toJSON(t, out))

	f.shop.On("GetLog", mock.Anything, "log-7").
		Return(&shopapi.LogEntry{ID: "log-7"}, nil).Once()
	out = f.call(t, context.Background(), entity.ToolNameLogsService, `{"action":"get","log_id":"log-7"}`)
	require.NotContains(t, toJSON(t, out), `"logs"`)
}

func TestResearchAndImages(t *testing.T) {
	f := newUniversalFixture(t)
	ctx := context.Background()

	f.shop.On("SearchResearch", mock.Anything, shopapi.ResearchQuery{Query: "P0301 misfire", Limit: 5}).
		Return([]shopapi.ResearchResult{{Title: "Cylinder 1 misfire", Summary: "Check coil pack."}}, nil).Once()
	out := f.call(t, ctx, entity.ToolNameGetResearchData, `{"query":"P0301 misfire"}`)
	require.Contains(t, toJSON(t, out), "Check coil pack.")

	f.shop.On("SearchImages", mock.Anything, "cabin air filter", 2).
		Return([]shopapi.Image(nil), myerrors.Wrapf(myerrors.ErrUpstream, "HTTP 429: quota exceeded")).Once()
	out = f.call(t, ctx, entity.ToolNameSearchImages, `{"query":"cabin air filter","num":2}`)
	require.Contains(t, toJSON(t, out), `"error":"HTTP 429: quota exceeded`)
}
