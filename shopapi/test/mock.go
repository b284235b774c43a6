package shopapitest

import (
	"context"

	"github.com/habiliai/shopagents/shopapi"
	"github.com/stretchr/testify/mock"
)

type ClientMock struct {
	mock.Mock
}

var (
	_ shopapi.Client = (*ClientMock)(nil)
)

func (m *ClientMock) SearchCustomers(ctx context.Context, query string) ([]shopapi.Customer, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]shopapi.Customer), args.Error(1)
}

func (m *ClientMock) GetCustomerVehicles(ctx context.Context, customerID string) ([]shopapi.Vehicle, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]shopapi.Vehicle), args.Error(1)
}

func (m *ClientMock) ListInvoices(ctx context.Context, filter shopapi.InvoiceFilter) ([]shopapi.Invoice, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]shopapi.Invoice), args.Error(1)
}

func (m *ClientMock) GetInvoice(ctx context.Context, id string) (*shopapi.Invoice, error) {
	args := m.Called(ctx, id)
	return invoiceOrNil(args.Get(0)), args.Error(1)
}

func (m *ClientMock) CreateInvoice(ctx context.Context, invoice shopapi.Invoice) (*shopapi.Invoice, error) {
	args := m.Called(ctx, invoice)
	return invoiceOrNil(args.Get(0)), args.Error(1)
}

func (m *ClientMock) UpdateInvoice(ctx context.Context, id string, invoice shopapi.Invoice) (*shopapi.Invoice, error) {
	args := m.Called(ctx, id, invoice)
	return invoiceOrNil(args.Get(0)), args.Error(1)
}

func (m *ClientMock) ListLogs(ctx context.Context, filter shopapi.LogFilter) ([]shopapi.LogEntry, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]shopapi.LogEntry), args.Error(1)
}

func (m *ClientMock) GetLog(ctx context.Context, id string) (*shopapi.LogEntry, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*shopapi.LogEntry); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClientMock) SearchResearch(ctx context.Context, query shopapi.ResearchQuery) ([]shopapi.ResearchResult, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]shopapi.ResearchResult), args.Error(1)
}

func (m *ClientMock) SearchImages(ctx context.Context, query string, num int) ([]shopapi.Image, error) {
	args := m.Called(ctx, query, num)
	return args.Get(0).([]shopapi.Image), args.Error(1)
}

func (m *ClientMock) ListAppointments(ctx context.Context, filter shopapi.AppointmentFilter) ([]shopapi.Appointment, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]shopapi.Appointment), args.Error(1)
}

func (m *ClientMock) CreateAppointment(ctx context.Context, appointment shopapi.Appointment) (*shopapi.Appointment, error) {
	args := m.Called(ctx, appointment)
	if v, ok := args.Get(0).(*shopapi.Appointment); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func invoiceOrNil(v any) *shopapi.Invoice {
	if invoice, ok := v.(*shopapi.Invoice); ok {
		return invoice
	}
	return nil
}
