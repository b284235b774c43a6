package agentconfigs

import (
	"strings"
	"time"

	"github.com/habiliai/shopagents/entity"
	"github.com/habiliai/shopagents/errors"
	"github.com/habiliai/shopagents/shopapi"
	"github.com/habiliai/shopagents/tool"
	"github.com/mokiat/gog"
)

const (
	ToolNameScheduleAppointment = "schedule_appointment"
	ToolNameListAppointments    = "list_appointments"
)

type (
	scheduleAppointmentRequest struct {
		CustomerID string `json:"customer_id"`
		VehicleID  string `json:"vehicle_id,omitempty"`
		StartsAt   string `json:"starts_at"`
		Service    string `json:"service"`
		Notes      string `json:"notes,omitempty"`
	}

	listAppointmentsRequest struct {
		CustomerID string `json:"customer_id,omitempty"`
		From       string `json:"from,omitempty"`
		To         string `json:"to,omitempty"`
	}
)

func serviceAgent(shop shopapi.Client) *entity.AgentDefinition {
	return &entity.AgentDefinition{
		Name:              "service",
		PublicDescription: "Books, reschedules and explains service appointments, estimates and invoices.",
		Instructions: strings.TrimSpace(`
You are the service advisor of an auto repair shop, speaking with a customer who has already been identified.
Check memory for the confirmed customer_id and vehicle_id before asking for them again.
Schedule visits with schedule_appointment after confirming date, time and the work requested. Check existing bookings with list_appointments first.
Answer questions about past work with logs_service and about charges with invoice_service.
When the customer describes a symptom, warning light or noise you cannot explain, transfer to automotive with a short summary of the symptom.
Keep answers short; this is a phone call.
`),
		Tools: []entity.Tool{
			entity.NewTool(
				ToolNameScheduleAppointment,
				"Book a service appointment for a customer's vehicle.",
				entity.ObjectSchema(
					[]string{"customer_id", "starts_at", "service"},
					entity.StringProperty("customer_id", "Confirmed customer id."),
					entity.StringProperty("vehicle_id", "Vehicle the appointment is for."),
					entity.StringProperty("starts_at", "Start time in RFC 3339 format, e.g. 2025-03-14T09:30:00-05:00."),
					entity.StringProperty("service", "Work requested, e.g. 'oil change' or 'diagnose check engine light'."),
					entity.StringProperty("notes", "Anything the technician should know."),
				),
			),
			entity.NewTool(
				ToolNameListAppointments,
				"List booked appointments, optionally for one customer and time range.",
				entity.ObjectSchema(
					nil,
					entity.StringProperty("customer_id", "Only appointments of this customer."),
					entity.StringProperty("from", "Earliest start time, RFC 3339."),
					entity.StringProperty("to", "Latest start time, RFC 3339."),
				),
			),
		},
		ToolLogic: map[string]entity.ToolHandler{
			ToolNameScheduleAppointment: tool.Func(ToolNameScheduleAppointment, func(ctx *tool.Context, req scheduleAppointmentRequest) (resp struct {
				Appointment *shopapi.Appointment `json:"appointment,omitempty"`
				Error       *string              `json:"error,omitempty"`
			}, err error) {
				if req.CustomerID == "" || req.Service == "" {
					err = errors.Wrapf(errors.ErrInvalidParams, "customer_id and service are required")
					return
				}
				startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
				if err != nil {
					err = errors.Wrapf(errors.ErrInvalidParams, "starts_at: %v", err)
					return
				}

				appointment, e := shop.CreateAppointment(ctx, shopapi.Appointment{
					CustomerID: req.CustomerID,
					VehicleID:  req.VehicleID,
					StartsAt:   startsAt,
					Service:    req.Service,
					Notes:      req.Notes,
				})
				if e != nil {
					resp.Error = gog.PtrOf(e.Error())
					return
				}
				resp.Appointment = appointment
				return
			}),
			ToolNameListAppointments: tool.Func(ToolNameListAppointments, func(ctx *tool.Context, req listAppointmentsRequest) (resp struct {
				Appointments []shopapi.Appointment `json:"appointments"`
				Error        *string               `json:"error,omitempty"`
			}, err error) {
				filter := shopapi.AppointmentFilter{CustomerID: req.CustomerID}
				if filter.From, err = parseOptionalTime("from", req.From); err != nil {
					return
				}
				if filter.To, err = parseOptionalTime("to", req.To); err != nil {
					return
				}

				appointments, e := shop.ListAppointments(ctx, filter)
				if e != nil {
					resp.Error = gog.PtrOf(e.Error())
					return
				}
				resp.Appointments = orEmpty(appointments)
				return
			}),
		},
	}
}

func parseOptionalTime(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidParams, "%s: %v", field, err)
	}
	return &t, nil
}
