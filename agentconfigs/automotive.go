package agentconfigs

import (
	"strings"

	"github.com/habiliai/shopagents/entity"
	"github.com/habiliai/shopagents/errors"
	"github.com/habiliai/shopagents/shopapi"
	"github.com/habiliai/shopagents/tool"
	"github.com/mokiat/gog"
)

const ToolNameLookupVehicleHistory = "lookup_vehicle_history"

func automotiveAgent(shop shopapi.Client) *entity.AgentDefinition {
	return &entity.AgentDefinition{
		Name:              "automotive",
		PublicDescription: "Diagnoses vehicle problems and explains repairs in plain language.",
		Instructions: strings.TrimSpace(`
You are an experienced automotive technician helping with a diagnosis.
Start from the vehicle's history with lookup_vehicle_history, then use get_research_data for known issues, bulletins and procedures for that vehicle.
Ask one question at a time about the symptom: when it happens, since when, any warning lights or codes.
Use search_images when a diagram or component location would help.
Never promise a price or a fix over the phone; give the likely causes and what an inspection would check.
When the caller is ready to book or has a question about billing, transfer back.
`),
		Tools: []entity.Tool{
			entity.NewTool(
				ToolNameLookupVehicleHistory,
				"Summarize the service history of a vehicle: past repairs, mileage and open recommendations.",
				entity.ObjectSchema(
					[]string{"vehicle_id"},
					entity.StringProperty("vehicle_id", "Vehicle to look up."),
					entity.NumberProperty("limit", "Maximum number of entries, most recent first."),
				),
			),
		},
		ToolLogic: map[string]entity.ToolHandler{
			ToolNameLookupVehicleHistory: tool.Func(ToolNameLookupVehicleHistory, func(ctx *tool.Context, req struct {
				VehicleID string `json:"vehicle_id"`
				Limit     int    `json:"limit,omitempty"`
			}) (resp struct {
				History []shopapi.LogEntry `json:"history"`
				Error   *string            `json:"error,omitempty"`
			}, err error) {
				if req.VehicleID == "" {
					err = errors.Wrapf(errors.ErrInvalidParams, "vehicle_id is required")
					return
				}
				if req.Limit <= 0 {
					req.Limit = 10
				}

				logs, e := shop.ListLogs(ctx, shopapi.LogFilter{VehicleID: req.VehicleID, Limit: req.Limit})
				if e != nil {
					resp.Error = gog.PtrOf(e.Error())
					return
				}
				resp.History = orEmpty(logs)
				return
			}),
		},
	}
}

func technicianAgent() *entity.AgentDefinition {
	return &entity.AgentDefinition{
		Name:              "technician",
		PublicDescription: "Assists technicians on the shop floor with work orders, invoices and service logs.",
		Instructions: strings.TrimSpace(`
You assist a technician working in the shop.
Look up and update work with logs_service and invoice_service; add line items for parts and labor as the technician reports them.
Keep replies brief; the technician is working on a vehicle.
For diagnostic reasoning about a symptom or trouble code, transfer to automotive.
`),
	}
}
