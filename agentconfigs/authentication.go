package agentconfigs

import (
	"strings"

	"github.com/habiliai/shopagents/entity"
	"github.com/habiliai/shopagents/errors"
	"github.com/habiliai/shopagents/shopapi"
	"github.com/habiliai/shopagents/tool"
	"github.com/mokiat/gog"
)

const (
	ToolNameLookupCustomer       = "lookup_customer"
	ToolNameListCustomerVehicles = "list_customer_vehicles"
)

func authenticationAgent(shop shopapi.Client) *entity.AgentDefinition {
	return &entity.AgentDefinition{
		Name:              "authentication",
		PublicDescription: "Greets callers and confirms who they are and which vehicle they are calling about.",
		Instructions: strings.TrimSpace(`
You answer the phone for an independent auto repair shop.
Greet the caller, ask for their name and phone number and find them with lookup_customer.
Read back what you found and let the caller confirm it. Never share another customer's details.
Once the customer is confirmed, list their vehicles with list_customer_vehicles and ask which one the call is about.
Store the confirmed customer_id and vehicle_id with set_memory, then transfer to service.
If no record matches, collect name, phone and vehicle year, make and model, store them with set_memory and transfer to service as a new customer.
`),
		Tools: []entity.Tool{
			entity.NewTool(
				ToolNameLookupCustomer,
				"Find customers by name, phone number or email.",
				entity.ObjectSchema(
					[]string{"query"},
					entity.StringProperty("query", "Name, phone number or email given by the caller."),
				),
			),
			entity.NewTool(
				ToolNameListCustomerVehicles,
				"List the vehicles on file for a confirmed customer.",
				entity.ObjectSchema(
					[]string{"customer_id"},
					entity.StringProperty("customer_id", "Id returned by lookup_customer."),
				),
			),
		},
		ToolLogic: map[string]entity.ToolHandler{
			ToolNameLookupCustomer: tool.Func(ToolNameLookupCustomer, func(ctx *tool.Context, req struct {
				Query string `json:"query"`
			}) (resp struct {
				Customers []shopapi.Customer `json:"customers"`
				Error     *string            `json:"error,omitempty"`
			}, err error) {
				if strings.TrimSpace(req.Query) == "" {
					err = errors.Wrapf(errors.ErrInvalidParams, "query is required")
					return
				}

				customers, e := shop.SearchCustomers(ctx, req.Query)
				if e != nil {
					resp.Error = gog.PtrOf(e.Error())
					return
				}
				resp.Customers = orEmpty(customers)
				return
			}),
			ToolNameListCustomerVehicles: tool.Func(ToolNameListCustomerVehicles, func(ctx *tool.Context, req struct {
				CustomerID string `json:"customer_id"`
			}) (resp struct {
				Vehicles []shopapi.Vehicle `json:"vehicles"`
				Error    *string           `json:"error,omitempty"`
			}, err error) {
				if req.CustomerID == "" {
					err = errors.Wrapf(errors.ErrInvalidParams, "customer_id is required")
					return
				}

				vehicles, e := shop.GetCustomerVehicles(ctx, req.CustomerID)
				if e != nil {
					resp.Error = gog.PtrOf(e.Error())
					return
				}
				resp.Vehicles = orEmpty(vehicles)
				return
			}),
		},
	}
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
