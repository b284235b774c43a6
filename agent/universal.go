package agent

import (
	"slices"

	"github.com/habiliai/shopagents/entity"
)

// UniversalToolNames lists, in injection order, the tools every agent receives.
var UniversalToolNames = []string{
	entity.ToolNameSetMemory,
	entity.ToolNameGetResearchData,
	entity.ToolNameInvoiceService,
	entity.ToolNameLogsService,
	entity.ToolNameSearchImages,
}

// UniversalTools builds fresh manifests on every call so agents never share
// schema pointers.
func UniversalTools() []entity.Tool {
	return []entity.Tool{
		setMemoryTool(),
		getResearchDataTool(),
		invoiceServiceTool(),
		logsServiceTool(),
		searchImagesTool(),
	}
}

func IsUniversalTool(name string) bool {
	return slices.Contains(UniversalToolNames, name)
}

func setMemoryTool() entity.Tool {
	return entity.NewTool(
		entity.ToolNameSetMemory,
		"Remember a fact about the current customer, vehicle or conversation so later turns and other agents can use it. Use a short snake_case key, e.g. customer_phone or vehicle_vin.",
		entity.ObjectSchema(
			[]string{"key", "value"},
			entity.StringProperty("key", "Short snake_case identifier for the memory."),
			entity.StringProperty("value", "The information to store."),
		),
	)
}

func getResearchDataTool() entity.Tool {
	return entity.NewTool(
		entity.ToolNameGetResearchData,
		"Retrieve repair research for a vehicle or symptom: technical service bulletins, common failures, labor times and procedures.",
		entity.ObjectSchema(
			[]string{"query"},
			entity.StringProperty("query", "What to research, e.g. '2015 Honda Accord rough idle when cold'."),
			entity.StringProperty("vehicle_id", "Optional id of the vehicle the research is for."),
			entity.NumberProperty("limit", "Maximum number of results to return."),
		),
	)
}

func invoiceServiceTool() entity.Tool {
	lineItem := entity.ObjectSchema(
		[]string{"description", "quantity", "unit_price"},
		entity.StringProperty("description", "What was sold or performed."),
		entity.NumberProperty("quantity", "Quantity of parts or hours of labor."),
		entity.NumberProperty("unit_price", "Price per unit in dollars."),
	)

	return entity.NewTool(
		entity.ToolNameInvoiceService,
		"List, read, create or update shop invoices. Use 'list' with a customer_id to find a customer's invoices and 'get' with an invoice_id to read one.",
		entity.ObjectSchema(
			[]string{"action"},
			entity.StringProperty("action", "The invoice operation to perform.", "list", "get", "create", "update"),
			entity.StringProperty("invoice_id", "Invoice id, required for get and update."),
			entity.StringProperty("customer_id", "Customer id, used by list and create."),
			entity.StringProperty("vehicle_id", "Vehicle id, used by create."),
			entity.StringProperty("status", "Invoice status.", "draft", "open", "paid", "void"),
			entity.ArrayProperty("line_items", "Line items for create and update.", lineItem),
			entity.StringProperty("notes", "Free-form notes printed on the invoice."),
		),
	)
}

func logsServiceTool() entity.Tool {
	return entity.NewTool(
		entity.ToolNameLogsService,
		"Retrieve service logs: past work performed on a vehicle or for a customer, most recent first.",
		entity.ObjectSchema(
			[]string{"action"},
			entity.StringProperty("action", "The log operation to perform.", "list", "get"),
			entity.StringProperty("log_id", "Log id, required for get."),
			entity.StringProperty("vehicle_id", "Only logs for this vehicle."),
			entity.StringProperty("customer_id", "Only logs for this customer."),
			entity.NumberProperty("limit", "Maximum number of logs to return."),
		),
	)
}

func searchImagesTool() entity.Tool {
	return entity.NewTool(
		entity.ToolNameSearchImages,
		"Search for reference images such as part diagrams, component locations or wiring layouts.",
		entity.ObjectSchema(
			[]string{"query"},
			entity.StringProperty("query", "What to look for, e.g. 'Ford F-150 2018 cabin air filter location'."),
			entity.NumberProperty("num", "Number of images to return."),
		),
	)
}

