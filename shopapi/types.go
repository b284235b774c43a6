package shopapi

import "time"

type (
	Customer struct {
		ID        string `json:"id"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Phone     string `json:"phone,omitempty"`
		Email     string `json:"email,omitempty"`
	}

	Vehicle struct {
		ID         string `json:"id"`
		CustomerID string `json:"customerId"`
		Year       int    `json:"year,omitempty"`
		Make       string `json:"make,omitempty"`
		Model      string `json:"model,omitempty"`
		VIN        string `json:"vin,omitempty"`
		Mileage    int    `json:"mileage,omitempty"`
	}

	LineItem struct {
		Description string  `json:"description"`
		Quantity    float64 `json:"quantity"`
		UnitPrice   float64 `json:"unitPrice"`
	}

	Invoice struct {
		ID         string     `json:"id,omitempty"`
		CustomerID string     `json:"customerId,omitempty"`
		VehicleID  string     `json:"vehicleId,omitempty"`
		Status     string     `json:"status,omitempty"`
		LineItems  []LineItem `json:"lineItems,omitempty"`
		Notes      string     `json:"notes,omitempty"`
		Total      float64    `json:"total,omitempty"`
		CreatedAt  *time.Time `json:"createdAt,omitempty"`
	}

	InvoiceFilter struct {
		CustomerID string
		Status     string
	}

	LogEntry struct {
		ID          string    `json:"id"`
		VehicleID   string    `json:"vehicleId,omitempty"`
		CustomerID  string    `json:"customerId,omitempty"`
		Technician  string    `json:"technician,omitempty"`
		Summary     string    `json:"summary"`
		Mileage     int       `json:"mileage,omitempty"`
		PerformedAt time.Time `json:"performedAt"`
	}

	LogFilter struct {
		VehicleID  string
		CustomerID string
		Limit      int
	}

	ResearchQuery struct {
		Query     string
		VehicleID string
		Limit     int
	}

	ResearchResult struct {
		Title   string `json:"title"`
		Summary string `json:"summary"`
		Source  string `json:"source,omitempty"`
	}

	Image struct {
		Title        string `json:"title"`
		URL          string `json:"url"`
		ThumbnailURL string `json:"thumbnailUrl,omitempty"`
		Source       string `json:"source,omitempty"`
	}

	Appointment struct {
		ID         string    `json:"id,omitempty"`
		CustomerID string    `json:"customerId"`
		VehicleID  string    `json:"vehicleId,omitempty"`
		StartsAt   time.Time `json:"startsAt"`
		Service    string    `json:"service"`
		Notes      string    `json:"notes,omitempty"`
		Status     string    `json:"status,omitempty"`
	}

	AppointmentFilter struct {
		CustomerID string
		From       *time.Time
		To         *time.Time
	}
)
