package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldClientIP  = "client_ip"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldDuration  = "duration_ms"
	FieldError     = "error"

	FieldOrderID     = "order_id"
	FieldOrderNumber = "order_number"
	FieldMonthKey    = "month_key"
	FieldPositions   = "positions"
	FieldBoards      = "boards"
	FieldKey         = "key"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentStorage = "storage"
	ComponentTracker = "tracker"
	ComponentCLI     = "cli"
)
