package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldWindow     = "window"
	FieldBackend    = "backend"
	FieldCategory   = "category"
	FieldDate       = "date"
	FieldAmount     = "amount_cents"
	FieldRowRef     = "row_ref"
	FieldSkipped    = "skipped_rows"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentLedger  = "ledger"
	ComponentService = "expense"
	ComponentStorage = "storage"
	ComponentBackend = "backend"
	ComponentReport  = "report"
)

// Operations defines standard operation names
const (
	OpAppend    = "append"
	OpLoad      = "load"
	OpSummarize = "summarize"
	OpValidate  = "validate"
	OpRender    = "render"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)
