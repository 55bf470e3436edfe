package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"

	FieldFilename     = "filename"
	FieldFileSize     = "file_size"
	FieldRows         = "rows"
	FieldTransactions = "transactions"
	FieldDates        = "dates"
	FieldGeneration   = "generation"
	FieldDate         = "date"
	FieldWindowStart  = "window_start"
	FieldWindowEnd    = "window_end"
	FieldTotal        = "total"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentExtract  = "extract"
	ComponentGrid     = "grid"
	ComponentCache    = "cache"
	ComponentSecurity = "security"
)

// Operations defines standard operation names
const (
	OpDecode   = "decode"
	OpExtract  = "extract"
	OpQuery    = "query"
	OpRefresh  = "refresh"
	OpValidate = "validate"
	OpRender   = "render"
	OpShutdown = "shutdown"
	OpStartup  = "startup"
)
