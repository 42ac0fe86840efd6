package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldOperation  = "operation"
	FieldError      = "error"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldPeriod     = "period"
	FieldPage       = "page"
	FieldPages      = "pages"
	FieldRecords    = "records"
	FieldExpenseID  = "expense_id"
	FieldTitle      = "title"
	FieldAmount     = "amount_cents"
	FieldStartDate  = "start_date"
	FieldEndDate    = "end_date"
	FieldAction     = "action"
	FieldRows       = "rows"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentAPI      = "api"
	ComponentManager  = "manager"
	ComponentTUI      = "tui"
	ComponentAudit    = "audit"
	ComponentSnapshot = "snapshot"
	ComponentExport   = "export"
	ComponentSession  = "session"
)

// Operations defines standard operation names
const (
	OpReload   = "reload"
	OpCreate   = "create"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpList     = "list"
	OpSummary  = "summary"
	OpStage    = "stage"
	OpConfirm  = "confirm"
	OpExport   = "export"
	OpRestore  = "restore"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
