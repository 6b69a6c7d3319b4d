package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldRange       = "range"
	FieldPeriodStart = "period_start"
	FieldPeriodEnd   = "period_end"
	FieldDonationID  = "donation_id"
	FieldIncomeID    = "income_id"
	FieldRecipientID = "recipient_id"
	FieldAmount      = "amount"
	FieldCurrency    = "currency"
	FieldMessageID   = "message_id"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentReport  = "report"
	ComponentGiving  = "giving"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentExport  = "export"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpRead     = "read"
	OpUpdate   = "update"
	OpList     = "list"
	OpReport   = "report"
	OpExport   = "export"
	OpProcess  = "process"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
