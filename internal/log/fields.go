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
	FieldOrg        = "org_id"
	FieldYear       = "year"
	FieldMonth      = "month"
	FieldView       = "view"
	FieldRole       = "role"
	FieldMember     = "member"
	FieldWorkflow   = "workflow"
	FieldPhase      = "phase"
	FieldVersion    = "version"
	FieldCampaign   = "campaign_id"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentView     = "view"
	ComponentWorkflow = "workflow"
	ComponentStore    = "store"
	ComponentAMQP     = "amqp"
	ComponentWorker   = "worker"
	ComponentSheets   = "sheets"
	ComponentReport   = "report"
)

// Operations defines standard operation names
const (
	OpCreateMonth = "create_month"
	OpCloneMonth  = "clone_month"
	OpAutoCreate  = "auto_create_month"
	OpSave        = "save"
	OpLoad        = "load"
	OpSync        = "sync"
	OpRender      = "render"
	OpReport      = "report"
	OpStartup     = "startup"
	OpShutdown    = "shutdown"
)
