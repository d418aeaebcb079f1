package log

// Common field names for structured logging.
const (
	FieldComponent  = "component"
	FieldService    = "service"
	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldQuery      = "query"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldUserID     = "user_id"
	FieldYear       = "year"
	FieldMonth      = "month"
	FieldCategory   = "category"
	FieldSum        = "sum"
)

// Standard component names.
const (
	ComponentHTTP    = "http"
	ComponentCosts   = "costs"
	ComponentUsers   = "users"
	ComponentAdmin   = "admin"
	ComponentLogs    = "logs"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentCache   = "cache"
)
