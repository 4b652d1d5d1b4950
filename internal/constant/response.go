package constant

const (
	REQUEST_SUCCESSFUL   = "Request successful"
	REQUEST_UNSUCCESSFUL = "Request unsuccessful"
)

// Context keys set by middleware
const (
	REQUEST_ID_KEY    = "requestId"
	REQUEST_ID_HEADER = "X-Request-Id"
)
