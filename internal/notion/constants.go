package notion

import "time"

// API settings
const (
	APIVersion       = "2022-06-28"
	HeaderVersion    = "Notion-Version"
	HeaderRetryAfter = "Retry-After"
	DefaultTimeout   = 30 * time.Second
	MaxPageSize      = 100
	ServiceName      = "notion"
)

// API paths
const (
	pathDatabase      = "/v1/databases/{id}"
	pathDatabaseQuery = "/v1/databases/{id}/query"
	pathPages         = "/v1/pages"
	pathPage          = "/v1/pages/{id}"
	pathUsers         = "/v1/users"
	pathMe            = "/v1/users/me"
)

// Property types as reported by the API
const (
	TypeTitle       = "title"
	TypeRichText    = "rich_text"
	TypeCheckbox    = "checkbox"
	TypeDate        = "date"
	TypeSelect      = "select"
	TypeMultiSelect = "multi_select"
	TypeStatus      = "status"
	TypeNumber      = "number"
	TypeURL         = "url"
	TypePeople      = "people"
)

// Error codes from the API error body
const (
	CodeUnauthorized       = "unauthorized"
	CodeRestrictedResource = "restricted_resource"
	CodeObjectNotFound     = "object_not_found"
	CodeRateLimited        = "rate_limited"
	CodeConflict           = "conflict_error"
	CodeValidation         = "validation_error"
	CodeInternal           = "internal_server_error"
	CodeServiceUnavailable = "service_unavailable"
)

// MaxTextLength is the API limit for a single rich text content block
const MaxTextLength = 2000

// Colors accepted for select options
var Colors = []string{"default", "gray", "brown", "orange", "yellow", "green", "blue", "purple", "pink", "red"}

// Log messages
const (
	LogMsgRequestFailed = "Notion request failed"
	LogMsgRequest       = "Notion request"
)
