package validation

// Error messages
const (
	ErrMsgParseDocument   = "failed to parse JSON document"
	ErrMsgEncodeDocument  = "failed to encode document"
	ErrMsgLoadSchema      = "failed to load schema"
	ErrMsgReadSchema      = "failed to read schema file"
	ErrMsgParseSchema     = "failed to parse schema JSON"
	ErrMsgCompileSchema   = "failed to compile schema"
	ErrMsgSchemaViolation = "document does not match schema"
)

const rootLocation = "(root)"
