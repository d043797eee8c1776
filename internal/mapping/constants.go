package mapping

// Field is a logical attribute of a record, bound to a destination property by name
type Field string

const (
	FieldTitle    Field = "title"
	FieldDue      Field = "due"
	FieldClass    Field = "class"
	FieldTeacher  Field = "teacher"
	FieldTags     Field = "tags"
	FieldKind     Field = "kind"
	FieldStatus   Field = "status"
	FieldDone     Field = "done"
	FieldSourceID Field = "source_id"
	FieldURL      Field = "url"
	FieldPriority Field = "priority"
	FieldPoints   Field = "points"
)

// AllFields lists every logical field in payload order
var AllFields = []Field{
	FieldTitle, FieldDue, FieldClass, FieldTeacher, FieldTags, FieldKind,
	FieldStatus, FieldDone, FieldSourceID, FieldURL, FieldPriority, FieldPoints,
}

// Encoding settings
const (
	DateLayout     = "2006-01-02"
	ListSeparator  = ", "
	fieldMapSchema = "fieldmap.schema.json"
	defaultsFile   = "defaults.yaml"
)

// Omission reasons
const (
	ReasonAbsent      = "property absent"
	ReasonMismatch    = "type mismatch"
	ReasonEmpty       = "empty value"
	ReasonUnsupported = "unsupported property type"
	ReasonNotNumeric  = "value is not numeric"
	ReasonUnresolved  = "no matching workspace users"
)

// Log messages
const (
	LogMsgFieldMapReloaded   = "Field map reloaded"
	LogMsgFieldMapReloadFail = "Field map reload failed, keeping previous map"
	LogMsgWatcherStopped     = "Field map watcher stopped"
)
