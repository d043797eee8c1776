package upsert

// Lookup page sizes. The id lookup only needs to know whether a match exists;
// the fallback asks for a few so ambiguity can be logged.
const (
	idLookupPageSize       = 1
	fallbackLookupPageSize = 3
)

// MatchedBy values
const (
	MatchNone     = "none"
	MatchID       = "id"
	MatchFallback = "fallback"
)

// DefaultIdentityName is used when the field map names no identity candidate
const DefaultIdentityName = "Source ID"

// Retry operation names
const (
	opLookupByID       = "lookup_by_id"
	opLookupByFallback = "lookup_by_fallback"
	opUpdatePage       = "update_page"
	opMigrateIdentity  = "migrate_identity"
)

// Log messages
const (
	LogMsgIdentityMigrated    = "Added identity property to destination"
	LogMsgIdentityDryRun      = "Would add identity property to destination"
	LogMsgIdentityForbidden   = "Cannot add identity property, matching by title and due date only"
	LogMsgIdentityFailed      = "Failed to add identity property, matching by title and due date only"
	LogMsgIdentitySkipped     = "Source id cannot be encoded for the identity property, skipping id lookup"
	LogMsgFallbackAmbiguous   = "Fallback lookup matched several pages, using the first"
	LogMsgFallbackUnavailable = "No title or due binding, fallback lookup skipped"
	LogMsgWouldCreate         = "Would create page"
	LogMsgWouldUpdate         = "Would update page"
	LogMsgCreated             = "Created page"
	LogMsgUpdated             = "Updated page"
)
