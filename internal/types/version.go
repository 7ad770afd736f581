package types

// SchemaVersion is stamped on the persisted document at first initialization.
// Presence is checked, the value itself is never interpreted.
const SchemaVersion = "1.0"

// Storage keys for the persisted state
const (
	StorageKeyDocument = "invoicepad_data"
	StorageKeyTheme    = "invoicepad_theme"
)
