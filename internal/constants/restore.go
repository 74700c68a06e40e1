package constants

const (
	// DefaultSyntheticDocumentCount is how many documents a schema-only
	// restoration synthesizes per collection when no count is configured.
	DefaultSyntheticDocumentCount = 1

	// DefaultConcurrencyLimit bounds how many collections restore in parallel.
	DefaultConcurrencyLimit = 4

	// MaxSyntheticArrayElements caps generated array lengths.
	MaxSyntheticArrayElements = 3

	// MetadataSchemaFile and friends are the per-collection bundle file names
	// produced by the extraction side.
	MetadataSchemaFile  = "schema_and_indexes.json"
	MetadataSampleFile  = "example_document.json"
	MetadataSummaryFile = "summary.json"
)
