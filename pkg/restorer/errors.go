package restorer

import "errors"

// Failure taxonomy for a restoration run. MissingMetadata, CorruptMetadata,
// NoRestorableSource and insertion errors are collection-fatal;
// UnsupportedType and CoercionFailure are field-local and only downgrade the
// collection to partial.
var (
	ErrMissingMetadata    = errors.New("no usable metadata bundle files")
	ErrCorruptMetadata    = errors.New("malformed metadata bundle content")
	ErrNoRestorableSource = errors.New("bundle has neither a sample document nor a schema")
	ErrUnsupportedType    = errors.New("unsupported type tag")
	ErrCoercionFailure    = errors.New("value cannot be represented as the target type")
)
