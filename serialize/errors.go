package serialize

import "errors"

// The error kinds surfaced by the summary codec.  Structural errors are fatal
// to the current operation: the reader never continues with a half-built
// index.
var (
	// ErrMalformedSignature indicates the input does not begin with the
	// module summary magic.
	ErrMalformedSignature = errors.New("malformed module summary signature")

	// ErrTruncatedStream indicates a record or block ended unexpectedly.
	ErrTruncatedStream = errors.New("truncated module summary stream")

	// ErrUnknownRecord indicates a record ID outside the defined set.  The
	// format is not extensible in place: unknown records are a hard error.
	ErrUnknownRecord = errors.New("unknown record in module summary")

	// ErrOrphanRecord indicates a CALL_GRAPH_EDGE before any FUNC_METADATA,
	// or a METHOD_IMPL before any METHOD_METADATA.
	ErrOrphanRecord = errors.New("orphan record in module summary")

	// ErrBadEnum indicates a kind field that does not map to a defined call
	// or slot kind.
	ErrBadEnum = errors.New("bad enum value in module summary")

	// ErrMissingMetadata indicates the record block does not open with
	// MODULE_METADATA.
	ErrMissingMetadata = errors.New("module summary missing module metadata")

	// ErrIO indicates a file open, read, or write failure.
	ErrIO = errors.New("module summary i/o failure")
)
