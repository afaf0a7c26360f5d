package contract

import "errors"

var (
	// ErrBadJSON indicates the document is not parseable JSON.
	ErrBadJSON = errors.New("unparsable result document")
	// ErrSchemaMismatch indicates a parseable document that violates the
	// v1.0 schema (wrong version literal, missing required section).
	ErrSchemaMismatch = errors.New("result schema mismatch")
)
