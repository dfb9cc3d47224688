package analysis

import "errors"

// ErrQuotaExceeded indicates the AI provider returned a quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("ai quota exceeded")

// ErrMalformedOutput wraps model text that is not a JSON object.
var ErrMalformedOutput = errors.New("model output is not valid JSON")

// ErrSchemaViolation is returned in strict mode when the result breaks SchemaJSON.
var ErrSchemaViolation = errors.New("result does not match analysis schema")
