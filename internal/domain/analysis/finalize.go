package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Finalize parses the accumulated model text. Empty text counts as an empty
// object. A missing, null or empty id is filled with sourceID.
func Finalize(text, sourceID string) (Result, error) {
	res := Result{}
	if trimmed := strings.TrimSpace(text); trimmed != "" {
		dec := json.NewDecoder(strings.NewReader(trimmed))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
		}
		if _, err := dec.Token(); !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: trailing data after JSON value", ErrMalformedOutput)
		}
		obj, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: top-level value is %T, want object", ErrMalformedOutput, v)
		}
		res = obj
	}
	switch res["id"] {
	case nil, "":
		res["id"] = sourceID
	}
	return res, nil
}
