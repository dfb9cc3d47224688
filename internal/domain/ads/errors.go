package ads

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoCriteria is returned when neither an id nor a URL substring was given.
	ErrNoCriteria = errors.New("provide --id or --url-contains")
	// ErrNotFound matches every *NotFoundError.
	ErrNotFound = errors.New("ad not found")
	// ErrAmbiguous matches every *AmbiguousError.
	ErrAmbiguous = errors.New("ambiguous ad selection")
)

// NotFoundError reports a selection with zero matches.
type NotFoundError struct {
	Field string // "id" or "url"
	Value string
}

func (e *NotFoundError) Error() string {
	if e.Field == "url" {
		return fmt.Sprintf("no record with url containing '%s'", e.Value)
	}
	return fmt.Sprintf("id %s not found", e.Value)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// AmbiguousError reports a URL substring that matched more than one record.
type AmbiguousError struct {
	Substring string
	IDs       []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("more than one record matches url-contains '%s', use --id. IDs: %s",
		e.Substring, strings.Join(e.IDs, ", "))
}

func (e *AmbiguousError) Is(target error) bool { return target == ErrAmbiguous }

var (
	// ErrReadOnlyStore is returned when ingest targets a store that cannot be appended to.
	ErrReadOnlyStore = errors.New("ingest writes to local files only")
	// ErrInvalidUGCType rejects a content format outside UGCTypes.
	ErrInvalidUGCType = errors.New("invalid ugc type")
	// ErrEmptyTranscript means the video or transcript file yielded no script text.
	ErrEmptyTranscript = errors.New("empty transcript")
)
