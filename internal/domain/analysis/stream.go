package analysis

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Collect drains s, handing every fragment to w as it arrives and to an
// accumulator. It returns the full text. The stream is closed on return.
func Collect(s Stream, w io.Writer) (string, error) {
	defer s.Close()

	var acc strings.Builder
	sinks := io.MultiWriter(&acc, w)
	for {
		chunk, err := s.Recv()
		if errors.Is(err, io.EOF) {
			return acc.String(), nil
		}
		if err != nil {
			return acc.String(), fmt.Errorf("stream: %w", err)
		}
		if chunk == "" {
			continue
		}
		if _, err := io.WriteString(sinks, chunk); err != nil {
			return acc.String(), fmt.Errorf("write chunk: %w", err)
		}
	}
}
