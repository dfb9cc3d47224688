package ads

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// eachLine calls fn for every physical line of r, trimmed, numbered from 1.
// Lines have no length limit; only a read failure stops the walk.
func eachLine(r io.Reader, fn func(n int, line string)) error {
	br := bufio.NewReader(r)
	for n := 1; ; n++ {
		b, err := br.ReadBytes('\n')
		if len(b) > 0 {
			fn(n, strings.TrimSpace(string(b)))
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read ads: %w", err)
		}
	}
}
