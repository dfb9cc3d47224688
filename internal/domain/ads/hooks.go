package ads

import (
	"encoding/json"
	"io"
	"sort"
	"strings"
)

// HookCount is how often a normalized hook text appears in the store.
type HookCount struct {
	Hook  string `json:"hook"`
	Count int    `json:"count"`
}

// TopHooks counts lowercased hook texts over every parsable line and returns
// the n most frequent. Ties keep first-seen order.
func TopHooks(r io.Reader, n int) ([]HookCount, error) {
	counts := map[string]int{}
	var order []string

	err := eachLine(r, func(_ int, line string) {
		if line == "" {
			return
		}
		var ad struct {
			HookText string `json:"hook_text"`
		}
		if err := json.Unmarshal([]byte(line), &ad); err != nil {
			return
		}
		h := strings.ToLower(strings.TrimSpace(ad.HookText))
		if h == "" {
			return
		}
		if counts[h] == 0 {
			order = append(order, h)
		}
		counts[h]++
	})
	if err != nil {
		return nil, err
	}

	out := make([]HookCount, len(order))
	for i, h := range order {
		out[i] = HookCount{Hook: h, Count: counts[h]}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out, nil
}
