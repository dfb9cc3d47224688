package ads

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
)

// Allowed values enforced by Lint.
var (
	Platforms = []string{"reels", "tiktok", "shorts", "linkedin", "other"}
	Languages = []string{"pt-BR"}
	UGCTypes  = []string{"testimonial", "unboxing", "before_after", "review", "tutorial", "qna", "offer", "educational", "trend", "product_haul"}

	requiredKeys = []string{"id", "platform", "language", "ugc_type", "hook_text", "cta_text", "script_text", "video_url", "terms_ok"}
	httpURL      = regexp.MustCompile(`^https?://`)
)

// Issue is one problem found by Lint. Line is 1-based over physical lines.
type Issue struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("[L%d] %s", i.Line, i.Message)
}

// Lint applies the strict dataset rules. Unlike Load it reports every problem
// instead of dropping the line.
func Lint(r io.Reader) ([]Issue, error) {
	var issues []Issue
	seen := map[string]bool{}
	add := func(line int, format string, args ...any) {
		issues = append(issues, Issue{Line: line, Message: fmt.Sprintf(format, args...)})
	}

	err := eachLine(r, func(n int, line string) {
		if line == "" {
			return
		}
		var ad map[string]any
		if err := json.Unmarshal([]byte(line), &ad); err != nil {
			add(n, "invalid json: %v", err)
			return
		}
		if ad == nil {
			add(n, "invalid json: not an object")
			return
		}

		var missing []string
		for _, k := range requiredKeys {
			if _, ok := ad[k]; !ok {
				missing = append(missing, k)
			}
		}
		if len(missing) > 0 {
			sort.Strings(missing)
			add(n, "missing: [%s]", strings.Join(missing, ", "))
		}

		rid := stringField(ad, "id")
		switch {
		case rid == "":
			add(n, "empty id")
		case seen[rid]:
			add(n, "duplicate id: %s", rid)
		}
		seen[rid] = true

		if v := stringField(ad, "platform"); !contains(Platforms, v) {
			add(n, "invalid platform: %s", v)
		}
		if v := stringField(ad, "language"); !contains(Languages, v) {
			add(n, "invalid language: %s", v)
		}
		if v := stringField(ad, "ugc_type"); !contains(UGCTypes, v) {
			add(n, "invalid ugc_type: %s", v)
		}
		if !httpURL.MatchString(stringField(ad, "video_url")) {
			add(n, "invalid video_url")
		}
		if ok, _ := ad["terms_ok"].(bool); !ok {
			add(n, "terms_ok must be true")
		}
	})
	if err != nil {
		return nil, err
	}
	return issues, nil
}

func stringField(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
