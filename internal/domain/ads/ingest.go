package ads

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

var (
	sentenceEnd = regexp.MustCompile(`[.!?]\s+`)
	generatedID = regexp.MustCompile(`^br_(\d+)$`)

	// ctaPatterns are tried in order; the first one found anywhere in the
	// script decides which sentence is the call to action.
	ctaPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(comente|comenta)\b.*\b(quero|planilha|me manda|eu quero)\b`),
		regexp.MustCompile(`\blink\s+na\s+bio\b`),
		regexp.MustCompile(`\bbaixe\b|\bbaixa\b|\bdownload\b`),
		regexp.MustCompile(`\buse\b.*\bcupom\b`),
		regexp.MustCompile(`\barrasta?\b|\bdesliza(r)?\b`),
		regexp.MustCompile(`\bse inscreva\b|\bassine\b|\bcadastre\-se\b`),
		regexp.MustCompile(`\bprimeira compra\b`),
	}
)

const hookMaxWords = 14

// Clean trims and collapses runs of whitespace into single spaces.
func Clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Sentences splits after '.', '!' or '?' followed by whitespace.
func Sentences(text string) []string {
	text = strings.TrimSpace(text)
	var out []string
	add := func(s string) {
		if c := Clean(s); c != "" {
			out = append(out, c)
		}
	}
	start := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(text, -1) {
		add(text[start : loc[0]+1])
		start = loc[1]
	}
	add(text[start:])
	return out
}

// GuessHook picks the first short sentence among the first three, falling
// back to the opening sentence.
func GuessHook(script string) string {
	s := Sentences(script)
	if len(s) == 0 {
		return ""
	}
	for i := 0; i < len(s) && i < 3; i++ {
		if len(strings.Fields(s[i])) <= hookMaxWords {
			return s[i]
		}
	}
	return s[0]
}

// GuessCTA returns the last sentence matching a known call-to-action pattern,
// or the closing sentence when nothing matches.
func GuessCTA(script string) string {
	s := Sentences(script)
	low := strings.ToLower(script)
	for _, pat := range ctaPatterns {
		if !pat.MatchString(low) {
			continue
		}
		for i := len(s) - 1; i >= 0; i-- {
			if pat.MatchString(strings.ToLower(s[i])) {
				return s[i]
			}
		}
	}
	if len(s) == 0 {
		return ""
	}
	return s[len(s)-1]
}

// DetectPlatform maps a video URL to the platform tag used in the store.
func DetectPlatform(rawURL string) string {
	u := strings.ToLower(rawURL)
	switch {
	case strings.Contains(u, "tiktok.com"):
		return "tiktok"
	case strings.Contains(u, "instagram.com"):
		return "reels"
	case strings.Contains(u, "youtube.com"), strings.Contains(u, "youtu.be"):
		return "shorts"
	case strings.Contains(u, "linkedin.com"):
		return "linkedin"
	default:
		return "other"
	}
}

// NextID scans the store for generated ids (br_NNN) and returns the next one.
// Unparsable lines and foreign ids are ignored.
func NextID(r io.Reader) (string, error) {
	highest := 0
	if r != nil {
		err := eachLine(r, func(_ int, line string) {
			if line == "" {
				return
			}
			var ad map[string]any
			if err := json.Unmarshal([]byte(line), &ad); err != nil {
				return
			}
			m := generatedID.FindStringSubmatch(stringField(ad, "id"))
			if m == nil {
				return
			}
			if n, err := strconv.Atoi(m[1]); err == nil && n > highest {
				highest = n
			}
		})
		if err != nil {
			return "", err
		}
	}
	return fmt.Sprintf("br_%03d", highest+1), nil
}

// IsUGCType reports whether t is one of the accepted content-format tags.
func IsUGCType(t string) bool {
	return contains(UGCTypes, t)
}

// ParseTermsOK accepts 1, true, yes and y in any case.
func ParseTermsOK(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}
