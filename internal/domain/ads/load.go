package ads

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/xeipuuv/gojsonschema"
)

// recordSchemaJSON is the shape every stored line must satisfy.
const recordSchemaJSON = `{
  "type": "object",
  "properties": {
    "id": {"type": "string"},
    "platform": {"type": "string"},
    "brand": {"type": "string"},
    "category": {"type": "string"},
    "language": {"type": "string"},
    "ugc_type": {"type": "string"},
    "video_url": {"type": "string", "format": "uri"},
    "hook_text": {"type": "string"},
    "cta_text": {"type": "string"},
    "caption_text": {"type": ["string", "null"]},
    "script_text": {"type": "string"},
    "duration_sec": {"type": ["number", "null"]},
    "aspect_ratio": {"type": "string"},
    "terms_ok": {"type": "boolean"},
    "notes": {"type": "string"}
  },
  "required": ["id", "platform", "language", "ugc_type", "video_url", "hook_text", "cta_text", "script_text", "terms_ok"]
}`

var recordSchema = mustSchema(recordSchemaJSON)

func mustSchema(raw string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(raw))
	if err != nil {
		panic(fmt.Sprintf("ads: compile record schema: %v", err))
	}
	return s
}

// Load reads a line-delimited store. Lines that are blank are skipped; lines that
// fail to parse or do not match the record shape are dropped without error.
// Only a failure to read r is returned.
func Load(r io.Reader) ([]Record, LoadReport, error) {
	var (
		out    []Record
		report LoadReport
	)
	err := eachLine(r, func(_ int, line string) {
		if line == "" {
			return
		}
		report.Lines++
		if rec, ok := parseRecord([]byte(line)); ok {
			out = append(out, rec)
		}
	})
	if err != nil {
		return nil, LoadReport{}, err
	}
	report.Valid = len(out)
	report.Dropped = report.Lines - report.Valid
	return out, report, nil
}

func parseRecord(line []byte) (Record, bool) {
	var doc any
	if err := json.Unmarshal(line, &doc); err != nil {
		return Record{}, false
	}
	res, err := recordSchema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil || !res.Valid() {
		return Record{}, false
	}
	var rec Record
	if err := json.Unmarshal(line, &rec); err != nil {
		return Record{}, false
	}
	return rec, true
}
