package analysis

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// SchemaJSON is sent verbatim inside the prompt; the model is steered by this
// text, so property order and wording are part of the contract.
const SchemaJSON = `{"type":"object","properties":{"id":{"type":"string"},"summary":{"type":"string"},"hook_quality":{"type":"string","enum":["fraco","mediano","forte"]},"cta_quality":{"type":"string","enum":["fraco","mediano","forte"]},"messaging_notes":{"type":"array","items":{"type":"string"}},"objections_addressed":{"type":"array","items":{"type":"string"}},"risks":{"type":"array","items":{"type":"string"}},"suggestions":{"type":"array","items":{"type":"string"}},"score_overall":{"type":"number"}},"required":["id","summary","hook_quality","cta_quality","suggestions","score_overall"],"additionalProperties":false}`

var resultSchema = func() *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(SchemaJSON))
	if err != nil {
		panic(fmt.Sprintf("analysis: compile result schema: %v", err))
	}
	return s
}()

// Validate checks r against SchemaJSON and returns one message per violation.
func Validate(r Result) []string {
	res, err := resultSchema.Validate(gojsonschema.NewGoLoader(map[string]any(r)))
	if err != nil {
		return []string{err.Error()}
	}
	if res.Valid() {
		return nil
	}
	errs := make([]string, len(res.Errors()))
	for i, desc := range res.Errors() {
		errs[i] = desc.String()
	}
	return errs
}
