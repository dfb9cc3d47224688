package analysis

import "encoding/json"

// Quality is the three-level rating used for hook and CTA.
type Quality string

const (
	QualityWeak   Quality = "fraco"
	QualityMedium Quality = "mediano"
	QualityStrong Quality = "forte"
)

// Review is the typed view of a well-formed model answer.
type Review struct {
	ID                  string   `json:"id"`
	Summary             string   `json:"summary"`
	HookQuality         Quality  `json:"hook_quality"`
	CTAQuality          Quality  `json:"cta_quality"`
	MessagingNotes      []string `json:"messaging_notes,omitempty"`
	ObjectionsAddressed []string `json:"objections_addressed,omitempty"`
	Risks               []string `json:"risks,omitempty"`
	Suggestions         []string `json:"suggestions"`
	ScoreOverall        float64  `json:"score_overall"`
}

// Result is the parsed model output, kept as-is so nothing the model sent is
// lost or reshaped.
type Result map[string]any

// ID returns the identifier field when it is a non-empty string.
func (r Result) ID() string {
	id, _ := r["id"].(string)
	return id
}

// Review decodes the result into its typed form.
func (r Result) Review() (Review, error) {
	var out Review
	b, err := json.Marshal(r)
	if err != nil {
		return out, err
	}
	err = json.Unmarshal(b, &out)
	return out, err
}

// Request is one streaming completion call.
type Request struct {
	Model       string
	System      string
	Prompt      string
	Temperature float32
}
