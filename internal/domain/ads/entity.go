package ads

// Record is one UGC ad creative from the line-delimited store.
type Record struct {
	ID          string   `json:"id"`
	Platform    string   `json:"platform"`
	Brand       string   `json:"brand,omitempty"`
	Category    string   `json:"category,omitempty"`
	Language    string   `json:"language"`
	UGCType     string   `json:"ugc_type"`
	VideoURL    string   `json:"video_url"`
	HookText    string   `json:"hook_text"`
	CTAText     string   `json:"cta_text"`
	CaptionText *string  `json:"caption_text,omitempty"`
	ScriptText  string   `json:"script_text"`
	DurationSec *float64 `json:"duration_sec,omitempty"`
	AspectRatio string   `json:"aspect_ratio,omitempty"`
	TermsOK     bool     `json:"terms_ok"`
	Notes       string   `json:"notes,omitempty"`
}

// Criteria selects a single record. ID wins when both are set.
type Criteria struct {
	ID          string
	URLContains string
}

// Empty reports whether no selection criterion was supplied.
func (c Criteria) Empty() bool {
	return c.ID == "" && c.URLContains == ""
}

// LoadReport counts what Load kept and dropped.
type LoadReport struct {
	Lines   int `json:"lines"`
	Valid   int `json:"valid"`
	Dropped int `json:"dropped"`
}
