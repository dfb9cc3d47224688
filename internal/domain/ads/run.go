package ads

// Download is what the media pipeline learned about a fetched video.
type Download struct {
	VideoPath   string
	DurationSec *float64
	Description string
}

// IngestRequest carries the operator-supplied fields for a new record.
type IngestRequest struct {
	URL          string
	UGCType      string
	Brand        string
	Category     string
	Language     string
	TermsOK      bool
	AspectRatio  string
	WhisperModel string
	// TranscriptPath skips download and transcription when set.
	TranscriptPath string
}

// IngestResult is printed after a record is appended.
type IngestResult struct {
	Status   string `json:"status"`
	ID       string `json:"id"`
	Platform string `json:"platform"`
	HookText string `json:"hook_text"`
	CTAText  string `json:"cta_text"`
}
