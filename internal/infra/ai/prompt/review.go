package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bryanwahyu/ugc-analyzer/internal/domain/ads"
	"github.com/bryanwahyu/ugc-analyzer/internal/domain/analysis"
)

// DefaultLanguage is the response language when none is configured.
const DefaultLanguage = "pt-BR"

// GetSystemPrompt frames the model as a UGC creative reviewer answering in language.
func GetSystemPrompt(language string) string {
	if strings.TrimSpace(language) == "" {
		language = DefaultLanguage
	}
	return strings.Join([]string{
		fmt.Sprintf("Você é um analista de criativos UGC em %s.", language),
		"Avalie o anúncio considerando: clareza do hook, proposta de valor, prova social, timing do CTA, objeções e copy.",
		"Responda em JSON estrito, sem texto adicional.",
	}, " ")
}

// AdPayload is the part of a record the model gets to see. Compliance flag and
// internal notes stay out.
type AdPayload struct {
	ID          string   `json:"id"`
	Platform    string   `json:"platform"`
	Brand       string   `json:"brand"`
	Category    string   `json:"category"`
	Language    string   `json:"language"`
	UGCType     string   `json:"ugc_type"`
	VideoURL    string   `json:"video_url"`
	HookText    string   `json:"hook_text"`
	CTAText     string   `json:"cta_text"`
	CaptionText string   `json:"caption_text"`
	ScriptText  string   `json:"script_text"`
	DurationSec *float64 `json:"duration_sec"`
	AspectRatio string   `json:"aspect_ratio"`
}

// NewAdPayload copies the reviewable fields of r, defaulting absent strings to "".
func NewAdPayload(r ads.Record) AdPayload {
	p := AdPayload{
		ID:          r.ID,
		Platform:    r.Platform,
		Brand:       r.Brand,
		Category:    r.Category,
		Language:    r.Language,
		UGCType:     r.UGCType,
		VideoURL:    r.VideoURL,
		HookText:    r.HookText,
		CTAText:     r.CTAText,
		ScriptText:  r.ScriptText,
		DurationSec: r.DurationSec,
		AspectRatio: r.AspectRatio,
	}
	if r.CaptionText != nil {
		p.CaptionText = *r.CaptionText
	}
	return p
}

// GetUserPrompt embeds the result schema and the ad payload in one message.
func GetUserPrompt(r ads.Record) (string, error) {
	b, err := marshalCompact(NewAdPayload(r))
	if err != nil {
		return "", fmt.Errorf("failed to marshal ad payload: %w", err)
	}
	return fmt.Sprintf("Analise o anúncio abaixo e responda em JSON válido seguindo este schema: %s. Dados do anúncio: %s",
		analysis.SchemaJSON, b), nil
}

// BuildRequest assembles the completion request for one record.
func BuildRequest(r ads.Record, model, language string, temperature float32) (analysis.Request, error) {
	user, err := GetUserPrompt(r)
	if err != nil {
		return analysis.Request{}, err
	}
	return analysis.Request{
		Model:       model,
		System:      GetSystemPrompt(language),
		Prompt:      user,
		Temperature: temperature,
	}, nil
}

// marshalCompact keeps non-ASCII text and '&', '<', '>' readable for the model.
func marshalCompact(v any) (string, error) {
	var sb strings.Builder
	enc := json.NewEncoder(&sb)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(sb.String(), "\n"), nil
}
