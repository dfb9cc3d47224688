package prompt

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/ugc-analyzer/internal/domain/ads"
	"github.com/bryanwahyu/ugc-analyzer/internal/domain/analysis"
)

func sampleRecord() ads.Record {
	caption := "legenda & <tags>"
	dur := 27.0
	return ads.Record{
		ID:          "br_001",
		Platform:    "tiktok",
		Brand:       "Acme",
		Language:    "pt-BR",
		UGCType:     "testimonial",
		VideoURL:    "https://example.com/v1",
		HookText:    "Você sabia?",
		CTAText:     "Link na bio",
		CaptionText: &caption,
		ScriptText:  "roteiro",
		DurationSec: &dur,
		TermsOK:     true,
		Notes:       "interno: não enviar",
	}
}

func TestGetSystemPrompt(t *testing.T) {
	p := GetSystemPrompt("")
	assert.Contains(t, p, "criativos UGC em pt-BR")
	assert.Contains(t, p, "JSON estrito")

	assert.Contains(t, GetSystemPrompt("es-MX"), "criativos UGC em es-MX")
}

func TestGetUserPrompt_EmbedsSchemaAndPayload(t *testing.T) {
	p, err := GetUserPrompt(sampleRecord())
	require.NoError(t, err)

	prefix := "Analise o anúncio abaixo e responda em JSON válido seguindo este schema: " + analysis.SchemaJSON + ". Dados do anúncio: "
	require.True(t, strings.HasPrefix(p, prefix))

	payload := strings.TrimPrefix(p, prefix)
	assert.Contains(t, payload, "legenda & <tags>")
	assert.Contains(t, payload, "Você sabia?")

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(payload), &m))
	assert.NotContains(t, m, "terms_ok")
	assert.NotContains(t, m, "notes")
	assert.Len(t, m, 13)
	assert.Equal(t, "br_001", m["id"])
	assert.Equal(t, "", m["category"])
	assert.Equal(t, "", m["aspect_ratio"])
	assert.Equal(t, 27.0, m["duration_sec"])
}

func TestNewAdPayload_Defaults(t *testing.T) {
	r := ads.Record{ID: "br_002", Platform: "reels", Language: "pt-BR", UGCType: "qna", VideoURL: "https://x.com", HookText: "h", CTAText: "c", ScriptText: "s"}
	b, err := marshalCompact(NewAdPayload(r))
	require.NoError(t, err)
	assert.Equal(t,
		`{"id":"br_002","platform":"reels","brand":"","category":"","language":"pt-BR","ugc_type":"qna","video_url":"https://x.com","hook_text":"h","cta_text":"c","caption_text":"","script_text":"s","duration_sec":null,"aspect_ratio":""}`,
		b)
}

func TestBuildRequest(t *testing.T) {
	req, err := BuildRequest(sampleRecord(), "gpt-4o-mini", "pt-BR", 0.2)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", req.Model)
	assert.Equal(t, float32(0.2), req.Temperature)
	assert.Equal(t, GetSystemPrompt("pt-BR"), req.System)
	assert.Contains(t, req.Prompt, `"id":"br_001"`)
}
