package analysis

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/sumsori/sumsori-api/internal/models"
)

// ---------------------------------------------------------------------------
// Structured-output extractor
// The model reply is treated as an untrusted, best-effort text source that is
// expected to contain one JSON object, possibly inside a markdown code fence.
// Parsing is strict: anything that does not validate against the schema is a
// ParseError, never a partial object. No repair beyond fence stripping —
// silently "fixing" bad output risks plausible but wrong emotional content
// reaching a user.
// ---------------------------------------------------------------------------

// ParseError reports a model reply that could not be parsed into a valid
// analysis record. The orchestrator treats it like any upstream failure.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("analysis parse failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("analysis parse failed: %s", e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

// StripFences trims whitespace and removes a wrapping markdown code fence.
// If the text starts with a fence marker the first line is dropped, and a
// trailing fence marker is dropped too. Anything else passes through intact.
func StripFences(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	if idx := strings.Index(text, "\n"); idx >= 0 {
		text = text[idx+1:]
	} else {
		text = ""
	}
	if strings.HasSuffix(text, "```") {
		text = strings.TrimSpace(text[:len(text)-3])
	}
	return text
}

// ParseEmotionAnalysis parses a raw voice-mode model reply into a validated
// EmotionAnalysis record.
func ParseEmotionAnalysis(raw string) (*models.EmotionAnalysis, error) {
	text := StripFences(raw)

	var a models.EmotionAnalysis
	dec := json.NewDecoder(strings.NewReader(text))
	if err := dec.Decode(&a); err != nil {
		return nil, &ParseError{Reason: "malformed JSON", Err: err}
	}
	if err := expectEnd(dec); err != nil {
		return nil, err
	}

	if err := validateVoiceTone(a.VoiceTone); err != nil {
		return nil, err
	}
	if err := validateTextContent(a.TextContent); err != nil {
		return nil, err
	}
	if err := validateConcordance(a.Concordance); err != nil {
		return nil, err
	}
	if a.CoreEmotion == "" {
		return nil, &ParseError{Reason: "missing coreEmotion"}
	}
	if a.Summary == "" {
		return nil, &ParseError{Reason: "missing summary"}
	}
	if err := validateImagePrompt(a.ImagePrompt); err != nil {
		return nil, err
	}

	return &a, nil
}

// ParseTextEmotionAnalysis parses a raw text-mode model reply into a
// validated TextEmotionAnalysis record.
func ParseTextEmotionAnalysis(raw string) (*models.TextEmotionAnalysis, error) {
	text := StripFences(raw)

	var a models.TextEmotionAnalysis
	dec := json.NewDecoder(strings.NewReader(text))
	if err := dec.Decode(&a); err != nil {
		return nil, &ParseError{Reason: "malformed JSON", Err: err}
	}
	if err := expectEnd(dec); err != nil {
		return nil, err
	}

	if a.SurfaceEmotion.Emotion == "" {
		return nil, &ParseError{Reason: "missing surfaceEmotion.emotion"}
	}
	if a.SurfaceEmotion.Sentiment < -1.0 || a.SurfaceEmotion.Sentiment > 1.0 {
		return nil, &ParseError{Reason: fmt.Sprintf("surfaceEmotion.sentiment %v out of range", a.SurfaceEmotion.Sentiment)}
	}
	if a.HiddenEmotion.Emotion == "" {
		return nil, &ParseError{Reason: "missing hiddenEmotion.emotion"}
	}
	if a.HiddenEmotion.Reasoning == "" {
		return nil, &ParseError{Reason: "missing hiddenEmotion.reasoning"}
	}
	if err := validateConcordance(a.Concordance); err != nil {
		return nil, err
	}
	if a.CoreEmotion == "" {
		return nil, &ParseError{Reason: "missing coreEmotion"}
	}
	if a.Summary == "" {
		return nil, &ParseError{Reason: "missing summary"}
	}
	if a.TTSDirection.Emotion == "" || a.TTSDirection.Pace == "" || a.TTSDirection.VoiceCharacter == "" {
		return nil, &ParseError{Reason: "incomplete ttsDirection"}
	}
	if err := validateImagePrompt(a.ImagePrompt); err != nil {
		return nil, err
	}

	return &a, nil
}

// expectEnd requires the decoder's stream to hold nothing but whitespace
// after the first value. A reply that appends commentary after the object is
// rejected whole rather than parsed by prefix.
func expectEnd(dec *json.Decoder) error {
	if _, err := dec.Token(); err != io.EOF {
		return &ParseError{Reason: "trailing data after JSON object"}
	}
	return nil
}

func validateVoiceTone(vt models.VoiceTone) error {
	if vt.Emotion == "" {
		return &ParseError{Reason: "missing voiceTone.emotion"}
	}
	switch vt.Pace {
	case models.PaceSlow, models.PaceNormal, models.PaceFast:
	default:
		return &ParseError{Reason: fmt.Sprintf("invalid voiceTone.pace %q", vt.Pace)}
	}
	if vt.Energy < 0 || vt.Energy > 100 {
		return &ParseError{Reason: fmt.Sprintf("voiceTone.energy %d out of range", vt.Energy)}
	}
	if vt.Stability < 0 || vt.Stability > 100 {
		return &ParseError{Reason: fmt.Sprintf("voiceTone.stability %d out of range", vt.Stability)}
	}
	return nil
}

func validateTextContent(tc models.TextContent) error {
	if tc.Emotion == "" {
		return &ParseError{Reason: "missing textContent.emotion"}
	}
	if tc.Sentiment < -1.0 || tc.Sentiment > 1.0 {
		return &ParseError{Reason: fmt.Sprintf("textContent.sentiment %v out of range", tc.Sentiment)}
	}
	if tc.Transcript == "" {
		return &ParseError{Reason: "missing textContent.transcript"}
	}
	return nil
}

func validateConcordance(c models.Concordance) error {
	switch c.Match {
	case models.MatchHigh, models.MatchMedium, models.MatchLow:
		return nil
	default:
		return &ParseError{Reason: fmt.Sprintf("invalid concordance.match %q", c.Match)}
	}
}

func validateImagePrompt(p models.ImagePrompt) error {
	for _, f := range []struct {
		name  string
		value string
	}{
		{"format", p.Format},
		{"character", p.Character},
		{"angle", p.Angle},
		{"style", p.Style},
		{"scene", p.Scene},
		{"catPose", p.CatPose},
		{"colorPalette", p.ColorPalette},
		{"lighting", p.Lighting},
		{"forbidden", p.Forbidden},
	} {
		if f.value == "" {
			return &ParseError{Reason: "missing imagePrompt." + f.name}
		}
	}
	return nil
}
