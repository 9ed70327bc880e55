package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// ---------------------------------------------------------------------------
// Gemini Service
// One REST client covers all three consumed capabilities — emotion analysis
// (audio or text input), speech synthesis, and image generation — since they
// share the generateContent endpoint and only differ in generation config.
// ---------------------------------------------------------------------------

const (
	// analysisModel is fast and accepts inline audio input.
	analysisModel = "gemini-2.5-flash"
	// imageModel supports native image generation.
	imageModel = "gemini-2.0-flash-exp"
	// ttsModel returns raw 24kHz 16-bit mono PCM.
	ttsModel = "gemini-2.5-flash-preview-tts"

	geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
)

// ErrNoImageData means the image reply carried no inline binary part.
var ErrNoImageData = errors.New("image generation returned no image data")

// ErrNoAudioData means the TTS reply carried no inline binary part.
var ErrNoAudioData = errors.New("speech synthesis returned no audio data")

// ErrNoText means the analysis reply carried no text part.
var ErrNoText = errors.New("analysis returned no text")

type GeminiService struct {
	apiKey string
	client *http.Client
}

func NewGeminiService(apiKey string) *GeminiService {
	return &GeminiService{
		apiKey: apiKey,
		client: &http.Client{Timeout: 120 * time.Second},
	}
}

// Gemini API request/response structures
type geminiGenerateContentRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiGenerationConfig struct {
	ResponseModalities []string            `json:"responseModalities,omitempty"`
	SpeechConfig       *geminiSpeechConfig `json:"speechConfig,omitempty"`
}

type geminiSpeechConfig struct {
	VoiceConfig geminiVoiceConfig `json:"voiceConfig"`
}

type geminiVoiceConfig struct {
	PrebuiltVoiceConfig geminiPrebuiltVoice `json:"prebuiltVoiceConfig"`
}

type geminiPrebuiltVoice struct {
	VoiceName string `json:"voiceName"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiGenerateContentResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

type geminiCandidate struct {
	Content geminiResponseContent `json:"content"`
}

type geminiResponseContent struct {
	Parts []geminiPart `json:"parts"`
}

// AnalyzeAudio submits an instruction prompt plus base64-encoded audio to the
// analysis model and returns the raw text reply (expected to contain one JSON
// object; parsing is the extractor's job, not this client's).
func (s *GeminiService) AnalyzeAudio(ctx context.Context, prompt string, audio []byte, mimeType string) (string, error) {
	req := geminiGenerateContentRequest{
		Contents: []geminiContent{
			{
				Role: "user",
				Parts: []geminiPart{
					{Text: prompt},
					{InlineData: &geminiInlineData{
						MimeType: mimeType,
						Data:     base64.StdEncoding.EncodeToString(audio),
					}},
				},
			},
		},
	}

	resp, err := s.generateContent(ctx, analysisModel, req)
	if err != nil {
		return "", err
	}
	return firstText(resp)
}

// AnalyzeText submits an instruction prompt plus the wrapped user text.
func (s *GeminiService) AnalyzeText(ctx context.Context, prompt, userTurn string) (string, error) {
	req := geminiGenerateContentRequest{
		Contents: []geminiContent{
			{
				Role: "user",
				Parts: []geminiPart{
					{Text: prompt},
					{Text: userTurn},
				},
			},
		},
	}

	resp, err := s.generateContent(ctx, analysisModel, req)
	if err != nil {
		return "", err
	}
	return firstText(resp)
}

// GenerateSpeech renders the instruction text with a prebuilt voice and
// returns the raw PCM payload (headerless — the audio encoder wraps it).
func (s *GeminiService) GenerateSpeech(ctx context.Context, instruction, voiceName string) ([]byte, error) {
	req := geminiGenerateContentRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: instruction}}},
		},
		GenerationConfig: &geminiGenerationConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: &geminiSpeechConfig{
				VoiceConfig: geminiVoiceConfig{
					PrebuiltVoiceConfig: geminiPrebuiltVoice{VoiceName: voiceName},
				},
			},
		},
	}

	resp, err := s.generateContent(ctx, ttsModel, req)
	if err != nil {
		return nil, err
	}

	data, err := firstInlineData(resp)
	if err != nil {
		return nil, ErrNoAudioData
	}
	return data, nil
}

// GenerateImage renders the composed directive and returns PNG bytes.
// The reply may interleave text and image parts; the first inline-data part
// wins, and a reply with none is a hard failure.
func (s *GeminiService) GenerateImage(ctx context.Context, directive string) ([]byte, error) {
	req := geminiGenerateContentRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: directive}}},
		},
		GenerationConfig: &geminiGenerationConfig{
			ResponseModalities: []string{"IMAGE", "TEXT"},
		},
	}

	resp, err := s.generateContent(ctx, imageModel, req)
	if err != nil {
		return nil, err
	}

	data, err := firstInlineData(resp)
	if err != nil {
		// A text-only reply usually carries a refusal; log it for triage.
		if text, terr := firstText(resp); terr == nil {
			log.Printf("[Gemini] image model returned text instead of image: %s", truncate(text, 200))
		}
		return nil, ErrNoImageData
	}
	return data, nil
}

func (s *GeminiService) generateContent(ctx context.Context, model string, reqBody geminiGenerateContentRequest) (*geminiGenerateContentResponse, error) {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", geminiBaseURL, model, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini returned status %d: %s", resp.StatusCode, truncate(string(bodyBytes), 500))
	}

	var geminiResp geminiGenerateContentResponse
	if err := json.Unmarshal(bodyBytes, &geminiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(geminiResp.Candidates) == 0 {
		return nil, fmt.Errorf("no candidates in response")
	}

	return &geminiResp, nil
}

// firstText concatenates the text parts of the first candidate.
func firstText(resp *geminiGenerateContentResponse) (string, error) {
	var parts []string
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			parts = append(parts, part.Text)
		}
	}
	if len(parts) == 0 {
		return "", ErrNoText
	}
	return strings.Join(parts, ""), nil
}

// firstInlineData returns the first inline binary payload of the first
// candidate, base64-decoded.
func firstInlineData(resp *geminiGenerateContentResponse) ([]byte, error) {
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.InlineData != nil && part.InlineData.Data != "" {
			data, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
			if err != nil {
				return nil, fmt.Errorf("failed to decode inline data: %w", err)
			}
			return data, nil
		}
	}
	return nil, fmt.Errorf("no inline data in response")
}

// truncate limits a string to maxLen characters for log output
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
