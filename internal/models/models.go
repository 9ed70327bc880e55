package models

import (
	"time"
)

// Enums
type Pace string

const (
	PaceSlow   Pace = "slow"
	PaceNormal Pace = "normal"
	PaceFast   Pace = "fast"
)

type ConcordanceMatch string

const (
	MatchHigh   ConcordanceMatch = "high"
	MatchMedium ConcordanceMatch = "medium"
	MatchLow    ConcordanceMatch = "low"
)

type InputMode string

const (
	InputModeVoice InputMode = "voice"
	InputModeText  InputMode = "text"
)

// DemoCardID is the sentinel card id returned for demo or fallback results.
// Cards with this id are never persisted and no mutation endpoint accepts it.
const DemoCardID = "demo"

// ---------------------------------------------------------------------------
// Analysis schemas — the strict shapes the extractor parses model output into.
// Field names mirror the JSON the analysis prompt demands.
// ---------------------------------------------------------------------------

// VoiceTone describes what the voice sounded like, acoustics only.
type VoiceTone struct {
	Emotion   string `json:"emotion"`
	Energy    int    `json:"energy"`    // 0-100
	Pace      Pace   `json:"pace"`      // slow | normal | fast
	Stability int    `json:"stability"` // 0-100
	Details   string `json:"details"`   // breathing, pauses, pitch changes
}

// TextContent describes what the words meant, semantics only.
type TextContent struct {
	Emotion    string   `json:"emotion"`
	Themes     []string `json:"themes"`
	Keywords   []string `json:"keywords"`
	Sentiment  float64  `json:"sentiment"` // -1.0 to 1.0
	Transcript string   `json:"transcript"`
}

// Concordance is the gap between two independent emotion readings —
// voice tone vs spoken words, or literal text vs inferred subtext.
type Concordance struct {
	Match       ConcordanceMatch `json:"match"`
	Explanation string           `json:"explanation"`
}

// ImagePrompt is the structured image-generation directive produced by the
// analysis stage. All nine fields are always present; the compositor
// linearizes them in declaration order.
type ImagePrompt struct {
	Format       string `json:"format"`
	Character    string `json:"character"`
	Angle        string `json:"angle"`
	Style        string `json:"style"`
	Scene        string `json:"scene"`
	CatPose      string `json:"catPose"`
	ColorPalette string `json:"colorPalette"`
	Lighting     string `json:"lighting"`
	Forbidden    string `json:"forbidden"`
}

// EmotionAnalysis is the full result of one voice-mode analysis call.
type EmotionAnalysis struct {
	VoiceTone   VoiceTone   `json:"voiceTone"`
	TextContent TextContent `json:"textContent"`
	Concordance Concordance `json:"concordance"`
	CoreEmotion string      `json:"coreEmotion"`
	Summary     string      `json:"summary"`
	ImagePrompt ImagePrompt `json:"imagePrompt"`
}

// SurfaceEmotion is the literal reading of a text message.
type SurfaceEmotion struct {
	Emotion   string   `json:"emotion"`
	Themes    []string `json:"themes"`
	Keywords  []string `json:"keywords"`
	Sentiment float64  `json:"sentiment"`
}

// HiddenEmotion is the inferred subtext — what the writer meant but
// couldn't say, with the reasoning behind the inference.
type HiddenEmotion struct {
	Emotion   string `json:"emotion"`
	Reasoning string `json:"reasoning"`
}

// TTSDirection tells the speech stage how the message should be delivered.
type TTSDirection struct {
	Tone           string `json:"tone"`
	Pace           string `json:"pace"`
	Emotion        string `json:"emotion"`
	VoiceCharacter string `json:"voiceCharacter"`
}

// TextEmotionAnalysis is the full result of one text-mode analysis call.
type TextEmotionAnalysis struct {
	SurfaceEmotion SurfaceEmotion `json:"surfaceEmotion"`
	HiddenEmotion  HiddenEmotion  `json:"hiddenEmotion"`
	Concordance    Concordance    `json:"concordance"`
	CoreEmotion    string         `json:"coreEmotion"`
	Summary        string         `json:"summary"`
	TTSDirection   TTSDirection   `json:"ttsDirection"`
	ImagePrompt    ImagePrompt    `json:"imagePrompt"`
}

// ---------------------------------------------------------------------------
// Card — the persisted unit of output
// ---------------------------------------------------------------------------

type Card struct {
	ID              string               `json:"id"`
	UserID          *string              `json:"user_id,omitempty"`
	Nickname        *string              `json:"nickname,omitempty"`
	InputMode       InputMode            `json:"input_mode"`
	VoiceTone       *VoiceTone           `json:"voice_tone,omitempty"`
	TextContent     *TextContent         `json:"text_content,omitempty"`
	SurfaceEmotion  *SurfaceEmotion      `json:"surface_emotion,omitempty"`
	HiddenEmotion   *HiddenEmotion       `json:"hidden_emotion,omitempty"`
	Concordance     Concordance          `json:"concordance"`
	CoreEmotion     string               `json:"core_emotion"`
	// Summary is visible to the sender only — never shown on the share page.
	Summary         string               `json:"summary"`
	ImageURL        string               `json:"image_url"`
	AudioURL        *string              `json:"audio_url,omitempty"`
	ImagePrompt     *ImagePrompt         `json:"image_prompt,omitempty"`
	PersonalMessage *string              `json:"personal_message,omitempty"`
	ShowTranscript  bool                 `json:"show_transcript"`
	CreatedAt       time.Time            `json:"created_at"`
}

// SharedCard is the subset of Card exposed on the public share page.
// The transcript is included only when the sender opted in.
type SharedCard struct {
	ID              string    `json:"id"`
	ImageURL        string    `json:"image_url"`
	AudioURL        *string   `json:"audio_url,omitempty"`
	CoreEmotion     string    `json:"core_emotion"`
	PersonalMessage *string   `json:"personal_message,omitempty"`
	Transcript      *string   `json:"transcript,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// PublicView projects a card onto its public share shape.
// Summary and the full analysis never cross this boundary.
func (c *Card) PublicView() SharedCard {
	view := SharedCard{
		ID:              c.ID,
		ImageURL:        c.ImageURL,
		AudioURL:        c.AudioURL,
		CoreEmotion:     c.CoreEmotion,
		PersonalMessage: c.PersonalMessage,
		CreatedAt:       c.CreatedAt,
	}
	if c.ShowTranscript && c.TextContent != nil && c.TextContent.Transcript != "" {
		t := c.TextContent.Transcript
		view.Transcript = &t
	}
	return view
}

// CardSummary is the lightweight shape used by the "my cards" listing.
type CardSummary struct {
	ID          string    `json:"id"`
	ImageURL    string    `json:"image_url"`
	CoreEmotion string    `json:"core_emotion"`
	CreatedAt   time.Time `json:"created_at"`
}

// ---------------------------------------------------------------------------
// DTOs for API responses
// ---------------------------------------------------------------------------

type MediaRef struct {
	URL string `json:"url"`
}

type AnalyzeData struct {
	CardID      string      `json:"cardId"`
	VoiceTone   VoiceTone   `json:"voiceTone"`
	TextContent TextContent `json:"textContent"`
	Concordance Concordance `json:"concordance"`
	CoreEmotion string      `json:"coreEmotion"`
	Summary     string      `json:"summary"`
	Image       MediaRef    `json:"image"`
}

type AnalyzeResponse struct {
	Success bool         `json:"success"`
	Data    *AnalyzeData `json:"data,omitempty"`
	Error   string       `json:"error,omitempty"`
}

type TextAnalyzeData struct {
	CardID         string         `json:"cardId"`
	SurfaceEmotion SurfaceEmotion `json:"surfaceEmotion"`
	HiddenEmotion  HiddenEmotion  `json:"hiddenEmotion"`
	Concordance    Concordance    `json:"concordance"`
	CoreEmotion    string         `json:"coreEmotion"`
	Summary        string         `json:"summary"`
	Image          MediaRef       `json:"image"`
	Audio          MediaRef       `json:"audio"`
}

type TextAnalyzeResponse struct {
	Success bool             `json:"success"`
	Data    *TextAnalyzeData `json:"data,omitempty"`
	Error   string           `json:"error,omitempty"`
}

type CardMessageRequest struct {
	CardID         string  `json:"cardId"`
	Message        *string `json:"message,omitempty"`
	ShowTranscript *bool   `json:"showTranscript,omitempty"`
}

type CardMessageResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type ListCardsResponse struct {
	Cards []CardSummary `json:"cards"`
}
