// Package pipeline orchestrates card generation: emotion analysis, media
// synthesis, artifact upload, and persistence. Every run ends in a card —
// when any stage fails, a pre-computed fallback bundle is substituted and
// the failure is reported alongside it instead of as a dead end.
package pipeline

import (
	"context"

	"github.com/sumsori/sumsori-api/internal/auth"
	"github.com/sumsori/sumsori-api/internal/models"
)

// AnalysisClient runs the multimodal emotion analysis calls.
type AnalysisClient interface {
	AnalyzeAudio(ctx context.Context, prompt string, audio []byte, mimeType string) (string, error)
	AnalyzeText(ctx context.Context, prompt, userTurn string) (string, error)
}

// SpeechClient synthesizes raw PCM speech from a delivery instruction.
type SpeechClient interface {
	GenerateSpeech(ctx context.Context, instruction, voiceName string) ([]byte, error)
}

// ImageClient renders the card image from a composed directive.
type ImageClient interface {
	GenerateImage(ctx context.Context, directive string) ([]byte, error)
}

// ObjectStore uploads generated artifacts and resolves their public URLs.
type ObjectStore interface {
	Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error
	PublicURL(bucket, path string) string
}

// CardStore persists completed cards.
type CardStore interface {
	CreateCard(ctx context.Context, card *models.Card) error
}

// VoiceInput is one voice-mode generation request.
type VoiceInput struct {
	Audio    []byte
	MimeType string
	Locale   string
	Demo     bool
	Session  *auth.Session
}

// TextInput is one text-mode generation request. Voice selects the TTS
// voice preset; unknown presets fall back to the default voice.
type TextInput struct {
	Text    string
	Locale  string
	Voice   string
	Demo    bool
	Session *auth.Session
}

func sessionIdentity(s *auth.Session) (userID, nickname *string) {
	if s == nil {
		return nil, nil
	}
	id := s.UserID
	userID = &id
	if s.Nickname != "" {
		n := s.Nickname
		nickname = &n
	}
	return userID, nickname
}
