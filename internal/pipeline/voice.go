package pipeline

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/sumsori/sumsori-api/internal/analysis"
	"github.com/sumsori/sumsori-api/internal/demo"
	"github.com/sumsori/sumsori-api/internal/models"
)

// VoicePipeline turns a voice recording into a persisted emotion card.
type VoicePipeline struct {
	analysis    AnalysisClient
	images      ImageClient
	store       ObjectStore
	cards       CardStore
	demos       *demo.Registry
	imageBucket string
	timeout     time.Duration
}

func NewVoicePipeline(analysisClient AnalysisClient, images ImageClient, store ObjectStore, cards CardStore, demos *demo.Registry, imageBucket string, timeout time.Duration) *VoicePipeline {
	return &VoicePipeline{
		analysis:    analysisClient,
		images:      images,
		store:       store,
		cards:       cards,
		demos:       demos,
		imageBucket: imageBucket,
		timeout:     timeout,
	}
}

// Run executes the voice pipeline end to end. Demo mode and empty input
// short-circuit to a fallback bundle. Stage failures degrade to a fallback
// with the error surfaced in the body; only a panic escalates the status.
func (p *VoicePipeline) Run(ctx context.Context, in VoiceInput) (resp *models.AnalyzeResponse, status int) {
	if in.Demo || len(in.Audio) == 0 {
		return p.fallback(in.Locale, ""), http.StatusOK
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Pipeline] Voice run panicked: %v", r)
			resp = p.fallback(in.Locale, "card generation failed")
			status = http.StatusInternalServerError
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	card, err := p.generate(ctx, in)
	if err != nil {
		log.Printf("[Pipeline] Voice generation failed, serving fallback: %v", err)
		return p.fallback(in.Locale, err.Error()), http.StatusOK
	}

	return &models.AnalyzeResponse{
		Success: true,
		Data: &models.AnalyzeData{
			CardID:      card.ID,
			VoiceTone:   *card.VoiceTone,
			TextContent: *card.TextContent,
			Concordance: card.Concordance,
			CoreEmotion: card.CoreEmotion,
			Summary:     card.Summary,
			Image:       models.MediaRef{URL: card.ImageURL},
		},
	}, http.StatusOK
}

func (p *VoicePipeline) generate(ctx context.Context, in VoiceInput) (*models.Card, error) {
	raw, err := p.analysis.AnalyzeAudio(ctx, analysis.VoicePrompt(in.Locale), in.Audio, in.MimeType)
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	parsed, err := analysis.ParseEmotionAnalysis(raw)
	if err != nil {
		return nil, fmt.Errorf("analysis parsing failed: %w", err)
	}

	directive, err := analysis.ComposeImagePrompt(parsed.ImagePrompt)
	if err != nil {
		return nil, fmt.Errorf("image prompt composition failed: %w", err)
	}

	image, err := p.images.GenerateImage(ctx, directive)
	if err != nil {
		return nil, fmt.Errorf("image generation failed: %w", err)
	}

	cardID := uuid.New().String()
	imagePath := cardID + ".png"

	if err := p.store.Upload(ctx, p.imageBucket, imagePath, image, "image/png"); err != nil {
		return nil, fmt.Errorf("image upload failed: %w", err)
	}

	userID, nickname := sessionIdentity(in.Session)
	card := &models.Card{
		ID:          cardID,
		UserID:      userID,
		Nickname:    nickname,
		InputMode:   models.InputModeVoice,
		VoiceTone:   &parsed.VoiceTone,
		TextContent: &parsed.TextContent,
		Concordance: parsed.Concordance,
		CoreEmotion: parsed.CoreEmotion,
		Summary:     parsed.Summary,
		ImageURL:    p.store.PublicURL(p.imageBucket, imagePath),
		ImagePrompt: &parsed.ImagePrompt,
	}

	if err := p.cards.CreateCard(ctx, card); err != nil {
		return nil, fmt.Errorf("card persistence failed: %w", err)
	}

	log.Printf("[Pipeline] Voice card %s created (locale=%s)", card.ID, in.Locale)
	return card, nil
}

// fallback builds a response from a demo bundle. An empty errMsg means the
// bundle was requested deliberately, not served in place of a failure.
func (p *VoicePipeline) fallback(locale, errMsg string) *models.AnalyzeResponse {
	b := p.demos.Voice(locale)
	return &models.AnalyzeResponse{
		Success: errMsg == "",
		Error:   errMsg,
		Data: &models.AnalyzeData{
			CardID:      models.DemoCardID,
			VoiceTone:   b.Analysis.VoiceTone,
			TextContent: b.Analysis.TextContent,
			Concordance: b.Analysis.Concordance,
			CoreEmotion: b.Analysis.CoreEmotion,
			Summary:     b.Analysis.Summary,
			Image:       models.MediaRef{URL: b.ImageURL},
		},
	}
}
