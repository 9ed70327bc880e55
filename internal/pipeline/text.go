package pipeline

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/sumsori/sumsori-api/internal/analysis"
	"github.com/sumsori/sumsori-api/internal/audio"
	"github.com/sumsori/sumsori-api/internal/demo"
	"github.com/sumsori/sumsori-api/internal/models"
)

const defaultVoice = "Sulafat"

// voiceMap resolves the client-facing voice preset to a prebuilt TTS voice.
var voiceMap = map[string]string{
	"female-warm": "Sulafat",
	"female-firm": "Kore",
	"male-upbeat": "Puck",
	"male-calm":   "Enceladus",
}

func resolveVoice(preset string) string {
	if name, ok := voiceMap[preset]; ok {
		return name
	}
	return defaultVoice
}

// TextPipeline turns a written message into a persisted emotion card with
// both a rendered image and a spoken reading of the message.
type TextPipeline struct {
	analysis    AnalysisClient
	speech      SpeechClient
	images      ImageClient
	store       ObjectStore
	cards       CardStore
	demos       *demo.Registry
	imageBucket string
	audioBucket string
	timeout     time.Duration
}

func NewTextPipeline(analysisClient AnalysisClient, speech SpeechClient, images ImageClient, store ObjectStore, cards CardStore, demos *demo.Registry, imageBucket, audioBucket string, timeout time.Duration) *TextPipeline {
	return &TextPipeline{
		analysis:    analysisClient,
		speech:      speech,
		images:      images,
		store:       store,
		cards:       cards,
		demos:       demos,
		imageBucket: imageBucket,
		audioBucket: audioBucket,
		timeout:     timeout,
	}
}

// Run executes the text pipeline end to end, with the same degradation
// contract as the voice pipeline.
func (p *TextPipeline) Run(ctx context.Context, in TextInput) (resp *models.TextAnalyzeResponse, status int) {
	if in.Demo || strings.TrimSpace(in.Text) == "" {
		return p.fallback(in.Locale, ""), http.StatusOK
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Pipeline] Text run panicked: %v", r)
			resp = p.fallback(in.Locale, "card generation failed")
			status = http.StatusInternalServerError
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	card, err := p.generate(ctx, in)
	if err != nil {
		log.Printf("[Pipeline] Text generation failed, serving fallback: %v", err)
		return p.fallback(in.Locale, err.Error()), http.StatusOK
	}

	return &models.TextAnalyzeResponse{
		Success: true,
		Data: &models.TextAnalyzeData{
			CardID:         card.ID,
			SurfaceEmotion: *card.SurfaceEmotion,
			HiddenEmotion:  *card.HiddenEmotion,
			Concordance:    card.Concordance,
			CoreEmotion:    card.CoreEmotion,
			Summary:        card.Summary,
			Image:          models.MediaRef{URL: card.ImageURL},
			Audio:          models.MediaRef{URL: *card.AudioURL},
		},
	}, http.StatusOK
}

func (p *TextPipeline) generate(ctx context.Context, in TextInput) (*models.Card, error) {
	raw, err := p.analysis.AnalyzeText(ctx, analysis.TextPrompt(in.Locale), analysis.TextUserTurn(in.Text))
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	parsed, err := analysis.ParseTextEmotionAnalysis(raw)
	if err != nil {
		return nil, fmt.Errorf("analysis parsing failed: %w", err)
	}

	directive, err := analysis.ComposeImagePrompt(parsed.ImagePrompt)
	if err != nil {
		return nil, fmt.Errorf("image prompt composition failed: %w", err)
	}

	cardID := uuid.New().String()
	imagePath := cardID + ".png"
	audioPath := cardID + ".wav"

	// Speech and image are independent; synthesize and upload both in
	// parallel, failing the run if either side fails.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		instruction := analysis.TTSInstruction(in.Locale, parsed.TTSDirection, in.Text)
		pcm, err := p.speech.GenerateSpeech(gctx, instruction, resolveVoice(in.Voice))
		if err != nil {
			return fmt.Errorf("speech synthesis failed: %w", err)
		}
		wav := audio.EncodeTTS(pcm)
		if err := p.store.Upload(gctx, p.audioBucket, audioPath, wav, "audio/wav"); err != nil {
			return fmt.Errorf("audio upload failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		image, err := p.images.GenerateImage(gctx, directive)
		if err != nil {
			return fmt.Errorf("image generation failed: %w", err)
		}
		if err := p.store.Upload(gctx, p.imageBucket, imagePath, image, "image/png"); err != nil {
			return fmt.Errorf("image upload failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	audioURL := p.store.PublicURL(p.audioBucket, audioPath)
	userID, nickname := sessionIdentity(in.Session)
	card := &models.Card{
		ID:             cardID,
		UserID:         userID,
		Nickname:       nickname,
		InputMode:      models.InputModeText,
		SurfaceEmotion: &parsed.SurfaceEmotion,
		HiddenEmotion:  &parsed.HiddenEmotion,
		// Project the surface reading into the shared text-content shape so
		// the share page treats both input modes uniformly. The transcript
		// is the sender's original message.
		TextContent: &models.TextContent{
			Emotion:    parsed.SurfaceEmotion.Emotion,
			Themes:     parsed.SurfaceEmotion.Themes,
			Keywords:   parsed.SurfaceEmotion.Keywords,
			Sentiment:  parsed.SurfaceEmotion.Sentiment,
			Transcript: in.Text,
		},
		Concordance: parsed.Concordance,
		CoreEmotion: parsed.CoreEmotion,
		Summary:     parsed.Summary,
		ImageURL:    p.store.PublicURL(p.imageBucket, imagePath),
		AudioURL:    &audioURL,
		ImagePrompt: &parsed.ImagePrompt,
	}

	if err := p.cards.CreateCard(ctx, card); err != nil {
		return nil, fmt.Errorf("card persistence failed: %w", err)
	}

	log.Printf("[Pipeline] Text card %s created (locale=%s voice=%s)", card.ID, in.Locale, resolveVoice(in.Voice))
	return card, nil
}

func (p *TextPipeline) fallback(locale, errMsg string) *models.TextAnalyzeResponse {
	b := p.demos.Text(locale)
	return &models.TextAnalyzeResponse{
		Success: errMsg == "",
		Error:   errMsg,
		Data: &models.TextAnalyzeData{
			CardID:         models.DemoCardID,
			SurfaceEmotion: b.Analysis.SurfaceEmotion,
			HiddenEmotion:  b.Analysis.HiddenEmotion,
			Concordance:    b.Analysis.Concordance,
			CoreEmotion:    b.Analysis.CoreEmotion,
			Summary:        b.Analysis.Summary,
			Image:          models.MediaRef{URL: b.ImageURL},
			Audio:          models.MediaRef{URL: b.AudioURL},
		},
	}
}
