package pipeline

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/sumsori/sumsori-api/internal/models"
)

func newVoiceFixture() (*VoicePipeline, *fakeAnalysis, *fakeImage, *fakeStore, *fakeCards) {
	an := &fakeAnalysis{audioReply: voiceReply}
	img := &fakeImage{data: []byte("png-bytes")}
	store := newFakeStore()
	cards := &fakeCards{}
	p := NewVoicePipeline(an, img, store, cards, testRegistry(), "card-images", time.Second)
	return p, an, img, store, cards
}

func TestVoiceDemoModeSkipsGeneration(t *testing.T) {
	p, an, img, store, cards := newVoiceFixture()

	resp, status := p.Run(context.Background(), VoiceInput{Demo: true, Locale: "ko", Audio: []byte("audio")})

	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if !resp.Success {
		t.Error("demo mode should report success")
	}
	if resp.Error != "" {
		t.Errorf("demo mode should carry no error, got %q", resp.Error)
	}
	if resp.Data.CardID != models.DemoCardID {
		t.Errorf("expected card id %q, got %q", models.DemoCardID, resp.Data.CardID)
	}
	if an.audioCalls != 0 || img.calls != 0 || len(store.uploads) != 0 || len(cards.created) != 0 {
		t.Error("demo mode must not touch any live capability")
	}
}

func TestVoiceEmptyAudioServesBundle(t *testing.T) {
	p, an, _, _, _ := newVoiceFixture()

	resp, status := p.Run(context.Background(), VoiceInput{Locale: "ko"})

	if status != http.StatusOK || !resp.Success {
		t.Fatalf("expected a clean bundle, got status=%d success=%v", status, resp.Success)
	}
	if resp.Data.CardID != models.DemoCardID {
		t.Errorf("expected demo card id, got %q", resp.Data.CardID)
	}
	if an.audioCalls != 0 {
		t.Error("empty input must not reach analysis")
	}
}

func TestVoiceHappyPath(t *testing.T) {
	p, _, _, store, cards := newVoiceFixture()

	resp, status := p.Run(context.Background(), VoiceInput{Audio: []byte("webm"), MimeType: "audio/webm", Locale: "ko"})

	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if !resp.Success {
		t.Fatalf("expected success, got error %q", resp.Error)
	}
	if resp.Data.CardID == models.DemoCardID || resp.Data.CardID == "" {
		t.Fatalf("expected a real card id, got %q", resp.Data.CardID)
	}

	if len(cards.created) != 1 {
		t.Fatalf("expected 1 persisted card, got %d", len(cards.created))
	}
	card := cards.created[0]
	if card.ID != resp.Data.CardID {
		t.Errorf("response card id %q != persisted id %q", resp.Data.CardID, card.ID)
	}
	if card.InputMode != models.InputModeVoice {
		t.Errorf("expected input mode voice, got %q", card.InputMode)
	}
	if card.VoiceTone == nil || card.VoiceTone.Emotion != "tiredness" {
		t.Error("voice tone not carried onto the card")
	}
	if card.Summary != "A tired voice hiding behind reassuring words" {
		t.Errorf("unexpected summary %q", card.Summary)
	}

	imageKey := "card-images/" + card.ID + ".png"
	if _, ok := store.uploads[imageKey]; !ok {
		t.Errorf("image not uploaded at %s", imageKey)
	}
	wantURL := "https://cdn.test/" + imageKey
	if resp.Data.Image.URL != wantURL {
		t.Errorf("expected image URL %q, got %q", wantURL, resp.Data.Image.URL)
	}
}

func TestVoiceAnonymousCardHasNoOwner(t *testing.T) {
	p, _, _, _, cards := newVoiceFixture()

	if _, status := p.Run(context.Background(), VoiceInput{Audio: []byte("webm"), Locale: "ko"}); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if cards.created[0].UserID != nil {
		t.Error("anonymous run should persist without an owner")
	}
}

func TestVoiceStageFailuresDegradeToBundle(t *testing.T) {
	cases := []struct {
		name     string
		sabotage func(*fakeAnalysis, *fakeImage, *fakeStore, *fakeCards)
	}{
		{"analysis error", func(an *fakeAnalysis, _ *fakeImage, _ *fakeStore, _ *fakeCards) {
			an.audioErr = errors.New("upstream unavailable")
		}},
		{"unparseable reply", func(an *fakeAnalysis, _ *fakeImage, _ *fakeStore, _ *fakeCards) {
			an.audioReply = "sorry, I cannot help with that"
		}},
		{"image error", func(_ *fakeAnalysis, img *fakeImage, _ *fakeStore, _ *fakeCards) {
			img.err = errors.New("image generation returned no image data")
		}},
		{"upload error", func(_ *fakeAnalysis, _ *fakeImage, store *fakeStore, _ *fakeCards) {
			store.err = errors.New("bucket rejected object")
		}},
		{"persistence error", func(_ *fakeAnalysis, _ *fakeImage, _ *fakeStore, cards *fakeCards) {
			cards.err = errors.New("db down")
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, an, img, store, cards := newVoiceFixture()
			tc.sabotage(an, img, store, cards)

			resp, status := p.Run(context.Background(), VoiceInput{Audio: []byte("webm"), Locale: "en"})

			if status != http.StatusOK {
				t.Fatalf("degraded run must stay 200, got %d", status)
			}
			if resp.Success {
				t.Error("degraded run must report success=false")
			}
			if resp.Error == "" {
				t.Error("degraded run must surface the failure")
			}
			if resp.Data == nil || resp.Data.CardID != models.DemoCardID {
				t.Fatal("degraded run must still carry a bundle")
			}
			if !strings.Contains(resp.Data.Image.URL, "sample-en") {
				t.Errorf("en locale should get an en bundle, got %s", resp.Data.Image.URL)
			}
		})
	}
}

func TestVoiceImageErrorSurfacedInBody(t *testing.T) {
	p, _, img, _, _ := newVoiceFixture()
	img.err = errors.New("image generation returned no image data")

	resp, _ := p.Run(context.Background(), VoiceInput{Audio: []byte("webm"), Locale: "ko"})

	if !strings.Contains(resp.Error, "no image data") {
		t.Errorf("expected the root cause in the body, got %q", resp.Error)
	}
}
