package pipeline

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/sumsori/sumsori-api/internal/auth"
	"github.com/sumsori/sumsori-api/internal/models"
)

func newTextFixture() (*TextPipeline, *fakeAnalysis, *fakeSpeech, *fakeImage, *fakeStore, *fakeCards) {
	an := &fakeAnalysis{textReply: textReply}
	speech := &fakeSpeech{pcm: []byte{0x01, 0x02, 0x03, 0x04}}
	img := &fakeImage{data: []byte("png-bytes")}
	store := newFakeStore()
	cards := &fakeCards{}
	p := NewTextPipeline(an, speech, img, store, cards, testRegistry(), "card-images", "card-audio", time.Second)
	return p, an, speech, img, store, cards
}

func TestTextHappyPath(t *testing.T) {
	p, _, speech, _, store, cards := newTextFixture()

	session := &auth.Session{UserID: "user-1", Nickname: "Mina"}
	resp, status := p.Run(context.Background(), TextInput{
		Text:    "I miss you",
		Locale:  "en",
		Voice:   "female-warm",
		Session: session,
	})

	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if !resp.Success {
		t.Fatalf("expected success, got error %q", resp.Error)
	}
	if resp.Data.CardID == models.DemoCardID || resp.Data.CardID == "" {
		t.Fatalf("expected a real card id, got %q", resp.Data.CardID)
	}
	if s := resp.Data.SurfaceEmotion.Sentiment; s < -1 || s > 1 {
		t.Errorf("sentiment %v out of range", s)
	}
	if speech.gotVoice != "Sulafat" {
		t.Errorf("female-warm should resolve to Sulafat, got %q", speech.gotVoice)
	}

	if len(cards.created) != 1 {
		t.Fatalf("expected 1 persisted card, got %d", len(cards.created))
	}
	card := cards.created[0]
	if card.InputMode != models.InputModeText {
		t.Errorf("expected input mode text, got %q", card.InputMode)
	}
	if card.TextContent == nil || card.TextContent.Transcript != "I miss you" {
		t.Error("original message not carried as the transcript")
	}
	if card.UserID == nil || *card.UserID != "user-1" {
		t.Error("owner not carried onto the card")
	}
	if card.AudioURL == nil {
		t.Fatal("text card must have audio")
	}

	imageKey := "card-images/" + card.ID + ".png"
	audioKey := "card-audio/" + card.ID + ".wav"
	if _, ok := store.uploads[imageKey]; !ok {
		t.Errorf("image not uploaded at %s", imageKey)
	}
	wav, ok := store.uploads[audioKey]
	if !ok {
		t.Fatalf("audio not uploaded at %s", audioKey)
	}
	// 4 PCM bytes behind a 44-byte RIFF header
	if len(wav) != 48 {
		t.Errorf("expected a 48-byte WAV, got %d bytes", len(wav))
	}
	if string(wav[0:4]) != "RIFF" {
		t.Error("uploaded audio is not a WAV container")
	}

	if resp.Data.Audio.URL != "https://cdn.test/"+audioKey {
		t.Errorf("unexpected audio URL %q", resp.Data.Audio.URL)
	}
}

func TestResolveVoice(t *testing.T) {
	cases := map[string]string{
		"female-warm": "Sulafat",
		"female-firm": "Kore",
		"male-upbeat": "Puck",
		"male-calm":   "Enceladus",
		"robot":       "Sulafat",
		"":            "Sulafat",
	}
	for preset, want := range cases {
		if got := resolveVoice(preset); got != want {
			t.Errorf("resolveVoice(%q) = %q, want %q", preset, got, want)
		}
	}
}

func TestTextDemoModeServesLocaleBundle(t *testing.T) {
	p, an, speech, img, _, _ := newTextFixture()

	resp, status := p.Run(context.Background(), TextInput{Demo: true, Text: "hello", Locale: "ko"})

	if status != http.StatusOK || !resp.Success {
		t.Fatalf("expected a clean bundle, got status=%d success=%v", status, resp.Success)
	}
	if resp.Data.CardID != models.DemoCardID {
		t.Errorf("expected demo card id, got %q", resp.Data.CardID)
	}
	if !strings.Contains(resp.Data.Image.URL, "text-ko") {
		t.Errorf("ko locale should get a ko bundle, got %s", resp.Data.Image.URL)
	}
	if resp.Data.Audio.URL == "" {
		t.Error("text bundle must include audio")
	}
	if an.textCalls != 0 || speech.calls != 0 || img.calls != 0 {
		t.Error("demo mode must not touch any live capability")
	}
}

func TestTextWhitespaceOnlyInputServesBundle(t *testing.T) {
	p, an, speech, img, _, cards := newTextFixture()

	resp, status := p.Run(context.Background(), TextInput{Text: "   \n\t  ", Locale: "ko"})

	if status != http.StatusOK || !resp.Success {
		t.Fatalf("expected a clean bundle, got status=%d success=%v", status, resp.Success)
	}
	if resp.Data.CardID != models.DemoCardID {
		t.Errorf("expected demo card id, got %q", resp.Data.CardID)
	}
	if an.textCalls != 0 || speech.calls != 0 || img.calls != 0 || len(cards.created) != 0 {
		t.Error("whitespace-only input must not reach any live capability")
	}
}

func TestTextSpeechFailureDegradesToBundle(t *testing.T) {
	p, _, speech, _, _, cards := newTextFixture()
	speech.err = errors.New("speech backend over quota")

	resp, status := p.Run(context.Background(), TextInput{Text: "hello", Locale: "en"})

	if status != http.StatusOK {
		t.Fatalf("degraded run must stay 200, got %d", status)
	}
	if resp.Success {
		t.Error("degraded run must report success=false")
	}
	if !strings.Contains(resp.Error, "speech synthesis failed") {
		t.Errorf("expected the failing stage in the body, got %q", resp.Error)
	}
	if !strings.Contains(resp.Data.Image.URL, "text-en") {
		t.Errorf("en locale should get an en bundle, got %s", resp.Data.Image.URL)
	}
	if len(cards.created) != 0 {
		t.Error("a failed run must not persist a card")
	}
}

func TestTextImageFailureDegradesToBundle(t *testing.T) {
	p, _, _, img, _, _ := newTextFixture()
	img.err = errors.New("image generation returned no image data")

	resp, _ := p.Run(context.Background(), TextInput{Text: "hello", Locale: "ko"})

	if resp.Success {
		t.Error("degraded run must report success=false")
	}
	if !strings.Contains(resp.Error, "no image data") {
		t.Errorf("expected the root cause in the body, got %q", resp.Error)
	}
}
