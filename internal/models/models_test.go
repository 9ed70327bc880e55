package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func sampleCard() *Card {
	msg := "thinking of you"
	audio := "https://cdn.test/card-audio/card-1.wav"
	return &Card{
		ID:              "card-1",
		InputMode:       InputModeVoice,
		TextContent:     &TextContent{Emotion: "reassurance", Transcript: "I'm fine, really"},
		Concordance:     Concordance{Match: MatchLow, Explanation: "mismatch"},
		CoreEmotion:     "melancholy",
		Summary:         "a private reading of the moment",
		ImageURL:        "https://cdn.test/card-images/card-1.png",
		AudioURL:        &audio,
		PersonalMessage: &msg,
		CreatedAt:       time.Now(),
	}
}

func TestPublicViewHidesSummary(t *testing.T) {
	view := sampleCard().PublicView()

	data, err := json.Marshal(view)
	if err != nil {
		t.Fatalf("failed to marshal view: %v", err)
	}
	if strings.Contains(string(data), "private reading") {
		t.Error("summary leaked into the public view")
	}
	if view.CoreEmotion != "melancholy" {
		t.Errorf("expected core emotion on the view, got %q", view.CoreEmotion)
	}
	if view.PersonalMessage == nil || *view.PersonalMessage != "thinking of you" {
		t.Error("personal message missing from the view")
	}
}

func TestPublicViewTranscriptOptIn(t *testing.T) {
	card := sampleCard()

	if view := card.PublicView(); view.Transcript != nil {
		t.Error("transcript must be hidden by default")
	}

	card.ShowTranscript = true
	view := card.PublicView()
	if view.Transcript == nil || *view.Transcript != "I'm fine, really" {
		t.Error("opted-in transcript missing")
	}
}

func TestPublicViewTranscriptRequiresContent(t *testing.T) {
	card := sampleCard()
	card.ShowTranscript = true
	card.TextContent = nil

	if view := card.PublicView(); view.Transcript != nil {
		t.Error("a card without text content has no transcript to show")
	}
}
