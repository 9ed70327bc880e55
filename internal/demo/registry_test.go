package demo

import (
	"math/rand"
	"strings"
	"testing"
)

func TestVoiceSelectionDeterministicWithSeed(t *testing.T) {
	a := NewRegistry(rand.New(rand.NewSource(7)))
	b := NewRegistry(rand.New(rand.NewSource(7)))

	for i := 0; i < 10; i++ {
		ba, bb := a.Voice("ko"), b.Voice("ko")
		if ba.ImageURL != bb.ImageURL {
			t.Fatalf("iteration %d: same seed diverged (%s vs %s)", i, ba.ImageURL, bb.ImageURL)
		}
	}
}

func TestVoiceLocalePartition(t *testing.T) {
	r := NewRegistry(rand.New(rand.NewSource(1)))

	for i := 0; i < 20; i++ {
		if b := r.Voice("en"); !strings.Contains(b.ImageURL, "sample-en") {
			t.Fatalf("en partition served %s", b.ImageURL)
		}
	}
	for i := 0; i < 20; i++ {
		if b := r.Voice("ko"); strings.Contains(b.ImageURL, "sample-en") {
			t.Fatalf("ko partition served %s", b.ImageURL)
		}
	}
}

func TestUnknownLocaleFallsBackToKorean(t *testing.T) {
	r := NewRegistry(rand.New(rand.NewSource(1)))

	for i := 0; i < 20; i++ {
		if b := r.Text("fr"); !strings.Contains(b.ImageURL, "text-ko") {
			t.Fatalf("unknown locale served %s", b.ImageURL)
		}
	}
}

func TestTextBundlesCarryAudio(t *testing.T) {
	r := NewRegistry(rand.New(rand.NewSource(1)))

	for _, locale := range []string{"ko", "en"} {
		b := r.Text(locale)
		if b.AudioURL == "" {
			t.Errorf("%s text bundle has no audio", locale)
		}
		if b.Analysis.CoreEmotion == "" || b.Analysis.Summary == "" {
			t.Errorf("%s text bundle analysis is incomplete", locale)
		}
	}
}

func TestBundleAnalysesAreComplete(t *testing.T) {
	for _, pool := range [][]Bundle{voiceBundlesKo, voiceBundlesEn} {
		for i, b := range pool {
			if b.ImageURL == "" {
				t.Errorf("bundle %d missing image", i)
			}
			if b.Analysis.TextContent.Transcript == "" {
				t.Errorf("bundle %d missing transcript", i)
			}
			if b.Analysis.ImagePrompt.Scene == "" || b.Analysis.ImagePrompt.Forbidden == "" {
				t.Errorf("bundle %d image prompt incomplete", i)
			}
		}
	}
}
