package pipeline

import (
	"context"
	"math/rand"
	"sync"

	"github.com/sumsori/sumsori-api/internal/demo"
	"github.com/sumsori/sumsori-api/internal/models"
)

// Fakes for the pipeline's collaborators. Each records calls so tests can
// assert that demo mode never touches a live capability.

type fakeAnalysis struct {
	audioReply string
	textReply  string
	audioErr   error
	textErr    error
	audioCalls int
	textCalls  int
}

func (f *fakeAnalysis) AnalyzeAudio(ctx context.Context, prompt string, audio []byte, mimeType string) (string, error) {
	f.audioCalls++
	return f.audioReply, f.audioErr
}

func (f *fakeAnalysis) AnalyzeText(ctx context.Context, prompt, userTurn string) (string, error) {
	f.textCalls++
	return f.textReply, f.textErr
}

type fakeSpeech struct {
	pcm      []byte
	err      error
	calls    int
	gotVoice string
}

func (f *fakeSpeech) GenerateSpeech(ctx context.Context, instruction, voiceName string) ([]byte, error) {
	f.calls++
	f.gotVoice = voiceName
	return f.pcm, f.err
}

type fakeImage struct {
	data  []byte
	err   error
	calls int
}

func (f *fakeImage) GenerateImage(ctx context.Context, directive string) ([]byte, error) {
	f.calls++
	return f.data, f.err
}

type fakeStore struct {
	mu      sync.Mutex
	uploads map[string][]byte
	err     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{uploads: map[string][]byte{}}
}

func (f *fakeStore) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads[bucket+"/"+path] = data
	return nil
}

func (f *fakeStore) PublicURL(bucket, path string) string {
	return "https://cdn.test/" + bucket + "/" + path
}

type fakeCards struct {
	created []*models.Card
	err     error
}

func (f *fakeCards) CreateCard(ctx context.Context, card *models.Card) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, card)
	return nil
}

func testRegistry() *demo.Registry {
	return demo.NewRegistry(rand.New(rand.NewSource(1)))
}

// Valid model replies in the exact shapes the extractor accepts.

const voiceReply = "```json\n" + `{
  "voiceTone": {"emotion": "tiredness", "energy": 35, "pace": "slow", "stability": 42, "details": "sighs"},
  "textContent": {"emotion": "reassurance", "themes": ["daily life"], "keywords": ["fine"], "sentiment": 0.8, "transcript": "I'm fine, really"},
  "concordance": {"match": "low", "explanation": "words and voice disagree"},
  "coreEmotion": "melancholy",
  "summary": "A tired voice hiding behind reassuring words",
  "imagePrompt": {
    "format": "SQUARE 1:1", "character": "one small round white cat", "angle": "BACK VIEW",
    "style": "oil pastel", "scene": "bus stop at dusk", "catPose": "sitting still",
    "colorPalette": "muted grays", "lighting": "streetlamp glow", "forbidden": "NO text"
  }
}` + "\n```"

const textReply = "```json\n" + `{
  "surfaceEmotion": {"emotion": "longing", "themes": ["distance"], "keywords": ["miss"], "sentiment": -0.4},
  "hiddenEmotion": {"emotion": "love", "reasoning": "missing someone is wanting them near"},
  "concordance": {"match": "high", "explanation": "the words say exactly what the heart means"},
  "coreEmotion": "longing",
  "summary": "Three words that carry an ocean of distance",
  "ttsDirection": {"tone": "soft", "pace": "slow", "emotion": "longing", "voiceCharacter": "tender"},
  "imagePrompt": {
    "format": "SQUARE 1:1", "character": "one small round white cat", "angle": "BACK VIEW",
    "style": "oil pastel", "scene": "window at night", "catPose": "looking at the moon",
    "colorPalette": "deep blues", "lighting": "moonlight", "forbidden": "NO text"
  }
}` + "\n```"
