// Package demo holds the fallback bundle registry: a fixed, locale-partitioned
// pool of pre-computed analysis + artifact sets. A bundle is substituted
// whenever live generation is skipped (demo mode, empty input) or fails, so
// the user never sees a dead end.
package demo

import (
	"math/rand"
	"sync"

	"github.com/sumsori/sumsori-api/internal/models"
)

// Bundle is a pre-computed voice-mode result.
type Bundle struct {
	Analysis models.EmotionAnalysis
	ImageURL string
}

// TextBundle is a pre-computed text-mode result. Demo mode performs no live
// synthesis, so the audio is pre-rendered too.
type TextBundle struct {
	Analysis models.TextEmotionAnalysis
	ImageURL string
	AudioURL string
}

// Registry selects bundles uniformly at random within a locale partition.
// The random source is injected so tests can pin the selection. Locales
// without a partition fall back to Korean, the base locale.
type Registry struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRegistry(rng *rand.Rand) *Registry {
	return &Registry{rng: rng}
}

func (r *Registry) intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}

// Voice returns a random voice-mode bundle for the locale.
func (r *Registry) Voice(locale string) Bundle {
	pool := voiceBundlesKo
	if locale == "en" {
		pool = voiceBundlesEn
	}
	return pool[r.intn(len(pool))]
}

// Text returns a random text-mode bundle for the locale.
func (r *Registry) Text(locale string) TextBundle {
	pool := textBundlesKo
	if locale == "en" {
		pool = textBundlesEn
	}
	return pool[r.intn(len(pool))]
}

// ---------------------------------------------------------------------------
// Fixtures. Hand-authored to cover distinct analytical patterns — some with
// deliberately low voice/text concordance, some high — so demo mode shows the
// full range of what the pipeline produces.
// ---------------------------------------------------------------------------

var voiceBundlesKo = []Bundle{
	{
		Analysis: models.EmotionAnalysis{
			VoiceTone: models.VoiceTone{
				Emotion:   "피로감",
				Energy:    35,
				Pace:      models.PaceSlow,
				Stability: 42,
				Details:   "잦은 한숨, 문장 끝 처짐, 낮은 에너지",
			},
			TextContent: models.TextContent{
				Emotion:    "괜찮음",
				Themes:     []string{"일상", "안부"},
				Keywords:   []string{"괜찮아", "잘 지내"},
				Sentiment:  0.8,
				Transcript: "아 그냥 괜찮아 잘 지내고 있어...",
			},
			Concordance: models.Concordance{
				Match:       models.MatchLow,
				Explanation: "말은 괜찮다고 하지만 목소리에서는 깊은 피로가 느껴진다",
			},
			CoreEmotion: "서글픔",
			Summary:     "괜찮다는 말 뒤에 숨어 있는, 말하지 못한 피로의 그림자",
			ImagePrompt: models.ImagePrompt{
				Format:       "SQUARE 1:1, fills entire canvas",
				Character:    "one small round white cat",
				Angle:        "THREE-QUARTER BACK VIEW",
				Style:        "oil pastel and crayon on thick textured paper, lineless",
				Scene:        "empty bus stop at dusk",
				CatPose:      "sitting still looking away",
				ColorPalette: "muted grays and beige with hints of dusty blue",
				Lighting:     "single streetlamp glow",
				Forbidden:    "NO text, NO words, NO human faces",
			},
		},
		ImageURL: "/demo/sample-1.png",
	},
	{
		Analysis: models.EmotionAnalysis{
			VoiceTone: models.VoiceTone{
				Emotion:   "떨림",
				Energy:    55,
				Pace:      models.PaceSlow,
				Stability: 30,
				Details:   "목소리 떨림, 중간중간 멈춤, 감정 억누르는 호흡",
			},
			TextContent: models.TextContent{
				Emotion:    "고마움",
				Themes:     []string{"가족", "감사"},
				Keywords:   []string{"엄마", "고마워", "미안해"},
				Sentiment:  0.6,
				Transcript: "엄마... 항상 고마웠어. 말로 잘 못했는데...",
			},
			Concordance: models.Concordance{
				Match:       models.MatchHigh,
				Explanation: "말과 목소리 모두 깊은 감정을 담고 있다",
			},
			CoreEmotion: "울컥함",
			Summary:     "차마 꺼내지 못했던 고마움이, 떨리는 목소리로 흘러나오는 순간",
			ImagePrompt: models.ImagePrompt{
				Format:       "SQUARE 1:1, fills entire canvas",
				Character:    "one small round white cat",
				Angle:        "BEHIND VIEW",
				Style:        "oil pastel and crayon on thick textured paper, lineless",
				Scene:        "moonlit balcony",
				CatPose:      "looking up at sky",
				ColorPalette: "warm peach and amber with gold highlights",
				Lighting:     "soft moonlight",
				Forbidden:    "NO text, NO words, NO human faces",
			},
		},
		ImageURL: "/demo/sample-2.png",
	},
}

var voiceBundlesEn = []Bundle{
	{
		// Cheerful voice saying lonely content — low concordance showcase.
		Analysis: models.EmotionAnalysis{
			VoiceTone: models.VoiceTone{
				Emotion:   "forced cheerfulness",
				Energy:    78,
				Pace:      models.PaceFast,
				Stability: 65,
				Details:   "bright upbeat delivery, quick phrasing, slightly strained emphasis on reassuring words",
			},
			TextContent: models.TextContent{
				Emotion:    "loneliness",
				Themes:     []string{"living alone", "self-reassurance"},
				Keywords:   []string{"totally fine", "routines", "really great"},
				Sentiment:  0.3,
				Transcript: "Oh it's totally fine, honestly! I mean, who needs someone to come home to, right? I've got my coffee and my playlist and my little routines. It's great actually. I'm doing really great. Yeah. Really great.",
			},
			Concordance: models.Concordance{
				Match:       models.MatchLow,
				Explanation: "The upbeat voice insists everything is great while the words circle around an empty apartment.",
			},
			CoreEmotion: "hollowness",
			Summary:     "A bright voice fills the silence of a room no one else comes home to.",
			ImagePrompt: models.ImagePrompt{
				Format:       "SQUARE 1:1, fills entire canvas edge to edge, NO margins/borders/vignette",
				Character:    "one small, round, simple white cat (NOT human-like, NOT realistic cat)",
				Angle:        "THREE-QUARTER BACK VIEW only (hint of one eye OK, never fully front-facing)",
				Style:        "oil pastel and crayon on thick textured paper, lineless, children's picture book",
				Scene:        "convenience store glow at night",
				CatPose:      "sitting with tail wrapped around body",
				ColorPalette: "muted grays/beige",
				Lighting:     "neon convenience store glow",
				Forbidden:    "NO text, NO words, NO letters, NO human faces, NO other animals",
			},
		},
		ImageURL: "/demo/sample-en-01.png",
	},
	{
		// Calm flat voice with resentful words — low concordance showcase.
		Analysis: models.EmotionAnalysis{
			VoiceTone: models.VoiceTone{
				Emotion:   "flatness",
				Energy:    30,
				Pace:      models.PaceSlow,
				Stability: 80,
				Details:   "even measured delivery, long pauses, no pitch variation even on charged words",
			},
			TextContent: models.TextContent{
				Emotion:    "resentment",
				Themes:     []string{"abandonment", "unreciprocated effort"},
				Keywords:   []string{"give everything", "wasn't enough", "walk away"},
				Sentiment:  -0.7,
				Transcript: "I just think it's interesting, you know, how you can give everything you have to someone, every single day for years, and they just... decide it wasn't enough. They just walk away like none of it mattered. But hey, that's life I guess.",
			},
			Concordance: models.Concordance{
				Match:       models.MatchLow,
				Explanation: "The calm detached voice is holding back words that burn with being wronged.",
			},
			CoreEmotion: "resentment",
			Summary:     "A steady voice lays out its hurt like evidence, too tired to raise itself in anger.",
			ImagePrompt: models.ImagePrompt{
				Format:       "SQUARE 1:1, fills entire canvas edge to edge, NO margins/borders/vignette",
				Character:    "one small, round, simple white cat (NOT human-like, NOT realistic cat)",
				Angle:        "BEHIND or THREE-QUARTER BACK VIEW only (hint of one eye OK, never fully front-facing)",
				Style:        "oil pastel and crayon on thick textured paper, lineless, children's picture book",
				Scene:        "bridge over quiet river",
				CatPose:      "sitting still looking away",
				ColorPalette: "deep indigo/purple",
				Lighting:     "diffused overcast",
				Forbidden:    "NO text, NO words, NO letters, NO human faces, NO other animals",
			},
		},
		ImageURL: "/demo/sample-en-02.png",
	},
}

var textBundlesKo = []TextBundle{
	{
		Analysis: models.TextEmotionAnalysis{
			SurfaceEmotion: models.SurfaceEmotion{
				Emotion:   "안심",
				Themes:    []string{"자기 위안", "일상", "괜찮음"},
				Keywords:  []string{"괜찮아", "잘 지내", "밥", "진짜"},
				Sentiment: 0.7,
			},
			HiddenEmotion: models.HiddenEmotion{
				Emotion:   "외로움",
				Reasoning: "\"진짜\"와 \"정말\"을 반복하며 자신을 납득시키려는 패턴에서 실제로는 괜찮지 않음이 드러남.",
			},
			Concordance: models.Concordance{
				Match:       models.MatchLow,
				Explanation: "표면은 괜찮다고 강조하지만, 반복과 과장이 오히려 외로움을 드러내고 있다.",
			},
			CoreEmotion: "서글픔",
			Summary:     "애써 괜찮다고 쓰는 글자 사이로, 홀로 감내하는 쓸쓸함이 배어 나온다.",
			TTSDirection: models.TTSDirection{
				Tone:           "떨리는",
				Pace:           "느리게",
				Emotion:        "서글픔",
				VoiceCharacter: "조용히 울먹이는",
			},
			ImagePrompt: models.ImagePrompt{
				Format:       "SQUARE 1:1, fills entire canvas edge to edge, NO margins/borders/vignette",
				Character:    "one small, round, simple white cat (NOT human-like, NOT realistic cat)",
				Angle:        "THREE-QUARTER BACK VIEW only (hint of one eye OK, never fully front-facing)",
				Style:        "oil pastel and crayon on thick textured paper, lineless, children's picture book",
				Scene:        "cafe corner by foggy window",
				CatPose:      "sitting with tail wrapped around body",
				ColorPalette: "cool blues/lavender",
				Lighting:     "warm interior lamp",
				Forbidden:    "NO text, NO words, NO letters, NO human faces, NO other animals",
			},
		},
		ImageURL: "/demo/text-ko-01.png",
		AudioURL: "/demo/text-ko-01.wav",
	},
	{
		Analysis: models.TextEmotionAnalysis{
			SurfaceEmotion: models.SurfaceEmotion{
				Emotion:   "그리움",
				Themes:    []string{"모녀 관계", "후회", "보고 싶음"},
				Keywords:  []string{"엄마", "보고 싶어", "잔소리", "미안"},
				Sentiment: -0.3,
			},
			HiddenEmotion: models.HiddenEmotion{
				Emotion:   "미안함",
				Reasoning: "잔소리만 했다는 자책이 그리움 뒤에 숨어있으며, 더 잘하지 못한 것에 대한 후회가 깔려있다.",
			},
			Concordance: models.Concordance{
				Match:       models.MatchHigh,
				Explanation: "그리움을 직접적으로 표현하면서 동시에 후회의 마음도 솔직하게 드러내고 있어 표면과 이면이 잘 맞닿아 있다.",
			},
			CoreEmotion: "그리움",
			Summary:     "잔소리하던 딸의 마음 한켠에, 엄마의 빈자리가 아려온다.",
			TTSDirection: models.TTSDirection{
				Tone:           "차분한",
				Pace:           "느리게",
				Emotion:        "그리움",
				VoiceCharacter: "담담하지만 울먹이는",
			},
			ImagePrompt: models.ImagePrompt{
				Format:       "SQUARE 1:1, fills entire canvas edge to edge, NO margins/borders/vignette",
				Character:    "one small, round, simple white cat (NOT human-like, NOT realistic cat)",
				Angle:        "BEHIND or THREE-QUARTER BACK VIEW only (hint of one eye OK, never fully front-facing)",
				Style:        "oil pastel and crayon on thick textured paper, lineless, children's picture book",
				Scene:        "empty bus stop at dusk",
				CatPose:      "sitting still looking away",
				ColorPalette: "warm peach/amber/gold",
				Lighting:     "twilight gradient sky",
				Forbidden:    "NO text, NO words, NO letters, NO human faces, NO other animals",
			},
		},
		ImageURL: "/demo/text-ko-02.png",
		AudioURL: "/demo/text-ko-02.wav",
	},
	{
		Analysis: models.TextEmotionAnalysis{
			SurfaceEmotion: models.SurfaceEmotion{
				Emotion:   "분노",
				Themes:    []string{"배신감", "서운함", "원망"},
				Keywords:  []string{"너무하다", "어떻게", "밉다"},
				Sentiment: -0.9,
			},
			HiddenEmotion: models.HiddenEmotion{
				Emotion:   "서운함",
				Reasoning: "강한 부정의 말 아래에는 기대했던 사람에게 받은 깊은 상처가 있다.",
			},
			Concordance: models.Concordance{
				Match:       models.MatchMedium,
				Explanation: "표면의 분노 아래 서운함이 있지만, 말의 강도가 높아 표면의 마음도 진실의 일부이다.",
			},
			CoreEmotion: "억울함",
			Summary:     "미움의 말들 사이로 스며드는 억울함, 미워할수록 더 아픈 마음.",
			TTSDirection: models.TTSDirection{
				Tone:           "힘없는",
				Pace:           "느리게",
				Emotion:        "억울함",
				VoiceCharacter: "지쳐서 힘없이 토해내는",
			},
			ImagePrompt: models.ImagePrompt{
				Format:       "SQUARE 1:1, fills entire canvas edge to edge, NO margins/borders/vignette",
				Character:    "one small, round, simple white cat",
				Angle:        "THREE-QUARTER BACK VIEW only (hint of one eye OK, never fully front-facing)",
				Style:        "oil pastel and crayon on thick textured paper, lineless, children's picture book",
				Scene:        "rainy alley with puddles",
				CatPose:      "huddled against wall",
				ColorPalette: "deep indigo/purple",
				Lighting:     "single streetlamp glow",
				Forbidden:    "NO text, NO words, NO letters, NO human faces, NO other animals",
			},
		},
		ImageURL: "/demo/text-ko-03.png",
		AudioURL: "/demo/text-ko-03.wav",
	},
}

var textBundlesEn = []TextBundle{
	{
		Analysis: models.TextEmotionAnalysis{
			SurfaceEmotion: models.SurfaceEmotion{
				Emotion:   "contentment",
				Themes:    []string{"self-sufficiency", "denial", "routine"},
				Keywords:  []string{"fine", "great", "coffee", "playlist", "routines"},
				Sentiment: 0.8,
			},
			HiddenEmotion: models.HiddenEmotion{
				Emotion:   "loneliness",
				Reasoning: "The excessive repetition of \"really great\" and \"totally fine\" reveals an attempt to convince oneself, masking an underlying loneliness.",
			},
			Concordance: models.Concordance{
				Match:       models.MatchLow,
				Explanation: "The words project strong self-sufficiency, but the over-insistence betrays a yearning for connection.",
			},
			CoreEmotion: "wistfulness",
			Summary:     "Behind the repeated assurances of being fine, a quiet heart yearns for the warmth of connection.",
			TTSDirection: models.TTSDirection{
				Tone:           "strained cheerful",
				Pace:           "normal",
				Emotion:        "wistfulness",
				VoiceCharacter: "forced brightness masking sadness",
			},
			ImagePrompt: models.ImagePrompt{
				Format:       "SQUARE 1:1, fills entire canvas edge to edge, NO margins/borders/vignette",
				Character:    "one small, round, simple white cat (NOT human-like, NOT realistic cat)",
				Angle:        "BEHIND or THREE-QUARTER BACK VIEW only (hint of one eye OK, never fully front-facing)",
				Style:        "oil pastel and crayon on thick textured paper, lineless, children's picture book",
				Scene:        "beach shore at sunset",
				CatPose:      "sitting still looking away",
				ColorPalette: "warm peach/amber/gold",
				Lighting:     "twilight gradient sky",
				Forbidden:    "NO text, NO words, NO letters, NO human faces, NO other animals",
			},
		},
		ImageURL: "/demo/text-en-01.png",
		AudioURL: "/demo/text-en-01.wav",
	},
	{
		Analysis: models.TextEmotionAnalysis{
			SurfaceEmotion: models.SurfaceEmotion{
				Emotion:   "anger",
				Themes:    []string{"denial", "permission", "resignation"},
				Keywords:  []string{"mad", "fine", "completely", "always do"},
				Sentiment: 0.1,
			},
			HiddenEmotion: models.HiddenEmotion{
				Emotion:   "hurt",
				Reasoning: "The sarcastic repetition of \"fine\" and \"you always do\" reveals deep disappointment and a feeling of being consistently let down.",
			},
			Concordance: models.Concordance{
				Match:       models.MatchLow,
				Explanation: "The words claim everything is fine, but the pattern of sarcastic repetition clearly conveys suppressed frustration and hurt.",
			},
			CoreEmotion: "resignation",
			Summary:     "A weary heart wraps its hurt in layers of \"fine\", accepting a familiar defeat with quiet exhaustion.",
			TTSDirection: models.TTSDirection{
				Tone:           "flat",
				Pace:           "normal",
				Emotion:        "resignation",
				VoiceCharacter: "weary sarcasm masking deep hurt",
			},
			ImagePrompt: models.ImagePrompt{
				Format:       "SQUARE 1:1, fills entire canvas edge to edge, NO margins/borders/vignette",
				Character:    "one small, round, simple white cat (NOT human-like, NOT realistic cat)",
				Angle:        "THREE-QUARTER BACK VIEW only (hint of one eye OK, never fully front-facing)",
				Style:        "oil pastel and crayon on thick textured paper, lineless, children's picture book",
				Scene:        "train platform alone",
				CatPose:      "lying flat",
				ColorPalette: "muted grays/beige",
				Lighting:     "diffused overcast",
				Forbidden:    "NO text, NO words, NO letters, NO human faces, NO other animals",
			},
		},
		ImageURL: "/demo/text-en-02.png",
		AudioURL: "/demo/text-en-02.wav",
	},
	{
		Analysis: models.TextEmotionAnalysis{
			SurfaceEmotion: models.SurfaceEmotion{
				Emotion:   "appreciation",
				Themes:    []string{"parental wisdom", "maturation", "gratitude"},
				Keywords:  []string{"Dad", "understand", "Saturday mornings", "Thank you"},
				Sentiment: 0.9,
			},
			HiddenEmotion: models.HiddenEmotion{
				Emotion:   "tenderness",
				Reasoning: "Beyond the stated gratitude lies a deep tenderness — realizing the love that was always there but never recognized until now.",
			},
			Concordance: models.Concordance{
				Match:       models.MatchHigh,
				Explanation: "Both surface and hidden emotions align — the explicit gratitude is genuine and runs deep, though enriched by unspoken tenderness.",
			},
			CoreEmotion: "gratitude",
			Summary:     "A heart finally understands that every seemingly ordinary moment was an act of quiet, steadfast love.",
			TTSDirection: models.TTSDirection{
				Tone:           "warm",
				Pace:           "slow",
				Emotion:        "gratitude",
				VoiceCharacter: "sincere and reflective",
			},
			ImagePrompt: models.ImagePrompt{
				Format:       "SQUARE 1:1, fills entire canvas edge to edge, NO margins/borders/vignette",
				Character:    "one small, round, simple white cat (NOT human-like, NOT realistic cat)",
				Angle:        "THREE-QUARTER BACK VIEW only (hint of one eye OK, never fully front-facing)",
				Style:        "oil pastel and crayon on thick textured paper, lineless, children's picture book",
				Scene:        "beach shore at sunset",
				CatPose:      "looking up at sky",
				ColorPalette: "warm peach/amber/gold",
				Lighting:     "twilight gradient sky",
				Forbidden:    "NO text, NO words, NO letters, NO human faces, NO other animals",
			},
		},
		ImageURL: "/demo/text-en-03.png",
		AudioURL: "/demo/text-en-03.wav",
	},
}
