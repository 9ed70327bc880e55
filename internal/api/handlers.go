package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sumsori/sumsori-api/internal/auth"
	"github.com/sumsori/sumsori-api/internal/db"
	"github.com/sumsori/sumsori-api/internal/models"
	"github.com/sumsori/sumsori-api/internal/pipeline"
)

const (
	maxUploadSize    = 10 << 20 // audio recordings are short, 10MB is generous
	maxTextLength    = 1000
	maxMessageLength = 500
	defaultLocale    = "ko"
	listLimit        = 50
)

// VoiceRunner and TextRunner are the generation entry points. The pipeline
// decides the response body and status; handlers only shape the request.
type VoiceRunner interface {
	Run(ctx context.Context, in pipeline.VoiceInput) (*models.AnalyzeResponse, int)
}

type TextRunner interface {
	Run(ctx context.Context, in pipeline.TextInput) (*models.TextAnalyzeResponse, int)
}

// CardStore is the persistence surface the handlers need.
type CardStore interface {
	GetCardByID(ctx context.Context, id string) (*models.Card, error)
	UpdateCardFields(ctx context.Context, id string, message *string, showTranscript *bool) error
	ListCardsByUser(ctx context.Context, userID string, limit int) ([]models.CardSummary, error)
}

// ShareCache fronts the public share view. Nil disables caching.
type ShareCache interface {
	GetSharedCard(ctx context.Context, cardID string) (*models.SharedCard, error)
	SetSharedCard(ctx context.Context, card *models.SharedCard) error
	InvalidateCard(ctx context.Context, cardID string) error
}

// Moderator screens personal messages. Nil disables moderation.
type Moderator interface {
	Check(ctx context.Context, text string) (bool, error)
}

// SessionResolver maps a request to its caller, or nil for anonymous.
type SessionResolver interface {
	Resolve(r *http.Request) *auth.Session
}

type Handler struct {
	voice    VoiceRunner
	text     TextRunner
	cards    CardStore
	cache    ShareCache
	mod      Moderator
	sessions SessionResolver
}

func NewHandler(voice VoiceRunner, text TextRunner, cards CardStore, cache ShareCache, mod Moderator, sessions SessionResolver) *Handler {
	return &Handler{
		voice:    voice,
		text:     text,
		cards:    cards,
		cache:    cache,
		mod:      mod,
		sessions: sessions,
	}
}

// Analyze handles POST /v1/analyze (multipart: audio file + locale + demo flag).
// A missing or empty recording is not an error: the pipeline serves a demo
// bundle so the caller always gets a card.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	in := pipeline.VoiceInput{
		Locale:  normalizeLocale(r.FormValue("locale")),
		Demo:    r.FormValue("demo") == "true",
		Session: h.sessions.Resolve(r),
	}

	file, header, err := r.FormFile("audio")
	if err == nil {
		defer file.Close()
		audio, readErr := io.ReadAll(file)
		if readErr != nil {
			respondError(w, http.StatusBadRequest, "Failed to read audio upload")
			return
		}
		in.Audio = audio
		in.MimeType = header.Header.Get("Content-Type")
		if in.MimeType == "" {
			in.MimeType = "audio/webm"
		}
	}

	resp, status := h.voice.Run(r.Context(), in)
	respondJSON(w, status, resp)
}

type textAnalyzeRequest struct {
	Text   string `json:"text"`
	Locale string `json:"locale"`
	Voice  string `json:"voice"`
	Demo   bool   `json:"demo"`
}

// TextAnalyze handles POST /v1/text-analyze.
func (h *Handler) TextAnalyze(w http.ResponseWriter, r *http.Request) {
	var req textAnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if len(req.Text) > maxTextLength {
		respondError(w, http.StatusBadRequest, "Text is too long")
		return
	}

	resp, status := h.text.Run(r.Context(), pipeline.TextInput{
		Text:    req.Text,
		Locale:  normalizeLocale(req.Locale),
		Voice:   req.Voice,
		Demo:    req.Demo,
		Session: h.sessions.Resolve(r),
	})
	respondJSON(w, status, resp)
}

// UpdateCardMessage handles POST /v1/cards/message. It mutates the
// share-facing fields of an existing card: the personal message and the
// transcript visibility toggle.
func (h *Handler) UpdateCardMessage(w http.ResponseWriter, r *http.Request) {
	var req models.CardMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.CardID == "" {
		respondError(w, http.StatusBadRequest, "cardId is required")
		return
	}
	if req.CardID == models.DemoCardID {
		respondError(w, http.StatusBadRequest, "Demo cards cannot be modified")
		return
	}
	if req.Message == nil && req.ShowTranscript == nil {
		respondError(w, http.StatusBadRequest, "Nothing to update")
		return
	}
	if req.Message != nil && len(*req.Message) > maxMessageLength {
		respondError(w, http.StatusBadRequest, "Message is too long")
		return
	}

	if req.Message != nil && *req.Message != "" && h.mod != nil {
		flagged, err := h.mod.Check(r.Context(), *req.Message)
		if err != nil {
			// Moderation outage should not block the sender.
			log.Printf("[API] Moderation check failed for card %s: %v", req.CardID, err)
		} else if flagged {
			respondError(w, http.StatusBadRequest, "Message was rejected by moderation")
			return
		}
	}

	card, err := h.cards.GetCardByID(r.Context(), req.CardID)
	if err != nil {
		if errors.Is(err, db.ErrCardNotFound) {
			respondError(w, http.StatusNotFound, "Card not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to load card")
		return
	}

	// Cards created by a signed-in user are only mutable by that user.
	// Anonymous cards are mutable by anyone holding the id.
	if card.UserID != nil {
		session := h.sessions.Resolve(r)
		if session == nil || session.UserID != *card.UserID {
			respondError(w, http.StatusForbidden, "Not your card")
			return
		}
	}

	if err := h.cards.UpdateCardFields(r.Context(), req.CardID, req.Message, req.ShowTranscript); err != nil {
		if errors.Is(err, db.ErrCardNotFound) {
			respondError(w, http.StatusNotFound, "Card not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to update card")
		return
	}

	if h.cache != nil {
		if err := h.cache.InvalidateCard(r.Context(), req.CardID); err != nil {
			log.Printf("[API] Failed to invalidate cache for card %s: %v", req.CardID, err)
		}
	}

	respondJSON(w, http.StatusOK, models.CardMessageResponse{Success: true})
}

// ListMyCards handles GET /v1/cards. Anonymous callers get an empty list
// rather than an error, since cards can be created without signing in.
func (h *Handler) ListMyCards(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.Resolve(r)
	if session == nil {
		respondJSON(w, http.StatusOK, models.ListCardsResponse{Cards: []models.CardSummary{}})
		return
	}

	cards, err := h.cards.ListCardsByUser(r.Context(), session.UserID, listLimit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to list cards")
		return
	}

	respondJSON(w, http.StatusOK, models.ListCardsResponse{Cards: cards})
}

// GetSharedCard handles GET /v1/cards/{id} — the public share view.
func (h *Handler) GetSharedCard(w http.ResponseWriter, r *http.Request) {
	cardID := chi.URLParam(r, "id")

	if h.cache != nil {
		cached, err := h.cache.GetSharedCard(r.Context(), cardID)
		if err != nil {
			log.Printf("[API] Cache read failed for card %s: %v", cardID, err)
		} else if cached != nil {
			respondJSON(w, http.StatusOK, cached)
			return
		}
	}

	card, err := h.cards.GetCardByID(r.Context(), cardID)
	if err != nil {
		if errors.Is(err, db.ErrCardNotFound) {
			respondError(w, http.StatusNotFound, "Card not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to load card")
		return
	}

	view := card.PublicView()
	if h.cache != nil {
		if err := h.cache.SetSharedCard(r.Context(), &view); err != nil {
			log.Printf("[API] Cache write failed for card %s: %v", cardID, err)
		}
	}

	respondJSON(w, http.StatusOK, view)
}

// Health check
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func normalizeLocale(locale string) string {
	if locale == "en" {
		return "en"
	}
	return defaultLocale
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
