package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sumsori/sumsori-api/internal/models"
)

// ErrCardNotFound is returned by GetCardByID for unknown ids.
var ErrCardNotFound = errors.New("card not found")

// CreateCard inserts a new card row with the analysis payload denormalized
// into jsonb columns. The id is generated by the caller, not here.
func (db *DB) CreateCard(ctx context.Context, card *models.Card) error {
	query := `
		INSERT INTO cards (
			id, user_id, nickname, input_mode,
			voice_tone, text_content, surface_emotion, hidden_emotion,
			concordance, core_emotion, summary,
			image_url, audio_url, image_prompt, show_transcript
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING created_at
	`

	voiceTone, err := jsonbOrNull(card.VoiceTone)
	if err != nil {
		return err
	}
	textContent, err := jsonbOrNull(card.TextContent)
	if err != nil {
		return err
	}
	surfaceEmotion, err := jsonbOrNull(card.SurfaceEmotion)
	if err != nil {
		return err
	}
	hiddenEmotion, err := jsonbOrNull(card.HiddenEmotion)
	if err != nil {
		return err
	}
	concordance, err := json.Marshal(card.Concordance)
	if err != nil {
		return fmt.Errorf("failed to marshal concordance: %w", err)
	}
	imagePrompt, err := jsonbOrNull(card.ImagePrompt)
	if err != nil {
		return err
	}

	return db.QueryRowContext(
		ctx, query,
		card.ID, card.UserID, card.Nickname, card.InputMode,
		voiceTone, textContent, surfaceEmotion, hiddenEmotion,
		concordance, card.CoreEmotion, card.Summary,
		card.ImageURL, card.AudioURL, imagePrompt, card.ShowTranscript,
	).Scan(&card.CreatedAt)
}

// GetCardByID returns the full card row. Callers that expose the card
// publicly must project it via Card.PublicView.
func (db *DB) GetCardByID(ctx context.Context, id string) (*models.Card, error) {
	query := `
		SELECT
			id, user_id, nickname, input_mode,
			voice_tone, text_content, surface_emotion, hidden_emotion,
			concordance, core_emotion, summary,
			image_url, audio_url, image_prompt,
			personal_message, show_transcript, created_at
		FROM cards
		WHERE id = $1
	`

	card := &models.Card{}
	var voiceTone, textContent, surfaceEmotion, hiddenEmotion, concordance, imagePrompt []byte

	err := db.QueryRowContext(ctx, query, id).Scan(
		&card.ID, &card.UserID, &card.Nickname, &card.InputMode,
		&voiceTone, &textContent, &surfaceEmotion, &hiddenEmotion,
		&concordance, &card.CoreEmotion, &card.Summary,
		&card.ImageURL, &card.AudioURL, &imagePrompt,
		&card.PersonalMessage, &card.ShowTranscript, &card.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrCardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card: %w", err)
	}

	if err := unmarshalInto(voiceTone, &card.VoiceTone); err != nil {
		return nil, err
	}
	if err := unmarshalInto(textContent, &card.TextContent); err != nil {
		return nil, err
	}
	if err := unmarshalInto(surfaceEmotion, &card.SurfaceEmotion); err != nil {
		return nil, err
	}
	if err := unmarshalInto(hiddenEmotion, &card.HiddenEmotion); err != nil {
		return nil, err
	}
	if len(concordance) > 0 {
		if err := json.Unmarshal(concordance, &card.Concordance); err != nil {
			return nil, fmt.Errorf("failed to unmarshal concordance: %w", err)
		}
	}
	if err := unmarshalInto(imagePrompt, &card.ImagePrompt); err != nil {
		return nil, err
	}

	return card, nil
}

// UpdateCardFields applies only the supplied subset of mutable card fields.
// Absent fields are left untouched; applying the same update twice is a no-op.
func (db *DB) UpdateCardFields(ctx context.Context, id string, message *string, showTranscript *bool) error {
	query, args := buildCardUpdate(id, message, showTranscript)
	if query == "" {
		return nil
	}

	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update card: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrCardNotFound
	}

	return nil
}

// buildCardUpdate assembles the partial UPDATE for the mutable fields.
// Returns an empty query when no field was supplied.
func buildCardUpdate(id string, message *string, showTranscript *bool) (string, []interface{}) {
	set := ""
	args := []interface{}{}

	if message != nil {
		args = append(args, *message)
		set += fmt.Sprintf("personal_message = $%d", len(args))
	}
	if showTranscript != nil {
		if set != "" {
			set += ", "
		}
		args = append(args, *showTranscript)
		set += fmt.Sprintf("show_transcript = $%d", len(args))
	}

	if set == "" {
		return "", nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE cards SET %s WHERE id = $%d", set, len(args))
	return query, args
}

// ListCardsByUser returns the user's cards newest first, capped at limit.
// A user with no cards gets an empty list, not an error.
func (db *DB) ListCardsByUser(ctx context.Context, userID string, limit int) ([]models.CardSummary, error) {
	query := `
		SELECT id, image_url, core_emotion, created_at
		FROM cards
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()

	cards := []models.CardSummary{}
	for rows.Next() {
		var c models.CardSummary
		if err := rows.Scan(&c.ID, &c.ImageURL, &c.CoreEmotion, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, c)
	}

	return cards, rows.Err()
}

// jsonbOrNull marshals a nillable struct pointer for a jsonb column,
// mapping a nil pointer to SQL NULL rather than the JSON literal null.
func jsonbOrNull[T any](p *T) (interface{}, error) {
	if p == nil {
		return nil, nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal jsonb value: %w", err)
	}
	return data, nil
}

// unmarshalInto fills a jsonb target pointer, leaving it nil for NULL columns.
func unmarshalInto[T any](data []byte, target **T) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to unmarshal jsonb column: %w", err)
	}
	return nil
}
