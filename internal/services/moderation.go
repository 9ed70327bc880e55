package services

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// ---------------------------------------------------------------------------
// Moderation Service
// Personal messages are sender-supplied free text that ends up on a public
// share page, so they pass through the OpenAI moderation endpoint before
// being saved. Optional — when no key is configured the check is skipped.
// ---------------------------------------------------------------------------

type ModerationService struct {
	client *openai.Client
}

func NewModerationService(apiKey string) *ModerationService {
	return &ModerationService{
		client: openai.NewClient(apiKey),
	}
}

// Check returns true when the text is flagged by the moderation model.
func (s *ModerationService) Check(ctx context.Context, text string) (bool, error) {
	resp, err := s.client.Moderations(ctx, openai.ModerationRequest{
		Input: text,
	})
	if err != nil {
		return false, fmt.Errorf("moderation request failed: %w", err)
	}

	for _, result := range resp.Results {
		if result.Flagged {
			return true, nil
		}
	}
	return false, nil
}
