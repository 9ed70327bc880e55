// Package storage is a thin client for Supabase Storage's REST API.
// Uploads are single-attempt: a failed upload routes the whole pipeline run
// to fallback, so retrying here would only burn the wall-clock budget.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const uploadTimeout = 60 * time.Second

type Storage struct {
	url        string
	serviceKey string
	client     *http.Client
}

func New(url, serviceKey string) *Storage {
	return &Storage{
		url:        url,
		serviceKey: serviceKey,
		client: &http.Client{
			Timeout: uploadTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// Upload stores a named blob under a bucket.
// Uses PUT with x-upsert so re-running a path is not an error.
func (s *Storage) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error {
	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.url, bucket, path)

	req, err := http.NewRequestWithContext(ctx, "PUT", url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Content-Length", fmt.Sprintf("%d", len(data)))
	req.Header.Set("x-upsert", "true")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("upload failed with status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	return nil
}

// PublicURL returns the public URL for a stored object.
func (s *Storage) PublicURL(bucket, path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.url, bucket, path)
}

// truncate limits a string to maxLen characters for log output
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
