package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestUpload(t *testing.T) {
	var gotMethod, gotPath, gotAuth, gotUpsert, gotContentType string
	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotUpsert = r.Header.Get("x-upsert")
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	s := New(server.URL, "service-key")
	err := s.Upload(context.Background(), "card-images", "card-1.png", []byte("png-bytes"), "image/png")
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	if gotMethod != "PUT" {
		t.Errorf("expected PUT, got %s", gotMethod)
	}
	if gotPath != "/storage/v1/object/card-images/card-1.png" {
		t.Errorf("unexpected path %s", gotPath)
	}
	if gotAuth != "Bearer service-key" {
		t.Errorf("unexpected auth header %q", gotAuth)
	}
	if gotUpsert != "true" {
		t.Errorf("expected x-upsert true, got %q", gotUpsert)
	}
	if gotContentType != "image/png" {
		t.Errorf("unexpected content type %q", gotContentType)
	}
	if string(gotBody) != "png-bytes" {
		t.Errorf("unexpected body %q", gotBody)
	}
}

func TestUploadErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"bucket not found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	s := New(server.URL, "service-key")
	err := s.Upload(context.Background(), "missing", "x.png", []byte("data"), "image/png")
	if err == nil {
		t.Fatal("expected an error for a 404 response")
	}
}

func TestPublicURL(t *testing.T) {
	s := New("https://project.supabase.co", "service-key")

	got := s.PublicURL("card-audio", "card-1.wav")
	want := "https://project.supabase.co/storage/v1/object/public/card-audio/card-1.wav"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
