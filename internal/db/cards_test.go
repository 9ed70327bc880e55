package db

import (
	"testing"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestBuildCardUpdateMessageOnly(t *testing.T) {
	query, args := buildCardUpdate("card-1", strPtr("for you"), nil)

	want := "UPDATE cards SET personal_message = $1 WHERE id = $2"
	if query != want {
		t.Errorf("expected %q, got %q", want, query)
	}
	if len(args) != 2 || args[0] != "for you" || args[1] != "card-1" {
		t.Errorf("unexpected args %v", args)
	}
}

func TestBuildCardUpdateTranscriptOnly(t *testing.T) {
	query, args := buildCardUpdate("card-1", nil, boolPtr(true))

	want := "UPDATE cards SET show_transcript = $1 WHERE id = $2"
	if query != want {
		t.Errorf("expected %q, got %q", want, query)
	}
	if len(args) != 2 || args[0] != true || args[1] != "card-1" {
		t.Errorf("unexpected args %v", args)
	}
}

func TestBuildCardUpdateBothFields(t *testing.T) {
	query, args := buildCardUpdate("card-1", strPtr(""), boolPtr(false))

	want := "UPDATE cards SET personal_message = $1, show_transcript = $2 WHERE id = $3"
	if query != want {
		t.Errorf("expected %q, got %q", want, query)
	}
	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %d", len(args))
	}
	// An empty message is a deliberate clear, not a no-op.
	if args[0] != "" || args[1] != false || args[2] != "card-1" {
		t.Errorf("unexpected args %v", args)
	}
}

func TestBuildCardUpdateNothingSupplied(t *testing.T) {
	query, args := buildCardUpdate("card-1", nil, nil)
	if query != "" || args != nil {
		t.Errorf("expected an empty update, got %q with %v", query, args)
	}
}
