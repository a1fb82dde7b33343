package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/Belphemur/ShowFinder/internal/apperrors"
	"github.com/Belphemur/ShowFinder/internal/models"
)

func TestShowSearchParser_Parse(t *testing.T) {
	body := `[
		{"score": 0.9, "show": {"id": 1, "name": "Batman", "summary": "<p>The caped crusader.</p>", "image": {"medium": "http://x/a.png", "original": "http://x/a-big.png"}}},
		{"score": 0.7, "show": {"id": 2, "name": "Batman Beyond", "summary": null, "image": null}},
		{"score": 0.5, "show": {"id": 3, "name": "The Batman"}},
		{"score": 0.4, "show": {"id": 4, "name": "Batwoman", "summary": "", "image": {"medium": "", "original": "http://x/d.png"}}}
	]`

	shows, err := NewShowSearchParser().Parse(strings.NewReader(body))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	expected := []models.ShowSummary{
		{ID: 1, Name: "Batman", Summary: "<p>The caped crusader.</p>", Image: "http://x/a.png"},
		{ID: 2, Name: "Batman Beyond", Summary: "", Image: models.PlaceholderImageURL},
		{ID: 3, Name: "The Batman", Summary: "", Image: models.PlaceholderImageURL},
		{ID: 4, Name: "Batwoman", Summary: "", Image: models.PlaceholderImageURL},
	}

	if len(shows) != len(expected) {
		t.Fatalf("Expected %d shows, got %d", len(expected), len(shows))
	}
	for i, want := range expected {
		if shows[i] != want {
			t.Errorf("Show %d: expected %+v, got %+v", i, want, shows[i])
		}
	}
}

func TestShowSearchParser_ImageFallbackKeepsOrder(t *testing.T) {
	body := `[
		{"show": {"id": 10, "name": "First", "image": null}},
		{"show": {"id": 11, "name": "Second", "image": {"medium": "http://x/a.png"}}}
	]`

	shows, err := NewShowSearchParser().Parse(strings.NewReader(body))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(shows) != 2 {
		t.Fatalf("Expected 2 shows, got %d", len(shows))
	}
	if shows[0].ID != 10 || shows[0].Image != models.PlaceholderImageURL {
		t.Errorf("Expected placeholder for first show, got %+v", shows[0])
	}
	if shows[1].ID != 11 || shows[1].Image != "http://x/a.png" {
		t.Errorf("Expected medium image for second show, got %+v", shows[1])
	}
}

func TestShowSearchParser_Empty(t *testing.T) {
	for _, body := range []string{"[]", "null"} {
		shows, err := NewShowSearchParser().Parse(strings.NewReader(body))
		if err != nil {
			t.Fatalf("Parse(%s) failed: %v", body, err)
		}
		if len(shows) != 0 {
			t.Errorf("Parse(%s): expected no shows, got %d", body, len(shows))
		}
	}
}

func TestShowSearchParser_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"invalid json", `[{"show":`, "decode search results"},
		{"object instead of array", `{"show": {"id": 1}}`, "decode search results"},
		{"missing show", `[{"score": 1}]`, "result 0: missing show"},
		{"missing id", `[{"show": {"id": 1, "name": "a"}}, {"show": {"name": "b"}}]`, "result 1: show missing id"},
		{"missing name", `[{"show": {"id": 7}}]`, "result 0: show 7 missing name"},
		{"wrong id type", `[{"show": {"id": "seven", "name": "a"}}]`, "decode search results"},
		{"trailing markup", `[{"show": {"id": 1, "name": "a"}}] <html>oops`, "decode search results"},
		{"second document", `[{"show": {"id": 1, "name": "a"}}] []`, "unexpected data after JSON value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shows, err := NewShowSearchParser().Parse(strings.NewReader(tt.body))
			if err == nil {
				t.Fatalf("Expected error, got %d shows", len(shows))
			}
			if !errors.Is(err, &apperrors.ErrMalformedResponse{}) {
				t.Errorf("Expected ErrMalformedResponse, got %T: %v", err, err)
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("Expected error to mention %q, got %v", tt.message, err)
			}
		})
	}
}
