package translate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNLLBCode(t *testing.T) {
	tests := []struct {
		lang string
		want string
	}{
		{"en", "eng_Latn"},
		{"hi", "hin_Deva"},
		{"es", "spa_Latn"},
		{"unknown", "eng_Latn"},
		{"", "eng_Latn"},
	}

	for _, tt := range tests {
		if got := NLLBCode(tt.lang); got != tt.want {
			t.Errorf("NLLBCode(%q) = %q, want %q", tt.lang, got, tt.want)
		}
	}
}

func TestTranslate_Success(t *testing.T) {
	var got Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(Response{TranslatedText: "बर्फ लगाएँ"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	out, err := client.Translate(context.Background(), "Apply ice", "en", "hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out != "बर्फ लगाएँ" {
		t.Errorf("unexpected translation: %q", out)
	}
	if got.SourceLang != "eng_Latn" || got.TargetLang != "hin_Deva" {
		t.Errorf("unexpected language codes: %s -> %s", got.SourceLang, got.TargetLang)
	}
}

func TestTranslate_SameLanguagePassthrough(t *testing.T) {
	client := NewClient("http://unreachable.invalid")
	out, err := client.Translate(context.Background(), "Apply ice", "en", "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "Apply ice" {
		t.Errorf("expected passthrough, got %q", out)
	}
}

func TestTranslate_UnconfiguredPassthrough(t *testing.T) {
	client := NewClient("")
	if client.Enabled() {
		t.Error("expected Enabled() to be false without endpoint")
	}

	out, err := client.Translate(context.Background(), "Apply ice", "en", "hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "Apply ice" {
		t.Errorf("expected passthrough, got %q", out)
	}
}

func TestTranslate_EndpointError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "out of memory", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Translate(context.Background(), "Apply ice", "en", "hi")
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
}
