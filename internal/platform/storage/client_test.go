package storage

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDownloadBase64_Success(t *testing.T) {
	raw := []byte{0xFF, 0xD8, 0xFF, 0xE0} // JPEG magic bytes

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/object/injury-images/user-1/ankle.jpg" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected auth header: %s", auth)
		}
		w.Write(raw)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key")
	got, err := client.DownloadBase64(context.Background(), "user-1/ankle.jpg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := base64.StdEncoding.EncodeToString(raw)
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestDownloadBase64_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key")
	_, err := client.DownloadBase64(context.Background(), "missing.jpg")
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestDownloadBase64_Unconfigured(t *testing.T) {
	client := NewClient("", "")
	_, err := client.DownloadBase64(context.Background(), "user-1/ankle.jpg")
	if err == nil {
		t.Fatal("expected error when storage is not configured")
	}
}
