package imagegen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenAIClientGenerate(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Fatalf("unexpected auth header: %s", got)
		}
		if r.URL.Path != "/images/generations" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		var payload openaiRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if payload.Model != "dall-e-3" {
			t.Fatalf("unexpected model: %s", payload.Model)
		}
		if payload.N != 1 {
			t.Fatalf("expected a single image, got n=%d", payload.N)
		}
		if payload.Prompt != PortraitPrompt {
			t.Fatalf("prompt mismatch: %s", payload.Prompt)
		}
		resp := openaiResp{}
		resp.Data = []struct {
			URL string `json:"url"`
		}{{URL: "https://images.example.com/out.png"}}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer ts.Close()

	client := NewOpenAIClient(OpenAIOptions{APIKey: "test-key", BaseURL: ts.URL})
	got, err := client.Generate(context.Background(), PortraitPrompt)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if got != "https://images.example.com/out.png" {
		t.Fatalf("unexpected url: %s", got)
	}
}

func TestOpenAIClientSurfacesProviderMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "rate limited", "type": "requests"},
		})
	}))
	defer ts.Close()

	client := NewOpenAIClient(OpenAIOptions{APIKey: "test-key", BaseURL: ts.URL})
	_, err := client.Generate(context.Background(), PortraitPrompt)
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "rate limited" {
		t.Fatalf("provider message must be surfaced verbatim, got %q", err.Error())
	}
}

func TestOpenAIClientMissingKey(t *testing.T) {
	client := NewOpenAIClient(OpenAIOptions{})
	if _, err := client.Generate(context.Background(), PortraitPrompt); err == nil {
		t.Fatal("expected error when api key missing")
	}
}

func TestOpenAIClientEmptyResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(openaiResp{})
	}))
	defer ts.Close()

	client := NewOpenAIClient(OpenAIOptions{APIKey: "test-key", BaseURL: ts.URL})
	if _, err := client.Generate(context.Background(), PortraitPrompt); err == nil {
		t.Fatal("expected error on empty data")
	}
}
