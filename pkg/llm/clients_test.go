package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenAIClientWireFormat(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Authorization = %s", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatal(err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"ok\":true}"}}]}`))
	}))
	defer server.Close()

	c := newOpenAIClient("test-key", server.URL, "gpt-4o-mini", server.Client())
	got, err := c.Generate(context.Background(), GenerateRequest{
		SystemPrompt: "system",
		Prompt:       "user",
		Temperature:  0.3,
		MaxTokens:    4096,
		JSONMode:     true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if got != `{"ok":true}` {
		t.Errorf("content = %s", got)
	}

	msgs, _ := gotBody["messages"].([]interface{})
	if len(msgs) != 2 {
		t.Fatalf("messages = %v", gotBody["messages"])
	}
	rf, _ := gotBody["response_format"].(map[string]interface{})
	if rf["type"] != "json_object" {
		t.Errorf("response_format = %v", gotBody["response_format"])
	}
}

func TestAnthropicClientWireFormat(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if key := r.Header.Get("x-api-key"); key != "test-key" {
			t.Errorf("x-api-key = %s", key)
		}
		if v := r.Header.Get("anthropic-version"); v == "" {
			t.Error("anthropic-version header missing")
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatal(err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content":[{"type":"text","text":"answer"}]}`))
	}))
	defer server.Close()

	c := newAnthropicClient("test-key", server.URL, "claude-3-5-haiku-latest", server.Client())
	got, err := c.Generate(context.Background(), GenerateRequest{
		SystemPrompt: "분석 전문가",
		Prompt:       "분석해줘",
		MaxTokens:    4096,
	})
	if err != nil {
		t.Fatal(err)
	}
	if got != "answer" {
		t.Errorf("content = %s", got)
	}
	if gotBody["system"] != "분석 전문가" {
		t.Errorf("system = %v", gotBody["system"])
	}
}

func TestGoogleClientWireFormat(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1beta/models/gemini-2.0-flash:generateContent" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if key := r.URL.Query().Get("key"); key != "test-key" {
			t.Errorf("key = %s", key)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatal(err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"result"}]}}]}`))
	}))
	defer server.Close()

	c := newGoogleClient("test-key", server.URL, "gemini-2.0-flash", server.Client())
	got, err := c.Generate(context.Background(), GenerateRequest{
		SystemPrompt: "sys",
		Prompt:       "user",
		JSONMode:     true,
		MaxTokens:    8192,
	})
	if err != nil {
		t.Fatal(err)
	}
	if got != "result" {
		t.Errorf("content = %s", got)
	}

	gen, _ := gotBody["generationConfig"].(map[string]interface{})
	if gen["responseMimeType"] != "application/json" {
		t.Errorf("generationConfig = %v", gotBody["generationConfig"])
	}
}

func TestOpenAIClientErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer server.Close()

	c := newOpenAIClient("test-key", server.URL, "gpt-4o", server.Client())
	if _, err := c.Generate(context.Background(), GenerateRequest{Prompt: "hi"}); err == nil {
		t.Error("expected error for 429 response")
	}
}
