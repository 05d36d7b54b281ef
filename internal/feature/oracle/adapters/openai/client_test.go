package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenAIGenerator_RequiresKey(t *testing.T) {
	t.Parallel()

	_, err := NewOpenAIGenerator(Config{}, nil)
	assert.Error(t, err)
}

func TestOpenAIGenerator_Generate(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req openai.ChatCompletionRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, openai.GPT3Dot5Turbo, req.Model)
		if assert.Len(t, req.Messages, 2) {
			assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
			assert.Equal(t, "You are a mystical oracle.", req.Messages[0].Content)
			assert.Equal(t, "I presented an object: a mug.", req.Messages[1].Content)
		}

		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			ID:     "chatcmpl-1",
			Object: "chat.completion",
			Model:  openai.GPT3Dot5Turbo,
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Role: "assistant", Content: "Seek a bowl of ramen."}, FinishReason: "stop"},
			},
		})
	}))
	defer server.Close()

	g, err := NewOpenAIGenerator(Config{APIKey: "test-key", BaseURL: server.URL}, server.Client())
	require.NoError(t, err)

	out, err := g.Generate(context.Background(), "You are a mystical oracle.", "I presented an object: a mug.")
	require.NoError(t, err)
	assert.Equal(t, "Seek a bowl of ramen.", out)
}

func TestOpenAIGenerator_Generate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"api error", http.StatusUnauthorized, `{"error": {"message": "Incorrect API key provided", "type": "invalid_request_error"}}`},
		{"no choices", http.StatusOK, `{"id": "x", "choices": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			g, err := NewOpenAIGenerator(Config{APIKey: "k", BaseURL: server.URL}, server.Client())
			require.NoError(t, err)

			_, err = g.Generate(context.Background(), "", "prompt")
			assert.Error(t, err)
		})
	}
}
