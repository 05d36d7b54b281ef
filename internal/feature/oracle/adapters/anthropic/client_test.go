package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnthropicGenerator_Generate(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))

		var req map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, DefaultModel, req["model"])
		assert.Equal(t, "oracle persona", req["system"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-3-5-haiku-latest",
			"content": [{"type": "text", "text": "Trust the "}, {"type": "text", "text": "dumplings."}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 10, "output_tokens": 5}
		}`))
	}))
	defer server.Close()

	g, err := NewAnthropicGenerator(Config{APIKey: "test-key", BaseURL: server.URL + "/v1"}, server.Client())
	require.NoError(t, err)

	out, err := g.Generate(context.Background(), "oracle persona", "a fork")
	require.NoError(t, err)
	assert.Equal(t, "Trust the dumplings.", out)
}

func TestAnthropicGenerator_Generate_Error(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"type": "error", "error": {"type": "authentication_error", "message": "invalid x-api-key"}}`))
	}))
	defer server.Close()

	g, err := NewAnthropicGenerator(Config{APIKey: "bad", BaseURL: server.URL + "/v1"}, server.Client())
	require.NoError(t, err)

	_, err = g.Generate(context.Background(), "", "prompt")
	assert.Error(t, err)
}

func TestNewAnthropicGenerator_Defaults(t *testing.T) {
	t.Parallel()

	_, err := NewAnthropicGenerator(Config{}, nil)
	assert.Error(t, err)

	g, err := NewAnthropicGenerator(Config{APIKey: "k"}, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, g.cfg.Model)
	assert.Equal(t, 512, g.cfg.MaxTokens)
}
