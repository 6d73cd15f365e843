package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runmacros/backend/config"
)

func fakeDeepSeek(t *testing.T, reply string) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "deepseek-chat", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "user", req.Messages[1].Role)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": reply}},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestChatReturnsModelReply(t *testing.T) {
	srv := fakeDeepSeek(t, "Bananas have about 23g of carbs per 100g.")

	svc := NewLLMService(config.DeepSeekConfig{
		APIKey: "test-key",
		APIURL: srv.URL,
		Model:  "deepseek-chat",
	}, nil)

	text, err := svc.Chat(context.Background(), "carbs in a banana?")
	require.NoError(t, err)
	assert.Equal(t, "Bananas have about 23g of carbs per 100g.", text)
}

func TestChatAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)

	svc := NewLLMService(config.DeepSeekConfig{
		APIKey: "test-key",
		APIURL: srv.URL,
		Model:  "deepseek-chat",
	}, nil)

	_, err := svc.Chat(context.Background(), "hello")
	assert.Error(t, err)
}

func TestChatEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	t.Cleanup(srv.Close)

	svc := NewLLMService(config.DeepSeekConfig{
		APIKey: "test-key",
		APIURL: srv.URL,
		Model:  "deepseek-chat",
	}, nil)

	_, err := svc.Chat(context.Background(), "hello")
	assert.Error(t, err)
}
