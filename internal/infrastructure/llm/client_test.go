package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardcompass/backend/internal/domain"
)

func TestNewClient(t *testing.T) {
	client := NewClient("test-key", "https://api.example.com/v1", "gpt-3.5-turbo", 10*time.Second, 1000, nil)

	assert.NotNil(t, client)
	assert.Equal(t, "test-key", client.apiKey)
	assert.Equal(t, "https://api.example.com/v1", client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.NotNil(t, client.rateLimiter)
}

func TestComplete_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-3.5-turbo", req.Model)
		require.NotEmpty(t, req.Messages)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "user", req.Messages[1].Role)
		assert.Equal(t, "my income is 6 lakh", req.Messages[1].Content)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "Great! What do you spend the most on?"}},
			},
		})
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, "gpt-3.5-turbo", 10*time.Second, 1000, nil)

	reply, err := client.Complete(context.Background(), []domain.Message{
		{Role: domain.RoleUser, Content: "my income is 6 lakh"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Great! What do you spend the most on?", reply)
}

func TestComplete_ServerError_NoRetry(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, "gpt-3.5-turbo", 10*time.Second, 1000, nil)

	reply, err := client.Complete(context.Background(), []domain.Message{
		{Role: domain.RoleUser, Content: "hello"},
	})

	assert.Empty(t, reply)
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
	assert.Equal(t, 1, attempts)
}

func TestComplete_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, "gpt-3.5-turbo", 10*time.Second, 1000, nil)

	reply, err := client.Complete(context.Background(), []domain.Message{
		{Role: domain.RoleUser, Content: "hello"},
	})

	assert.Empty(t, reply)
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
}

func TestComplete_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, "gpt-3.5-turbo", 10*time.Second, 1000, nil)

	_, err := client.Complete(context.Background(), []domain.Message{
		{Role: domain.RoleUser, Content: "hello"},
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "decoding response")
}

func TestComplete_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, "gpt-3.5-turbo", 10*time.Second, 1000, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Complete(ctx, []domain.Message{
		{Role: domain.RoleUser, Content: "hello"},
	})

	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
}

func TestComplete_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listening anymore

	client := NewClient("test-key", server.URL, "gpt-3.5-turbo", time.Second, 1000, nil)

	_, err := client.Complete(context.Background(), []domain.Message{
		{Role: domain.RoleUser, Content: "hello"},
	})

	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
}
