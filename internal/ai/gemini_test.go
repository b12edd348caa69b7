package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geminiResponse(texts ...string) map[string]interface{} {
	candidates := make([]map[string]interface{}, 0, len(texts))
	for _, text := range texts {
		candidates = append(candidates, map[string]interface{}{
			"content": map[string]interface{}{
				"parts": []map[string]string{{"text": text}},
			},
		})
	}
	return map[string]interface{}{"candidates": candidates}
}

func TestGenerateSuccess(t *testing.T) {
	var gotPath, gotKey string
	var gotBody generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(geminiResponse("Hello World."))
	}))
	defer server.Close()

	client := NewClient("test-key", "gemini-2.0-flash-exp").WithBaseURL(server.URL)
	output, err := client.Generate(context.Background(), "Summarize this:\n\nhello world")
	require.NoError(t, err)
	assert.Equal(t, "Hello World.", output)

	assert.Equal(t, "/v1beta/models/gemini-2.0-flash-exp:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
	require.Len(t, gotBody.Contents, 1)
	assert.Equal(t, "Summarize this:\n\nhello world", gotBody.Contents[0].Parts[0].Text)
	assert.Equal(t, 0.7, gotBody.GenerationConfig.Temperature)
	assert.Equal(t, 2000, gotBody.GenerationConfig.MaxOutputTokens)
}

func TestGenerateNoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(geminiResponse())
	}))
	defer server.Close()

	client := NewClient("test-key", "m").WithBaseURL(server.URL)
	_, err := client.Generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestGenerateUpstreamErrorNotLeaked(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"internal secret detail"}}`, http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient("test-key", "m").WithBaseURL(server.URL)
	_, err := client.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "internal secret detail")
}

func TestGenerateTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		json.NewEncoder(w).Encode(geminiResponse("too late"))
	}))
	defer server.Close()

	client := NewClient("test-key", "m").WithBaseURL(server.URL).WithTimeout(20 * time.Millisecond)
	_, err := client.Generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestGenerateMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient("test-key", "m").WithBaseURL(server.URL)
	_, err := client.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoCandidates)
}

func TestResolveRemixType(t *testing.T) {
	assert.Equal(t, "summary", ResolveRemixType("summary"))
	assert.Equal(t, DefaultRemixType, ResolveRemixType(""))
	assert.Equal(t, DefaultRemixType, ResolveRemixType("interpretive-dance"))
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("tweet", "my notes")
	assert.Contains(t, prompt, "Twitter thread")
	assert.Contains(t, prompt, "my notes")

	fallback := BuildPrompt("nonsense", "my notes")
	assert.Contains(t, fallback, "professional tone")
}
