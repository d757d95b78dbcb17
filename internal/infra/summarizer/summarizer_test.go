package summarizer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gianpd/summarizerAI/internal/infra/huggingface"
	"github.com/gianpd/summarizerAI/internal/resilience/retry"
)

type fakeMetrics struct {
	mu        sync.Mutex
	lengths   []int
	exceeded  int
	durations int
	failures  int
}

func (f *fakeMetrics) RecordLength(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lengths = append(f.lengths, n)
}

func (f *fakeMetrics) RecordLimitExceeded() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.exceeded++
}

func (f *fakeMetrics) RecordDuration(time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.durations++
}

func (f *fakeMetrics) RecordFailure() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures++
}

var fastRetry = retry.Config{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond, Multiplier: 2}

func testLLMConfig(baseURL string) LLMConfig {
	return LLMConfig{
		CharacterLimit: 100,
		Model:          "test-model",
		MaxTokens:      256,
		Timeout:        5 * time.Second,
		BaseURL:        baseURL,
	}
}

/* ───────── config ───────── */

func TestParseProvider(t *testing.T) {
	for in, want := range map[string]Provider{
		"":            ProviderNone,
		"none":        ProviderNone,
		"HuggingFace": ProviderHuggingFace,
		" claude ":    ProviderClaude,
		"openai":      ProviderOpenAI,
		"noop":        ProviderNoOp,
	} {
		got, err := ParseProvider(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseProvider("gemini")
	assert.Error(t, err)
}

func TestValidateCharacterLimit(t *testing.T) {
	assert.NoError(t, ValidateCharacterLimit(100))
	assert.NoError(t, ValidateCharacterLimit(5000))
	assert.ErrorContains(t, ValidateCharacterLimit(99), "below minimum")
	assert.ErrorContains(t, ValidateCharacterLimit(5001), "exceeds maximum")
}

func TestLLMConfig_Validate(t *testing.T) {
	assert.NoError(t, testLLMConfig("").Validate())

	for name, mutate := range map[string]func(*LLMConfig){
		"limit":      func(c *LLMConfig) { c.CharacterLimit = 10 },
		"model":      func(c *LLMConfig) { c.Model = "" },
		"max tokens": func(c *LLMConfig) { c.MaxTokens = 0 },
		"timeout":    func(c *LLMConfig) { c.Timeout = 0 },
	} {
		t.Run(name, func(t *testing.T) {
			cfg := testLLMConfig("")
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadClaudeConfig_FromEnv(t *testing.T) {
	t.Setenv("SUMMARIZER_CHAR_LIMIT", "1200")
	t.Setenv("CLAUDE_MODEL", "claude-haiku")

	cfg, err := LoadClaudeConfig()
	require.NoError(t, err)
	assert.Equal(t, 1200, cfg.CharacterLimit)
	assert.Equal(t, "claude-haiku", cfg.Model)
}

func TestLoadOpenAIConfig_OutOfRange(t *testing.T) {
	t.Setenv("SUMMARIZER_CHAR_LIMIT", "50")

	_, err := LoadOpenAIConfig()
	assert.ErrorContains(t, err, "invalid openai configuration")
}

func TestBuildPrompt(t *testing.T) {
	p := buildPrompt(900, "Some text.")
	assert.Contains(t, p, "at most 900 characters")
	assert.True(t, strings.HasSuffix(p, "\n\nSome text."))
}

func TestFromEnv(t *testing.T) {
	s, err := FromEnv(ProviderNone, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, s)

	_, err = FromEnv(ProviderHuggingFace, nil, nil)
	assert.Error(t, err)

	t.Setenv("ANTHROPIC_API_KEY", "")
	_, err = FromEnv(ProviderClaude, nil, nil)
	assert.ErrorContains(t, err, "ANTHROPIC_API_KEY")

	t.Setenv("OPENAI_API_KEY", "sk-test")
	s, err = FromEnv(ProviderOpenAI, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &OpenAI{}, s)

	t.Setenv("NOOP_SUMMARY_LIMIT", "9")
	s, err = FromEnv(ProviderNoOp, nil, nil)
	require.NoError(t, err)
	got, err := s.Summarize(context.Background(), "The cat sat on the mat.")
	require.NoError(t, err)
	assert.Equal(t, "The cat s", got)
}

/* ───────── noop ───────── */

func TestNoOp(t *testing.T) {
	got, err := NewNoOp(5).Summarize(context.Background(), "héllo world")
	require.NoError(t, err)
	assert.Equal(t, "héllo", got)

	got, err = NewNoOp(0).Summarize(context.Background(), "unchanged")
	require.NoError(t, err)
	assert.Equal(t, "unchanged", got)
}

/* ───────── guard ───────── */

func TestGuard_RecordsSuccess(t *testing.T) {
	m := &fakeMetrics{}
	g := guard{provider: "test", retryConfig: fastRetry, charLimit: 3, metrics: m, logger: discardLogger()}

	got, err := g.run(context.Background(), "input", func(context.Context) (string, error) {
		return "long answer", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "long answer", got)
	assert.Equal(t, []int{11}, m.lengths)
	assert.Equal(t, 1, m.exceeded)
	assert.Equal(t, 1, m.durations)
}

func TestGuard_RetriesTransientErrors(t *testing.T) {
	m := &fakeMetrics{}
	g := guard{provider: "test", retryConfig: fastRetry, metrics: m, logger: discardLogger()}

	calls := 0
	got, err := g.run(context.Background(), "input", func(context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", &retry.HTTPError{StatusCode: http.StatusTooManyRequests}
		}
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 2, calls)
}

func TestGuard_RecordsFailure(t *testing.T) {
	m := &fakeMetrics{}
	g := guard{provider: "test", retryConfig: fastRetry, metrics: m, logger: discardLogger()}

	_, err := g.run(context.Background(), "input", func(context.Context) (string, error) {
		return "", ErrEmptyResponse
	})
	assert.ErrorIs(t, err, ErrEmptyResponse)
	assert.Equal(t, 1, m.failures)
	assert.Empty(t, m.lengths)
}

func TestStatusError(t *testing.T) {
	base := errors.New("boom")
	assert.Same(t, base, statusError(0, base))

	err := statusError(503, base)
	assert.ErrorIs(t, err, base)
	assert.True(t, retry.IsRetryable(err))
	assert.False(t, retry.IsRetryable(statusError(401, base)))
}

/* ───────── providers over httptest ───────── */

func TestOpenAI_Summarize(t *testing.T) {
	var got struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","model":"test-model",
			"choices":[{"index":0,"message":{"role":"assistant","content":"  A short summary. "},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	o := NewOpenAI("sk-test", testLLMConfig(srv.URL+"/v1"), discardLogger())
	m := &fakeMetrics{}
	o.guard.metrics = m

	summary, err := o.Summarize(context.Background(), "The original chunk.")
	require.NoError(t, err)
	assert.Equal(t, "A short summary.", summary)
	assert.Equal(t, "test-model", got.Model)
	require.Len(t, got.Messages, 1)
	assert.Contains(t, got.Messages[0].Content, "The original chunk.")
	assert.Equal(t, []int{16}, m.lengths)
}

func TestOpenAI_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","choices":[]}`))
	}))
	defer srv.Close()

	o := NewOpenAI("sk-test", testLLMConfig(srv.URL+"/v1"), discardLogger())
	o.guard.retryConfig = fastRetry
	o.guard.metrics = &fakeMetrics{}

	_, err := o.Summarize(context.Background(), "text")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestClaude_Summarize(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "sk-ant-test", r.Header.Get("X-Api-Key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg_1","type":"message","role":"assistant","model":"test-model",
			"content":[{"type":"text","text":"Claude summary."}],
			"stop_reason":"end_turn","stop_sequence":null,"usage":{"input_tokens":10,"output_tokens":3}}`))
	}))
	defer srv.Close()

	c := NewClaude("sk-ant-test", testLLMConfig(srv.URL), discardLogger())
	c.guard.metrics = &fakeMetrics{}

	summary, err := c.Summarize(context.Background(), "The original chunk.")
	require.NoError(t, err)
	assert.Equal(t, "Claude summary.", summary)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClaude_ClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`))
	}))
	defer srv.Close()

	c := NewClaude("bad", testLLMConfig(srv.URL), discardLogger())
	c.guard.retryConfig = fastRetry
	c.guard.metrics = &fakeMetrics{}

	_, err := c.Summarize(context.Background(), "text")
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestHuggingFace_Summarize(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/"+DefaultHuggingFaceModel, r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`[{"summary_text":"BART summary."}]`))
	}))
	defer srv.Close()

	cfg := huggingface.DefaultConfig()
	cfg.BaseURL = srv.URL
	client := huggingface.NewClient("hf-test", cfg, discardLogger())

	h := NewHuggingFace(client, HuggingFaceConfig{Model: DefaultHuggingFaceModel, MinLength: 10, MaxLength: 60}, discardLogger())
	h.guard.metrics = &fakeMetrics{}

	summary, err := h.Summarize(context.Background(), "chunk text")
	require.NoError(t, err)
	assert.Equal(t, "BART summary.", summary)
	assert.Equal(t, "chunk text", body["inputs"])
	params := body["parameters"].(map[string]any)
	assert.Equal(t, false, params["do_sample"])
	assert.Equal(t, float64(60), params["max_length"])
}

func TestHuggingFace_EmptyOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	cfg := huggingface.DefaultConfig()
	cfg.BaseURL = srv.URL
	h := NewHuggingFace(huggingface.NewClient("hf-test", cfg, nil), HuggingFaceConfig{Model: "m"}, discardLogger())
	h.guard.metrics = &fakeMetrics{}

	_, err := h.Summarize(context.Background(), "chunk")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestLoadHuggingFaceConfig(t *testing.T) {
	cfg, err := LoadHuggingFaceConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultHuggingFaceModel, cfg.Model)

	t.Setenv("HF_SUMMARY_MAX_LENGTH", "10")
	t.Setenv("HF_SUMMARY_MIN_LENGTH", "20")
	_, err = LoadHuggingFaceConfig()
	assert.Error(t, err)
}
