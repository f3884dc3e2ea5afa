package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrInvalidAPIKey means the provider rejected the caller's credentials.
	ErrInvalidAPIKey = errors.New("invalid API key")
	// ErrRateLimited means the provider throttled the request.
	ErrRateLimited = errors.New("rate limit exceeded")
	// ErrQuotaExceeded means the caller's account is out of quota.
	ErrQuotaExceeded = errors.New("API quota exceeded")
	// ErrBadGeneration means the model replied with text outside the quiz format.
	ErrBadGeneration = errors.New("generated quiz is not in the expected format")
)

const (
	defaultOpenAIBaseURL    = "https://api.openai.com/v1"
	defaultAnthropicBaseURL = "https://api.anthropic.com"
	defaultGoogleBaseURL    = "https://generativelanguage.googleapis.com"
	defaultOllamaBaseURL    = "http://localhost:11434"

	openAIModel    = "gpt-4o-mini"
	anthropicModel = "claude-3-5-sonnet-20241022"
	googleModel    = "gemini-1.5-flash"
	ollamaModel    = "llama3.2"

	maxGenerationTokens = 2000
)

// Options overrides provider endpoints, mainly for tests and self-hosted
// gateways. Zero values fall back to the public endpoints.
type Options struct {
	OpenAIBaseURL    string
	AnthropicBaseURL string
	GoogleBaseURL    string
	OllamaBaseURL    string
}

// GenerateRequest asks for a quiz document generated from study notes.
// Provider is optional; when empty it is detected from the key shape.
type GenerateRequest struct {
	Notes        string
	APIKey       string
	NumQuestions int
	Difficulty   string
	Provider     Provider
}

// Client calls LLM providers over plain HTTP and returns raw quiz text in
// the delimited format the parser consumes.
type Client struct {
	httpClient *http.Client
	log        *zap.SugaredLogger
	opts       Options
}

func NewClient(log *zap.SugaredLogger, opts Options) *Client {
	if opts.OpenAIBaseURL == "" {
		opts.OpenAIBaseURL = defaultOpenAIBaseURL
	}
	if opts.AnthropicBaseURL == "" {
		opts.AnthropicBaseURL = defaultAnthropicBaseURL
	}
	if opts.GoogleBaseURL == "" {
		opts.GoogleBaseURL = defaultGoogleBaseURL
	}
	if opts.OllamaBaseURL == "" {
		opts.OllamaBaseURL = defaultOllamaBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		log:        log,
		opts:       opts,
	}
}

// GenerateQuiz produces raw quiz text from study notes. The reply must
// contain at least one QUESTION marker; all further validation happens in
// the same parser that handles pasted documents.
func (c *Client) GenerateQuiz(ctx context.Context, req GenerateRequest) (string, error) {
	provider := req.Provider
	if provider == "" {
		provider = DetectProvider(req.APIKey)
	}
	if req.NumQuestions <= 0 {
		req.NumQuestions = 10
	}
	prompt := BuildPrompt(req.Notes, req.NumQuestions, req.Difficulty)

	var (
		text string
		err  error
	)
	switch provider {
	case ProviderOpenAI:
		text, err = c.generateOpenAI(ctx, req.APIKey, prompt)
	case ProviderAnthropic:
		text, err = c.generateAnthropic(ctx, req.APIKey, prompt)
	case ProviderGoogle:
		text, err = c.generateGoogle(ctx, req.APIKey, prompt)
	case ProviderOllama:
		text, err = c.generateOllama(ctx, prompt)
	default:
		return "", fmt.Errorf("unsupported provider: %s", provider)
	}
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if !strings.Contains(text, questionMarker) {
		return "", ErrBadGeneration
	}
	c.log.Infow("quiz generated", "provider", provider, "questions", req.NumQuestions)
	return text, nil
}

func (c *Client) generateOpenAI(ctx context.Context, apiKey, prompt string) (string, error) {
	body := map[string]any{
		"model": openAIModel,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": prompt},
		},
		"temperature": 0.7,
		"max_tokens":  maxGenerationTokens,
	}
	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	headers := map[string]string{"Authorization": "Bearer " + apiKey}
	if err := c.post(ctx, c.opts.OpenAIBaseURL+"/chat/completions", headers, body, &out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", ErrBadGeneration
	}
	return out.Choices[0].Message.Content, nil
}

func (c *Client) generateAnthropic(ctx context.Context, apiKey, prompt string) (string, error) {
	body := map[string]any{
		"model":      anthropicModel,
		"max_tokens": maxGenerationTokens,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}
	var out struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	headers := map[string]string{
		"x-api-key":         apiKey,
		"anthropic-version": "2023-06-01",
	}
	if err := c.post(ctx, c.opts.AnthropicBaseURL+"/v1/messages", headers, body, &out); err != nil {
		return "", err
	}
	if len(out.Content) == 0 {
		return "", ErrBadGeneration
	}
	return out.Content[0].Text, nil
}

func (c *Client) generateGoogle(ctx context.Context, apiKey, prompt string) (string, error) {
	body := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]string{{"text": prompt}}},
		},
	}
	var out struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.opts.GoogleBaseURL, googleModel, apiKey)
	if err := c.post(ctx, url, nil, body, &out); err != nil {
		return "", err
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", ErrBadGeneration
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

func (c *Client) generateOllama(ctx context.Context, prompt string) (string, error) {
	body := map[string]any{
		"model":  ollamaModel,
		"prompt": prompt,
		"stream": false,
	}
	var out struct {
		Response string `json:"response"`
	}
	if err := c.post(ctx, c.opts.OllamaBaseURL+"/api/generate", nil, body, &out); err != nil {
		return "", err
	}
	return out.Response, nil
}

func (c *Client) post(ctx context.Context, url string, headers map[string]string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call provider: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return classifyStatus(resp.StatusCode, raw)
	}
	return json.Unmarshal(raw, out)
}

// classifyStatus maps provider HTTP failures onto the package's error
// taxonomy so handlers can give users an actionable message.
func classifyStatus(status int, body []byte) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrInvalidAPIKey
	case http.StatusTooManyRequests:
		if bytes.Contains(body, []byte("insufficient_quota")) {
			return ErrQuotaExceeded
		}
		return ErrRateLimited
	default:
		return fmt.Errorf("provider returned status %d: %s", status, truncate(body, 200))
	}
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
