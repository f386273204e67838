package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
	"time"

	"medicine-reminder/internal/platform/httpclient"
	"medicine-reminder/internal/ports/generation"
)

const (
	DefaultBaseURL     = "https://api.openai.com"
	DefaultModel       = "gpt-4o-mini"
	DefaultTemperature = 0.2
	DefaultTimeout     = 30 * time.Second

	chatCompletionsPath = "/v1/chat/completions"

	systemPrompt = "You are a cautious medical assistant. Respond ONLY with valid JSON. No explanations."

	insufficientQuotaCode = "insufficient_quota"
)

var quotaRe = regexp.MustCompile(`(?i)quota`)

// Config del cliente. Se inyecta al construir, nunca se lee el entorno en la llamada.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string

	// nil => DefaultTemperature
	Temperature *float64

	Timeout time.Duration
}

type Client struct {
	apiKey      string
	model       string
	temperature float64
	http        *httpclient.Client
}

var _ generation.Generator = (*Client)(nil)

func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	temp := DefaultTemperature
	if cfg.Temperature != nil {
		temp = *cfg.Temperature
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	hc, err := httpclient.NewWithBaseURL(baseURL, timeout)
	if err != nil {
		return nil, err
	}

	return &Client{
		apiKey:      strings.TrimSpace(cfg.APIKey),
		model:       model,
		temperature: temp,
		http:        hc,
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.apiKey != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Temperature    float64        `json:"temperature"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type errorEnvelope struct {
	Error *struct {
		Message string `json:"message"`
		Code    any    `json:"code"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Generate hace una única llamada a chat completions y clasifica el resultado.
func (c *Client) Generate(ctx context.Context, prompt string) generation.Outcome {
	if !c.IsConfigured() {
		return generation.Outcome{Kind: generation.Unconfigured}
	}

	req := chatRequest{
		Model:       c.model,
		Temperature: c.temperature,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		ResponseFormat: responseFormat{Type: "json_object"},
	}

	resp, err := c.http.PostJSON(ctx, chatCompletionsPath, map[string]string{
		"Authorization": "Bearer " + c.apiKey,
	}, req)
	if err != nil {
		// Sin respuesta HTTP (timeout, DNS, reset) o request que no llegó a salir.
		return generation.Outcome{Kind: generation.TransportFailure, Diagnostic: err.Error()}
	}

	if resp.OK() {
		return generation.Outcome{Kind: generation.Success, Text: successText(resp.Body)}
	}

	return classifyError(resp)
}

// successText devuelve choices[0].message.content; si el envelope no decodifica,
// el body crudo queda como texto para que la extracción decida.
func successText(body []byte) string {
	var out chatResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return string(body)
	}
	if len(out.Choices) == 0 {
		return ""
	}
	return out.Choices[0].Message.Content
}

func classifyError(resp httpclient.Response) generation.Outcome {
	var diag any
	if err := json.Unmarshal(resp.Body, &diag); err != nil || diag == nil {
		diag = strings.TrimSpace(string(resp.Body))
	}

	var env errorEnvelope
	_ = json.Unmarshal(resp.Body, &env)

	var message, code string
	if env.Error != nil {
		message = strings.TrimSpace(env.Error.Message)
		if s, ok := env.Error.Code.(string); ok {
			code = s
		}
		if code == "" {
			code = env.Error.Type
		}
	}

	kind := generation.UpstreamError
	if resp.StatusCode == http.StatusTooManyRequests ||
		code == insufficientQuotaCode ||
		quotaRe.MatchString(message) {
		kind = generation.QuotaExceeded
	}

	return generation.Outcome{
		Kind:       kind,
		Message:    message,
		Diagnostic: diag,
	}
}
