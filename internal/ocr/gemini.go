package ocr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"google.golang.org/genai"

	"bluecarbon/internal/config"
)

// ErrAPIKeyMissing is the typed configuration error returned when the Gemini
// key is absent. The client is constructed explicitly from config and passed
// into the components that need it; there is no import-time global guarded by
// a key check.
var ErrAPIKeyMissing = errors.New("gemini api key is required")

// GeminiGenerator implements ContentGenerator against the Gemini API.
// It is safe for concurrent use by multiple goroutines.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates the Gemini-backed content generator. The HTTP
// transport is wrapped with otelhttp so outbound extraction calls appear in
// traces, and carries an explicit timeout: a hang in the external API must
// not stall a run indefinitely.
func NewGeminiGenerator(ctx context.Context, cfg config.GeminiConfig) (*GeminiGenerator, error) {
	if cfg.APIKey == "" {
		return nil, ErrAPIKeyMissing
	}
	model := cfg.Model
	if model == "" {
		model = "gemini-1.5-flash"
	}
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
		HTTPClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   timeout,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiGenerator{client: client, model: model}, nil
}

// Generate submits the prompt plus the inline file payload and returns the
// free-text reply.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string, data []byte, mimeType string) (string, error) {
	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
		genai.NewPartFromBytes(data, mimeType),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return resp.Text(), nil
}
