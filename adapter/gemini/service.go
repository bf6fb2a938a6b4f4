// Package gemini adapts the Google Gemini API to types.TextCompletionService.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/zazjoe90-oss/go-linkbio/pkg/types"
	"google.golang.org/genai"
)

const (
	// DefaultModel is used when Config.Model is empty.
	DefaultModel = "gemini-3-flash-preview"
	// DefaultTimeout bounds a single completion request.
	DefaultTimeout = 30 * time.Second
)

// ErrAPIKeyRequired indicates the adapter was constructed without credentials.
var ErrAPIKeyRequired = errors.New("linkbio: gemini api key required")

// Config wires the Gemini adapter.
type Config struct {
	APIKey string
	Model  string
	// BaseURL overrides the API endpoint, mostly for tests.
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
	Logger     types.Logger
}

// Service calls Models.GenerateContent once per completion.
type Service struct {
	models  *genai.Models
	model   string
	timeout time.Duration
	logger  types.Logger
}

var _ types.TextCompletionService = (*Service)(nil)

// New constructs the adapter. The API key is read once here.
func New(ctx context.Context, cfg Config) (*Service, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, ErrAPIKeyRequired
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = types.NopLogger{}
	}

	clientCfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Service{
		models:  client.Models,
		model:   model,
		timeout: timeout,
		logger:  logger,
	}, nil
}

// Model reports the configured model name.
func (s *Service) Model() string {
	return s.model
}

// Complete requests free text using the supplied sampling options.
func (s *Service) Complete(ctx context.Context, prompt string, opts types.CompletionOptions) (string, error) {
	return s.generate(ctx, prompt, samplingConfig(opts))
}

// CompleteStructured requests a JSON document matching schema.
func (s *Service) CompleteStructured(ctx context.Context, prompt string, schema types.ResponseSchema) (string, error) {
	responseSchema, err := toSchema(schema)
	if err != nil {
		return "", err
	}
	return s.generate(ctx, prompt, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   responseSchema,
	})
}

func (s *Service) generate(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	started := time.Now()
	resp, err := s.models.GenerateContent(ctx, s.model, genai.Text(prompt), config)
	if err != nil {
		s.logger.Error("gemini: generate content failed", err, "model", s.model)
		return "", err
	}
	if resp == nil {
		return "", nil
	}
	s.logger.Debug("gemini: generate content", "model", s.model, "elapsed", time.Since(started).String())
	return resp.Text(), nil
}

func samplingConfig(opts types.CompletionOptions) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{}
	if opts.Temperature > 0 {
		config.Temperature = genai.Ptr(opts.Temperature)
	}
	if opts.TopP > 0 {
		config.TopP = genai.Ptr(opts.TopP)
	}
	if opts.TopK > 0 {
		config.TopK = genai.Ptr(opts.TopK)
	}
	if opts.MaxTokens > 0 {
		config.MaxOutputTokens = opts.MaxTokens
	}
	return config
}

func toSchema(schema types.ResponseSchema) (*genai.Schema, error) {
	switch schema {
	case types.SchemaStringArray:
		return &genai.Schema{
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		}, nil
	default:
		return nil, fmt.Errorf("gemini: unsupported response schema %q", schema)
	}
}
