package generation

import (
	"context"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/zazjoe90-oss/go-linkbio/pkg/types"
)

// Config wires the generation client.
type Config struct {
	Service types.TextCompletionService
	Logger  types.Logger
	// BioOptions overrides the sampling options used for bios.
	BioOptions *types.CompletionOptions
}

// Client turns free-text descriptions into profile content. Malformed or
// empty service output degrades to fixed fallbacks; only a failed request is
// reported to the caller.
type Client struct {
	service types.TextCompletionService
	logger  types.Logger
	bioOpts types.CompletionOptions
}

// DefaultBioOptions are the sampling options used for bios.
func DefaultBioOptions() types.CompletionOptions {
	return types.CompletionOptions{
		Temperature: 0.8,
		TopP:        0.9,
		TopK:        40,
	}
}

// NewClient constructs the generation client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Service == nil {
		return nil, types.ErrMissingCompletionService
	}
	logger := cfg.Logger
	if logger == nil {
		logger = types.NopLogger{}
	}
	opts := DefaultBioOptions()
	if cfg.BioOptions != nil {
		opts = *cfg.BioOptions
	}
	return &Client{
		service: cfg.Service,
		logger:  logger,
		bioOpts: opts,
	}, nil
}

var _ types.TextGenerator = (*Client)(nil)

// GenerateBio writes a short promotional bio from the description.
func (c *Client) GenerateBio(ctx context.Context, description string) (string, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return "", types.NewValidationError("description", "description is required", description)
	}
	text, err := c.service.Complete(ctx, bioPrompt(description), c.bioOpts)
	if err != nil {
		return "", types.NewGenerationFailure(err)
	}
	bio := clampRunes(strings.TrimSpace(text), MaxBioRunes)
	if bio == "" {
		c.logger.Debug("generation: empty bio response, using fallback")
		return FallbackBio, nil
	}
	return bio, nil
}

// SuggestLinkTitles returns exactly TitleCount display titles for the niche.
func (c *Client) SuggestLinkTitles(ctx context.Context, niche string) ([]string, error) {
	niche = strings.TrimSpace(niche)
	if niche == "" {
		return nil, types.NewValidationError("niche", "niche is required", niche)
	}
	raw, err := c.service.CompleteStructured(ctx, titlesPrompt(niche), types.SchemaStringArray)
	if err != nil {
		return nil, types.NewGenerationFailure(err)
	}
	titles, err := decodeTitles(raw)
	if err != nil {
		c.logger.Debug("generation: title decode failed, using fallback", "error", err.Error())
		return FallbackTitles(), nil
	}
	return titles, nil
}

type decodeError struct {
	reason string
}

func (e *decodeError) Error() string {
	return "generation: " + e.reason
}

func decodeTitles(raw string) ([]string, error) {
	var decoded []string
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &decoded); err != nil {
		return nil, &decodeError{reason: "response is not an array of strings: " + err.Error()}
	}
	titles := make([]string, 0, TitleCount)
	for _, title := range decoded {
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		titles = append(titles, title)
		if len(titles) == TitleCount {
			return titles, nil
		}
	}
	return nil, &decodeError{reason: "response holds fewer than four titles"}
}

// stripCodeFence removes a markdown ```json fence some models wrap JSON in.
func stripCodeFence(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.IndexByte(trimmed, '\n'); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

func clampRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:limit]))
}
