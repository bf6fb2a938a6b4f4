package types

import "context"

// ResponseSchema names the structured shape requested from the completion
// service.
type ResponseSchema string

// SchemaStringArray requests a JSON array of strings.
const SchemaStringArray ResponseSchema = "array of string"

// CompletionOptions tunes sampling for free-text completions. Zero values
// leave the backend defaults in place.
type CompletionOptions struct {
	Temperature float32
	TopP        float32
	TopK        float32
	MaxTokens   int32
}

// TextCompletionService is the external generative text backend. Both calls
// return the raw response text; an error means the request itself failed.
type TextCompletionService interface {
	Complete(ctx context.Context, prompt string, opts CompletionOptions) (string, error)
	CompleteStructured(ctx context.Context, prompt string, schema ResponseSchema) (string, error)
}

// TextGenerator produces the AI-assisted profile content.
type TextGenerator interface {
	GenerateBio(ctx context.Context, description string) (string, error)
	SuggestLinkTitles(ctx context.Context, niche string) ([]string, error)
}
