package command

import (
	"context"
	"fmt"
	"strings"

	gocommand "github.com/goliatone/go-command"
	"github.com/zazjoe90-oss/go-linkbio/pkg/types"
)

// GeneratedContentInput carries a generated bio and link titles.
type GeneratedContentInput struct {
	Bio    string
	Titles []string
	Result *types.Profile
}

// Type implements gocommand.Message.
func (GeneratedContentInput) Type() string {
	return "command.profile.generated.apply"
}

// Validate implements gocommand.Message.
func (input GeneratedContentInput) Validate() error {
	if len(input.Titles) == 0 {
		return types.NewValidationError("titles", "at least one title is required", input.Titles)
	}
	for idx, title := range input.Titles {
		if strings.TrimSpace(title) == "" {
			return types.NewValidationError(fmt.Sprintf("titles.%d", idx), "title must not be blank", title)
		}
	}
	return nil
}

// GeneratedContentApplyCommand replaces the bio and the whole link set in a
// single repository update. Every link gets a fresh id, the title verbatim
// and the placeholder URL; destinations are never invented.
type GeneratedContentApplyCommand struct {
	mutation
	linkIDs types.LinkIDGenerator
}

// NewGeneratedContentApplyCommand constructs the handler.
func NewGeneratedContentApplyCommand(cfg ProfileCommandConfig) *GeneratedContentApplyCommand {
	return &GeneratedContentApplyCommand{
		mutation: newMutation(cfg),
		linkIDs:  cfg.LinkIDs,
	}
}

var _ gocommand.Commander[GeneratedContentInput] = (*GeneratedContentApplyCommand)(nil)

// Execute applies the batch. Either all links are replaced along with the
// bio or nothing changes.
func (c *GeneratedContentApplyCommand) Execute(ctx context.Context, input GeneratedContentInput) error {
	if c.linkIDs == nil {
		return ErrMissingLinkIDGenerator
	}
	if err := input.Validate(); err != nil {
		return err
	}
	titles := append([]string(nil), input.Titles...)
	data := map[string]any{
		"bio":    input.Bio,
		"titles": titles,
	}
	return c.apply(ctx, VerbGenerationApplied, data, func(p *types.Profile) error {
		createdAt := now(c.clock)
		links := make([]types.LinkItem, 0, len(titles))
		for idx, title := range titles {
			id, err := c.linkIDs.LinkID(createdAt, idx)
			if err != nil {
				return fmt.Errorf("link id %d: %w", idx, err)
			}
			links = append(links, types.LinkItem{
				ID:    id,
				Title: title,
				URL:   types.PlaceholderURL,
			})
		}
		p.Bio = input.Bio
		p.Links = links
		return nil
	}, input.Result)
}
