package command

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/zazjoe90-oss/go-linkbio/pkg/types"
)

// ThemeUpdateInput selects a new profile theme.
type ThemeUpdateInput struct {
	Theme  string
	Result *types.Profile
}

// Type implements gocommand.Message.
func (ThemeUpdateInput) Type() string {
	return "command.profile.theme.update"
}

// Validate implements gocommand.Message.
func (input ThemeUpdateInput) Validate() error {
	_, err := types.ParseTheme(input.Theme)
	return err
}

// ThemeUpdateCommand switches the profile theme. Unknown themes are rejected
// and never stored.
type ThemeUpdateCommand struct {
	mutation
}

// NewThemeUpdateCommand constructs the theme handler.
func NewThemeUpdateCommand(cfg ProfileCommandConfig) *ThemeUpdateCommand {
	return &ThemeUpdateCommand{mutation: newMutation(cfg)}
}

var _ gocommand.Commander[ThemeUpdateInput] = (*ThemeUpdateCommand)(nil)

// Execute stores the theme.
func (c *ThemeUpdateCommand) Execute(ctx context.Context, input ThemeUpdateInput) error {
	theme, err := types.ParseTheme(input.Theme)
	if err != nil {
		return err
	}
	data := map[string]any{"theme": string(theme)}
	return c.apply(ctx, VerbThemeUpdated, data, func(p *types.Profile) error {
		data["previous"] = string(p.Theme)
		p.Theme = theme
		return nil
	}, input.Result)
}
