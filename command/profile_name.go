package command

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	gocommand "github.com/goliatone/go-command"
	"github.com/zazjoe90-oss/go-linkbio/pkg/types"
)

// MaxNameLength caps the display name.
const MaxNameLength = 80

// NameUpdateInput renames the profile.
type NameUpdateInput struct {
	Name   string
	Result *types.Profile
}

// Type implements gocommand.Message.
func (NameUpdateInput) Type() string {
	return "command.profile.name.update"
}

// Validate implements gocommand.Message.
func (input NameUpdateInput) Validate() error {
	name := strings.TrimSpace(input.Name)
	return validationError(validation.Errors{
		"name": validation.Validate(name, validation.Required, validation.RuneLength(1, MaxNameLength)),
	}.Filter())
}

// NameUpdateCommand updates the display name. Blank names are rejected.
type NameUpdateCommand struct {
	mutation
}

// NewNameUpdateCommand constructs the name handler.
func NewNameUpdateCommand(cfg ProfileCommandConfig) *NameUpdateCommand {
	return &NameUpdateCommand{mutation: newMutation(cfg)}
}

var _ gocommand.Commander[NameUpdateInput] = (*NameUpdateCommand)(nil)

// Execute stores the trimmed name.
func (c *NameUpdateCommand) Execute(ctx context.Context, input NameUpdateInput) error {
	if err := input.Validate(); err != nil {
		return err
	}
	name := strings.TrimSpace(input.Name)
	return c.apply(ctx, VerbNameUpdated, map[string]any{"name": name}, func(p *types.Profile) error {
		p.Name = name
		return nil
	}, input.Result)
}
