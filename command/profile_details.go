package command

import (
	"context"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	gocommand "github.com/goliatone/go-command"
	"github.com/zazjoe90-oss/go-linkbio/pkg/types"
)

var tipHandlePattern = regexp.MustCompile(`^[A-Za-z0-9]{1,20}$`)

// DetailsUpdateInput patches the avatar and tip handle. An empty tip handle
// clears it.
type DetailsUpdateInput struct {
	Patch  types.ProfilePatch
	Result *types.Profile
}

// Type implements gocommand.Message.
func (DetailsUpdateInput) Type() string {
	return "command.profile.details.update"
}

// Validate implements gocommand.Message.
func (input DetailsUpdateInput) Validate() error {
	if input.Patch.AvatarURL == nil && input.Patch.TipHandle == nil {
		return ErrEmptyPatch
	}
	errs := validation.Errors{}
	if input.Patch.AvatarURL != nil {
		errs["avatar_url"] = validation.Validate(strings.TrimSpace(*input.Patch.AvatarURL),
			validation.Required, is.URL)
	}
	if input.Patch.TipHandle != nil {
		errs["tip_handle"] = validation.Validate(strings.TrimSpace(*input.Patch.TipHandle),
			validation.Match(tipHandlePattern).Error("must be 1-20 letters or digits"))
	}
	return validationError(errs.Filter())
}

// DetailsUpdateCommand applies avatar and tip handle changes.
type DetailsUpdateCommand struct {
	mutation
}

// NewDetailsUpdateCommand constructs the details handler.
func NewDetailsUpdateCommand(cfg ProfileCommandConfig) *DetailsUpdateCommand {
	return &DetailsUpdateCommand{mutation: newMutation(cfg)}
}

var _ gocommand.Commander[DetailsUpdateInput] = (*DetailsUpdateCommand)(nil)

// Execute applies the patch.
func (c *DetailsUpdateCommand) Execute(ctx context.Context, input DetailsUpdateInput) error {
	if err := input.Validate(); err != nil {
		return err
	}
	data := map[string]any{}
	return c.apply(ctx, VerbDetailsUpdated, data, func(p *types.Profile) error {
		if input.Patch.AvatarURL != nil {
			p.AvatarURL = strings.TrimSpace(*input.Patch.AvatarURL)
			data["avatar_url"] = p.AvatarURL
		}
		if input.Patch.TipHandle != nil {
			p.TipHandle = strings.TrimSpace(*input.Patch.TipHandle)
			data["tip_handle"] = p.TipHandle
		}
		return nil
	}, input.Result)
}
