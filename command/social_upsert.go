package command

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	gocommand "github.com/goliatone/go-command"
	"github.com/zazjoe90-oss/go-linkbio/pkg/types"
)

const mailtoPrefix = "mailto:"

// SocialUpsertInput sets the account URL for a platform.
type SocialUpsertInput struct {
	Platform string
	URL      string
	Result   *types.Profile
}

// Type implements gocommand.Message.
func (SocialUpsertInput) Type() string {
	return "command.profile.social.upsert"
}

// Validate implements gocommand.Message.
func (input SocialUpsertInput) Validate() error {
	platform, err := types.ParsePlatform(input.Platform)
	if err != nil {
		return err
	}
	url := normalizeSocialURL(platform, input.URL)
	rules := []validation.Rule{validation.Required}
	if platform == types.PlatformEmail {
		rules = append(rules, validation.By(validateMailto))
	} else {
		rules = append(rules, is.URL)
	}
	return validationError(validation.Errors{
		"url": validation.Validate(url, rules...),
	}.Filter())
}

// SocialUpsertCommand replaces the entry for a platform or appends it,
// keeping one entry per platform.
type SocialUpsertCommand struct {
	mutation
}

// NewSocialUpsertCommand constructs the social handler.
func NewSocialUpsertCommand(cfg ProfileCommandConfig) *SocialUpsertCommand {
	return &SocialUpsertCommand{mutation: newMutation(cfg)}
}

var _ gocommand.Commander[SocialUpsertInput] = (*SocialUpsertCommand)(nil)

// Execute stores the social link.
func (c *SocialUpsertCommand) Execute(ctx context.Context, input SocialUpsertInput) error {
	if err := input.Validate(); err != nil {
		return err
	}
	platform, _ := types.ParsePlatform(input.Platform)
	url := normalizeSocialURL(platform, input.URL)
	data := map[string]any{"platform": string(platform)}
	if platform == types.PlatformEmail {
		data["email"] = url
	} else {
		data["url"] = url
	}
	return c.apply(ctx, VerbSocialUpserted, data, func(p *types.Profile) error {
		for idx := range p.Socials {
			if p.Socials[idx].Platform == platform {
				p.Socials[idx].URL = url
				return nil
			}
		}
		p.Socials = append(p.Socials, types.SocialLink{Platform: platform, URL: url})
		return nil
	}, input.Result)
}

// normalizeSocialURL turns bare email addresses into mailto links.
func normalizeSocialURL(platform types.Platform, raw string) string {
	url := strings.TrimSpace(raw)
	if platform == types.PlatformEmail && url != "" && !strings.HasPrefix(strings.ToLower(url), mailtoPrefix) {
		return mailtoPrefix + url
	}
	return url
}

func validateMailto(value any) error {
	raw, _ := value.(string)
	address := raw
	if len(raw) >= len(mailtoPrefix) && strings.EqualFold(raw[:len(mailtoPrefix)], mailtoPrefix) {
		address = raw[len(mailtoPrefix):]
	}
	return validation.Validate(address, validation.Required, is.EmailFormat)
}
