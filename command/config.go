package command

import "github.com/zazjoe90-oss/go-linkbio/pkg/types"

// ProfileCommandConfig wires dependencies for profile commands.
type ProfileCommandConfig struct {
	Repository types.ProfileRepository
	// LinkIDs mints ids for generated links. Only GeneratedContentApplyCommand
	// requires it.
	LinkIDs  types.LinkIDGenerator
	Activity types.ActivitySink
	Hooks    types.Hooks
	Clock    types.Clock
	IDs      types.IDGenerator
	Logger   types.Logger
}

// Activity verbs recorded by the profile commands.
const (
	VerbThemeUpdated      = "profile.theme.updated"
	VerbNameUpdated       = "profile.name.updated"
	VerbDetailsUpdated    = "profile.details.updated"
	VerbLinkUpdated       = "profile.link.updated"
	VerbSocialUpserted    = "profile.social.upserted"
	VerbGenerationApplied = "profile.generation.applied"
)
