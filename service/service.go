package service

import (
	"context"

	featuregate "github.com/goliatone/go-featuregate/gate"
	"github.com/zazjoe90-oss/go-linkbio/command"
	"github.com/zazjoe90-oss/go-linkbio/editor"
	"github.com/zazjoe90-oss/go-linkbio/pkg/types"
	"github.com/zazjoe90-oss/go-linkbio/profile"
	"github.com/zazjoe90-oss/go-linkbio/query"
)

// Service is the entry point for go-linkbio. It wires the profile store, the
// activity trail, the AI editor, and command/query facades supplied by the
// host application.
type Service struct {
	cfg          Config
	commands     Commands
	queries      Queries
	activityRepo types.ActivityRepository
	profileRepo  types.ProfileRepository
	editor       *editor.Controller
}

// Commands exposes the service command handlers.
type Commands struct {
	ThemeUpdate           *command.ThemeUpdateCommand
	NameUpdate            *command.NameUpdateCommand
	DetailsUpdate         *command.DetailsUpdateCommand
	LinkUpdate            *command.LinkUpdateCommand
	SocialUpsert          *command.SocialUpsertCommand
	GeneratedContentApply *command.GeneratedContentApplyCommand
}

// Queries exposes read-model helpers.
type Queries struct {
	Profile       *query.ProfileQuery
	TipLink       *query.TipLinkQuery
	ActivityFeed  *query.ActivityFeedQuery
	ActivityStats *query.ActivityStatsQuery
}

// Config captures all required dependencies so callers can provide their own
// instances (bun.DB backed repositories, in-memory stores, hooks, etc.).
type Config struct {
	ProfileRepository  types.ProfileRepository
	ActivitySink       types.ActivitySink
	ActivityRepository types.ActivityRepository
	// TextGenerator enables the AI editor. Without it Editor returns nil.
	TextGenerator    types.TextGenerator
	LinkIDs          types.LinkIDGenerator
	FeatureGate      featuregate.FeatureGate
	TransitionPolicy types.TransitionPolicy
	Hooks            types.Hooks
	Clock            types.Clock
	IDGenerator      types.IDGenerator
	Logger           types.Logger
}

// New constructs a Service from the supplied configuration.
func New(cfg Config) *Service {
	norm := normalizeConfig(cfg)
	actRepo := norm.ActivityRepository
	if actRepo == nil {
		if sinkRepo, ok := norm.ActivitySink.(types.ActivityRepository); ok {
			actRepo = sinkRepo
		}
	}

	s := &Service{
		cfg:          norm,
		activityRepo: actRepo,
		profileRepo:  norm.ProfileRepository,
	}
	s.commands = s.buildCommands()
	s.queries = s.buildQueries()

	if norm.TextGenerator != nil {
		ctrl, err := editor.NewController(editor.Config{
			Generator:   norm.TextGenerator,
			Applier:     s.commands.GeneratedContentApply,
			Policy:      norm.TransitionPolicy,
			FeatureGate: norm.FeatureGate,
			Hooks:       norm.Hooks,
			Logger:      norm.Logger,
			Clock:       norm.Clock,
		})
		if err != nil {
			norm.Logger.Error("go-linkbio: editor initialization failed", err)
		} else {
			s.editor = ctrl
		}
	}
	return s
}

func normalizeConfig(cfg Config) Config {
	if cfg.Clock == nil {
		cfg.Clock = types.SystemClock{}
	}
	if cfg.IDGenerator == nil {
		cfg.IDGenerator = types.UUIDGenerator{}
	}
	if cfg.Logger == nil {
		cfg.Logger = types.NopLogger{}
	}
	if cfg.TransitionPolicy == nil {
		cfg.TransitionPolicy = types.DefaultTransitionPolicy()
	}
	if cfg.LinkIDs == nil {
		cfg.LinkIDs = profile.NewTimestampLinkIDs()
	}
	return cfg
}

// Commands returns the command facade.
func (s *Service) Commands() Commands {
	return s.commands
}

// Queries returns the query facade.
func (s *Service) Queries() Queries {
	return s.queries
}

// Editor returns the AI editing controller, or nil when no text generator
// was configured.
func (s *Service) Editor() *editor.Controller {
	if s == nil {
		return nil
	}
	return s.editor
}

// Ready reports whether the service has the required dependencies wired in.
func (s *Service) Ready() bool {
	return s != nil &&
		s.cfg.ActivitySink != nil &&
		s.activityRepo != nil &&
		s.profileRepo != nil
}

// HealthCheck surfaces missing configuration and confirms the profile record
// can be loaded.
func (s *Service) HealthCheck(ctx context.Context) error {
	if !s.Ready() {
		if s == nil {
			return types.ErrServiceNotReady
		}
		if s.profileRepo == nil {
			return types.ErrMissingProfileRepository
		}
		if s.activityRepo == nil {
			return types.ErrMissingActivityRepository
		}
		return types.ErrServiceNotReady
	}
	_, err := s.profileRepo.GetProfile(ctx)
	return err
}

// Shutdown waits for an in-flight editor cycle to settle.
func (s *Service) Shutdown(ctx context.Context) error {
	if s == nil || s.editor == nil {
		return nil
	}
	return s.editor.Shutdown(ctx)
}

// ActivitySink returns the configured sink so transports can emit activity
// records for auxiliary workflows.
func (s *Service) ActivitySink() types.ActivitySink {
	if s == nil {
		return nil
	}
	return s.cfg.ActivitySink
}

func (s *Service) buildCommands() Commands {
	cfg := command.ProfileCommandConfig{
		Repository: s.cfg.ProfileRepository,
		LinkIDs:    s.cfg.LinkIDs,
		Activity:   s.cfg.ActivitySink,
		Hooks:      s.cfg.Hooks,
		Clock:      s.cfg.Clock,
		IDs:        s.cfg.IDGenerator,
		Logger:     s.cfg.Logger,
	}
	return Commands{
		ThemeUpdate:           command.NewThemeUpdateCommand(cfg),
		NameUpdate:            command.NewNameUpdateCommand(cfg),
		DetailsUpdate:         command.NewDetailsUpdateCommand(cfg),
		LinkUpdate:            command.NewLinkUpdateCommand(cfg),
		SocialUpsert:          command.NewSocialUpsertCommand(cfg),
		GeneratedContentApply: command.NewGeneratedContentApplyCommand(cfg),
	}
}

func (s *Service) buildQueries() Queries {
	return Queries{
		Profile:       query.NewProfileQuery(s.profileRepo),
		TipLink:       query.NewTipLinkQuery(s.profileRepo),
		ActivityFeed:  query.NewActivityFeedQuery(s.activityRepo),
		ActivityStats: query.NewActivityStatsQuery(s.activityRepo),
	}
}
