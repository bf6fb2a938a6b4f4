package command

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/zazjoe90-oss/go-linkbio/pkg/types"
)

func safeClock(clock types.Clock) types.Clock {
	if clock != nil {
		return clock
	}
	return types.SystemClock{}
}

func safeLogger(logger types.Logger) types.Logger {
	if logger != nil {
		return logger
	}
	return types.NopLogger{}
}

func safeIDs(ids types.IDGenerator) types.IDGenerator {
	if ids != nil {
		return ids
	}
	return types.UUIDGenerator{}
}

func now(clock types.Clock) time.Time {
	if clock == nil {
		return time.Now().UTC()
	}
	return clock.Now()
}

func logActivity(ctx context.Context, sink types.ActivitySink, record types.ActivityRecord) {
	if sink == nil {
		return
	}
	_ = sink.Log(ctx, record)
}

func emitActivityHook(ctx context.Context, hooks types.Hooks, record types.ActivityRecord) {
	if hooks.AfterActivity == nil {
		return
	}
	hooks.AfterActivity(ctx, record)
}

func emitProfileHook(ctx context.Context, hooks types.Hooks, event types.ProfileEvent) {
	if hooks.AfterProfileChange == nil {
		return
	}
	hooks.AfterProfileChange(ctx, event)
}

// validationError converts ozzo rule failures into the go-errors taxonomy
// shared with the rest of the module.
func validationError(err error) error {
	if err == nil {
		return nil
	}
	return goerrors.FromOzzoValidation(err, "linkbio: invalid input").
		WithCode(goerrors.CodeBadRequest).
		WithTextCode(types.TextCodeValidation)
}

// mutation carries the dependencies every profile command shares.
type mutation struct {
	repo   types.ProfileRepository
	sink   types.ActivitySink
	hooks  types.Hooks
	clock  types.Clock
	ids    types.IDGenerator
	logger types.Logger
}

func newMutation(cfg ProfileCommandConfig) mutation {
	return mutation{
		repo:   cfg.Repository,
		sink:   cfg.Activity,
		hooks:  cfg.Hooks,
		clock:  safeClock(cfg.Clock),
		ids:    safeIDs(cfg.IDs),
		logger: safeLogger(cfg.Logger),
	}
}

// apply runs fn through the repository and records the change. The stored
// profile is untouched when fn or validation fails.
func (m mutation) apply(ctx context.Context, verb string, data map[string]any, fn func(*types.Profile) error, result *types.Profile) error {
	if m.repo == nil {
		return ErrMissingProfileRepository
	}
	updated, err := m.repo.UpdateProfile(ctx, fn)
	if err != nil {
		m.logger.Debug("command: profile update rejected", "verb", verb, "error", err.Error())
		return err
	}
	if result != nil {
		*result = updated.Clone()
	}

	occurredAt := now(m.clock)
	record := types.ActivityRecord{
		ID:         m.ids.UUID(),
		Verb:       verb,
		ObjectType: "profile",
		ObjectID:   updated.ID.String(),
		Data:       data,
		OccurredAt: occurredAt,
	}
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	logActivity(ctx, m.sink, record)
	emitActivityHook(ctx, m.hooks, record)
	emitProfileHook(ctx, m.hooks, types.ProfileEvent{
		Action:     verb,
		OccurredAt: occurredAt,
		Profile:    updated.Clone(),
	})
	m.logger.Info("command: profile updated", "verb", verb)
	return nil
}
