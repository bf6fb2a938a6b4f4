package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	gocommand "github.com/goliatone/go-command"
	featuregate "github.com/goliatone/go-featuregate/gate"
	"github.com/zazjoe90-oss/go-linkbio/command"
	"github.com/zazjoe90-oss/go-linkbio/pkg/types"
	"golang.org/x/sync/errgroup"
)

// FailureNotice is shown to the user when a generation cycle fails.
const FailureNotice = "AI Magic failed. Try again! ❤️"

// Cycle outcomes reported through Hooks.AfterGeneration.
const (
	OutcomeApplied   = "applied"
	OutcomeFailed    = "failed"
	OutcomeAbandoned = "abandoned"
)

var (
	// ErrInvalidTransition is returned when an operation is not valid in the
	// current state, including Submit while a cycle is generating.
	ErrInvalidTransition = types.ErrTransitionNotAllowed
	// ErrEditorDisabled indicates the AI editor is switched off via feature gate.
	ErrEditorDisabled = errors.New("linkbio: ai editor disabled")
	// ErrGenerationAbandoned settles cycles whose result arrived after Close.
	ErrGenerationAbandoned = errors.New("linkbio: generation cycle abandoned")
	// ErrMissingApplier indicates the controller cannot write results.
	ErrMissingApplier = errors.New("linkbio: missing generated content applier")
)

// Config wires the editing workflow.
type Config struct {
	Generator types.TextGenerator
	// Applier writes the joined result. It runs while the controller holds
	// its lock, so it must not call back into the Controller.
	Applier     gocommand.Commander[command.GeneratedContentInput]
	Policy      types.TransitionPolicy
	FeatureGate featuregate.FeatureGate
	Hooks       types.Hooks
	Logger      types.Logger
	Clock       types.Clock
}

// Snapshot is a point-in-time view of the controller.
type Snapshot struct {
	Status types.EditorState `json:"status"`
	Prompt string            `json:"prompt"`
	Notice string            `json:"notice,omitempty"`
	Seq    uint64            `json:"seq"`
}

// Controller owns the editor state. All methods are safe for concurrent use.
type Controller struct {
	generator types.TextGenerator
	applier   gocommand.Commander[command.GeneratedContentInput]
	policy    types.TransitionPolicy
	gate      featuregate.FeatureGate
	hooks     types.Hooks
	logger    types.Logger
	clock     types.Clock

	mu     sync.Mutex
	state  types.EditorState
	prompt string
	notice string
	seq    uint64
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewController constructs an idle controller.
func NewController(cfg Config) (*Controller, error) {
	if cfg.Generator == nil {
		return nil, types.ErrMissingTextGenerator
	}
	if cfg.Applier == nil {
		return nil, ErrMissingApplier
	}
	policy := cfg.Policy
	if policy == nil {
		policy = types.DefaultTransitionPolicy()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = types.NopLogger{}
	}
	clock := cfg.Clock
	if clock == nil {
		clock = types.SystemClock{}
	}
	return &Controller{
		generator: cfg.Generator,
		applier:   cfg.Applier,
		policy:    policy,
		gate:      cfg.FeatureGate,
		hooks:     cfg.Hooks,
		logger:    logger,
		clock:     clock,
		state:     types.EditorStateIdle,
	}, nil
}

// State returns the current snapshot.
func (c *Controller) State() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Open shows the editor. From Error the preserved prompt stays in place so
// the user can retry. Opening an already open editor is a no-op.
func (c *Controller) Open(ctx context.Context) error {
	enabled, err := featureEnabled(ctx, c.gate, FeatureAIEditor)
	if err != nil {
		return err
	}
	if !enabled {
		return ErrEditorDisabled
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == types.EditorStateOpen {
		return nil
	}
	if err := c.transitionLocked(types.EditorStateOpen); err != nil {
		return err
	}
	c.notice = ""
	return nil
}

// Close dismisses the editor, discards the prompt and invalidates any
// running cycle. Closing an idle editor is a no-op.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == types.EditorStateIdle {
		return nil
	}
	if err := c.transitionLocked(types.EditorStateIdle); err != nil {
		return err
	}
	if c.cancel != nil {
		c.logger.Debug("editor: abandoning cycle", "seq", c.seq)
		c.cancel()
		c.cancel = nil
	}
	c.seq++
	c.prompt = ""
	c.notice = ""
	return nil
}

// SetPrompt stores draft text while the editor is open or showing an error.
func (c *Controller) SetPrompt(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.state {
	case types.EditorStateOpen, types.EditorStateError:
		c.prompt = text
		return nil
	default:
		return fmt.Errorf("%w: set prompt while %s", ErrInvalidTransition, c.state)
	}
}

// Submit starts a generation cycle for text. Blank text is a no-op and
// returns a nil cycle. The transition to Generating happens before Submit
// returns; the cycle itself runs in the background, detached from ctx
// cancellation but keeping its values.
func (c *Controller) Submit(ctx context.Context, text string) (*Cycle, error) {
	prompt := strings.TrimSpace(text)
	if prompt == "" {
		return nil, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != types.EditorStateOpen {
		return nil, c.policy.Validate(c.state, types.EditorStateGenerating)
	}
	if err := c.transitionLocked(types.EditorStateGenerating); err != nil {
		return nil, err
	}
	c.seq++
	c.prompt = text
	c.notice = ""

	cycleCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	c.cancel = cancel
	cycle := newCycle(c.seq, prompt)
	c.logger.Info("editor: generation started", "seq", cycle.seq)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer cancel()
		c.run(cycleCtx, cycle)
	}()
	return cycle, nil
}

// Wait blocks until every background cycle has returned or ctx ends. It is
// meant for shutdown.
func (c *Controller) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown closes the editor and waits for background cycles.
func (c *Controller) Shutdown(ctx context.Context) error {
	if err := c.Close(); err != nil {
		return err
	}
	return c.Wait(ctx)
}

func (c *Controller) run(ctx context.Context, cycle *Cycle) {
	var (
		bio    string
		titles []string
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		out, err := c.generator.GenerateBio(groupCtx, cycle.prompt)
		if err != nil {
			return err
		}
		bio = out
		return nil
	})
	group.Go(func() error {
		out, err := c.generator.SuggestLinkTitles(groupCtx, cycle.prompt)
		if err != nil {
			return err
		}
		titles = out
		return nil
	})
	err := group.Wait()
	c.settle(ctx, cycle, bio, titles, err)
}

// settle joins the cycle result back into the state machine. The sequence
// check and the apply happen under the same lock as Close, so an abandoned
// cycle can never write to the profile.
func (c *Controller) settle(ctx context.Context, cycle *Cycle, bio string, titles []string, genErr error) {
	c.mu.Lock()
	if cycle.seq != c.seq || c.state != types.EditorStateGenerating {
		c.mu.Unlock()
		c.logger.Debug("editor: dropping stale result", "seq", cycle.seq)
		c.finish(ctx, cycle, OutcomeAbandoned, ErrGenerationAbandoned)
		return
	}
	c.cancel = nil

	err := genErr
	if err == nil {
		err = c.applier.Execute(ctx, command.GeneratedContentInput{Bio: bio, Titles: titles})
	}
	if err != nil {
		_ = c.transitionLocked(types.EditorStateError)
		c.notice = FailureNotice
		c.mu.Unlock()
		c.logger.Error("editor: generation failed", err, "seq", cycle.seq)
		c.finish(ctx, cycle, OutcomeFailed, err)
		return
	}

	_ = c.transitionLocked(types.EditorStateIdle)
	c.prompt = ""
	c.notice = ""
	c.mu.Unlock()
	c.logger.Info("editor: generation applied", "seq", cycle.seq)
	c.finish(ctx, cycle, OutcomeApplied, nil)
}

func (c *Controller) finish(ctx context.Context, cycle *Cycle, outcome string, err error) {
	cycle.settle(err)
	if c.hooks.AfterGeneration == nil {
		return
	}
	c.hooks.AfterGeneration(ctx, types.GenerationEvent{
		Seq:        cycle.seq,
		Prompt:     cycle.prompt,
		Outcome:    outcome,
		Err:        err,
		OccurredAt: c.now(),
	})
}

func (c *Controller) transitionLocked(target types.EditorState) error {
	if err := c.policy.Validate(c.state, target); err != nil {
		return err
	}
	c.state = target
	return nil
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		Status: c.state,
		Prompt: c.prompt,
		Notice: c.notice,
		Seq:    c.seq,
	}
}

func (c *Controller) now() time.Time {
	if c.clock == nil {
		return time.Now().UTC()
	}
	return c.clock.Now()
}
