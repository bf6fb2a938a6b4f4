package types

import (
	"fmt"
	"sort"
)

// EditorState is a state of the AI-assisted editing workflow.
type EditorState string

const (
	EditorStateIdle       EditorState = "idle"
	EditorStateOpen       EditorState = "editor_open"
	EditorStateGenerating EditorState = "generating"
	EditorStateError      EditorState = "error"
)

// ErrTransitionNotAllowed reports that the target editor state is not
// reachable from the current state according to configured policies.
var ErrTransitionNotAllowed = fmt.Errorf("linkbio: editor transition not allowed")

// TransitionPolicy validates editor transitions.
type TransitionPolicy interface {
	Validate(current, target EditorState) error
	AllowedTargets(current EditorState) []EditorState
}

// StaticTransitionPolicy enforces a fixed transition graph.
type StaticTransitionPolicy struct {
	graph map[EditorState]map[EditorState]struct{}
}

// NewStaticTransitionPolicy creates a policy from a transition graph.
func NewStaticTransitionPolicy(graph map[EditorState][]EditorState) *StaticTransitionPolicy {
	internal := make(map[EditorState]map[EditorState]struct{}, len(graph))
	for from, targets := range graph {
		targetSet := make(map[EditorState]struct{}, len(targets))
		for _, to := range targets {
			if to == "" {
				continue
			}
			targetSet[to] = struct{}{}
		}
		internal[from] = targetSet
	}
	return &StaticTransitionPolicy{graph: internal}
}

// DefaultTransitionPolicy returns the editor state machine:
// idle→editor_open, editor_open→idle/generating, generating→idle/error,
// error→editor_open/idle. generating→idle covers both a successful apply and
// an abandoned cycle.
func DefaultTransitionPolicy() *StaticTransitionPolicy {
	return NewStaticTransitionPolicy(map[EditorState][]EditorState{
		EditorStateIdle:       {EditorStateOpen},
		EditorStateOpen:       {EditorStateIdle, EditorStateGenerating},
		EditorStateGenerating: {EditorStateIdle, EditorStateError},
		EditorStateError:      {EditorStateOpen, EditorStateIdle},
	})
}

// Validate ensures the target is allowed from the current state.
func (p *StaticTransitionPolicy) Validate(current, target EditorState) error {
	if current == "" || target == "" {
		return ErrTransitionNotAllowed
	}
	targets, ok := p.graph[current]
	if !ok {
		return ErrTransitionNotAllowed
	}
	if _, ok := targets[target]; !ok {
		return fmt.Errorf("%w: %s -> %s", ErrTransitionNotAllowed, current, target)
	}
	return nil
}

// AllowedTargets returns the sorted slice of valid targets from the provided state.
func (p *StaticTransitionPolicy) AllowedTargets(current EditorState) []EditorState {
	targets := p.graph[current]
	if len(targets) == 0 {
		return nil
	}
	out := make([]EditorState, 0, len(targets))
	for target := range targets {
		out = append(out, target)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
