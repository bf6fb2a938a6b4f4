package editor

import (
	"context"
	"sync"
)

// Cycle is one generation attempt, from Submit to apply, failure or drop.
type Cycle struct {
	seq    uint64
	prompt string
	done   chan struct{}
	once   sync.Once
	err    error
}

func newCycle(seq uint64, prompt string) *Cycle {
	return &Cycle{
		seq:    seq,
		prompt: prompt,
		done:   make(chan struct{}),
	}
}

// Seq is the sequence number that tagged this cycle at Submit time.
func (c *Cycle) Seq() uint64 {
	return c.seq
}

// Prompt is the text the cycle was started with.
func (c *Cycle) Prompt() string {
	return c.prompt
}

// Done is closed once the cycle has settled.
func (c *Cycle) Done() <-chan struct{} {
	return c.done
}

// Err reports the outcome once Done is closed: nil when the result was
// applied, ErrGenerationAbandoned when it was dropped, otherwise the failure.
func (c *Cycle) Err() error {
	select {
	case <-c.done:
		return c.err
	default:
		return nil
	}
}

// Wait blocks until the cycle settles or ctx ends.
func (c *Cycle) Wait(ctx context.Context) error {
	select {
	case <-c.done:
		return c.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Cycle) settle(err error) {
	c.once.Do(func() {
		c.err = err
		close(c.done)
	})
}
