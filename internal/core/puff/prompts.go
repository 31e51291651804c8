// Copyright (c) 2026 BudCenter. All rights reserved.

package puff

import (
	"context"
	"sync"
	"time"

	"github.com/budcenter/budbuddy/internal/platform/metrics"
	"github.com/budcenter/budbuddy/pkg/uuidv7"
)

// Delivery is the outcome of handing a button press to [Prompts.Deliver].
type Delivery int

const (
	// Accepted means the press was the first valid signal for its prompt.
	Accepted Delivery = iota
	// NotOwner means the press came from someone other than the requesting user.
	NotOwner
	// Unknown means the prompt already ended or never existed.
	Unknown
)

// Prompts tracks the open reset prompts, keyed by correlation token.
//
// # Lifecycle
//
// [Prompts.Open] registers a [Prompt] for one user. The first accepted
// [Prompts.Deliver] removes it and wakes the waiter; [Prompt.Await] removes it
// on timeout. Whichever removes the token decides the outcome, so exactly one
// transition happens per prompt.
//
// # Concurrency
//
// Safe for concurrent use.
type Prompts struct {
	window time.Duration

	mu      sync.Mutex
	pending map[string]*Prompt
}

// Prompt is one open reset prompt.
type Prompt struct {
	// Token correlates the prompt's buttons with it.
	Token string

	ownerID  string
	signal   chan ResetChoice
	registry *Prompts
}

// NewPrompts creates a registry whose prompts expire after window.
func NewPrompts(window time.Duration) *Prompts {
	return &Prompts{window: window, pending: make(map[string]*Prompt)}
}

// Open registers a prompt owned by ownerID.
func (prompts *Prompts) Open(ownerID string) *Prompt {
	opened := &Prompt{
		Token:    uuidv7.New(),
		ownerID:  ownerID,
		signal:   make(chan ResetChoice, 1),
		registry: prompts,
	}

	prompts.mu.Lock()
	defer prompts.mu.Unlock()

	prompts.pending[opened.Token] = opened
	return opened
}

/*
Deliver hands a button press to the prompt it belongs to.

Parameters:
  - token: string (from the button custom id)
  - actorID: string (the user who pressed)
  - choice: ResetChoice

Returns:
  - Delivery: Accepted only for the owner's first press while the prompt is open
*/
func (prompts *Prompts) Deliver(token, actorID string, choice ResetChoice) Delivery {
	prompts.mu.Lock()
	defer prompts.mu.Unlock()

	pending, ok := prompts.pending[token]
	if !ok {
		return Unknown
	}
	if pending.ownerID != actorID {
		return NotOwner
	}

	delete(prompts.pending, token)
	pending.signal <- choice
	return Accepted
}

// Len returns the number of open prompts.
func (prompts *Prompts) Len() int {
	prompts.mu.Lock()
	defer prompts.mu.Unlock()
	return len(prompts.pending)
}

/*
Await blocks until the prompt is answered, its window elapses, or ctx ends.

Description: A press accepted before Await is called is not lost; it is read
from the prompt's buffered signal.

Parameters:
  - ctx: context.Context (the invocation context)

Returns:
  - ResetState: Confirmed, Canceled or TimedOut
*/
func (opened *Prompt) Await(ctx context.Context) ResetState {
	timer := time.NewTimer(opened.registry.window)
	defer timer.Stop()

	var state ResetState
	select {
	case choice := <-opened.signal:
		state = choice.state()
	case <-timer.C:
		state = opened.expire()
	case <-ctx.Done():
		state = opened.expire()
	}

	metrics.ResetPromptsTotal.WithLabelValues(state.String()).Inc()
	return state
}

// expire removes the token unless a press won the race, in which case that press stands.
func (opened *Prompt) expire() ResetState {
	registry := opened.registry

	registry.mu.Lock()
	defer registry.mu.Unlock()

	if _, open := registry.pending[opened.Token]; open {
		delete(registry.pending, opened.Token)
		return ResetTimedOut
	}
	return (<-opened.signal).state()
}
