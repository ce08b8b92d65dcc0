package submission

import (
	"context"
	"log/slog"
	"sync"

	"github.com/kjeelani/soundseq/pkg/links"
)

// Processor forwards an accepted video link to the processing service.
type Processor interface {
	ApplySFX(ctx context.Context, videoLink string) error
}

// Controller owns one form's State and runs its commands.
// It is safe for concurrent use; at most one submission is in flight at a time.
type Controller struct {
	proc Processor

	mu      sync.Mutex
	state   State
	subs    map[int]func(State)
	nextSub int
}

func NewController(proc Processor) *Controller {
	return &Controller{
		proc: proc,
		subs: make(map[int]func(State)),
	}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe registers fn to receive every new state. The returned func removes it.
func (c *Controller) Subscribe(fn func(State)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

// InputChanged replaces the video link and clears any error message.
func (c *Controller) InputChanged(text string) error {
	_, _, err := c.dispatch(InputChanged{Text: text})
	return err
}

// Submit validates the link and, when it passes, sends it to the processing service.
// It returns *ValidationError or *SubmissionError when the form stays in Editing,
// ErrInFlight when another submission is running, and nil once Submitted.
func (c *Controller) Submit(ctx context.Context) error {
	next, effect, err := c.dispatch(SubmitRequested{})
	if err != nil {
		return err
	}
	if effect != SendRequest {
		slog.Debug("Video link rejected", "link", next.VideoLink)
		return &ValidationError{Link: next.VideoLink}
	}

	link := next.VideoLink
	slog.Info("Sending video for processing", "vid", links.VideoID(link))

	if perr := c.proc.ApplySFX(ctx, link); perr != nil {
		slog.Warn("Processing request failed", "vid", links.VideoID(link), "err", perr)
		if _, _, derr := c.dispatch(SubmitFailed{Err: perr}); derr != nil {
			return derr
		}
		return &SubmissionError{Err: perr}
	}

	if _, _, derr := c.dispatch(SubmitSucceeded{}); derr != nil {
		return derr
	}
	slog.Info("Video accepted for processing", "vid", links.VideoID(link))
	return nil
}

// Reset returns a submitted form to its initial empty state.
func (c *Controller) Reset() error {
	_, _, err := c.dispatch(ResetRequested{})
	return err
}

func (c *Controller) dispatch(ev Event) (State, Effect, error) {
	c.mu.Lock()
	next, effect, err := Transition(c.state, ev)
	if err != nil {
		c.mu.Unlock()
		return next, effect, err
	}
	c.state = next
	subs := make([]func(State), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return next, effect, nil
}
