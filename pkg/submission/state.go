package submission

import (
	"github.com/kjeelani/soundseq/pkg/links"
)

// Messages shown to the user next to the input.
const (
	MsgInvalidLink = "Please enter a valid YouTube link."
	MsgSendFailed  = "Failed to send the video for processing. Try again."
)

// Phase is the coarse state of the form.
type Phase int

const (
	Editing Phase = iota
	Submitted
)

func (p Phase) String() string {
	switch p {
	case Editing:
		return "editing"
	case Submitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// State is everything the form needs to draw itself.
// Submitted implies an empty ErrorMessage and no pending request.
type State struct {
	Phase        Phase
	VideoLink    string
	ErrorMessage string
	Pending      bool
}

// Submitted reports whether the processing service accepted the link.
func (s State) Submitted() bool { return s.Phase == Submitted }

// Event is a command or an outcome fed into Transition.
type Event interface {
	event()
}

type (
	InputChanged    struct{ Text string }
	SubmitRequested struct{}
	SubmitSucceeded struct{}
	SubmitFailed    struct{ Err error }
	ResetRequested  struct{}
)

func (InputChanged) event()    {}
func (SubmitRequested) event() {}
func (SubmitSucceeded) event() {}
func (SubmitFailed) event()    {}
func (ResetRequested) event()  {}

// Effect is the side effect the caller must perform after a transition.
type Effect int

const (
	NoEffect Effect = iota
	// SendRequest asks the caller to post the state's VideoLink to the processing service.
	SendRequest
)

// Transition computes the next state for ev. A rejected command returns the
// unchanged state together with an error wrapping ErrInvalidState or ErrInFlight.
// A failed validation is not an error here: it shows up as ErrorMessage.
func Transition(s State, ev Event) (State, Effect, error) {
	switch ev := ev.(type) {
	case InputChanged:
		if s.Phase != Editing {
			return s, NoEffect, invalidState("input", s.Phase)
		}
		if s.Pending {
			return s, NoEffect, ErrInFlight
		}
		s.VideoLink = ev.Text
		s.ErrorMessage = ""
		return s, NoEffect, nil

	case SubmitRequested:
		if s.Phase != Editing {
			return s, NoEffect, invalidState("submit", s.Phase)
		}
		if s.Pending {
			return s, NoEffect, ErrInFlight
		}
		if !links.Valid(s.VideoLink) {
			s.ErrorMessage = MsgInvalidLink
			return s, NoEffect, nil
		}
		s.ErrorMessage = ""
		s.Pending = true
		return s, SendRequest, nil

	case SubmitSucceeded:
		if !s.Pending {
			return s, NoEffect, invalidState("submit result", s.Phase)
		}
		s.Pending = false
		s.Phase = Submitted
		s.ErrorMessage = ""
		return s, NoEffect, nil

	case SubmitFailed:
		if !s.Pending {
			return s, NoEffect, invalidState("submit result", s.Phase)
		}
		s.Pending = false
		s.ErrorMessage = MsgSendFailed
		return s, NoEffect, nil

	case ResetRequested:
		if s.Phase != Submitted {
			return s, NoEffect, invalidState("reset", s.Phase)
		}
		return State{}, NoEffect, nil
	}
	return s, NoEffect, invalidState("unknown event", s.Phase)
}
