// Package session implements the lifecycle of a single practice session.
//
// A Controller is owned by one caller at a time. The practice service
// rebuilds one from its stored Snapshot for each request.
package session

import (
	"errors"
	"fmt"
	"time"

	"phonicsquest/internal/validation"
)

// ErrInvalidTransition is returned when an operation is not allowed from the current state
var ErrInvalidTransition = errors.New("invalid session transition")

// State is a lifecycle state of the session
type State string

const (
	NotStarted State = "not-started"
	InProgress State = "in-progress"
	Paused     State = "paused"
	Completed  State = "completed"
)

// Clock returns the current time
type Clock func() time.Time

// Controller is the session state machine:
// not-started -> in-progress <-> paused, and in-progress -> completed.
type Controller struct {
	now Clock

	sessionID       string
	state           State
	targetRounds    int
	roundsCompleted int
	startedAt       time.Time
	pausedAt        time.Time
	completedAt     time.Time
}

// NewController creates a controller in the not-started state. A nil clock uses time.Now.
func NewController(clock Clock) *Controller {
	if clock == nil {
		clock = time.Now
	}
	return &Controller{now: clock, state: NotStarted}
}

// State returns the current lifecycle state
func (c *Controller) State() State { return c.state }

// SessionID returns the id passed to Start
func (c *Controller) SessionID() string { return c.sessionID }

// TargetRounds returns the number of rounds that completes the session
func (c *Controller) TargetRounds() int { return c.targetRounds }

// RoundsCompleted returns how many rounds have been answered
func (c *Controller) RoundsCompleted() int { return c.roundsCompleted }

// StartedAt returns when Start was called
func (c *Controller) StartedAt() time.Time { return c.startedAt }

// CompletedAt returns when the session completed, or the zero time before that
func (c *Controller) CompletedAt() time.Time { return c.completedAt }

// Start begins the session
func (c *Controller) Start(sessionID string, targetRounds int) (State, error) {
	if c.state != NotStarted {
		return c.state, c.transitionError("start")
	}
	if err := validation.ValidateTargetRounds(targetRounds); err != nil {
		return c.state, err
	}

	c.sessionID = sessionID
	c.targetRounds = targetRounds
	c.roundsCompleted = 0
	c.startedAt = c.now()
	c.pausedAt = time.Time{}
	c.completedAt = time.Time{}
	c.state = InProgress
	return c.state, nil
}

// Pause freezes elapsed time at the current instant
func (c *Controller) Pause() (State, error) {
	if c.state != InProgress {
		return c.state, c.transitionError("pause")
	}
	c.pausedAt = c.now()
	c.state = Paused
	return c.state, nil
}

// Resume continues a paused session. Time spent paused still counts as elapsed.
func (c *Controller) Resume() (State, error) {
	if c.state != Paused {
		return c.state, c.transitionError("resume")
	}
	c.pausedAt = time.Time{}
	c.state = InProgress
	return c.state, nil
}

// RoundComplete records one finished round and completes the session once the
// target is reached. Calling it on a completed session changes nothing.
func (c *Controller) RoundComplete() (State, error) {
	switch c.state {
	case Completed:
		return c.state, nil
	case InProgress:
	default:
		return c.state, c.transitionError("complete a round")
	}

	c.roundsCompleted++
	if c.roundsCompleted >= c.targetRounds {
		c.finish()
	}
	return c.state, nil
}

// Complete ends the session early regardless of the round count
func (c *Controller) Complete() (State, error) {
	if c.state != InProgress {
		return c.state, c.transitionError("complete")
	}
	c.finish()
	return c.state, nil
}

// Reset discards the session and returns to not-started. A new session id is
// required to start again.
func (c *Controller) Reset() State {
	*c = Controller{now: c.now, state: NotStarted}
	return c.state
}

// Elapsed is the time since start, frozen while paused. It is zero before start.
func (c *Controller) Elapsed() time.Duration {
	if c.state == NotStarted || c.startedAt.IsZero() {
		return 0
	}
	end := c.now()
	if c.state == Paused && !c.pausedAt.IsZero() {
		end = c.pausedAt
	}
	if end.Before(c.startedAt) {
		return 0
	}
	return end.Sub(c.startedAt)
}

func (c *Controller) finish() {
	c.state = Completed
	c.pausedAt = time.Time{}
	c.completedAt = c.now()
}

func (c *Controller) transitionError(op string) error {
	return fmt.Errorf("cannot %s a %s session: %w", op, c.state, ErrInvalidTransition)
}
