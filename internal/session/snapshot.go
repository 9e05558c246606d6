package session

import "time"

// Snapshot is the persistable state of a Controller
type Snapshot struct {
	SessionID       string
	State           State
	TargetRounds    int
	RoundsCompleted int
	StartedAt       time.Time
	PausedAt        *time.Time
	CompletedAt     *time.Time
}

// Snapshot captures the controller's current state
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		SessionID:       c.sessionID,
		State:           c.state,
		TargetRounds:    c.targetRounds,
		RoundsCompleted: c.roundsCompleted,
		StartedAt:       c.startedAt,
	}
	if !c.pausedAt.IsZero() {
		t := c.pausedAt
		s.PausedAt = &t
	}
	if !c.completedAt.IsZero() {
		t := c.completedAt
		s.CompletedAt = &t
	}
	return s
}

// Restore rebuilds a controller from a snapshot. A nil clock uses time.Now.
func Restore(s Snapshot, clock Clock) *Controller {
	c := NewController(clock)
	c.sessionID = s.SessionID
	c.state = s.State
	if c.state == "" {
		c.state = NotStarted
	}
	c.targetRounds = s.TargetRounds
	c.roundsCompleted = s.RoundsCompleted
	c.startedAt = s.StartedAt
	if s.PausedAt != nil {
		c.pausedAt = *s.PausedAt
	}
	if s.CompletedAt != nil {
		c.completedAt = *s.CompletedAt
	}
	return c
}
