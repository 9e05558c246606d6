package event

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestDisabledPublisherDropsEvents(t *testing.T) {
	p, err := NewEventPublisher("", "practice.events")
	if err != nil {
		t.Fatalf("NewEventPublisher() error = %v", err)
	}
	if p.IsEnabled() {
		t.Fatal("publisher with empty URI should be disabled")
	}

	ctx := context.Background()
	completed := &SessionCompletedEvent{SessionID: "session-1"}
	if err := p.PublishSessionCompleted(ctx, completed); err != nil {
		t.Errorf("PublishSessionCompleted() error = %v", err)
	}
	if completed.EventType != EventTypeSessionCompleted || completed.Timestamp == 0 {
		t.Errorf("event not stamped: %+v", completed)
	}

	mastered := &SkillMasteredEvent{StudentID: "s", SkillID: "k"}
	if err := p.PublishSkillMastered(ctx, mastered); err != nil {
		t.Errorf("PublishSkillMastered() error = %v", err)
	}
	if mastered.EventType != EventTypeSkillMastered {
		t.Errorf("EventType = %q", mastered.EventType)
	}

	if err := p.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestNewEventPublisherBadURI(t *testing.T) {
	if _, err := NewEventPublisher("not-a-uri", "practice.events"); err == nil {
		t.Error("expected an error for a malformed URI")
	}
}

func TestEventJSONShape(t *testing.T) {
	e := SessionCompletedEvent{
		EventType:   EventTypeSessionCompleted,
		SessionID:   "session-1",
		CompletedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	body, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	for _, key := range []string{`"eventType":"session.completed"`, `"sessionId":"session-1"`, `"completedAt"`} {
		if !strings.Contains(string(body), key) {
			t.Errorf("JSON %s missing %s", body, key)
		}
	}
}
