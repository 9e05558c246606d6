package service

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"phonicsquest/internal/event"
	"phonicsquest/internal/models"
	"phonicsquest/internal/pedagogy"
	"phonicsquest/internal/repository"
	"phonicsquest/internal/session"
	"phonicsquest/internal/validation"
)

type fakePublisher struct {
	mu        sync.Mutex
	completed []event.SessionCompletedEvent
	mastered  []event.SkillMasteredEvent
}

func (p *fakePublisher) PublishSessionCompleted(ctx context.Context, e *event.SessionCompletedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.completed = append(p.completed, *e)
	return nil
}

func (p *fakePublisher) PublishSkillMastered(ctx context.Context, e *event.SkillMasteredEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mastered = append(p.mastered, *e)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

type fakeReporter struct {
	mu       sync.Mutex
	to       []string
	sessions []string
}

func (r *fakeReporter) SendSessionReport(ctx context.Context, toEmail string, sess *models.PracticeSession, summary models.SessionSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.to = append(r.to, toEmail)
	r.sessions = append(r.sessions, sess.ID)
	return nil
}

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type practiceFixture struct {
	svc       *PracticeService
	repo      *repository.MemoryRepository
	publisher *fakePublisher
	reporter  *fakeReporter
	clock     *testClock
}

func newPracticeFixture() *practiceFixture {
	repo := repository.NewMemoryRepository()
	publisher := &fakePublisher{}
	reporter := &fakeReporter{}
	clock := &testClock{t: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}

	progress := NewProgressService(repo, publisher, pedagogy.DefaultMasteryRule, 1)
	svc := NewPracticeService(repo, progress, publisher, reporter, "parent@example.com")
	svc.now = clock.Now

	return &practiceFixture{svc: svc, repo: repo, publisher: publisher, reporter: reporter, clock: clock}
}

func (f *practiceFixture) create(t *testing.T, targetRounds int) *models.PracticeSession {
	t.Helper()
	sess, err := f.svc.CreateSession(CreateSessionRequest{
		ExerciseType: models.SoundIdentification,
		Difficulty:   2,
		TargetRounds: targetRounds,
	})
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	return sess
}

func answer(correct bool) SubmitAttemptRequest {
	req := SubmitAttemptRequest{
		RoundID:        "round-1-0",
		SelectedOption: "k",
		CorrectOption:  "k",
		ResponseTimeMs: 1200,
		Mode:           "begin",
	}
	if !correct {
		req.SelectedOption = "t"
	}
	return req
}

func TestCreateSession(t *testing.T) {
	f := newPracticeFixture()
	sess := f.create(t, 0)

	if !strings.HasPrefix(sess.ID, "session-") {
		t.Errorf("ID = %q, want session- prefix", sess.ID)
	}
	if sess.TargetRounds != models.DefaultTargetRounds {
		t.Errorf("TargetRounds = %d, want %d", sess.TargetRounds, models.DefaultTargetRounds)
	}
	if sess.StudentID != models.AnonymousStudent {
		t.Errorf("StudentID = %q, want %q", sess.StudentID, models.AnonymousStudent)
	}
	if sess.Status != models.StatusInProgress || sess.RoundsCompleted != 0 {
		t.Errorf("new session = %+v", sess)
	}
	if !sess.StartedAt.Equal(f.clock.Now()) {
		t.Errorf("StartedAt = %v", sess.StartedAt)
	}

	other := f.create(t, 0)
	if other.ID == sess.ID {
		t.Error("session ids must be unique")
	}
}

func TestCreateSessionValidation(t *testing.T) {
	tests := []struct {
		name string
		req  CreateSessionRequest
	}{
		{"missing type", CreateSessionRequest{Difficulty: 3}},
		{"unknown type", CreateSessionRequest{ExerciseType: "spelling", Difficulty: 3}},
		{"difficulty too low", CreateSessionRequest{ExerciseType: models.RhymeRecognition, Difficulty: 0}},
		{"difficulty too high", CreateSessionRequest{ExerciseType: models.RhymeRecognition, Difficulty: 11}},
		{"negative rounds", CreateSessionRequest{ExerciseType: models.RhymeRecognition, Difficulty: 3, TargetRounds: -1}},
	}

	f := newPracticeFixture()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreateSession(tt.req)
			if !validation.IsValidation(err) {
				t.Errorf("CreateSession() error = %v, want validation error", err)
			}
		})
	}
}

func TestGetRoundsIsStable(t *testing.T) {
	f := newPracticeFixture()
	sess := f.create(t, 5)

	first, err := f.svc.GetRounds(sess.ID)
	if err != nil {
		t.Fatalf("GetRounds() error = %v", err)
	}
	if len(first) != 5 {
		t.Fatalf("got %d rounds, want 5", len(first))
	}

	second, _ := f.svc.GetRounds(sess.ID)
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated GetRounds() returned different rounds")
	}
}

func TestUnknownSessionIsNotFound(t *testing.T) {
	f := newPracticeFixture()
	ctx := context.Background()

	checks := map[string]error{}
	_, checks["GetSession"] = f.svc.GetSession("session-missing")
	_, checks["GetRounds"] = f.svc.GetRounds("session-missing")
	_, checks["SubmitAttempt"] = f.svc.SubmitAttempt(ctx, "session-missing", answer(true))
	_, checks["GetSummary"] = f.svc.GetSummary("session-missing")
	_, checks["PauseSession"] = f.svc.PauseSession("session-missing")
	_, checks["EndSession"] = f.svc.EndSession(ctx, "session-missing")

	for op, err := range checks {
		if !errors.Is(err, repository.ErrNotFound) {
			t.Errorf("%s() error = %v, want ErrNotFound", op, err)
		}
	}
}

func TestSubmitAttemptCompletesSession(t *testing.T) {
	f := newPracticeFixture()
	ctx := context.Background()
	sess := f.create(t, 2)

	first, err := f.svc.SubmitAttempt(ctx, sess.ID, answer(true))
	if err != nil {
		t.Fatalf("SubmitAttempt() error = %v", err)
	}
	if first.SessionSummary != nil {
		t.Error("summary returned before the target was reached")
	}
	if !first.Attempt.IsCorrect || !strings.HasPrefix(first.Attempt.ID, "attempt-") {
		t.Errorf("attempt = %+v", first.Attempt)
	}

	second, err := f.svc.SubmitAttempt(ctx, sess.ID, answer(true))
	if err != nil {
		t.Fatalf("SubmitAttempt() error = %v", err)
	}
	if second.SessionSummary == nil {
		t.Fatal("summary missing on the completing attempt")
	}
	if second.SessionSummary.PointsEarned != 10 || second.SessionSummary.Accuracy != 100 {
		t.Errorf("summary = %+v, want 10 points at 100%%", second.SessionSummary)
	}

	stored, _ := f.repo.GetSession(sess.ID)
	if stored.Status != models.StatusCompleted || stored.CompletedAt == nil || stored.RoundsCompleted != 2 {
		t.Errorf("stored session = %+v", stored)
	}

	if len(f.publisher.completed) != 1 || f.publisher.completed[0].SessionID != sess.ID {
		t.Errorf("completed events = %+v", f.publisher.completed)
	}
	if len(f.reporter.to) != 1 || f.reporter.to[0] != "parent@example.com" {
		t.Errorf("reports sent to %v", f.reporter.to)
	}

	progress, err := f.repo.GetProgress(models.AnonymousStudent, string(models.SoundIdentification))
	if err != nil {
		t.Fatalf("progress not recorded: %v", err)
	}
	if progress.Attempts != 2 || progress.Sessions != 1 {
		t.Errorf("progress = %+v", progress)
	}

	_, err = f.svc.SubmitAttempt(ctx, sess.ID, answer(true))
	if !errors.Is(err, ErrSessionCompleted) {
		t.Errorf("attempt after completion error = %v, want ErrSessionCompleted", err)
	}
}

func TestSubmitAttemptValidation(t *testing.T) {
	f := newPracticeFixture()
	sess := f.create(t, 3)
	no := false

	tests := []struct {
		name   string
		mutate func(*SubmitAttemptRequest)
	}{
		{"missing round", func(r *SubmitAttemptRequest) { r.RoundID = "" }},
		{"missing selection", func(r *SubmitAttemptRequest) { r.SelectedOption = " " }},
		{"missing answer", func(r *SubmitAttemptRequest) { r.CorrectOption = "" }},
		{"negative response time", func(r *SubmitAttemptRequest) { r.ResponseTimeMs = -1 }},
		{"negative retries", func(r *SubmitAttemptRequest) { r.Retries = -2 }},
		{"unknown mode", func(r *SubmitAttemptRequest) { r.Mode = "sideways" }},
		{"contradicting isCorrect", func(r *SubmitAttemptRequest) { r.IsCorrect = &no }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := answer(true)
			tt.mutate(&req)
			_, err := f.svc.SubmitAttempt(context.Background(), sess.ID, req)
			if !validation.IsValidation(err) {
				t.Errorf("SubmitAttempt() error = %v, want validation error", err)
			}
		})
	}

	summary, _ := f.svc.GetSummary(sess.ID)
	if summary.TotalRounds != 0 {
		t.Errorf("rejected attempts were recorded: %+v", summary)
	}
}

func TestSubmitAttemptDerivesCorrectness(t *testing.T) {
	f := newPracticeFixture()
	sess := f.create(t, 3)
	yes := true

	req := answer(true)
	req.IsCorrect = &yes
	result, err := f.svc.SubmitAttempt(context.Background(), sess.ID, req)
	if err != nil {
		t.Fatalf("SubmitAttempt() error = %v", err)
	}
	if !result.Attempt.IsCorrect {
		t.Error("matching isCorrect should be accepted")
	}

	result, err = f.svc.SubmitAttempt(context.Background(), sess.ID, answer(false))
	if err != nil {
		t.Fatalf("SubmitAttempt() error = %v", err)
	}
	if result.Attempt.IsCorrect {
		t.Error("mismatched options recorded as correct")
	}
}

func TestPauseAndResume(t *testing.T) {
	f := newPracticeFixture()
	ctx := context.Background()
	sess := f.create(t, 3)

	f.clock.Advance(10 * time.Second)
	paused, err := f.svc.PauseSession(sess.ID)
	if err != nil {
		t.Fatalf("PauseSession() error = %v", err)
	}
	if paused.Status != models.StatusPaused || paused.PausedAt == nil {
		t.Errorf("paused session = %+v", paused)
	}

	f.clock.Advance(time.Minute)
	state, _ := f.svc.GetSession(sess.ID)
	if state.ElapsedMs != 10000 {
		t.Errorf("ElapsedMs while paused = %d, want 10000", state.ElapsedMs)
	}

	if _, err := f.svc.SubmitAttempt(ctx, sess.ID, answer(true)); !errors.Is(err, session.ErrInvalidTransition) {
		t.Errorf("attempt while paused error = %v, want ErrInvalidTransition", err)
	}
	if _, err := f.svc.PauseSession(sess.ID); !errors.Is(err, session.ErrInvalidTransition) {
		t.Errorf("double pause error = %v, want ErrInvalidTransition", err)
	}

	resumed, err := f.svc.ResumeSession(sess.ID)
	if err != nil {
		t.Fatalf("ResumeSession() error = %v", err)
	}
	if resumed.Status != models.StatusInProgress || resumed.PausedAt != nil {
		t.Errorf("resumed session = %+v", resumed)
	}

	// paused time is part of elapsed time
	state, _ = f.svc.GetSession(sess.ID)
	if state.ElapsedMs != 70000 {
		t.Errorf("ElapsedMs after resume = %d, want 70000", state.ElapsedMs)
	}

	if _, err := f.svc.SubmitAttempt(ctx, sess.ID, answer(true)); err != nil {
		t.Errorf("attempt after resume error = %v", err)
	}
}

func TestEndSession(t *testing.T) {
	f := newPracticeFixture()
	ctx := context.Background()
	sess := f.create(t, 10)

	for _, ok := range []bool{true, true, true, false} {
		if _, err := f.svc.SubmitAttempt(ctx, sess.ID, answer(ok)); err != nil {
			t.Fatalf("SubmitAttempt() error = %v", err)
		}
	}

	summary, err := f.svc.EndSession(ctx, sess.ID)
	if err != nil {
		t.Fatalf("EndSession() error = %v", err)
	}
	if summary.TotalRounds != 4 || summary.MaxStreak != 3 || summary.PointsEarned != 21 {
		t.Errorf("summary = %+v", summary)
	}

	stored, _ := f.repo.GetSession(sess.ID)
	if stored.Status != models.StatusCompleted {
		t.Errorf("status = %s, want completed", stored.Status)
	}

	if _, err := f.svc.EndSession(ctx, sess.ID); !errors.Is(err, ErrSessionCompleted) {
		t.Errorf("second EndSession() error = %v, want ErrSessionCompleted", err)
	}
	if _, err := f.svc.ResumeSession(sess.ID); !errors.Is(err, ErrSessionCompleted) {
		t.Errorf("ResumeSession() on completed error = %v, want ErrSessionCompleted", err)
	}

	// summary stays available after completion
	again, err := f.svc.GetSummary(sess.ID)
	if err != nil || !reflect.DeepEqual(*again, *summary) {
		t.Errorf("GetSummary() = %+v, %v", again, err)
	}
}

func TestEndSessionWithoutAttemptsSkipsProgress(t *testing.T) {
	f := newPracticeFixture()
	sess := f.create(t, 5)

	summary, err := f.svc.EndSession(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("EndSession() error = %v", err)
	}
	if summary.TotalRounds != 0 || summary.Accuracy != 0 {
		t.Errorf("summary = %+v", summary)
	}

	list, _ := f.repo.ListProgress(models.AnonymousStudent, false)
	if len(list) != 0 {
		t.Errorf("progress recorded for an empty session: %+v", list)
	}
}

func TestConcurrentAttemptsCompleteOnce(t *testing.T) {
	f := newPracticeFixture()
	sess := f.create(t, 5)

	var wg sync.WaitGroup
	var mu sync.Mutex
	summaries, completedErrs := 0, 0

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := f.svc.SubmitAttempt(context.Background(), sess.ID, answer(true))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case errors.Is(err, ErrSessionCompleted):
				completedErrs++
			case err != nil:
				t.Errorf("SubmitAttempt() error = %v", err)
			case result.SessionSummary != nil:
				summaries++
			}
		}()
	}
	wg.Wait()

	if summaries != 1 {
		t.Errorf("%d attempts returned a summary, want 1", summaries)
	}
	if completedErrs != 3 {
		t.Errorf("%d attempts rejected, want 3", completedErrs)
	}

	attempts, _ := f.repo.ListAttempts(sess.ID)
	if len(attempts) != 5 {
		t.Errorf("recorded %d attempts, want 5", len(attempts))
	}
	if len(f.publisher.completed) != 1 {
		t.Errorf("published %d completion events, want 1", len(f.publisher.completed))
	}
}

func TestConcurrentSessionsAccumulateProgress(t *testing.T) {
	const sessions = 8

	for iter := 0; iter < 25; iter++ {
		f := newPracticeFixture()
		ids := make([]string, sessions)
		for i := range ids {
			ids[i] = f.create(t, 1).ID
		}

		var wg sync.WaitGroup
		for _, id := range ids {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				if _, err := f.svc.SubmitAttempt(context.Background(), id, answer(true)); err != nil {
					t.Errorf("SubmitAttempt() error = %v", err)
				}
			}(id)
		}
		wg.Wait()

		p, err := f.repo.GetProgress("anonymous", string(models.SoundIdentification))
		if err != nil {
			t.Fatalf("GetProgress() error = %v", err)
		}
		if p.Sessions != sessions || p.Attempts != sessions {
			t.Fatalf("iteration %d: sessions = %d, attempts = %d, want %d each", iter, p.Sessions, p.Attempts, sessions)
		}
	}
}

// failingAttemptStore rejects every attempt write
type failingAttemptStore struct {
	*repository.MemoryRepository
}

func (s failingAttemptStore) RecordAttempt(attempt *models.Attempt, sess *models.PracticeSession) error {
	return errors.New("disk full")
}

func TestSubmitAttemptFailureLeavesSessionUnchanged(t *testing.T) {
	repo := repository.NewMemoryRepository()
	publisher := &fakePublisher{}
	progress := NewProgressService(repo, publisher, pedagogy.DefaultMasteryRule, 1)
	svc := NewPracticeService(failingAttemptStore{repo}, progress, publisher, &fakeReporter{}, "")

	sess, err := svc.CreateSession(CreateSessionRequest{ExerciseType: models.PhonemeCount, Difficulty: 3, TargetRounds: 1})
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	if _, err := svc.SubmitAttempt(context.Background(), sess.ID, answer(true)); err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("SubmitAttempt() error = %v, want the store error", err)
	}

	stored, _ := repo.GetSession(sess.ID)
	attempts, _ := repo.ListAttempts(sess.ID)
	if stored.RoundsCompleted != 0 || stored.Status != models.StatusInProgress || len(attempts) != 0 {
		t.Errorf("session = %+v with %d attempts, want it untouched", stored, len(attempts))
	}
	if len(publisher.completed) != 0 {
		t.Error("a failed attempt must not complete the session")
	}
}
