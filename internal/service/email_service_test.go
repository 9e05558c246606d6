package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"

	"phonicsquest/internal/models"
	"phonicsquest/internal/validation"
)

type fakeSES struct {
	inputs []*sesv2.SendEmailInput
	err    error
}

func (f *fakeSES) SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.inputs = append(f.inputs, params)
	if f.err != nil {
		return nil, f.err
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func reportFixture() (*models.PracticeSession, models.SessionSummary) {
	session := &models.PracticeSession{ID: "session-1", ExerciseType: models.SoundIdentification, Difficulty: 3}
	summary := Summarize(session.ID, []models.Attempt{
		{Mode: "begin", IsCorrect: true},
		{Mode: "end", IsCorrect: false},
	})
	return session, summary
}

func TestDisabledEmailServiceSkipsReport(t *testing.T) {
	svc, err := NewEmailService("us-east-1", "", "", false)
	if err != nil {
		t.Fatalf("NewEmailService() error = %v", err)
	}
	if svc.IsEnabled() {
		t.Fatal("service without a sender should be disabled")
	}

	session, summary := reportFixture()
	if err := svc.SendSessionReport(context.Background(), "parent@example.com", session, summary); err != nil {
		t.Errorf("SendSessionReport() error = %v", err)
	}
}

func TestSendSessionReport(t *testing.T) {
	client := &fakeSES{}
	svc := &EmailService{client: client, fromEmail: "noreply@example.com", fromName: "PhonicsQuest", enabled: true}
	session, summary := reportFixture()

	if err := svc.SendSessionReport(context.Background(), "parent@example.com", session, summary); err != nil {
		t.Fatalf("SendSessionReport() error = %v", err)
	}
	if len(client.inputs) != 1 {
		t.Fatalf("SendEmail called %d times, want 1", len(client.inputs))
	}

	input := client.inputs[0]
	if got := aws.ToString(input.FromEmailAddress); got != "PhonicsQuest <noreply@example.com>" {
		t.Errorf("from = %q", got)
	}
	if got := aws.ToString(input.Content.Simple.Subject.Data); got != "Practice report: Sound identification" {
		t.Errorf("subject = %q", got)
	}
	text := aws.ToString(input.Content.Simple.Body.Text.Data)
	if !strings.Contains(text, "1 of 2 correct (50%)") {
		t.Errorf("text body missing score line:\n%s", text)
	}
	if !strings.Contains(text, "- begin: 1 / 1 (100%)") {
		t.Errorf("text body missing mode line:\n%s", text)
	}
}

func TestSendSessionReportWithoutRecipient(t *testing.T) {
	client := &fakeSES{}
	svc := &EmailService{client: client, fromEmail: "noreply@example.com", enabled: true}
	session, summary := reportFixture()

	if err := svc.SendSessionReport(context.Background(), "", session, summary); err != nil {
		t.Errorf("SendSessionReport() error = %v", err)
	}
	if len(client.inputs) != 0 {
		t.Error("no email should be sent without a recipient")
	}
}

func TestSendSessionReportError(t *testing.T) {
	svc := &EmailService{client: &fakeSES{err: errors.New("throttled")}, fromEmail: "a@example.com", enabled: true}
	session, summary := reportFixture()

	err := svc.SendSessionReport(context.Background(), "parent@example.com", session, summary)
	if err == nil || !strings.Contains(err.Error(), "throttled") {
		t.Errorf("SendSessionReport() error = %v, want wrapped SES error", err)
	}
}

func TestSendSessionReportRejectsBadRecipient(t *testing.T) {
	client := &fakeSES{}
	svc := &EmailService{client: client, fromEmail: "noreply@example.com", enabled: true}
	session, summary := reportFixture()

	err := svc.SendSessionReport(context.Background(), "parent-at-example", session, summary)
	if !validation.IsValidation(err) {
		t.Errorf("SendSessionReport() error = %v, want validation error", err)
	}
	if len(client.inputs) != 0 {
		t.Error("no email should be sent to a malformed address")
	}
}
