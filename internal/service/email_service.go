package service

import (
	"context"
	"fmt"
	"html"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"phonicsquest/internal/models"
	"phonicsquest/internal/validation"
)

// sesClient is the subset of the SES API the email service calls
type sesClient interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// EmailService handles sending emails via Amazon SES
type EmailService struct {
	client    sesClient
	fromEmail string
	fromName  string
	enabled   bool
	debug     bool
}

// NewEmailService creates a new email service
func NewEmailService(awsRegion, fromEmail, fromName string, debug bool) (*EmailService, error) {
	// If fromEmail is empty, create a disabled service
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		if debug {
			log.Println("[DEBUG] Email service will skip sending all session reports")
		}
		return &EmailService{
			enabled: false,
			debug:   debug,
		}, nil
	}

	if debug {
		log.Printf("[DEBUG] Initializing email service with AWS SES")
		log.Printf("[DEBUG] AWS Region: %s", awsRegion)
		log.Printf("[DEBUG] From Email: %s", fromEmail)
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)

	return &EmailService{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   true,
		debug:     debug,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendSessionReport emails a completed session's results
func (s *EmailService) SendSessionReport(ctx context.Context, toEmail string, session *models.PracticeSession, summary models.SessionSummary) error {
	if !s.enabled {
		if s.debug {
			log.Printf("[DEBUG] Skipping session report for %s (service disabled)", session.ID)
		}
		return nil
	}
	if toEmail == "" {
		return nil
	}
	if err := validation.ValidateEmail(toEmail); err != nil {
		return err
	}

	subject := fmt.Sprintf("Practice report: %s", exerciseTitle(session.ExerciseType))
	htmlBody, textBody := renderSessionReport(session, summary)

	if s.debug {
		log.Printf("[DEBUG] Sending session report: session=%s, to=%s", session.ID, toEmail)
	}

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// exerciseTitle turns "sound-identification" into "Sound identification"
func exerciseTitle(t models.ExerciseType) string {
	title := strings.ReplaceAll(string(t), "-", " ")
	if title == "" {
		return title
	}
	return strings.ToUpper(title[:1]) + title[1:]
}

func renderSessionReport(session *models.PracticeSession, summary models.SessionSummary) (string, string) {
	var rows, lines strings.Builder
	for _, m := range summary.ModeStats {
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%d / %d</td><td>%.0f%%</td></tr>\n",
			html.EscapeString(m.Mode), m.Correct, m.Attempted, m.Accuracy)
		fmt.Fprintf(&lines, "- %s: %d / %d (%.0f%%)\n", m.Mode, m.Correct, m.Attempted, m.Accuracy)
	}

	title := html.EscapeString(exerciseTitle(session.ExerciseType))

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		.header { background-color: #4a90e2; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
		.content { background-color: #f9f9f9; padding: 30px; border-radius: 0 0 5px 5px; }
		.footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header">
			<h1>%s</h1>
		</div>
		<div class="content">
			<p>Level %d practice finished with %d of %d correct (%.0f%%).</p>
			<p>Best streak: %d. Points earned: %d.</p>
			<table>
				<tr><th>Mode</th><th>Correct</th><th>Accuracy</th></tr>
%s			</table>
		</div>
		<div class="footer">
			<p>This is an automated email from PhonicsQuest. Please do not reply.</p>
		</div>
	</div>
</body>
</html>
`, title, session.Difficulty, summary.CorrectRounds, summary.TotalRounds, summary.Accuracy,
		summary.MaxStreak, summary.PointsEarned, rows.String())

	textBody := fmt.Sprintf(`%s

Level %d practice finished with %d of %d correct (%.0f%%).
Best streak: %d. Points earned: %d.

%s
---
This is an automated email from PhonicsQuest. Please do not reply.
`, exerciseTitle(session.ExerciseType), session.Difficulty, summary.CorrectRounds, summary.TotalRounds,
		summary.Accuracy, summary.MaxStreak, summary.PointsEarned, lines.String())

	return htmlBody, textBody
}

// sendEmail sends an email using Amazon SES
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	if s.debug && result.MessageId != nil {
		log.Printf("[DEBUG] Message ID: %s", *result.MessageId)
	}

	log.Printf("Email sent successfully: to=%s, subject=%s", toEmail, subject)
	return nil
}
