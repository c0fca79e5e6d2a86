package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/rs/zerolog/log"

	"hangman/internal/models"
)

// EmailService sends game reminder emails via Amazon SES
type EmailService struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
	enabled   bool
	now       func() time.Time
}

// NewEmailService creates a new email service. When fromEmail is empty the
// service is disabled and every send is skipped with a log line.
func NewEmailService(ctx context.Context, awsRegion, fromEmail, fromName string) (*EmailService, error) {
	if fromEmail == "" {
		log.Info().Msg("email service disabled: EMAIL_FROM not configured")
		return &EmailService{enabled: false, now: time.Now}, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(awsRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Info().Str("from", fromEmail).Str("region", awsRegion).Msg("email service enabled")
	return &EmailService{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   true,
		now:       time.Now,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendReminder emails the owner of an idle game. The game passed in must
// already be masked.
func (s *EmailService) SendReminder(ctx context.Context, to *models.User, game *models.Game) error {
	if !s.enabled {
		log.Info().Str("to", to.Email).Str("game", game.Key).Msg("skipping reminder send (service disabled)")
		return nil
	}

	started := startedAgo(s.now().UTC(), game.Start)
	subject := "Hangman Game Reminder"

	textBody := fmt.Sprintf(`Hello %s,

This is a gentle reminder to resume your hangman game that was started %s.

Game:    %s
Word:    %s
Guesses: %s

Good luck!
`, to.Name, started, game.Key, game.Word, game.GuessList())

	htmlBody := "<pre>\n" + textBody + "</pre>"

	return s.sendEmail(ctx, to.Email, subject, htmlBody, textBody)
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

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	log.Info().Str("to", toEmail).Str("subject", subject).Msg("email sent")
	return nil
}

// startedAgo renders a coarse human description of how long ago t was.
func startedAgo(now, t time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "moments ago"
	case d < time.Hour:
		return plural(int(d.Minutes()), "minute") + " ago"
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hour") + " ago"
	default:
		return plural(int(d.Hours())/24, "day") + " ago"
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
