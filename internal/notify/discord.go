package notify

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/AssignmentSync_Go/internal/domain"
	"github.com/osse101/AssignmentSync_Go/internal/logger"
)

// WebhookExecutor posts a message through a Discord webhook.
// *discordgo.Session implements it.
type WebhookExecutor interface {
	WebhookExecute(webhookID, token string, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Discord announces run summaries in a channel through a webhook
type Discord struct {
	exec      WebhookExecutor
	webhookID string
	token     string
	username  string
}

// NewDiscord creates a notifier for the given webhook URL
func NewDiscord(webhookURL, username string) (*Discord, error) {
	id, token, err := ParseWebhookURL(webhookURL)
	if err != nil {
		return nil, err
	}
	// webhook execution needs no bot token
	s, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}
	return newDiscord(s, id, token, username), nil
}

func newDiscord(exec WebhookExecutor, id, token, username string) *Discord {
	return &Discord{exec: exec, webhookID: id, token: token, username: username}
}

// Notify posts one embed describing the run
func (d *Discord) Notify(ctx context.Context, summary *domain.RunSummary) error {
	params := &discordgo.WebhookParams{
		Username: d.username,
		Embeds:   []*discordgo.MessageEmbed{SummaryEmbed(summary)},
	}
	if _, err := d.exec.WebhookExecute(d.webhookID, d.token, false, params, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgWebhookFailed, err)
	}
	logger.FromContext(ctx).Debug(LogMsgNotificationSent, "run_id", summary.RunID)
	return nil
}

// SummaryEmbed renders a run summary
func SummaryEmbed(s *domain.RunSummary) *discordgo.MessageEmbed {
	title, color := titleSuccess, colorSuccess
	switch {
	case !s.Succeeded():
		title, color = titleFailure, colorFailure
	case s.DryRun:
		title, color = titleDryRun, colorDryRun
	case s.Failed > 0:
		title, color = titlePartial, colorPartial
	}

	embed := &discordgo.MessageEmbed{
		Title: title,
		Color: color,
		Fields: []*discordgo.MessageEmbedField{
			countField("Processed", s.Processed),
			countField("Created", s.Created),
			countField("Updated", s.Updated),
			countField("Skipped", s.Skipped),
			countField("Failed", s.Failed),
			{Name: "Duration", Value: s.Duration().Round(time.Millisecond).String(), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf(footerFormat, s.RunID),
		},
	}
	if !s.FinishedAt.IsZero() {
		embed.Timestamp = s.FinishedAt.Format(time.RFC3339)
	}
	if len(s.Sources) > 0 {
		embed.Description = "Sources: " + strings.Join(s.Sources, ", ")
	}
	if s.Err != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Error", Value: clip(s.Err)})
	}
	if len(s.Failures) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Failures", Value: failureList(s.Failures)})
	}
	return embed
}

func countField(name string, n int) *discordgo.MessageEmbedField {
	return &discordgo.MessageEmbedField{Name: name, Value: strconv.Itoa(n), Inline: true}
}

func failureList(failures []domain.RecordFailure) string {
	var b strings.Builder
	for i, f := range failures {
		if i == maxFailures {
			fmt.Fprintf(&b, moreFailures, len(failures)-maxFailures)
			break
		}
		fmt.Fprintf(&b, "• %s (%s): %s\n", f.Title, f.Source, f.Error)
	}
	return clip(strings.TrimSpace(b.String()))
}

// clip keeps a field value inside Discord's length limit
func clip(s string) string {
	r := []rune(s)
	if len(r) <= maxFieldChars {
		return s
	}
	return string(r[:maxFieldChars-1]) + "…"
}

// ParseWebhookURL extracts the webhook id and token from
// https://discord.com/api/webhooks/{id}/{token}
func ParseWebhookURL(raw string) (id, token string, err error) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", "", fmt.Errorf("%w: %s", domain.ErrConfig, ErrMsgInvalidWebhookURL)
	}
	idx := strings.Index(u.Path, webhookPath)
	if idx < 0 {
		return "", "", fmt.Errorf("%w: %s", domain.ErrConfig, ErrMsgInvalidWebhookURL)
	}
	parts := strings.Split(strings.Trim(u.Path[idx+len(webhookPath):], "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: %s", domain.ErrConfig, ErrMsgInvalidWebhookURL)
	}
	return parts[0], parts[1], nil
}
