package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"graphlit-chat/internal/domain"
	"graphlit-chat/internal/service"
)

var (
	userStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	assistantStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

func renderMessage(msg domain.ChatMessage) string {
	label := userStyle.Render("You >")
	if msg.Role == domain.ChatRoleAssistant {
		label = assistantStyle.Render("Graphlit >")
	}
	return label + " " + msg.Content
}

// renderOutcome formatea el resultado de una accion para la terminal.
func renderOutcome(out service.Outcome) string {
	var b strings.Builder
	switch out.Kind {
	case service.OutcomeOK:
		if out.Notice != "" {
			b.WriteString(successStyle.Render(out.Notice))
		}
	case service.OutcomeIgnored:
		return ""
	case service.OutcomeCredentialRequired, service.OutcomeWarning, service.OutcomeConversation:
		b.WriteString(warningStyle.Render(out.Notice))
	default:
		b.WriteString(errorStyle.Render(out.Notice))
	}
	if len(out.Payload) > 0 {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(dimStyle.Render(prettyJSON(out.Payload)))
	}
	return b.String()
}

func renderFeeds(feeds []domain.Feed) string {
	if len(feeds) == 0 {
		return dimStyle.Render("No feeds.")
	}
	var b strings.Builder
	for i, f := range feeds {
		fmt.Fprintf(&b, "[%d] %s %s %s", i+1, f.Name, dimStyle.Render("("+f.ID+")"), f.State)
		if f.SchedulePolicy != nil && f.SchedulePolicy.RepeatInterval != "" {
			fmt.Fprintf(&b, " every %s", f.SchedulePolicy.RepeatInterval)
		}
		if i < len(feeds)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func prettyJSON(raw json.RawMessage) string {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return string(raw)
	}
	return string(out)
}

type statusSource interface {
	Credential() (domain.Credential, bool)
	ConversationID() string
}

func renderStatus(src statusSource, now time.Time) string {
	cred, ok := src.Credential()
	var b strings.Builder
	switch {
	case !ok:
		b.WriteString(warningStyle.Render(service.NoticeGetStarted))
	case cred.Expired(now):
		b.WriteString(warningStyle.Render("Credential expired at " + cred.ExpiresAt.Format(time.RFC3339) + "; run /token again."))
	default:
		b.WriteString(successStyle.Render(fmt.Sprintf("Credential (%s) valid until %s", cred.Role, cred.ExpiresAt.Format(time.RFC3339))))
	}
	b.WriteString("\n")
	if id := src.ConversationID(); id != "" {
		b.WriteString(dimStyle.Render("Conversation: " + id))
	} else {
		b.WriteString(dimStyle.Render("No conversation yet."))
	}
	return b.String()
}
