package ui

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/go-go-golems/figaro/pkg/events"
)

var (
	infoNotificationStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	errorNotificationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// NotificationHandler returns the watermill handler that prints
// notifications from events.NotificationTopic.
func NotificationHandler(w io.Writer) func(msg *message.Message) error {
	return func(msg *message.Message) error {
		var notification events.Notification
		if err := json.Unmarshal(msg.Payload, &notification); err != nil {
			log.Warn().Err(err).Msg("dropping malformed notification")
			return nil
		}

		style := infoNotificationStyle
		if notification.Severity == "error" {
			style = errorNotificationStyle
		}

		fmt.Fprintln(w, style.Render(fmt.Sprintf("[%s] %s", notification.Severity, notification.Message)))
		return nil
	}
}
