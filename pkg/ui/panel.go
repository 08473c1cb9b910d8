package ui

// Package ui renders the conversation collection in a terminal. It
// subscribes to the event router rather than being called by the core
// directly, so it is one of potentially many panel surfaces.

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/go-go-golems/figaro/pkg/events"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	statusStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	userStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
)

// TerminalPanel renders panel-state events as a full redraw of the
// conversation list plus the selected conversation's transcript. Redraws
// are idempotent; redundant updates are safe.
type TerminalPanel struct {
	mu       sync.Mutex
	w        io.Writer
	renderer *glamour.TermRenderer
}

func NewTerminalPanel(w io.Writer) (*TerminalPanel, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create markdown renderer")
	}

	return &TerminalPanel{
		w:        w,
		renderer: renderer,
	}, nil
}

// Handler returns the watermill handler that feeds the panel from
// events.PanelTopic.
func (p *TerminalPanel) Handler() func(msg *message.Message) error {
	return func(msg *message.Message) error {
		var state events.PanelState
		if err := json.Unmarshal(msg.Payload, &state); err != nil {
			log.Warn().Err(err).Msg("dropping malformed panel state")
			return nil
		}

		p.render(&state)
		return nil
	}
}

func (p *TerminalPanel) render(state *events.PanelState) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if state.Show && len(state.Conversations) == 0 {
		return
	}

	var sb strings.Builder

	sb.WriteString(headerStyle.Render("Conversations"))
	sb.WriteString("\n")

	for _, conv := range state.Conversations {
		line := fmt.Sprintf("[%s] %s", conv.Codicon, conv.Title)
		if conv.ID == state.SelectedID {
			line = selectedStyle.Render("▸ " + line)
		} else {
			line = "  " + line
		}
		sb.WriteString(line)
		sb.WriteString(" ")
		sb.WriteString(renderStatus(conv))
		sb.WriteString("\n")
	}

	if selected, ok := findConversation(state); ok {
		sb.WriteString("\n")
		p.renderTranscript(&sb, selected)
	}

	fmt.Fprintln(p.w, sb.String())
}

func (p *TerminalPanel) renderTranscript(sb *strings.Builder, conv *events.ConversationView) {
	for _, msg := range conv.Messages {
		if msg.Role == "bot" {
			rendered, err := p.renderer.Render(msg.Content)
			if err != nil {
				log.Warn().Err(err).Msg("failed to render markdown, falling back to plain text")
				rendered = msg.Content + "\n"
			}
			sb.WriteString(rendered)
			continue
		}

		sb.WriteString(userStyle.Render("you: "))
		sb.WriteString(msg.Content)
		sb.WriteString("\n")
	}
}

func renderStatus(conv events.ConversationView) string {
	switch conv.Status {
	case "waitingForBotAnswer":
		return statusStyle.Render("(thinking…)")
	case "error":
		return errorStyle.Render("(error: " + conv.ErrorMessage + ")")
	default:
		return ""
	}
}

func findConversation(state *events.PanelState) (*events.ConversationView, bool) {
	for i := range state.Conversations {
		if state.Conversations[i].ID == state.SelectedID {
			return &state.Conversations[i], true
		}
	}
	return nil, false
}
