package events

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/go-go-golems/figaro/pkg/chat"
)

const (
	PanelTopic        = "ui.panel"
	NotificationTopic = "ui.notification"
)

type MessageView struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ConversationView struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Codicon      string        `json:"codicon"`
	Status       string        `json:"status"`
	ErrorMessage string        `json:"errorMessage,omitempty"`
	Messages     []MessageView `json:"messages"`
}

// PanelState is the serializable snapshot of the conversation collection
// published on PanelTopic. Show marks a bare reveal request carrying no
// collection state.
type PanelState struct {
	SelectedID    string             `json:"selectedId,omitempty"`
	Show          bool               `json:"show,omitempty"`
	Conversations []ConversationView `json:"conversations"`
}

func NewPanelState(model *chat.ChatModel) *PanelState {
	ret := &PanelState{
		SelectedID: model.SelectedID(),
	}

	for _, conv := range model.Conversations() {
		status := conv.Status()
		view := ConversationView{
			ID:           conv.ID(),
			Title:        conv.Title(),
			Codicon:      conv.Codicon(),
			Status:       string(status.Type),
			ErrorMessage: status.ErrorMessage,
		}
		for _, msg := range conv.Messages() {
			view.Messages = append(view.Messages, MessageView{
				Role:    string(msg.Role),
				Content: msg.Content,
			})
		}
		ret.Conversations = append(ret.Conversations, view)
	}

	return ret
}

// Notification is a user-facing info or error line published on
// NotificationTopic.
type Notification struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// PanelPublisher implements the controller's Panel contract by publishing
// snapshots on the event router.
type PanelPublisher struct {
	publisher message.Publisher
}

var _ chat.Panel = (*PanelPublisher)(nil)

func NewPanelPublisher(publisher message.Publisher) *PanelPublisher {
	return &PanelPublisher{publisher: publisher}
}

func (p *PanelPublisher) Update(ctx context.Context, model *chat.ChatModel) error {
	return p.publish(ctx, NewPanelState(model))
}

func (p *PanelPublisher) Show(ctx context.Context) error {
	return p.publish(ctx, &PanelState{Show: true})
}

func (p *PanelPublisher) publish(ctx context.Context, state *PanelState) error {
	b, err := json.Marshal(state)
	if err != nil {
		return errors.Wrap(err, "failed to marshal panel state")
	}

	msg := message.NewMessage(watermill.NewUUID(), b)
	msg.SetContext(ctx)

	return p.publisher.Publish(PanelTopic, msg)
}

// NotificationPublisher implements the controller's Notifier contract by
// publishing on the event router. Publish failures are logged, not
// propagated: notifications are best effort.
type NotificationPublisher struct {
	publisher message.Publisher
}

var _ chat.Notifier = (*NotificationPublisher)(nil)

func NewNotificationPublisher(publisher message.Publisher) *NotificationPublisher {
	return &NotificationPublisher{publisher: publisher}
}

func (p *NotificationPublisher) Info(msg string) {
	p.publishBlind(&Notification{Severity: "info", Message: msg})
}

func (p *NotificationPublisher) Error(msg string) {
	p.publishBlind(&Notification{Severity: "error", Message: msg})
}

func (p *NotificationPublisher) publishBlind(notification *Notification) {
	b, err := json.Marshal(notification)
	if err != nil {
		log.Warn().Err(err).Msg("failed to marshal notification")
		return
	}

	if err := p.publisher.Publish(NotificationTopic, message.NewMessage(watermill.NewUUID(), b)); err != nil {
		log.Warn().Err(err).Msg("failed to publish notification")
	}
}
