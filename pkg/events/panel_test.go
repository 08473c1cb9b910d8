package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-go-golems/figaro/pkg/chat"
	"github.com/go-go-golems/figaro/pkg/conversation"
)

func receiveOne(t *testing.T, messages <-chan *message.Message) *message.Message {
	t.Helper()

	select {
	case msg := <-messages:
		msg.Ack()
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return nil
	}
}

func TestNewPanelState(t *testing.T) {
	model := chat.NewChatModel()
	model.AddAndSelect(conversation.NewChatConversation("c1", nil, nil, ""))
	model.AddAndSelect(conversation.NewChatConversation("c2", nil, nil, ""))

	state := NewPanelState(model)

	assert.Equal(t, "c2", state.SelectedID)
	assert.False(t, state.Show)
	require.Len(t, state.Conversations, 2)

	view := state.Conversations[0]
	assert.Equal(t, "c1", view.ID)
	assert.Equal(t, "New Chat", view.Title)
	assert.Equal(t, "comment-discussion", view.Codicon)
	assert.Equal(t, "userCanReply", view.Status)
	assert.Empty(t, view.ErrorMessage)
	assert.Empty(t, view.Messages)
}

func TestPanelPublisherUpdateRoundTrip(t *testing.T) {
	ctx := context.Background()
	pubsub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer func() {
		_ = pubsub.Close()
	}()

	messages, err := pubsub.Subscribe(ctx, PanelTopic)
	require.NoError(t, err)

	model := chat.NewChatModel()
	model.AddAndSelect(conversation.NewChatConversation("c1", nil, nil, ""))

	publisher := NewPanelPublisher(pubsub)
	require.NoError(t, publisher.Update(ctx, model))

	msg := receiveOne(t, messages)

	var state PanelState
	require.NoError(t, json.Unmarshal(msg.Payload, &state))
	assert.Equal(t, "c1", state.SelectedID)
	require.Len(t, state.Conversations, 1)
	assert.Equal(t, "New Chat", state.Conversations[0].Title)
}

func TestPanelPublisherShow(t *testing.T) {
	ctx := context.Background()
	pubsub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer func() {
		_ = pubsub.Close()
	}()

	messages, err := pubsub.Subscribe(ctx, PanelTopic)
	require.NoError(t, err)

	publisher := NewPanelPublisher(pubsub)
	require.NoError(t, publisher.Show(ctx))

	msg := receiveOne(t, messages)

	var state PanelState
	require.NoError(t, json.Unmarshal(msg.Payload, &state))
	assert.True(t, state.Show)
	assert.Empty(t, state.Conversations)
}

func TestNotificationPublisherRoundTrip(t *testing.T) {
	ctx := context.Background()
	pubsub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer func() {
		_ = pubsub.Close()
	}()

	messages, err := pubsub.Subscribe(ctx, NotificationTopic)
	require.NoError(t, err)

	publisher := NewNotificationPublisher(pubsub)
	publisher.Info("heads up")

	msg := receiveOne(t, messages)

	var notification Notification
	require.NoError(t, json.Unmarshal(msg.Payload, &notification))
	assert.Equal(t, "info", notification.Severity)
	assert.Equal(t, "heads up", notification.Message)

	publisher.Error("something broke")
	msg = receiveOne(t, messages)
	require.NoError(t, json.Unmarshal(msg.Payload, &notification))
	assert.Equal(t, "error", notification.Severity)
}
