package events

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRouterDeliversToHandler(t *testing.T) {
	router, err := NewEventRouter()
	require.NoError(t, err)
	defer func() {
		_ = router.Close()
	}()

	received := make(chan string, 1)
	router.AddHandler("test-handler", "test.topic", func(msg *message.Message) error {
		received <- string(msg.Payload)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = router.Run(ctx)
	}()

	select {
	case <-router.Running():
	case <-time.After(time.Second):
		t.Fatal("router did not start")
	}

	err = router.Publisher.Publish("test.topic", message.NewMessage(watermill.NewUUID(), []byte("ping")))
	require.NoError(t, err)

	select {
	case payload := <-received:
		assert.Equal(t, "ping", payload)
	case <-time.After(time.Second):
		t.Fatal("handler did not receive message")
	}
}
