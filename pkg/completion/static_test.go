package completion

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticClientCyclesResponses(t *testing.T) {
	client := NewStaticClient("one", "two")
	ctx := context.Background()

	for _, expected := range []string{"one", "two", "one"} {
		got, err := client.Complete(ctx, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, expected, got)
	}
}

func TestStaticClientDefaultResponse(t *testing.T) {
	client := NewStaticClient()

	got, err := client.Complete(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Contains(t, got, "offline")
}
