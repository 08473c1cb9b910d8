package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePanelMessage(t *testing.T) {
	cases := []struct {
		name     string
		payload  string
		expected PanelMessage
	}{
		{
			"click collapsed conversation",
			`{"type":"clickCollapsedConversation","data":{"id":"c1"}}`,
			ClickCollapsedConversationMsg{ID: "c1"},
		},
		{
			"send message",
			`{"type":"sendMessage","data":{"id":"c1","message":"hello"}}`,
			SendMessageMsg{ID: "c1", Message: "hello"},
		},
		{
			"start chat",
			`{"type":"startChat"}`,
			StartChatMsg{},
		},
		{
			"delete conversation",
			`{"type":"deleteConversation","data":{"id":"c1"}}`,
			DeleteConversationMsg{ID: "c1"},
		},
		{
			"retry",
			`{"type":"retry","data":{"id":"c1"}}`,
			RetryMsg{ID: "c1"},
		},
		{
			"apply diff",
			`{"type":"applyDiff","data":{"id":"c1"}}`,
			ApplyDiffMsg{ID: "c1"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msg, err := ParsePanelMessage([]byte(tc.payload))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, msg)
		})
	}
}

func TestParsePanelMessageUnknownType(t *testing.T) {
	_, err := ParsePanelMessage([]byte(`{"type":"launchMissiles","data":{}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported panel message type")
}

func TestParsePanelMessageMalformedPayload(t *testing.T) {
	_, err := ParsePanelMessage([]byte(`{not json`))
	require.Error(t, err)

	_, err = ParsePanelMessage([]byte(`{"type":"sendMessage","data":"not an object"}`))
	require.Error(t, err)
}
