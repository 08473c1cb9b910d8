package completion

import (
	"testing"

	go_openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-go-golems/figaro/pkg/conversation"
)

func TestMakeCompletionRequest(t *testing.T) {
	sections := []conversation.Section{
		conversation.NewCodeSection("Selected Code", "x := 1"),
		conversation.NewTextSection("Task", "Rewrite the code."),
	}
	messages := []*conversation.Message{
		conversation.NewMessage(conversation.RoleUser, "make it two"),
		conversation.NewMessage(conversation.RoleBot, "x := 2"),
		conversation.NewMessage(conversation.RoleUser, "thanks"),
	}

	req := makeCompletionRequest("gpt-3.5-turbo", sections, messages)

	assert.Equal(t, "gpt-3.5-turbo", req.Model)
	require.Len(t, req.Messages, 4)

	assert.Equal(t, go_openai.ChatMessageRoleSystem, req.Messages[0].Role)
	assert.Contains(t, req.Messages[0].Content, "## Selected Code")
	assert.Contains(t, req.Messages[0].Content, "## Task")

	assert.Equal(t, go_openai.ChatMessageRoleUser, req.Messages[1].Role)
	assert.Equal(t, "make it two", req.Messages[1].Content)
	assert.Equal(t, go_openai.ChatMessageRoleAssistant, req.Messages[2].Role)
	assert.Equal(t, "x := 2", req.Messages[2].Content)
	assert.Equal(t, go_openai.ChatMessageRoleUser, req.Messages[3].Role)
}

func TestMakeCompletionRequestWithoutSections(t *testing.T) {
	messages := []*conversation.Message{
		conversation.NewMessage(conversation.RoleUser, "hello"),
	}

	req := makeCompletionRequest("gpt-4", nil, messages)

	require.Len(t, req.Messages, 1)
	assert.Equal(t, go_openai.ChatMessageRoleUser, req.Messages[0].Role)
}
