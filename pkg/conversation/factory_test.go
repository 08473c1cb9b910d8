package conversation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFactories(t *testing.T) {
	factories := DefaultFactories()

	require.Contains(t, factories, ChatTypeID)
	require.Contains(t, factories, ExplainCodeTypeID)
	require.Contains(t, factories, EditCodeTypeID)

	assert.Equal(t, []string{InputOptionalSelectedText}, factories[ChatTypeID].Inputs())
	assert.Equal(t, []string{InputSelectedText}, factories[ExplainCodeTypeID].Inputs())
	assert.Equal(t, []string{InputSelectedText}, factories[EditCodeTypeID].Inputs())
}

func TestChatFactoryCreatesWithoutSelection(t *testing.T) {
	f := &ChatFactory{}
	result, err := f.Create(context.Background(), &CreateRequest{
		ID:     "conversation-1",
		Client: clientFunc(func(ctx context.Context, sections []Section, messages []*Message) (string, error) { return "ok", nil }),
		Inputs: map[string]interface{}{InputOptionalSelectedText: ""},
	})
	require.NoError(t, err)
	require.NotNil(t, result.Conversation)

	assert.False(t, result.ImmediatelyAnswer)
	assert.Equal(t, "conversation-1", result.Conversation.ID())
	assert.Equal(t, "New Chat", result.Conversation.Title())
	assert.Equal(t, "comment-discussion", result.Conversation.Codicon())
}

func TestExplainFactoryRequiresSelection(t *testing.T) {
	f := &ExplainFactory{}
	for _, selection := range []interface{}{nil, "", "   \n\t"} {
		_, err := f.Create(context.Background(), &CreateRequest{
			ID:     "conversation-1",
			Inputs: map[string]interface{}{InputSelectedText: selection},
		})
		require.Error(t, err)

		var unavailable *UnavailableError
		require.ErrorAs(t, err, &unavailable)
		assert.Equal(t, SeverityInfo, unavailable.Severity)
		assert.Equal(t, "Please select the code you would like to have explained.", unavailable.Message)
	}
}

func TestExplainFactorySeedsPromptAndAnswersImmediately(t *testing.T) {
	f := &ExplainFactory{}
	result, err := f.Create(context.Background(), &CreateRequest{
		ID:     "conversation-1",
		Client: clientFunc(func(ctx context.Context, sections []Section, messages []*Message) (string, error) { return "ok", nil }),
		Inputs: map[string]interface{}{InputSelectedText: "func main() {}"},
	})
	require.NoError(t, err)

	assert.True(t, result.ImmediatelyAnswer)
	assert.Equal(t, "Explain Code", result.Conversation.Title())
	assert.Equal(t, "book", result.Conversation.Codicon())

	msgs := result.Conversation.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, RoleUser, msgs[0].Role)
	assert.Equal(t, "Explain the selected code.", msgs[0].Content)
}

func TestExplainConversationKeepsFixedTitle(t *testing.T) {
	client := clientFunc(func(ctx context.Context, sections []Section, messages []*Message) (string, error) {
		return "It prints hi.", nil
	})

	conv := NewExplainConversation("conversation-1", client, nil, "func main() {}")
	assert.Equal(t, "Explain Code", conv.Title())
	assert.False(t, conv.IsTitleMessage())

	// the seeded template prompt drives the first exchange
	require.NoError(t, conv.Answer(context.Background(), ""))
	require.Len(t, conv.Messages(), 2)

	assert.Equal(t, "Explain Code", conv.Title())
	assert.False(t, conv.IsTitleMessage())
}

func TestEditFactoryRequiresSelection(t *testing.T) {
	f := &EditFactory{}
	_, err := f.Create(context.Background(), &CreateRequest{
		ID:     "conversation-1",
		Inputs: map[string]interface{}{InputSelectedText: ""},
	})
	require.Error(t, err)

	var unavailable *UnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, SeverityInfo, unavailable.Severity)
}
