package conversation

import "context"

// ChatTypeID is the registry identifier of the free-form chat conversation.
const ChatTypeID = "chat"

// InputOptionalSelectedText resolves the current editor selection, yielding
// an empty string when nothing is selected.
const InputOptionalSelectedText = "optionalSelectedText"

// ChatConversation is a free-form exchange. When code was selected at
// creation time it is shown to the model once, as a leading "Selected Code"
// section derived from the snapshot captured when the conversation was
// created.
type ChatConversation struct {
	*Base
	selectedText string
}

var _ Conversation = (*ChatConversation)(nil)

func NewChatConversation(id string, client Client, updatePanel RefreshFunc, selectedText string) *ChatConversation {
	var options []BaseOption
	if selectedText != "" {
		options = append(options, WithSections(NewCodeSection("Selected Code", selectedText)))
	}

	return &ChatConversation{
		Base:         NewBase(id, client, updatePanel, options...),
		selectedText: selectedText,
	}
}

func (c *ChatConversation) Title() string {
	return c.titleOr("New Chat")
}

func (c *ChatConversation) Codicon() string {
	return "comment-discussion"
}

// ChatFactory creates chat conversations. The selection is optional: an
// empty editor selection still yields a conversation, just without a code
// section.
type ChatFactory struct{}

var _ Factory = (*ChatFactory)(nil)

func (f *ChatFactory) Inputs() []string {
	return []string{InputOptionalSelectedText}
}

func (f *ChatFactory) Create(ctx context.Context, req *CreateRequest) (*CreateResult, error) {
	selectedText, _ := req.Inputs[InputOptionalSelectedText].(string)

	return &CreateResult{
		Conversation: NewChatConversation(req.ID, req.Client, req.UpdatePanel, selectedText),
	}, nil
}
