package conversation

import (
	"context"
	"strings"
)

// ExplainCodeTypeID is the registry identifier of the explain-code
// conversation, which answers immediately from a template prompt.
const ExplainCodeTypeID = "explainCode"

// InputSelectedText resolves the current editor selection and reports
// unavailable when nothing is selected.
const InputSelectedText = "selectedText"

const explainCodePrompt = "Explain the selected code."

// ExplainConversation explains the code selected at creation time. The
// template prompt is seeded as the first user message and the first exchange
// runs without further user input.
type ExplainConversation struct {
	*Base
}

var _ Conversation = (*ExplainConversation)(nil)

func NewExplainConversation(id string, client Client, updatePanel RefreshFunc, selectedText string) *ExplainConversation {
	return &ExplainConversation{
		Base: NewBase(id, client, updatePanel,
			WithSections(NewCodeSection("Selected Code", selectedText)),
			WithMessages(NewMessage(RoleUser, explainCodePrompt)),
		),
	}
}

// Title is fixed. The seeded template prompt is not a user-authored message
// and must not become the title.
func (c *ExplainConversation) Title() string {
	return "Explain Code"
}

func (c *ExplainConversation) IsTitleMessage() bool {
	return false
}

func (c *ExplainConversation) Codicon() string {
	return "book"
}

type ExplainFactory struct{}

var _ Factory = (*ExplainFactory)(nil)

func (f *ExplainFactory) Inputs() []string {
	return []string{InputSelectedText}
}

func (f *ExplainFactory) Create(ctx context.Context, req *CreateRequest) (*CreateResult, error) {
	selectedText, _ := req.Inputs[InputSelectedText].(string)
	if strings.TrimSpace(selectedText) == "" {
		return nil, NewUnavailableError(SeverityInfo, "Please select the code you would like to have explained.")
	}

	return &CreateResult{
		Conversation:      NewExplainConversation(req.ID, req.Client, req.UpdatePanel, selectedText),
		ImmediatelyAnswer: true,
	}, nil
}
