package conversation

import (
	"context"
	"strings"
)

// EditCodeTypeID is the registry identifier of the diff-generation
// conversation.
const EditCodeTypeID = "editCode"

const editCodeInstructions = "Rewrite the selected code according to the conversation. " +
	"Reply with the full updated code only, without explanations."

// EditConversation turns user instructions into an edited version of the
// code selected at creation time. Each successful exchange hands the model
// output to the DiffApplier collaborator; accepting the diff into files is
// outside this core.
type EditConversation struct {
	*Base
	selectedText string
	diffApplier  DiffApplier
}

var _ Conversation = (*EditConversation)(nil)

func NewEditConversation(id string, client Client, updatePanel RefreshFunc, diffApplier DiffApplier, selectedText string) *EditConversation {
	if diffApplier == nil {
		diffApplier = NopDiffApplier{}
	}

	ret := &EditConversation{
		selectedText: selectedText,
		diffApplier:  diffApplier,
	}

	ret.Base = NewBase(id, client, updatePanel,
		WithSections(
			NewCodeSection("Selected Code", selectedText),
			NewTextSection("Task", editCodeInstructions),
		),
		WithAfterAnswer(ret.applyEdit),
	)

	return ret
}

// Title is fixed; edit sessions are named by what they do, not by the first
// instruction.
func (c *EditConversation) Title() string {
	return "Edit Code"
}

func (c *EditConversation) IsTitleMessage() bool {
	return false
}

func (c *EditConversation) Codicon() string {
	return "edit"
}

func (c *EditConversation) applyEdit(ctx context.Context, content string) error {
	return c.diffApplier.ApplyDiff(ctx, c.selectedText, stripCodeFence(content))
}

// stripCodeFence removes a surrounding markdown code fence when the model
// wraps its output in one despite the instructions.
func stripCodeFence(content string) string {
	if !strings.HasPrefix(content, "```") {
		return content
	}

	lines := strings.Split(content, "\n")
	if len(lines) < 2 {
		return content
	}

	lines = lines[1:]
	if strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}

	return strings.Join(lines, "\n")
}

type EditFactory struct{}

var _ Factory = (*EditFactory)(nil)

func (f *EditFactory) Inputs() []string {
	return []string{InputSelectedText}
}

func (f *EditFactory) Create(ctx context.Context, req *CreateRequest) (*CreateResult, error) {
	selectedText, _ := req.Inputs[InputSelectedText].(string)
	if strings.TrimSpace(selectedText) == "" {
		return nil, NewUnavailableError(SeverityInfo, "Please select the code you would like to edit.")
	}

	return &CreateResult{
		Conversation: NewEditConversation(req.ID, req.Client, req.UpdatePanel, req.DiffApplier, selectedText),
	}, nil
}
