package chat

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// PanelMessage is the closed set of inbound events the controller routes.
// The schema is validated at parse time, so dispatch never sees an unknown
// message kind.
type PanelMessage interface {
	panelMessage()
}

// ClickCollapsedConversationMsg selects the clicked conversation.
type ClickCollapsedConversationMsg struct {
	ID string `json:"id"`
}

// SendMessageMsg forwards a user message to the addressed conversation.
type SendMessageMsg struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// StartChatMsg creates a conversation of the configured default type.
type StartChatMsg struct{}

// DeleteConversationMsg removes the addressed conversation.
type DeleteConversationMsg struct {
	ID string `json:"id"`
}

// RetryMsg re-runs the failed exchange of the addressed conversation.
type RetryMsg struct {
	ID string `json:"id"`
}

// ApplyDiffMsg is reserved for the diff-acceptance flow and currently routes
// to a no-op.
type ApplyDiffMsg struct {
	ID string `json:"id"`
}

func (ClickCollapsedConversationMsg) panelMessage() {}
func (SendMessageMsg) panelMessage()                {}
func (StartChatMsg) panelMessage()                  {}
func (DeleteConversationMsg) panelMessage()         {}
func (RetryMsg) panelMessage()                      {}
func (ApplyDiffMsg) panelMessage()                  {}

const (
	messageTypeClickCollapsedConversation = "clickCollapsedConversation"
	messageTypeSendMessage                = "sendMessage"
	messageTypeStartChat                  = "startChat"
	messageTypeDeleteConversation         = "deleteConversation"
	messageTypeRetry                      = "retry"
	messageTypeApplyDiff                  = "applyDiff"
)

type panelMessageEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// ParsePanelMessage validates a raw panel payload against the closed message
// schema. Unknown type tags and malformed payloads are parse errors; they
// never reach the controller's dispatch.
func ParsePanelMessage(payload []byte) (PanelMessage, error) {
	var envelope panelMessageEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, errors.Wrap(err, "failed to parse panel message")
	}

	unmarshalData := func(v interface{}) error {
		if len(envelope.Data) == 0 {
			return nil
		}
		return errors.Wrapf(json.Unmarshal(envelope.Data, v), "failed to parse %s data", envelope.Type)
	}

	switch envelope.Type {
	case messageTypeClickCollapsedConversation:
		var msg ClickCollapsedConversationMsg
		if err := unmarshalData(&msg); err != nil {
			return nil, err
		}
		return msg, nil
	case messageTypeSendMessage:
		var msg SendMessageMsg
		if err := unmarshalData(&msg); err != nil {
			return nil, err
		}
		return msg, nil
	case messageTypeStartChat:
		return StartChatMsg{}, nil
	case messageTypeDeleteConversation:
		var msg DeleteConversationMsg
		if err := unmarshalData(&msg); err != nil {
			return nil, err
		}
		return msg, nil
	case messageTypeRetry:
		var msg RetryMsg
		if err := unmarshalData(&msg); err != nil {
			return nil, err
		}
		return msg, nil
	case messageTypeApplyDiff:
		var msg ApplyDiffMsg
		if err := unmarshalData(&msg); err != nil {
			return nil, err
		}
		return msg, nil
	default:
		return nil, errors.Errorf("unsupported panel message type %q", envelope.Type)
	}
}
