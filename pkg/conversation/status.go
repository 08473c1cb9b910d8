package conversation

// StatusType enumerates the states of the per-conversation state machine.
type StatusType string

const (
	StatusTypeUserCanReply        StatusType = "userCanReply"
	StatusTypeWaitingForBotAnswer StatusType = "waitingForBotAnswer"
	StatusTypeError               StatusType = "error"
)

// Status is the externally visible state of a conversation. It drives which
// UI affordances are valid. ErrorMessage is only set when Type is
// StatusTypeError and carries the completion failure verbatim.
type Status struct {
	Type         StatusType `json:"type"`
	ErrorMessage string     `json:"errorMessage,omitempty"`
}

func UserCanReply() Status {
	return Status{Type: StatusTypeUserCanReply}
}

func WaitingForBotAnswer() Status {
	return Status{Type: StatusTypeWaitingForBotAnswer}
}

func ErrorStatus(message string) Status {
	return Status{Type: StatusTypeError, ErrorMessage: message}
}
