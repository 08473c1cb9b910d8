package conversation

// Package conversation implements the per-conversation state machine of the
// chat core: the message log, the userCanReply / waitingForBotAnswer / error
// status cycle, and the concrete conversation types (chat, explain, edit)
// that sit behind the shared Conversation contract.
//
// A conversation talks to the completion backend through the Client boundary
// and pushes every observable state change to the panel through the
// RefreshFunc it was bound to at creation time. It knows nothing about the
// host UI beyond that callback.

import "context"

// RefreshFunc pushes the current collection state to the panel. It is bound
// by the controller and injected into each conversation at construction,
// keeping the state machine decoupled from the presentation layer.
type RefreshFunc func(ctx context.Context) error

// Client is the completion-service boundary consumed by conversations. A
// non-nil error is the typed failure: its message is preserved verbatim in
// the conversation's error status. Transport concerns such as retries and
// backoff belong to the implementation, not to this core.
type Client interface {
	Complete(ctx context.Context, sections []Section, messages []*Message) (string, error)
}

// DiffApplier receives the edited text produced by a diff-generation
// conversation. Applying the change to files is outside this core.
type DiffApplier interface {
	ApplyDiff(ctx context.Context, original string, edited string) error
}

// NopDiffApplier discards edits. Used when no diff surface is wired up.
type NopDiffApplier struct{}

var _ DiffApplier = (*NopDiffApplier)(nil)

func (NopDiffApplier) ApplyDiff(ctx context.Context, original string, edited string) error {
	return nil
}

// Conversation is the capability set shared by all conversation types. Each
// type supplies its own request-assembly policy and presentation metadata;
// the exchange cycle itself is common.
type Conversation interface {
	ID() string
	Messages() []*Message
	Status() Status

	// Answer appends userMessage as a user message when non-empty, then runs
	// one full request cycle against the completion backend. Types created
	// with a template prompt call it with an empty message for their first
	// exchange.
	Answer(ctx context.Context, userMessage string) error

	// Retry re-runs the failed exchange with the existing message log. Only
	// meaningful from the error status.
	Retry(ctx context.Context) error

	Title() string
	IsTitleMessage() bool
	Codicon() string
}
