package conversation

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	// ErrExchangeInFlight is returned when Answer or Retry is called while a
	// completion cycle is still pending on the same conversation. The second
	// call is rejected and leaves the message log and status untouched.
	ErrExchangeInFlight = errors.New("conversation exchange already in flight")

	// ErrNotInErrorState is returned when Retry is called on a conversation
	// that has no failed exchange to retry.
	ErrNotInErrorState = errors.New("conversation is not in error state")
)

// Base implements the request/response cycle shared by all conversation
// types. Concrete types embed it and contribute their prompt sections,
// presentation metadata and post-answer hooks.
//
// The message log only ever grows by appending. A failed exchange leaves no
// residue: the bot message is only appended on success, so a retry simply
// resubmits the same history.
type Base struct {
	id          string
	client      Client
	updatePanel RefreshFunc

	sections    []Section
	afterAnswer func(ctx context.Context, content string) error

	messages []*Message
	status   Status

	inFlight atomic.Bool
	logger   zerolog.Logger
}

type BaseOption func(*Base)

// WithSections sets the context sections prepended to every completion
// request, ahead of the message history.
func WithSections(sections ...Section) BaseOption {
	return func(b *Base) {
		b.sections = sections
	}
}

// WithMessages seeds the message log. Used by types that start from a
// template prompt.
func WithMessages(messages ...*Message) BaseOption {
	return func(b *Base) {
		b.messages = append(b.messages, messages...)
	}
}

// WithAfterAnswer registers a hook invoked with the trimmed bot content
// after each successful exchange.
func WithAfterAnswer(f func(ctx context.Context, content string) error) BaseOption {
	return func(b *Base) {
		b.afterAnswer = f
	}
}

func NewBase(id string, client Client, updatePanel RefreshFunc, options ...BaseOption) *Base {
	ret := &Base{
		id:          id,
		client:      client,
		updatePanel: updatePanel,
		status:      UserCanReply(),
		logger:      log.With().Str("conversation_id", id).Logger(),
	}

	if ret.updatePanel == nil {
		ret.updatePanel = func(context.Context) error { return nil }
	}

	for _, option := range options {
		option(ret)
	}

	return ret
}

func (b *Base) ID() string {
	return b.id
}

func (b *Base) Messages() []*Message {
	return b.messages
}

func (b *Base) Status() Status {
	return b.status
}

func (b *Base) IsTitleMessage() bool {
	return len(b.messages) > 0
}

// titleOr returns the first message's content, or defaultTitle for an empty
// conversation.
func (b *Base) titleOr(defaultTitle string) string {
	if len(b.messages) > 0 {
		return b.messages[0].Content
	}
	return defaultTitle
}

// Answer appends userMessage to the log when non-empty and runs one full
// completion cycle. The panel is refreshed once when the conversation enters
// waitingForBotAnswer and once after the cycle settles.
func (b *Base) Answer(ctx context.Context, userMessage string) error {
	if !b.inFlight.CompareAndSwap(false, true) {
		b.logger.Warn().Msg("rejecting answer, exchange already in flight")
		return ErrExchangeInFlight
	}
	defer b.inFlight.Store(false)

	if userMessage != "" {
		b.messages = append(b.messages, NewMessage(RoleUser, userMessage))
	}

	b.executeExchange(ctx)
	return nil
}

// Retry re-runs the failed exchange. The message log is not mutated before
// the retried call. The status check happens under the in-flight guard so it
// never races with a pending exchange.
func (b *Base) Retry(ctx context.Context) error {
	if !b.inFlight.CompareAndSwap(false, true) {
		b.logger.Warn().Msg("rejecting retry, exchange already in flight")
		return ErrExchangeInFlight
	}
	defer b.inFlight.Store(false)

	if b.status.Type != StatusTypeError {
		b.logger.Warn().Str("status", string(b.status.Type)).Msg("rejecting retry, conversation has no failed exchange")
		return ErrNotInErrorState
	}

	b.executeExchange(ctx)
	return nil
}

// executeExchange drives one request cycle: enter waitingForBotAnswer,
// assemble sections plus full history, invoke the completion client, and
// settle into userCanReply or error. Completion failures are state, not
// returned errors.
func (b *Base) executeExchange(ctx context.Context) {
	b.status = WaitingForBotAnswer()
	b.refresh(ctx)

	b.logger.Debug().
		Int("message_count", len(b.messages)).
		Int("section_count", len(b.sections)).
		Msg("starting completion exchange")

	content, err := b.client.Complete(ctx, b.sections, b.messages)
	if err != nil {
		b.logger.Debug().Err(err).Msg("completion failed")
		b.status = ErrorStatus(err.Error())
		b.refresh(ctx)
		return
	}

	content = strings.TrimSpace(content)
	b.messages = append(b.messages, NewMessage(RoleBot, content))
	b.status = UserCanReply()

	if b.afterAnswer != nil {
		if err := b.afterAnswer(ctx, content); err != nil {
			b.logger.Warn().Err(err).Msg("after-answer hook failed")
		}
	}

	b.refresh(ctx)
}

func (b *Base) refresh(ctx context.Context) {
	if err := b.updatePanel(ctx); err != nil {
		b.logger.Warn().Err(err).Msg("failed to update panel")
	}
}
