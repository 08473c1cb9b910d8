package chat

// Package chat wires the conversation state machines into a controller: it
// owns the collection of active conversations, routes inbound panel messages
// to the right conversation, drives the creation protocol through the
// factory registry and input providers, and triggers a panel refresh after
// every state change.

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/go-go-golems/figaro/pkg/conversation"
)

// ChatController is the top-level coordinator. It never holds a conversation
// reference across an event boundary; every event re-looks the conversation
// up by id so stale or deleted ids are dropped instead of acted on.
type ChatController struct {
	model       *ChatModel
	client      conversation.Client
	panel       Panel
	notifier    Notifier
	diffApplier conversation.DiffApplier

	factories map[string]conversation.Factory
	inputs    map[string]conversation.InputProvider

	defaultType string
	ids         *conversation.IDGenerator
	logger      zerolog.Logger
}

type ChatControllerOption func(*ChatController)

// WithFactories sets the conversation type registry. The registry is copied
// and read-only afterwards; types cannot be registered at runtime.
func WithFactories(factories map[string]conversation.Factory) ChatControllerOption {
	return func(c *ChatController) {
		c.factories = map[string]conversation.Factory{}
		for id, factory := range factories {
			c.factories[id] = factory
		}
	}
}

// WithInputProviders sets the named input providers available to factories.
func WithInputProviders(inputs map[string]conversation.InputProvider) ChatControllerOption {
	return func(c *ChatController) {
		c.inputs = map[string]conversation.InputProvider{}
		for key, provider := range inputs {
			c.inputs[key] = provider
		}
	}
}

func WithNotifier(notifier Notifier) ChatControllerOption {
	return func(c *ChatController) {
		c.notifier = notifier
	}
}

func WithDiffApplier(diffApplier conversation.DiffApplier) ChatControllerOption {
	return func(c *ChatController) {
		c.diffApplier = diffApplier
	}
}

// WithDefaultConversationType sets the type created by StartChatMsg.
func WithDefaultConversationType(typeID string) ChatControllerOption {
	return func(c *ChatController) {
		c.defaultType = typeID
	}
}

// WithIDPrefix changes the prefix of generated conversation ids.
func WithIDPrefix(prefix string) ChatControllerOption {
	return func(c *ChatController) {
		c.ids = conversation.NewIDGenerator(prefix)
	}
}

func NewChatController(model *ChatModel, client conversation.Client, panel Panel, options ...ChatControllerOption) *ChatController {
	ret := &ChatController{
		model:       model,
		client:      client,
		panel:       panel,
		notifier:    NopNotifier{},
		diffApplier: conversation.NopDiffApplier{},
		factories:   conversation.DefaultFactories(),
		inputs:      map[string]conversation.InputProvider{},
		defaultType: conversation.ChatTypeID,
		ids:         conversation.NewIDGenerator("conversation-"),
		logger:      log.With().Str("component", "chat-controller").Logger(),
	}

	for _, option := range options {
		option(ret)
	}

	return ret
}

// HandlePanelMessage routes one inbound event. Routing is total over the
// closed message schema; an unknown concrete type here means the schema and
// the dispatch got out of sync, which is a programming error.
func (c *ChatController) HandlePanelMessage(ctx context.Context, msg PanelMessage) error {
	switch msg := msg.(type) {
	case ClickCollapsedConversationMsg:
		if !c.model.Select(msg.ID) {
			c.logger.Debug().Str("conversation_id", msg.ID).Msg("select for unknown conversation")
		}
		return c.updatePanel(ctx)

	case SendMessageMsg:
		conv, ok := c.model.ByID(msg.ID)
		if !ok {
			c.logger.Debug().Str("conversation_id", msg.ID).Msg("dropping message for unknown conversation")
			return nil
		}
		if err := conv.Answer(ctx, msg.Message); err != nil {
			c.logger.Warn().Err(err).Str("conversation_id", msg.ID).Msg("answer rejected")
		}
		return nil

	case StartChatMsg:
		return c.CreateConversation(ctx, c.defaultType)

	case DeleteConversationMsg:
		c.model.Delete(msg.ID)
		return c.updatePanel(ctx)

	case RetryMsg:
		conv, ok := c.model.ByID(msg.ID)
		if !ok {
			c.logger.Debug().Str("conversation_id", msg.ID).Msg("dropping retry for unknown conversation")
			return nil
		}
		if err := conv.Retry(ctx); err != nil {
			c.logger.Warn().Err(err).Str("conversation_id", msg.ID).Msg("retry rejected")
		}
		return nil

	case ApplyDiffMsg:
		// reserved for the diff-acceptance flow
		return nil

	default:
		return errors.Errorf("unsupported panel message type %T", msg)
	}
}

// CreateConversation runs the creation protocol for the given type id:
// registry lookup, ordered input gathering, factory invocation, then add,
// select, show and refresh. Every abort path leaves the collection
// untouched and surfaces a notification; partial input collection is
// discarded.
func (c *ChatController) CreateConversation(ctx context.Context, typeID string) error {
	factory, ok := c.factories[typeID]
	if !ok {
		c.notifier.Error(fmt.Sprintf("No conversation type found for %s", typeID))
		return nil
	}

	inputs := map[string]interface{}{}
	for _, inputKey := range factory.Inputs() {
		provider, ok := c.inputs[inputKey]
		if !ok {
			c.notifier.Error(fmt.Sprintf("No input found for input '%s'", inputKey))
			return nil
		}

		data, err := provider(ctx)
		if err != nil {
			c.notifyUnavailable(err)
			return nil
		}

		inputs[inputKey] = data
	}

	id := c.ids.Next()
	result, err := factory.Create(ctx, &conversation.CreateRequest{
		ID:          id,
		Client:      c.client,
		UpdatePanel: c.updatePanel,
		DiffApplier: c.diffApplier,
		Inputs:      inputs,
	})
	if err != nil {
		c.notifyUnavailable(err)
		return nil
	}

	c.logger.Debug().Str("conversation_id", id).Str("type_id", typeID).Msg("created conversation")

	c.model.AddAndSelect(result.Conversation)

	if err := c.panel.Show(ctx); err != nil {
		c.logger.Warn().Err(err).Msg("failed to show panel")
	}
	if err := c.updatePanel(ctx); err != nil {
		c.logger.Warn().Err(err).Msg("failed to update panel")
	}

	if result.ImmediatelyAnswer {
		if err := result.Conversation.Answer(ctx, ""); err != nil {
			c.logger.Warn().Err(err).Str("conversation_id", id).Msg("immediate answer rejected")
		}
	}

	return nil
}

// notifyUnavailable maps an input or factory failure onto a user
// notification, honoring the severity carried by UnavailableError.
func (c *ChatController) notifyUnavailable(err error) {
	var unavailable *conversation.UnavailableError
	if errors.As(err, &unavailable) && unavailable.Severity == conversation.SeverityInfo {
		c.notifier.Info(unavailable.Message)
		return
	}
	c.notifier.Error(err.Error())
}

func (c *ChatController) updatePanel(ctx context.Context) error {
	return c.panel.Update(ctx, c.model)
}

// Model exposes the conversation collection for presentation code.
func (c *ChatController) Model() *ChatModel {
	return c.model
}
