package completion

// Package completion provides implementations of the conversation.Client
// boundary. The core consumes completions as a black box: one call, one
// final answer or one typed failure. Anything fancier (streaming, retries,
// backoff) belongs to the backend, not here.

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	go_openai "github.com/sashabaranov/go-openai"

	"github.com/go-go-golems/figaro/pkg/conversation"
)

// OpenAIClient implements the completion boundary on top of the OpenAI chat
// completion API.
type OpenAIClient struct {
	client *go_openai.Client
	model  string
}

var _ conversation.Client = (*OpenAIClient)(nil)

type openAIConfig struct {
	model   string
	baseURL string
}

type OpenAIOption func(*openAIConfig)

func WithModel(model string) OpenAIOption {
	return func(cfg *openAIConfig) {
		if model != "" {
			cfg.model = model
		}
	}
}

// WithBaseURL points the client at an OpenAI-compatible endpoint.
func WithBaseURL(baseURL string) OpenAIOption {
	return func(cfg *openAIConfig) {
		cfg.baseURL = baseURL
	}
}

func NewOpenAIClient(apiKey string, options ...OpenAIOption) *OpenAIClient {
	cfg := &openAIConfig{
		model: go_openai.GPT3Dot5Turbo,
	}
	for _, option := range options {
		option(cfg)
	}

	clientConfig := go_openai.DefaultConfig(apiKey)
	if cfg.baseURL != "" {
		clientConfig.BaseURL = cfg.baseURL
	}

	return &OpenAIClient{
		client: go_openai.NewClientWithConfig(clientConfig),
		model:  cfg.model,
	}
}

func (c *OpenAIClient) Complete(
	ctx context.Context,
	sections []conversation.Section,
	messages []*conversation.Message,
) (string, error) {
	req := makeCompletionRequest(c.model, sections, messages)

	log.Debug().
		Str("model", c.model).
		Int("message_count", len(messages)).
		Int("section_count", len(sections)).
		Msg("requesting chat completion")

	resp, err := c.client.CreateChatCompletion(ctx, *req)
	if err != nil {
		return "", errors.Wrap(err, "chat completion failed")
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

// makeCompletionRequest builds the ordered message list: rendered context
// sections first, as a single system message, then the full history.
func makeCompletionRequest(
	model string,
	sections []conversation.Section,
	messages []*conversation.Message,
) *go_openai.ChatCompletionRequest {
	msgs := make([]go_openai.ChatCompletionMessage, 0, len(messages)+1)

	if len(sections) > 0 {
		rendered := make([]string, 0, len(sections))
		for _, section := range sections {
			rendered = append(rendered, section.Render())
		}
		msgs = append(msgs, go_openai.ChatCompletionMessage{
			Role:    go_openai.ChatMessageRoleSystem,
			Content: strings.Join(rendered, "\n\n"),
		})
	}

	for _, message := range messages {
		role := go_openai.ChatMessageRoleUser
		if message.Role == conversation.RoleBot {
			role = go_openai.ChatMessageRoleAssistant
		}
		msgs = append(msgs, go_openai.ChatCompletionMessage{
			Role:    role,
			Content: message.Content,
		})
	}

	return &go_openai.ChatCompletionRequest{
		Model:    model,
		Messages: msgs,
	}
}
