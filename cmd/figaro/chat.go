package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/go-go-golems/figaro/pkg/chat"
	"github.com/go-go-golems/figaro/pkg/completion"
	"github.com/go-go-golems/figaro/pkg/conversation"
	"github.com/go-go-golems/figaro/pkg/events"
	"github.com/go-go-golems/figaro/pkg/ui"
)

func newChatCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Interactive chat session",
		RunE:  runChat,
	}

	cmd.Flags().String("openai-api-key", "", "OpenAI API key")
	cmd.Flags().String("model", "gpt-3.5-turbo", "Model to use for completions")
	cmd.Flags().String("base-url", "", "OpenAI-compatible API base URL")
	cmd.Flags().String("default-conversation-type", conversation.ChatTypeID, "Conversation type created by /new")
	cmd.Flags().Bool("offline", false, "Use canned completions instead of a real backend")
	cmd.Flags().Bool("verbose-events", false, "Log event router internals")

	_ = viper.BindPFlags(cmd.Flags())

	return cmd
}

// selectionStore stands in for the editor selection collaborator: whatever
// the user last marked with /code is what the input providers see.
type selectionStore struct {
	mu   sync.Mutex
	text string
}

func (s *selectionStore) Set(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = text
}

func (s *selectionStore) Get() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// previewDiffApplier prints the edit produced by an editCode conversation.
// Applying it to files is out of scope for the core.
type previewDiffApplier struct{}

func (previewDiffApplier) ApplyDiff(ctx context.Context, original string, edited string) error {
	fmt.Println("--- original")
	fmt.Println(original)
	fmt.Println("+++ edited")
	fmt.Println(edited)
	return nil
}

func buildClient() (conversation.Client, error) {
	if viper.GetBool("offline") {
		return completion.NewStaticClient(), nil
	}

	apiKey := viper.GetString("openai-api-key")
	if apiKey == "" {
		return nil, errors.New("no OpenAI API key configured, set --openai-api-key or FIGARO_OPENAI_API_KEY (or use --offline)")
	}

	return completion.NewOpenAIClient(apiKey,
		completion.WithModel(viper.GetString("model")),
		completion.WithBaseURL(viper.GetString("base-url")),
	), nil
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	client, err := buildClient()
	if err != nil {
		return err
	}

	router, err := events.NewEventRouter(events.WithVerbose(viper.GetBool("verbose-events")))
	if err != nil {
		return errors.Wrap(err, "failed to create event router")
	}
	defer func() {
		_ = router.Close()
	}()

	panel, err := ui.NewTerminalPanel(os.Stdout)
	if err != nil {
		return err
	}
	router.AddHandler("terminal-panel", events.PanelTopic, panel.Handler())
	router.AddHandler("terminal-notifications", events.NotificationTopic, ui.NotificationHandler(os.Stdout))

	selection := &selectionStore{}
	inputs := map[string]conversation.InputProvider{
		conversation.InputOptionalSelectedText: func(ctx context.Context) (interface{}, error) {
			return selection.Get(), nil
		},
		conversation.InputSelectedText: func(ctx context.Context) (interface{}, error) {
			if strings.TrimSpace(selection.Get()) == "" {
				return nil, conversation.NewUnavailableError(
					conversation.SeverityInfo,
					"No code selected. Use /code to paste a snippet first.",
				)
			}
			return selection.Get(), nil
		},
	}

	model := chat.NewChatModel()
	controller := chat.NewChatController(model, client,
		events.NewPanelPublisher(router.Publisher),
		chat.WithNotifier(events.NewNotificationPublisher(router.Publisher)),
		chat.WithInputProviders(inputs),
		chat.WithDiffApplier(previewDiffApplier{}),
		chat.WithDefaultConversationType(viper.GetString("default-conversation-type")),
	)

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return router.Run(ctx)
	})
	eg.Go(func() error {
		defer cancel()
		<-router.Running()
		return inputLoop(ctx, controller, selection)
	})

	err = eg.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

const chatHelp = `Commands:
  /new              start a new chat conversation
  /explain          explain the current code selection
  /edit             edit the current code selection
  /code <snippet>   set the code selection
  /select <id>      select a conversation
  /delete <id>      delete a conversation
  /retry [id]       retry a failed exchange
  /help             show this help
  /quit             exit
Anything else is sent to the selected conversation.`

func inputLoop(ctx context.Context, controller *chat.ChatController, selection *selectionStore) error {
	fmt.Println(chatHelp)

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		done, err := dispatchLine(ctx, controller, selection, line)
		if err != nil {
			log.Error().Err(err).Msg("failed to handle input")
		}
		if done {
			return nil
		}
	}

	return scanner.Err()
}

func dispatchLine(ctx context.Context, controller *chat.ChatController, selection *selectionStore, line string) (bool, error) {
	command, rest := line, ""
	if idx := strings.IndexByte(line, ' '); idx >= 0 {
		command, rest = line[:idx], strings.TrimSpace(line[idx+1:])
	}

	switch command {
	case "/quit", "/exit":
		return true, nil
	case "/help":
		fmt.Println(chatHelp)
		return false, nil
	case "/new":
		return false, controller.HandlePanelMessage(ctx, chat.StartChatMsg{})
	case "/explain":
		return false, controller.CreateConversation(ctx, conversation.ExplainCodeTypeID)
	case "/edit":
		return false, controller.CreateConversation(ctx, conversation.EditCodeTypeID)
	case "/code":
		selection.Set(rest)
		fmt.Println("selection updated")
		return false, nil
	case "/select":
		return false, controller.HandlePanelMessage(ctx, chat.ClickCollapsedConversationMsg{ID: rest})
	case "/delete":
		return false, controller.HandlePanelMessage(ctx, chat.DeleteConversationMsg{ID: rest})
	case "/retry":
		id := rest
		if id == "" {
			id = controller.Model().SelectedID()
		}
		return false, controller.HandlePanelMessage(ctx, chat.RetryMsg{ID: id})
	default:
		id := controller.Model().SelectedID()
		if id == "" {
			if err := controller.HandlePanelMessage(ctx, chat.StartChatMsg{}); err != nil {
				return false, err
			}
			id = controller.Model().SelectedID()
			if id == "" {
				return false, nil
			}
		}
		return false, controller.HandlePanelMessage(ctx, chat.SendMessageMsg{ID: id, Message: line})
	}
}
