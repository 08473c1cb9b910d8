package chat

import "context"

// Panel is the UI surface the controller keeps in sync. Update pushes the
// full collection and selection; it is idempotent and safe to call
// redundantly. Show reveals or focuses the panel.
type Panel interface {
	Update(ctx context.Context, model *ChatModel) error
	Show(ctx context.Context) error
}

// Notifier surfaces info and error messages to the user, outside the panel.
type Notifier interface {
	Info(message string)
	Error(message string)
}

type NopPanel struct{}

var _ Panel = (*NopPanel)(nil)

func (NopPanel) Update(ctx context.Context, model *ChatModel) error { return nil }
func (NopPanel) Show(ctx context.Context) error                     { return nil }

type NopNotifier struct{}

var _ Notifier = (*NopNotifier)(nil)

func (NopNotifier) Info(message string)  {}
func (NopNotifier) Error(message string) {}
