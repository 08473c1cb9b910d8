package conversation

import "context"

// CreateRequest carries everything a factory needs to construct a
// conversation: a fresh id, the completion client, the bound panel-refresh
// callback, the diff collaborator, and the input values gathered for the
// factory's declared input keys.
type CreateRequest struct {
	ID          string
	Client      Client
	UpdatePanel RefreshFunc
	DiffApplier DiffApplier
	Inputs      map[string]interface{}
}

// CreateResult is the successful outcome of a factory invocation.
// ImmediatelyAnswer asks the controller to run the first exchange right
// away, used by types that start from a template prompt.
type CreateResult struct {
	Conversation      Conversation
	ImmediatelyAnswer bool
}

// Factory constructs conversations of one type. Inputs lists the input
// provider keys the factory requires, in resolution order. Create may return
// an *UnavailableError when the gathered inputs are semantically
// insufficient; the controller then aborts creation and notifies the user.
type Factory interface {
	Inputs() []string
	Create(ctx context.Context, req *CreateRequest) (*CreateResult, error)
}

// DefaultFactories returns the conversation types registered at startup,
// keyed by type id. The returned map is meant to be treated as read-only
// after initialization.
func DefaultFactories() map[string]Factory {
	return map[string]Factory{
		ChatTypeID:        &ChatFactory{},
		ExplainCodeTypeID: &ExplainFactory{},
		EditCodeTypeID:    &EditFactory{},
	}
}
