package chat

import (
	"github.com/go-go-golems/figaro/pkg/conversation"
)

// ChatModel is the ordered, keyed store of active conversations plus the
// current selection. Entries keep insertion order for display. The selection
// invariant is that selectedID always references an existing entry or is
// unset; Delete re-establishes it when the selected entry goes away.
//
// The model is mutated only by the controller and read by presentation code;
// the host runtime delivers one event at a time, so no locking is needed.
type ChatModel struct {
	order      []string
	entries    map[string]conversation.Conversation
	selectedID string
}

func NewChatModel() *ChatModel {
	return &ChatModel{
		entries: map[string]conversation.Conversation{},
	}
}

// AddAndSelect inserts c and makes it the selected conversation.
func (m *ChatModel) AddAndSelect(c conversation.Conversation) {
	if _, ok := m.entries[c.ID()]; !ok {
		m.order = append(m.order, c.ID())
	}
	m.entries[c.ID()] = c
	m.selectedID = c.ID()
}

func (m *ChatModel) ByID(id string) (conversation.Conversation, bool) {
	c, ok := m.entries[id]
	return c, ok
}

// Select moves the selection to id. Unknown ids leave the selection
// untouched and return false.
func (m *ChatModel) Select(id string) bool {
	if _, ok := m.entries[id]; !ok {
		return false
	}
	m.selectedID = id
	return true
}

// Delete removes the conversation with the given id. Deleting the selected
// conversation moves the selection to the most recently added remaining
// entry, or clears it when the collection is empty. The selection never
// dangles.
func (m *ChatModel) Delete(id string) {
	if _, ok := m.entries[id]; !ok {
		return
	}

	delete(m.entries, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}

	if m.selectedID == id {
		m.selectedID = ""
		if len(m.order) > 0 {
			m.selectedID = m.order[len(m.order)-1]
		}
	}
}

// Conversations returns the active conversations in insertion order.
func (m *ChatModel) Conversations() []conversation.Conversation {
	ret := make([]conversation.Conversation, 0, len(m.order))
	for _, id := range m.order {
		ret = append(ret, m.entries[id])
	}
	return ret
}

func (m *ChatModel) SelectedID() string {
	return m.selectedID
}

func (m *ChatModel) Selected() (conversation.Conversation, bool) {
	if m.selectedID == "" {
		return nil, false
	}
	return m.ByID(m.selectedID)
}

func (m *ChatModel) Len() int {
	return len(m.order)
}
