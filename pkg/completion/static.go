package completion

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-go-golems/figaro/pkg/conversation"
)

// StaticClient cycles through canned responses. It backs offline mode and
// keeps demos and tests independent of any real backend.
type StaticClient struct {
	mu        sync.Mutex
	responses []string
	next      int
}

var _ conversation.Client = (*StaticClient)(nil)

func NewStaticClient(responses ...string) *StaticClient {
	return &StaticClient{responses: responses}
}

func (c *StaticClient) Complete(
	ctx context.Context,
	sections []conversation.Section,
	messages []*conversation.Message,
) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.responses) == 0 {
		return fmt.Sprintf(
			"(offline) Received %d message(s) and %d context section(s).",
			len(messages), len(sections),
		), nil
	}

	ret := c.responses[c.next%len(c.responses)]
	c.next++
	return ret, nil
}
