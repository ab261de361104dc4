// Package notice collects user-facing notifications during one request so
// handlers can render them in the response envelope, the way the dashboard
// surfaces toasts.
package notice

import (
	"context"
	"sync"

	"github.com/cfo-web/finance-gateway/internal/core/domain"
)

// Notice is one user-facing message.
type Notice struct {
	Level    string             `json:"level"` // "success" or "error"
	Category domain.FailureKind `json:"category,omitempty"`
	Message  string             `json:"message"`
}

// Collector accumulates notices for one request. Safe for concurrent use,
// although a request normally produces notices from a single goroutine.
type Collector struct {
	mu      sync.Mutex
	notices []Notice
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Success(_ context.Context, message string) {
	c.append(Notice{Level: "success", Message: message})
}

func (c *Collector) Failure(_ context.Context, kind domain.FailureKind, message string) {
	c.append(Notice{Level: "error", Category: kind, Message: message})
}

func (c *Collector) append(n Notice) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notices = append(c.notices, n)
}

// Drain returns the collected notices.
func (c *Collector) Drain() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.notices
	c.notices = nil
	return out
}

// Last returns the most recent notice, or nil when none were emitted.
func (c *Collector) Last() *Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.notices) == 0 {
		return nil
	}
	n := c.notices[len(c.notices)-1]
	return &n
}
