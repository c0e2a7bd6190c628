package admin

import "sync"

// Caller is whoever issued a command: the local console, a remote console
// session or a player. Replies are collected for the transport to deliver.
type Caller struct {
	name        string
	accessLevel int32

	mu      sync.Mutex
	replies []string
}

// NewCaller creates a caller with the given access level.
func NewCaller(name string, accessLevel int32) *Caller {
	return &Caller{name: name, accessLevel: accessLevel}
}

func (c *Caller) Name() string       { return c.name }
func (c *Caller) AccessLevel() int32 { return c.accessLevel }

// Reply queues a line for the caller.
func (c *Caller) Reply(msg string) {
	c.mu.Lock()
	c.replies = append(c.replies, msg)
	c.mu.Unlock()
}

// Drain returns and clears the queued replies.
func (c *Caller) Drain() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.replies
	c.replies = nil
	return out
}
