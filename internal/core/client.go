package core

import "sync"

// State is the lifecycle of a connection. Only Open clients are
// eligible broadcast targets.
type State int

const (
	StateOpen State = iota
	StateClosing
	StateClosed
)

// Client is one live connection as seen by the core layer. The owning
// session handler drains Outbound; broadcasters reference the client
// only through Enqueue, which stays safe across lifecycle transitions.
type Client struct {
	ID   string // unique per connection
	Name string // caller-chosen identifier, used for attribution only
	Lang string

	mu    sync.Mutex
	state State
	sendq chan string
}

// NewClient constructs an Open client with a buffered outbound queue.
func NewClient(id, name, lang string, queueSize int) *Client {
	if queueSize <= 0 {
		queueSize = 16
	}
	return &Client{
		ID:    id,
		Name:  name,
		Lang:  lang,
		sendq: make(chan string, queueSize),
	}
}

// Enqueue queues text for delivery without blocking. Sends to a
// non-Open client fail with ErrClientClosed; a full queue fails with
// ErrSendBufferFull and the message is dropped.
func (c *Client) Enqueue(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateOpen {
		return ErrClientClosed
	}
	select {
	case c.sendq <- text:
		return nil
	default:
		return ErrSendBufferFull
	}
}

// Outbound exposes queued messages for the owning write loop. The
// channel is closed by Close.
func (c *Client) Outbound() <-chan string {
	return c.sendq
}

// BeginClose marks the connection as draining; new sends are refused
// while the session handler finishes teardown.
func (c *Client) BeginClose() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateOpen {
		c.state = StateClosing
	}
}

// Close transitions to Closed and closes the outbound queue. It is
// idempotent and safe to call concurrently with Enqueue.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateClosed {
		return
	}
	c.state = StateClosed
	close(c.sendq)
}

// State returns the current lifecycle state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}
