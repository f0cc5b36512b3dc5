package seed

import "sync"

const (
	LevelSuccess = "success"
	LevelError   = "error"
)

// Notification is a user-facing message raised during a run.
type Notification struct {
	Level   string `json:"level"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Notifier surfaces notifications to whoever triggered the run.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(n Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// Collector keeps notifications in memory, for HTTP responses and tests.
type Collector struct {
	mu    sync.Mutex
	items []Notification
}

func (c *Collector) Notify(n Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, n)
}

func (c *Collector) All() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notification, len(c.items))
	copy(out, c.items)
	return out
}

// Errors returns only the error-level notifications.
func (c *Collector) Errors() []Notification {
	var out []Notification
	for _, n := range c.All() {
		if n.Level == LevelError {
			out = append(out, n)
		}
	}
	return out
}

type discardNotifier struct{}

func (discardNotifier) Notify(Notification) {}
