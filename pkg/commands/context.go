package commands

import (
	"course_assistant/pkg/chat"
)

// Context contains what a command may look at when it runs.
type Context struct {
	Store *chat.Store
	Args  []string
}

// NewContext creates a new command context
func NewContext(store *chat.Store, args ...string) *Context {
	return &Context{
		Store: store,
		Args:  args,
	}
}

// LastAnswer returns the text of the latest finished model message.
func (c *Context) LastAnswer() (string, bool) {
	if c == nil || c.Store == nil {
		return "", false
	}
	msg, ok := c.Store.LastAnswer()
	if !ok || msg.Text == "" {
		return "", false
	}
	return msg.Text, true
}
