// Package chat holds the conversation and the loop that streams model answers into it.
package chat

import (
	"time"

	"course_assistant/pkg/knowledge"
)

// Role identifies who authored a message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one entry of the conversation.
type Message struct {
	ID        string
	Role      Role
	Text      string
	Timestamp time.Time
	// Streaming is set on a model placeholder while its answer is still arriving.
	Streaming bool
}

// IsUser reports whether the message was typed by the student.
func (m Message) IsUser() bool {
	return m.Role == RoleUser
}

// WelcomeMessage returns the greeting every conversation starts with.
func WelcomeMessage(at time.Time) Message {
	return Message{
		ID:        knowledge.WelcomeID,
		Role:      RoleModel,
		Text:      knowledge.WelcomeText,
		Timestamp: at,
	}
}
