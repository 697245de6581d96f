package chat

import (
	"log/slog"
	"sync"
)

// Store is the ordered, append-only conversation. It is safe for concurrent
// readers; writes are serialized by the session that owns it.
type Store struct {
	mu        sync.RWMutex
	messages  []Message
	index     map[string]int
	listeners []func()
}

// NewStore creates a store holding the given initial messages, in order.
func NewStore(initial ...Message) *Store {
	s := &Store{
		messages: make([]Message, 0, len(initial)+16),
		index:    make(map[string]int, len(initial)+16),
	}
	for _, msg := range initial {
		s.appendLocked(msg)
	}
	return s
}

// OnChange registers fn to run after every mutation. Listeners run outside the
// store lock and must not block.
func (s *Store) OnChange(fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Append adds msg at the end of the conversation.
func (s *Store) Append(msg Message) {
	s.mu.Lock()
	s.appendLocked(msg)
	s.mu.Unlock()

	s.notify()
}

func (s *Store) appendLocked(msg Message) {
	if _, dup := s.index[msg.ID]; dup {
		// Lookups by id keep resolving to the first message carrying it.
		slog.Warn("chat_store_duplicate_id", "id", msg.ID)
	} else {
		s.index[msg.ID] = len(s.messages)
	}
	s.messages = append(s.messages, msg)
}

// UpdateText replaces the text of the streaming message with the given id.
// Unknown ids and messages that are no longer streaming are left untouched.
func (s *Store) UpdateText(id, text string) {
	s.mu.Lock()
	i, ok := s.index[id]
	if !ok || !s.messages[i].Streaming {
		s.mu.Unlock()
		return
	}
	s.messages[i].Text = text
	s.mu.Unlock()

	s.notify()
}

// Finish seals a streaming message; its text is final from then on.
func (s *Store) Finish(id string) {
	s.mu.Lock()
	i, ok := s.index[id]
	if !ok || !s.messages[i].Streaming {
		s.mu.Unlock()
		return
	}
	s.messages[i].Streaming = false
	s.mu.Unlock()

	s.notify()
}

// Snapshot returns a copy of the conversation in order.
func (s *Store) Snapshot() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Get returns the message with the given id.
func (s *Store) Get(id string) (Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return Message{}, false
	}
	return s.messages[i], true
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// Last returns the most recent message, if any.
func (s *Store) Last() (Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.messages) == 0 {
		return Message{}, false
	}
	return s.messages[len(s.messages)-1], true
}

// LastAnswer returns the most recent model message that is not streaming.
func (s *Store) LastAnswer() (Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.messages) - 1; i >= 0; i-- {
		if m := s.messages[i]; m.Role == RoleModel && !m.Streaming {
			return m, true
		}
	}
	return Message{}, false
}

func (s *Store) notify() {
	s.mu.RLock()
	listeners := make([]func(), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn()
	}
}
