package chat

import (
	"course_assistant/pkg/ai"
)

// DefaultHistoryWindow is how many prior messages accompany each question.
const DefaultHistoryWindow = 10

// Window returns the last k messages of snapshot, order preserved. The result
// shares no memory with snapshot.
func Window(snapshot []Message, k int) []Message {
	if k <= 0 || len(snapshot) == 0 {
		return []Message{}
	}
	if k > len(snapshot) {
		k = len(snapshot)
	}
	out := make([]Message, k)
	copy(out, snapshot[len(snapshot)-k:])
	return out
}

// BuildRequestMessages lays out a request as system instruction, history, then
// the new question.
func BuildRequestMessages(systemInstruction string, history []Message, text string) []ai.Message {
	msgs := make([]ai.Message, 0, len(history)+2)
	if systemInstruction != "" {
		msgs = append(msgs, ai.Message{Role: ai.RoleSystem, Content: systemInstruction})
	}
	for _, m := range history {
		msgs = append(msgs, ai.Message{
			Role:    providerRole(m.Role),
			Content: m.Text,
		})
	}
	msgs = append(msgs, ai.Message{Role: ai.RoleUser, Content: text})
	return msgs
}

func providerRole(r Role) string {
	if r == RoleModel {
		return ai.RoleAssistant
	}
	return ai.RoleUser
}
