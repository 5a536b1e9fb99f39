package llm

import "strings"

// Message roles
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

const jsonOnlyInstruction = "IMPORTANT: Respond ONLY with valid JSON. No additional text or explanations."

// Message is one role-tagged turn of a completion request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// FormatMessagesAsPrompt flattens messages into a single prompt for
// prompt-in/text-out backends.
func FormatMessagesAsPrompt(messages []Message) string {
	parts := make([]string, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case RoleSystem:
			parts = append(parts, "System: "+msg.Content)
		case RoleUser:
			parts = append(parts, "User: "+msg.Content)
		case RoleAssistant:
			parts = append(parts, "Assistant: "+msg.Content)
		default:
			parts = append(parts, msg.Content)
		}
	}

	return strings.Join(parts, "\n\n") + "\n\n" + jsonOnlyInstruction
}
