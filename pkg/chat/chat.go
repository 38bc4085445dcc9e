package chat

const (
	ChatRoleUser   = "user"
	ChatRoleAgent  = "assistant"
	ChatRoleSystem = "system"
)

// ChatMessage is a single message in an LLM conversation. The shape
// follows the chat-completion APIs this project talks to.
type ChatMessage struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// ChatResponse is the reply produced by an LLM provider.
type ChatResponse struct {
	Message string `json:"message,omitempty"`
}
