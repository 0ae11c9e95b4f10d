package domain_models

import "time"

type ChatRole string

const (
	RoleAssistant ChatRole = "assistant"
	RoleUser      ChatRole = "user"
	RoleSystem    ChatRole = "system"
)

// ChatMessage is never mutated after it is appended.
type ChatMessage struct {
	Role      ChatRole  `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
