package core

const (
	MemBotName          = "MemBot"
	MemBotUserAgent     = "MemBot-Agent/0.1"
	MemBotRepositoryURL = "https://github.com/sandevgo/membot"
	MemBotVersion       = "0.1.0"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ValidRole reports whether role is one of the supported message roles.
func ValidRole(role string) bool {
	switch role {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	}
	return false
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
