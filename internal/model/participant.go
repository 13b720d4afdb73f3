package model

// Message is one turn of the generation dialogue
type Message struct {
	Role    string
	Content string
}

// Message roles understood by the question generator
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Participant is a signed-up audience member, immutable once fetched
type Participant struct {
	Name  string
	Phone string
}
