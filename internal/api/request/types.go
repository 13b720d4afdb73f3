package request

// CreateGameRequest is the request body for creating a game
type CreateGameRequest struct {
	Title      string   `json:"title"`
	Categories []string `json:"categories"`
}

// RPCParameters carries the optional parameters of an RPC command
type RPCParameters struct {
	Letter string `json:"letter,omitempty"`
	Which  string `json:"which,omitempty"`
}

// RPCRequest is the JSON-RPC shaped command envelope for PUT /games/{id}
type RPCRequest struct {
	Method     string        `json:"method"`
	Parameters RPCParameters `json:"parameters"`
	ID         string        `json:"id,omitempty"`
}

// SignupRequest is the request body for a participant signup
type SignupRequest struct {
	Name   string `json:"name"`
	Number string `json:"number"`
	Game   string `json:"game"`
}

// InboundMessage is the webhook body for an inbound SMS
type InboundMessage struct {
	From string `json:"from"`
	To   string `json:"to"`
	Text string `json:"text"`
}

// VoiceAnswer is the webhook body for an answered voice call
type VoiceAnswer struct {
	From string `json:"from"`
	To   string `json:"to"`
	UUID string `json:"uuid"`
}
