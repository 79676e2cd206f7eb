package model

// ChatRequest is the inbound widget payload.
type ChatRequest struct {
	Message      string `json:"message"`
	BusinessSlug string `json:"businessSlug,omitempty"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

// ErrorReply is sent with a 500 when a turn fails unexpectedly.
const ErrorReply = "Sorry, something went wrong on our side. Please try again in a moment."

const (
	RateLimitedReply = "You're sending messages a little too quickly. Please wait a moment and try again."
	TooLargeReply    = "That message is too long for me. Please send a shorter one."
)
