package network

import (
	"encoding/json"
	"time"
)

// Command is one structured request from the chat transport. Args carry
// command-specific fields and stay opaque until the handler parses them.
type Command struct {
	ID      string          `json:"id,omitempty"` // transport correlation id, echoed back
	Name    string          `json:"command"`
	OwnerID string          `json:"owner_id,omitempty"` // defaults to the connection's owner
	Args    json.RawMessage `json:"args,omitempty"`
}

// Response is the structured outcome of one command. Reason is set only
// on failure and carries one of the engine's reason codes.
type Response struct {
	ID         string      `json:"id,omitempty"`
	OK         bool        `json:"ok"`
	Reason     string      `json:"reason,omitempty"`
	RetryAfter string      `json:"retry_after,omitempty"` // set with ON_COOLDOWN
	Payload    interface{} `json:"payload,omitempty"`
}

// Notice is an unsolicited server-to-owner message, used for removal notices.
type Notice struct {
	Type    string    `json:"type"`
	Message string    `json:"message"`
	SentAt  time.Time `json:"sent_at"`
}

func encodeNotice(message string) ([]byte, error) {
	return json.Marshal(Notice{
		Type:    "notice",
		Message: message,
		SentAt:  time.Now(),
	})
}
