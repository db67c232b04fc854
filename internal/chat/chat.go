// Package chat defines the ports to the external chat transport.
package chat

import "context"

// Message is one inbound chat message.
type Message struct {
	ChatID int64  `json:"chat_id"`
	Text   string `json:"text"`
}

// Sender delivers a text message to a numbered recipient.
type Sender interface {
	Send(ctx context.Context, chatID int64, text string) error
}

// Handler consumes one inbound message. The transport invokes it once per
// received message, one at a time.
type Handler interface {
	Handle(ctx context.Context, msg Message)
}
