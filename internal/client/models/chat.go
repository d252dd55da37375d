package models

import "time"

// ChatMessage is one entry of a conversation, as returned by the chat
// history endpoint and as pushed by the messaging hub.
type ChatMessage struct {
	SenderID   int64     `json:"senderId"`
	ReceiverID int64     `json:"receiverId"`
	SenderName string    `json:"senderName"`
	SenderRole Role      `json:"senderRole"`
	Message    string    `json:"message"`
	SentAt     time.Time `json:"sentAt"`
}
