package models

import "time"

type Message struct {
	ID         string    `json:"message_id"`
	SenderID   string    `json:"user_id"`
	ReceiverID string    `json:"receiver_id"`
	Body       string    `json:"message"`
	SentAt     time.Time `json:"timestamp"`
}
