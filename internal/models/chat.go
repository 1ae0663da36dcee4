package models

import "time"

// MessageType distinguishes plain text messages from file attachments
type MessageType string

const (
	MessageText MessageType = "text"
	MessageFile MessageType = "file"
)

// ChatMessage is one entry in the chat log of a patient
type ChatMessage struct {
	ID          string      `gorm:"primaryKey;size:36" json:"id"`
	PatientID   string      `gorm:"size:16;not null;index" json:"patient_id"`
	ChatID      string      `gorm:"size:32;not null" json:"chat_id"`
	SenderName  string      `gorm:"size:255;not null" json:"sender_name"`
	Message     string      `gorm:"type:text" json:"message"`
	MessageType MessageType `gorm:"type:enum('text','file');default:'text'" json:"message_type"`
	Timestamp   time.Time   `gorm:"not null;index" json:"timestamp"`
	IsRead      bool        `gorm:"default:false" json:"is_read"`
}

// TableName specifies the table name for ChatMessage model
func (ChatMessage) TableName() string {
	return "chat_messages"
}

// NegotiationStatus is a loose annotation on a patient's chat, independent of application status
type NegotiationStatus string

const (
	NegotiationRequesting NegotiationStatus = "requesting"
	NegotiationConsulting NegotiationStatus = "consulting"
	NegotiationMatched    NegotiationStatus = "matched"
	NegotiationCompleted  NegotiationStatus = "completed"
	NegotiationDeclined   NegotiationStatus = "declined"
)

// Valid reports whether s is one of the known negotiation statuses
func (s NegotiationStatus) Valid() bool {
	switch s {
	case NegotiationRequesting, NegotiationConsulting, NegotiationMatched, NegotiationCompleted, NegotiationDeclined:
		return true
	}
	return false
}

// Negotiation tracks the chat-derived negotiation state for one patient
type Negotiation struct {
	ID                 string            `gorm:"primaryKey;size:36" json:"id"`
	PatientID          string            `gorm:"size:16;not null;uniqueIndex" json:"patient_id"`
	RequestingFacility string            `gorm:"size:255" json:"requesting_facility"`
	RespondingFacility *string           `gorm:"size:255" json:"responding_facility"`
	Status             NegotiationStatus `gorm:"type:enum('requesting','consulting','matched','completed','declined');default:'requesting'" json:"status"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// TableName specifies the table name for Negotiation model
func (Negotiation) TableName() string {
	return "negotiations"
}

// ChatSummary is one row of a facility's chat list
type ChatSummary struct {
	PatientID   string            `json:"patient_id"`
	LastMessage *ChatMessage      `json:"last_message"`
	UnreadCount int               `json:"unread_count"`
	Status      NegotiationStatus `json:"status"`
	UpdatedAt   time.Time         `json:"updated_at"`
}
