package model

import "time"

type ReceiverType string

const (
	ReceiverTypeUser        ReceiverType = "user"
	ReceiverTypeCharityPage ReceiverType = "charity_page"
)

func (rt ReceiverType) Valid() bool {
	return rt == ReceiverTypeUser || rt == ReceiverTypeCharityPage
}

type MessageType string

const (
	MessageTypeText  MessageType = "text"
	MessageTypeImage MessageType = "image"
	MessageTypeVideo MessageType = "video"
	MessageTypeVoice MessageType = "voice"
)

func (mt MessageType) Valid() bool {
	switch mt {
	case MessageTypeText, MessageTypeImage, MessageTypeVideo, MessageTypeVoice:
		return true
	}
	return false
}

// NoMessagesPlaceholder is the last message of a conversation without history.
const NoMessagesPlaceholder = "No messages"

type Message struct {
	Id           string       `db:"id" json:"id"`
	SenderId     string       `db:"sender_id" json:"senderId"`
	ReceiverId   string       `db:"receiver_id" json:"receiverId"`
	ReceiverType ReceiverType `db:"receiver_type" json:"receiverType"`
	Message      string       `db:"message" json:"message"`
	Type         MessageType  `db:"type" json:"type"`
	MediaUrl     *string      `db:"media_url" json:"mediaUrl"`
	Timestamp    time.Time    `db:"timestamp" json:"timestamp"`
	IsSender     bool         `db:"-" json:"isSender"`
}

// ConversationSummary is the latest message exchanged with one counterpart.
type ConversationSummary struct {
	CounterpartId           string       `db:"counterpart_id" json:"counterpartId"`
	CounterpartType         ReceiverType `db:"counterpart_type" json:"counterpartType"`
	CounterpartName         string       `db:"counterpart_name" json:"name"`
	CounterpartProfileImage *string      `db:"counterpart_profile_image" json:"profileImage"`
	LastMessageId           *string      `db:"last_message_id" json:"lastMessageId"`
	LastMessage             *string      `db:"last_message" json:"lastMessage"`
	LastMessageType         *string      `db:"last_message_type" json:"lastMessageType"`
	MessageTime             *time.Time   `db:"message_time" json:"messageTime"`
}
