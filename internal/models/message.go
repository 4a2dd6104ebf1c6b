package models

import (
	"time"

	"github.com/google/uuid"
)

// MessageKind 定義聊天訊息種類的類型
type MessageKind string

const (
	MessageKindText   MessageKind = "text"
	MessageKindImage  MessageKind = "image"
	MessageKindFile   MessageKind = "file"
	MessageKindSystem MessageKind = "system"
)

// ChatMessage 代表一條聊天訊息
type ChatMessage struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id"`
	Username  string      `json:"username"`
	Content   string      `json:"content"`
	Kind      MessageKind `json:"type"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewChatMessage 建立一條新的聊天訊息，編號與時間戳由伺服器指定
func NewChatMessage(userID, username, content string, kind MessageKind) ChatMessage {
	return ChatMessage{
		ID:        uuid.NewString(),
		UserID:    userID,
		Username:  username,
		Content:   content,
		Kind:      kind,
		CreatedAt: time.Now(),
	}
}

// NewSystemChatMessage 建立一條系統訊息
func NewSystemChatMessage(content string) ChatMessage {
	return ChatMessage{
		ID:        uuid.NewString(),
		Username:  "system",
		Content:   content,
		Kind:      MessageKindSystem,
		CreatedAt: time.Now(),
	}
}

// ParseMessageKind 解析客戶端傳來的訊息種類，無法辨識時回退為文字訊息
func ParseMessageKind(s string) MessageKind {
	switch MessageKind(s) {
	case MessageKindText, MessageKindImage, MessageKindFile:
		return MessageKind(s)
	default:
		return MessageKindText
	}
}
