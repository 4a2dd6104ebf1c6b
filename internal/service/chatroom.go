package service

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"liveroom/internal/models"
)

const (
	maxHistorySize   = 1000 // 每個聊天室保留的訊息上限，超過時淘汰最舊的
	maxMessageLength = 1000 // 單一訊息的字數上限
	snapshotSize     = 50   // 連線時回傳的近期訊息數量
	defaultPageSize  = 50
)

// ChatRoom 代表一個聊天室
// 斷線時會刪除整個參與者紀錄，並廣播系統訊息
type ChatRoom struct {
	baseRoom
	messages []models.ChatMessage
}

// NewChatRoom 建立一個新的聊天室
func NewChatRoom(id string) *ChatRoom {
	r := &ChatRoom{baseRoom: newBaseRoom(id)}
	r.dropParticipant = r.dropParticipantLocked
	return r
}

// Connect 處理新連線：登記會話、發送快照、通知其他人
func (r *ChatRoom) Connect(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.admitLocked(c)

	// 快照只發給新連線本人
	recent, total := r.historyLocked(snapshotSize, 0)
	r.sendToLocked(c, models.NewEvent(models.EventMessageHistory, map[string]any{
		"messages": recent,
		"total":    total,
	}))
	r.sendToLocked(c, models.NewEvent(models.EventUsersList, map[string]any{
		"users": r.participantsLocked(),
	}))

	r.broadcastLocked(models.NewEvent(models.EventUserJoined, p), c)
}

// Dispatch 處理客戶端傳入的訊息
func (r *ChatRoom) Dispatch(c *Client, env models.Envelope) {
	switch env.Type {
	case models.TypeSendMessage:
		var payload struct {
			Message string `json:"message"`
			Type    string `json:"type"`
		}
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			c.sendEvent(models.NewErrorEvent("無法解析訊息內容"))
			return
		}
		r.SendMessage(c.UserID, payload.Message, models.ParseMessageKind(payload.Type))

	case models.TypeTypingStart:
		r.Typing(c, true)

	case models.TypeTypingStop:
		r.Typing(c, false)

	default:
		c.sendEvent(models.NewErrorEvent("未知的訊息類型: " + env.Type))
	}
}

// SendMessage 發送一條聊天訊息並廣播給所有連線（含發送者）
// 修剪後為空或超過長度上限的訊息會被靜默丟棄
func (r *ChatRoom) SendMessage(userID, body string, kind models.MessageKind) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.participants[userID]
	if !ok {
		return
	}

	body = strings.TrimSpace(body)
	if body == "" || utf8.RuneCountInString(body) > maxMessageLength {
		return
	}

	p.Touch()
	msg := models.NewChatMessage(p.ID, p.Username, body, kind)
	r.appendLocked(msg)
	r.broadcastLocked(models.NewEvent(models.EventNewMessage, msg), nil)
}

// Typing 廣播輸入狀態給發送者以外的所有連線，不落地保存
func (r *ChatRoom) Typing(c *Client, typing bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.sessions[c]
	if !ok {
		return
	}

	eventType := models.EventTypingStop
	if typing {
		eventType = models.EventTypingStart
	}
	r.broadcastLocked(models.NewEvent(eventType, map[string]any{
		"user_id":  p.ID,
		"username": p.Username,
	}), c)
}

// History 回傳從最新往回數、跳過 offset 筆之後的 limit 筆訊息與總筆數
func (r *ChatRoom) History(limit, offset int) ([]models.ChatMessage, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.historyLocked(limit, offset)
}

func (r *ChatRoom) historyLocked(limit, offset int) ([]models.ChatMessage, int) {
	total := len(r.messages)
	if limit <= 0 {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}

	end := total - offset
	if end < 0 {
		end = 0
	}
	start := end - limit
	if start < 0 {
		start = 0
	}

	out := make([]models.ChatMessage, end-start)
	copy(out, r.messages[start:end])
	return out, total
}

// appendLocked 追加一條訊息，超過上限時淘汰最舊的一條
func (r *ChatRoom) appendLocked(msg models.ChatMessage) {
	r.messages = append(r.messages, msg)
	if len(r.messages) > maxHistorySize {
		r.messages = r.messages[1:]
	}
}

// dropParticipantLocked 聊天室的斷線清理：刪除參與者並廣播離開訊息
func (r *ChatRoom) dropParticipantLocked(p *models.Participant) {
	delete(r.participants, p.ID)

	msg := models.NewSystemChatMessage(p.Username + " left the chat")
	r.appendLocked(msg)
	r.broadcastLocked(models.NewEvent(models.EventNewMessage, msg), nil)
	r.broadcastLocked(models.NewEvent(models.EventUserLeft, map[string]any{
		"user_id":  p.ID,
		"username": p.Username,
	}), nil)
}
