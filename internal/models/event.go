package models

import "encoding/json"

// Envelope 代表客戶端傳入的 WebSocket 訊息外殼
// Data 保留原始 JSON，由各房間依 Type 自行解析
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Event 代表伺服器推送給客戶端的事件
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// 客戶端 -> 伺服器 的訊息類型
const (
	TypeSendMessage    = "send_message"
	TypeTypingStart    = "typing_start"
	TypeTypingStop     = "typing_stop"
	TypeSubmitEntry    = "submit_entry"
	TypeCastVote       = "cast_vote"
	TypeGetLeaderboard = "get_leaderboard"
)

// 伺服器 -> 客戶端 的事件類型
const (
	EventMessageHistory    = "message_history"
	EventUsersList         = "users_list"
	EventChallengeState    = "challenge_state"
	EventUserJoined        = "user_joined"
	EventUserLeft          = "user_left"
	EventParticipantJoined = "participant_joined"
	EventParticipantLeft   = "participant_left"
	EventNewMessage        = "new_message"
	EventNewSubmission     = "new_submission"
	EventVoteCast          = "vote_cast"
	EventLeaderboard       = "leaderboard"
	EventChallengeEnded    = "challenge_ended"
	EventTypingStart       = "typing_start"
	EventTypingStop        = "typing_stop"
	EventError             = "error"
)

// NewEvent 建立一個伺服器事件
func NewEvent(eventType string, data any) *Event {
	return &Event{Type: eventType, Data: data}
}

// NewErrorEvent 建立一個只回傳給單一連線的錯誤事件
func NewErrorEvent(message string) *Event {
	return &Event{
		Type: EventError,
		Data: map[string]any{"message": message},
	}
}
