package models

import (
	"time"
)

// Participant 代表房間內的一位參與者
// 聊天室在斷線時會整個刪除；挑戰房間會保留紀錄（分數歷史）
type Participant struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	AvatarURL       string    `json:"avatar_url,omitempty"`
	JoinedAt        time.Time `json:"joined_at"`
	LastActivity    time.Time `json:"last_activity"`
	Score           int       `json:"score"`
	SubmissionCount int       `json:"submission_count"`
}

// NewParticipant 建立一個新的參與者，分數與作品數從零開始
func NewParticipant(id, username, avatarURL string) *Participant {
	now := time.Now()
	return &Participant{
		ID:           id,
		Username:     username,
		AvatarURL:    avatarURL,
		JoinedAt:     now,
		LastActivity: now,
	}
}

// Touch 更新參與者的最後活動時間
func (p *Participant) Touch() {
	p.LastActivity = time.Now()
}
