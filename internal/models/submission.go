package models

import (
	"time"

	"github.com/google/uuid"
)

// Submission 代表挑戰房間中的一件參賽作品
// 不變量: len(Voters) == VoteCount，且作者本人永遠不在 Voters 中
type Submission struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Username    string          `json:"username"`
	Content     string          `json:"content"`
	FileURL     string          `json:"file_url,omitempty"`
	SubmittedAt time.Time       `json:"submitted_at"`
	VoteCount   int             `json:"vote_count"`
	Voters      map[string]bool `json:"-"`
}

// NewSubmission 建立一件新的參賽作品，票數從零開始
func NewSubmission(userID, username, content, fileURL string) *Submission {
	return &Submission{
		ID:          uuid.NewString(),
		UserID:      userID,
		Username:    username,
		Content:     content,
		FileURL:     fileURL,
		SubmittedAt: time.Now(),
		Voters:      make(map[string]bool),
	}
}

// HasVoted 檢查某位參與者是否已投過這件作品
func (s *Submission) HasVoted(userID string) bool {
	return s.Voters[userID]
}
