package service

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"

	"github.com/samber/lo"

	"liveroom/internal/models"
)

const (
	submissionAward = 10 // 每提交一件作品，作者獲得的分數
	voteAward       = 5  // 每收到一票，作者獲得的分數
	leaderboardTopN = 10 // Socket 查詢排行榜時回傳的名次數量
)

var (
	ErrParticipantNotFound = errors.New("找不到參與者")
	ErrSubmissionNotFound  = errors.New("找不到參賽作品")
	ErrSelfVote            = errors.New("不能投票給自己的作品")
	ErrDuplicateVote       = errors.New("已經投過這件作品")
)

// ChallengeStatus 定義挑戰房間生命週期狀態的類型
type ChallengeStatus string

const (
	ChallengeStatusActive ChallengeStatus = "active"
	ChallengeStatusEnded  ChallengeStatus = "ended"
)

// ChallengeRoom 代表一個挑戰房間
// 與聊天室不同，參與者斷線後仍保留其分數與作品紀錄
// 狀態機只有單向的 active -> ended，結束後所有變更操作都不再生效
type ChallengeRoom struct {
	baseRoom
	ended       bool
	submissions map[string]*models.Submission
	order       []*models.Submission // 依提交順序
}

// NewChallengeRoom 建立一個新的挑戰房間，初始狀態為 active
func NewChallengeRoom(id string) *ChallengeRoom {
	r := &ChallengeRoom{
		baseRoom:    newBaseRoom(id),
		submissions: make(map[string]*models.Submission),
	}
	r.dropParticipant = r.dropParticipantLocked
	return r
}

// Connect 處理新連線：登記會話、發送完整狀態快照、通知其他人
func (r *ChallengeRoom) Connect(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.admitLocked(c)

	r.sendToLocked(c, models.NewEvent(models.EventChallengeState, map[string]any{
		"status":       r.statusLocked(),
		"participants": r.participantsLocked(),
		"submissions":  r.submissionsLocked(),
	}))

	r.broadcastLocked(models.NewEvent(models.EventParticipantJoined, p), c)
}

// Dispatch 處理客戶端傳入的訊息
// 違反投票規則的操作在 socket 路徑上靜默忽略
func (r *ChallengeRoom) Dispatch(c *Client, env models.Envelope) {
	switch env.Type {
	case models.TypeSubmitEntry:
		var payload struct {
			Content string `json:"content"`
			FileURL string `json:"file_url"`
		}
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			c.sendEvent(models.NewErrorEvent("無法解析訊息內容"))
			return
		}
		r.Submit(c.UserID, payload.Content, payload.FileURL)

	case models.TypeCastVote:
		var payload struct {
			SubmissionID string `json:"submission_id"`
		}
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			c.sendEvent(models.NewErrorEvent("無法解析訊息內容"))
			return
		}
		r.Vote(c.UserID, payload.SubmissionID)

	case models.TypeGetLeaderboard:
		r.mu.Lock()
		board := r.leaderboardLocked()
		if len(board) > leaderboardTopN {
			board = board[:leaderboardTopN]
		}
		r.sendToLocked(c, models.NewEvent(models.EventLeaderboard, map[string]any{
			"leaderboard": board,
		}))
		r.mu.Unlock()

	default:
		c.sendEvent(models.NewErrorEvent("未知的訊息類型: " + env.Type))
	}
}

// Submit 提交一件作品：建立紀錄、加分、廣播給所有連線
// 房間已結束或內容為空時不做任何事
func (r *ChallengeRoom) Submit(userID, content, fileURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ended {
		return nil
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}

	p, ok := r.participants[userID]
	if !ok {
		return ErrParticipantNotFound
	}
	p.Touch()

	sub := models.NewSubmission(p.ID, p.Username, content, fileURL)
	r.submissions[sub.ID] = sub
	r.order = append(r.order, sub)
	p.SubmissionCount++
	p.Score += submissionAward

	r.broadcastLocked(models.NewEvent(models.EventNewSubmission, sub), nil)
	return nil
}

// Vote 對一件作品投票，分數加給作品的作者而不是投票者
// 禁止自投與重複投票；房間已結束時不做任何事
func (r *ChallengeRoom) Vote(voterID, submissionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ended {
		return nil
	}

	voter, ok := r.participants[voterID]
	if !ok {
		return ErrParticipantNotFound
	}
	sub, ok := r.submissions[submissionID]
	if !ok {
		return ErrSubmissionNotFound
	}
	if sub.UserID == voterID {
		return ErrSelfVote
	}
	if sub.HasVoted(voterID) {
		return ErrDuplicateVote
	}

	voter.Touch()
	sub.Voters[voterID] = true
	sub.VoteCount++
	if author, ok := r.participants[sub.UserID]; ok {
		author.Score += voteAward
	}

	r.broadcastLocked(models.NewEvent(models.EventVoteCast, map[string]any{
		"submission_id": sub.ID,
		"vote_count":    sub.VoteCount,
		"voter_id":      voterID,
	}), nil)
	return nil
}

// End 結束挑戰並廣播完整排行榜，重複呼叫不做任何事
func (r *ChallengeRoom) End() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ended {
		return
	}
	r.ended = true

	r.broadcastLocked(models.NewEvent(models.EventChallengeEnded, map[string]any{
		"leaderboard": r.leaderboardLocked(),
	}), nil)
}

// Ended 回報房間是否已結束
func (r *ChallengeRoom) Ended() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ended
}

// Status 回傳目前的生命週期狀態
func (r *ChallengeRoom) Status() ChallengeStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.statusLocked()
}

func (r *ChallengeRoom) statusLocked() ChallengeStatus {
	if r.ended {
		return ChallengeStatusEnded
	}
	return ChallengeStatusActive
}

// Submissions 回傳依提交順序排列的作品列表
func (r *ChallengeRoom) Submissions() []*models.Submission {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.submissionsLocked()
}

func (r *ChallengeRoom) submissionsLocked() []*models.Submission {
	out := make([]*models.Submission, len(r.order))
	copy(out, r.order)
	return out
}

// Leaderboard 回傳完整排行榜：分數由高到低，同分者先加入的在前
func (r *ChallengeRoom) Leaderboard() []*models.Participant {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.leaderboardLocked()
}

func (r *ChallengeRoom) leaderboardLocked() []*models.Participant {
	board := lo.Values(r.participants)
	sort.Slice(board, func(i, j int) bool {
		if board[i].Score != board[j].Score {
			return board[i].Score > board[j].Score
		}
		return board[i].JoinedAt.Before(board[j].JoinedAt)
	})
	return board
}

// dropParticipantLocked 挑戰房間的斷線清理：保留參與者紀錄，只通知離開
func (r *ChallengeRoom) dropParticipantLocked(p *models.Participant) {
	r.broadcastLocked(models.NewEvent(models.EventParticipantLeft, map[string]any{
		"user_id": p.ID,
	}), nil)
}
