package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"liveroom/internal/service"
)

// ChallengeHandler 處理挑戰房間的控制介面請求
// 這些操作由伺服器側發起（例如排程或管理後台），不需要開啟 WebSocket
type ChallengeHandler struct {
	rooms *service.RoomManager
}

// NewChallengeHandler 創建一個新的 ChallengeHandler 實例
func NewChallengeHandler(rooms *service.RoomManager) *ChallengeHandler {
	return &ChallengeHandler{rooms: rooms}
}

// GetParticipants 處理查詢參與者列表的請求
func (h *ChallengeHandler) GetParticipants(c *gin.Context) {
	room := h.rooms.ChallengeRoom(c.Param("id"))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    room.Participants(),
	})
}

// GetSubmissions 處理查詢參賽作品列表的請求
func (h *ChallengeHandler) GetSubmissions(c *gin.Context) {
	room := h.rooms.ChallengeRoom(c.Param("id"))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    room.Submissions(),
	})
}

// GetLeaderboard 處理查詢完整排行榜的請求
func (h *ChallengeHandler) GetLeaderboard(c *gin.Context) {
	room := h.rooms.ChallengeRoom(c.Param("id"))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    room.Leaderboard(),
	})
}

// Submit 處理伺服器側提交作品的請求
func (h *ChallengeHandler) Submit(c *gin.Context) {
	var input struct {
		ParticipantID string `json:"participant_id" binding:"required"`
		Content       string `json:"content" binding:"required"`
		FileURL       string `json:"file_url"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	room := h.rooms.ChallengeRoom(c.Param("id"))
	if err := room.Submit(input.ParticipantID, input.Content, input.FileURL); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Vote 處理伺服器側投票的請求
func (h *ChallengeHandler) Vote(c *gin.Context) {
	var input struct {
		ParticipantID string `json:"participant_id" binding:"required"`
		SubmissionID  string `json:"submission_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	room := h.rooms.ChallengeRoom(c.Param("id"))
	if err := room.Vote(input.ParticipantID, input.SubmissionID); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, service.ErrParticipantNotFound) || errors.Is(err, service.ErrSubmissionNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// End 處理結束挑戰的請求，重複呼叫是安全的
func (h *ChallengeHandler) End(c *gin.Context) {
	room := h.rooms.ChallengeRoom(c.Param("id"))
	room.End()

	c.JSON(http.StatusOK, gin.H{"success": true})
}
