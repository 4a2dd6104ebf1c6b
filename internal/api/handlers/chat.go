package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"liveroom/internal/service"
)

// ChatHandler 處理聊天室的控制介面請求（不需要開啟 WebSocket）
type ChatHandler struct {
	rooms *service.RoomManager
}

// NewChatHandler 創建一個新的 ChatHandler 實例
func NewChatHandler(rooms *service.RoomManager) *ChatHandler {
	return &ChatHandler{rooms: rooms}
}

// GetMessages 處理查詢聊天紀錄的請求
func (h *ChatHandler) GetMessages(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "無效的 limit"})
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "無效的 offset"})
		return
	}

	room := h.rooms.ChatRoom(c.Param("id"))
	messages, total := room.History(limit, offset)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    messages,
		"total":   total,
	})
}

// GetUsers 處理查詢在線用戶列表的請求
func (h *ChatHandler) GetUsers(c *gin.Context) {
	room := h.rooms.ChatRoom(c.Param("id"))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    room.Participants(),
	})
}
