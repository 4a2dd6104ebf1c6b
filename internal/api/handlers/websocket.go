package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"liveroom/internal/service"
)

// 定義 WebSocket 升級器
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // 注意：在生產環境中，應該檢查 origin
	},
}

// WebSocketHandler 處理兩種房間的 WebSocket 連接
type WebSocketHandler struct {
	rooms *service.RoomManager
}

// NewWebSocketHandler 創建一個新的 WebSocketHandler 實例
func NewWebSocketHandler(rooms *service.RoomManager) *WebSocketHandler {
	return &WebSocketHandler{rooms: rooms}
}

// HandleChatSocket 處理聊天室的 WebSocket 連接請求
func (h *WebSocketHandler) HandleChatSocket(c *gin.Context) {
	h.serve(c, func(roomID string) service.Room {
		return h.rooms.ChatRoom(roomID)
	})
}

// HandleChallengeSocket 處理挑戰房間的 WebSocket 連接請求
func (h *WebSocketHandler) HandleChallengeSocket(c *gin.Context) {
	h.serve(c, func(roomID string) service.Room {
		return h.rooms.ChallengeRoom(roomID)
	})
}

// serve 驗證身份參數、升級連線並交給房間處理
// 身份由上游解析後以查詢參數帶入；缺少必要參數時在碰觸任何房間狀態前拒絕
func (h *WebSocketHandler) serve(c *gin.Context, resolve func(roomID string) service.Room) {
	userID := c.Query("user_id")
	username := c.Query("username")
	if userID == "" || username == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "缺少 user_id 或 username",
		})
		return
	}

	room := resolve(c.Param("id"))

	// 升級 HTTP 連接為 WebSocket 連接
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade 失敗時已寫入錯誤回應
		return
	}

	client := service.NewClient(conn, userID, username, c.Query("avatar_url"))
	client.Serve(room)
}
