package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"liveroom/internal/api/handlers"
	"liveroom/internal/service"
)

func SetupRoutes(r *gin.Engine, services *service.Services) {
	// 初始化 handlers
	wsHandler := handlers.NewWebSocketHandler(services.Rooms)
	chatHandler := handlers.NewChatHandler(services.Rooms)
	challengeHandler := handlers.NewChallengeHandler(services.Rooms)

	// API 路由群組
	api := r.Group("/api")

	// 處理 404 錯誤
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "找不到該路徑",
		})
	})

	// 基本的健康檢查
	api.GET("/health", func(c *gin.Context) {
		chatRooms, challengeRooms := services.Rooms.Counts()
		c.JSON(http.StatusOK, gin.H{
			"status":          "ok",
			"chat_rooms":      chatRooms,
			"challenge_rooms": challengeRooms,
		})
	})

	// 聊天室相關
	chat := api.Group("/chat/:id")
	{
		chat.GET("/ws", wsHandler.HandleChatSocket)    // WebSocket 連接點
		chat.GET("/messages", chatHandler.GetMessages) // 查詢聊天紀錄
		chat.GET("/users", chatHandler.GetUsers)       // 查詢在線用戶
	}

	// 挑戰房間相關
	challenges := api.Group("/challenges/:id")
	{
		challenges.GET("/ws", wsHandler.HandleChallengeSocket)            // WebSocket 連接點
		challenges.GET("/participants", challengeHandler.GetParticipants) // 查詢參與者
		challenges.GET("/submissions", challengeHandler.GetSubmissions)   // 查詢參賽作品
		challenges.GET("/leaderboard", challengeHandler.GetLeaderboard)   // 查詢排行榜
		challenges.POST("/submit", challengeHandler.Submit)               // 伺服器側提交
		challenges.POST("/vote", challengeHandler.Vote)                   // 伺服器側投票
		challenges.POST("/end", challengeHandler.End)                     // 結束挑戰
	}
}
