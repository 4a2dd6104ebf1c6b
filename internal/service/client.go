package service

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"liveroom/internal/models"
)

const (
	writeWait     = 10 * time.Second // 寫入超時
	pongWait      = 60 * time.Second // 等待 pong 的最長時間
	pingPeriod    = 54 * time.Second // 心跳間隔，必須小於 pongWait
	maxFrameSize  = 4096             // 單一訊息的最大大小 4KB
	sendQueueSize = 256              // 每個連線的發送緩衝
)

// Client 代表一個 WebSocket 客戶端連接
type Client struct {
	Conn      *websocket.Conn // WebSocket 連接
	UserID    string          // 用戶 ID（由上游身份層解析，視為可信）
	Username  string          // 顯示名稱
	AvatarURL string          // 頭像網址，可為空
	SendChan  chan []byte     // 已序列化事件的發送通道
}

// Room 是客戶端所屬房間的操作介面，由聊天室與挑戰房間實作
type Room interface {
	Connect(c *Client)
	Disconnect(c *Client)
	Dispatch(c *Client, env models.Envelope)
}

// NewClient 建立一個新的客戶端連接
func NewClient(conn *websocket.Conn, userID, username, avatarURL string) *Client {
	return &Client{
		Conn:      conn,
		UserID:    userID,
		Username:  username,
		AvatarURL: avatarURL,
		SendChan:  make(chan []byte, sendQueueSize),
	}
}

// Serve 處理整個連線生命週期：加入房間、啟動讀寫、離開時清理資源
// 呼叫端會被阻塞直到連線關閉
func (c *Client) Serve(room Room) {
	room.Connect(c)

	defer func() {
		room.Disconnect(c)
		c.Conn.Close()
		close(c.SendChan)
	}()

	go c.writePump()
	c.readPump(room)
}

// readPump 持續監聽並處理從客戶端接收的訊息
func (c *Client) readPump(room Room) {
	c.Conn.SetReadLimit(maxFrameSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket unexpected close error: %v", err)
			}
			break
		}

		// 解析訊息外殼；格式錯誤只回覆給發送者本人
		var env models.Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			c.sendEvent(models.NewErrorEvent("無法解析訊息格式"))
			continue
		}

		room.Dispatch(c, env)
	}
}

// writePump 處理向客戶端發送訊息的邏輯
func (c *Client) writePump() {
	// 設置心跳檢查計時器
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case data, ok := <-c.SendChan:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			// 發送心跳包
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// enqueue 嘗試將已序列化的事件放入發送隊列
// 回傳 false 表示隊列已滿，呼叫端應視為該連線已失效
func (c *Client) enqueue(data []byte) bool {
	select {
	case c.SendChan <- data:
		return true
	default:
		return false
	}
}

// sendEvent 序列化並發送事件給這一個連線
func (c *Client) sendEvent(event *models.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("message encoding error: %v", err)
		return
	}
	c.enqueue(data)
}
