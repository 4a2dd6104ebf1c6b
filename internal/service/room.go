package service

import (
	"encoding/json"
	"log"
	"sort"
	"sync"

	"github.com/samber/lo"

	"liveroom/internal/models"
)

// baseRoom 提供兩種房間共用的會話登記與廣播能力
// 每個房間一把鎖，所有狀態變更依序執行，房間之間互不干涉
type baseRoom struct {
	id           string
	mu           sync.Mutex
	sessions     map[*Client]*models.Participant // 連線 -> 參與者
	byUser       map[string]*Client              // 參與者 ID -> 最新連線
	participants map[string]*models.Participant

	// 參與者失去最後一條連線時的清理動作，由房間類型各自設定
	// 呼叫時已持有房間鎖
	dropParticipant func(p *models.Participant)
}

func newBaseRoom(id string) baseRoom {
	return baseRoom{
		id:           id,
		sessions:     make(map[*Client]*models.Participant),
		byUser:       make(map[string]*Client),
		participants: make(map[string]*models.Participant),
	}
}

// ID 回傳房間編號
func (r *baseRoom) ID() string {
	return r.id
}

// admitLocked 登記一條新連線，必要時建立參與者紀錄
func (r *baseRoom) admitLocked(c *Client) *models.Participant {
	p, ok := r.participants[c.UserID]
	if !ok {
		p = models.NewParticipant(c.UserID, c.Username, c.AvatarURL)
		r.participants[p.ID] = p
	}
	r.sessions[c] = p
	r.byUser[p.ID] = c
	return p
}

// releaseLocked 移除一條連線的會話登記
// 回傳的布林值表示這條連線是該參與者目前追蹤的連線
// （同一用戶重連後，舊連線斷開時不應觸發參與者層級的清理）
func (r *baseRoom) releaseLocked(c *Client) (*models.Participant, bool) {
	p, ok := r.sessions[c]
	if !ok {
		return nil, false
	}
	delete(r.sessions, c)
	if r.byUser[p.ID] == c {
		delete(r.byUser, p.ID)
		return p, true
	}
	return p, false
}

// evictLocked 把一條連線視為已斷線：移除登記、關閉連線、執行參與者清理
func (r *baseRoom) evictLocked(c *Client) {
	if _, ok := r.sessions[c]; !ok {
		return
	}
	p, tracked := r.releaseLocked(c)
	if c.Conn != nil {
		c.Conn.Close()
	}
	if tracked && r.dropParticipant != nil {
		r.dropParticipant(p)
	}
}

// Disconnect 處理連線關閉，含房間類型各自的參與者清理
func (r *baseRoom) Disconnect(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evictLocked(c)
}

// broadcastLocked 向房間內所有連線廣播事件，except 不為 nil 時跳過該連線
// 事件只序列化一次；單一連線發送失敗視為斷線，不影響其餘連線
func (r *baseRoom) broadcastLocked(event *models.Event, except *Client) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("event encoding error: %v", err)
		return
	}

	for c := range r.sessions {
		if c == except {
			continue
		}
		if !c.enqueue(data) {
			// 客戶端發送隊列已滿，視為斷線並繼續廣播
			r.evictLocked(c)
		}
	}
}

// sendToLocked 只發送給單一連線，用於快照與錯誤回覆
func (r *baseRoom) sendToLocked(c *Client, event *models.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("event encoding error: %v", err)
		return
	}
	if !c.enqueue(data) {
		r.evictLocked(c)
	}
}

// participantsLocked 回傳依加入時間排序的參與者列表
func (r *baseRoom) participantsLocked() []*models.Participant {
	list := lo.Values(r.participants)
	sort.Slice(list, func(i, j int) bool {
		return list[i].JoinedAt.Before(list[j].JoinedAt)
	})
	return list
}

// Participants 回傳目前的參與者列表
func (r *baseRoom) Participants() []*models.Participant {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.participantsLocked()
}

// ConnectionCount 回傳目前開啟的連線數量
func (r *baseRoom) ConnectionCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
