package service

import (
	"sync"
)

// RoomManager 管理房間編號到房間實例的對照
// 每個 (類型, 編號) 在整個行程生命週期中只會有一個實例
type RoomManager struct {
	mu             sync.RWMutex
	chatRooms      map[string]*ChatRoom
	challengeRooms map[string]*ChallengeRoom
}

// NewRoomManager 建立並初始化新的房間管理器
func NewRoomManager() *RoomManager {
	return &RoomManager{
		chatRooms:      make(map[string]*ChatRoom),
		challengeRooms: make(map[string]*ChallengeRoom),
	}
}

// ChatRoom 取得指定編號的聊天室，不存在時建立
func (m *RoomManager) ChatRoom(id string) *ChatRoom {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, ok := m.chatRooms[id]
	if !ok {
		room = NewChatRoom(id)
		m.chatRooms[id] = room
	}
	return room
}

// ChallengeRoom 取得指定編號的挑戰房間，不存在時建立
func (m *RoomManager) ChallengeRoom(id string) *ChallengeRoom {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, ok := m.challengeRooms[id]
	if !ok {
		room = NewChallengeRoom(id)
		m.challengeRooms[id] = room
	}
	return room
}

// Counts 回傳目前活著的聊天室與挑戰房間數量
func (m *RoomManager) Counts() (chatRooms, challengeRooms int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.chatRooms), len(m.challengeRooms)
}
