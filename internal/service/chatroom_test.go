package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"liveroom/internal/models"
)

func TestChatRoom_Connect_SendsSnapshotAndNotifiesOthers(t *testing.T) {
	req := require.New(t)
	room := NewChatRoom("lobby")
	a := newTestClient("u1", "alice")

	// When the first client connects
	room.Connect(a)

	// Then it receives the snapshot only
	req.Equal(models.EventMessageHistory, recvEvent(t, a).Type)
	req.Equal(models.EventUsersList, recvEvent(t, a).Type)
	req.Empty(recvAll(t, a))

	// When a second client connects
	b := newTestClient("u2", "bob")
	room.Connect(b)

	// Then the newcomer gets a snapshot and alice gets the join event
	req.Equal(models.EventMessageHistory, recvEvent(t, b).Type)
	req.Equal(models.EventUsersList, recvEvent(t, b).Type)
	ev := recvEvent(t, a)
	req.Equal(models.EventUserJoined, ev.Type)
}

func TestChatRoom_SendMessage_BroadcastIncludesSender(t *testing.T) {
	req := require.New(t)
	room := NewChatRoom("lobby")
	a := newTestClient("u1", "alice")
	b := newTestClient("u2", "bob")
	room.Connect(a)
	room.Connect(b)
	drain(a)
	drain(b)

	// When alice sends a message
	room.SendMessage("u1", "hello bob", models.MessageKindText)

	// Then everyone receives it, including alice
	for _, c := range []*Client{a, b} {
		ev := recvEvent(t, c)
		req.Equal(models.EventNewMessage, ev.Type)
		data := ev.Data.(map[string]any)
		req.Equal("hello bob", data["content"])
		req.Equal("u1", data["user_id"])
	}

	// And the message is stored
	messages, total := room.History(10, 0)
	req.Equal(1, total)
	req.Equal("hello bob", messages[0].Content)
}

func TestChatRoom_SendMessage_DropsEmptyAndOversized(t *testing.T) {
	req := require.New(t)
	room := NewChatRoom("lobby")
	a := newTestClient("u1", "alice")
	room.Connect(a)
	drain(a)

	// When alice sends blank and oversized messages
	room.SendMessage("u1", "   ", models.MessageKindText)
	room.SendMessage("u1", strings.Repeat("x", maxMessageLength+1), models.MessageKindText)

	// Then nothing is stored and nothing is broadcast
	_, total := room.History(10, 0)
	req.Zero(total)
	req.Empty(recvAll(t, a))
}

func TestChatRoom_History_CapEvictsOldest(t *testing.T) {
	req := require.New(t)
	room := NewChatRoom("lobby")
	a := newTestClient("u1", "alice")
	room.Connect(a)
	drain(a)

	// Given the history is filled to its cap
	for i := 0; i < maxHistorySize; i++ {
		room.SendMessage("u1", fmt.Sprintf("message %d", i), models.MessageKindText)
		drain(a)
	}
	_, total := room.History(1, 0)
	req.Equal(maxHistorySize, total)

	// When one more message arrives
	room.SendMessage("u1", "one over the cap", models.MessageKindText)
	drain(a)

	// Then exactly the oldest message is gone
	messages, total := room.History(maxHistorySize, 0)
	req.Equal(maxHistorySize, total)
	req.Equal("message 1", messages[0].Content)
	req.Equal("one over the cap", messages[len(messages)-1].Content)
}

func TestChatRoom_History_Paging(t *testing.T) {
	req := require.New(t)
	room := NewChatRoom("lobby")
	a := newTestClient("u1", "alice")
	room.Connect(a)
	drain(a)

	for i := 0; i < 5; i++ {
		room.SendMessage("u1", fmt.Sprintf("message %d", i), models.MessageKindText)
		drain(a)
	}

	// When asking for two messages, skipping the most recent one
	messages, total := room.History(2, 1)

	// Then the window counts back from the end
	req.Equal(5, total)
	req.Len(messages, 2)
	req.Equal("message 2", messages[0].Content)
	req.Equal("message 3", messages[1].Content)

	// And an oversized offset yields an empty page
	messages, total = room.History(2, 10)
	req.Equal(5, total)
	req.Empty(messages)
}

func TestChatRoom_Disconnect_RemovesParticipantAndAnnounces(t *testing.T) {
	req := require.New(t)
	room := NewChatRoom("lobby")
	a := newTestClient("u1", "alice")
	b := newTestClient("u2", "bob")
	room.Connect(a)
	room.Connect(b)
	drain(a)
	drain(b)

	// When alice disconnects
	room.Disconnect(a)

	// Then her participant record is deleted entirely
	req.Len(room.Participants(), 1)
	req.Equal("u2", room.Participants()[0].ID)

	// And bob sees the system message plus the leave event
	events := recvAll(t, b)
	req.Equal([]string{models.EventNewMessage, models.EventUserLeft}, eventTypes(events))
	data := events[0].Data.(map[string]any)
	req.Equal("alice left the chat", data["content"])
	req.Equal(string(models.MessageKindSystem), data["type"])

	// And the system message joins the history
	messages, total := room.History(10, 0)
	req.Equal(1, total)
	req.Equal(models.MessageKindSystem, messages[0].Kind)
}

func TestChatRoom_Typing_NotStored(t *testing.T) {
	req := require.New(t)
	room := NewChatRoom("lobby")
	a := newTestClient("u1", "alice")
	b := newTestClient("u2", "bob")
	room.Connect(a)
	room.Connect(b)
	drain(a)
	drain(b)

	// When alice starts and stops typing
	room.Typing(a, true)
	room.Typing(a, false)

	// Then bob gets both indicator events and nothing is persisted
	req.Equal([]string{models.EventTypingStart, models.EventTypingStop}, eventTypes(recvAll(t, b)))
	req.Empty(recvAll(t, a))
	_, total := room.History(10, 0)
	req.Zero(total)
}
