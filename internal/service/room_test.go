package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"liveroom/internal/models"
)

func newTestClient(userID, username string) *Client {
	return NewClient(nil, userID, username, "")
}

// drain 清空客戶端的發送隊列
func drain(c *Client) {
	for {
		select {
		case <-c.SendChan:
		default:
			return
		}
	}
}

// recvEvent 取出隊列中的下一個事件，隊列為空時讓測試失敗
func recvEvent(t *testing.T, c *Client) models.Event {
	t.Helper()
	select {
	case data := <-c.SendChan:
		var ev models.Event
		require.NoError(t, json.Unmarshal(data, &ev))
		return ev
	default:
		t.Fatal("expected a queued event, got none")
		return models.Event{}
	}
}

// recvAll 取出隊列中目前累積的所有事件
func recvAll(t *testing.T, c *Client) []models.Event {
	t.Helper()
	var events []models.Event
	for {
		select {
		case data := <-c.SendChan:
			var ev models.Event
			require.NoError(t, json.Unmarshal(data, &ev))
			events = append(events, ev)
		default:
			return events
		}
	}
}

func eventTypes(events []models.Event) []string {
	types := make([]string, 0, len(events))
	for _, ev := range events {
		types = append(types, ev.Type)
	}
	return types
}

func TestRoom_SessionRegistry_TracksOpenSockets(t *testing.T) {
	req := require.New(t)
	room := NewChatRoom("lobby")
	a := newTestClient("u1", "alice")
	b := newTestClient("u2", "bob")

	// When two clients connect
	room.Connect(a)
	room.Connect(b)

	// Then both sessions are tracked
	req.Equal(2, room.ConnectionCount())
	req.Len(room.Participants(), 2)

	// When one disconnects
	room.Disconnect(a)

	// Then only the open socket remains
	req.Equal(1, room.ConnectionCount())
	req.Len(room.Participants(), 1)
	req.Equal("u2", room.Participants()[0].ID)

	// And disconnecting twice is harmless
	room.Disconnect(a)
	req.Equal(1, room.ConnectionCount())
}

func TestRoom_Broadcast_ExcludesSender(t *testing.T) {
	req := require.New(t)
	room := NewChatRoom("lobby")
	a := newTestClient("u1", "alice")
	b := newTestClient("u2", "bob")
	room.Connect(a)
	room.Connect(b)
	drain(a)
	drain(b)

	// When alice starts typing
	room.Typing(a, true)

	// Then only bob is notified
	ev := recvEvent(t, b)
	req.Equal(models.EventTypingStart, ev.Type)
	req.Empty(recvAll(t, a))
}

func TestRoom_Broadcast_EvictsFailedSocketAndContinues(t *testing.T) {
	req := require.New(t)
	room := NewChatRoom("lobby")
	a := newTestClient("u1", "alice")
	b := newTestClient("u2", "bob")
	c := newTestClient("u3", "carol")
	room.Connect(a)
	room.Connect(b)
	room.Connect(c)
	drain(a)
	drain(b)
	drain(c)

	// Given bob's send queue is already full (a stalled connection)
	for i := 0; i < sendQueueSize; i++ {
		b.SendChan <- []byte("{}")
	}

	// When a message is broadcast to the room
	room.SendMessage("u1", "hello", models.MessageKindText)

	// Then bob is evicted but the others still receive the message
	req.Equal(2, room.ConnectionCount())
	req.Len(room.Participants(), 2)
	req.Contains(eventTypes(recvAll(t, a)), models.EventNewMessage)
	req.Contains(eventTypes(recvAll(t, c)), models.EventNewMessage)
}

func TestRoom_Reconnect_SameUserKeepsParticipant(t *testing.T) {
	req := require.New(t)
	room := NewChatRoom("lobby")
	first := newTestClient("u1", "alice")
	second := newTestClient("u1", "alice")

	// Given the same user connects twice
	room.Connect(first)
	room.Connect(second)
	req.Equal(2, room.ConnectionCount())
	req.Len(room.Participants(), 1)

	// When the stale socket closes
	room.Disconnect(first)

	// Then the participant survives with the newer socket
	req.Equal(1, room.ConnectionCount())
	req.Len(room.Participants(), 1)

	// And closing the newer socket removes the participant
	room.Disconnect(second)
	req.Empty(room.Participants())
}
