package services

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/gofiber/websocket/v2"
)

// Event names pushed over the realtime channel.
const (
	EventAssignmentSubmitted = "assignment-submitted"
	EventAssignmentGraded    = "assignment-graded"
	EventQuizSubmitted       = "quiz-submitted"
	EventChainPublished      = "chain-published"
	EventMentorAssigned      = "mentor-assigned"
	EventNewMessage          = "new-message"
	EventExamScheduled       = "exam-scheduled"
	EventExamRescheduled     = "exam-rescheduled"
	EventUserApproved        = "user-approved"
	EventEventCreated        = "event-created"
)

type rtClient struct {
	conn  *websocket.Conn
	mu    sync.Mutex // serializes writes to the conn
	rooms map[string]bool
}

var (
	hubMu   sync.Mutex
	clients = make(map[*websocket.Conn]*rtClient)
	rooms   = make(map[string]map[*rtClient]bool)
)

// Room name helpers.
func UserRoom(userID uint) string  { return fmt.Sprintf("user:%d", userID) }
func TeamRoom(teamID uint) string  { return fmt.Sprintf("team:%d", teamID) }
func CommunityRoom(id uint) string { return fmt.Sprintf("community:%d", id) }
func AdminRoom() string            { return "admins" }
func GlobalRoom() string           { return "global" }

// WebSocketHandler runs one client connection. Clients send join messages
// ({"type":"join","room":"team:3"}) and receive pushed events. Delivery is
// best-effort: a disconnected subscriber simply misses events.
func WebSocketHandler(c *websocket.Conn) {
	client := &rtClient{conn: c, rooms: map[string]bool{}}

	hubMu.Lock()
	clients[c] = client
	hubMu.Unlock()

	joinRoom(client, GlobalRoom())

	defer func() {
		hubMu.Lock()
		for room := range client.rooms {
			if members, ok := rooms[room]; ok {
				delete(members, client)
				if len(members) == 0 {
					delete(rooms, room)
				}
			}
		}
		delete(clients, c)
		hubMu.Unlock()
		c.Close()
	}()

	for {
		_, msg, err := c.ReadMessage()
		if err != nil {
			break
		}

		var req struct {
			Type string `json:"type"`
			Room string `json:"room"`
		}
		if err := json.Unmarshal(msg, &req); err != nil {
			continue
		}

		switch req.Type {
		case "join":
			if req.Room != "" {
				joinRoom(client, req.Room)
			}
		case "leave":
			leaveRoom(client, req.Room)
		}
	}
}

func joinRoom(client *rtClient, room string) {
	hubMu.Lock()
	defer hubMu.Unlock()
	if rooms[room] == nil {
		rooms[room] = make(map[*rtClient]bool)
	}
	rooms[room][client] = true
	client.rooms[room] = true
}

func leaveRoom(client *rtClient, room string) {
	hubMu.Lock()
	defer hubMu.Unlock()
	if members, ok := rooms[room]; ok {
		delete(members, client)
		if len(members) == 0 {
			delete(rooms, room)
		}
	}
	delete(client.rooms, room)
}

// Emit pushes a named event to every client in the room. Fire-and-forget:
// write errors are logged and never surfaced to the caller, so a failed
// notification can never roll back a committed mutation.
func Emit(room, event string, payload interface{}) {
	hubMu.Lock()
	members := make([]*rtClient, 0, len(rooms[room]))
	for client := range rooms[room] {
		members = append(members, client)
	}
	hubMu.Unlock()

	if len(members) == 0 {
		return
	}

	msg := map[string]interface{}{
		"event": event,
		"data":  payload,
	}

	for _, client := range members {
		go func(cl *rtClient) {
			cl.mu.Lock()
			defer cl.mu.Unlock()
			if err := cl.conn.WriteJSON(msg); err != nil {
				log.Printf("Realtime write failed for room %s: %v", room, err)
			}
		}(client)
	}
}

// EmitToUser pushes to a single user's room.
func EmitToUser(userID uint, event string, payload interface{}) {
	Emit(UserRoom(userID), event, payload)
}

// EmitToAdmins pushes to every connected admin.
func EmitToAdmins(event string, payload interface{}) {
	Emit(AdminRoom(), event, payload)
}
