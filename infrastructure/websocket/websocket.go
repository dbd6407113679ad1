package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"taskboard/pkg/logger"
)

// Conn is the part of a websocket connection the manager writes to.
type Conn interface {
	WriteJSON(v any) error
	Close() error
}

type Client struct {
	Conn   Conn
	UserID uuid.UUID
	Rooms  map[string]bool
}

type Message struct {
	Type   string `json:"type"`
	Data   any    `json:"data"`
	UserID string `json:"userId,omitempty"`
	RoomID string `json:"roomId,omitempty"`
}

type BroadcastMessage struct {
	Message Message
	RoomID  string
	UserID  *uuid.UUID
}

// Manager tracks connected clients and the rooms they follow.
// One user holds at most one connection; a newer one replaces the older.
type Manager struct {
	clients         map[Conn]*Client
	userConnections map[uuid.UUID]Conn
	rooms           map[string]map[Conn]bool
	register        chan *Client
	unregister      chan Conn
	broadcast       chan BroadcastMessage
	mutex           sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:         make(map[Conn]*Client),
		userConnections: make(map[uuid.UUID]Conn),
		rooms:           make(map[string]map[Conn]bool),
		register:        make(chan *Client),
		unregister:      make(chan Conn),
		broadcast:       make(chan BroadcastMessage, 256),
	}
}

// Run processes registrations and broadcasts until ctx is done.
func (m *Manager) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			m.closeAll()
			return

		case client := <-m.register:
			m.mutex.Lock()
			if oldConn, exists := m.userConnections[client.UserID]; exists && oldConn != client.Conn {
				logger.Info("Closing previous websocket connection", "user_id", client.UserID)
				m.removeLocked(oldConn)
			}
			m.clients[client.Conn] = client
			m.userConnections[client.UserID] = client.Conn
			for room := range client.Rooms {
				m.joinLocked(client.Conn, room)
			}
			m.mutex.Unlock()
			logger.Info("Websocket client connected", "user_id", client.UserID, "rooms", len(client.Rooms))

		case conn := <-m.unregister:
			m.mutex.Lock()
			m.removeLocked(conn)
			m.mutex.Unlock()

		case message := <-m.broadcast:
			m.mutex.Lock()
			m.deliverLocked(message)
			m.mutex.Unlock()
		}
	}
}

func (m *Manager) deliverLocked(message BroadcastMessage) {
	var targets []Conn
	switch {
	case message.RoomID != "":
		for conn := range m.rooms[message.RoomID] {
			targets = append(targets, conn)
		}
	case message.UserID != nil:
		if conn, ok := m.userConnections[*message.UserID]; ok {
			targets = append(targets, conn)
		}
	default:
		for conn := range m.clients {
			targets = append(targets, conn)
		}
	}

	for _, conn := range targets {
		if err := conn.WriteJSON(message.Message); err != nil {
			logger.Warn("Websocket write failed, dropping client", "error", err)
			m.removeLocked(conn)
		}
	}
}

func (m *Manager) joinLocked(conn Conn, room string) {
	if m.rooms[room] == nil {
		m.rooms[room] = make(map[Conn]bool)
	}
	m.rooms[room][conn] = true
	if client, ok := m.clients[conn]; ok {
		client.Rooms[room] = true
	}
}

func (m *Manager) leaveLocked(conn Conn, room string) {
	if members := m.rooms[room]; members != nil {
		delete(members, conn)
		if len(members) == 0 {
			delete(m.rooms, room)
		}
	}
	if client, ok := m.clients[conn]; ok {
		delete(client.Rooms, room)
	}
}

func (m *Manager) removeLocked(conn Conn) {
	client, ok := m.clients[conn]
	if !ok {
		return
	}
	for room := range client.Rooms {
		m.leaveLocked(conn, room)
	}
	delete(m.clients, conn)
	if current, exists := m.userConnections[client.UserID]; exists && current == conn {
		delete(m.userConnections, client.UserID)
	}
	_ = conn.Close()
	logger.Info("Websocket client disconnected", "user_id", client.UserID)
}

func (m *Manager) closeAll() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	for conn := range m.clients {
		m.removeLocked(conn)
	}
}

func (m *Manager) RegisterClient(conn Conn, userID uuid.UUID, rooms ...string) {
	client := &Client{Conn: conn, UserID: userID, Rooms: make(map[string]bool)}
	for _, room := range rooms {
		if room != "" {
			client.Rooms[room] = true
		}
	}
	m.register <- client
}

func (m *Manager) UnregisterClient(conn Conn) {
	m.unregister <- conn
}

func (m *Manager) BroadcastToRoom(roomID, messageType string, data any) {
	m.broadcast <- BroadcastMessage{
		Message: Message{Type: messageType, Data: data, RoomID: roomID},
		RoomID:  roomID,
	}
}

func (m *Manager) BroadcastToUser(userID uuid.UUID, messageType string, data any) {
	m.broadcast <- BroadcastMessage{
		Message: Message{Type: messageType, Data: data},
		UserID:  &userID,
	}
}

func (m *Manager) BroadcastToAll(messageType string, data any) {
	m.broadcast <- BroadcastMessage{Message: Message{Type: messageType, Data: data}}
}

func (m *Manager) GetRoomClients(roomID string) int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.rooms[roomID])
}

func (m *Manager) GetTotalClients() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.clients)
}

type roomRequest struct {
	RoomID string `json:"roomId"`
}

// HandleClientMessage answers ping and room membership requests sent by a client.
func (m *Manager) HandleClientMessage(conn Conn, data []byte) {
	var message struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &message); err != nil {
		logger.Warn("Invalid websocket message", "error", err)
		return
	}

	switch message.Type {
	case "ping":
		_ = conn.WriteJSON(Message{Type: "pong", Data: "pong"})

	case "join_room", "leave_room":
		var req roomRequest
		if err := json.Unmarshal(message.Data, &req); err != nil || req.RoomID == "" {
			_ = conn.WriteJSON(Message{Type: "error", Data: "roomId is required"})
			return
		}

		m.mutex.Lock()
		_, known := m.clients[conn]
		if known {
			if message.Type == "join_room" {
				m.joinLocked(conn, req.RoomID)
			} else {
				m.leaveLocked(conn, req.RoomID)
			}
		}
		m.mutex.Unlock()
		if !known {
			return
		}

		if message.Type == "join_room" {
			_ = conn.WriteJSON(Message{Type: "room_joined", RoomID: req.RoomID, Data: fmt.Sprintf("Joined room %s", req.RoomID)})
		} else {
			_ = conn.WriteJSON(Message{Type: "room_left", RoomID: req.RoomID, Data: fmt.Sprintf("Left room %s", req.RoomID)})
		}

	default:
		logger.Warn("Unknown websocket message type", "type", message.Type)
	}
}
