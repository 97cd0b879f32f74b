package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// ChatSession is one live websocket chat connection.
type ChatSession struct {
	SessionID string
	UserID    uint
	Conn      *websocket.Conn
}

// ChatHub tracks live chatbot sessions so the maintenance scheduler can
// broadcast the daily tip to everyone connected.
type ChatHub struct {
	mu       sync.RWMutex
	sessions map[string]*ChatSession
}

func NewChatHub() *ChatHub {
	return &ChatHub{sessions: make(map[string]*ChatSession)}
}

func (h *ChatHub) Register(s *ChatSession) {
	h.mu.Lock()
	h.sessions[s.SessionID] = s
	h.mu.Unlock()
}

func (h *ChatHub) Unregister(s *ChatSession) {
	h.mu.Lock()
	delete(h.sessions, s.SessionID)
	h.mu.Unlock()
	if s.Conn != nil {
		_ = s.Conn.Close()
	}
}

// ActiveSessions returns the number of connected chat clients.
func (h *ChatHub) ActiveSessions() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Broadcast sends a payload to every connected session.
func (h *ChatHub) Broadcast(payload any) {
	msg, err := json.Marshal(payload)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, s := range h.sessions {
		_ = s.Conn.WriteMessage(websocket.TextMessage, msg)
	}
}
