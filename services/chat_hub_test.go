package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChatHubRegisterUnregister(t *testing.T) {
	hub := NewChatHub()
	assert.Equal(t, 0, hub.ActiveSessions())

	a := &ChatSession{SessionID: "a", UserID: 1}
	b := &ChatSession{SessionID: "b", UserID: 2}
	hub.Register(a)
	hub.Register(b)
	assert.Equal(t, 2, hub.ActiveSessions())

	hub.Unregister(a)
	assert.Equal(t, 1, hub.ActiveSessions())

	// unregistering twice is a no-op
	hub.Unregister(a)
	assert.Equal(t, 1, hub.ActiveSessions())
}

func TestChatHubBroadcastWithoutSessions(t *testing.T) {
	hub := NewChatHub()
	// must not panic with nobody connected
	hub.Broadcast(map[string]any{"type": "daily_tip", "tip": "drink water"})
}
