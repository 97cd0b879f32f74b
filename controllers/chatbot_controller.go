package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/BTL5010TEJA/iproject/middlewares"
	"github.com/BTL5010TEJA/iproject/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type ChatbotHandler struct {
	chatbot *services.Chatbot
	hub     *services.ChatHub
}

func NewChatbotHandler(chatbot *services.Chatbot, hub *services.ChatHub) *ChatbotHandler {
	return &ChatbotHandler{chatbot: chatbot, hub: hub}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Same-origin policy is not enforced; there is no auth layer and the
	// socket carries no credentials.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// POST /chatbot/api/ask  { "question": "Can I eat papaya?" }
func (h *ChatbotHandler) Ask(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	var req struct {
		Question string `json:"question" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
		return
	}

	answer, err := h.chatbot.AnswerQuestion(user, req.Question)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, answer)
}

// GET /chatbot/api/suggestions
func (h *ChatbotHandler) SuggestedQuestions(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{
		"trimester":   user.CurrentTrimester,
		"suggestions": h.chatbot.GetSuggestedQuestions(user.CurrentTrimester),
	})
}

// GET /chatbot/api/history?page=&per_page=
func (h *ChatbotHandler) History(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	entries, total, err := h.chatbot.History(user.ID, page, perPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"history":      entries,
		"total":        total,
		"current_page": page,
	})
}

// GET /chatbot/ws: live chat over websocket. Frames are JSON:
// client sends {"question": "..."}, server replies with the ChatAnswer.
func (h *ChatbotHandler) ChatWS(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	session := &services.ChatSession{
		SessionID: uuid.New().String(),
		UserID:    user.ID,
		Conn:      conn,
	}
	h.hub.Register(session)
	defer h.hub.Unregister(session)

	_ = conn.WriteJSON(gin.H{
		"type":        "welcome",
		"session_id":  session.SessionID,
		"suggestions": h.chatbot.GetSuggestedQuestions(user.CurrentTrimester),
	})

	for {
		var req struct {
			Question string `json:"question"`
		}
		if err := conn.ReadJSON(&req); err != nil {
			return // client closed or sent garbage
		}
		if req.Question == "" {
			_ = conn.WriteJSON(gin.H{"type": "error", "error": "question is required"})
			continue
		}

		answer, err := h.chatbot.AnswerQuestion(user, req.Question)
		if err != nil {
			_ = conn.WriteJSON(gin.H{"type": "error", "error": err.Error()})
			continue
		}
		_ = conn.WriteJSON(gin.H{"type": "answer", "data": answer})
	}
}
