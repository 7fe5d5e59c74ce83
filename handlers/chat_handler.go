package handlers

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/immsamyak/ClassTrack/chatbot"
)

// ChatHandler keeps one bot per chat session. A session belongs to the user
// who opened it, and its lock keeps at most one report computation in
// flight per session.
type ChatHandler struct {
	store chatbot.Store

	mu       sync.Mutex
	sessions map[string]*chatSession
}

type chatSession struct {
	mu     sync.Mutex
	bot    *chatbot.Bot
	userID uint
}

func NewChatHandler(store chatbot.Store) *ChatHandler {
	return &ChatHandler{
		store:    store,
		sessions: make(map[string]*chatSession),
	}
}

type ChatReq struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message" validate:"required"`
}

// POST /chat
func (h *ChatHandler) Chat(c echo.Context) error {
	var req ChatReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	userID, _ := c.Get("user_id").(uint)
	role, _ := c.Get("role").(string)
	name, _ := c.Get("name").(string)

	sessionID, sess, err := h.session(req.SessionID, userID, role, name)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	reply := sess.bot.Process(req.Message)
	sess.mu.Unlock()

	return c.JSON(http.StatusOK, map[string]any{
		"session_id": sessionID,
		"reply":      reply,
	})
}

func (h *ChatHandler) session(id string, userID uint, role, name string) (string, *chatSession, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if id != "" {
		if sess, ok := h.sessions[id]; ok {
			if sess.userID != userID {
				return "", nil, echo.NewHTTPError(http.StatusForbidden, map[string]any{"error": "SESSION_OWNED_BY_OTHER_USER"})
			}
			return id, sess, nil
		}
	}

	id = uuid.NewString()
	sess := &chatSession{
		bot:    chatbot.New(h.store, userID, role, name),
		userID: userID,
	}
	h.sessions[id] = sess
	return id, sess, nil
}
