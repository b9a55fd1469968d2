package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"gochat/internal/chat/service"
	"gochat/internal/common"
	"gochat/internal/dbmysql"
)

// wsChannel wraps a websocket connection behind the registry's Channel
// interface. The mutex serializes writes: pushes arrive from other sessions'
// delivery goroutines concurrently with catch-up replay.
type wsChannel struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func newWSChannel(conn *websocket.Conn) *wsChannel {
	return &wsChannel{conn: conn}
}

func (c *wsChannel) Send(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

func (c *wsChannel) Close() error {
	return c.conn.Close()
}

// inboundAction is the frame clients send; dispatch is on Action.
type inboundAction struct {
	Action      string  `json:"action"`
	ReceiverID  *uint64 `json:"receiver_id"`
	ChatID      *uint64 `json:"chat_id"`
	Content     string  `json:"content"`
	ContentType string  `json:"content_type"`
	FileURL     *string `json:"file_url"`
	MessageID   uint64  `json:"message_id"`
}

type errorFrame struct {
	Error string `json:"error"`
}

// SessionHandler owns one websocket connection per call: authenticate,
// register, replay undelivered messages, then loop on inbound actions until
// disconnect.
type SessionHandler struct {
	registry    *service.Registry
	chatService service.ChatService
	upgrader    websocket.Upgrader
}

func NewSessionHandler(registry *service.Registry, chatService service.ChatService) *SessionHandler {
	return &SessionHandler{
		registry:    registry,
		chatService: chatService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// ServeWS handles GET /ws/chat. The token comes from the "token" query
// parameter or a Bearer Authorization header; a missing or invalid token is
// a policy violation and closes the connection before any application frame.
func (h *SessionHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	token := extractToken(r)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	claims, err := common.Authenticate(token)
	if err != nil {
		closeMsg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "invalid or missing token")
		conn.WriteControl(websocket.CloseMessage, closeMsg, time.Now().Add(time.Second))
		conn.Close()
		return
	}
	userID := claims.UserID

	ch := newWSChannel(conn)
	h.registry.Register(userID, ch)
	defer h.registry.Unregister(userID, ch)

	log.Printf("user %d connected", userID)

	// Catch-up replay runs before the read loop so the client sees its
	// backlog ahead of anything sent to it mid-session.
	if err := h.chatService.Replay(context.Background(), userID, ch); err != nil {
		log.Printf("catch-up replay for user %d: %v", userID, err)
		return
	}

	h.readLoop(userID, ch, conn)
	log.Printf("user %d disconnected", userID)
}

func (h *SessionHandler) readLoop(userID uint64, ch service.Channel, conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("user %d read error: %v", userID, err)
			}
			return
		}

		var action inboundAction
		if err := json.Unmarshal(data, &action); err != nil {
			ch.Send(errorFrame{Error: "malformed frame"})
			continue
		}

		// Errors local to one action never terminate the session.
		switch action.Action {
		case "send_message":
			h.handleSend(userID, ch, &action)
		case "acknowledge":
			h.handleAcknowledge(userID, action.MessageID)
		default:
			ch.Send(errorFrame{Error: "Unknown action"})
		}
	}
}

func (h *SessionHandler) handleSend(userID uint64, ch service.Channel, action *inboundAction) {
	to, err := resolveAddress(action.ReceiverID, action.ChatID)
	if err != nil {
		ch.Send(errorFrame{Error: err.Error()})
		return
	}

	draft := &dbmysql.MessageDraft{
		SenderID:    userID,
		To:          to,
		Content:     action.Content,
		ContentType: common.ContentType(action.ContentType),
		FileURL:     action.FileURL,
	}

	if _, err := h.chatService.SendMessage(context.Background(), draft); err != nil {
		if errors.Is(err, common.ErrBadAddress) {
			ch.Send(errorFrame{Error: err.Error()})
			return
		}
		log.Printf("send_message from user %d: %v", userID, err)
		ch.Send(errorFrame{Error: "failed to send message"})
	}
}

func (h *SessionHandler) handleAcknowledge(userID, messageID uint64) {
	// A non-existent message id is a silent no-op.
	if err := h.chatService.Acknowledge(context.Background(), messageID); err != nil {
		log.Printf("acknowledge of message %d by user %d: %v", messageID, userID, err)
	}
}

// resolveAddress enforces the exactly-one-of rule for client addressing.
func resolveAddress(receiverID, chatID *uint64) (dbmysql.Address, error) {
	switch {
	case receiverID != nil && chatID != nil:
		return dbmysql.Address{}, common.ErrBadAddress
	case receiverID != nil:
		return dbmysql.DirectAddress(*receiverID), nil
	case chatID != nil:
		return dbmysql.GroupAddress(*chatID), nil
	}
	return dbmysql.Address{}, common.ErrBadAddress
}

func extractToken(r *http.Request) string {
	if token := r.URL.Query().Get("token"); token != "" {
		return token
	}
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
		return parts[1]
	}
	return ""
}
