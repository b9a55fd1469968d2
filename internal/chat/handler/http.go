package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"gochat/internal/chat/service"
	"gochat/internal/common"
	"gochat/internal/dbmysql"
)

// ChatHandler exposes the request/response surface: sending outside a live
// session, history queries and chat creation.
type ChatHandler struct {
	chatService service.ChatService
	validate    *validator.Validate
}

func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		validate:    validator.New(),
	}
}

// RegisterRoutes mounts the authenticated chat routes on r.
func (h *ChatHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/messages", h.SendMessage).Methods(http.MethodPost)
	r.HandleFunc("/messages/{user_id:[0-9]+}", h.DirectHistory).Methods(http.MethodGet)
	r.HandleFunc("/chats", h.CreateChat).Methods(http.MethodPost)
	r.HandleFunc("/chats/{chat_id:[0-9]+}/messages", h.ChatHistory).Methods(http.MethodGet)
}

type sendMessageRequest struct {
	ReceiverID  *uint64 `json:"receiver_id"`
	ChatID      *uint64 `json:"chat_id"`
	Content     string  `json:"content"`
	ContentType string  `json:"content_type" validate:"required,oneof=text audio video"`
	FileURL     *string `json:"file_url"`
}

func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	to, err := resolveAddress(req.ReceiverID, req.ChatID)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	saved, err := h.chatService.SendMessage(r.Context(), &dbmysql.MessageDraft{
		SenderID:    userID,
		To:          to,
		Content:     req.Content,
		ContentType: common.ContentType(req.ContentType),
		FileURL:     req.FileURL,
	})
	if err != nil {
		if errors.Is(err, common.ErrBadAddress) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("send message: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to send message")
		return
	}

	resp := map[string]interface{}{}
	ids := make([]uint64, 0, len(saved))
	for _, msg := range saved {
		ids = append(ids, msg.ID)
	}
	if len(ids) > 0 {
		resp["message_id"] = ids[0]
	}
	resp["message_ids"] = ids
	writeJSON(w, http.StatusCreated, resp)
}

func (h *ChatHandler) DirectHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "user not authenticated")
		return
	}

	otherID, err := strconv.ParseUint(mux.Vars(r)["user_id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	messages, err := h.chatService.DirectHistory(r.Context(), userID, otherID)
	if err != nil {
		log.Printf("direct history: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load messages")
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

type createChatRequest struct {
	Name         *string  `json:"name"`
	Participants []uint64 `json:"participants" validate:"required,min=1"`
}

func (h *ChatHandler) CreateChat(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var req createChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	chat, err := h.chatService.CreateChat(r.Context(), userID, req.Name, req.Participants)
	if err != nil {
		log.Printf("create chat: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create chat")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]uint64{"chat_id": chat.ID})
}

func (h *ChatHandler) ChatHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "user not authenticated")
		return
	}

	chatID, err := strconv.ParseUint(mux.Vars(r)["chat_id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid chat id")
		return
	}

	messages, err := h.chatService.ChatHistory(r.Context(), chatID, userID)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			writeError(w, http.StatusForbidden, "access denied")
			return
		}
		log.Printf("chat history: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load messages")
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
