package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"simplechat/internal/pkg/httputils"
	"simplechat/internal/service"
)

type ChatHandler struct {
	chatService service.ChatService
}

func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

func (h *ChatHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/chats", h.getAll).Methods("GET", "OPTIONS")
	router.HandleFunc("/chats/{id:[0-9]+}", h.getByID).Methods("GET", "OPTIONS")
	router.HandleFunc("/chats/{id:[0-9]+}/members", h.getMembers).Methods("GET", "OPTIONS")
	router.HandleFunc("/chats/{id:[0-9]+}/messages", h.getMessages).Methods("GET", "OPTIONS")
	router.HandleFunc("/chats/{query}/search", h.search).Methods("GET", "OPTIONS")
	router.HandleFunc("/chats", h.create).Methods("POST", "OPTIONS")
	router.HandleFunc("/chats", h.update).Methods("PUT", "OPTIONS")
	router.HandleFunc("/chats/{id:[0-9]+}", h.delete).Methods("DELETE", "OPTIONS")
	router.HandleFunc("/join", h.join).Methods("PATCH", "OPTIONS")
	router.HandleFunc("/left", h.left).Methods("PATCH", "OPTIONS")
}

// @Summary List chats
// @Description Get all chats
// @ID get-chats
// @Produce json
// @Success 200 {object} []model.ChatDTO
// @Failure 404 {object} httputils.ErrorResponse
// @Router /chats [get]
func (h *ChatHandler) getAll(w http.ResponseWriter, r *http.Request) {
	chats := h.chatService.GetAll(r.Context())
	if chats == nil {
		httputils.ResponseError(w, http.StatusNotFound, "No chats found")
		return
	}

	httputils.ResponseJSON(w, http.StatusOK, chats)
}

// @Summary Get chat
// @Description Get chat by id
// @ID get-chat
// @Produce json
// @Param id path int true "Chat ID"
// @Success 200 {object} model.ChatDTO
// @Failure 404 {object} httputils.ErrorResponse
// @Router /chats/{id} [get]
func (h *ChatHandler) getByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "Failed to parse chat ID")
		return
	}

	chat, err := h.chatService.GetByID(r.Context(), uint(id))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	httputils.ResponseJSON(w, http.StatusOK, chat)
}

// @Summary List chat members
// @Description Get all members of the chat
// @ID get-chat-members
// @Produce json
// @Param id path int true "Chat ID"
// @Success 200 {object} []model.UserDTO
// @Failure 404 {object} httputils.ErrorResponse
// @Router /chats/{id}/members [get]
func (h *ChatHandler) getMembers(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "Failed to parse chat ID")
		return
	}

	members, err := h.chatService.Members(r.Context(), uint(id))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	httputils.ResponseJSON(w, http.StatusOK, members)
}

// @Summary List chat messages
// @Description Get all messages of the chat
// @ID get-chat-messages
// @Produce json
// @Param id path int true "Chat ID"
// @Success 200 {object} []model.MessageDTO
// @Failure 404 {object} httputils.ErrorResponse
// @Router /chats/{id}/messages [get]
func (h *ChatHandler) getMessages(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "Failed to parse chat ID")
		return
	}

	messages, err := h.chatService.Messages(r.Context(), uint(id))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	httputils.ResponseJSON(w, http.StatusOK, messages)
}

// @Summary Search chats
// @Description Search chats by name
// @ID search-chats
// @Produce json
// @Param query path string true "Search Query"
// @Success 200 {object} []model.ChatDTO
// @Failure 404 {object} httputils.ErrorResponse
// @Router /chats/{query}/search [get]
func (h *ChatHandler) search(w http.ResponseWriter, r *http.Request) {
	query := mux.Vars(r)["query"]

	chats := h.chatService.Search(r.Context(), query)
	if chats == nil {
		httputils.ResponseError(w, http.StatusNotFound, "No chats found")
		return
	}

	httputils.ResponseJSON(w, http.StatusOK, chats)
}

type createChatRequest struct {
	Name    string `json:"name"`
	OwnerID uint   `json:"ownerId"`
}

// @Summary Create chat
// @Description Create a new chat owned by the given user
// @ID create-chat
// @Accept json
// @Produce json
// @Param chatData body createChatRequest true "Chat Data"
// @Success 201 {object} model.ChatDTO
// @Failure 400 {object} httputils.ErrorResponse
// @Router /chats [post]
func (h *ChatHandler) create(w http.ResponseWriter, r *http.Request) {
	var request createChatRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	id, err := h.chatService.Create(r.Context(), request.Name, request.OwnerID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	chat, err := h.chatService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	httputils.ResponseJSON(w, http.StatusCreated, chat)
}

type updateChatRequest struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// @Summary Update chat
// @Description Rename an existing chat
// @ID update-chat
// @Accept json
// @Param chatData body updateChatRequest true "Chat Data"
// @Success 204
// @Failure 400 {object} httputils.ErrorResponse
// @Router /chats [put]
func (h *ChatHandler) update(w http.ResponseWriter, r *http.Request) {
	var request updateChatRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.chatService.Update(r.Context(), request.ID, request.Name); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// @Summary Delete chat
// @Description Delete a chat; only the owner may delete it
// @ID delete-chat
// @Param id path int true "Chat ID"
// @Param userId query int true "Requester User ID"
// @Success 204
// @Failure 403 {object} httputils.ErrorResponse
// @Failure 404 {object} httputils.ErrorResponse
// @Router /chats/{id} [delete]
func (h *ChatHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "Failed to parse chat ID")
		return
	}

	userID, err := strconv.Atoi(r.URL.Query().Get("userId"))
	if err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "Failed to parse user ID")
		return
	}

	if err := h.chatService.Delete(r.Context(), uint(id), uint(userID)); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type membershipRequest struct {
	ChatID uint `json:"chatId"`
	UserID uint `json:"userId"`
}

// @Summary Join chat
// @Description Add a user to the chat roster
// @ID join-chat
// @Accept json
// @Param membershipData body membershipRequest true "Membership Data"
// @Success 204
// @Failure 400 {object} httputils.ErrorResponse
// @Router /join [patch]
func (h *ChatHandler) join(w http.ResponseWriter, r *http.Request) {
	var request membershipRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.chatService.AddMember(r.Context(), request.ChatID, request.UserID); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// @Summary Leave chat
// @Description Remove a user from the chat roster
// @ID leave-chat
// @Accept json
// @Param membershipData body membershipRequest true "Membership Data"
// @Success 204
// @Failure 400 {object} httputils.ErrorResponse
// @Router /left [patch]
func (h *ChatHandler) left(w http.ResponseWriter, r *http.Request) {
	var request membershipRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.chatService.RemoveMember(r.Context(), request.ChatID, request.UserID); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
