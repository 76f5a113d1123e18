package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"simplechat/internal/pkg/httputils"
	"simplechat/internal/service"
)

type MessageHandler struct {
	messageService service.MessageService
}

func NewMessageHandler(messageService service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

func (h *MessageHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/messages", h.getAll).Methods("GET", "OPTIONS")
	router.HandleFunc("/messages/{id:[0-9]+}", h.getByID).Methods("GET", "OPTIONS")
	router.HandleFunc("/messages", h.create).Methods("POST", "OPTIONS")
	router.HandleFunc("/messages", h.update).Methods("PUT", "OPTIONS")
	router.HandleFunc("/messages/{id:[0-9]+}", h.delete).Methods("DELETE", "OPTIONS")
}

// @Summary List messages
// @Description Get all messages
// @ID get-messages-all
// @Produce json
// @Success 200 {object} []model.MessageDTO
// @Failure 404 {object} httputils.ErrorResponse
// @Router /messages [get]
func (h *MessageHandler) getAll(w http.ResponseWriter, r *http.Request) {
	messages := h.messageService.GetAll(r.Context())
	if messages == nil {
		httputils.ResponseError(w, http.StatusNotFound, "No messages found")
		return
	}

	httputils.ResponseJSON(w, http.StatusOK, messages)
}

// @Summary Get message
// @Description Get message by id
// @ID get-message
// @Produce json
// @Param id path int true "Message ID"
// @Success 200 {object} model.MessageDTO
// @Failure 404 {object} httputils.ErrorResponse
// @Router /messages/{id} [get]
func (h *MessageHandler) getByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "Failed to parse message ID")
		return
	}

	message, err := h.messageService.GetByID(r.Context(), uint(id))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	httputils.ResponseJSON(w, http.StatusOK, message)
}

type createMessageRequest struct {
	Text   string `json:"text"`
	ChatID uint   `json:"chatId"`
	UserID uint   `json:"userId"`
}

// @Summary Create message
// @Description Post a message to a chat
// @ID create-message
// @Accept json
// @Produce json
// @Param messageData body createMessageRequest true "Message Data"
// @Success 201 {object} model.MessageDTO
// @Failure 400 {object} httputils.ErrorResponse
// @Router /messages [post]
func (h *MessageHandler) create(w http.ResponseWriter, r *http.Request) {
	var request createMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	id, err := h.messageService.Create(r.Context(), request.Text, request.ChatID, request.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	message, err := h.messageService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	httputils.ResponseJSON(w, http.StatusCreated, message)
}

type updateMessageRequest struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

// @Summary Update message
// @Description Edit a message's text
// @ID update-message
// @Accept json
// @Param messageData body updateMessageRequest true "Message Data"
// @Success 204
// @Failure 400 {object} httputils.ErrorResponse
// @Router /messages [put]
func (h *MessageHandler) update(w http.ResponseWriter, r *http.Request) {
	var request updateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.messageService.Update(r.Context(), request.ID, request.Text); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// @Summary Delete message
// @Description Delete a message
// @ID delete-message
// @Param id path int true "Message ID"
// @Success 204
// @Failure 404 {object} httputils.ErrorResponse
// @Router /messages/{id} [delete]
func (h *MessageHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "Failed to parse message ID")
		return
	}

	if err := h.messageService.Delete(r.Context(), uint(id)); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
