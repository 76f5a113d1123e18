package handler

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"simplechat/internal/pkg/httputils"
	"simplechat/internal/repository"
	"simplechat/internal/ws"
)

type WSHandler struct {
	hub      *ws.Hub
	presence repository.PresenceRepository // nil when redis is not configured
}

func NewWSHandler(hub *ws.Hub, presence repository.PresenceRepository) *WSHandler {
	return &WSHandler{hub: hub, presence: presence}
}

func (h *WSHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/ws", h.serve).Methods("GET")
}

// serve upgrades the connection and pumps events until the client drops.
// Join/leave frames move the connection in and out of per-chat groups; the
// persisted roster is not touched here.
func (h *WSHandler) serve(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(r.URL.Query().Get("userId"))
	if err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "Failed to parse user ID")
		return
	}

	conn, err := ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws: failed to upgrade connection for user %d: %v", userID, err)
		return
	}

	client := ws.NewClient(r.Context(), conn, uint(userID))
	h.hub.Register(client)

	go func() {
		if err := client.WritePump(); err != nil {
			log.Printf("ws: write pump for user %d: %v", userID, err)
		}
	}()

	// Touched only from the read pump goroutine.
	joined := make(map[uint]bool)

	client.ReadPump(func(c *ws.Client, ev ws.InEvent) {
		switch ev.Type {
		case ws.InEventJoin:
			h.hub.Join(c, ev.ChatID)
			joined[ev.ChatID] = true
			if h.presence != nil {
				if err := h.presence.Join(r.Context(), ev.ChatID, c.UserID); err != nil {
					log.Printf("ws: failed to track presence of user %d in chat %d: %v", c.UserID, ev.ChatID, err)
				}
			}
		case ws.InEventLeave:
			h.hub.Leave(c, ev.ChatID)
			delete(joined, ev.ChatID)
			if h.presence != nil {
				if _, err := h.presence.Leave(r.Context(), ev.ChatID, c.UserID); err != nil {
					log.Printf("ws: failed to track presence of user %d in chat %d: %v", c.UserID, ev.ChatID, err)
				}
			}
		}
	})

	// The request context is gone once the socket drops.
	if h.presence != nil {
		for chatID := range joined {
			if _, err := h.presence.Leave(context.Background(), chatID, client.UserID); err != nil {
				log.Printf("ws: failed to clear presence of user %d in chat %d: %v", client.UserID, chatID, err)
			}
		}
	}

	h.hub.Unregister(client)
}
