package service

// Events pushed to connected clients after a mutation commits.
const (
	EventChatCreated = "ChatCreated"
	EventChatUpdated = "ChatUpdated"
	EventChatDeleted = "ChatDeleted"
	EventUserJoined  = "UserJoined"
	EventUserLeft    = "UserLeft"
)

// Notifier is the narrow seam between the workflow core and the real-time
// transport. Delivery is best-effort and fire-and-forget: it runs only after
// the mutation is durably persisted and a failed delivery never fails the
// originating request.
type Notifier interface {
	// Broadcast delivers the event to every connected subscriber.
	Broadcast(event string, payload any)
	// Publish delivers the event to subscribers of one chat's group only.
	Publish(chatID uint, event string, payload any)
}

// NopNotifier discards all events. Used when no real-time channel is wired.
type NopNotifier struct{}

func (NopNotifier) Broadcast(event string, payload any)            {}
func (NopNotifier) Publish(chatID uint, event string, payload any) {}
