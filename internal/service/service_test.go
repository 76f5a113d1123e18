package service

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"simplechat/internal/model"
	"simplechat/internal/repository"
	"simplechat/internal/validation"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named shared-cache database so every pooled connection sees the
	// same in-memory store.
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := repository.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return db
}

type recordedEvent struct {
	Event     string
	ChatID    uint
	Payload   any
	Broadcast bool
}

// recordingNotifier captures published events for assertions.
type recordingNotifier struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (n *recordingNotifier) Broadcast(event string, payload any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, recordedEvent{Event: event, Payload: payload, Broadcast: true})
}

func (n *recordingNotifier) Publish(chatID uint, event string, payload any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, recordedEvent{Event: event, ChatID: chatID, Payload: payload})
}

func (n *recordingNotifier) Events() []recordedEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]recordedEvent, len(n.events))
	copy(out, n.events)
	return out
}

func (n *recordingNotifier) Last() recordedEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.events) == 0 {
		return recordedEvent{}
	}
	return n.events[len(n.events)-1]
}

type testEnv struct {
	db       *gorm.DB
	users    UserService
	chats    ChatService
	messages MessageService
	notifier *recordingNotifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)

	userRepo := repository.NewUserRepository(db)
	chatRepo := repository.NewChatRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	notifier := &recordingNotifier{}

	return &testEnv{
		db:    db,
		users: NewUserService(userRepo, validation.NewUserValidator(userRepo)),
		chats: NewChatService(chatRepo, messageRepo,
			validation.NewChatValidator(chatRepo, userRepo), notifier),
		messages: NewMessageService(messageRepo,
			validation.NewMessageValidator(messageRepo, chatRepo, userRepo)),
		notifier: notifier,
	}
}

func (e *testEnv) mustCreateUser(t *testing.T, name string) uint {
	t.Helper()
	user := &model.User{UserName: name}
	if err := e.db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user %q: %v", name, err)
	}
	return user.ID
}

func (e *testEnv) membershipCount(t *testing.T, chatID, userID uint) int64 {
	t.Helper()
	var count int64
	err := e.db.Model(&model.Membership{}).
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		Count(&count).Error
	if err != nil {
		t.Fatalf("failed to count memberships: %v", err)
	}
	return count
}
