package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"simplechat/internal/model"
	"simplechat/internal/repository"
	"simplechat/internal/validation"
)

type chatService struct {
	chatRepo    repository.ChatRepository
	messageRepo repository.MessageRepository
	validator   *validation.ChatValidator
	notifier    Notifier
}

func NewChatService(
	chatRepo repository.ChatRepository,
	messageRepo repository.MessageRepository,
	validator *validation.ChatValidator,
	notifier Notifier,
) ChatService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &chatService{
		chatRepo:    chatRepo,
		messageRepo: messageRepo,
		validator:   validator,
		notifier:    notifier,
	}
}

func (s *chatService) GetAll(ctx context.Context) []model.ChatDTO {
	chats, err := s.chatRepo.FindAll(ctx)
	if err != nil {
		log.Printf("chat: failed to fetch chats: %v", err)
		return nil
	}
	return chats
}

func (s *chatService) GetByID(ctx context.Context, id uint) (*model.ChatDTO, error) {
	chat, err := s.chatRepo.FindByID(ctx, id)
	if err != nil {
		log.Printf("chat: failed to fetch chat %d: %v", id, err)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("chat %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return chat, nil
}

func (s *chatService) Search(ctx context.Context, query string) []model.ChatDTO {
	chats, err := s.chatRepo.Search(ctx, query)
	if err != nil {
		log.Printf("chat: failed to search chats by %q: %v", query, err)
		return nil
	}
	return chats
}

func (s *chatService) Members(ctx context.Context, chatID uint) ([]model.UserDTO, error) {
	exists, err := s.chatRepo.Exists(ctx, chatID)
	if err != nil {
		log.Printf("chat: failed to fetch members of chat %d: %v", chatID, err)
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("chat %d: %w", chatID, ErrNotFound)
	}

	members, err := s.chatRepo.Members(ctx, chatID)
	if err != nil {
		log.Printf("chat: failed to fetch members of chat %d: %v", chatID, err)
		return nil, err
	}
	return members, nil
}

func (s *chatService) Messages(ctx context.Context, chatID uint) ([]model.MessageDTO, error) {
	exists, err := s.chatRepo.Exists(ctx, chatID)
	if err != nil {
		log.Printf("chat: failed to fetch messages of chat %d: %v", chatID, err)
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("chat %d: %w", chatID, ErrNotFound)
	}

	messages, err := s.messageRepo.ForChat(ctx, chatID)
	if err != nil {
		log.Printf("chat: failed to fetch messages of chat %d: %v", chatID, err)
		return nil, err
	}
	return messages, nil
}

// Create persists the chat and the implicit owner membership in one
// transaction, then broadcasts ChatCreated.
func (s *chatService) Create(ctx context.Context, name string, ownerID uint) (uint, error) {
	errs, err := s.validator.Create(ctx, name, ownerID)
	if err != nil {
		log.Printf("chat: failed to validate chat creation by user %d: %v", ownerID, err)
		return 0, err
	}
	if !errs.Empty() {
		return 0, validationFailed(errs)
	}

	chat := &model.Chat{Name: name, CreatedByID: ownerID}
	if err := s.chatRepo.Create(ctx, chat); err != nil {
		log.Printf("chat: failed to create chat for user %d: %v", ownerID, err)
		return 0, err
	}

	log.Printf("chat: chat %d created by user %d", chat.ID, ownerID)

	dto, err := s.chatRepo.FindByID(ctx, chat.ID)
	if err != nil {
		log.Printf("chat: failed to load created chat %d: %v", chat.ID, err)
		dto = &model.ChatDTO{ID: chat.ID, Name: chat.Name, CreatedByID: ownerID}
	}
	s.notifier.Broadcast(EventChatCreated, dto)

	return chat.ID, nil
}

func (s *chatService) Update(ctx context.Context, id uint, name string) error {
	errs, err := s.validator.Update(ctx, id, name)
	if err != nil {
		log.Printf("chat: failed to validate update of chat %d: %v", id, err)
		return err
	}
	if !errs.Empty() {
		return validationFailed(errs)
	}

	// Re-checked despite validation: the chat may have vanished since.
	chat, err := s.chatRepo.Get(ctx, id)
	if err != nil {
		log.Printf("chat: failed to update chat %d: %v", id, err)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("chat %d: %w", id, ErrNotFound)
		}
		return err
	}

	chat.Name = name
	if err := s.chatRepo.Update(ctx, chat); err != nil {
		log.Printf("chat: failed to update chat %d: %v", id, err)
		return err
	}

	log.Printf("chat: chat %d updated", id)

	dto, err := s.chatRepo.FindByID(ctx, id)
	if err != nil {
		log.Printf("chat: failed to load updated chat %d: %v", id, err)
		dto = &model.ChatDTO{ID: chat.ID, Name: chat.Name, CreatedByID: chat.CreatedByID}
	}
	s.notifier.Broadcast(EventChatUpdated, dto)

	return nil
}

// Delete removes the chat with its messages and memberships. Only the owner
// may delete.
func (s *chatService) Delete(ctx context.Context, id, requesterID uint) error {
	chat, err := s.chatRepo.Get(ctx, id)
	if err != nil {
		log.Printf("chat: failed to delete chat %d: %v", id, err)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("chat %d: %w", id, ErrNotFound)
		}
		return err
	}

	if chat.CreatedByID != requesterID {
		log.Printf("chat: user %d tried to delete chat %d owned by user %d", requesterID, id, chat.CreatedByID)
		return fmt.Errorf("chat %d can only be deleted by its owner: %w", id, ErrForbidden)
	}

	if err := s.chatRepo.Delete(ctx, id); err != nil {
		log.Printf("chat: failed to delete chat %d: %v", id, err)
		return err
	}

	log.Printf("chat: chat %d deleted by user %d", id, requesterID)
	s.notifier.Broadcast(EventChatDeleted, id)

	return nil
}

func (s *chatService) AddMember(ctx context.Context, chatID, userID uint) error {
	errs, err := s.validator.AddMember(ctx, chatID, userID)
	if err != nil {
		log.Printf("chat: failed to validate adding user %d to chat %d: %v", userID, chatID, err)
		return err
	}
	if !errs.Empty() {
		return validationFailed(errs)
	}

	if err := s.chatRepo.AddMember(ctx, chatID, userID); err != nil {
		log.Printf("chat: failed to add user %d to chat %d: %v", userID, chatID, err)
		// The advisory check above can lose a race; the primary key is the
		// authoritative guard and reports the same user-facing error.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return validationFailed(validation.Errors{
				{Field: "userId", Message: "User is already a member of this chat."},
			})
		}
		return err
	}

	log.Printf("chat: user %d joined chat %d", userID, chatID)
	s.notifier.Publish(chatID, EventUserJoined, userID)

	return nil
}

func (s *chatService) RemoveMember(ctx context.Context, chatID, userID uint) error {
	errs, err := s.validator.RemoveMember(ctx, chatID, userID)
	if err != nil {
		log.Printf("chat: failed to validate removing user %d from chat %d: %v", userID, chatID, err)
		return err
	}
	if !errs.Empty() {
		return validationFailed(errs)
	}

	if err := s.chatRepo.RemoveMember(ctx, chatID, userID); err != nil {
		log.Printf("chat: failed to remove user %d from chat %d: %v", userID, chatID, err)
		return err
	}

	log.Printf("chat: user %d left chat %d", userID, chatID)
	s.notifier.Publish(chatID, EventUserLeft, userID)

	return nil
}
