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

type messageService struct {
	messageRepo repository.MessageRepository
	validator   *validation.MessageValidator
}

func NewMessageService(messageRepo repository.MessageRepository, validator *validation.MessageValidator) MessageService {
	return &messageService{messageRepo: messageRepo, validator: validator}
}

func (s *messageService) GetAll(ctx context.Context) []model.MessageDTO {
	messages, err := s.messageRepo.FindAll(ctx)
	if err != nil {
		log.Printf("message: failed to fetch messages: %v", err)
		return nil
	}
	return messages
}

func (s *messageService) GetByID(ctx context.Context, id uint) (*model.MessageDTO, error) {
	message, err := s.messageRepo.FindByID(ctx, id)
	if err != nil {
		log.Printf("message: failed to fetch message %d: %v", id, err)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("message %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return message, nil
}

func (s *messageService) Create(ctx context.Context, text string, chatID, userID uint) (uint, error) {
	errs, err := s.validator.Create(ctx, text, chatID, userID)
	if err != nil {
		log.Printf("message: failed to validate message from user %d: %v", userID, err)
		return 0, err
	}
	if !errs.Empty() {
		return 0, validationFailed(errs)
	}

	message := &model.Message{Text: text, ChatID: chatID, UserID: userID}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		log.Printf("message: failed to create message from user %d in chat %d: %v", userID, chatID, err)
		return 0, err
	}

	log.Printf("message: message %d created in chat %d", message.ID, chatID)
	return message.ID, nil
}

func (s *messageService) Update(ctx context.Context, id uint, text string) error {
	errs, err := s.validator.Update(ctx, id, text)
	if err != nil {
		log.Printf("message: failed to validate update of message %d: %v", id, err)
		return err
	}
	if !errs.Empty() {
		return validationFailed(errs)
	}

	message, err := s.messageRepo.Get(ctx, id)
	if err != nil {
		log.Printf("message: failed to update message %d: %v", id, err)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("message %d: %w", id, ErrNotFound)
		}
		return err
	}

	message.Text = text
	if err := s.messageRepo.Update(ctx, message); err != nil {
		log.Printf("message: failed to update message %d: %v", id, err)
		return err
	}

	log.Printf("message: message %d updated", id)
	return nil
}

func (s *messageService) Delete(ctx context.Context, id uint) error {
	exists, err := s.messageRepo.Exists(ctx, id)
	if err != nil {
		log.Printf("message: failed to delete message %d: %v", id, err)
		return err
	}
	if !exists {
		return fmt.Errorf("message %d: %w", id, ErrNotFound)
	}

	if err := s.messageRepo.Delete(ctx, id); err != nil {
		log.Printf("message: failed to delete message %d: %v", id, err)
		return err
	}

	log.Printf("message: message %d deleted", id)
	return nil
}
