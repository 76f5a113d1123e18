package repository

import (
	"context"

	"gorm.io/gorm"

	"simplechat/internal/model"
)

type MessageRepository interface {
	Create(ctx context.Context, message *model.Message) error
	Get(ctx context.Context, id uint) (*model.Message, error)
	FindByID(ctx context.Context, id uint) (*model.MessageDTO, error)
	FindAll(ctx context.Context) ([]model.MessageDTO, error)
	ForChat(ctx context.Context, chatID uint) ([]model.MessageDTO, error)
	Update(ctx context.Context, message *model.Message) error
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *model.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *messageRepository) Get(ctx context.Context, id uint) (*model.Message, error) {
	var message model.Message
	if err := r.db.WithContext(ctx).First(&message, id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *messageRepository) dtoQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.Message{}).
		Select("messages.id, messages.text, messages.chat_id, chats.name AS chat_name, messages.user_id, users.user_name").
		Joins("JOIN chats ON chats.id = messages.chat_id").
		Joins("JOIN users ON users.id = messages.user_id")
}

func (r *messageRepository) FindByID(ctx context.Context, id uint) (*model.MessageDTO, error) {
	var dto model.MessageDTO
	if err := r.dtoQuery(ctx).Where("messages.id = ?", id).Take(&dto).Error; err != nil {
		return nil, err
	}
	return &dto, nil
}

func (r *messageRepository) FindAll(ctx context.Context) ([]model.MessageDTO, error) {
	dtos := make([]model.MessageDTO, 0)
	if err := r.dtoQuery(ctx).Find(&dtos).Error; err != nil {
		return nil, err
	}
	return dtos, nil
}

func (r *messageRepository) ForChat(ctx context.Context, chatID uint) ([]model.MessageDTO, error) {
	dtos := make([]model.MessageDTO, 0)
	if err := r.dtoQuery(ctx).Where("messages.chat_id = ?", chatID).Find(&dtos).Error; err != nil {
		return nil, err
	}
	return dtos, nil
}

func (r *messageRepository) Update(ctx context.Context, message *model.Message) error {
	return r.db.WithContext(ctx).Save(message).Error
}

func (r *messageRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Message{}, id).Error
}

func (r *messageRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Message{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
