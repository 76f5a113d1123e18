package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"simplechat/internal/model"
)

type ChatRepository interface {
	// Create persists the chat and the owner's membership in one
	// transaction, so a chat never exists without its owner on the roster.
	Create(ctx context.Context, chat *model.Chat) error
	Get(ctx context.Context, id uint) (*model.Chat, error)
	FindByID(ctx context.Context, id uint) (*model.ChatDTO, error)
	FindAll(ctx context.Context) ([]model.ChatDTO, error)
	Search(ctx context.Context, query string) ([]model.ChatDTO, error)
	Update(ctx context.Context, chat *model.Chat) error
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)
	Members(ctx context.Context, chatID uint) ([]model.UserDTO, error)
	IsMember(ctx context.Context, chatID, userID uint) (bool, error)
	AddMember(ctx context.Context, chatID, userID uint) error
	RemoveMember(ctx context.Context, chatID, userID uint) error
}

type chatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) Create(ctx context.Context, chat *model.Chat) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(chat).Error; err != nil {
			return err
		}
		return tx.Create(&model.Membership{
			UserID: chat.CreatedByID,
			ChatID: chat.ID,
		}).Error
	})
}

func (r *chatRepository) Get(ctx context.Context, id uint) (*model.Chat, error) {
	var chat model.Chat
	if err := r.db.WithContext(ctx).First(&chat, id).Error; err != nil {
		return nil, err
	}
	return &chat, nil
}

func (r *chatRepository) dtoQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.Chat{}).
		Select("chats.id, chats.name, chats.created_by_id, users.user_name AS creator_name").
		Joins("JOIN users ON users.id = chats.created_by_id")
}

func (r *chatRepository) FindByID(ctx context.Context, id uint) (*model.ChatDTO, error) {
	var dto model.ChatDTO
	if err := r.dtoQuery(ctx).Where("chats.id = ?", id).Take(&dto).Error; err != nil {
		return nil, err
	}
	return &dto, nil
}

func (r *chatRepository) FindAll(ctx context.Context) ([]model.ChatDTO, error) {
	dtos := make([]model.ChatDTO, 0)
	if err := r.dtoQuery(ctx).Find(&dtos).Error; err != nil {
		return nil, err
	}
	return dtos, nil
}

// Search matches case-insensitively; no matches is an empty result, not an
// error.
func (r *chatRepository) Search(ctx context.Context, query string) ([]model.ChatDTO, error) {
	dtos := make([]model.ChatDTO, 0)
	err := r.dtoQuery(ctx).
		Where("LOWER(chats.name) LIKE ?", "%"+strings.ToLower(query)+"%").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}
	return dtos, nil
}

func (r *chatRepository) Update(ctx context.Context, chat *model.Chat) error {
	return r.db.WithContext(ctx).Save(chat).Error
}

// Delete cascades explicitly: messages and memberships go in the same
// transaction as the chat row.
func (r *chatRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("chat_id = ?", id).Delete(&model.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("chat_id = ?", id).Delete(&model.Membership{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Chat{}, id).Error
	})
}

func (r *chatRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Chat{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *chatRepository) Members(ctx context.Context, chatID uint) ([]model.UserDTO, error) {
	members := make([]model.UserDTO, 0)
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Select("users.id, users.user_name").
		Joins("JOIN user_chats ON user_chats.user_id = users.id").
		Where("user_chats.chat_id = ?", chatID).
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *chatRepository) IsMember(ctx context.Context, chatID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Membership{}).
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *chatRepository) AddMember(ctx context.Context, chatID, userID uint) error {
	return r.db.WithContext(ctx).Create(&model.Membership{
		UserID: userID,
		ChatID: chatID,
	}).Error
}

func (r *chatRepository) RemoveMember(ctx context.Context, chatID, userID uint) error {
	return r.db.WithContext(ctx).
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		Delete(&model.Membership{}).Error
}
