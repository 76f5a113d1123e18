package service

import (
	"context"

	"simplechat/internal/model"
)

type ChatService interface {
	// GetAll degrades to an empty result on storage failure; the error is
	// logged, never propagated. Same for Search.
	GetAll(ctx context.Context) []model.ChatDTO
	GetByID(ctx context.Context, id uint) (*model.ChatDTO, error)
	Search(ctx context.Context, query string) []model.ChatDTO
	Members(ctx context.Context, chatID uint) ([]model.UserDTO, error)
	Messages(ctx context.Context, chatID uint) ([]model.MessageDTO, error)
	Create(ctx context.Context, name string, ownerID uint) (uint, error)
	Update(ctx context.Context, id uint, name string) error
	Delete(ctx context.Context, id, requesterID uint) error
	AddMember(ctx context.Context, chatID, userID uint) error
	RemoveMember(ctx context.Context, chatID, userID uint) error
}

type UserService interface {
	GetAll(ctx context.Context) []model.UserDTO
	GetByID(ctx context.Context, id uint) (*model.UserDTO, error)
	Create(ctx context.Context, userName string) (uint, error)
	Update(ctx context.Context, id uint, userName string) error
	Delete(ctx context.Context, id uint) error
}

type MessageService interface {
	GetAll(ctx context.Context) []model.MessageDTO
	GetByID(ctx context.Context, id uint) (*model.MessageDTO, error)
	Create(ctx context.Context, text string, chatID, userID uint) (uint, error)
	Update(ctx context.Context, id uint, text string) error
	Delete(ctx context.Context, id uint) error
}
