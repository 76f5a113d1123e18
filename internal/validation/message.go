package validation

import (
	"context"

	"simplechat/internal/repository"
)

type MessageValidator struct {
	messages repository.MessageRepository
	chats    repository.ChatRepository
	users    repository.UserRepository
}

func NewMessageValidator(
	messages repository.MessageRepository,
	chats repository.ChatRepository,
	users repository.UserRepository,
) *MessageValidator {
	return &MessageValidator{messages: messages, chats: chats, users: users}
}

func (v *MessageValidator) Create(ctx context.Context, text string, chatID, userID uint) (Errors, error) {
	var errs Errors

	if text == "" {
		errs.Add("text", "Text is required.")
	} else if runeLen(text) > MaxTextLength {
		errs.Add("text", "Text cannot be longer than 500 characters.")
	}

	if chatID == 0 {
		errs.Add("chatId", "Chat Id is required.")
	}
	if userID == 0 {
		errs.Add("userId", "User Id is required.")
	}

	if !errs.Empty() {
		return errs, nil
	}

	chatExists, err := v.chats.Exists(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chatExists {
		errs.Add("chatId", "Chat Id does not exist.")
	}

	userExists, err := v.users.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !userExists {
		errs.Add("userId", "UserId does not exist.")
	}

	return errs, nil
}

func (v *MessageValidator) Update(ctx context.Context, id uint, text string) (Errors, error) {
	var errs Errors

	if text == "" {
		errs.Add("text", "Text is required.")
	} else if runeLen(text) > MaxTextLength {
		errs.Add("text", "Text cannot be longer than 500 characters.")
	}

	if id == 0 {
		errs.Add("id", "Message Id is required.")
	}

	if !errs.Empty() {
		return errs, nil
	}

	exists, err := v.messages.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		errs.Add("id", "Message Id does not exist.")
	}

	return errs, nil
}
