package validation

import (
	"context"

	"simplechat/internal/repository"
)

type ChatValidator struct {
	chats repository.ChatRepository
	users repository.UserRepository
}

func NewChatValidator(chats repository.ChatRepository, users repository.UserRepository) *ChatValidator {
	return &ChatValidator{chats: chats, users: users}
}

func (v *ChatValidator) Create(ctx context.Context, name string, ownerID uint) (Errors, error) {
	var errs Errors

	if name == "" {
		errs.Add("name", "Chat name is required.")
	} else if runeLen(name) > MaxNameLength {
		errs.Add("name", "Chat name cannot be longer than 100 characters.")
	}

	if ownerID == 0 {
		errs.Add("ownerId", "Creator Id is required.")
	}

	if !errs.Empty() {
		return errs, nil
	}

	exists, err := v.users.Exists(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		errs.Add("ownerId", "Creator Id does not exist.")
	}

	return errs, nil
}

func (v *ChatValidator) Update(ctx context.Context, id uint, name string) (Errors, error) {
	var errs Errors

	if name == "" {
		errs.Add("name", "Chat name is required.")
	} else if runeLen(name) > MaxNameLength {
		errs.Add("name", "Chat name cannot be longer than 100 characters.")
	}

	if id == 0 {
		errs.Add("id", "Chat Id is required.")
	}

	if !errs.Empty() {
		return errs, nil
	}

	exists, err := v.chats.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		errs.Add("id", "Chat Id does not exist.")
	}

	return errs, nil
}

// membership runs the shared structural and existence checks for the
// join/leave operations. checked reports whether the store was consulted;
// it is false when structural checks already failed.
func (v *ChatValidator) membership(ctx context.Context, chatID, userID uint) (errs Errors, isMember, checked bool, err error) {
	if chatID == 0 {
		errs.Add("chatId", "Chat Id is required.")
	}
	if userID == 0 {
		errs.Add("userId", "User Id is required.")
	}
	if !errs.Empty() {
		return errs, false, false, nil
	}

	chatExists, err := v.chats.Exists(ctx, chatID)
	if err != nil {
		return nil, false, false, err
	}
	if !chatExists {
		errs.Add("chatId", "Chat Id does not exist.")
	}

	userExists, err := v.users.Exists(ctx, userID)
	if err != nil {
		return nil, false, false, err
	}
	if !userExists {
		errs.Add("userId", "UserId does not exist.")
	}

	isMember, err = v.chats.IsMember(ctx, chatID, userID)
	if err != nil {
		return nil, false, false, err
	}

	return errs, isMember, true, nil
}

func (v *ChatValidator) AddMember(ctx context.Context, chatID, userID uint) (Errors, error) {
	errs, isMember, checked, err := v.membership(ctx, chatID, userID)
	if err != nil {
		return nil, err
	}

	if checked && isMember {
		errs.Add("userId", "User is already a member of this chat.")
	}

	return errs, nil
}

func (v *ChatValidator) RemoveMember(ctx context.Context, chatID, userID uint) (Errors, error) {
	errs, isMember, checked, err := v.membership(ctx, chatID, userID)
	if err != nil {
		return nil, err
	}

	if checked && !isMember {
		errs.Add("userId", "The user is not a member of the chat")
	}

	return errs, nil
}
