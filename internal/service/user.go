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

type userService struct {
	userRepo  repository.UserRepository
	validator *validation.UserValidator
}

func NewUserService(userRepo repository.UserRepository, validator *validation.UserValidator) UserService {
	return &userService{userRepo: userRepo, validator: validator}
}

func (s *userService) GetAll(ctx context.Context) []model.UserDTO {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		log.Printf("user: failed to fetch users: %v", err)
		return nil
	}

	dtos := make([]model.UserDTO, 0, len(users))
	for _, user := range users {
		dtos = append(dtos, model.UserDTO{ID: user.ID, UserName: user.UserName})
	}
	return dtos
}

func (s *userService) GetByID(ctx context.Context, id uint) (*model.UserDTO, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		log.Printf("user: failed to fetch user %d: %v", id, err)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &model.UserDTO{ID: user.ID, UserName: user.UserName}, nil
}

func (s *userService) Create(ctx context.Context, userName string) (uint, error) {
	errs, err := s.validator.Create(ctx, userName)
	if err != nil {
		log.Printf("user: failed to validate user creation: %v", err)
		return 0, err
	}
	if !errs.Empty() {
		return 0, validationFailed(errs)
	}

	user := &model.User{UserName: userName}
	if err := s.userRepo.Create(ctx, user); err != nil {
		log.Printf("user: failed to create user: %v", err)
		return 0, err
	}

	log.Printf("user: user %d created", user.ID)
	return user.ID, nil
}

func (s *userService) Update(ctx context.Context, id uint, userName string) error {
	errs, err := s.validator.Update(ctx, id, userName)
	if err != nil {
		log.Printf("user: failed to validate update of user %d: %v", id, err)
		return err
	}
	if !errs.Empty() {
		return validationFailed(errs)
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		log.Printf("user: failed to update user %d: %v", id, err)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user %d: %w", id, ErrNotFound)
		}
		return err
	}

	user.UserName = userName
	if err := s.userRepo.Update(ctx, user); err != nil {
		log.Printf("user: failed to update user %d: %v", id, err)
		return err
	}

	log.Printf("user: user %d updated", id)
	return nil
}

// Delete removes the user and cascades their memberships. A user who still
// owns chats cannot be deleted: ownership has to be handed over or the
// chats deleted first.
func (s *userService) Delete(ctx context.Context, id uint) error {
	exists, err := s.userRepo.Exists(ctx, id)
	if err != nil {
		log.Printf("user: failed to delete user %d: %v", id, err)
		return err
	}
	if !exists {
		return fmt.Errorf("user %d: %w", id, ErrNotFound)
	}

	owns, err := s.userRepo.OwnsChats(ctx, id)
	if err != nil {
		log.Printf("user: failed to delete user %d: %v", id, err)
		return err
	}
	if owns {
		log.Printf("user: refusing to delete user %d who still owns chats", id)
		return fmt.Errorf("user %d: %w", id, ErrOwnsChats)
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		log.Printf("user: failed to delete user %d: %v", id, err)
		return err
	}

	log.Printf("user: user %d deleted", id)
	return nil
}
