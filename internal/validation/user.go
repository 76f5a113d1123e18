package validation

import (
	"context"

	"simplechat/internal/repository"
)

type UserValidator struct {
	users repository.UserRepository
}

func NewUserValidator(users repository.UserRepository) *UserValidator {
	return &UserValidator{users: users}
}

func (v *UserValidator) Create(ctx context.Context, userName string) (Errors, error) {
	var errs Errors

	if userName == "" {
		errs.Add("userName", "UserName is required.")
	} else if runeLen(userName) > MaxNameLength {
		errs.Add("userName", "UserName cannot be longer than 100 characters.")
	}

	return errs, nil
}

func (v *UserValidator) Update(ctx context.Context, id uint, userName string) (Errors, error) {
	var errs Errors

	if userName == "" {
		errs.Add("userName", "UserName is required.")
	} else if runeLen(userName) > MaxNameLength {
		errs.Add("userName", "UserName cannot be longer than 100 characters.")
	}

	if id == 0 {
		errs.Add("id", "User Id is required.")
	}

	if !errs.Empty() {
		return errs, nil
	}

	exists, err := v.users.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		errs.Add("id", "User Id does not exist.")
	}

	return errs, nil
}
