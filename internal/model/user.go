package model

import (
	"github.com/atoz-lab/backend/internal/mediator"
	"github.com/atoz-lab/backend/pkg/validation"
)

type RegisterRequest struct {
	DisplayName string `json:"display_name" validate:"required,notblank,max=64"`
	Username    string `json:"username" validate:"required,notblank,max=32"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password"`
}

func (RegisterRequest) Kind() mediator.Kind { return RegisterKind }

func (r RegisterRequest) Rules() []validation.Rule {
	return validation.Password("password", r.Password)
}

type RegisterResponse User

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (LoginRequest) Kind() mediator.Kind { return LoginKind }

type LoginResponse User

type GetCurrentUserRequest struct{}

func (GetCurrentUserRequest) Kind() mediator.Kind { return GetCurrentUserKind }

type GetCurrentUserResponse User
