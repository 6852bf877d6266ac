package domain

import (
	"context"
	"errors"

	"github.com/atoz-lab/backend/internal/entity"
	"github.com/atoz-lab/backend/internal/model"
	"github.com/atoz-lab/backend/internal/repository"
	"github.com/atoz-lab/backend/pkg/authenticator"
	"github.com/atoz-lab/backend/pkg/errorx"
	"github.com/atoz-lab/backend/pkg/xcontext"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserDomain interface {
	Register(context.Context, *model.RegisterRequest) (*model.RegisterResponse, error)
	Login(context.Context, *model.LoginRequest) (*model.LoginResponse, error)
	GetCurrentUser(context.Context, *model.GetCurrentUserRequest) (*model.GetCurrentUserResponse, error)
}

type userDomain struct {
	userRepo    repository.UserRepository
	tokenEngine authenticator.TokenEngine[model.AccessToken]
}

func NewUserDomain(
	userRepo repository.UserRepository,
	tokenEngine authenticator.TokenEngine[model.AccessToken],
) *userDomain {
	return &userDomain{
		userRepo:    userRepo,
		tokenEngine: tokenEngine,
	}
}

func (d *userDomain) Register(
	ctx context.Context, req *model.RegisterRequest,
) (*model.RegisterResponse, error) {
	if _, err := d.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, errorx.New(errorx.BadRequest, "Email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get user by email: %v", err)
		return nil, errorx.Unknown
	}

	if _, err := d.userRepo.GetByUsername(ctx, req.Username); err == nil {
		return nil, errorx.New(errorx.BadRequest, "Username already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get user by username: %v", err)
		return nil, errorx.Unknown
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot hash password: %v", err)
		return nil, errorx.Unknown
	}

	user := &entity.User{
		Base:         entity.Base{ID: uuid.NewString()},
		UserName:     req.Username,
		Email:        req.Email,
		DisplayName:  req.DisplayName,
		PasswordHash: string(hash),
	}

	if err := d.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errorx.New(errorx.BadRequest, "Email or username already exists")
		}

		return nil, saveError(ctx, "create user", err)
	}

	token, err := d.generateToken(ctx, user)
	if err != nil {
		return nil, err
	}

	resp := model.RegisterResponse(model.ConvertUser(user, token))
	return &resp, nil
}

func (d *userDomain) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	user, err := d.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "Not authorized")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user by email: %v", err)
		return nil, errorx.Unknown
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password))
	if err != nil {
		return nil, errorx.New(errorx.Unauthenticated, "Not authorized")
	}

	token, err := d.generateToken(ctx, user)
	if err != nil {
		return nil, err
	}

	resp := model.LoginResponse(model.ConvertUser(user, token))
	return &resp, nil
}

func (d *userDomain) GetCurrentUser(
	ctx context.Context, req *model.GetCurrentUserRequest,
) (*model.GetCurrentUserResponse, error) {
	user, err := currentUser(ctx, d.userRepo)
	if err != nil {
		return nil, err
	}

	token, err := d.generateToken(ctx, user)
	if err != nil {
		return nil, err
	}

	resp := model.GetCurrentUserResponse(model.ConvertUser(user, token))
	return &resp, nil
}

func (d *userDomain) generateToken(ctx context.Context, user *entity.User) (string, error) {
	token, err := d.tokenEngine.Generate(user.UserName, model.AccessToken{
		ID:       user.ID,
		Username: user.UserName,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return "", errorx.Unknown
	}

	return token, nil
}
