package domain

import (
	"context"
	"errors"

	"github.com/atoz-lab/backend/internal/entity"
	"github.com/atoz-lab/backend/internal/mediator"
	"github.com/atoz-lab/backend/internal/model"
	"github.com/atoz-lab/backend/internal/repository"
	"github.com/atoz-lab/backend/pkg/errorx"
	"github.com/atoz-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type FollowingDomain interface {
	Follow(context.Context, *model.FollowUserRequest) (*mediator.Unit, error)
	Unfollow(context.Context, *model.UnfollowUserRequest) (*mediator.Unit, error)
	GetList(context.Context, *model.GetFollowingsRequest) (*model.GetFollowingsResponse, error)
}

type followingDomain struct {
	userRepo      repository.UserRepository
	followingRepo repository.FollowingRepository
}

func NewFollowingDomain(
	userRepo repository.UserRepository,
	followingRepo repository.FollowingRepository,
) *followingDomain {
	return &followingDomain{
		userRepo:      userRepo,
		followingRepo: followingRepo,
	}
}

func (d *followingDomain) Follow(ctx context.Context, req *model.FollowUserRequest) (*mediator.Unit, error) {
	observer, err := currentUser(ctx, d.userRepo)
	if err != nil {
		return nil, err
	}

	target, err := d.getUser(ctx, req.Username)
	if err != nil {
		return nil, err
	}

	if observer.ID == target.ID {
		return nil, errorx.New(errorx.BadRequest, "Cannot follow yourself")
	}

	if _, err := d.followingRepo.Get(ctx, observer.ID, target.ID); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "Already following the user")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get following: %v", err)
		return nil, errorx.Unknown
	}

	err = d.followingRepo.Create(ctx, &entity.Following{
		ObserverID: observer.ID,
		TargetID:   target.ID,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errorx.New(errorx.AlreadyExists, "Already following the user")
		}

		return nil, saveError(ctx, "create following", err)
	}

	return &mediator.Unit{}, nil
}

func (d *followingDomain) Unfollow(ctx context.Context, req *model.UnfollowUserRequest) (*mediator.Unit, error) {
	observer, err := currentUser(ctx, d.userRepo)
	if err != nil {
		return nil, err
	}

	target, err := d.getUser(ctx, req.Username)
	if err != nil {
		return nil, err
	}

	if err := d.followingRepo.Delete(ctx, observer.ID, target.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.BadRequest, "Not following the user")
		}

		return nil, saveError(ctx, "delete following", err)
	}

	return &mediator.Unit{}, nil
}

func (d *followingDomain) GetList(
	ctx context.Context, req *model.GetFollowingsRequest,
) (*model.GetFollowingsResponse, error) {
	user, err := d.getUser(ctx, req.Username)
	if err != nil {
		return nil, err
	}

	var users []entity.User
	switch req.Predicate {
	case model.FollowersPredicate:
		users, err = d.followingRepo.GetFollowers(ctx, user.ID)
	case model.FollowingPredicate:
		users, err = d.followingRepo.GetFollowings(ctx, user.ID)
	default:
		return nil, errorx.New(errorx.BadRequest, "Invalid predicate %s", req.Predicate)
	}

	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get %s of user: %v", req.Predicate, err)
		return nil, errorx.Unknown
	}

	profiles := []model.Profile{}
	for i := range users {
		profiles = append(profiles, model.ConvertProfile(&users[i]))
	}

	return &model.GetFollowingsResponse{Profiles: profiles}, nil
}

func (d *followingDomain) getUser(ctx context.Context, username string) (*entity.User, error) {
	user, err := d.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	return user, nil
}
