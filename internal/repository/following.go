package repository

import (
	"context"

	"github.com/atoz-lab/backend/internal/entity"
	"github.com/atoz-lab/backend/pkg/xcontext"
)

type FollowingRepository interface {
	Create(ctx context.Context, data *entity.Following) error
	Get(ctx context.Context, observerID, targetID string) (*entity.Following, error)
	Delete(ctx context.Context, observerID, targetID string) error

	// GetFollowers returns the users who follow userID.
	GetFollowers(ctx context.Context, userID string) ([]entity.User, error)

	// GetFollowings returns the users followed by userID.
	GetFollowings(ctx context.Context, userID string) ([]entity.User, error)
}

type followingRepository struct{}

func NewFollowingRepository() *followingRepository {
	return &followingRepository{}
}

func (r *followingRepository) Create(ctx context.Context, data *entity.Following) error {
	return create(ctx, data)
}

func (r *followingRepository) Get(ctx context.Context, observerID, targetID string) (*entity.Following, error) {
	var record entity.Following
	err := xcontext.DB(ctx).
		Where("observer_id=? AND target_id=?", observerID, targetID).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *followingRepository) Delete(ctx context.Context, observerID, targetID string) error {
	return checkRemoved(xcontext.DB(ctx).
		Where("observer_id=? AND target_id=?", observerID, targetID).
		Delete(&entity.Following{}))
}

func (r *followingRepository) GetFollowers(ctx context.Context, userID string) ([]entity.User, error) {
	var records []entity.User
	err := xcontext.DB(ctx).Model(&entity.User{}).
		Joins("join followings on followings.observer_id=users.id").
		Where("followings.target_id=?", userID).
		Order("followings.created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *followingRepository) GetFollowings(ctx context.Context, userID string) ([]entity.User, error) {
	var records []entity.User
	err := xcontext.DB(ctx).Model(&entity.User{}).
		Joins("join followings on followings.target_id=users.id").
		Where("followings.observer_id=?", userID).
		Order("followings.created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}
