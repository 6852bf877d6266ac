package model

import "github.com/atoz-lab/backend/internal/mediator"

const (
	FollowersPredicate = "followers"
	FollowingPredicate = "following"
)

type FollowUserRequest struct {
	Username string `json:"username" validate:"required"`
}

func (FollowUserRequest) Kind() mediator.Kind { return FollowUserKind }

type UnfollowUserRequest struct {
	Username string `json:"username" validate:"required"`
}

func (UnfollowUserRequest) Kind() mediator.Kind { return UnfollowUserKind }

type GetFollowingsRequest struct {
	Username  string `json:"username" validate:"required"`
	Predicate string `json:"predicate" validate:"required,oneof=followers following"`
}

func (GetFollowingsRequest) Kind() mediator.Kind { return GetFollowingsKind }

type GetFollowingsResponse struct {
	Profiles []Profile `json:"profiles"`
}
